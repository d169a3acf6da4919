package askctl

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the askctl command tree.
func NewRootCmd() *cobra.Command {
	var (
		serverURL string
		opsURL    string
		timeout   time.Duration
	)
	root := &cobra.Command{
		Use:           "askctl",
		Short:         "Operator client for a running askd deployment",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&serverURL, "server", "http://127.0.0.1:8080", "Front end base URL")
	root.PersistentFlags().StringVar(&opsURL, "ops", "http://127.0.0.1:9090", "Worker ops base URL")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "Per-command deadline")

	newClient := func() *Client { return NewClient(serverURL, opsURL, timeout) }
	cmdCtx := func(cmd *cobra.Command) (context.Context, context.CancelFunc) {
		return context.WithTimeout(cmd.Context(), timeout)
	}

	health := &cobra.Command{
		Use:   "health",
		Short: "Probe liveness and readiness of both services",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdCtx(cmd)
			defer cancel()
			probes := newClient().Health(ctx)
			failed := 0
			for _, p := range probes {
				state := "ok"
				if !p.OK {
					state = "FAIL"
					failed++
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-6s %-9s %-4s %s\n", p.Target, p.Path, state, p.Detail)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d probes failed", failed, len(probes))
			}
			return nil
		},
	}

	var backendName string
	var async bool
	ask := &cobra.Command{
		Use:   "ask <prompt>",
		Short: "Submit a question and print the answer",
		Args:  cobra.MinimumNArgs(1),
		Example: "  askctl ask what is the brightest star\n" +
			"  askctl ask --backend local-small --async \"name a red giant\"",
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt := strings.Join(args, " ")
			ctx, cancel := cmdCtx(cmd)
			defer cancel()
			if async {
				acc, err := newClient().Submit(ctx, prompt, backendName)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "accepted %s (run %s)\n", acc.ID, acc.RunID)
				return nil
			}
			res, err := newClient().Ask(ctx, prompt, backendName)
			if err != nil {
				return err
			}
			if res.Error != "" {
				return fmt.Errorf("question %s failed: %s", res.ID, res.Error)
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Response)
			return nil
		},
	}
	ask.Flags().StringVar(&backendName, "backend", "", "Backend identifier (defaults to the server's default)")
	ask.Flags().BoolVar(&async, "async", false, "Return after acceptance instead of waiting for the answer")

	status := &cobra.Command{
		Use:   "status <workflow-id>...",
		Short: "Show execution status for one or more workflow ids",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdCtx(cmd)
			defer cancel()
			snap, err := newClient().Statuses(ctx, args)
			if err != nil {
				return err
			}
			for _, w := range snap.Workflows {
				detail := w.CloseTime
				if w.Error != "" {
					detail = w.Error
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-42s %-20s %s\n", w.ID, w.Status, detail)
			}
			return nil
		},
	}

	backends := &cobra.Command{
		Use:   "backends",
		Short: "List the worker's backends and readiness",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdCtx(cmd)
			defer cancel()
			br, err := newClient().Backends(ctx)
			if err != nil {
				return err
			}
			for _, b := range br.Backends {
				state := "ready"
				if !b.Ready {
					state = "not-ready"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-14s %-10s %s\n", b.Name, state, b.Model)
			}
			return nil
		},
	}

	root.AddCommand(health, ask, status, backends)
	return root
}
