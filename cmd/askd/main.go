package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"askd/internal/ask"
	"askd/internal/config"
	"askd/internal/httpapi"
	"askd/internal/logging"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "askd:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgPath string
	cmd := &cobra.Command{
		Use:           "askd",
		Short:         "Question front end backed by a durable workflow engine",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, cfgPath)
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", "", "Path to a .toml/.yaml/.json config file")
	cmd.Flags().String("addr", "", "HTTP listen address, e.g. :8080")
	cmd.Flags().String("temporal-address", "", "Workflow engine frontend host:port")
	cmd.Flags().String("namespace", "", "Workflow engine namespace")
	cmd.Flags().String("log-level", "", "Log level: debug|info|warn|error")
	cmd.Flags().StringSlice("cors-origin", nil, "Allowed CORS origin (repeatable; empty disables CORS)")
	return cmd
}

// loadConfig assembles the effective configuration: defaults, then the
// optional file, then ASKD_* environment variables, then flags.
func loadConfig(cmd *cobra.Command, path string) (config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return config.Config{}, err
		}
	}
	cfg = cfg.MergeEnv()
	if v, _ := cmd.Flags().GetString("addr"); v != "" {
		cfg.Addr = v
	}
	if v, _ := cmd.Flags().GetString("temporal-address"); v != "" {
		cfg.TemporalHostPort = v
	}
	if v, _ := cmd.Flags().GetString("namespace"); v != "" {
		cfg.TemporalNamespace = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if v, _ := cmd.Flags().GetStringSlice("cors-origin"); cmd.Flags().Changed("cors-origin") {
		cfg.CORSOrigins = v
	}
	return cfg, nil
}

func run(cfg config.Config) error {
	log := logging.New(cfg.LogLevel)

	engine, err := ask.Dial(ask.Config{
		HostPort:  cfg.TemporalHostPort,
		Namespace: cfg.TemporalNamespace,
	}, log)
	if err != nil {
		return fmt.Errorf("engine client: %w", err)
	}
	defer engine.Close()

	// Handlers see a context that dies with the process so shutdown
	// cancels in-flight waits and live sockets.
	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	httpapi.SetBaseContext(baseCtx)
	httpapi.SetLogger(log)
	httpapi.SetCORSOrigins(cfg.CORSOrigins)

	srv := &http.Server{Addr: cfg.Addr, Handler: httpapi.NewMux(engine)}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr).Str("engine", cfg.TemporalHostPort).Msg("askd listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	cancelBase()
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		return err
	}
	return nil
}
