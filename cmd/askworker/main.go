package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	"askd/internal/ask"
	"askd/internal/config"
	"askd/internal/gateway"
	"askd/internal/httpapi"
	"askd/internal/infer"
	"askd/internal/logging"
	"askd/internal/ollama"
)

const opsShutdownTimeout = 5 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "askworker:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgPath string
	cmd := &cobra.Command{
		Use:           "askworker",
		Short:         "Inference worker hosting the question workflow and its model backends",
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
	cmd.Flags().String("ops-addr", "", "Operational HTTP listen address, e.g. :9090")
	cmd.Flags().String("temporal-address", "", "Workflow engine frontend host:port")
	cmd.Flags().String("namespace", "", "Workflow engine namespace")
	cmd.Flags().String("models-dir", "", "Directory scanned for *.gguf weights")
	cmd.Flags().String("local-model", "", "Explicit weights path; overrides the directory scan")
	cmd.Flags().Int("ctx-size", 0, "Local model context window")
	cmd.Flags().Int("threads", 0, "Local generation threads; 0 lets the runtime choose")
	cmd.Flags().String("ollama-url", "", "Remote inference daemon base URL")
	cmd.Flags().String("log-level", "", "Log level: debug|info|warn|error")
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
	if v, _ := cmd.Flags().GetString("ops-addr"); v != "" {
		cfg.OpsAddr = v
	}
	if v, _ := cmd.Flags().GetString("temporal-address"); v != "" {
		cfg.TemporalHostPort = v
	}
	if v, _ := cmd.Flags().GetString("namespace"); v != "" {
		cfg.TemporalNamespace = v
	}
	if v, _ := cmd.Flags().GetString("models-dir"); v != "" {
		cfg.ModelsDir = v
	}
	if v, _ := cmd.Flags().GetString("local-model"); v != "" {
		cfg.LocalModel = v
	}
	if v, _ := cmd.Flags().GetInt("ctx-size"); v > 0 {
		cfg.CtxSize = v
	}
	if v, _ := cmd.Flags().GetInt("threads"); cmd.Flags().Changed("threads") {
		cfg.Threads = v
	}
	if v, _ := cmd.Flags().GetString("ollama-url"); v != "" {
		cfg.OllamaBaseURL = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if err := cfg.ExpandPaths(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func run(cfg config.Config) error {
	log := logging.New(cfg.LogLevel)

	gw := gateway.New(gateway.Config{
		ModelsDir:  cfg.ModelsDir,
		LocalModel: cfg.LocalModel,
		CtxSize:    cfg.CtxSize,
		Threads:    cfg.Threads,
		Ollama: ollama.Config{
			BaseURL: cfg.OllamaBaseURL,
			Timeout: time.Duration(cfg.OllamaTimeoutS) * time.Second,
		},
	}, log, nil)
	if err := gw.Initialize(context.Background()); err != nil {
		return fmt.Errorf("initialize backends: %w", err)
	}
	defer gw.Close()

	// Dial eagerly; a worker that cannot reach the engine has
	// nothing to do.
	c, err := client.Dial(client.Options{
		HostPort:  cfg.TemporalHostPort,
		Namespace: cfg.TemporalNamespace,
		Logger:    ask.NewSDKLogger(log.With().Str("component", "ask").Logger()),
	})
	if err != nil {
		return fmt.Errorf("engine client: %w", err)
	}
	defer c.Close()

	w := worker.New(c, ask.TaskQueue, worker.Options{})
	ask.RegisterWorker(w, ask.NewActivities(infer.New(gw, log)))

	ops := &http.Server{Addr: cfg.OpsAddr, Handler: httpapi.NewOpsMux(gw)}
	go func() {
		log.Info().Str("addr", cfg.OpsAddr).Msg("worker ops listening")
		// Inference keeps running without the ops listener.
		if err := ops.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("ops server failed")
		}
	}()

	log.Info().
		Str("task_queue", ask.TaskQueue).
		Str("engine", cfg.TemporalHostPort).
		Msg("askworker polling")
	runErr := w.Run(worker.InterruptCh())

	ctx, cancel := context.WithTimeout(context.Background(), opsShutdownTimeout)
	defer cancel()
	if err := ops.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("ops shutdown failed")
	}
	return runErr
}
