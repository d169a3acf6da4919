package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds runtime parameters shared by the web front end and the
// worker. Precedence: Default < file (Load) < environment (MergeEnv)
// < command-line flags, applied by the commands in cmd/.
type Config struct {
	Addr              string   `json:"addr" yaml:"addr" toml:"addr"`
	OpsAddr           string   `json:"ops_addr" yaml:"ops_addr" toml:"ops_addr"`
	LogLevel          string   `json:"log_level" yaml:"log_level" toml:"log_level"`
	CORSOrigins       []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
	TemporalHostPort  string   `json:"temporal_host_port" yaml:"temporal_host_port" toml:"temporal_host_port"`
	TemporalNamespace string   `json:"temporal_namespace" yaml:"temporal_namespace" toml:"temporal_namespace"`
	ModelsDir         string   `json:"models_dir" yaml:"models_dir" toml:"models_dir"`
	LocalModel        string   `json:"local_model" yaml:"local_model" toml:"local_model"`
	CtxSize           int      `json:"ctx_size" yaml:"ctx_size" toml:"ctx_size"`
	Threads           int      `json:"threads" yaml:"threads" toml:"threads"`
	OllamaBaseURL     string   `json:"ollama_base_url" yaml:"ollama_base_url" toml:"ollama_base_url"`
	OllamaTimeoutS    int      `json:"ollama_timeout_s" yaml:"ollama_timeout_s" toml:"ollama_timeout_s"`
}

// Default returns the baseline configuration for a single-host demo
// deployment: everything on localhost, permissive CORS.
func Default() Config {
	return Config{
		Addr:              ":8080",
		OpsAddr:           ":9090",
		LogLevel:          "info",
		CORSOrigins:       []string{"*"},
		TemporalHostPort:  "127.0.0.1:7233",
		TemporalNamespace: "default",
		ModelsDir:         "~/models/llm",
		CtxSize:           4096,
		OllamaBaseURL:     "http://127.0.0.1:11434",
		OllamaTimeoutS:    300,
	}
}

// MergeEnv overlays ASKD_* environment variables onto c and returns
// the result. Unset or malformed variables leave the field untouched.
func (c Config) MergeEnv() Config {
	setStr := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setInt := func(dst *int, key string) {
		if v := os.Getenv(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}
	setStr(&c.Addr, "ASKD_ADDR")
	setStr(&c.OpsAddr, "ASKD_OPS_ADDR")
	setStr(&c.LogLevel, "ASKD_LOG_LEVEL")
	setStr(&c.TemporalHostPort, "ASKD_TEMPORAL_HOST_PORT")
	setStr(&c.TemporalNamespace, "ASKD_TEMPORAL_NAMESPACE")
	setStr(&c.ModelsDir, "ASKD_MODELS_DIR")
	setStr(&c.LocalModel, "ASKD_LOCAL_MODEL")
	setInt(&c.CtxSize, "ASKD_CTX_SIZE")
	setInt(&c.Threads, "ASKD_THREADS")
	setStr(&c.OllamaBaseURL, "ASKD_OLLAMA_BASE_URL")
	setInt(&c.OllamaTimeoutS, "ASKD_OLLAMA_TIMEOUT_S")
	if v := os.Getenv("ASKD_CORS_ORIGINS"); v != "" {
		c.CORSOrigins = splitCSV(v)
	}
	return c
}

// ExpandPaths resolves a leading '~' in the path fields.
func (c *Config) ExpandPaths() error {
	var err error
	if c.ModelsDir, err = expandHome(c.ModelsDir); err != nil {
		return fmt.Errorf("models_dir: %w", err)
	}
	if c.LocalModel, err = expandHome(c.LocalModel); err != nil {
		return fmt.Errorf("local_model: %w", err)
	}
	return nil
}

func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
