package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	body := "addr: \":7070\"\nlog_level: warn\ntemporal_namespace: file-ns\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("ASKD_ADDR", ":6060")
	t.Setenv("ASKD_TEMPORAL_HOST_PORT", "engine:7233")

	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--addr", ":5050"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	cfg, err := loadConfig(cmd, path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}

	if cfg.Addr != ":5050" {
		t.Fatalf("flag should win: addr=%q", cfg.Addr)
	}
	if cfg.TemporalHostPort != "engine:7233" {
		t.Fatalf("env should beat file: host=%q", cfg.TemporalHostPort)
	}
	if cfg.LogLevel != "warn" || cfg.TemporalNamespace != "file-ns" {
		t.Fatalf("file values lost: %+v", cfg)
	}
}

func TestLoadConfigDefaultsWithoutFile(t *testing.T) {
	cmd := newRootCmd()
	if err := cmd.ParseFlags(nil); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	cfg, err := loadConfig(cmd, "")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Addr != ":8080" || cfg.TemporalHostPort != "127.0.0.1:7233" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadConfigBadFile(t *testing.T) {
	cmd := newRootCmd()
	if err := cmd.ParseFlags(nil); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if _, err := loadConfig(cmd, filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
