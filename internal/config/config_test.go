package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "8081" {
		t.Fatalf("expected default port 8081, got %q", cfg.Port)
	}
	if cfg.DataBackend != "csv" {
		t.Fatalf("expected default backend csv, got %q", cfg.DataBackend)
	}
	if cfg.CSVPath == "" || cfg.SQLiteDBPath == "" {
		t.Fatalf("expected non-empty store paths: %+v", cfg)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATA_BACKEND", "memory")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()
	if cfg.Port != "9000" || cfg.DataBackend != "memory" || cfg.LogLevel != "debug" {
		t.Fatalf("env not honored: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()

	valid := func() *Config {
		return &Config{
			Port:         "8081",
			DataBackend:  "csv",
			CSVPath:      filepath.Join(dir, "ledger.csv"),
			SQLiteDBPath: filepath.Join(dir, "ledger.db"),
			LogLevel:     "info",
		}
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Port = "http" }},
		{"port out of range", func(c *Config) { c.Port = "70000" }},
		{"unknown backend", func(c *Config) { c.DataBackend = "postgres" }},
		{"empty csv path", func(c *Config) { c.CSVPath = "" }},
		{"empty sqlite path", func(c *Config) { c.DataBackend = "sqlite"; c.SQLiteDBPath = "" }},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }},
	}
	for _, tc := range cases {
		cfg := valid()
		tc.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := &Config{
		Port:        "abc",
		DataBackend: "postgres",
		LogLevel:    "verbose",
	}
	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected error")
	}
	for _, want := range []string{"invalid port", "invalid data backend", "invalid log level"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in error, got: %v", want, err)
		}
	}
}
