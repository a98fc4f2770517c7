package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Storage.DataFile != "data/watchlists.json" {
		t.Errorf("data file = %q", cfg.Storage.DataFile)
	}
	if cfg.Security.RateLimitWindow != time.Minute {
		t.Errorf("rate limit window = %v, want 1m", cfg.Security.RateLimitWindow)
	}
	if !cfg.Metrics.Enabled {
		t.Error("metrics should be enabled by default")
	}
	if cfg.App.Environment != "development" {
		t.Errorf("environment = %q, want development", cfg.App.Environment)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9191")
	t.Setenv("DATA_FILE", "/tmp/wl.json")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 9191 {
		t.Errorf("port = %d, want 9191", cfg.Server.Port)
	}
	if cfg.Storage.DataFile != "/tmp/wl.json" {
		t.Errorf("data file = %q", cfg.Storage.DataFile)
	}
	if cfg.Logger.Level != "debug" {
		t.Errorf("log level = %q", cfg.Logger.Level)
	}
	if got := cfg.Server.Address(); got != "0.0.0.0:9191" {
		t.Errorf("address = %q", got)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watchdeck.yaml")
	content := "server:\n  port: 7000\nstorage:\n  instruments_file: catalog.json\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("port = %d, want 7000", cfg.Server.Port)
	}
	if cfg.Storage.InstrumentsFile != "catalog.json" {
		t.Errorf("instruments file = %q", cfg.Storage.InstrumentsFile)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"port out of range", "SERVER_PORT", "70000"},
		{"unknown log format", "LOG_FORMAT", "xml"},
		{"negative rate limit", "RATE_LIMIT_REQUESTS", "-1"},
		{"zero rate limit window", "RATE_LIMIT_WINDOW", "0s"},
		{"negative rate limit window", "RATE_LIMIT_WINDOW", "-1m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			if _, err := Load(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadAllowsZeroWindowWithoutRateLimit(t *testing.T) {
	t.Setenv("RATE_LIMIT_REQUESTS", "0")
	t.Setenv("RATE_LIMIT_WINDOW", "0s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Security.RateLimitRequests != 0 {
		t.Errorf("rate limit requests = %d", cfg.Security.RateLimitRequests)
	}
}
