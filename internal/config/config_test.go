package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.BaseURL != "http://localhost:8000" {
		t.Errorf("expected default base_url, got %q", cfg.BaseURL)
	}
	if cfg.InviteRetries != 1 {
		t.Errorf("expected default invite_retries 1, got %d", cfg.InviteRetries)
	}
	if cfg.InviteRetryDelay() != time.Second {
		t.Errorf("expected 1s retry delay, got %v", cfg.InviteRetryDelay())
	}
	if cfg.InviteRefresh() != time.Minute {
		t.Errorf("expected 60s invite refresh, got %v", cfg.InviteRefresh())
	}
	if cfg.StatsRefresh() != 30*time.Second {
		t.Errorf("expected 30s stats refresh, got %v", cfg.StatsRefresh())
	}
	if !cfg.UsesDefaultToken() {
		t.Error("expected the development token by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	original := DefaultConfig()
	original.BaseURL = "https://fans.example.com"
	original.AdminToken = "s3cret"
	original.ProbeWorkers = 3
	original.LogFile = "/tmp/fanhub.log"

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if *loaded != *original {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, original)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("base_url: http://10.0.0.5:9000\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.BaseURL != "http://10.0.0.5:9000" {
		t.Errorf("base_url: got %q", cfg.BaseURL)
	}
	if cfg.TimeoutSeconds != 10 {
		t.Errorf("timeout_seconds should keep its default, got %d", cfg.TimeoutSeconds)
	}
}

func TestEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("base_url: http://from-file:8000\nadmin_token: filetoken\n"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("FANHUB_BASE_URL", "http://from-env:8000")
	t.Setenv("FANHUB_INVITE_RETRIES", "3")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.BaseURL != "http://from-env:8000" {
		t.Errorf("env should win over file, got %q", cfg.BaseURL)
	}
	if cfg.AdminToken != "filetoken" {
		t.Errorf("admin_token: got %q", cfg.AdminToken)
	}
	if cfg.InviteRetries != 3 {
		t.Errorf("invite_retries: got %d", cfg.InviteRetries)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("base_url: [broken\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected an error for malformed yaml")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"empty base url", func(c *Config) { c.BaseURL = "" }},
		{"non-http base url", func(c *Config) { c.BaseURL = "ftp://example.com" }},
		{"base url without host", func(c *Config) { c.BaseURL = "http://" }},
		{"zero timeout", func(c *Config) { c.TimeoutSeconds = 0 }},
		{"zero invite refresh", func(c *Config) { c.InviteRefreshSeconds = 0 }},
		{"zero stats refresh", func(c *Config) { c.StatsRefreshSeconds = 0 }},
		{"negative retries", func(c *Config) { c.InviteRetries = -1 }},
		{"negative delay", func(c *Config) { c.InviteRetryDelayMS = -5 }},
		{"no probe workers", func(c *Config) { c.ProbeWorkers = 0 }},
		{"relative invite url", func(c *Config) { c.InviteURL = "discord.gg/abc" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected validation error")
			}
		})
	}
}
