package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/fanhub/fanhub-terminal/pkg/invite"
)

// EnvPrefix prefixes every environment override, e.g. FANHUB_BASE_URL
const EnvPrefix = "FANHUB_"

// DefaultAdminToken matches the development backend's fallback token
const DefaultAdminToken = "devtoken"

// Config is the fanhub client configuration, corresponding to
// ~/.fanhub/config.yaml
type Config struct {
	BaseURL              string `yaml:"base_url" koanf:"base_url"`
	AdminToken           string `yaml:"admin_token" koanf:"admin_token"`
	InviteURL            string `yaml:"invite_url" koanf:"invite_url"`
	TimeoutSeconds       int    `yaml:"timeout_seconds" koanf:"timeout_seconds"`
	InviteRefreshSeconds int    `yaml:"invite_refresh_seconds" koanf:"invite_refresh_seconds"`
	StatsRefreshSeconds  int    `yaml:"stats_refresh_seconds" koanf:"stats_refresh_seconds"`
	InviteRetries        int    `yaml:"invite_retries" koanf:"invite_retries"`
	InviteRetryDelayMS   int    `yaml:"invite_retry_delay_ms" koanf:"invite_retry_delay_ms"`
	ProbeWorkers         int    `yaml:"probe_workers" koanf:"probe_workers"`
	LogFile              string `yaml:"log_file" koanf:"log_file"`
}

// DefaultConfig returns the configuration used when nothing is set
func DefaultConfig() *Config {
	return &Config{
		BaseURL:              "http://localhost:8000",
		AdminToken:           DefaultAdminToken,
		InviteURL:            invite.DefaultURL,
		TimeoutSeconds:       10,
		InviteRefreshSeconds: 60,
		StatsRefreshSeconds:  30,
		InviteRetries:        1,
		InviteRetryDelayMS:   1000,
		ProbeWorkers:         8,
	}
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (FANHUB_*). A missing file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	// FANHUB_BASE_URL -> base_url, etc.
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains usable values
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid base_url %q: must be an http or https URL", c.BaseURL)
	}

	if c.InviteURL != "" {
		if u, err := url.Parse(c.InviteURL); err != nil || u.Scheme == "" {
			return fmt.Errorf("invalid invite_url %q", c.InviteURL)
		}
	}

	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive")
	}
	if c.InviteRefreshSeconds <= 0 {
		return fmt.Errorf("invite_refresh_seconds must be positive")
	}
	if c.StatsRefreshSeconds <= 0 {
		return fmt.Errorf("stats_refresh_seconds must be positive")
	}
	if c.InviteRetries < 0 {
		return fmt.Errorf("invite_retries must be non-negative")
	}
	if c.InviteRetryDelayMS < 0 {
		return fmt.Errorf("invite_retry_delay_ms must be non-negative")
	}
	if c.ProbeWorkers <= 0 {
		return fmt.Errorf("probe_workers must be positive")
	}

	return nil
}

// UsesDefaultToken reports whether the admin token is the development fallback
func (c *Config) UsesDefaultToken() bool {
	return c.AdminToken == DefaultAdminToken
}

func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c *Config) InviteRefresh() time.Duration {
	return time.Duration(c.InviteRefreshSeconds) * time.Second
}

func (c *Config) StatsRefresh() time.Duration {
	return time.Duration(c.StatsRefreshSeconds) * time.Second
}

func (c *Config) InviteRetryDelay() time.Duration {
	return time.Duration(c.InviteRetryDelayMS) * time.Millisecond
}
