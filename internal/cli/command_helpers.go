package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/fanhub/fanhub-terminal/internal/config"
	"github.com/fanhub/fanhub-terminal/pkg/admin"
	"github.com/fanhub/fanhub-terminal/pkg/api"
	"github.com/fanhub/fanhub-terminal/pkg/files"
	"github.com/fanhub/fanhub-terminal/pkg/gallery"
	"github.com/fanhub/fanhub-terminal/pkg/invite"
	"github.com/fanhub/fanhub-terminal/pkg/models"
)

// Overrides are the root flags that take precedence over the config file
type Overrides struct {
	ConfigPath string
	BaseURL    string
	AdminToken string
}

// CommandContext manages configuration and the API client shared by commands
type CommandContext struct {
	Config   *config.Config
	Settings *models.Settings
	client   *api.Client
}

// NewCommandContext loads configuration and applies flag overrides
func NewCommandContext(o Overrides) (*CommandContext, error) {
	path := o.ConfigPath
	if path == "" {
		p, err := files.ConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if o.BaseURL != "" {
		cfg.BaseURL = o.BaseURL
	}
	if o.AdminToken != "" {
		cfg.AdminToken = o.AdminToken
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &CommandContext{Config: cfg}, nil
}

// Client returns the API client, creating it on first use
func (c *CommandContext) Client() (*api.Client, error) {
	if c.client != nil {
		return c.client, nil
	}

	client, err := api.NewClient(c.Config.BaseURL,
		api.WithTimeout(c.Config.Timeout()),
		api.WithAdminToken(c.Config.AdminToken),
	)
	if err != nil {
		return nil, err
	}
	c.client = client
	return client, nil
}

// Panel returns the moderation panel. Using the development token prints a
// warning.
func (c *CommandContext) Panel() (*admin.Panel, error) {
	client, err := c.Client()
	if err != nil {
		return nil, err
	}
	if c.Config.UsesDefaultToken() {
		PrintWarning("using the development admin token; set admin_token or FANHUB_ADMIN_TOKEN")
	}
	return admin.NewPanel(client), nil
}

// InviteFetcher returns a fetcher configured with the retry settings
func (c *CommandContext) InviteFetcher() (*invite.Fetcher, error) {
	client, err := c.Client()
	if err != nil {
		return nil, err
	}
	return invite.NewFetcher(client,
		invite.WithRetries(c.Config.InviteRetries),
		invite.WithRetryDelay(c.Config.InviteRetryDelay()),
	), nil
}

// Launcher returns the join/copy launcher for the configured invite
func (c *CommandContext) Launcher() (*invite.Launcher, error) {
	client, err := c.Client()
	if err != nil {
		return nil, err
	}
	return invite.NewLauncher(c.Config.InviteURL, client), nil
}

// Prober returns an image prober sized by the config
func (c *CommandContext) Prober() *gallery.Prober {
	return gallery.NewProber(nil, c.Config.ProbeWorkers)
}

// LoadSettingsWithDefault loads settings or returns default if error
func (c *CommandContext) LoadSettingsWithDefault() *models.Settings {
	if c.Settings != nil {
		return c.Settings
	}

	settings, err := files.ReadSettings()
	if err != nil {
		PrintWarning("failed to read settings, using defaults: %v", err)
		settings = models.DefaultSettings()
	}

	c.Settings = settings
	return settings
}

// SignalContext returns a context cancelled on interrupt
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt)
}
