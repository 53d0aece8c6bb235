package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fanhub/fanhub-terminal/internal/cli"
	"github.com/fanhub/fanhub-terminal/internal/config"
	"github.com/fanhub/fanhub-terminal/pkg/files"
)

var configInitForce bool

// NewConfigCommand creates the config command
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the configuration file",
		Long: `Show the effective configuration or write a default config file.

Settings are read from ~/.fanhub/config.yaml (or --config), then from
FANHUB_* environment variables, then from --base-url and --token.

Examples:
  # Show the effective configuration
  fanhub config show

  # Write a config file with the defaults
  fanhub config init`,
	}

	cmd.AddCommand(newConfigShowCommand(), newConfigInitCommand())
	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := commandContext(cmd)
			if err != nil {
				return err
			}

			shown := *cc.Config
			shown.AdminToken = maskToken(shown.AdminToken)

			format := outputFormat(cmd)
			if format == string(cli.FormatText) {
				format = string(cli.FormatYAML)
			}
			if err := cli.OutputResults(cmd.OutOrStdout(), format, shown); err != nil {
				return err
			}
			if cc.Config.UsesDefaultToken() {
				cli.PrintWarning("admin_token is the development default")
			}
			return nil
		},
	}
}

func newConfigInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			if path == "" {
				p, err := files.ConfigPath()
				if err != nil {
					return err
				}
				path = p
			}

			if _, err := os.Stat(path); err == nil && !configInitForce {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			cfg := config.DefaultConfig()
			if baseURL, _ := cmd.Flags().GetString("base-url"); baseURL != "" {
				cfg.BaseURL = baseURL
			}
			if token, _ := cmd.Flags().GetString("token"); token != "" {
				cfg.AdminToken = token
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := cfg.Save(path); err != nil {
				return err
			}

			cli.PrintSuccess("Wrote %s", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "Overwrite an existing file")
	return cmd
}

func maskToken(token string) string {
	if len(token) <= 4 {
		return "****"
	}
	return token[:2] + "****" + token[len(token)-2:]
}
