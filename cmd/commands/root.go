package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/fanhub/fanhub-terminal/internal/cli"
)

// RegisterGlobalFlags adds the flags shared by every command to root and
// applies them before any command runs
func RegisterGlobalFlags(root *cobra.Command) {
	flags := root.PersistentFlags()
	flags.String("config", "", "Config file (default ~/.fanhub/config.yaml)")
	flags.String("base-url", "", "Backend URL, overrides the config file")
	flags.String("token", "", "Admin token, overrides the config file")
	flags.StringP("output", "o", "text", "Output format (text, json, yaml)")
	flags.BoolP("verbose", "v", false, "Show debug logs")
	flags.BoolP("quiet", "q", false, "Only print results")
	flags.Bool("no-color", false, "Disable symbols and colours in messages")
	flags.BoolP("yes", "y", false, "Answer yes to confirmations")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		quiet, _ := cmd.Flags().GetBool("quiet")
		noColor, _ := cmd.Flags().GetBool("no-color")
		yes, _ := cmd.Flags().GetBool("yes")
		output, _ := cmd.Flags().GetString("output")

		cli.SetGlobalFlags(quiet, noColor, yes)
		cli.SetupLogging(os.Stderr, verbose)
		return cli.ValidateOutputFormat(output)
	}
}

// AddCommands registers every subcommand on root
func AddCommands(root *cobra.Command) {
	root.AddCommand(
		NewGalleryCommand(),
		NewJennaCommand(),
		NewExportCommand(),
		NewStatsCommand(),
		NewInviteCommand(),
		NewJoinCommand(),
		NewCopyInviteCommand(),
		NewChannelsCommand(),
		NewSiteCommand(),
		NewUploadCommand(),
		NewThemeCommand(),
		NewConfigCommand(),
		NewAdminCommand(),
	)
}

// commandContext builds the shared context from the global flags
func commandContext(cmd *cobra.Command) (*cli.CommandContext, error) {
	configPath, _ := cmd.Flags().GetString("config")
	baseURL, _ := cmd.Flags().GetString("base-url")
	token, _ := cmd.Flags().GetString("token")

	return cli.NewCommandContext(cli.Overrides{
		ConfigPath: configPath,
		BaseURL:    baseURL,
		AdminToken: token,
	})
}

func outputFormat(cmd *cobra.Command) string {
	format, _ := cmd.Flags().GetString("output")
	if format == "" {
		return string(cli.FormatText)
	}
	return format
}
