package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/fanhub/fanhub-terminal/cmd/commands"
	"github.com/fanhub/fanhub-terminal/internal/cli"
	"github.com/fanhub/fanhub-terminal/pkg/admin"
	"github.com/fanhub/fanhub-terminal/pkg/tui"
)

// Version is set during build with -ldflags
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "fanhub",
	Short: "Terminal client for the Jenna Ortega fan hub",
	Long: `fanhub browses the fan hub from the terminal: the fan gallery and Jenna
collections with their filters, the Discord invite counters, channels and
uploads. Run it without a command for the interactive view, or use the
commands below for scripting and moderation.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runTUI(cmd); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of fanhub",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "fanhub version %s\n", version)
	},
}

var startTab string

func runTUI(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	baseURL, _ := cmd.Flags().GetString("base-url")
	token, _ := cmd.Flags().GetString("token")
	verbose, _ := cmd.Flags().GetBool("verbose")

	cc, err := cli.NewCommandContext(cli.Overrides{ConfigPath: configPath, BaseURL: baseURL, AdminToken: token})
	if err != nil {
		return err
	}
	client, err := cc.Client()
	if err != nil {
		return err
	}
	fetcher, err := cc.InviteFetcher()
	if err != nil {
		return err
	}
	launcher, err := cc.Launcher()
	if err != nil {
		return err
	}

	settings := cc.LoadSettingsWithDefault()
	if startTab != "" {
		settings.UI.DefaultTab = startTab
	}

	logs, err := cli.SetupFileLogging(cc.Config.LogFile, verbose)
	if err != nil {
		return err
	}
	defer logs.Close()
	if cc.Config.UsesDefaultToken() {
		slog.Warn("using the development admin token")
	}

	ctx, cancel := cli.SignalContext(cmd.Context())
	defer cancel()

	app := tui.NewApp(tui.Options{
		Context:       ctx,
		Collections:   client,
		Invite:        fetcher,
		Launcher:      launcher,
		Channels:      client,
		Site:          client,
		Prober:        cc.Prober(),
		Collector:     admin.NewPanel(client),
		Settings:      settings,
		InviteRefresh: cc.Config.InviteRefresh(),
		StatsRefresh:  cc.Config.StatsRefresh(),
	})

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to start the terminal user interface: %w (try running in a different terminal)", err)
	}
	return nil
}

func init() {
	commands.RegisterGlobalFlags(rootCmd)
	rootCmd.Flags().StringVar(&startTab, "tab", "", "Tab to open first (gallery, jenna or channels)")

	rootCmd.AddCommand(versionCmd)
	commands.AddCommands(rootCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
