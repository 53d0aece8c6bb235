package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/fanhub/fanhub-terminal/internal/cli"
	"github.com/fanhub/fanhub-terminal/pkg/files"
	"github.com/fanhub/fanhub-terminal/pkg/models"
)

// hasDarkBackground is replaced in tests
var hasDarkBackground = lipgloss.HasDarkBackground

// NewThemeCommand creates the theme command
func NewThemeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme [dark|light|toggle]",
		Short: "Show or change the colour theme",
		Long: `Show or change the colour theme used by the interactive view.

Without an argument the current theme is printed. When no theme has been
saved, the terminal background decides.

Examples:
  # Show the current theme
  fanhub theme

  # Switch to the light theme
  fanhub theme light

  # Flip between dark and light
  fanhub theme toggle`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{models.ThemeDark, models.ThemeLight, "toggle"},
		RunE:      runTheme,
	}

	return cmd
}

func runTheme(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()

	if len(args) == 0 {
		settings, err := files.ReadSettings()
		if err != nil {
			cli.PrintWarning("failed to read settings, using defaults: %v", err)
			settings = models.DefaultSettings()
		}
		fmt.Fprintln(w, files.ResolveTheme(settings, hasDarkBackground))
		return nil
	}

	choice := strings.ToLower(args[0])
	if choice == "toggle" {
		next, err := files.Toggle(hasDarkBackground)
		if err != nil {
			return fmt.Errorf("failed to save theme: %w", err)
		}
		cli.PrintSuccess("Theme set to %s", next)
		return nil
	}

	if err := files.SaveTheme(choice); err != nil {
		return err
	}
	cli.PrintSuccess("Theme set to %s", choice)
	return nil
}
