package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/fanhub/fanhub-terminal/pkg/models"
)

// Color constants
const (
	ColorActive   = "170" // Purple/magenta for active elements
	ColorInactive = "240" // Gray for inactive elements
	ColorSelected = "236" // Dark gray for background selection
	ColorNormal   = "245" // Light gray for normal text
	ColorDim      = "241" // Dimmer gray
	ColorWarning  = "214" // Orange/yellow for warnings
	ColorDanger   = "196" // Red for dangerous actions
	ColorSuccess  = "28"  // Green for success
	ColorWhite    = "255" // White
	ColorDark     = "235" // Dark for contrast
	ColorBorder   = "243" // Border gray
	ColorPrimary  = "33"  // Blue for primary actions
	ColorError    = "196" // Red for errors (same as danger)

	// light theme counterparts
	ColorLightText      = "236"
	ColorLightSelected  = "254"
	ColorLightDim       = "244"
	ColorLightHighlight = "127"
)

// Styles holds every style the app renders with, for one theme
type Styles struct {
	Theme string

	Title       lipgloss.Style
	Normal      lipgloss.Style
	Dim         lipgloss.Style
	Selected    lipgloss.Style
	Ready       lipgloss.Style
	Pending     lipgloss.Style
	Placeholder lipgloss.Style
	Error       lipgloss.Style
	Warning     lipgloss.Style
	Success     lipgloss.Style

	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style
	Filter      lipgloss.Style
	FilterOn    lipgloss.Style

	Cell         lipgloss.Style
	SelectedCell lipgloss.Style
	Modal        lipgloss.Style
	Status       lipgloss.Style
}

// NewStyles builds the styles for theme. Anything that is not "light" gets
// the dark palette.
func NewStyles(theme string) Styles {
	text, selected, dim, highlight := ColorNormal, ColorSelected, ColorDim, ColorActive
	if theme == models.ThemeLight {
		text, selected, dim, highlight = ColorLightText, ColorLightSelected, ColorLightDim, ColorLightHighlight
	} else {
		theme = models.ThemeDark
	}

	return Styles{
		Theme: theme,

		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(highlight)).
			Bold(true),
		Normal: lipgloss.NewStyle().
			Foreground(lipgloss.Color(text)),
		Dim: lipgloss.NewStyle().
			Foreground(lipgloss.Color(dim)),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(highlight)).
			Background(lipgloss.Color(selected)).
			Bold(true),
		Ready: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSuccess)),
		Pending: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorInactive)),
		Placeholder: lipgloss.NewStyle().
			Foreground(lipgloss.Color(dim)).
			Italic(true),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorError)),
		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorWarning)).
			Bold(true),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSuccess)),

		ActiveTab: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorWhite)).
			Background(lipgloss.Color(highlight)).
			Bold(true).
			Padding(0, 1),
		InactiveTab: lipgloss.NewStyle().
			Foreground(lipgloss.Color(dim)).
			Padding(0, 1),
		Filter: lipgloss.NewStyle().
			Foreground(lipgloss.Color(dim)),
		FilterOn: lipgloss.NewStyle().
			Foreground(lipgloss.Color(highlight)).
			Underline(true),

		Cell: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorInactive)).
			Padding(0, 1),
		SelectedCell: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(highlight)).
			Padding(0, 1),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color(highlight)).
			Padding(1, 2),
		Status: lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230")).
			Padding(0, 1),
	}
}
