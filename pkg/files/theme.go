package files

import (
	"fmt"
	"strings"

	"github.com/fanhub/fanhub-terminal/pkg/models"
)

// ResolveTheme returns the stored theme, or asks hasDark when none is
// stored
func ResolveTheme(settings *models.Settings, hasDark func() bool) string {
	if settings != nil && models.ValidTheme(settings.Theme) {
		return settings.Theme
	}
	if hasDark != nil && hasDark() {
		return models.ThemeDark
	}
	return models.ThemeLight
}

// ToggleTheme returns the opposite theme
func ToggleTheme(theme string) string {
	if theme == models.ThemeDark {
		return models.ThemeLight
	}
	return models.ThemeDark
}

// SaveTheme persists theme, keeping the other preferences
func SaveTheme(theme string) error {
	theme = strings.ToLower(strings.TrimSpace(theme))
	if !models.ValidTheme(theme) {
		return fmt.Errorf("invalid theme %q: must be %s or %s", theme, models.ThemeDark, models.ThemeLight)
	}

	settings, err := ReadSettings()
	if err != nil {
		settings = models.DefaultSettings()
	}
	settings.Theme = theme
	return WriteSettings(settings)
}

// Toggle flips the effective theme and saves it, returning the new value
func Toggle(hasDark func() bool) (string, error) {
	settings, err := ReadSettings()
	if err != nil {
		settings = models.DefaultSettings()
	}
	next := ToggleTheme(ResolveTheme(settings, hasDark))
	if err := SaveTheme(next); err != nil {
		return "", err
	}
	return next, nil
}
