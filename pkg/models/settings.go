package models

const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Settings represents the locally persisted preferences
type Settings struct {
	Theme string     `yaml:"site-theme,omitempty"`
	UI    UISettings `yaml:"ui"`
}

// UISettings controls UI preferences
type UISettings struct {
	ShowStats  bool   `yaml:"show_stats"`
	DefaultTab string `yaml:"default_tab"` // "gallery", "jenna" or "channels"
}

// DefaultSettings returns the default preferences. An empty theme means the
// terminal background decides.
func DefaultSettings() *Settings {
	return &Settings{
		Theme: "",
		UI: UISettings{
			ShowStats:  true,
			DefaultTab: string(CollectionGallery),
		},
	}
}

// ValidTheme reports whether t is a recognized theme value
func ValidTheme(t string) bool {
	return t == ThemeDark || t == ThemeLight
}
