package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fanhub/fanhub-terminal/pkg/gallery"
	"github.com/fanhub/fanhub-terminal/pkg/models"
)

// tab is one top-level section of the app
type tab int

const (
	tabGallery tab = iota
	tabJenna
	tabChannels
)

var tabs = []tab{tabGallery, tabJenna, tabChannels}

func (t tab) String() string {
	switch t {
	case tabJenna:
		return "jenna"
	case tabChannels:
		return "channels"
	default:
		return "gallery"
	}
}

// title is the label shown in the tab bar
func (t tab) title() string {
	switch t {
	case tabJenna:
		return "Jenna"
	case tabChannels:
		return "Channels"
	default:
		return "Fan Gallery"
	}
}

// collection returns the image collection behind t, if any
func (t tab) collection() (models.CollectionKind, bool) {
	switch t {
	case tabGallery:
		return models.CollectionGallery, true
	case tabJenna:
		return models.CollectionJenna, true
	}
	return "", false
}

// parseTab maps a settings value to a tab, defaulting to the gallery
func parseTab(name string) tab {
	for _, t := range tabs {
		if t.String() == strings.ToLower(name) {
			return t
		}
	}
	return tabGallery
}

func renderTabs(styles Styles, active tab) string {
	parts := make([]string, 0, len(tabs))
	for _, t := range tabs {
		style := styles.InactiveTab
		if t == active {
			style = styles.ActiveTab
		}
		parts = append(parts, style.Render(t.title()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// renderFilters shows the categories of kind with the active one marked
func renderFilters(styles Styles, kind models.CollectionKind, active string) string {
	categories := gallery.Categories(kind)
	parts := make([]string, 0, len(categories))
	for _, c := range categories {
		if c == active {
			parts = append(parts, styles.FilterOn.Render(c))
		} else {
			parts = append(parts, styles.Filter.Render(c))
		}
	}
	return styles.Dim.Render("Filter: ") + strings.Join(parts, styles.Dim.Render(" | "))
}

// nextCategory steps through kind's categories, wrapping around
func nextCategory(kind models.CollectionKind, current string, delta int) string {
	categories := gallery.Categories(kind)
	idx := 0
	for i, c := range categories {
		if c == current {
			idx = i
			break
		}
	}
	n := len(categories)
	return categories[((idx+delta)%n+n)%n]
}
