package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fanhub/fanhub-terminal/pkg/channels"
	"github.com/fanhub/fanhub-terminal/pkg/gallery"
	"github.com/fanhub/fanhub-terminal/pkg/invite"
	"github.com/fanhub/fanhub-terminal/pkg/models"
)

const logo = "fanhub"

// headerData is everything the header shows
type headerData struct {
	invite    invite.Display
	busy      bool
	spinner   string
	stats     gallery.Stats
	showStats bool
	site      models.SiteAssets
	channels  []models.Channel
}

func renderHeader(width int, styles Styles, d headerData) string {
	headerPadding := lipgloss.NewStyle().
		PaddingLeft(1).
		PaddingRight(1).
		Width(width)

	title := styles.Title.Render(logo)
	if d.invite.Server != "" {
		title += styles.Dim.Render(" · ") + styles.Normal.Render(d.invite.Server)
	}

	counts := []string{styles.Normal.Render(d.invite.Members)}
	if d.invite.Online != "" {
		counts = append(counts, styles.Success.Render(d.invite.Online))
	}
	source := d.invite.Source
	if d.busy && d.spinner != "" {
		source = d.spinner + " " + source
	}
	counts = append(counts, styles.Dim.Render(source), styles.Dim.Render(d.invite.LastUpdated))

	lines := []string{title, strings.Join(counts, styles.Dim.Render(" · "))}

	if d.showStats {
		lines = append(lines, styles.Dim.Render(fmt.Sprintf("Gallery: %s · Today: %d · Jenna: %s · Last collect: %s",
			d.stats.GalleryCount, d.stats.TodayCount, d.stats.JennaCount, d.stats.LastCollect)))
	}

	if len(d.channels) > 0 {
		lines = append(lines, channels.RenderBadges(d.channels))
	}

	if d.site.Banner != "" || d.site.PFP != "" {
		lines = append(lines, styles.Dim.Render(fit(fmt.Sprintf("Banner: %s  PFP: %s", orDash(d.site.Banner), orDash(d.site.PFP)), max(width-2, 1))))
	}

	return headerPadding.Render(strings.Join(lines, "\n"))
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
