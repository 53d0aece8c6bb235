package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fanhub/fanhub-terminal/pkg/invite"
	"github.com/fanhub/fanhub-terminal/pkg/models"
)

// StatusMsg shows a transient line in the status bar
type StatusMsg string

type clearStatusMsg struct {
	id int
}

type collectionLoadedMsg struct {
	kind models.CollectionKind
	err  error
}

type probeMsg struct {
	kind  models.CollectionKind
	ready []string
}

type inviteMsg struct {
	display invite.Display
	err     error
}

type channelsMsg struct {
	channels []models.Channel
	err      error
}

type siteMsg struct {
	assets *models.SiteAssets
	err    error
}

type inviteTickMsg struct{}

type statsTickMsg struct{}

type joinDoneMsg struct {
	err error
}

type copyDoneMsg struct {
	err error
}

type openDoneMsg struct {
	err error
}

type collectDoneMsg struct {
	result models.ActionResult
	text   string
}

type themeMsg struct {
	theme string
	err   error
}

func clearStatusCmd(id int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}
