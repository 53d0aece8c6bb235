package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fanhub/fanhub-terminal/pkg/admin"
	"github.com/fanhub/fanhub-terminal/pkg/api"
	"github.com/fanhub/fanhub-terminal/pkg/gallery"
	"github.com/fanhub/fanhub-terminal/pkg/invite"
	"github.com/fanhub/fanhub-terminal/pkg/models"
	"github.com/fanhub/fanhub-terminal/pkg/testhelpers"
)

type stubInvite struct {
	display invite.Display
	err     error
	calls   int
}

func (s *stubInvite) Fetch(ctx context.Context) (invite.Display, error) {
	s.calls++
	return s.display, s.err
}

type stubLauncher struct {
	joinErr error
	copyErr error
	joined  int
	copied  int
}

func (s *stubLauncher) Join(ctx context.Context) error {
	s.joined++
	return s.joinErr
}

func (s *stubLauncher) Copy() error {
	s.copied++
	return s.copyErr
}

type stubProber struct {
	ready []string
}

func (s stubProber) Probe(ctx context.Context, sources []string) []string {
	return s.ready
}

type stubCollector struct {
	calls int
}

func (s *stubCollector) Collect(ctx context.Context) (models.ActionResult, string) {
	s.calls++
	return models.ActionResult{Status: "ok"}, admin.StatusCollected
}

func newTestApp(t *testing.T, opts Options) *App {
	t.Helper()
	if opts.HasDarkBackground == nil {
		opts.HasDarkBackground = func() bool { return true }
	}
	if opts.ToggleTheme == nil {
		opts.ToggleTheme = func(func() bool) (string, error) { return models.ThemeLight, nil }
	}
	if opts.OpenURL == nil {
		opts.OpenURL = func(string) error { return nil }
	}
	app := NewApp(opts)
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return app
}

func newBackendApp(t *testing.T, opts Options) (*App, *testhelpers.Backend) {
	t.Helper()
	backend := testhelpers.NewBackend(t)
	client, err := api.NewClient(backend.URL(), api.WithAdminToken(backend.AdminToken()))
	require.NoError(t, err)

	opts.Collections = client
	opts.Channels = client
	opts.Site = client
	return newTestApp(t, opts), backend
}

// load runs one collection load through the update loop and returns the
// follow-up command
func load(app *App, kind models.CollectionKind) tea.Cmd {
	msg := app.loadCollection(kind)()
	_, cmd := app.Update(msg)
	return cmd
}

func press(app *App, keys ...string) {
	for _, k := range keys {
		app.Update(keyMsg(k))
	}
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func click(app *App, x, y int) {
	app.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

func TestNewAppStartsLoading(t *testing.T) {
	app := newTestApp(t, Options{})

	for _, kind := range collections {
		assert.Equal(t, gallery.MessageLoading, app.grids[kind].Message())
		assert.Equal(t, gallery.CategoryAll, app.sections[kind].Active())
	}
	assert.Equal(t, invite.TextFetching, app.invite.Source)
	assert.Equal(t, tabGallery, app.active)
	assert.Equal(t, models.ThemeDark, app.styles.Theme)
	assert.Contains(t, app.View(), "Loading...")
}

func TestNewAppHonoursSettings(t *testing.T) {
	settings := models.DefaultSettings()
	settings.Theme = models.ThemeLight
	settings.UI.DefaultTab = "jenna"

	app := newTestApp(t, Options{Settings: settings})
	assert.Equal(t, tabJenna, app.active)
	assert.Equal(t, models.ThemeLight, app.styles.Theme)
}

func TestAppLoadRendersAndBinds(t *testing.T) {
	app, _ := newBackendApp(t, Options{})

	load(app, models.CollectionGallery)
	load(app, models.CollectionJenna)

	assert.Len(t, app.grids[models.CollectionGallery].Items(), 5)
	assert.Len(t, app.grids[models.CollectionJenna].Items(), 5)
	assert.Equal(t, 10, app.lightbox.Bound())
	assert.Equal(t, "5", app.stats.GalleryCount)
	assert.Equal(t, "5", app.stats.JennaCount)
	assert.Contains(t, app.View(), "artlover99")
}

func TestAppFilterUsesCache(t *testing.T) {
	app, backend := newBackendApp(t, Options{})
	load(app, models.CollectionGallery)
	hits := backend.Hits("/api/gallery")

	press(app, "f")
	assert.Equal(t, "fan-art", app.sections[models.CollectionGallery].Active())
	assert.Len(t, app.grids[models.CollectionGallery].Items(), 2)
	assert.Equal(t, 2, app.lightbox.BoundIn(models.CollectionGallery))

	press(app, "f")
	assert.Equal(t, "edits", app.sections[models.CollectionGallery].Active())
	assert.Len(t, app.grids[models.CollectionGallery].Items(), 1)

	press(app, "F", "F")
	assert.Equal(t, gallery.CategoryAll, app.sections[models.CollectionGallery].Active())

	press(app, "f", "a")
	assert.Equal(t, gallery.CategoryAll, app.sections[models.CollectionGallery].Active())
	assert.Len(t, app.grids[models.CollectionGallery].Items(), 5)
	assert.Equal(t, 5, app.lightbox.BoundIn(models.CollectionGallery))

	assert.Equal(t, hits, backend.Hits("/api/gallery"))
}

func TestAppFilterBeforeLoadRendersNothing(t *testing.T) {
	app := newTestApp(t, Options{})

	press(app, "f")
	assert.Equal(t, "fan-art", app.sections[models.CollectionGallery].Active())
	assert.Equal(t, gallery.MessageLoading, app.grids[models.CollectionGallery].Message())
}

func TestAppLoadFailureKeepsCache(t *testing.T) {
	app, backend := newBackendApp(t, Options{})

	backend.FailNext("/api/jenna", 1)
	load(app, models.CollectionJenna)
	assert.Equal(t, gallery.MessageImagesFailed, app.grids[models.CollectionJenna].Message())
	assert.Equal(t, "—", app.stats.JennaCount)

	load(app, models.CollectionGallery)
	backend.FailNext("/api/gallery", 1)
	load(app, models.CollectionGallery)
	assert.Equal(t, gallery.MessageGalleryFailed, app.grids[models.CollectionGallery].Message())
	assert.Equal(t, 5, app.sections[models.CollectionGallery].Store().Len())

	// nothing to open while the placeholder is up
	press(app, "enter")
	assert.False(t, app.lightbox.Visible())
}

func TestAppSuccessfulLoadResetsFilter(t *testing.T) {
	app, _ := newBackendApp(t, Options{})
	load(app, models.CollectionGallery)
	press(app, "f")

	load(app, models.CollectionGallery)
	assert.Equal(t, gallery.CategoryAll, app.sections[models.CollectionGallery].Active())
	assert.Len(t, app.grids[models.CollectionGallery].Items(), 5)
}

func TestAppLightboxKeys(t *testing.T) {
	app, _ := newBackendApp(t, Options{})
	load(app, models.CollectionGallery)

	press(app, "enter")
	require.True(t, app.lightbox.Visible())
	assert.Contains(t, app.View(), "gallery · 1 of 5")

	press(app, "right")
	_, group, idx := app.lightbox.Current()
	assert.Equal(t, models.CollectionGallery, group)
	assert.Equal(t, 1, idx)
	assert.Equal(t, 1, app.grids[models.CollectionGallery].Cursor())

	press(app, "esc")
	assert.False(t, app.lightbox.Visible())

	press(app, "enter", "x")
	assert.False(t, app.lightbox.Visible())

	// closing a hidden lightbox does nothing
	press(app, "esc")
	assert.False(t, app.lightbox.Visible())
}

func TestAppLightboxOpenInBrowser(t *testing.T) {
	var opened []string
	app, _ := newBackendApp(t, Options{OpenURL: func(u string) error {
		opened = append(opened, u)
		return nil
	}})
	load(app, models.CollectionGallery)

	press(app, "enter")
	_, cmd := app.Update(keyMsg("o"))
	require.NotNil(t, cmd)
	app.Update(cmd())

	assert.Equal(t, []string{"https://images.example.com/photo-1.jpg"}, opened)
	assert.True(t, app.lightbox.Visible())
}

func TestAppLightboxMouse(t *testing.T) {
	app, _ := newBackendApp(t, Options{})
	load(app, models.CollectionGallery)

	top := lipgloss.Height(app.renderTop())
	click(app, cellWidth+1, top+1)
	require.True(t, app.lightbox.Visible())
	_, _, idx := app.lightbox.Current()
	assert.Equal(t, 1, idx)

	m := app.currentModal()
	click(app, m.x+1, m.y+1)
	assert.True(t, app.lightbox.Visible())

	click(app, 0, 0)
	assert.False(t, app.lightbox.Visible())
}

func TestAppProbeMarksReady(t *testing.T) {
	app, _ := newBackendApp(t, Options{Prober: stubProber{ready: []string{"https://images.example.com/photo-2.jpg"}}})

	cmd := load(app, models.CollectionGallery)
	require.NotNil(t, cmd)
	app.Update(cmd())

	grid := app.grids[models.CollectionGallery]
	assert.True(t, grid.Ready("https://images.example.com/photo-2.jpg"))
	assert.False(t, grid.Ready("https://images.example.com/photo-1.jpg"))
}

func TestAppInvite(t *testing.T) {
	fetcher := &stubInvite{display: invite.Display{Members: "12,345 members", Online: "678 online", Server: "Fan Server", Source: invite.TextAPI, LastUpdated: "Last updated: 10:30:00 AM", Available: true}}
	app := newTestApp(t, Options{Invite: fetcher})

	cmd := app.fetchInvite()
	assert.True(t, app.inviteBusy)
	assert.Equal(t, invite.TextFetching, app.invite.Source)

	app.Update(cmd())
	assert.False(t, app.inviteBusy)
	assert.Equal(t, "12,345 members", app.invite.Members)
	assert.Contains(t, app.View(), "Fan Server")
	assert.Contains(t, app.View(), "678 online")

	// a failed refresh degrades to the unavailable display
	fetcher.display, fetcher.err = invite.Unavailable(), errors.New("boom")
	_, cmd = app.Update(keyMsg("r"))
	require.NotNil(t, cmd)
	app.Update(cmd())
	assert.Equal(t, invite.TextUnavailable, app.invite.Members)
	assert.Empty(t, app.invite.Online)
	assert.Equal(t, 2, fetcher.calls)
}

func TestAppInviteTickRefreshes(t *testing.T) {
	fetcher := &stubInvite{display: invite.Unavailable()}
	app := newTestApp(t, Options{Invite: fetcher})

	_, cmd := app.Update(inviteTickMsg{})
	assert.NotNil(t, cmd)
	assert.True(t, app.inviteBusy)
}

func TestAppStatsTick(t *testing.T) {
	now := time.Date(2024, 1, 15, 14, 5, 9, 0, time.Local)
	app, _ := newBackendApp(t, Options{Now: func() time.Time { return now }})
	load(app, models.CollectionGallery)

	app.stats = gallery.Stats{}
	_, cmd := app.Update(statsTickMsg{})
	assert.NotNil(t, cmd)
	assert.Equal(t, "5", app.stats.GalleryCount)
	assert.Equal(t, "1/15/2024 2:05:09 PM", app.stats.LastCollect)
}

func TestAppCopyAndJoin(t *testing.T) {
	launcher := &stubLauncher{}
	app := newTestApp(t, Options{Launcher: launcher})

	_, cmd := app.Update(keyMsg("c"))
	require.NotNil(t, cmd)
	app.Update(cmd())
	assert.Equal(t, invite.TextCopied, app.statusMsg)

	launcher.copyErr = errors.New("no clipboard")
	_, cmd = app.Update(keyMsg("c"))
	app.Update(cmd())
	assert.Equal(t, invite.TextCopyFailed, app.statusMsg)

	_, cmd = app.Update(keyMsg("i"))
	require.NotNil(t, cmd)
	app.Update(cmd())
	assert.Equal(t, joinOpenedText, app.statusMsg)
	assert.Equal(t, 1, launcher.joined)
	assert.Equal(t, 2, launcher.copied)
}

func TestAppThemeToggle(t *testing.T) {
	app := newTestApp(t, Options{})

	_, cmd := app.Update(keyMsg("t"))
	require.NotNil(t, cmd)
	app.Update(cmd())
	assert.Equal(t, models.ThemeLight, app.styles.Theme)
	assert.Equal(t, "Theme: light", app.statusMsg)

	app.Update(themeMsg{err: errors.New("read-only")})
	assert.Equal(t, models.ThemeLight, app.styles.Theme)
	assert.True(t, strings.HasPrefix(app.statusMsg, "Could not save theme"))
}

func TestAppTabsAndChannels(t *testing.T) {
	app := newTestApp(t, Options{})

	press(app, "tab")
	assert.Equal(t, tabJenna, app.active)
	press(app, "tab")
	assert.Equal(t, tabChannels, app.active)
	assert.Contains(t, app.View(), channelsLoadingText)

	app.Update(channelsMsg{err: errors.New("down")})
	assert.Contains(t, app.View(), channelsFailedText)

	app.Update(channelsMsg{channels: testhelpers.ChannelFixture()})
	assert.Contains(t, app.View(), "#qotd")
	assert.Contains(t, app.View(), "9 channels")

	press(app, "tab")
	assert.Equal(t, tabGallery, app.active)
	press(app, "shift+tab")
	assert.Equal(t, tabChannels, app.active)
}

func TestAppSiteAssets(t *testing.T) {
	app, _ := newBackendApp(t, Options{})

	app.Update(app.fetchSite()())
	assert.Equal(t, "/uploads/approved/banner.jpg", app.site.Banner)
	assert.Contains(t, app.View(), "Banner: /uploads/approved/banner.jpg")

	app.Update(siteMsg{err: errors.New("down")})
	assert.Equal(t, "/uploads/approved/pfp.png", app.site.PFP)
}

func TestAppCollect(t *testing.T) {
	collector := &stubCollector{}
	app := newTestApp(t, Options{Collector: collector})

	_, cmd := app.Update(keyMsg("C"))
	assert.NotNil(t, cmd)
	assert.Equal(t, admin.StatusCollecting, app.statusMsg)

	app.Update(collectDoneMsg{result: models.ActionResult{Status: "ok"}, text: admin.StatusCollected})
	assert.Equal(t, admin.StatusCollected, app.statusMsg)
	assert.True(t, app.loading[models.CollectionJenna])

	app.Update(collectDoneMsg{text: admin.StatusCollectFailed})
	assert.Equal(t, admin.StatusCollectFailed, app.statusMsg)
}

func TestAppCollectWithoutPanel(t *testing.T) {
	app := newTestApp(t, Options{})

	press(app, "C")
	assert.Equal(t, collectNotAllowedText, app.statusMsg)
}

func TestAppStatusMessages(t *testing.T) {
	app := newTestApp(t, Options{})

	_, cmd := app.Update(StatusMsg("Uploaded"))
	assert.NotNil(t, cmd)
	assert.Equal(t, "Uploaded", app.statusMsg)
	first := app.statusID

	app.Update(StatusMsg("Newer"))
	app.Update(clearStatusMsg{id: first})
	assert.Equal(t, "Newer", app.statusMsg)

	app.Update(clearStatusMsg{id: app.statusID})
	assert.Empty(t, app.statusMsg)
}

func TestAppQuit(t *testing.T) {
	app := newTestApp(t, Options{})

	_, cmd := app.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
