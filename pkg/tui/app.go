package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/fanhub/fanhub-terminal/pkg/admin"
	"github.com/fanhub/fanhub-terminal/pkg/channels"
	"github.com/fanhub/fanhub-terminal/pkg/files"
	"github.com/fanhub/fanhub-terminal/pkg/gallery"
	"github.com/fanhub/fanhub-terminal/pkg/invite"
	"github.com/fanhub/fanhub-terminal/pkg/models"
)

const (
	statusDuration        = 3 * time.Second
	defaultInviteRefresh  = time.Minute
	defaultStatsRefresh   = 30 * time.Second
	channelsLoadingText   = "Loading..."
	channelsFailedText    = "Could not load channels."
	joinOpenedText        = "Opened the invite in your browser"
	collectNotAllowedText = "Collecting needs the admin panel"
)

var collections = []models.CollectionKind{models.CollectionGallery, models.CollectionJenna}

// InviteFetcher looks up the invite widget text
type InviteFetcher interface {
	Fetch(ctx context.Context) (invite.Display, error)
}

// InviteLauncher joins the server and copies the invite
type InviteLauncher interface {
	Join(ctx context.Context) error
	Copy() error
}

// ChannelSource lists the server's channels
type ChannelSource interface {
	Channels(ctx context.Context) ([]models.Channel, error)
}

// SiteSource looks up the banner and profile picture
type SiteSource interface {
	Site(ctx context.Context) (*models.SiteAssets, error)
}

// ReadinessProber reports which image sources answer
type ReadinessProber interface {
	Probe(ctx context.Context, sources []string) []string
}

// Collector runs the collection job behind the jenna section's collect key
type Collector interface {
	Collect(ctx context.Context) (models.ActionResult, string)
}

// Options wires the app to its backends. Nil services are skipped.
type Options struct {
	Context     context.Context
	Collections gallery.Source
	Invite      InviteFetcher
	Launcher    InviteLauncher
	Channels    ChannelSource
	Site        SiteSource
	Prober      ReadinessProber
	Collector   Collector
	Settings    *models.Settings

	InviteRefresh time.Duration
	StatsRefresh  time.Duration

	HasDarkBackground func() bool
	ToggleTheme       func(hasDark func() bool) (string, error)
	OpenURL           func(string) error
	Now               func() time.Time
}

// App is the root bubbletea model
type App struct {
	opts     Options
	ctx      context.Context
	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	viewport viewport.Model
	styles   Styles

	active   tab
	grids    map[models.CollectionKind]*Grid
	sections map[models.CollectionKind]*gallery.Section
	lightbox *gallery.Lightbox
	loading  map[models.CollectionKind]bool

	invite         invite.Display
	inviteBusy     bool
	channels       []models.Channel
	channelsFailed bool
	site           models.SiteAssets
	stats          gallery.Stats
	showStats      bool

	followCursor bool
	width        int
	height       int
	statusMsg    string
	statusID     int
}

// NewApp creates the app. Every collection starts out showing the loading
// placeholder with the "all" filter active.
func NewApp(opts Options) *App {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Settings == nil {
		opts.Settings = models.DefaultSettings()
	}
	if opts.InviteRefresh <= 0 {
		opts.InviteRefresh = defaultInviteRefresh
	}
	if opts.StatsRefresh <= 0 {
		opts.StatsRefresh = defaultStatsRefresh
	}
	if opts.HasDarkBackground == nil {
		opts.HasDarkBackground = lipgloss.HasDarkBackground
	}
	if opts.ToggleTheme == nil {
		opts.ToggleTheme = files.Toggle
	}
	if opts.OpenURL == nil {
		opts.OpenURL = invite.OpenBrowser
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	a := &App{
		opts:     opts,
		ctx:      opts.Context,
		keys:     defaultKeyMap(),
		help:     help.New(),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		viewport: viewport.New(80, 20),
		styles:   NewStyles(files.ResolveTheme(opts.Settings, opts.HasDarkBackground)),
		active:   parseTab(opts.Settings.UI.DefaultTab),
		grids:    make(map[models.CollectionKind]*Grid),
		sections: make(map[models.CollectionKind]*gallery.Section),
		lightbox: gallery.NewLightbox(),
		loading:  make(map[models.CollectionKind]bool),
		invite: invite.Display{
			Members:     "— members",
			Source:      invite.TextFetching,
			LastUpdated: invite.TextNoUpdate,
		},
		showStats: opts.Settings.UI.ShowStats,
	}

	for _, kind := range collections {
		grid := NewGrid(kind)
		a.grids[kind] = grid
		a.sections[kind] = gallery.NewSection(gallery.NewStore(kind, opts.Collections), grid, a.lightbox)
		a.sections[kind].BeginLoad()
	}
	a.refreshStats()

	return a
}

// Init starts the initial loads and the periodic refreshes
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.spinner.Tick}
	for _, kind := range collections {
		cmds = append(cmds, a.loadCollection(kind))
	}
	cmds = append(cmds,
		a.fetchInvite(),
		a.fetchChannels(),
		a.fetchSite(),
		a.inviteTick(),
		a.statsTick(),
	)
	return tea.Batch(cmds...)
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := a.update(msg)
	a.syncViewport()
	return a, cmd
}

func (a *App) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		for _, g := range a.grids {
			g.SetWidth(msg.Width)
		}
		a.followCursor = true
		return nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.MouseMsg:
		a.handleMouse(msg)
		return nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return cmd

	case collectionLoadedMsg:
		a.loading[msg.kind] = false
		a.sections[msg.kind].FinishLoad(msg.err)
		a.refreshStats()
		if msg.err != nil {
			return nil
		}
		return a.probe(msg.kind)

	case probeMsg:
		a.grids[msg.kind].MarkReady(msg.ready)
		return nil

	case inviteMsg:
		a.invite = msg.display
		a.inviteBusy = false
		return nil

	case inviteTickMsg:
		return tea.Batch(a.fetchInvite(), a.inviteTick())

	case statsTickMsg:
		a.refreshStats()
		return a.statsTick()

	case channelsMsg:
		if msg.err != nil {
			slog.Warn("channels unavailable", "error", msg.err)
			a.channelsFailed = true
			return nil
		}
		a.channels = msg.channels
		a.channelsFailed = false
		return nil

	case siteMsg:
		if msg.err != nil {
			slog.Warn("site assets unavailable", "error", msg.err)
			return nil
		}
		if msg.assets != nil {
			a.site = *msg.assets
		}
		return nil

	case joinDoneMsg:
		if msg.err != nil {
			return a.setStatus(msg.err.Error())
		}
		return a.setStatus(joinOpenedText)

	case copyDoneMsg:
		if msg.err != nil {
			slog.Warn("copy invite failed", "error", msg.err)
			return a.setStatus(invite.TextCopyFailed)
		}
		return a.setStatus(invite.TextCopied)

	case openDoneMsg:
		if msg.err != nil {
			return a.setStatus(msg.err.Error())
		}
		return nil

	case collectDoneMsg:
		status := a.setStatus(msg.text)
		if msg.text != admin.StatusCollected {
			return status
		}
		return tea.Batch(status, a.loadCollection(models.CollectionJenna))

	case themeMsg:
		if msg.err != nil {
			return a.setStatus("Could not save theme: " + msg.err.Error())
		}
		a.styles = NewStyles(msg.theme)
		return a.setStatus("Theme: " + msg.theme)

	case StatusMsg:
		return a.setStatus(string(msg))

	case clearStatusMsg:
		if msg.id == a.statusID {
			a.statusMsg = ""
		}
		return nil
	}

	return nil
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		return tea.Quit
	}
	if a.lightbox.Visible() {
		return a.handleLightboxKey(msg)
	}

	kind, isCollection := a.active.collection()

	switch {
	case key.Matches(msg, a.keys.Quit):
		return tea.Quit

	case key.Matches(msg, a.keys.NextTab):
		a.switchTab(1)
	case key.Matches(msg, a.keys.PrevTab):
		a.switchTab(-1)

	case key.Matches(msg, a.keys.Up):
		a.move(0, -1)
	case key.Matches(msg, a.keys.Down):
		a.move(0, 1)
	case key.Matches(msg, a.keys.Left):
		a.move(-1, 0)
	case key.Matches(msg, a.keys.Right):
		a.move(1, 0)

	case key.Matches(msg, a.keys.Open):
		if isCollection && len(a.grids[kind].Items()) > 0 {
			a.lightbox.Click(kind, a.grids[kind].Cursor())
		}

	case key.Matches(msg, a.keys.NextFilter):
		if isCollection {
			a.applyFilter(kind, nextCategory(kind, a.sections[kind].Active(), 1))
		}
	case key.Matches(msg, a.keys.PrevFilter):
		if isCollection {
			a.applyFilter(kind, nextCategory(kind, a.sections[kind].Active(), -1))
		}
	case key.Matches(msg, a.keys.ResetFilter):
		if isCollection {
			a.applyFilter(kind, gallery.CategoryAll)
		}

	case key.Matches(msg, a.keys.Refresh):
		return a.fetchInvite()
	case key.Matches(msg, a.keys.Reload):
		return tea.Batch(
			a.loadCollection(models.CollectionGallery),
			a.loadCollection(models.CollectionJenna),
			a.fetchChannels(),
		)
	case key.Matches(msg, a.keys.Collect):
		return a.collect()
	case key.Matches(msg, a.keys.Theme):
		return a.toggleTheme()
	case key.Matches(msg, a.keys.Copy):
		return a.copyInvite()
	case key.Matches(msg, a.keys.Join):
		return a.join()
	case key.Matches(msg, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
	}

	return nil
}

func (a *App) handleLightboxKey(msg tea.KeyMsg) tea.Cmd {
	if a.lightbox.HandleKey(msg.String()) {
		return nil
	}

	switch {
	case key.Matches(msg, a.keys.Close):
		a.lightbox.Close()
	case key.Matches(msg, a.keys.Left), key.Matches(msg, a.keys.Up):
		a.stepLightbox(-1)
	case key.Matches(msg, a.keys.Right), key.Matches(msg, a.keys.Down):
		a.stepLightbox(1)
	case key.Matches(msg, a.keys.Browser):
		item, _, _ := a.lightbox.Current()
		return a.openURL(item.Source)
	case key.Matches(msg, a.keys.Quit):
		return tea.Quit
	}
	return nil
}

func (a *App) handleMouse(msg tea.MouseMsg) {
	if tea.MouseEvent(msg).IsWheel() {
		if a.lightbox.Visible() {
			return
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			a.viewport.LineUp(1)
		case tea.MouseButtonWheelDown:
			a.viewport.LineDown(1)
		}
		return
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return
	}

	if a.lightbox.Visible() {
		if !a.currentModal().contains(msg.X, msg.Y) {
			a.lightbox.ClickBackdrop()
		}
		return
	}

	kind, ok := a.active.collection()
	if !ok {
		return
	}
	top := lipgloss.Height(a.renderTop())
	idx, ok := a.grids[kind].CellAt(msg.X, msg.Y-top+a.viewport.YOffset)
	if !ok {
		return
	}
	a.grids[kind].Select(idx)
	a.lightbox.Click(kind, idx)
}

func (a *App) switchTab(delta int) {
	n := len(tabs)
	a.active = tabs[((int(a.active)+delta)%n+n)%n]
	a.viewport.GotoTop()
	a.followCursor = true
}

func (a *App) move(dx, dy int) {
	if kind, ok := a.active.collection(); ok {
		a.grids[kind].Move(dx, dy)
		a.followCursor = true
		return
	}
	if dy < 0 {
		a.viewport.LineUp(-dy)
	} else if dy > 0 {
		a.viewport.LineDown(dy)
	}
}

func (a *App) stepLightbox(delta int) {
	if !a.lightbox.Step(delta) {
		return
	}
	_, group, idx := a.lightbox.Current()
	a.grids[group].Select(idx)
	a.followCursor = true
}

// applyFilter re-renders kind from its cache; no request is made
func (a *App) applyFilter(kind models.CollectionKind, category string) {
	a.sections[kind].SetFilter(category)
	a.viewport.GotoTop()
	a.followCursor = true
}

func (a *App) refreshStats() {
	a.stats = gallery.Snapshot(
		a.sections[models.CollectionGallery].Store().Records(),
		a.sections[models.CollectionJenna].Store().Records(),
		a.opts.Now(),
	)
}

func (a *App) setStatus(text string) tea.Cmd {
	a.statusMsg = text
	a.statusID++
	return clearStatusCmd(a.statusID, statusDuration)
}

func (a *App) loadCollection(kind models.CollectionKind) tea.Cmd {
	section := a.sections[kind]
	section.BeginLoad()
	a.loading[kind] = true

	ctx, store := a.ctx, section.Store()
	return func() tea.Msg {
		return collectionLoadedMsg{kind: kind, err: store.Load(ctx)}
	}
}

func (a *App) probe(kind models.CollectionKind) tea.Cmd {
	if a.opts.Prober == nil {
		return nil
	}
	ctx, prober, sources := a.ctx, a.opts.Prober, a.grids[kind].Sources()
	return func() tea.Msg {
		return probeMsg{kind: kind, ready: prober.Probe(ctx, sources)}
	}
}

func (a *App) fetchInvite() tea.Cmd {
	if a.opts.Invite == nil {
		return nil
	}
	a.invite = a.invite.Fetching()
	a.inviteBusy = true

	ctx, fetcher := a.ctx, a.opts.Invite
	return func() tea.Msg {
		display, err := fetcher.Fetch(ctx)
		return inviteMsg{display: display, err: err}
	}
}

func (a *App) fetchChannels() tea.Cmd {
	if a.opts.Channels == nil {
		return nil
	}
	ctx, src := a.ctx, a.opts.Channels
	return func() tea.Msg {
		chs, err := src.Channels(ctx)
		return channelsMsg{channels: chs, err: err}
	}
}

func (a *App) fetchSite() tea.Cmd {
	if a.opts.Site == nil {
		return nil
	}
	ctx, src := a.ctx, a.opts.Site
	return func() tea.Msg {
		assets, err := src.Site(ctx)
		return siteMsg{assets: assets, err: err}
	}
}

func (a *App) inviteTick() tea.Cmd {
	return tea.Tick(a.opts.InviteRefresh, func(time.Time) tea.Msg {
		return inviteTickMsg{}
	})
}

func (a *App) statsTick() tea.Cmd {
	return tea.Tick(a.opts.StatsRefresh, func(time.Time) tea.Msg {
		return statsTickMsg{}
	})
}

func (a *App) join() tea.Cmd {
	if a.opts.Launcher == nil {
		return nil
	}
	ctx, launcher := a.ctx, a.opts.Launcher
	return func() tea.Msg {
		return joinDoneMsg{err: launcher.Join(ctx)}
	}
}

func (a *App) copyInvite() tea.Cmd {
	if a.opts.Launcher == nil {
		return nil
	}
	launcher := a.opts.Launcher
	return func() tea.Msg {
		return copyDoneMsg{err: launcher.Copy()}
	}
}

func (a *App) openURL(url string) tea.Cmd {
	if url == "" {
		return nil
	}
	open := a.opts.OpenURL
	return func() tea.Msg {
		return openDoneMsg{err: open(url)}
	}
}

func (a *App) collect() tea.Cmd {
	if a.opts.Collector == nil {
		return a.setStatus(collectNotAllowedText)
	}
	status := a.setStatus(admin.StatusCollecting)

	ctx, collector := a.ctx, a.opts.Collector
	return tea.Batch(status, func() tea.Msg {
		res, text := collector.Collect(ctx)
		return collectDoneMsg{result: res, text: text}
	})
}

func (a *App) toggleTheme() tea.Cmd {
	toggle, hasDark := a.opts.ToggleTheme, a.opts.HasDarkBackground
	return func() tea.Msg {
		theme, err := toggle(hasDark)
		return themeMsg{theme: theme, err: err}
	}
}

func (a *App) currentModal() modal {
	item, group, idx := a.lightbox.Current()
	return renderLightbox(a.styles, item, group, idx, a.lightbox.BoundIn(group),
		a.grids[group].Ready(item.Source), a.width, a.height)
}

func (a *App) renderTop() string {
	data := headerData{
		invite:    a.invite,
		busy:      a.inviteBusy,
		spinner:   a.spinner.View(),
		stats:     a.stats,
		showStats: a.showStats,
		site:      a.site,
		channels:  channels.Preview(a.channels),
	}

	sub := a.styles.Dim.Render(channelsCountText(len(a.channels)))
	if kind, ok := a.active.collection(); ok {
		sub = renderFilters(a.styles, kind, a.sections[kind].Active())
		if a.loading[kind] {
			sub += " " + a.spinner.View()
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		renderHeader(a.width, a.styles, data),
		renderTabs(a.styles, a.active),
		sub,
	)
}

func (a *App) renderFooter() string {
	status := ""
	if a.statusMsg != "" {
		status = a.styles.Status.Render(a.statusMsg)
	}
	return lipgloss.JoinVertical(lipgloss.Left, status, a.help.View(a.keys))
}

func (a *App) bodyContent() string {
	if kind, ok := a.active.collection(); ok {
		return a.grids[kind].View(a.styles)
	}

	if len(a.channels) == 0 {
		if a.channelsFailed {
			return a.styles.Placeholder.Render(channelsFailedText)
		}
		return a.styles.Placeholder.Render(channelsLoadingText)
	}
	return channels.RenderList(a.channels, a.width)
}

// syncViewport sizes the body to what the header and footer leave and keeps
// the selected cell in view after it moved
func (a *App) syncViewport() {
	height := a.height - lipgloss.Height(a.renderTop()) - lipgloss.Height(a.renderFooter())
	if height < 1 {
		height = 1
	}
	a.viewport.Width = a.width
	a.viewport.Height = height
	a.viewport.SetContent(a.bodyContent())

	if !a.followCursor {
		return
	}
	a.followCursor = false

	kind, ok := a.active.collection()
	if !ok {
		return
	}
	rowTop := a.grids[kind].CursorRow() * cellHeight
	switch {
	case rowTop < a.viewport.YOffset:
		a.viewport.SetYOffset(rowTop)
	case rowTop+cellHeight > a.viewport.YOffset+height:
		a.viewport.SetYOffset(rowTop + cellHeight - height)
	}
}

// View implements tea.Model
func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}
	if a.lightbox.Visible() {
		return a.currentModal().view(a.width, a.height)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		a.renderTop(),
		a.viewport.View(),
		a.renderFooter(),
	)
}

func channelsCountText(n int) string {
	if n == 1 {
		return "1 channel"
	}
	return humanize.Comma(int64(n)) + " channels"
}
