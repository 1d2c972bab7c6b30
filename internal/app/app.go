package app

import (
	"context"
	"os"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/vidyasagar/hike/internal/browser"
	"github.com/vidyasagar/hike/internal/command"
	"github.com/vidyasagar/hike/internal/location"
	"github.com/vidyasagar/hike/internal/storage"
	"github.com/vidyasagar/hike/internal/theme"
	"github.com/vidyasagar/hike/internal/ui"
	"github.com/vidyasagar/hike/internal/watcher"
)

// Mode represents what currently receives key presses.
type Mode int

const (
	ModeViewer     Mode = iota // the document
	ModeCommand                // the command line
	ModeNavigation             // the sidebar
	ModeLeader                 // leader key palette
)

func (md Mode) String() string {
	switch md {
	case ModeCommand:
		return "COMMAND"
	case ModeNavigation:
		return "NAV"
	case ModeLeader:
		return "LEADER"
	default:
		return "VIEW"
	}
}

const leaderTimeout = 2 * time.Second

// loadResultMsg carries a finished load back to the interactive loop.
type loadResultMsg struct {
	result browser.LoadResult
}

// fileChangedMsg is sent when the watched local file changes on disk.
type fileChangedMsg struct {
	path string
}

// clearNotificationMsg is sent when a notification has timed out.
type clearNotificationMsg struct {
	id int
}

// leaderTimeoutMsg is sent when the leader palette times out.
type leaderTimeoutMsg struct {
	seq int
}

// Options carries the collaborators a Model is built from. Only Config is
// required.
type Options struct {
	Config    *storage.Config
	Logger    *zap.Logger
	Fetcher   *browser.Fetcher
	Bookmarks *storage.BookmarkStore
	History   *storage.HistoryFile
	Watcher   *watcher.Watcher

	// Entries is the restored history, oldest first.
	Entries []location.Location
	// Initial is the request given on the command line, if any.
	Initial command.Request
	// Clipboard receives copied locations. It defaults to the system
	// clipboard.
	Clipboard func(string) error
}

// Model is the top-level bubbletea model for hike.
type Model struct {
	cfg    *storage.Config
	logger *zap.Logger
	keys   KeyMap

	viewer   *browser.Viewer
	renderer *browser.Renderer
	content  browser.Content
	outline  *browser.Outline

	bookmarks    *storage.BookmarkStore
	bookmarkList []storage.Bookmark
	historyFile  *storage.HistoryFile
	watcher      *watcher.Watcher
	ctx          context.Context
	stop         context.CancelFunc
	copyText     func(string) error

	// UI components
	titleBar      ui.TitleBar
	tabBar        ui.TabBar
	split         ui.SplitPane
	viewport      ui.PageViewport
	statusBar     ui.StatusBar
	commandLine   ui.CommandLine
	leaderPanel   ui.LeaderPanel
	contentsPanel ui.ListPanel
	bookmarkPanel ui.ListPanel
	historyPanel  ui.ListPanel
	linkPanel     ui.ListPanel
	local         ui.LocalPicker

	mode        Mode
	width       int
	height      int
	lastGKey    bool
	leaderSeq   int
	findQuery   string
	showingHelp bool
	startup     []tea.Cmd
}

// New creates a hike Model.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		def := storage.DefaultConfig()
		cfg = &def
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = browser.NewFetcher()
	}
	copyText := opts.Clipboard
	if copyText == nil {
		copyText = clipboard.WriteAll
	}

	if !theme.Set(cfg.Theme) {
		logger.Warn("unknown theme, using default", zap.String("theme", cfg.Theme))
	}

	viewer := browser.NewViewer(
		browser.NewLoader(fetcher, cfg.MarkdownExtensions, logger.Named("loader")),
		browser.NewForgeResolver(fetcher, logger.Named("forge")),
		browser.NewHistory(cfg.HistoryLength, opts.Entries...),
		logger.Named("viewer"),
	)

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}

	ctx, stop := context.WithCancel(context.Background())
	m := Model{
		cfg:           cfg,
		logger:        logger,
		keys:          DefaultKeyMap(),
		viewer:        viewer,
		renderer:      browser.NewRenderer(glamourStyle(cfg.GlamourStyle)),
		outline:       browser.ParseOutline(""),
		bookmarks:     opts.Bookmarks,
		historyFile:   opts.History,
		watcher:       opts.Watcher,
		ctx:           ctx,
		stop:          stop,
		copyText:      copyText,
		titleBar:      ui.NewTitleBar(),
		tabBar:        ui.NewTabBar(),
		split:         ui.NewSplitPane(cfg.NavigationVisible),
		viewport:      ui.NewPageViewport(),
		statusBar:     ui.NewStatusBar(),
		commandLine:   ui.NewCommandLine(),
		leaderPanel:   ui.NewLeaderPanel(leaderGroups()),
		contentsPanel: ui.NewListPanel("No headings"),
		bookmarkPanel: ui.NewListPanel("No bookmarks yet. Press B to add one."),
		historyPanel:  ui.NewListPanel("No history yet."),
		linkPanel:     ui.NewListPanel("No links"),
		local:         ui.NewLocalPicker(cwd, cfg.MarkdownExtensions),
		mode:          ModeViewer,
	}

	m.refreshHistory()
	m.refreshBookmarks()

	if opts.Initial != nil {
		m.startup = append(m.startup, m.dispatch(opts.Initial))
	} else {
		m.startup = append(m.startup, m.run(m.viewer.Resume()))
	}
	return m
}

// glamourStyle maps the configured style onto a renderer style. "theme"
// follows the active palette.
func glamourStyle(configured string) string {
	if configured == "theme" {
		return theme.Current.Glamour
	}
	return configured
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := append([]tea.Cmd{m.local.Init(), m.waitForChange()}, m.startup...)
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.renderContent(false)
		return m, nil

	case loadResultMsg:
		return m.handleLoadResult(msg.result)

	case fileChangedMsg:
		return m.handleFileChanged(msg.path)

	case clearNotificationMsg:
		m.statusBar.ClearNotification(msg.id)
		return m, nil

	case leaderTimeoutMsg:
		if m.mode == ModeLeader && msg.seq == m.leaderSeq {
			m.leaderPanel.Hide()
			m.setMode(ModeViewer)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	// Directory listings, cursor blinks and mouse events.
	var cmds []tea.Cmd
	cmd, _, _ := m.local.Update(msg)
	cmds = append(cmds, cmd)
	if m.commandLine.IsActive() {
		cl, cmd := m.commandLine.Update(msg)
		m.commandLine = *cl
		cmds = append(cmds, cmd)
	}
	vp, cmd := m.viewport.Update(msg)
	m.viewport = *vp
	cmds = append(cmds, cmd)
	m.statusBar.SetScrollInfo(m.viewport.ScrollInfo())
	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 {
		return "\n  Loading hike..."
	}

	body := m.split.Render(m.sidebarView(), m.viewport.View())
	if m.leaderPanel.IsVisible() {
		body = lipgloss.Place(m.width, m.split.Height(), lipgloss.Center, lipgloss.Center,
			m.leaderPanel.View(),
			lipgloss.WithWhitespaceChars(" "),
			lipgloss.WithWhitespaceForeground(theme.Current.Background),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.titleBar.View(),
		body,
		m.commandLine.View(),
		m.statusBar.View(),
	)
}

// layout recalculates dimensions for all components.
func (m *Model) layout() {
	const chrome = 3 // title bar, command line, status bar
	bodyHeight := max(1, m.height-chrome)

	m.titleBar.SetWidth(m.width)
	m.statusBar.SetWidth(m.width)
	m.commandLine.SetWidth(m.width)
	m.split.SetSize(m.width, bodyHeight)
	m.viewport.SetSize(m.split.DocumentWidth(), bodyHeight)

	sideWidth := m.split.SidebarWidth()
	const tabBarHeight = 2 // tabs and their bottom border
	panelHeight := max(1, bodyHeight-tabBarHeight)
	m.tabBar.SetWidth(sideWidth)
	for _, p := range []*ui.ListPanel{&m.contentsPanel, &m.bookmarkPanel, &m.historyPanel, &m.linkPanel} {
		p.SetSize(sideWidth, panelHeight)
	}
	m.local.SetHeight(panelHeight - 1) // directory header
	m.statusBar.SetScrollInfo(m.viewport.ScrollInfo())
}

func (m *Model) setMode(md Mode) {
	m.mode = md
	m.statusBar.SetMode(md.String())
}

// handleKeyMsg processes key events based on the current mode.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	switch m.mode {
	case ModeCommand:
		return m.handleCommandMode(msg)
	case ModeNavigation:
		return m.handleNavigationMode(msg)
	case ModeLeader:
		return m.handleLeaderMode(msg)
	}
	return m.handleViewerMode(msg)
}

// handleViewerMode processes keys while the document has focus.
func (m Model) handleViewerMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys

	if msg.String() == "g" {
		if m.lastGKey {
			m.viewport.GotoTop()
			m.lastGKey = false
		} else {
			m.lastGKey = true
		}
		m.statusBar.SetScrollInfo(m.viewport.ScrollInfo())
		return m, nil
	}
	m.lastGKey = false

	var cmd tea.Cmd
	switch {
	case msg.Type == tea.KeyEsc && m.showingHelp:
		m.closeHelp()
	case key.Matches(msg, k.Quit):
		return m.quit()
	case key.Matches(msg, k.ScrollDown):
		m.viewport.LineDown(1)
	case key.Matches(msg, k.ScrollUp):
		m.viewport.LineUp(1)
	case key.Matches(msg, k.HalfPageDown):
		m.viewport.HalfPageDown()
	case key.Matches(msg, k.HalfPageUp):
		m.viewport.HalfPageUp()
	case key.Matches(msg, k.GotoTop):
		m.viewport.GotoTop()
	case key.Matches(msg, k.GotoBottom):
		m.viewport.GotoBottom()
	case key.Matches(msg, k.Back):
		cmd = m.backward()
	case key.Matches(msg, k.Forward):
		cmd = m.forward()
	case key.Matches(msg, k.Reload):
		cmd = m.reload()
	case key.Matches(msg, k.FollowLink):
		cmd = m.openInput(ui.InputFollow)
	case key.Matches(msg, k.Find):
		cmd = m.openInput(ui.InputFind)
	case key.Matches(msg, k.FindNext):
		cmd = m.findNext()
	case key.Matches(msg, k.CommandLine):
		cmd = m.openInput(ui.InputCommand)
	case key.Matches(msg, k.Contents):
		m.showTab(ui.TabContents)
	case key.Matches(msg, k.CopyLocation):
		cmd = m.copyLocation()
	case key.Matches(msg, k.Bookmark):
		cmd = m.bookmarkCurrent()
	case key.Matches(msg, k.ToggleNavigation):
		m.toggleNavigation()
	case key.Matches(msg, k.FocusNavigation):
		m.showTab(m.tabBar.Active())
	case key.Matches(msg, k.NextTab):
		m.tabBar.NextTab()
	case key.Matches(msg, k.PrevTab):
		m.tabBar.PrevTab()
	case key.Matches(msg, k.Leader):
		cmd = m.openLeader()
	case key.Matches(msg, k.CycleTheme):
		cmd = m.cycleTheme()
	case key.Matches(msg, k.Help):
		m.toggleHelp()
	}
	m.statusBar.SetScrollInfo(m.viewport.ScrollInfo())
	return m, cmd
}

// handleCommandMode processes keys while the command line has focus.
func (m Model) handleCommandMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.commandLine.Close()
		m.setMode(ModeViewer)
		return m, nil
	case tea.KeyEnter:
		sub := m.commandLine.Submit()
		m.setMode(ModeViewer)
		return m, m.handleSubmission(sub)
	}

	cl, cmd := m.commandLine.Update(msg)
	m.commandLine = *cl
	return m, cmd
}

// handleNavigationMode processes keys while the sidebar has focus.
func (m Model) handleNavigationMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys

	switch {
	case msg.Type == tea.KeyEsc, key.Matches(msg, k.FocusNavigation):
		m.setMode(ModeViewer)
		return m, nil
	case key.Matches(msg, k.ToggleNavigation):
		m.toggleNavigation()
		return m, nil
	case key.Matches(msg, k.NextTab):
		m.tabBar.NextTab()
		return m, nil
	case key.Matches(msg, k.PrevTab):
		m.tabBar.PrevTab()
		return m, nil
	case key.Matches(msg, k.CommandLine):
		return m, m.openInput(ui.InputCommand)
	}

	if m.tabBar.Active() == ui.TabLocal {
		return m.handleLocalKey(msg)
	}

	if msg.String() == "q" {
		return m.quit()
	}

	panel := m.activePanel()
	if msg.String() == "g" {
		panel.HandleGKey()
		return m, nil
	}
	panel.ResetGKey()

	var cmd tea.Cmd
	switch {
	case key.Matches(msg, k.ScrollDown):
		panel.CursorDown()
	case key.Matches(msg, k.ScrollUp):
		panel.CursorUp()
	case key.Matches(msg, k.HalfPageDown):
		panel.HalfPageDown()
	case key.Matches(msg, k.HalfPageUp):
		panel.HalfPageUp()
	case key.Matches(msg, k.GotoTop):
		panel.GotoTop()
	case key.Matches(msg, k.GotoBottom):
		panel.GotoBottom()
	case msg.Type == tea.KeyEnter:
		cmd = m.selectEntry()
	case key.Matches(msg, k.Delete):
		cmd = m.deleteEntry()
	case key.Matches(msg, k.ClearHistory):
		if m.tabBar.Active() == ui.TabHistory {
			cmd = m.clearHistory()
		}
	}
	return m, cmd
}

// handleLeaderMode runs the shortcut chosen after the leader key. Any key
// dismisses the palette.
func (m Model) handleLeaderMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.leaderPanel.Hide()
	m.setMode(ModeViewer)

	var cmd tea.Cmd
	switch msg.String() {
	case "o", ":":
		cmd = m.openInput(ui.InputCommand)
	case "b":
		cmd = m.backward()
	case "f":
		cmd = m.forward()
	case "r":
		cmd = m.reload()
	case "l":
		cmd = m.openInput(ui.InputFollow)
	case "/":
		cmd = m.openInput(ui.InputFind)
	case "c":
		m.showTab(ui.TabContents)
	case "e":
		m.showTab(ui.TabLocal)
	case "m":
		m.showTab(ui.TabBookmarks)
	case "h":
		m.showTab(ui.TabHistory)
	case "k":
		m.showTab(ui.TabLinks)
	case "n":
		m.toggleNavigation()
	case "d":
		m.split.Flip()
	case "B":
		cmd = m.bookmarkCurrent()
	case "y":
		cmd = m.copyLocation()
	case "T":
		cmd = m.cycleTheme()
	case "?":
		m.toggleHelp()
	case "q":
		return m.quit()
	}
	return m, cmd
}

func (m *Model) openLeader() tea.Cmd {
	m.leaderSeq++
	seq := m.leaderSeq
	m.leaderPanel.Show()
	m.setMode(ModeLeader)
	return tea.Tick(leaderTimeout, func(time.Time) tea.Msg {
		return leaderTimeoutMsg{seq: seq}
	})
}

func (m *Model) openInput(kind ui.InputKind) tea.Cmd {
	if kind == ui.InputFollow && len(m.outline.Links()) == 0 {
		return m.notify("This document has no links", ui.SeverityWarning)
	}
	m.setMode(ModeCommand)
	return m.commandLine.Open(kind)
}

func (m *Model) toggleNavigation() {
	m.split.Toggle()
	if !m.split.Visible && m.mode == ModeNavigation {
		m.setMode(ModeViewer)
	}
	m.layout()
	m.renderContent(false)
}

func (m *Model) cycleTheme() tea.Cmd {
	name := theme.Next(theme.Current.Name)
	theme.Set(name)
	if m.cfg.GlamourStyle == "theme" {
		m.renderer.SetStyle(theme.Current.Glamour)
		m.renderContent(false)
	}
	return m.notify("Theme: "+name, ui.SeverityInfo)
}

// notify shows a transient message that clears after the configured
// timeout.
func (m *Model) notify(text string, severity ui.Severity) tea.Cmd {
	id := m.statusBar.Notify(text, severity)
	return tea.Tick(m.cfg.NotifyTimeout, func(time.Time) tea.Msg {
		return clearNotificationMsg{id: id}
	})
}

// quit abandons any load, stops watching and exits.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.viewer.Cancel()
	m.stop()
	if m.watcher != nil {
		m.watcher.Stop()
	}
	return m, tea.Quit
}
