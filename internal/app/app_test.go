package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/vidyasagar/hike/internal/browser"
	"github.com/vidyasagar/hike/internal/command"
	"github.com/vidyasagar/hike/internal/location"
	"github.com/vidyasagar/hike/internal/storage"
	"github.com/vidyasagar/hike/internal/ui"
)

const guide = `# Guide

See [the second part](#second-part) or [notes](notes.md).

## Install

Run the installer.

## Second part

The end.
`

func writeDoc(t *testing.T, dir, name, text string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(text), 0o644))
	return p
}

func newTestModel(t *testing.T, opts Options) Model {
	t.Helper()
	if opts.Config == nil {
		cfg := storage.DefaultConfig()
		cfg.GlamourStyle = "notty"
		cfg.WatchLocalFiles = false
		opts.Config = &cfg
	}
	opts.Logger = zaptest.NewLogger(t)
	if opts.Clipboard == nil {
		opts.Clipboard = func(string) error { return nil }
	}
	m := New(opts)
	t.Cleanup(m.stop)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(Model)
}

// settle runs a load command and feeds its result back into the model.
func settle(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	res, ok := msg.(loadResultMsg)
	require.True(t, ok, "expected a load result, got %T", msg)
	updated, _ := m.Update(res)
	return updated.(Model)
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func TestOpenLocalFile(t *testing.T) {
	dir := t.TempDir()
	p := writeDoc(t, dir, "guide.md", guide)
	hf := storage.NewHistoryFile(t.TempDir())

	m := newTestModel(t, Options{History: hf})
	m = settle(t, m, m.dispatch(command.OpenFile{Path: p}))

	assert.Equal(t, location.Path(p), m.viewer.Location())
	assert.Equal(t, "Guide", m.titleBar.Title())
	assert.Contains(t, m.viewport.Content(), "Run the installer.")
	assert.False(t, m.statusBar.Loading())

	assert.Equal(t, 3, m.contentsPanel.Len())
	assert.Equal(t, 2, m.linkPanel.Len())
	assert.Equal(t, "[2] notes", m.linkPanel.Items()[1].Title)
	assert.Equal(t, 1, m.historyPanel.Len())

	saved, err := hf.Load()
	require.NoError(t, err)
	assert.Equal(t, []location.Location{location.Path(p)}, saved)
}

func TestInitialRequestAndResume(t *testing.T) {
	dir := t.TempDir()
	a := location.Path(writeDoc(t, dir, "a.md", "# A"))
	b := location.Path(writeDoc(t, dir, "b.md", "# B"))

	m := newTestModel(t, Options{Initial: command.OpenFile{Path: a.Path()}})
	require.Len(t, m.startup, 1)
	m = settle(t, m, m.startup[0])
	assert.Equal(t, a, m.viewer.Location())

	m = newTestModel(t, Options{Entries: []location.Location{a, b}})
	require.Len(t, m.startup, 1)
	m = settle(t, m, m.startup[0])
	assert.Equal(t, b, m.viewer.Location())
	assert.Equal(t, 2, m.viewer.History().Len())
}

func TestEmptyStartup(t *testing.T) {
	m := newTestModel(t, Options{})
	require.Len(t, m.startup, 1)
	assert.Nil(t, m.startup[0])
	assert.False(t, m.viewport.HasContent())
	assert.Contains(t, m.View(), "hike")
}

func TestBackwardAndForward(t *testing.T) {
	dir := t.TempDir()
	a := location.Path(writeDoc(t, dir, "a.md", "# A"))
	b := location.Path(writeDoc(t, dir, "b.md", "# B"))

	m := newTestModel(t, Options{})
	m = settle(t, m, m.run(m.viewer.Visit(a)))
	m = settle(t, m, m.run(m.viewer.Visit(b)))

	m = settle(t, m, m.backward())
	assert.Equal(t, a, m.viewer.Location())
	assert.Equal(t, 1, m.historyPanel.Selected())
	assert.True(t, m.historyPanel.Items()[1].Marked)

	m.backward()
	assert.Equal(t, "Nothing further back in history", m.statusBar.Notification())

	m = settle(t, m, m.forward())
	assert.Equal(t, b, m.viewer.Location())
}

func TestFollowLinks(t *testing.T) {
	dir := t.TempDir()
	p := writeDoc(t, dir, "guide.md", guide)
	notes := writeDoc(t, dir, "notes.md", "# Notes")

	m := newTestModel(t, Options{})
	m = settle(t, m, m.dispatch(command.OpenFile{Path: p}))

	assert.Nil(t, m.followLink(1))
	assert.Empty(t, m.statusBar.Notification())

	m.followLink(9)
	assert.Equal(t, "No link numbered 9", m.statusBar.Notification())

	m = settle(t, m, m.followLink(2))
	assert.Equal(t, location.Path(notes), m.viewer.Location())
	assert.Equal(t, 2, m.viewer.History().Len())
}

func TestFailedLoadKeepsDocument(t *testing.T) {
	dir := t.TempDir()
	p := writeDoc(t, dir, "guide.md", guide)

	m := newTestModel(t, Options{})
	m = settle(t, m, m.dispatch(command.OpenFile{Path: p}))
	m = settle(t, m, m.run(m.viewer.Visit(location.Path(filepath.Join(dir, "missing.md")))))

	assert.Equal(t, location.Path(p), m.viewer.Location())
	assert.Contains(t, m.viewport.Content(), "Run the installer.")
	assert.True(t, strings.HasPrefix(m.statusBar.Notification(), "Unable to read"))
}

func TestCommandLineSubmissions(t *testing.T) {
	dir := t.TempDir()
	p := writeDoc(t, dir, "guide.md", guide)

	m := newTestModel(t, Options{})
	m = press(m, ":")
	assert.Equal(t, ModeCommand, m.mode)
	m = press(m, "esc")
	assert.Equal(t, ModeViewer, m.mode)

	cmd := m.handleSubmission(ui.Submission{Kind: ui.InputCommand, Value: p})
	m = settle(t, m, cmd)
	assert.Equal(t, location.Path(p), m.viewer.Location())

	m.handleSubmission(ui.Submission{Kind: ui.InputCommand, Value: "no such thing here"})
	assert.Equal(t, "Unable to handle that input", m.statusBar.Notification())

	m.handleSubmission(ui.Submission{Kind: ui.InputFollow, Value: "two"})
	assert.Equal(t, "Not a link number: two", m.statusBar.Notification())

	m.handleSubmission(ui.Submission{Kind: ui.InputFind, Value: "zebra"})
	assert.Equal(t, "Not found: zebra", m.statusBar.Notification())

	assert.Nil(t, m.handleSubmission(ui.Submission{Kind: ui.InputFind, Value: "the end"}))
	assert.Equal(t, "the end", m.findQuery)

	m.handleSubmission(ui.Submission{Kind: ui.InputCommand, Value: "cd " + dir})
	assert.Equal(t, dir, m.local.Directory())
	assert.Equal(t, ui.TabLocal, m.tabBar.Active())
	assert.Equal(t, ModeNavigation, m.mode)
}

func TestBuiltinCommands(t *testing.T) {
	m := newTestModel(t, Options{})

	m.dispatch(command.Builtin{Action: command.Reload})
	assert.Equal(t, "Nothing to reload", m.statusBar.Notification())

	m.dispatch(command.Builtin{Action: command.Help})
	assert.True(t, m.showingHelp)
	assert.Contains(t, m.viewport.Content(), "Command line")

	m = press(m, "esc")
	assert.False(t, m.showingHelp)
	assert.False(t, m.viewport.HasContent())

	m.dispatch(command.Builtin{Action: command.Contents})
	assert.Equal(t, ui.TabContents, m.tabBar.Active())
	assert.Equal(t, ModeNavigation, m.mode)
}

func TestBookmarks(t *testing.T) {
	dir := t.TempDir()
	p := writeDoc(t, dir, "guide.md", guide)

	db, err := storage.OpenDB(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	m := newTestModel(t, Options{Bookmarks: storage.NewBookmarkStore(db)})
	m.bookmarkCurrent()
	assert.Equal(t, "Nothing to bookmark", m.statusBar.Notification())

	m = settle(t, m, m.dispatch(command.OpenFile{Path: p}))
	m.bookmarkCurrent()
	assert.Equal(t, "Bookmarked Guide", m.statusBar.Notification())
	require.Equal(t, 1, m.bookmarkPanel.Len())
	assert.Equal(t, "Guide", m.bookmarkPanel.Items()[0].Title)

	m.bookmarkCurrent()
	assert.Equal(t, "Already bookmarked", m.statusBar.Notification())

	m.showTab(ui.TabBookmarks)
	m.deleteEntry()
	assert.Equal(t, 0, m.bookmarkPanel.Len())
}

func TestBookmarksUnavailable(t *testing.T) {
	dir := t.TempDir()
	p := writeDoc(t, dir, "guide.md", guide)

	m := newTestModel(t, Options{})
	m = settle(t, m, m.dispatch(command.OpenFile{Path: p}))
	m.bookmarkCurrent()
	assert.Equal(t, "Bookmarks are not available", m.statusBar.Notification())
}

func TestHistoryPanel(t *testing.T) {
	dir := t.TempDir()
	a := location.Path(writeDoc(t, dir, "a.md", "# A"))
	b := location.Path(writeDoc(t, dir, "b.md", "# B"))

	m := newTestModel(t, Options{})
	m = settle(t, m, m.run(m.viewer.Visit(a)))
	m = settle(t, m, m.run(m.viewer.Visit(b)))

	m.showTab(ui.TabHistory)
	require.Equal(t, 2, m.historyPanel.Len())
	assert.Equal(t, "b.md", m.historyPanel.Items()[0].Title)
	assert.Equal(t, 0, m.historyPanel.Selected())

	m.historyPanel.Select(1)
	m = settle(t, m, m.selectEntry())
	assert.Equal(t, a, m.viewer.Location())
	assert.Equal(t, ModeViewer, m.mode)

	m.showTab(ui.TabHistory)
	m.historyPanel.Select(0)
	m = settle(t, m, m.deleteEntry())
	assert.Equal(t, []location.Location{a}, m.viewer.History().Entries())
	assert.Equal(t, 1, m.historyPanel.Len())

	m.clearHistory()
	assert.Equal(t, 0, m.viewer.History().Len())
	assert.True(t, m.viewer.Location().IsZero())
	assert.False(t, m.viewport.HasContent())
	assert.Equal(t, 0, m.contentsPanel.Len())
}

func TestContentsSelection(t *testing.T) {
	dir := t.TempDir()
	p := writeDoc(t, dir, "guide.md", guide)

	m := newTestModel(t, Options{})
	m = settle(t, m, m.dispatch(command.OpenFile{Path: p}))

	m.showTab(ui.TabContents)
	m.contentsPanel.Select(2)
	assert.Nil(t, m.selectEntry())
	assert.Equal(t, ModeViewer, m.mode)
	assert.Equal(t, 2, m.contentsPanel.Items()[2].Indent)
}

func TestCopyLocation(t *testing.T) {
	dir := t.TempDir()
	p := writeDoc(t, dir, "guide.md", guide)

	var copied string
	m := newTestModel(t, Options{Clipboard: func(s string) error {
		copied = s
		return nil
	}})
	m.copyLocation()
	assert.Equal(t, "Nothing to copy", m.statusBar.Notification())

	m = settle(t, m, m.dispatch(command.OpenFile{Path: p}))
	m.copyLocation()
	assert.Equal(t, location.Path(p).String(), copied)

	m.copyText = func(string) error { return errors.New("no clipboard") }
	m.copyLocation()
	assert.Equal(t, "Unable to copy to the clipboard", m.statusBar.Notification())
}

func TestLeaderAndSidebarKeys(t *testing.T) {
	m := newTestModel(t, Options{})
	require.True(t, m.split.Visible)

	m = press(m, "space")
	assert.Equal(t, ModeLeader, m.mode)
	assert.True(t, m.leaderPanel.IsVisible())

	m = press(m, "n")
	assert.Equal(t, ModeViewer, m.mode)
	assert.False(t, m.leaderPanel.IsVisible())
	assert.False(t, m.split.Visible)

	m = press(m, "space")
	updated, _ := m.Update(leaderTimeoutMsg{seq: m.leaderSeq - 1})
	m = updated.(Model)
	assert.Equal(t, ModeLeader, m.mode, "a stale timeout is ignored")
	updated, _ = m.Update(leaderTimeoutMsg{seq: m.leaderSeq})
	m = updated.(Model)
	assert.Equal(t, ModeViewer, m.mode)

	m = press(m, "c")
	assert.True(t, m.split.Visible)
	assert.Equal(t, ModeNavigation, m.mode)
	m = press(m, "]")
	assert.Equal(t, ui.TabLocal, m.tabBar.Active())
	m = press(m, "esc")
	assert.Equal(t, ModeViewer, m.mode)
}

func TestNotificationsExpire(t *testing.T) {
	m := newTestModel(t, Options{})
	m.notify("first", ui.SeverityInfo)
	first := m.statusBar.Notification()
	m.notify("second", ui.SeverityInfo)

	updated, _ := m.Update(clearNotificationMsg{id: 1})
	m = updated.(Model)
	assert.Equal(t, "first", first)
	assert.Equal(t, "second", m.statusBar.Notification())

	updated, _ = m.Update(clearNotificationMsg{id: 2})
	m = updated.(Model)
	assert.Empty(t, m.statusBar.Notification())
}

func TestDescribeError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("%w: %q", command.ErrUnrecognizedInput, "x"), "Unable to handle that input"},
		{browser.ErrUnsupportedForge, "That forge is not supported"},
		{fmt.Errorf("wrapped: %w", browser.ErrForgeUnresolved), "Unable to find that file on the forge"},
		{browser.ErrUnresolvedLink, "Unable to work out where that link goes"},
		{errors.New("boom"), "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, describeError(tt.err))
		})
	}
}

func TestHelpMarkdown(t *testing.T) {
	md := helpMarkdown(DefaultKeyMap())
	for _, want := range []string{"## Command line", "## Document", "## Sidebar", "## Leader", "`chdir`", "go back"} {
		assert.Contains(t, md, want)
	}
}

func TestGlamourStyle(t *testing.T) {
	assert.Equal(t, "dracula", glamourStyle("dracula"))
	assert.Equal(t, "auto", glamourStyle("auto"))
	assert.NotEmpty(t, glamourStyle("theme"))
}
