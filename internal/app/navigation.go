package app

import (
	"errors"
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/vidyasagar/hike/internal/browser"
	"github.com/vidyasagar/hike/internal/command"
	"github.com/vidyasagar/hike/internal/location"
	"github.com/vidyasagar/hike/internal/ui"
)

// run turns a load task into a command whose message is handled by
// handleLoadResult. A nil task is a no-op.
func (m *Model) run(task *browser.LoadTask) tea.Cmd {
	if task == nil {
		return nil
	}
	m.statusBar.SetLoading(true)
	if task.Forge != nil {
		m.logger.Debug("resolving forge request", zap.Stringer("request", task.Forge), zap.Uint64("token", task.Token))
	} else {
		m.logger.Debug("loading", zap.Stringer("location", task.Location), zap.Uint64("token", task.Token))
	}
	return func() tea.Msg {
		return loadResultMsg{result: task.Run()}
	}
}

// handleLoadResult folds a finished load into the viewer and the display.
func (m Model) handleLoadResult(res browser.LoadResult) (tea.Model, tea.Cmd) {
	events, ok := m.viewer.Apply(res)
	if !ok {
		return m, nil
	}
	m.statusBar.SetLoading(m.viewer.Loading())

	if res.Err != nil {
		m.logger.Warn("load failed", zap.Stringer("location", res.Location), zap.Error(res.Err))
		return m, m.notify(describeError(res.Err), ui.SeverityError)
	}

	moved := res.Location != m.displayed()
	m.showingHelp = false
	m.content = res.Content
	if res.Content.Markdown {
		m.outline = browser.ParseOutline(res.Content.Text)
	} else {
		m.outline = browser.ParseOutline("")
	}
	m.renderContent(moved)
	m.refreshDocumentPanels()
	m.updateTitle()

	m.applyEvents(events)
	m.watchCurrent()
	if u := res.Location.URL(); u != nil && u.Fragment != "" && moved {
		m.scrollToAnchor(u.Fragment)
	}
	return m, nil
}

// displayed returns the location whose content is on screen.
func (m *Model) displayed() location.Location {
	return m.content.Location
}

// applyEvents updates the panels and persistence from viewer events.
func (m *Model) applyEvents(events []browser.Event) {
	for _, ev := range events {
		switch ev := ev.(type) {
		case browser.LocationChanged:
			if ev.Location.IsZero() {
				m.clearDocument()
			}
			m.updateTitle()
		case browser.HistoryChanged:
			m.refreshHistory()
			m.saveHistory(ev.Entries)
		case browser.HistoryVisited:
			m.refreshHistory()
		}
	}
}

func (m *Model) clearDocument() {
	m.content = browser.Content{}
	m.outline = browser.ParseOutline("")
	m.showingHelp = false
	m.viewport.Clear()
	m.refreshDocumentPanels()
	if m.watcher != nil {
		m.watcher.Stop()
	}
}

func (m *Model) saveHistory(entries []location.Location) {
	if m.historyFile == nil {
		return
	}
	if err := m.historyFile.Save(entries); err != nil {
		m.logger.Error("saving history", zap.String("path", m.historyFile.Path()), zap.Error(err))
	}
}

func (m *Model) updateTitle() {
	loc := m.viewer.Location()
	title := m.outline.Title()
	if title == "" {
		title = loc.Name()
	}
	m.titleBar.SetLocation(title, loc.String())
	h := m.viewer.History()
	m.titleBar.SetHistory(h.Cursor(), h.Len())
}

// renderContent renders the current content at the document width. top
// scrolls back to the start; otherwise the position is kept, as on reload.
func (m *Model) renderContent(top bool) {
	if m.showingHelp {
		m.renderHelp()
		return
	}
	if m.content.Location.IsZero() && m.content.Text == "" {
		return
	}
	out, err := m.renderer.Render(m.content, m.viewport.Width())
	if err != nil {
		m.logger.Error("rendering document", zap.Stringer("location", m.content.Location), zap.Error(err))
		out = m.content.Text
	}
	if top {
		m.viewport.SetContent(out)
	} else {
		m.viewport.Replace(out)
	}
	m.statusBar.SetScrollInfo(m.viewport.ScrollInfo())
}

// dispatch carries out a request parsed from the command line.
func (m *Model) dispatch(req command.Request) tea.Cmd {
	switch r := req.(type) {
	case command.OpenFile:
		return m.run(m.viewer.Visit(location.Path(r.Path)))
	case command.OpenURL:
		return m.run(m.viewer.Visit(r.URL))
	case command.OpenFromForge:
		return tea.Batch(
			m.notify("Looking for "+r.ForgeRequest.String(), ui.SeverityInfo),
			m.run(m.viewer.VisitForge(r.ForgeRequest)),
		)
	case command.OpenFrom:
		return m.browse(r.Dir)
	case command.ChangeDirectory:
		return tea.Batch(m.browse(r.Dir), m.notify("Local directory: "+r.Dir, ui.SeverityInfo))
	case command.Builtin:
		return m.runBuiltin(r.Action)
	}
	return nil
}

// browse shows the local file picker rooted at dir.
func (m *Model) browse(dir string) tea.Cmd {
	cmd := m.local.SetDirectory(dir)
	m.showTab(ui.TabLocal)
	return cmd
}

func (m *Model) runBuiltin(action command.Action) tea.Cmd {
	switch action {
	case command.Quit:
		m.viewer.Cancel()
		m.stop()
		if m.watcher != nil {
			m.watcher.Stop()
		}
		return tea.Quit
	case command.Contents:
		m.showTab(ui.TabContents)
	case command.Back:
		return m.backward()
	case command.Forward:
		return m.forward()
	case command.Reload:
		return m.reload()
	case command.Bookmark:
		return m.bookmarkCurrent()
	case command.Help:
		m.toggleHelp()
	}
	return nil
}

// handleSubmission acts on what was entered in the command line.
func (m *Model) handleSubmission(sub ui.Submission) tea.Cmd {
	if sub.Value == "" {
		return nil
	}
	switch sub.Kind {
	case ui.InputCommand:
		req, err := command.Parse(sub.Value)
		if err != nil {
			m.logger.Debug("unrecognized input", zap.String("input", sub.Value))
			return m.notify(describeError(err), ui.SeverityWarning)
		}
		return m.dispatch(req)
	case ui.InputFind:
		m.findQuery = sub.Value
		return m.findNext()
	case ui.InputFollow:
		n, err := strconv.Atoi(sub.Value)
		if err != nil {
			return m.notify("Not a link number: "+sub.Value, ui.SeverityWarning)
		}
		return m.followLink(n)
	}
	return nil
}

// followLink follows the numbered link of the displayed document.
func (m *Model) followLink(n int) tea.Cmd {
	link, ok := m.outline.Link(n)
	if !ok {
		return m.notify(fmt.Sprintf("No link numbered %d", n), ui.SeverityWarning)
	}
	return m.followTarget(link.URL)
}

// followTarget resolves a link target against the displayed location and
// either scrolls to an anchor or visits the result.
func (m *Model) followTarget(target string) tea.Cmd {
	lt, err := browser.ResolveLink(target, m.viewer.Location(), m.outline)
	if err != nil {
		m.logger.Debug("unresolved link", zap.String("target", target), zap.Error(err))
		return m.notify(describeError(err), ui.SeverityWarning)
	}
	if lt.IsAnchor() {
		if !m.scrollToAnchor(lt.Anchor) {
			return m.notify("Anchor not found: "+lt.Anchor, ui.SeverityWarning)
		}
		return nil
	}
	return m.run(m.viewer.Visit(lt.Location))
}

// scrollToAnchor scrolls to the line showing the anchor's text.
func (m *Model) scrollToAnchor(anchor string) bool {
	text, ok := m.outline.Text(anchor)
	if !ok {
		return false
	}
	line := browser.LineOf(m.viewport.Content(), text)
	if line < 0 {
		return false
	}
	m.viewport.GotoLine(line)
	m.statusBar.SetScrollInfo(m.viewport.ScrollInfo())
	return true
}

func (m *Model) findNext() tea.Cmd {
	if m.findQuery == "" {
		return m.openInput(ui.InputFind)
	}
	line := browser.FindLine(m.viewport.Content(), m.findQuery, m.viewport.YOffset())
	if line < 0 {
		return m.notify("Not found: "+m.findQuery, ui.SeverityWarning)
	}
	m.viewport.GotoLine(line)
	m.statusBar.SetScrollInfo(m.viewport.ScrollInfo())
	return nil
}

func (m *Model) backward() tea.Cmd {
	task, events := m.viewer.Backward()
	if task == nil {
		return m.notify("Nothing further back in history", ui.SeverityInfo)
	}
	m.applyEvents(events)
	return m.run(task)
}

func (m *Model) forward() tea.Cmd {
	task, events := m.viewer.Forward()
	if task == nil {
		return m.notify("Nothing further forward in history", ui.SeverityInfo)
	}
	m.applyEvents(events)
	return m.run(task)
}

func (m *Model) reload() tea.Cmd {
	task := m.viewer.Reload()
	if task == nil {
		return m.notify("Nothing to reload", ui.SeverityInfo)
	}
	return m.run(task)
}

func (m *Model) copyLocation() tea.Cmd {
	loc := m.viewer.Location()
	if loc.IsZero() {
		return m.notify("Nothing to copy", ui.SeverityInfo)
	}
	if err := m.copyText(loc.String()); err != nil {
		m.logger.Warn("copying location", zap.Error(err))
		return m.notify("Unable to copy to the clipboard", ui.SeverityError)
	}
	return m.notify("Copied "+loc.String(), ui.SeverityInfo)
}

// describeError turns an error into a notification for the status bar.
func describeError(err error) string {
	switch {
	case errors.Is(err, command.ErrUnrecognizedInput):
		return "Unable to handle that input"
	case errors.Is(err, browser.ErrUnsupportedForge):
		return "That forge is not supported"
	case errors.Is(err, browser.ErrForgeUnresolved):
		return "Unable to find that file on the forge"
	case errors.Is(err, browser.ErrUnresolvedLink):
		return "Unable to work out where that link goes"
	}
	switch browser.FailureOf(err) {
	case browser.IOFailure:
		return "Unable to read: " + err.Error()
	case browser.NetworkFailure:
		return "Unable to connect: " + err.Error()
	case browser.StatusFailure, browser.ContentTypeRejected:
		return "Unable to load: " + err.Error()
	}
	return err.Error()
}

// waitForChange blocks until the watched file changes. It is re-armed after
// every change and ends when the model quits.
func (m Model) waitForChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	w, ctx := m.watcher, m.ctx
	return func() tea.Msg {
		path, err := w.Next(ctx)
		if err != nil {
			return nil
		}
		return fileChangedMsg{path: path}
	}
}

// watchCurrent follows the displayed file when it is local.
func (m *Model) watchCurrent() {
	if m.watcher == nil || !m.cfg.WatchLocalFiles {
		return
	}
	loc := m.viewer.Location()
	if loc.Kind() != location.Local {
		m.watcher.Stop()
		return
	}
	if err := m.watcher.Watch(loc.Path()); err != nil {
		m.logger.Debug("not watching file", zap.String("path", loc.Path()), zap.Error(err))
	}
}

func (m Model) handleFileChanged(path string) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if loc := m.viewer.Location(); loc.Kind() == location.Local && loc.Path() == path && !m.viewer.Loading() {
		m.logger.Debug("reloading changed file", zap.String("path", path))
		cmd = m.run(m.viewer.Reload())
	}
	return m, tea.Batch(cmd, m.waitForChange())
}
