package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/vidyasagar/hike/internal/browser"
	"github.com/vidyasagar/hike/internal/location"
	"github.com/vidyasagar/hike/internal/ui"
)

func (m Model) sidebarView() string {
	if m.split.SidebarWidth() == 0 {
		return ""
	}
	focused := m.mode == ModeNavigation
	tabs := m.tabBar.View(focused)
	if m.tabBar.Active() == ui.TabLocal {
		return tabs + "\n" + m.local.View(m.split.SidebarWidth())
	}
	return tabs + "\n" + m.activePanel().View(focused)
}

// activePanel returns the list behind the active sidebar tab. The local tab
// has no list; it falls back to the contents.
func (m *Model) activePanel() *ui.ListPanel {
	switch m.tabBar.Active() {
	case ui.TabBookmarks:
		return &m.bookmarkPanel
	case ui.TabHistory:
		return &m.historyPanel
	case ui.TabLinks:
		return &m.linkPanel
	default:
		return &m.contentsPanel
	}
}

// showTab reveals the sidebar on tab and gives it focus.
func (m *Model) showTab(tab ui.NavTab) {
	m.tabBar.SetActive(tab)
	if !m.split.Visible {
		m.split.Visible = true
		m.layout()
		m.renderContent(false)
	}
	if m.split.SidebarWidth() == 0 {
		return
	}
	m.setMode(ModeNavigation)
}

// refreshDocumentPanels rebuilds the contents and links of the displayed
// document.
func (m *Model) refreshDocumentPanels() {
	headings := m.outline.Headings()
	items := make([]ui.ListItem, 0, len(headings))
	for _, h := range headings {
		items = append(items, ui.ListItem{Title: h.Text, Indent: 2 * (h.Level - 1)})
	}
	m.contentsPanel.SetItems(items)
	m.contentsPanel.GotoTop()

	links := m.outline.Links()
	items = make([]ui.ListItem, 0, len(links))
	for _, l := range links {
		text := l.Text
		if text == "" {
			text = l.URL
		}
		items = append(items, ui.ListItem{Title: fmt.Sprintf("[%d] %s", l.Index, text), Detail: l.URL})
	}
	m.linkPanel.SetItems(items)
	m.linkPanel.GotoTop()
	m.statusBar.SetLinkCount(len(links))
}

// refreshHistory lists the history newest first and marks the cursor.
func (m *Model) refreshHistory() {
	h := m.viewer.History()
	entries := h.Entries()
	items := make([]ui.ListItem, len(entries))
	for i, loc := range entries {
		items[len(entries)-1-i] = ui.ListItem{
			Title:  loc.Name(),
			Detail: loc.Parent(),
			Marked: i == h.Cursor(),
		}
	}
	m.historyPanel.SetItems(items)
	if h.Cursor() >= 0 {
		m.historyPanel.Select(len(entries) - 1 - h.Cursor())
	}
	m.titleBar.SetHistory(h.Cursor(), h.Len())
}

// historyIndex converts a history panel row into a history index.
func (m *Model) historyIndex(row int) int {
	return m.viewer.History().Len() - 1 - row
}

func (m *Model) refreshBookmarks() {
	if m.bookmarks == nil {
		return
	}
	list, err := m.bookmarks.List()
	if err != nil {
		m.logger.Error("listing bookmarks", zap.Error(err))
		return
	}
	m.bookmarkList = list
	items := make([]ui.ListItem, 0, len(list))
	for _, b := range list {
		items = append(items, ui.ListItem{
			Title:  b.Title,
			Detail: b.Location.String() + "  " + ui.TimeAgo(b.CreatedAt),
		})
	}
	m.bookmarkPanel.SetItems(items)
}

// selectEntry acts on the highlighted sidebar entry.
func (m *Model) selectEntry() tea.Cmd {
	panel := m.activePanel()
	row := panel.Selected()
	if row < 0 {
		return nil
	}

	switch m.tabBar.Active() {
	case ui.TabContents:
		headings := m.outline.Headings()
		if line := browser.LineOf(m.viewport.Content(), headings[row].Text); line >= 0 {
			m.viewport.GotoLine(line)
			m.statusBar.SetScrollInfo(m.viewport.ScrollInfo())
		}
		m.setMode(ModeViewer)
		return nil

	case ui.TabLinks:
		m.setMode(ModeViewer)
		return m.followLink(row + 1)

	case ui.TabBookmarks:
		m.setMode(ModeViewer)
		return m.run(m.viewer.Visit(m.bookmarkList[row].Location))

	case ui.TabHistory:
		index := m.historyIndex(row)
		m.setMode(ModeViewer)
		if index == m.viewer.History().Cursor() {
			if task := m.viewer.Resume(); task != nil {
				return m.run(task)
			}
			return m.run(m.viewer.Reload())
		}
		task, events := m.viewer.Goto(index)
		m.applyEvents(events)
		return m.run(task)
	}
	return nil
}

// deleteEntry removes the highlighted bookmark or history entry.
func (m *Model) deleteEntry() tea.Cmd {
	row := m.activePanel().Selected()
	if row < 0 {
		return nil
	}

	switch m.tabBar.Active() {
	case ui.TabBookmarks:
		b := m.bookmarkList[row]
		if _, err := m.bookmarks.Remove(b.Location); err != nil {
			m.logger.Error("removing bookmark", zap.Stringer("location", b.Location), zap.Error(err))
			return m.notify("Unable to remove bookmark", ui.SeverityError)
		}
		m.refreshBookmarks()
		return m.notify("Removed bookmark "+b.Title, ui.SeverityInfo)

	case ui.TabHistory:
		task, events := m.viewer.Remove(m.historyIndex(row))
		m.applyEvents(events)
		return m.run(task)
	}
	return nil
}

func (m *Model) clearHistory() tea.Cmd {
	task, events := m.viewer.ClearHistory()
	m.applyEvents(events)
	return tea.Batch(m.run(task), m.notify("History cleared", ui.SeverityInfo))
}

// handleLocalKey passes keys to the file picker and opens what it picks.
func (m Model) handleLocalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cmd, path, ok := m.local.Update(msg)
	switch {
	case ok:
		m.setMode(ModeViewer)
		return m, tea.Batch(cmd, m.run(m.viewer.Visit(location.Path(path))))
	case path != "":
		return m, tea.Batch(cmd, m.notify("Not a Markdown file: "+path, ui.SeverityWarning))
	}
	return m, cmd
}

// bookmarkCurrent bookmarks the displayed location under its title.
func (m *Model) bookmarkCurrent() tea.Cmd {
	loc := m.viewer.Location()
	if loc.IsZero() {
		return m.notify("Nothing to bookmark", ui.SeverityInfo)
	}
	if m.bookmarks == nil {
		return m.notify("Bookmarks are not available", ui.SeverityWarning)
	}
	title := m.outline.Title()
	if title == "" {
		title = loc.Name()
	}
	added, err := m.bookmarks.Add(loc, title)
	if err != nil {
		m.logger.Error("adding bookmark", zap.Stringer("location", loc), zap.Error(err))
		return m.notify("Unable to add bookmark", ui.SeverityError)
	}
	if !added {
		return m.notify("Already bookmarked", ui.SeverityInfo)
	}
	m.refreshBookmarks()
	return m.notify("Bookmarked "+title, ui.SeverityInfo)
}
