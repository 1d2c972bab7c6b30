package app

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/vidyasagar/hike/internal/browser"
	"github.com/vidyasagar/hike/internal/command"
	"github.com/vidyasagar/hike/internal/ui"
	"github.com/vidyasagar/hike/internal/version"
)

// toggleHelp swaps the document for the help screen and back.
func (m *Model) toggleHelp() {
	if m.showingHelp {
		m.closeHelp()
		return
	}
	m.showingHelp = true
	m.renderHelp()
}

func (m *Model) closeHelp() {
	m.showingHelp = false
	if m.content.Location.IsZero() && m.content.Text == "" {
		m.viewport.Clear()
		m.statusBar.SetScrollInfo("")
		return
	}
	m.renderContent(true)
}

// renderHelp shows the command line and key reference as a document.
func (m *Model) renderHelp() {
	out, err := m.renderer.Render(browser.Content{Text: helpMarkdown(m.keys), Markdown: true}, m.viewport.Width())
	if err != nil {
		m.logger.Error("rendering help", zap.Error(err))
		out = helpMarkdown(m.keys)
	}
	m.viewport.SetContent(out)
	m.statusBar.SetScrollInfo(m.viewport.ScrollInfo())
}

func helpMarkdown(keys KeyMap) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# hike %s\n\n", version.Version)
	b.WriteString("Press `?` or `esc` to return to the document.\n\n")

	b.WriteString("## Command line\n\n")
	b.WriteString("| Command | Aliases | Arguments | Help |\n|---|---|---|---|\n")
	for _, e := range command.HelpEntries() {
		fmt.Fprintf(&b, "| `%s` | %s | %s | %s |\n", e.Command, cell(e.Aliases), cell(e.Arguments), e.Help)
	}

	for _, section := range keys.helpSections() {
		fmt.Fprintf(&b, "\n## %s\n\n| Key | Action |\n|---|---|\n", section.name)
		for _, binding := range section.bindings {
			h := binding.Help()
			fmt.Fprintf(&b, "| `%s` | %s |\n", h.Key, h.Desc)
		}
	}

	b.WriteString("\n## Leader\n\nPress `space` then:\n\n| Key | Action |\n|---|---|\n")
	for _, g := range leaderGroups() {
		for _, lb := range g.Bindings {
			fmt.Fprintf(&b, "| `%s` | %s |\n", lb.Key, lb.Desc)
		}
	}
	return b.String()
}

func cell(s string) string {
	if s == "" {
		return "-"
	}
	return "`" + strings.ReplaceAll(s, "|", "\\|") + "`"
}

func leaderGroups() []ui.LeaderGroup {
	return []ui.LeaderGroup{
		{Name: "Go", Bindings: []ui.LeaderBinding{
			{Key: "o", Desc: "open location"},
			{Key: "b", Desc: "back"},
			{Key: "f", Desc: "forward"},
			{Key: "r", Desc: "reload"},
			{Key: "l", Desc: "follow link"},
			{Key: "/", Desc: "find"},
		}},
		{Name: "Sidebar", Bindings: []ui.LeaderBinding{
			{Key: "c", Desc: "contents"},
			{Key: "e", Desc: "local files"},
			{Key: "m", Desc: "bookmarks"},
			{Key: "h", Desc: "history"},
			{Key: "k", Desc: "links"},
			{Key: "n", Desc: "toggle"},
			{Key: "d", Desc: "dock other side"},
		}},
		{Name: "Document", Bindings: []ui.LeaderBinding{
			{Key: "B", Desc: "bookmark"},
			{Key: "y", Desc: "copy location"},
			{Key: "T", Desc: "next theme"},
			{Key: "?", Desc: "help"},
			{Key: "q", Desc: "quit"},
		}},
	}
}
