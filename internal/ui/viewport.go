package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/hike/internal/theme"
)

// PageViewport wraps bubbles/viewport to show a rendered document.
type PageViewport struct {
	viewport   viewport.Model
	ready      bool
	content    string
	contentSet bool
}

// NewPageViewport creates a viewport; dimensions arrive with the first
// WindowSizeMsg.
func NewPageViewport() PageViewport {
	return PageViewport{}
}

// SetSize updates the viewport dimensions.
func (pv *PageViewport) SetSize(width, height int) {
	if !pv.ready {
		pv.viewport = viewport.New(width, height)
		pv.viewport.MouseWheelEnabled = true
		pv.viewport.MouseWheelDelta = 3
		pv.ready = true
		if pv.contentSet {
			pv.viewport.SetContent(pv.content)
		}
		return
	}
	pv.viewport.Width = width
	pv.viewport.Height = height
}

// SetContent replaces the document and scrolls to the top.
func (pv *PageViewport) SetContent(content string) {
	pv.Replace(content)
	pv.GotoTop()
}

// Replace swaps the document while keeping the scroll position where
// possible, as when a file is reloaded.
func (pv *PageViewport) Replace(content string) {
	pv.content = content
	pv.contentSet = true
	if pv.ready {
		pv.viewport.SetContent(content)
	}
}

// Clear removes the document and shows the welcome screen again.
func (pv *PageViewport) Clear() {
	pv.content = ""
	pv.contentSet = false
	if pv.ready {
		pv.viewport.SetContent("")
		pv.viewport.GotoTop()
	}
}

// HasContent reports whether a document is displayed.
func (pv *PageViewport) HasContent() bool {
	return pv.contentSet
}

// Content returns the rendered document.
func (pv *PageViewport) Content() string {
	return pv.content
}

// Update forwards messages to the viewport.
func (pv *PageViewport) Update(msg tea.Msg) (*PageViewport, tea.Cmd) {
	if !pv.ready {
		return pv, nil
	}
	var cmd tea.Cmd
	pv.viewport, cmd = pv.viewport.Update(msg)
	return pv, cmd
}

// View renders the viewport.
func (pv *PageViewport) View() string {
	if !pv.ready {
		return "\n  Initializing..."
	}
	if !pv.contentSet {
		return pv.renderWelcome()
	}
	return pv.viewport.View()
}

// ScrollInfo returns "TOP", "BOT" or a percentage.
func (pv *PageViewport) ScrollInfo() string {
	if !pv.ready || !pv.contentSet {
		return ""
	}
	if pv.viewport.TotalLineCount() <= pv.viewport.Height {
		return "ALL"
	}
	pct := pv.viewport.ScrollPercent()
	switch {
	case pct <= 0:
		return "TOP"
	case pct >= 1:
		return "BOT"
	default:
		return fmt.Sprintf("%d%%", int(pct*100))
	}
}

// GotoLine scrolls so that line (0-based) is at the top of the view.
func (pv *PageViewport) GotoLine(line int) {
	if pv.ready && line >= 0 {
		pv.viewport.SetYOffset(line)
	}
}

// YOffset returns the first visible line.
func (pv *PageViewport) YOffset() int {
	if !pv.ready {
		return 0
	}
	return pv.viewport.YOffset
}

// HalfPageDown scrolls down half a page.
func (pv *PageViewport) HalfPageDown() {
	if pv.ready {
		pv.viewport.HalfViewDown()
	}
}

// HalfPageUp scrolls up half a page.
func (pv *PageViewport) HalfPageUp() {
	if pv.ready {
		pv.viewport.HalfViewUp()
	}
}

// LineDown scrolls down n lines.
func (pv *PageViewport) LineDown(n int) {
	if pv.ready {
		pv.viewport.LineDown(n)
	}
}

// LineUp scrolls up n lines.
func (pv *PageViewport) LineUp(n int) {
	if pv.ready {
		pv.viewport.LineUp(n)
	}
}

// GotoTop scrolls to the top.
func (pv *PageViewport) GotoTop() {
	if pv.ready {
		pv.viewport.GotoTop()
	}
}

// GotoBottom scrolls to the bottom.
func (pv *PageViewport) GotoBottom() {
	if pv.ready {
		pv.viewport.GotoBottom()
	}
}

// Ready reports whether the viewport has been sized.
func (pv *PageViewport) Ready() bool {
	return pv.ready
}

// Width returns the viewport width.
func (pv *PageViewport) Width() int {
	if !pv.ready {
		return 0
	}
	return pv.viewport.Width
}

// Height returns the viewport height.
func (pv *PageViewport) Height() int {
	if !pv.ready {
		return 0
	}
	return pv.viewport.Height
}

func (pv *PageViewport) renderWelcome() string {
	t := theme.Current

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(t.Primary)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	keyStyle := lipgloss.NewStyle().Foreground(t.Secondary)
	descStyle := lipgloss.NewStyle().Foreground(t.Text)

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(titleStyle.Render("  hike"))
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("  A Markdown browser for the terminal"))
	sb.WriteString("\n\n")

	examples := []struct{ input, desc string }{
		{"README.md", "open a local file"},
		{"~/notes", "browse a directory"},
		{"https://example.com/doc.md", "open a remote document"},
		{"gh owner/repo", "open a repository README"},
		{"gl owner/repo:dev docs/x.md", "a file on a branch"},
		{"cd ~/src", "change the local directory"},
	}
	sb.WriteString(dimStyle.Render("  Press : and enter"))
	sb.WriteString("\n\n")
	for _, e := range examples {
		sb.WriteString(keyStyle.Render(fmt.Sprintf("    %-30s", e.input)))
		sb.WriteString(descStyle.Render(e.desc))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("  Press ? for help, q to quit"))
	sb.WriteString("\n")

	return sb.String()
}
