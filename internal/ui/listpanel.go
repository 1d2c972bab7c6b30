package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/vidyasagar/hike/internal/theme"
)

// ListItem is one row of a ListPanel.
type ListItem struct {
	Title  string
	Detail string // optional dimmed second line
	Indent int
	Marked bool // drawn with a marker, e.g. the current history entry
}

// ListPanel is a scrollable list with vim-style cursor movement. The
// navigation sidebar uses one per tab.
type ListPanel struct {
	items    []ListItem
	empty    string
	cursor   int
	offset   int
	width    int
	height   int
	lastGKey bool
}

// NewListPanel creates a list that shows empty when it has no items.
func NewListPanel(empty string) ListPanel {
	return ListPanel{empty: empty}
}

// SetItems replaces the items, keeping the cursor in range.
func (lp *ListPanel) SetItems(items []ListItem) {
	lp.items = items
	lp.cursor = clamp(lp.cursor, 0, max(0, len(items)-1))
	lp.ensureVisible()
}

// Items returns the items shown.
func (lp *ListPanel) Items() []ListItem {
	return lp.items
}

// Len returns the number of items.
func (lp *ListPanel) Len() int {
	return len(lp.items)
}

// SetSize updates the panel dimensions.
func (lp *ListPanel) SetSize(w, h int) {
	lp.width = w
	lp.height = h
	lp.ensureVisible()
}

// Select moves the cursor to index i.
func (lp *ListPanel) Select(i int) {
	lp.lastGKey = false
	if len(lp.items) == 0 {
		lp.cursor = 0
		return
	}
	lp.cursor = clamp(i, 0, len(lp.items)-1)
	lp.ensureVisible()
}

// Selected returns the cursor index, or -1 when the list is empty.
func (lp *ListPanel) Selected() int {
	if len(lp.items) == 0 {
		return -1
	}
	return lp.cursor
}

// CursorUp moves the cursor up one item.
func (lp *ListPanel) CursorUp() { lp.Select(lp.cursor - 1) }

// CursorDown moves the cursor down one item.
func (lp *ListPanel) CursorDown() { lp.Select(lp.cursor + 1) }

// GotoTop moves to the first item.
func (lp *ListPanel) GotoTop() { lp.Select(0) }

// GotoBottom moves to the last item.
func (lp *ListPanel) GotoBottom() { lp.Select(len(lp.items) - 1) }

// HalfPageDown moves the cursor down half a page.
func (lp *ListPanel) HalfPageDown() { lp.Select(lp.cursor + lp.visibleCount()/2) }

// HalfPageUp moves the cursor up half a page.
func (lp *ListPanel) HalfPageUp() { lp.Select(lp.cursor - lp.visibleCount()/2) }

// HandleGKey handles the "g" key and reports whether "gg" completed.
func (lp *ListPanel) HandleGKey() bool {
	if lp.lastGKey {
		lp.GotoTop()
		return true
	}
	lp.lastGKey = true
	return false
}

// ResetGKey forgets a pending "g".
func (lp *ListPanel) ResetGKey() {
	lp.lastGKey = false
}

func (lp *ListPanel) rowsPerItem() int {
	for _, item := range lp.items {
		if item.Detail != "" {
			return 2
		}
	}
	return 1
}

func (lp *ListPanel) visibleCount() int {
	return max(1, lp.height/lp.rowsPerItem())
}

func (lp *ListPanel) ensureVisible() {
	visible := lp.visibleCount()
	if lp.cursor < lp.offset {
		lp.offset = lp.cursor
	}
	if lp.cursor >= lp.offset+visible {
		lp.offset = lp.cursor - visible + 1
	}
	lp.offset = max(0, lp.offset)
}

// View renders the visible window of the list.
func (lp *ListPanel) View(focused bool) string {
	t := theme.Current

	panel := lipgloss.NewStyle().
		Width(lp.width).
		Height(lp.height)

	if len(lp.items) == 0 {
		return panel.Render(lipgloss.NewStyle().
			Foreground(t.TextDim).
			Italic(true).
			Padding(0, 1).
			Render(lp.empty))
	}

	selectedBg := t.Surface
	if focused {
		selectedBg = t.Selection
	}
	row := lipgloss.NewStyle().Width(lp.width).Padding(0, 1)
	titleStyle := row.Foreground(t.Text)
	detailStyle := row.Foreground(t.TextDim)

	end := min(len(lp.items), lp.offset+lp.visibleCount())
	textWidth := max(1, lp.width-4)

	var sb strings.Builder
	for i := lp.offset; i < end; i++ {
		item := lp.items[i]
		ts, ds := titleStyle, detailStyle
		if i == lp.cursor {
			ts = ts.Background(selectedBg).Bold(true)
			ds = ds.Background(selectedBg)
		}

		marker := "  "
		if item.Marked {
			marker = "▸ "
			ts = ts.Foreground(t.Accent)
		}
		indent := strings.Repeat(" ", item.Indent)
		sb.WriteString(ts.Render(ansi.Truncate(marker+indent+item.Title, textWidth, "…")))
		sb.WriteString("\n")
		if item.Detail != "" {
			sb.WriteString(ds.Render(ansi.Truncate("  "+indent+item.Detail, textWidth, "…")))
			sb.WriteString("\n")
		}
	}

	return panel.Render(strings.TrimSuffix(sb.String(), "\n"))
}

// TimeAgo returns a short relative description of t.
func TimeAgo(t time.Time) string {
	return timeAgo(time.Since(t))
}

func timeAgo(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
