package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/vidyasagar/hike/internal/theme"
)

// TitleBar is the top line: the displayed location and the position in the
// history.
type TitleBar struct {
	title    string
	location string
	cursor   int
	total    int
	width    int
}

// NewTitleBar creates an empty title bar.
func NewTitleBar() TitleBar {
	return TitleBar{cursor: -1}
}

// SetWidth sets the bar width.
func (tb *TitleBar) SetWidth(w int) {
	tb.width = w
}

// SetLocation sets the document title and the full location shown.
func (tb *TitleBar) SetLocation(title, location string) {
	tb.title = title
	tb.location = location
}

// SetHistory records the history cursor and length, shown as "3/7".
func (tb *TitleBar) SetHistory(cursor, total int) {
	tb.cursor = cursor
	tb.total = total
}

// Title returns the document title shown.
func (tb *TitleBar) Title() string {
	return tb.title
}

// View renders the title bar.
func (tb *TitleBar) View() string {
	t := theme.Current

	bar := lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.Surface).
		Width(tb.width)

	brand := lipgloss.NewStyle().
		Foreground(t.Background).
		Background(t.Primary).
		Bold(true).
		Padding(0, 1).
		Render("hike")

	var right string
	if tb.total > 0 && tb.cursor >= 0 {
		right = lipgloss.NewStyle().
			Foreground(t.TextDim).
			Background(t.Surface).
			Padding(0, 1).
			Render(fmt.Sprintf("%d/%d", tb.cursor+1, tb.total))
	}

	room := max(0, tb.width-lipgloss.Width(brand)-lipgloss.Width(right)-2)
	var middle string
	switch {
	case tb.location == "":
		middle = lipgloss.NewStyle().Foreground(t.TextDim).Render("nothing loaded")
	case tb.title != "" && tb.title != tb.location:
		middle = lipgloss.NewStyle().Bold(true).Render(tb.title) +
			lipgloss.NewStyle().Foreground(t.TextDim).Render(" · "+tb.location)
	default:
		middle = tb.location
	}
	middle = " " + ansi.Truncate(middle, room, "…") + " "

	gap := max(0, tb.width-lipgloss.Width(brand)-lipgloss.Width(middle)-lipgloss.Width(right))
	spacer := lipgloss.NewStyle().Background(t.Surface).Render(fmt.Sprintf("%*s", gap, ""))
	return bar.Render(brand + middle + spacer + right)
}
