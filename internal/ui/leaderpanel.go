package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/hike/internal/theme"
)

// LeaderBinding is one shortcut reachable after the leader key.
type LeaderBinding struct {
	Key  string
	Desc string
}

// LeaderGroup is a named column of leader shortcuts.
type LeaderGroup struct {
	Name     string
	Bindings []LeaderBinding
}

// LeaderPanel is the popup palette shown after the leader key is pressed.
type LeaderPanel struct {
	visible bool
	groups  []LeaderGroup
}

// NewLeaderPanel creates a palette listing groups.
func NewLeaderPanel(groups []LeaderGroup) LeaderPanel {
	return LeaderPanel{groups: groups}
}

// Show makes the panel visible.
func (lp *LeaderPanel) Show() { lp.visible = true }

// Hide closes the panel.
func (lp *LeaderPanel) Hide() { lp.visible = false }

// IsVisible reports whether the panel is shown.
func (lp *LeaderPanel) IsVisible() bool { return lp.visible }

// Groups returns the shortcut groups listed.
func (lp *LeaderPanel) Groups() []LeaderGroup { return lp.groups }

// View renders the palette as a bordered box.
func (lp *LeaderPanel) View() string {
	if !lp.visible {
		return ""
	}

	t := theme.Current

	groupStyle := lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	badgeStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Background).
		Background(t.Secondary).
		Padding(0, 1)
	descStyle := lipgloss.NewStyle().Foreground(t.Text)
	ruleStyle := lipgloss.NewStyle().Foreground(t.Border)

	rows := 0
	for _, g := range lp.groups {
		rows = max(rows, len(g.Bindings))
	}

	var columns []string
	for i, g := range lp.groups {
		lines := []string{groupStyle.Render(g.Name), ""}
		for _, b := range g.Bindings {
			lines = append(lines, badgeStyle.Render(b.Key)+descStyle.Render(" "+b.Desc))
		}
		for j := len(g.Bindings); j < rows; j++ {
			lines = append(lines, "")
		}
		col := lipgloss.NewStyle().Width(18).Render(strings.Join(lines, "\n"))
		columns = append(columns, col)
		if i < len(lp.groups)-1 {
			columns = append(columns, ruleStyle.Render(repeatLines(" │ ", lipgloss.Height(col))))
		}
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, columns...)
	rule := ruleStyle.Render(strings.Repeat("─", lipgloss.Width(body)))

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Foreground(t.Primary).Render("Leader"),
		rule,
		body,
		rule,
		lipgloss.NewStyle().Foreground(t.TextDim).Italic(true).Render("press a key, esc to dismiss"),
	)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(0, 1).
		Render(content)
}
