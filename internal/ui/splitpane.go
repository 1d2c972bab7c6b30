package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/hike/internal/theme"
)

// Dock says which side of the document the navigation sidebar sits on.
type Dock int

const (
	DockLeft Dock = iota
	DockRight
)

const (
	minSidebarWidth = 20
	maxSidebarWidth = 60
)

// SplitPane lays out the navigation sidebar next to the document. When the
// sidebar is hidden the document takes the full width.
type SplitPane struct {
	Visible bool
	Dock    Dock
	Ratio   float64 // share of the width given to the sidebar
	width   int
	height  int
}

// NewSplitPane creates a layout with the sidebar on the left.
func NewSplitPane(visible bool) SplitPane {
	return SplitPane{
		Visible: visible,
		Dock:    DockLeft,
		Ratio:   0.3,
	}
}

// SetSize updates the total area available.
func (sp *SplitPane) SetSize(w, h int) {
	sp.width = w
	sp.height = h
}

// Toggle shows or hides the sidebar.
func (sp *SplitPane) Toggle() {
	sp.Visible = !sp.Visible
}

// Flip moves the sidebar to the other side.
func (sp *SplitPane) Flip() {
	if sp.Dock == DockLeft {
		sp.Dock = DockRight
	} else {
		sp.Dock = DockLeft
	}
}

// SidebarWidth returns the sidebar width, or 0 when it is hidden.
func (sp *SplitPane) SidebarWidth() int {
	if !sp.Visible || sp.width < 2*minSidebarWidth {
		return 0
	}
	w := int(float64(sp.width) * sp.Ratio)
	return clamp(w, minSidebarWidth, maxSidebarWidth)
}

// DocumentWidth returns the width left for the document.
func (sp *SplitPane) DocumentWidth() int {
	sw := sp.SidebarWidth()
	if sw == 0 {
		return sp.width
	}
	return sp.width - sw - 1 // divider
}

// Height returns the height of both panes.
func (sp *SplitPane) Height() int {
	return sp.height
}

// Render joins the sidebar and document views.
func (sp *SplitPane) Render(sidebar, document string) string {
	sw := sp.SidebarWidth()
	doc := lipgloss.NewStyle().
		Width(sp.DocumentWidth()).
		Height(sp.height).
		MaxHeight(sp.height).
		Render(document)
	if sw == 0 {
		return doc
	}

	side := lipgloss.NewStyle().
		Width(sw).
		Height(sp.height).
		MaxHeight(sp.height).
		Render(sidebar)

	divider := lipgloss.NewStyle().
		Foreground(theme.Current.Border).
		Height(sp.height).
		Render(repeatLines("│", sp.height))

	if sp.Dock == DockRight {
		return lipgloss.JoinHorizontal(lipgloss.Top, doc, divider, side)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, side, divider, doc)
}

func repeatLines(s string, n int) string {
	if n <= 0 {
		return ""
	}
	out := s
	for i := 1; i < n; i++ {
		out += "\n" + s
	}
	return out
}
