package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/hike/internal/theme"
)

// NavTab names a page of the navigation sidebar.
type NavTab int

const (
	TabContents NavTab = iota
	TabLocal
	TabBookmarks
	TabHistory
	TabLinks
	navTabCount
)

var navTabTitles = [navTabCount]string{
	TabContents:  "Contents",
	TabLocal:     "Local",
	TabBookmarks: "Bookmarks",
	TabHistory:   "History",
	TabLinks:     "Links",
}

func (t NavTab) String() string {
	if t < 0 || t >= navTabCount {
		return ""
	}
	return navTabTitles[t]
}

// TabBar renders the fixed set of navigation tabs and tracks the active one.
type TabBar struct {
	active NavTab
	width  int
}

// NewTabBar creates a tab bar with the contents tab active.
func NewTabBar() TabBar {
	return TabBar{active: TabContents}
}

// SetWidth sets the tab bar width.
func (tb *TabBar) SetWidth(w int) {
	tb.width = w
}

// Active returns the active tab.
func (tb *TabBar) Active() NavTab {
	return tb.active
}

// SetActive switches to tab. Unknown tabs are ignored.
func (tb *TabBar) SetActive(tab NavTab) {
	if tab >= 0 && tab < navTabCount {
		tb.active = tab
	}
}

// NextTab switches to the next tab, wrapping around.
func (tb *TabBar) NextTab() {
	tb.active = (tb.active + 1) % navTabCount
}

// PrevTab switches to the previous tab, wrapping around.
func (tb *TabBar) PrevTab() {
	tb.active = (tb.active + navTabCount - 1) % navTabCount
}

// View renders the tab strip. Narrow sidebars show only initials for the
// inactive tabs.
func (tb *TabBar) View(focused bool) string {
	t := theme.Current

	activeBg := t.Surface
	if focused {
		activeBg = t.Primary
	}
	activeStyle := lipgloss.NewStyle().
		Foreground(t.Background).
		Background(activeBg).
		Bold(true).
		Padding(0, 1)
	if !focused {
		activeStyle = activeStyle.Foreground(t.Text)
	}
	inactiveStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Padding(0, 1)

	full := 0
	for _, title := range navTabTitles {
		full += len(title) + 2
	}
	short := tb.width > 0 && full > tb.width

	var result string
	for tab := NavTab(0); tab < navTabCount; tab++ {
		title := tab.String()
		if tab == tb.active {
			result += activeStyle.Render(title)
			continue
		}
		if short {
			title = title[:1]
		}
		result += inactiveStyle.Render(title)
	}

	return lipgloss.NewStyle().
		Width(tb.width).
		MaxWidth(tb.width).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(t.Border).
		Render(result)
}
