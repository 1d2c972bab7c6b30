package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusBarNotifications(t *testing.T) {
	sb := NewStatusBar()
	sb.SetWidth(80)

	first := sb.Notify("loading README.md", SeverityInfo)
	second := sb.Notify("file not found", SeverityError)
	assert.NotEqual(t, first, second)

	assert.False(t, sb.ClearNotification(first), "stale timeout must not clear a newer message")
	assert.Equal(t, "file not found", sb.Notification())
	assert.Contains(t, sb.View(), "file not found")

	assert.True(t, sb.ClearNotification(second))
	assert.Empty(t, sb.Notification())
	assert.False(t, sb.ClearNotification(second))
}

func TestStatusBarLoading(t *testing.T) {
	sb := NewStatusBar()
	sb.SetWidth(80)
	sb.SetLoading(true)
	assert.Contains(t, sb.View(), "Loading")

	sb.SetLoading(false)
	sb.SetLinkCount(3)
	sb.SetScrollInfo("TOP")
	view := sb.View()
	assert.Contains(t, view, "3 links")
	assert.Contains(t, view, "TOP")
}

func TestCommandLineHistory(t *testing.T) {
	c := NewCommandLine()
	c.SetWidth(60)

	for _, input := range []string{"README.md", "gh owner/repo", "gh owner/repo", "  "} {
		c.Open(InputCommand)
		c.SetValue(input)
		c.Submit()
	}
	assert.Equal(t, []string{"README.md", "gh owner/repo"}, c.History())
	assert.False(t, c.IsActive())

	c.Open(InputCommand)
	c.Recall(1)
	assert.Equal(t, "gh owner/repo", c.Value())
	c.Recall(1)
	assert.Equal(t, "README.md", c.Value())
	c.Recall(1)
	assert.Equal(t, "README.md", c.Value(), "recall stops at the oldest entry")
	c.Recall(-1)
	assert.Equal(t, "gh owner/repo", c.Value())
	c.Recall(-1)
	assert.Empty(t, c.Value())
}

func TestCommandLineFollowNotRecorded(t *testing.T) {
	c := NewCommandLine()
	c.Open(InputFollow)
	c.SetValue(" 3 ")
	got := c.Submit()
	assert.Equal(t, Submission{Kind: InputFollow, Value: "3"}, got)
	assert.Empty(t, c.History())

	c.Open(InputFollow)
	c.Recall(1)
	assert.Empty(t, c.Value())
}

func TestListPanelCursor(t *testing.T) {
	lp := NewListPanel("nothing here")
	lp.SetSize(30, 3)
	assert.Equal(t, -1, lp.Selected())
	assert.Contains(t, lp.View(false), "nothing here")

	items := make([]ListItem, 10)
	for i := range items {
		items[i] = ListItem{Title: string(rune('a' + i))}
	}
	lp.SetItems(items)
	assert.Equal(t, 0, lp.Selected())

	lp.CursorUp()
	assert.Equal(t, 0, lp.Selected())

	lp.GotoBottom()
	assert.Equal(t, 9, lp.Selected())
	assert.Equal(t, 7, lp.offset)

	assert.False(t, lp.HandleGKey())
	assert.True(t, lp.HandleGKey())
	assert.Equal(t, 0, lp.Selected())
	assert.Equal(t, 0, lp.offset)

	lp.Select(4)
	lp.SetItems(items[:2])
	assert.Equal(t, 1, lp.Selected(), "cursor is clamped when items shrink")
}

func TestListPanelView(t *testing.T) {
	lp := NewListPanel("")
	lp.SetSize(40, 10)
	lp.SetItems([]ListItem{
		{Title: "README.md", Detail: "/home/docs"},
		{Title: "guide.md", Detail: "/home/docs", Marked: true},
	})
	view := lp.View(true)
	assert.Contains(t, view, "README.md")
	assert.Contains(t, view, "▸ guide.md")
	assert.Contains(t, view, "/home/docs")
}

func TestTabBarWraps(t *testing.T) {
	tb := NewTabBar()
	assert.Equal(t, TabContents, tb.Active())

	tb.PrevTab()
	assert.Equal(t, TabLinks, tb.Active())
	tb.NextTab()
	assert.Equal(t, TabContents, tb.Active())

	tb.SetActive(TabHistory)
	assert.Equal(t, TabHistory, tb.Active())
	tb.SetActive(NavTab(42))
	assert.Equal(t, TabHistory, tb.Active())

	assert.Equal(t, "Bookmarks", TabBookmarks.String())
}

func TestSplitPaneWidths(t *testing.T) {
	sp := NewSplitPane(true)
	sp.SetSize(100, 20)
	assert.Equal(t, 30, sp.SidebarWidth())
	assert.Equal(t, 69, sp.DocumentWidth())

	sp.Toggle()
	assert.Equal(t, 0, sp.SidebarWidth())
	assert.Equal(t, 100, sp.DocumentWidth())

	sp.Toggle()
	sp.SetSize(30, 20)
	assert.Equal(t, 0, sp.SidebarWidth(), "too narrow for a sidebar")

	sp.SetSize(400, 20)
	assert.Equal(t, maxSidebarWidth, sp.SidebarWidth())

	sp.Flip()
	assert.Equal(t, DockRight, sp.Dock)
}

func TestTitleBar(t *testing.T) {
	tb := NewTitleBar()
	tb.SetWidth(80)
	assert.Contains(t, tb.View(), "nothing loaded")

	tb.SetLocation("Guide", "/docs/guide.md")
	tb.SetHistory(1, 4)
	view := tb.View()
	assert.Contains(t, view, "Guide")
	assert.Contains(t, view, "2/4")
}

func TestTimeAgo(t *testing.T) {
	cases := map[time.Duration]string{
		10 * time.Second: "just now",
		5 * time.Minute:  "5m ago",
		3 * time.Hour:    "3h ago",
		50 * time.Hour:   "2d ago",
	}
	for d, want := range cases {
		assert.Equal(t, want, timeAgo(d))
	}
}

func TestLeaderPanel(t *testing.T) {
	lp := NewLeaderPanel([]LeaderGroup{{Name: "Go", Bindings: []LeaderBinding{{Key: "b", Desc: "Back"}}}})
	assert.Empty(t, lp.View())
	lp.Show()
	require.True(t, lp.IsVisible())
	assert.Contains(t, lp.View(), "Back")
	lp.Hide()
	assert.False(t, lp.IsVisible())
}
