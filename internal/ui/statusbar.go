package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/hike/internal/theme"
)

// Severity grades a status bar notification.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// StatusBar is the bottom line of the screen: focus indicator, transient
// notifications, link count and scroll position.
type StatusBar struct {
	mode       string
	loading    bool
	scrollInfo string
	linkCount  int
	width      int

	message  string
	severity Severity
	noticeID int
}

// NewStatusBar creates a status bar showing the viewer focus.
func NewStatusBar() StatusBar {
	return StatusBar{mode: "VIEW"}
}

// SetWidth sets the status bar width.
func (s *StatusBar) SetWidth(w int) {
	s.width = w
}

// SetMode sets the focus indicator (VIEW, COMMAND, NAV, ...).
func (s *StatusBar) SetMode(mode string) {
	s.mode = mode
}

// Mode returns the focus indicator.
func (s *StatusBar) Mode() string {
	return s.mode
}

// SetLoading sets the loading indicator state.
func (s *StatusBar) SetLoading(loading bool) {
	s.loading = loading
}

// Loading reports whether the loading indicator is shown.
func (s *StatusBar) Loading() bool {
	return s.loading
}

// SetScrollInfo sets the scroll position string ("TOP", "42%", "BOT").
func (s *StatusBar) SetScrollInfo(info string) {
	s.scrollInfo = info
}

// SetLinkCount sets the number of links in the displayed document.
func (s *StatusBar) SetLinkCount(n int) {
	s.linkCount = n
}

// Notify shows message until it is cleared or replaced. The returned id is
// passed to ClearNotification once the notification has timed out.
func (s *StatusBar) Notify(message string, severity Severity) int {
	s.noticeID++
	s.message = message
	s.severity = severity
	return s.noticeID
}

// ClearNotification removes the notification with the given id. A newer
// notification is left alone.
func (s *StatusBar) ClearNotification(id int) bool {
	if id != s.noticeID || s.message == "" {
		return false
	}
	s.message = ""
	return true
}

// Notification returns the message currently displayed, if any.
func (s *StatusBar) Notification() string {
	return s.message
}

// View renders the status bar.
func (s *StatusBar) View() string {
	t := theme.Current

	modeBg := t.Primary
	switch s.mode {
	case "COMMAND":
		modeBg = t.Accent
	case "FOLLOW", "FIND":
		modeBg = t.Warning
	case "NAV", "PICK":
		modeBg = t.Secondary
	}
	mode := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Foreground(t.Background).
		Background(modeBg).
		Render(s.mode)

	var left string
	switch {
	case s.message != "":
		fg := t.Info
		switch s.severity {
		case SeverityWarning:
			fg = t.Warning
		case SeverityError:
			fg = t.Error
		}
		left = lipgloss.NewStyle().
			Foreground(fg).
			Background(t.Surface).
			Padding(0, 1).
			Render(s.message)
	case s.loading:
		left = lipgloss.NewStyle().
			Foreground(t.Warning).
			Background(t.Surface).
			Bold(true).
			Padding(0, 1).
			Render("Loading...")
	}

	rightStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface).
		Padding(0, 1)
	var right string
	if s.linkCount > 0 {
		right += rightStyle.Render(fmt.Sprintf("%d links", s.linkCount))
	}
	if s.scrollInfo != "" {
		right += rightStyle.Bold(true).Foreground(t.Secondary).Render(s.scrollInfo)
	}

	spacerWidth := max(0, s.width-lipgloss.Width(mode)-lipgloss.Width(left)-lipgloss.Width(right))
	spacer := lipgloss.NewStyle().
		Background(t.Surface).
		Render(fmt.Sprintf("%*s", spacerWidth, ""))

	return lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.Surface).
		Render(mode + left + spacer + right)
}
