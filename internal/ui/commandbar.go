package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/hike/internal/theme"
)

// InputKind identifies what the command line is collecting.
type InputKind int

const (
	InputNone    InputKind = iota
	InputCommand           // a location or built-in command
	InputFind              // text to find in the document
	InputFollow            // the number of a link to follow
)

// Submission is produced when the command line is submitted.
type Submission struct {
	Kind  InputKind
	Value string
}

// CommandLine is the input at the bottom of the screen. Command input keeps
// a history that up and down recall.
type CommandLine struct {
	input      textinput.Model
	kind       InputKind
	width      int
	history    []string
	historyPos int
}

// NewCommandLine creates an inactive command line.
func NewCommandLine() CommandLine {
	ti := textinput.New()
	ti.CharLimit = 1024
	return CommandLine{
		input:      ti,
		historyPos: -1,
	}
}

// SetWidth sets the command line width.
func (c *CommandLine) SetWidth(w int) {
	c.width = w
	c.input.Width = max(1, w-4)
}

// Open focuses the command line for the given kind of input.
func (c *CommandLine) Open(kind InputKind) tea.Cmd {
	c.kind = kind
	c.input.Reset()
	c.historyPos = -1

	switch kind {
	case InputCommand:
		c.input.Prompt = "> "
		c.input.Placeholder = "file, directory, URL, forge or command"
	case InputFind:
		c.input.Prompt = "/"
		c.input.Placeholder = "find..."
	case InputFollow:
		c.input.Prompt = "# "
		c.input.Placeholder = "link number"
	}
	return c.input.Focus()
}

// Close blurs and clears the command line.
func (c *CommandLine) Close() {
	c.kind = InputNone
	c.input.Blur()
	c.input.Reset()
}

// IsActive reports whether the command line has focus.
func (c *CommandLine) IsActive() bool {
	return c.kind != InputNone
}

// Kind returns the kind of input being collected.
func (c *CommandLine) Kind() InputKind {
	return c.kind
}

// SetValue pre-fills the input.
func (c *CommandLine) SetValue(val string) {
	c.input.SetValue(val)
	c.input.SetCursor(len(val))
}

// Value returns the current input.
func (c *CommandLine) Value() string {
	return c.input.Value()
}

// History returns the recorded command inputs, oldest first.
func (c *CommandLine) History() []string {
	return append([]string(nil), c.history...)
}

// Submit closes the command line and returns what was entered. Non-empty
// command input is recorded in the history unless it repeats the last entry.
func (c *CommandLine) Submit() Submission {
	s := Submission{Kind: c.kind, Value: strings.TrimSpace(c.input.Value())}
	if s.Kind == InputCommand && s.Value != "" {
		if n := len(c.history); n == 0 || c.history[n-1] != s.Value {
			c.history = append(c.history, s.Value)
		}
	}
	c.Close()
	return s
}

// Recall steps through the command history: positive steps go further back.
func (c *CommandLine) Recall(step int) {
	if c.kind != InputCommand || len(c.history) == 0 {
		return
	}
	c.historyPos = clamp(c.historyPos+step, -1, len(c.history)-1)
	if c.historyPos < 0 {
		c.input.Reset()
		return
	}
	c.SetValue(c.history[len(c.history)-1-c.historyPos])
}

// Update processes messages for the command line. Enter and escape are left
// to the caller.
func (c *CommandLine) Update(msg tea.Msg) (*CommandLine, tea.Cmd) {
	if !c.IsActive() {
		return c, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEsc, tea.KeyEnter:
			return c, nil
		case tea.KeyUp:
			c.Recall(1)
			return c, nil
		case tea.KeyDown:
			c.Recall(-1)
			return c, nil
		}
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

// View renders the command line. An inactive command line shows a hint.
func (c *CommandLine) View() string {
	t := theme.Current

	style := lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.Surface).
		Width(c.width)

	if !c.IsActive() {
		return style.Foreground(t.TextDim).Render(" : enter a location or command   ? help")
	}
	return style.Render(c.input.View())
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
