package ui

import (
	"path/filepath"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/hike/internal/theme"
)

// LocalPicker browses a directory for Markdown files to open.
type LocalPicker struct {
	picker filepicker.Model
	exts   []string
	height int
}

// NewLocalPicker creates a picker rooted at dir that only selects files with
// one of exts.
func NewLocalPicker(dir string, exts []string) LocalPicker {
	fp := filepicker.New()
	fp.CurrentDirectory = dir
	fp.AllowedTypes = exts
	fp.AutoHeight = false
	fp.ShowPermissions = false
	fp.ShowSize = false
	fp.Cursor = "▸"
	// Escape belongs to the sidebar, not to directory navigation.
	fp.KeyMap.Back = key.NewBinding(key.WithKeys("h", "backspace", "left"), key.WithHelp("h", "up"))
	return LocalPicker{picker: fp, exts: exts}
}

// Init reads the starting directory.
func (lp *LocalPicker) Init() tea.Cmd {
	return lp.picker.Init()
}

// SetDirectory restarts the picker at dir and reads it.
func (lp *LocalPicker) SetDirectory(dir string) tea.Cmd {
	height := lp.height
	*lp = NewLocalPicker(filepath.Clean(dir), lp.exts)
	if height > 0 {
		lp.SetHeight(height)
	}
	return lp.picker.Init()
}

// Directory returns the directory being shown.
func (lp *LocalPicker) Directory() string {
	return lp.picker.CurrentDirectory
}

// SetHeight sets the number of rows shown.
func (lp *LocalPicker) SetHeight(h int) {
	lp.height = max(1, h)
	lp.picker.SetHeight(lp.height)
}

// Update forwards msg to the picker and reports a file the user picked. A
// picked file that is not Markdown is returned as disabled.
func (lp *LocalPicker) Update(msg tea.Msg) (tea.Cmd, string, bool) {
	var cmd tea.Cmd
	lp.picker, cmd = lp.picker.Update(msg)
	if ok, path := lp.picker.DidSelectFile(msg); ok {
		return cmd, path, true
	}
	if ok, path := lp.picker.DidSelectDisabledFile(msg); ok {
		return cmd, path, false
	}
	return cmd, "", false
}

// View renders the current directory and its entries.
func (lp *LocalPicker) View(width int) string {
	t := theme.Current
	header := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Italic(true).
		Padding(0, 1).
		Width(width).
		Render(lp.picker.CurrentDirectory)
	return header + "\n" + lp.picker.View()
}
