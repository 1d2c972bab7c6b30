package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for hike.
type KeyMap struct {
	// Document
	ScrollDown   key.Binding
	ScrollUp     key.Binding
	HalfPageDown key.Binding
	HalfPageUp   key.Binding
	GotoTop      key.Binding
	GotoBottom   key.Binding

	// Navigation
	Back         key.Binding
	Forward      key.Binding
	Reload       key.Binding
	FollowLink   key.Binding
	Find         key.Binding
	FindNext     key.Binding
	CommandLine  key.Binding
	Contents     key.Binding
	CopyLocation key.Binding
	Bookmark     key.Binding

	// Sidebar
	ToggleNavigation key.Binding
	FocusNavigation  key.Binding
	NextTab          key.Binding
	PrevTab          key.Binding
	Delete           key.Binding
	ClearHistory     key.Binding

	// Application
	Leader     key.Binding
	CycleTheme key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default vim-style keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		ScrollDown: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "scroll down"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "scroll up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d", "pgdown"),
			key.WithHelp("ctrl+d", "half page down"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u", "pgup"),
			key.WithHelp("ctrl+u", "half page up"),
		),
		GotoTop: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("gg", "go to top"),
		),
		GotoBottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "go to bottom"),
		),
		Back: key.NewBinding(
			key.WithKeys("H", "backspace", "alt+left"),
			key.WithHelp("H", "go back"),
		),
		Forward: key.NewBinding(
			key.WithKeys("L", "alt+right"),
			key.WithHelp("L", "go forward"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r", "ctrl+r"),
			key.WithHelp("r", "reload"),
		),
		FollowLink: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "follow link by number"),
		),
		Find: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "find in document"),
		),
		FindNext: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "find next"),
		),
		CommandLine: key.NewBinding(
			key.WithKeys(":", "ctrl+l"),
			key.WithHelp(":", "command line"),
		),
		Contents: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "table of contents"),
		),
		CopyLocation: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy location"),
		),
		Bookmark: key.NewBinding(
			key.WithKeys("B", "ctrl+b"),
			key.WithHelp("B", "bookmark document"),
		),
		ToggleNavigation: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "toggle sidebar"),
		),
		FocusNavigation: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "focus sidebar / document"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next sidebar tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "previous sidebar tab"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "remove entry"),
		),
		ClearHistory: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "clear history"),
		),
		Leader: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "leader"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "next theme"),
		),
		Help: key.NewBinding(
			key.WithKeys("?", "f1"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// helpSections groups bindings for the help document.
func (k KeyMap) helpSections() []helpSection {
	return []helpSection{
		{"Document", []key.Binding{k.ScrollDown, k.ScrollUp, k.HalfPageDown, k.HalfPageUp, k.GotoTop, k.GotoBottom, k.Find, k.FindNext}},
		{"Navigation", []key.Binding{k.CommandLine, k.Back, k.Forward, k.Reload, k.FollowLink, k.Contents, k.Bookmark, k.CopyLocation}},
		{"Sidebar", []key.Binding{k.ToggleNavigation, k.FocusNavigation, k.NextTab, k.PrevTab, k.Delete, k.ClearHistory}},
		{"Application", []key.Binding{k.Leader, k.CycleTheme, k.Help, k.Quit}},
	}
}

type helpSection struct {
	name     string
	bindings []key.Binding
}
