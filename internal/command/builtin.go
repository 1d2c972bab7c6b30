package command

import (
	"fmt"
	"strings"
)

// Action names a built-in command.
type Action int

const (
	Quit Action = iota + 1
	Contents
	Back
	Forward
	Reload
	Bookmark
	Help
)

// builtinCommand describes a built-in for matching and for help output.
type builtinCommand struct {
	action  Action
	name    string
	aliases []string
	help    string
}

var builtins = []builtinCommand{
	{Quit, "quit", []string{"q"}, "Quit the application"},
	{Contents, "contents", []string{"c", "toc"}, "Jump to the table of contents"},
	{Back, "back", []string{"b"}, "Go backward through history"},
	{Forward, "forward", []string{"fwd"}, "Go forward through history"},
	{Reload, "reload", []string{"r"}, "Reload the current document"},
	{Bookmark, "bookmark", []string{"bm"}, "Bookmark the current document"},
	{Help, "help", []string{"?"}, "Show help"},
}

func (a Action) String() string {
	for _, b := range builtins {
		if b.action == a {
			return b.name
		}
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

func builtin(input string) (Request, bool) {
	word := strings.ToLower(strings.Trim(strings.TrimSpace(input), "`"))
	for _, b := range builtins {
		if word == b.name {
			return Builtin{Action: b.action}, true
		}
		for _, alias := range b.aliases {
			if word == alias {
				return Builtin{Action: b.action}, true
			}
		}
	}
	return nil, false
}

// HelpEntry is one line of command line help.
type HelpEntry struct {
	Command   string
	Aliases   string
	Arguments string
	Help      string
}

// HelpEntries lists what can be typed into the command line.
func HelpEntries() []HelpEntry {
	entries := []HelpEntry{
		{Command: "<file>", Help: "Open a local file"},
		{Command: "<directory>", Help: "Browse for a file in a directory"},
		{Command: "<url>", Help: "Open a http or https URL"},
		{Command: "chdir", Aliases: "cd", Arguments: "<directory>", Help: "Change the local browsing root"},
		{Command: "bitbucket", Aliases: "bb", Arguments: "<owner> <repo>[:<branch>] [<file>]", Help: "Open a file from Bitbucket"},
		{Command: "codeberg", Aliases: "cb", Arguments: "<owner> <repo>[:<branch>] [<file>]", Help: "Open a file from Codeberg"},
		{Command: "github", Aliases: "gh", Arguments: "<owner> <repo>[:<branch>] [<file>]", Help: "Open a file from GitHub"},
		{Command: "gitlab", Aliases: "gl", Arguments: "<owner> <repo>[:<branch>] [<file>]", Help: "Open a file from GitLab"},
	}
	for _, b := range builtins {
		entries = append(entries, HelpEntry{
			Command: b.name,
			Aliases: strings.Join(b.aliases, ", "),
			Help:    b.help,
		})
	}
	return entries
}
