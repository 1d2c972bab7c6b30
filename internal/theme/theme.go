// Package theme holds the colour palettes used by the hike interface.
package theme

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a named palette. Glamour names the glamour standard style that
// suits the palette when the configuration asks for "auto" rendering.
type Theme struct {
	Name    string
	Glamour string

	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	Text    lipgloss.Color
	TextDim lipgloss.Color

	Background  lipgloss.Color
	Surface     lipgloss.Color
	Selection   lipgloss.Color
	Border      lipgloss.Color
	BorderFocus lipgloss.Color

	Error   lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Info    lipgloss.Color
}

var Default = Theme{
	Name:        "default",
	Glamour:     "dark",
	Primary:     lipgloss.Color("#0178D4"),
	Secondary:   lipgloss.Color("#004578"),
	Accent:      lipgloss.Color("#FFA62B"),
	Text:        lipgloss.Color("#E0E0E0"),
	TextDim:     lipgloss.Color("#7F8C8D"),
	Background:  lipgloss.Color("#121212"),
	Surface:     lipgloss.Color("#1E1E1E"),
	Selection:   lipgloss.Color("#263B53"),
	Border:      lipgloss.Color("#3A3A3A"),
	BorderFocus: lipgloss.Color("#0178D4"),
	Error:       lipgloss.Color("#BA3C5B"),
	Success:     lipgloss.Color("#4EBF71"),
	Warning:     lipgloss.Color("#FFA62B"),
	Info:        lipgloss.Color("#3E9BE0"),
}

var Gruvbox = Theme{
	Name:        "gruvbox",
	Glamour:     "dark",
	Primary:     lipgloss.Color("#85A598"),
	Secondary:   lipgloss.Color("#A89A85"),
	Accent:      lipgloss.Color("#FABD2F"),
	Text:        lipgloss.Color("#FBF1C7"),
	TextDim:     lipgloss.Color("#928374"),
	Background:  lipgloss.Color("#282828"),
	Surface:     lipgloss.Color("#3C3836"),
	Selection:   lipgloss.Color("#504945"),
	Border:      lipgloss.Color("#504945"),
	BorderFocus: lipgloss.Color("#85A598"),
	Error:       lipgloss.Color("#FB4934"),
	Success:     lipgloss.Color("#B8BB26"),
	Warning:     lipgloss.Color("#FE8019"),
	Info:        lipgloss.Color("#83A598"),
}

var Nord = Theme{
	Name:        "nord",
	Glamour:     "dark",
	Primary:     lipgloss.Color("#88C0D0"),
	Secondary:   lipgloss.Color("#81A1C1"),
	Accent:      lipgloss.Color("#B48EAD"),
	Text:        lipgloss.Color("#D8DEE9"),
	TextDim:     lipgloss.Color("#4C566A"),
	Background:  lipgloss.Color("#2E3440"),
	Surface:     lipgloss.Color("#3B4252"),
	Selection:   lipgloss.Color("#434C5E"),
	Border:      lipgloss.Color("#434C5E"),
	BorderFocus: lipgloss.Color("#88C0D0"),
	Error:       lipgloss.Color("#BF616A"),
	Success:     lipgloss.Color("#A3BE8C"),
	Warning:     lipgloss.Color("#EBCB8B"),
	Info:        lipgloss.Color("#5E81AC"),
}

var Dracula = Theme{
	Name:        "dracula",
	Glamour:     "dracula",
	Primary:     lipgloss.Color("#BD93F9"),
	Secondary:   lipgloss.Color("#6272A4"),
	Accent:      lipgloss.Color("#FF79C6"),
	Text:        lipgloss.Color("#F8F8F2"),
	TextDim:     lipgloss.Color("#6272A4"),
	Background:  lipgloss.Color("#282A36"),
	Surface:     lipgloss.Color("#2B2E3B"),
	Selection:   lipgloss.Color("#44475A"),
	Border:      lipgloss.Color("#44475A"),
	BorderFocus: lipgloss.Color("#BD93F9"),
	Error:       lipgloss.Color("#FF5555"),
	Success:     lipgloss.Color("#50FA7B"),
	Warning:     lipgloss.Color("#FFB86C"),
	Info:        lipgloss.Color("#8BE9FD"),
}

var TokyoNight = Theme{
	Name:        "tokyo-night",
	Glamour:     "tokyo-night",
	Primary:     lipgloss.Color("#BB9AF7"),
	Secondary:   lipgloss.Color("#7AA2F7"),
	Accent:      lipgloss.Color("#FF9E64"),
	Text:        lipgloss.Color("#A9B1D6"),
	TextDim:     lipgloss.Color("#565F89"),
	Background:  lipgloss.Color("#1A1B26"),
	Surface:     lipgloss.Color("#24283B"),
	Selection:   lipgloss.Color("#33467C"),
	Border:      lipgloss.Color("#3B4261"),
	BorderFocus: lipgloss.Color("#BB9AF7"),
	Error:       lipgloss.Color("#F7768E"),
	Success:     lipgloss.Color("#9ECE6A"),
	Warning:     lipgloss.Color("#E0AF68"),
	Info:        lipgloss.Color("#7DCFFF"),
}

var SolarizedLight = Theme{
	Name:        "solarized-light",
	Glamour:     "light",
	Primary:     lipgloss.Color("#268BD2"),
	Secondary:   lipgloss.Color("#2AA198"),
	Accent:      lipgloss.Color("#CB4B16"),
	Text:        lipgloss.Color("#586E75"),
	TextDim:     lipgloss.Color("#93A1A1"),
	Background:  lipgloss.Color("#FDF6E3"),
	Surface:     lipgloss.Color("#EEE8D5"),
	Selection:   lipgloss.Color("#E4DCC6"),
	Border:      lipgloss.Color("#93A1A1"),
	BorderFocus: lipgloss.Color("#268BD2"),
	Error:       lipgloss.Color("#DC322F"),
	Success:     lipgloss.Color("#859900"),
	Warning:     lipgloss.Color("#B58900"),
	Info:        lipgloss.Color("#268BD2"),
}

var themes = map[string]Theme{}

func init() {
	for _, t := range []Theme{Default, Gruvbox, Nord, Dracula, TokyoNight, SolarizedLight} {
		themes[t.Name] = t
	}
}

// Current is the active theme.
var Current = Default

// Set changes the active theme by name.
func Set(name string) bool {
	if t, ok := themes[name]; ok {
		Current = t
		return true
	}
	return false
}

// List returns all available theme names in alphabetical order.
func List() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Next returns the name of the theme after name in List order, wrapping at
// the end. An unknown name yields the first theme.
func Next(name string) string {
	names := List()
	for i, n := range names {
		if n == name {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}
