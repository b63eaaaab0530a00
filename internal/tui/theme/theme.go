// Package theme defines color themes for the cbudget TUI dashboard.
package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme maps the dashboard's color roles to concrete colors.
type Theme struct {
	Name string

	Background lipgloss.Color // behind cards
	Surface    lipgloss.Color // card and bar fill
	Highlight  lipgloss.Color // active tab, selected row
	Border     lipgloss.Color
	Focus      lipgloss.Color // overlay borders

	TextDim   lipgloss.Color // hints, axes, empty bar track
	TextMuted lipgloss.Color // labels
	Text      lipgloss.Color

	Accent       lipgloss.Color
	AccentBright lipgloss.Color

	Positive lipgloss.Color // income, surplus, under budget
	Negative lipgloss.Color // expenses over budget, deficits
	Warning  lipgloss.Color // nearing a budget, data problems
}

// Active is the currently selected theme.
var Active = FlexokiDark

// FlexokiDark is the default theme - warm, paper-inspired dark theme.
var FlexokiDark = Theme{
	Name:         "flexoki-dark",
	Background:   "#100F0F",
	Surface:      "#1C1B1A",
	Highlight:    "#282726",
	Border:       "#403E3C",
	Focus:        "#3AA99F",
	TextDim:      "#575653",
	TextMuted:    "#878580",
	Text:         "#FFFCF0",
	Accent:       "#3AA99F",
	AccentBright: "#5BC8BE",
	Positive:     "#879A39",
	Negative:     "#D14D41",
	Warning:      "#DA702C",
}

// CatppuccinMocha is a soft pastel theme.
var CatppuccinMocha = Theme{
	Name:         "catppuccin-mocha",
	Background:   "#1E1E2E",
	Surface:      "#313244",
	Highlight:    "#45475A",
	Border:       "#585B70",
	Focus:        "#89B4FA",
	TextDim:      "#6C7086",
	TextMuted:    "#A6ADC8",
	Text:         "#CDD6F4",
	Accent:       "#89B4FA",
	AccentBright: "#B4D0FB",
	Positive:     "#A6E3A1",
	Negative:     "#F38BA8",
	Warning:      "#FAB387",
}

// TokyoNight is a cool blue/purple theme.
var TokyoNight = Theme{
	Name:         "tokyo-night",
	Background:   "#1A1B26",
	Surface:      "#24283B",
	Highlight:    "#343A52",
	Border:       "#565F89",
	Focus:        "#7AA2F7",
	TextDim:      "#565F89",
	TextMuted:    "#A9B1D6",
	Text:         "#C0CAF5",
	Accent:       "#7AA2F7",
	AccentBright: "#A9C1FF",
	Positive:     "#9ECE6A",
	Negative:     "#F7768E",
	Warning:      "#FF9E64",
}

// Terminal uses ANSI 16 colors only.
var Terminal = Theme{
	Name:         "terminal",
	Background:   "0",
	Surface:      "0",
	Highlight:    "8",
	Border:       "8",
	Focus:        "6",
	TextDim:      "8",
	TextMuted:    "7",
	Text:         "15",
	Accent:       "6",
	AccentBright: "14",
	Positive:     "2",
	Negative:     "1",
	Warning:      "3",
}

// All available themes.
var All = []Theme{FlexokiDark, CatppuccinMocha, TokyoNight, Terminal}

// ByName returns a theme by its name, ignoring case, defaulting to FlexokiDark.
func ByName(name string) Theme {
	if t, ok := lookup(name); ok {
		return t
	}
	return FlexokiDark
}

// Names lists the available theme names in display order.
func Names() []string {
	names := make([]string, len(All))
	for i, t := range All {
		names[i] = t.Name
	}
	return names
}

// Known reports whether name is an available theme.
func Known(name string) bool {
	_, ok := lookup(name)
	return ok
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}

func lookup(name string) (Theme, bool) {
	for _, t := range All {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return Theme{}, false
}
