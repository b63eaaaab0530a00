package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/cbudget/internal/tui/theme"
)

// StatusInfo is what the bottom bar reports about the loaded ledger.
type StatusInfo struct {
	Source   string
	DataAge  string
	BadDates int
	Loading  bool
}

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, info StatusInfo) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		Width(width)
	warnStyle := lipgloss.NewStyle().Foreground(t.Warning).Background(t.Surface)

	left := " [?]help  [r]eload  [q]uit"
	if info.BadDates > 0 {
		left += warnStyle.Render(
			"  ! " + pluralize(info.BadDates, "transaction") + " with unreadable dates")
	}

	var right []string
	if info.Loading {
		right = append(right, "loading…")
	}
	if info.Source != "" {
		right = append(right, info.Source)
	}
	if info.DataAge != "" {
		right = append(right, "Data: "+info.DataAge)
	}
	r := strings.Join(right, "  ") + " "

	padding := width - lipgloss.Width(left) - lipgloss.Width(r)
	if padding < 1 {
		padding = 1
		maxR := width - lipgloss.Width(left) - 1
		r = truncate(r, maxR)
	}

	return style.Render(left + strings.Repeat(" ", padding) + r)
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
