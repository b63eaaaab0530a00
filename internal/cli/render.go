package cli

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

// Palette for plain CLI output (Flexoki Dark).
var (
	ColorBorder   = lipgloss.Color("#282726")
	ColorDim      = lipgloss.Color("#575653")
	ColorMuted    = lipgloss.Color("#6F6E69")
	ColorText     = lipgloss.Color("#FFFCF0")
	ColorAccent   = lipgloss.Color("#3AA99F")
	ColorPositive = lipgloss.Color("#879A39")
	ColorWarning  = lipgloss.Color("#DA702C")
	ColorNegative = lipgloss.Color("#D14D41")
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorText).Align(lipgloss.Center)
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	valueStyle    = lipgloss.NewStyle().Foreground(ColorText)
	mutedStyle    = lipgloss.NewStyle().Foreground(ColorMuted)
	positiveStyle = lipgloss.NewStyle().Foreground(ColorPositive)
	negativeStyle = lipgloss.NewStyle().Foreground(ColorNegative)
	warnStyle     = lipgloss.NewStyle().Foreground(ColorWarning)
	dimStyle      = lipgloss.NewStyle().Foreground(ColorDim)
)

// Table is a bordered text table. A row holding the single cell "---"
// renders as a separator line.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Widths  []int // optional column widths, auto-calculated if nil
}

// separatorRow marks a horizontal rule inside Table.Rows.
const separatorRow = "---"

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderTable renders a bordered table. The first column is left-aligned and
// the rest, which hold amounts, are right-aligned.
func RenderTable(t Table) string {
	widths := t.columnWidths()
	if len(widths) == 0 {
		return ""
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  " + headerStyle.Render(t.Title) + "\n")
	}

	b.WriteString(rule(widths, "╭", "┬", "╮"))
	if len(t.Headers) > 0 {
		b.WriteString(tableRow(widths, t.Headers, headerStyle, false))
		b.WriteString(rule(widths, "├", "┼", "┤"))
	}
	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == separatorRow {
			b.WriteString(rule(widths, "├", "┼", "┤"))
			continue
		}
		b.WriteString(tableRow(widths, row, valueStyle, true))
	}
	b.WriteString(rule(widths, "╰", "┴", "╯"))

	return b.String()
}

func (t Table) columnWidths() []int {
	n := len(t.Headers)
	if n == 0 && len(t.Rows) > 0 {
		n = len(t.Rows[0])
	}
	widths := make([]int, n)
	if t.Widths != nil {
		copy(widths, t.Widths)
		return widths
	}

	grow := func(cells []string) {
		for i, cell := range cells {
			if i < n {
				widths[i] = max(widths[i], utf8.RuneCountInString(cell))
			}
		}
	}
	grow(t.Headers)
	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == separatorRow {
			continue
		}
		grow(row)
	}
	return widths
}

// rule draws a horizontal border line using the given corner and joint runes.
func rule(widths []int, left, joint, right string) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("─", w+2)
	}
	return dimStyle.Render(left+strings.Join(parts, joint)+right) + "\n"
}

func tableRow(widths []int, cells []string, style lipgloss.Style, alignAmounts bool) string {
	sep := dimStyle.Render("│")

	var b strings.Builder
	b.WriteString(sep)
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		format := " %-*s "
		if alignAmounts && i > 0 {
			format = " %*s "
		}
		b.WriteString(style.Render(fmt.Sprintf(format, w, cell)))
		b.WriteString(sep)
	}
	b.WriteString("\n")
	return b.String()
}

// RenderSparkline generates a unicode block sparkline from a series of
// values. Negative values share the lowest block.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := values[0]
	for _, v := range values[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak <= 0 {
		peak = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		b.WriteRune(blocks[idx])
	}

	return b.String()
}

// RenderBudgetBar renders how much of a budget was used, colored green,
// orange past 80%, and red past 100%.
func RenderBudgetBar(actual, budget float64, width int) string {
	used := BudgetUsed(actual, budget)
	filled := int(math.Min(used, 1) * float64(width))
	if filled < 0 {
		filled = 0
	}

	style := positiveStyle
	switch {
	case used > 1:
		style = negativeStyle
	case used > 0.8:
		style = warnStyle
	}

	return style.Render(strings.Repeat("█", filled)) +
		dimStyle.Render(strings.Repeat("░", width-filled))
}

// RenderSummaryLine renders a labeled money value, green when positive and
// red when negative.
func RenderSummaryLine(label string, v float64) string {
	style := valueStyle
	switch {
	case v > 0:
		style = positiveStyle
	case v < 0:
		style = negativeStyle
	}
	return fmt.Sprintf("  %-18s %s", mutedStyle.Render(label), style.Render(FormatMoney(v)))
}

// RenderWarning renders a warning line.
func RenderWarning(msg string) string {
	return warnStyle.Render("  ! " + msg)
}
