// Package components provides reusable TUI widgets for the cbudget dashboard.
package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/cbudget/internal/tui/theme"
)

// Tone selects the value color of a metric card.
type Tone int

// Metric tones.
const (
	ToneNeutral Tone = iota
	TonePositive
	ToneNegative
)

// ToneOf returns TonePositive for v > 0, ToneNegative for v < 0.
func ToneOf(v float64) Tone {
	switch {
	case v > 0:
		return TonePositive
	case v < 0:
		return ToneNegative
	}
	return ToneNeutral
}

func (tn Tone) color(t theme.Theme) lipgloss.Color {
	switch tn {
	case TonePositive:
		return t.Positive
	case ToneNegative:
		return t.Negative
	}
	return t.Text
}

// Metric is one card of a MetricCardRow.
type Metric struct {
	Label string
	Value string
	Delta string // optional third line
	Tone  Tone
}

const (
	minCardText = 10
	cardChrome  = 4 // two border columns plus one column of padding each side
)

// LayoutRow splits total into n widths summing to total, widest first.
func LayoutRow(total, n int) []int {
	if n <= 0 {
		return nil
	}
	widths := make([]int, n)
	for i := range widths {
		widths[i] = total / n
		if i < total%n {
			widths[i]++
		}
	}
	return widths
}

// CardInnerWidth is the text width available inside a card of outerWidth.
func CardInnerWidth(outerWidth int) int {
	return max(outerWidth-cardChrome, minCardText)
}

// cardFrame is the rounded surface every card is drawn in.
func cardFrame(outerWidth int) lipgloss.Style {
	t := theme.Active
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		BorderBackground(t.Background).
		Background(t.Surface).
		Padding(0, 1).
		Width(CardInnerWidth(outerWidth) + 2)
}

// MetricCard renders label, value and optional delta in a card exactly
// outerWidth wide.
func MetricCard(m Metric, outerWidth int) string {
	t := theme.Active
	on := lipgloss.NewStyle().Background(t.Surface)

	text := on.Foreground(t.TextMuted).Render(m.Label) + "\n" +
		on.Foreground(m.Tone.color(t)).Bold(true).Render(m.Value)
	if m.Delta != "" {
		text += "\n" + on.Foreground(t.TextDim).Render(m.Delta)
	}
	return cardFrame(outerWidth).Render(text)
}

// MetricCardRow lays cards side by side across totalWidth.
func MetricCardRow(cards []Metric, totalWidth int) string {
	if len(cards) == 0 {
		return ""
	}
	widths := LayoutRow(totalWidth, len(cards))
	rendered := make([]string, len(cards))
	for i, c := range cards {
		rendered[i] = MetricCard(c, widths[i])
	}
	return CardRow(rendered)
}

// ContentCard renders body in a card with an optional bold title line.
func ContentCard(title, body string, outerWidth int) string {
	if title != "" {
		t := theme.Active
		heading := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Bold(true)
		body = heading.Render(title) + "\n" + body
	}
	return cardFrame(outerWidth).Render(body)
}

// CardRow joins rendered cards horizontally, filling under shorter cards
// with the background color so the row has no unstyled cells.
func CardRow(cards []string) string {
	if len(cards) == 0 {
		return ""
	}
	tallest := 0
	for _, c := range cards {
		tallest = max(tallest, lipgloss.Height(c))
	}
	fill := lipgloss.WithWhitespaceBackground(theme.Active.Background)
	cols := make([]string, len(cards))
	for i, c := range cards {
		cols[i] = c
		if lipgloss.Height(c) < tallest {
			cols[i] = lipgloss.PlaceVertical(tallest, lipgloss.Top, c, fill)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}
