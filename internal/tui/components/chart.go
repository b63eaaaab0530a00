package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/cbudget/internal/tui/theme"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a unicode sparkline from values. Values at or below
// zero share the lowest block.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}

	peak := 0.0
	for _, v := range values {
		peak = math.Max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}

	top := len(sparkBlocks) - 1
	runes := make([]rune, len(values))
	for i, v := range values {
		idx := int(v / peak * float64(top))
		runes[i] = sparkBlocks[min(max(idx, 0), top)]
	}

	style := lipgloss.NewStyle().Foreground(color).Background(theme.Active.Surface)
	return style.Render(string(runes))
}

// chartScale maps amounts onto chart rows with round y-axis ticks.
type chartScale struct {
	step        float64
	ceiling     float64
	intervals   int
	rowsPerTick int
}

func newChartScale(peak float64, height int) chartScale {
	step := chartTickStep(peak)
	maxIntervals := max(height/2, 2)
	for int(math.Ceil(peak/step)) > maxIntervals {
		step *= 2
	}

	s := chartScale{step: step}
	s.ceiling = math.Ceil(peak/step) * step
	s.intervals = max(int(math.Round(s.ceiling/step)), 1)
	s.rowsPerTick = max(height/s.intervals, 2)
	return s
}

func (s chartScale) rows() int { return s.rowsPerTick * s.intervals }

// label returns the tick label for a row, or "" between ticks.
func (s chartScale) label(row int) string {
	if row%s.rowsPerTick != 0 {
		return ""
	}
	return formatChartLabel(s.step * float64(row/s.rowsPerTick))
}

// cell returns the block drawn for value v in row (1-based from the bottom).
func (s chartScale) cell(v float64, row int) rune {
	top := s.ceiling * float64(row) / float64(s.rows())
	bottom := s.ceiling * float64(row-1) / float64(s.rows())
	switch {
	case v >= top:
		return '█'
	case v > bottom:
		eighths := int((v - bottom) / (top - bottom) * 8)
		return sparkBlocks[min(max(eighths, 1), 8)-1]
	default:
		return ' '
	}
}

// BarChart renders one bar per value with a y-axis of round amounts and
// the labels below. Negative values draw as empty bars. Charts too small to
// draw fall back to a Sparkline.
func BarChart(values []float64, labels []string, color lipgloss.Color, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	vals := make([]float64, len(values))
	peak := 0.0
	for i, v := range values {
		vals[i] = math.Max(v, 0)
		peak = math.Max(peak, vals[i])
	}
	if width < 15 || height < 3 {
		return Sparkline(vals, color)
	}
	if peak == 0 {
		peak = 1
	}

	t := theme.Active
	scale := newChartScale(peak, height)

	yLabelW := max(len(formatChartLabel(scale.ceiling))+1, 4)
	plotW := max(width-yLabelW-1, 5)

	n := len(vals)
	gap := 0
	barW := plotW
	if n > 1 {
		gap = 1
		barW = (plotW - (n - 1)) / n
	}
	if barW < 2 && n > 1 {
		vals, labels = sampleSeries(vals, labels, max((plotW+1)/3, 2))
		n = len(vals)
		barW = 2
	}
	barW = min(barW, 6)
	axisLen := n*barW + (n-1)*gap

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	barStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	gapStr := lipgloss.NewStyle().Background(t.Surface).Render(strings.Repeat(" ", gap))

	var b strings.Builder
	for row := scale.rows(); row >= 1; row-- {
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s│", yLabelW, scale.label(row))))
		for i, v := range vals {
			if i > 0 {
				b.WriteString(gapStr)
			}
			b.WriteString(barStyle.Render(strings.Repeat(string(scale.cell(v, row)), barW)))
		}
		b.WriteString("\n")
	}
	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s└%s", yLabelW, "0", strings.Repeat("─", axisLen))))

	if len(labels) == n {
		b.WriteString("\n")
		b.WriteString(axisStyle.Render(strings.Repeat(" ", yLabelW+1) +
			xAxisLabels(labels, barW+gap, axisLen)))
	}

	return b.String()
}

// sampleSeries picks n evenly spaced points from vals and labels.
func sampleSeries(vals []float64, labels []string, n int) ([]float64, []string) {
	outV := make([]float64, n)
	var outL []string
	if len(labels) == len(vals) {
		outL = make([]string, n)
	}
	for i := range outV {
		src := i * (len(vals) - 1) / (n - 1)
		outV[i] = vals[src]
		if outL != nil {
			outL[i] = labels[src]
		}
	}
	return outV, outL
}

// xAxisLabels lays labels out at their bar positions, skipping any that
// would touch the previous one.
func xAxisLabels(labels []string, pitch, axisLen int) string {
	line := []rune(strings.Repeat(" ", axisLen))
	place := func(pos int, lbl string) int {
		r := []rune(lbl)
		if pos+len(r) > axisLen {
			pos = axisLen - len(r)
		}
		if pos < 0 {
			return -1
		}
		copy(line[pos:], r)
		return pos + len(r)
	}

	lastEnd := -1
	for i := 0; i < len(labels)-1; i++ {
		pos := i * pitch
		if pos <= lastEnd || pos+len(labels[i]) > axisLen {
			continue
		}
		lastEnd = place(pos, labels[i])
	}
	if n := len(labels); n > 0 {
		pos := (n - 1) * pitch
		if pos > lastEnd || n == 1 {
			place(pos, labels[n-1])
		}
	}
	return strings.TrimRight(string(line), " ")
}

// chartTickStep picks a 1/2/5 tick interval giving about five ticks.
func chartTickStep(peak float64) float64 {
	if peak <= 0 {
		return 1
	}
	rough := peak / 5
	base := math.Pow(10, math.Floor(math.Log10(rough)))
	switch frac := rough / base; {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

// formatChartLabel renders a y-axis amount, e.g. 1500 -> "$1.5k", 2000 -> "$2k".
func formatChartLabel(v float64) string {
	scaled := func(div float64, unit string) string {
		if v == math.Trunc(v/div)*div {
			return fmt.Sprintf("$%.0f%s", v/div, unit)
		}
		return fmt.Sprintf("$%.1f%s", v/div, unit)
	}
	switch {
	case v >= 1e6:
		return scaled(1e6, "M")
	case v >= 1e3:
		return scaled(1e3, "k")
	case v >= 1:
		return fmt.Sprintf("$%.0f", v)
	default:
		return fmt.Sprintf("$%.2f", v)
	}
}

// MonthLabels returns three-letter x-axis labels for the twelve months.
func MonthLabels() []string {
	return []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
}
