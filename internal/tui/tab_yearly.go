package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/cbudget/internal/cli"
	"github.com/theirongolddev/cbudget/internal/pipeline"
	"github.com/theirongolddev/cbudget/internal/tui/components"
	"github.com/theirongolddev/cbudget/internal/tui/theme"
)

func (a App) renderYearlyTab(cw int) string {
	t := theme.Active
	y := a.yearly
	var b strings.Builder

	// Row 1: Income and expense charts
	income := make([]float64, len(y.MonthlyData))
	expenses := make([]float64, len(y.MonthlyData))
	net := make([]float64, len(y.MonthlyData))
	for i, md := range y.MonthlyData {
		income[i] = md.Income
		expenses[i] = md.Expenses
		net[i] = md.Net
	}

	chartH := 10
	if a.isCompactLayout() {
		chartH = 7
	}
	halves := components.LayoutRow(cw, 2)
	b.WriteString(components.CardRow([]string{
		components.ContentCard(fmt.Sprintf("Income %d", y.Year),
			components.BarChart(income, components.MonthLabels(), t.Positive, components.CardInnerWidth(halves[0]), chartH),
			halves[0]),
		components.ContentCard(fmt.Sprintf("Expenses %d", y.Year),
			components.BarChart(expenses, components.MonthLabels(), t.Negative, components.CardInnerWidth(halves[1]), chartH),
			halves[1]),
	}))
	b.WriteString("\n")

	// Row 2: Month table + category breakdown
	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.Text).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	posStyle := lipgloss.NewStyle().Foreground(t.Positive).Background(t.Surface)
	negStyle := lipgloss.NewStyle().Foreground(t.Negative).Background(t.Surface)

	netCell := func(v float64) string {
		s := fmt.Sprintf("%12s", cli.FormatSignedMoney(v))
		switch {
		case v > 0:
			return posStyle.Render(s)
		case v < 0:
			return negStyle.Render(s)
		}
		return rowStyle.Render(s)
	}

	var months strings.Builder
	months.WriteString(headerStyle.Render(fmt.Sprintf("%-10s %12s %12s %12s", "Month", "Income", "Expenses", "Net")))
	months.WriteString("\n")
	for _, md := range y.MonthlyData {
		style := rowStyle
		if md.Month == a.month {
			style = style.Bold(true)
		}
		months.WriteString(style.Render(fmt.Sprintf("%-10s %12s %12s ", md.MonthName,
			cli.FormatMoney(md.Income), cli.FormatMoney(md.Expenses))))
		months.WriteString(netCell(md.Net))
		months.WriteString("\n")
	}
	months.WriteString(mutedStyle.Render(fmt.Sprintf("%-10s %12s %12s ", "Total",
		cli.FormatMoney(y.Totals.Income), cli.FormatMoney(y.Totals.Expenses))))
	months.WriteString(netCell(y.Totals.Net))
	months.WriteString("\n")
	months.WriteString(mutedStyle.Render(fmt.Sprintf("%-10s %12s %12s ", "Avg/month",
		cli.FormatMoney(y.Averages.Income), cli.FormatMoney(y.Averages.Expenses))))
	months.WriteString(netCell(y.Averages.Net))
	months.WriteString("\n")
	ytdAvg := pipeline.YearToDateAverages(y, a.month)
	months.WriteString(mutedStyle.Render(fmt.Sprintf("%-10s %12s %12s ", "Avg YTD",
		cli.FormatMoney(ytdAvg.Income), cli.FormatMoney(ytdAvg.Expenses))))
	months.WriteString(netCell(ytdAvg.Net))
	months.WriteString("\n")
	months.WriteString(mutedStyle.Render("Net  ") + components.Sparkline(net, t.Accent))

	type catTotal struct {
		name    string
		kind    pipeline.Kind
		total   float64
		average float64
	}
	cats := make([]catTotal, 0, len(y.CategoryBreakdown))
	for name, ct := range y.CategoryBreakdown {
		cats = append(cats, catTotal{name, a.opts.Classifier.Kind(name), ct.Total, ct.Average})
	}
	sort.Slice(cats, func(i, j int) bool {
		if cats[i].total != cats[j].total {
			return cats[i].total > cats[j].total
		}
		return cats[i].name < cats[j].name
	})

	var breakdown strings.Builder
	breakdown.WriteString(headerStyle.Render(fmt.Sprintf("%-20s %-10s %11s %10s", "Category", "Kind", "Total", "Avg")))
	breakdown.WriteString("\n")
	limit := len(y.MonthlyData) + 3
	for i, c := range cats {
		if i >= limit {
			breakdown.WriteString(mutedStyle.Render(fmt.Sprintf("… %d more", len(cats)-limit)))
			break
		}
		breakdown.WriteString(rowStyle.Render(fmt.Sprintf("%-20s ", truncStr(c.name, 20))))
		breakdown.WriteString(mutedStyle.Render(fmt.Sprintf("%-10s ", c.kind)))
		breakdown.WriteString(rowStyle.Render(fmt.Sprintf("%11s %10s", cli.FormatMoney(c.total), cli.FormatCompactMoney(c.average))))
		breakdown.WriteString("\n")
	}
	if len(cats) == 0 {
		breakdown.WriteString(mutedStyle.Render("No transactions"))
	}

	b.WriteString(components.CardRow([]string{
		components.ContentCard("Months", months.String(), halves[0]),
		components.ContentCard("Categories", strings.TrimRight(breakdown.String(), "\n"), halves[1]),
	}))

	return b.String()
}
