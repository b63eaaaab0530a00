package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/cbudget/internal/cli"
	"github.com/theirongolddev/cbudget/internal/pipeline"
	"github.com/theirongolddev/cbudget/internal/tui/components"
	"github.com/theirongolddev/cbudget/internal/tui/theme"
)

func (a App) renderMonthlyTab(cw, h int) string {
	t := theme.Active
	r := a.report
	var b strings.Builder

	// Row 1: Metric cards
	cards := []components.Metric{
		{
			Label: "Income",
			Value: cli.FormatMoney(r.ActualSummary.Income),
			Delta: "budget " + cli.FormatMoney(r.BudgetSummary.Income),
			Tone:  components.ToneOf(r.Difference.Income),
		},
		{
			Label: "Expenses",
			Value: cli.FormatMoney(r.ActualSummary.Expenses),
			Delta: "budget " + cli.FormatMoney(r.BudgetSummary.Expenses),
			Tone:  components.ToneOf(-r.Difference.Expenses),
		},
		{
			Label: "Net",
			Value: cli.FormatSignedMoney(r.ActualSummary.Net),
			Delta: "budget " + cli.FormatSignedMoney(r.BudgetSummary.Net),
			Tone:  components.ToneOf(r.ActualSummary.Net),
		},
		{
			Label: "vs Budget",
			Value: cli.FormatSignedMoney(r.Difference.Net),
			Delta: cli.FormatBudgetUsed(r.ActualSummary.Expenses, r.BudgetSummary.Expenses) + " of expenses used",
			Tone:  components.ToneOf(r.Difference.Net),
		},
	}
	if a.isCompactLayout() {
		b.WriteString(components.MetricCardRow(cards[:2], cw))
		b.WriteString("\n")
		b.WriteString(components.MetricCardRow(cards[2:], cw))
	} else {
		b.WriteString(components.MetricCardRow(cards, cw))
	}
	b.WriteString("\n")

	// Row 2: Category bars
	innerW := components.CardInnerWidth(cw)
	labelW := 22
	amountW := 24
	barW := innerW - labelW - amountW - 10
	if barW < 10 {
		barW = 10
	}

	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	amountStyle := lipgloss.NewStyle().Foreground(t.Text).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	if len(a.rows) == 0 {
		b.WriteString(components.ContentCard("Categories",
			mutedStyle.Render("No budget or transactions for "+cli.FormatPeriod(a.month, a.year, a.ytd)), cw))
		return b.String()
	}

	// Leave room for the card border and title.
	visible := h - lipgloss.Height(b.String()) - 4
	if visible < 3 {
		visible = 3
	}

	var body strings.Builder
	lastKind := pipeline.Kind(-1)
	lines := 0
	for i := a.catScroll; i < len(a.rows) && lines < visible; i++ {
		row := a.rows[i]
		if row.Kind != lastKind {
			if lastKind >= 0 {
				body.WriteString("\n")
			}
			body.WriteString(sectionStyle.Render(kindHeading(row.Kind)))
			body.WriteString("\n")
			lastKind = row.Kind
			lines++
		}

		used := cli.BudgetUsed(row.Actual, row.Budget)
		body.WriteString(components.BudgetBar(row.Name, used, cli.FormatBudgetUsed(row.Actual, row.Budget), labelW, barW))
		body.WriteString(spaceStyle.Render("  "))
		body.WriteString(amountStyle.Render(fmt.Sprintf("%11s", cli.FormatMoney(row.Actual))))
		body.WriteString(mutedStyle.Render(fmt.Sprintf(" / %-10s", cli.FormatMoney(row.Budget))))
		body.WriteString("\n")
		lines++
	}

	title := fmt.Sprintf("Categories · %s", cli.FormatPeriod(a.month, a.year, a.ytd))
	if a.catScroll > 0 || lines >= visible {
		title += fmt.Sprintf(" [%d/%d]", a.catScroll+1, len(a.rows))
	}
	b.WriteString(components.ContentCard(title, strings.TrimRight(body.String(), "\n"), cw))

	return b.String()
}

func kindHeading(k pipeline.Kind) string {
	switch k {
	case pipeline.KindIncome:
		return "Income"
	case pipeline.KindNonBudget:
		return "Non-budget"
	default:
		return "Expenses"
	}
}
