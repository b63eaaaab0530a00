package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/cbudget/internal/cli"
	"github.com/theirongolddev/cbudget/internal/tui/components"
	"github.com/theirongolddev/cbudget/internal/tui/theme"
)

func (a App) renderFundsTab(cw int) string {
	t := theme.Active
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	rowStyle := lipgloss.NewStyle().Foreground(t.Text).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	if len(a.funds) == 0 {
		return components.ContentCard("Funds", mutedStyle.Render("No funds. Add one with: cbudget fund add <name> <account>"), cw)
	}

	accountNames := make(map[string]string, len(a.accounts))
	for _, acct := range a.accounts {
		accountNames[acct.ID] = acct.Name
	}

	var saved, target float64
	for _, f := range a.funds {
		saved += f.Balance
		target += f.Target
	}

	var b strings.Builder
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Funds", Value: cli.FormatNumber(int64(len(a.funds)))},
		{Label: "Saved", Value: cli.FormatMoney(saved), Tone: components.ToneOf(saved)},
		{Label: "Targets", Value: cli.FormatMoney(target), Delta: cli.FormatBudgetUsed(saved, target) + " reached"},
	}, cw))
	b.WriteString("\n")

	innerW := components.CardInnerWidth(cw)
	nameW := 20
	acctW := 14
	amountW := 25
	barW := innerW - nameW - acctW - amountW - 4
	if barW < 10 {
		barW = 10
	}

	var body strings.Builder
	for _, f := range a.funds {
		body.WriteString(rowStyle.Render(fmt.Sprintf("%-*s ", nameW, truncStr(f.Name, nameW))))
		body.WriteString(mutedStyle.Render(fmt.Sprintf("%-*s ", acctW, truncStr(accountNames[f.Account], acctW))))
		body.WriteString(components.GoalBar(f.Balance, f.Target, barW))
		body.WriteString(spaceStyle.Render(" "))
		goal := "no target"
		if f.Target > 0 {
			goal = cli.FormatMoney(f.Target)
		}
		body.WriteString(rowStyle.Render(fmt.Sprintf("%11s", cli.FormatMoney(f.Balance))))
		body.WriteString(mutedStyle.Render(fmt.Sprintf(" / %-10s", goal)))
		body.WriteString("\n")
	}

	b.WriteString(components.ContentCard("Funds", strings.TrimRight(body.String(), "\n"), cw))
	return b.String()
}
