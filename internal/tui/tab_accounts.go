package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/cbudget/internal/cli"
	"github.com/theirongolddev/cbudget/internal/tui/components"
	"github.com/theirongolddev/cbudget/internal/tui/theme"
)

func (a App) renderAccountsTab(cw, h int) string {
	t := theme.Active
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	if len(a.accounts) == 0 {
		return components.ContentCard("Accounts", mutedStyle.Render("No accounts. Add one with: cbudget account add <name>"), cw)
	}

	leftW := cw / 3
	if leftW < 36 {
		leftW = 36
	}
	rightW := cw - leftW

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.Text).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.Text).Background(t.Highlight).Bold(true)
	posStyle := lipgloss.NewStyle().Foreground(t.Positive).Background(t.Surface)
	negStyle := lipgloss.NewStyle().Foreground(t.Negative).Background(t.Surface)

	// Left: account list
	nameW := components.CardInnerWidth(leftW) - 14
	if nameW < 10 {
		nameW = 10
	}
	var list strings.Builder
	var netWorth float64
	for i, acct := range a.accounts {
		netWorth += acct.Balance
		line := fmt.Sprintf("%-*s %13s", nameW, truncStr(acct.Name, nameW), cli.FormatMoney(acct.Balance))
		if i == a.acctCursor {
			list.WriteString(selStyle.Render(line))
		} else {
			list.WriteString(rowStyle.Render(line))
		}
		list.WriteString("\n")
	}
	list.WriteString("\n")
	worthStyle := posStyle
	if netWorth < 0 {
		worthStyle = negStyle
	}
	list.WriteString(headerStyle.Render(fmt.Sprintf("%-*s ", nameW, "Net worth")))
	list.WriteString(worthStyle.Render(fmt.Sprintf("%13s", cli.FormatMoney(netWorth))))

	// Right: selected account's recent transactions, newest first
	sel := a.accounts[a.acctCursor]
	txns := a.acctTxns[sel.ID]

	visible := h - 4
	if visible < 3 {
		visible = 3
	}

	descW := components.CardInnerWidth(rightW) - 10 - 1 - 16 - 1 - 11 - 1 - 11 - 1 - 11
	if descW < 8 {
		descW = 8
	}

	var detail strings.Builder
	detail.WriteString(headerStyle.Render(fmt.Sprintf("%-10s %-*s %-16s %11s %11s %11s",
		"Date", descW, "Description", "Category", "Payment", "Deposit", "Balance")))
	detail.WriteString("\n")
	shown := 0
	for i := len(txns) - 1; i >= 0 && shown < visible-1; i-- {
		txn := txns[i]
		bal := ""
		if txn.Balance != nil {
			bal = cli.FormatMoney(*txn.Balance)
		}
		detail.WriteString(rowStyle.Render(fmt.Sprintf("%-10s %-*s %-16s %11s %11s %11s",
			truncStr(txn.Date, 10),
			descW, truncStr(txn.Description, descW),
			truncStr(a.categoryName(txn.Category), 16),
			moneyOrBlank(txn.Payment),
			moneyOrBlank(txn.Deposit),
			bal)))
		detail.WriteString("\n")
		shown++
	}
	if len(txns) == 0 {
		detail.WriteString(mutedStyle.Render("No transactions"))
	}

	title := fmt.Sprintf("%s · %s · cleared %s", sel.Name, sel.Type, cli.FormatMoney(sel.Cleared))

	return components.CardRow([]string{
		components.ContentCard("Accounts", list.String(), leftW),
		components.ContentCard(title, strings.TrimRight(detail.String(), "\n"), rightW),
	})
}

func (a App) categoryName(id string) string {
	for _, c := range a.data.Categories {
		if c.ID == id {
			return c.Name
		}
	}
	return id
}

func moneyOrBlank(v float64) string {
	if v == 0 {
		return ""
	}
	return cli.FormatMoney(v)
}
