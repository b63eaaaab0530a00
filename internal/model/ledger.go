// Package model defines domain types for cbudget ledgers, budgets and reports.
package model

import (
	"strings"
	"time"
)

// CategoryType describes how a category behaves over the year.
type CategoryType string

// Category types.
const (
	CategoryFixed    CategoryType = "Fixed"
	CategorySeasonal CategoryType = "Seasonal"
	CategoryGoal     CategoryType = "Goal"
	CategoryVariable CategoryType = "Variable"
)

// Category is a named classification bucket. Name is the classification key.
type Category struct {
	ID   string       `json:"id"`
	Name string       `json:"name"`
	Type CategoryType `json:"type"`
}

// AccountType is the kind of a ledger account.
type AccountType string

// Account types.
const (
	AccountChecking   AccountType = "checking"
	AccountSavings    AccountType = "savings"
	AccountCredit     AccountType = "credit"
	AccountCash       AccountType = "cash"
	AccountInvestment AccountType = "investment"
)

// Account holds derived running totals recomputed from its transactions.
type Account struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Type    AccountType `json:"type"`
	Balance float64     `json:"balance"`
	Cleared float64     `json:"cleared"`
}

// Transaction is one ledger entry. Payment and Deposit are zero when absent.
// Balance and ClearedBalance are nil until the balance projector has run.
type Transaction struct {
	ID             string   `json:"id"`
	Account        string   `json:"account"`
	Date           string   `json:"date"`
	Description    string   `json:"description"`
	Category       string   `json:"category"`
	Payment        float64  `json:"payment,omitempty"`
	Deposit        float64  `json:"deposit,omitempty"`
	Memo           string   `json:"memo,omitempty"`
	Cleared        bool     `json:"cleared,omitempty"`
	Type           string   `json:"type,omitempty"`
	Balance        *float64 `json:"balance,omitempty"`
	ClearedBalance *float64 `json:"clearedBalance,omitempty"`
}

// Time parses the transaction date. ok is false when the date is unparsable.
func (t Transaction) Time() (time.Time, bool) {
	return ParseDate(t.Date)
}

// SubAccount is a savings fund carved out of a parent account.
type SubAccount struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Account string  `json:"account"`
	Target  float64 `json:"target,omitempty"`
	Balance float64 `json:"balance"`
}

// SubAccountTransaction moves money into or out of a fund.
type SubAccountTransaction struct {
	ID          string  `json:"id"`
	SubAccount  string  `json:"subAccount"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Payment     float64 `json:"payment,omitempty"`
	Deposit     float64 `json:"deposit,omitempty"`
	Memo        string  `json:"memo,omitempty"`
}

// Dataset is the plain-data bundle of every record table.
type Dataset struct {
	Categories             []Category              `json:"categories"`
	Accounts               []Account               `json:"accounts"`
	Transactions           []Transaction           `json:"transactions"`
	BudgetItems            []BudgetItem            `json:"budgetItems"`
	SubAccounts            []SubAccount            `json:"subAccounts"`
	SubAccountTransactions []SubAccountTransaction `json:"subAccountTransactions"`
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseDate reads a stored date string. The calendar date is taken as written,
// without shifting into the local zone.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders a date in the canonical storage layout.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
