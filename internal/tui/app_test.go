package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/theirongolddev/cbudget/internal/model"
)

func testDataset() model.Dataset {
	return model.Dataset{
		Categories: []model.Category{
			{ID: "c-salary", Name: "Salary", Type: model.CategoryFixed},
			{ID: "c-rent", Name: "Rent", Type: model.CategoryFixed},
		},
		Accounts: []model.Account{
			{ID: "chk", Name: "Checking", Type: model.AccountChecking},
		},
		Transactions: []model.Transaction{
			{ID: "t1", Account: "chk", Date: "2025-03-01", Description: "Paycheck", Category: "c-salary", Deposit: 5000},
			{ID: "t2", Account: "chk", Date: "2025-03-02", Description: "March rent", Category: "c-rent", Payment: 1500},
			{ID: "t3", Account: "chk", Date: "2025-02-02", Description: "Feb rent", Category: "c-rent", Payment: 1500},
			{ID: "t4", Account: "chk", Date: "not-a-date", Description: "Broken", Category: "c-rent", Payment: 10},
		},
		BudgetItems: []model.BudgetItem{
			{ID: "b1", Category: "c-rent", Type: model.BudgetExpense, Amounts: map[string]float64{"feb": 1400, "mar": 1400}},
		},
		SubAccounts: []model.SubAccount{
			{ID: "f1", Name: "Vacation", Account: "chk", Target: 2000},
		},
		SubAccountTransactions: []model.SubAccountTransaction{
			{ID: "s1", SubAccount: "f1", Date: "2025-03-05", Deposit: 500},
			{ID: "s2", SubAccount: "f1", Date: "2025-03-06", Payment: 100},
		},
	}
}

func loadedApp(t *testing.T) App {
	t.Helper()
	a := NewApp(Options{Source: "test", Month: 3, Year: 2025, SkipSetup: true})
	m, _ := a.Update(DataLoadedMsg{Data: testDataset(), BadDates: 1})
	return m.(App)
}

func press(t *testing.T, a App, keys ...tea.KeyMsg) App {
	t.Helper()
	for _, k := range keys {
		m, _ := a.Update(k)
		a = m.(App)
	}
	return a
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestDataLoadedComputesReport(t *testing.T) {
	a := loadedApp(t)

	if !a.loaded || a.loading {
		t.Fatalf("loaded=%v loading=%v, want true/false", a.loaded, a.loading)
	}
	if a.badDates != 1 {
		t.Errorf("badDates = %d, want 1", a.badDates)
	}
	if got := a.report.ActualSummary.Income; got != 5000 {
		t.Errorf("actual income = %v, want 5000", got)
	}
	if got := a.report.ActualSummary.Expenses; got != 1500 {
		t.Errorf("actual expenses = %v, want 1500", got)
	}
	if got := a.report.BudgetSummary.Expenses; got != 1400 {
		t.Errorf("budget expenses = %v, want 1400", got)
	}
	if len(a.accounts) != 1 || a.accounts[0].Balance != 5000-1500-1500-10 {
		t.Errorf("accounts = %+v, want one account with balance 1990", a.accounts)
	}
	if len(a.funds) != 1 || a.funds[0].Balance != 400 {
		t.Errorf("funds = %+v, want one fund with balance 400", a.funds)
	}
}

func TestMonthNavigationWrapsYear(t *testing.T) {
	a := loadedApp(t)

	a = press(t, a, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyLeft})
	if a.month != 12 || a.year != 2024 {
		t.Fatalf("after 3x left = %d/%d, want 12/2024", a.month, a.year)
	}

	a = press(t, a, tea.KeyMsg{Type: tea.KeyRight})
	if a.month != 1 || a.year != 2025 {
		t.Fatalf("after right = %d/%d, want 1/2025", a.month, a.year)
	}

	a = press(t, a, runeKey(']'))
	if a.year != 2026 || a.yearly.Year != 2026 {
		t.Errorf("after ] year=%d yearly.Year=%d, want 2026", a.year, a.yearly.Year)
	}
	a = press(t, a, runeKey('['), runeKey('['))
	if a.year != 2024 {
		t.Errorf("after [[ year = %d, want 2024", a.year)
	}
}

func TestYearToDateToggle(t *testing.T) {
	a := loadedApp(t)

	a = press(t, a, runeKey('t'))
	if !a.ytd {
		t.Fatal("ytd = false after t, want true")
	}
	// Feb + Mar rent, Feb + Mar budget.
	if got := a.report.ActualSummary.Expenses; got != 3000 {
		t.Errorf("ytd actual expenses = %v, want 3000", got)
	}
	if got := a.report.BudgetSummary.Expenses; got != 2800 {
		t.Errorf("ytd budget expenses = %v, want 2800", got)
	}

	a = press(t, a, runeKey('t'))
	if a.ytd {
		t.Error("ytd = true after second t, want false")
	}
}

func TestTabSwitching(t *testing.T) {
	a := loadedApp(t)

	a = press(t, a, runeKey('f'))
	if a.activeTab != tabFunds {
		t.Errorf("activeTab = %d, want %d", a.activeTab, tabFunds)
	}
	a = press(t, a, tea.KeyMsg{Type: tea.KeyTab})
	if a.activeTab != tabMonthly {
		t.Errorf("activeTab after tab = %d, want %d", a.activeTab, tabMonthly)
	}
	a = press(t, a, tea.KeyMsg{Type: tea.KeyShiftTab})
	if a.activeTab != tabFunds {
		t.Errorf("activeTab after shift+tab = %d, want %d", a.activeTab, tabFunds)
	}
}

func TestKeysIgnoredBeforeLoad(t *testing.T) {
	a := NewApp(Options{Month: 3, Year: 2025, SkipSetup: true})
	a = press(t, a, tea.KeyMsg{Type: tea.KeyLeft}, runeKey('y'))
	if a.month != 3 || a.activeTab != tabMonthly {
		t.Errorf("month=%d tab=%d before load, want 3/%d", a.month, a.activeTab, tabMonthly)
	}
}

func TestViewRendersEveryTab(t *testing.T) {
	a := loadedApp(t)
	m, _ := a.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	a = m.(App)

	for tab := tabMonthly; tab <= tabFunds; tab++ {
		a.activeTab = tab
		if v := a.View(); v == "" {
			t.Errorf("tab %d rendered empty view", tab)
		}
	}

	m, _ = a.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	if v := m.(App).View(); v == "" {
		t.Error("narrow view is empty")
	}
}

func TestFloorDiv(t *testing.T) {
	tests := []struct{ a, b, want int }{
		{0, 12, 0},
		{11, 12, 0},
		{12, 12, 1},
		{-1, 12, -1},
		{-12, 12, -1},
		{-13, 12, -2},
	}
	for _, tt := range tests {
		if got := floorDiv(tt.a, tt.b); got != tt.want {
			t.Errorf("floorDiv(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestFitHeight(t *testing.T) {
	tests := []struct {
		in   string
		h    int
		want string
	}{
		{"a\nb\nc", 2, "a\nb"},
		{"a", 3, "a\n\n"},
		{"a\nb", 2, "a\nb"},
	}
	for _, tt := range tests {
		if got := fitHeight(tt.in, tt.h); got != tt.want {
			t.Errorf("fitHeight(%q, %d) = %q, want %q", tt.in, tt.h, got, tt.want)
		}
	}
}

func TestTruncStr(t *testing.T) {
	if got := truncStr("Groceries", 5); got != "Groc…" {
		t.Errorf("truncStr = %q, want %q", got, "Groc…")
	}
	if got := truncStr("Rent", 10); got != "Rent" {
		t.Errorf("truncStr = %q, want %q", got, "Rent")
	}
}
