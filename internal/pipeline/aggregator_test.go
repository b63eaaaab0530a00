package pipeline

import (
	"testing"

	"github.com/theirongolddev/cbudget/internal/model"
)

var testCategories = []model.Category{
	{ID: "c-salary", Name: "Salary", Type: model.CategoryFixed},
	{ID: "c-interest", Name: "Interest", Type: model.CategoryVariable},
	{ID: "c-transfer", Name: "Transfer", Type: model.CategoryVariable},
	{ID: "c-rent", Name: "Rent", Type: model.CategoryFixed},
	{ID: "c-food", Name: "Groceries", Type: model.CategoryVariable},
}

func salaryBudget() model.BudgetItem {
	return model.BudgetItem{
		ID:       "b-salary",
		Category: "c-salary",
		Type:     model.BudgetIncome,
		Amounts:  map[string]float64{"jan": 5000, "feb": 5000, "mar": 5200},
	}
}

func rentBudget() model.BudgetItem {
	return model.BudgetItem{
		ID:       "b-rent",
		Category: "c-rent",
		Type:     model.BudgetExpense,
		Amounts:  map[string]float64{"jan": 1500, "feb": 1500, "mar": 1500},
	}
}

func txn(id, date, category string, payment, deposit float64) model.Transaction {
	return model.Transaction{
		ID:       id,
		Account:  "acct-1",
		Date:     date,
		Category: category,
		Payment:  payment,
		Deposit:  deposit,
	}
}

func TestCalculateMonthlyBudgetIncomeOnly(t *testing.T) {
	got := CalculateMonthlyBudget(1, 2025, []model.BudgetItem{salaryBudget()})
	want := model.BudgetSummary{Income: 5000, Expenses: 0, Net: 5000}
	if got != want {
		t.Errorf("CalculateMonthlyBudget = %+v, want %+v", got, want)
	}
}

func TestCalculateMonthlyBudgetIgnoresYear(t *testing.T) {
	items := []model.BudgetItem{salaryBudget(), rentBudget()}
	a := CalculateMonthlyBudget(3, 2019, items)
	b := CalculateMonthlyBudget(3, 2031, items)
	if a != b {
		t.Errorf("budget differs across years: %+v vs %+v", a, b)
	}
	if a.Net != 3700 {
		t.Errorf("Net = %v, want 3700", a.Net)
	}
}

func TestCalculateMonthlyBudgetMissingKeyAndBadMonth(t *testing.T) {
	items := []model.BudgetItem{salaryBudget(), {Category: "c-rent", Type: model.BudgetExpense}}
	if got := CalculateMonthlyBudget(7, 2025, items); got != (model.BudgetSummary{}) {
		t.Errorf("July budget = %+v, want zero", got)
	}
	if got := CalculateMonthlyBudget(13, 2025, items); got != (model.BudgetSummary{}) {
		t.Errorf("month 13 budget = %+v, want zero", got)
	}
}

func TestCalculateActualSpendingIncome(t *testing.T) {
	txns := []model.Transaction{txn("t1", "2025-01-15", "c-salary", 0, 4800)}
	got := CalculateActualSpending(1, 2025, txns, testCategories, []model.BudgetItem{salaryBudget()}, nil)

	if got.Income != 4800 {
		t.Errorf("Income = %v, want 4800", got.Income)
	}
	c := got.ByCategory["Salary"]
	if c == nil {
		t.Fatal("missing Salary category")
	}
	want := model.CategoryActual{Budgeted: 5000, Actual: 4800, Difference: -200}
	if *c != want {
		t.Errorf("Salary = %+v, want %+v", *c, want)
	}
}

func TestCalculateActualSpendingNonBudgetExcluded(t *testing.T) {
	txns := []model.Transaction{
		txn("t1", "2025-01-03", "c-transfer", 100, 0),
		txn("t2", "2025-01-04", "c-rent", 1500, 0),
	}
	got := CalculateActualSpending(1, 2025, txns, testCategories, nil, nil)

	if got.Expenses != 1500 {
		t.Errorf("Expenses = %v, want 1500", got.Expenses)
	}
	tr := got.ByCategory["Transfer"]
	if tr == nil {
		t.Fatal("Transfer entry should exist")
	}
	if tr.Actual != 0 {
		t.Errorf("Transfer actual = %v, want 0", tr.Actual)
	}
}

func TestCalculateActualSpendingExpenseEligibility(t *testing.T) {
	// Deposits into expense categories and payments out of income categories
	// do not count.
	txns := []model.Transaction{
		txn("t1", "2025-02-01", "c-food", 80, 0),
		txn("t2", "2025-02-02", "c-food", 20, 5),
		txn("t3", "2025-02-03", "c-salary", 10, 3000),
		txn("t4", "2025-02-04", "c-custom", 40, 0),
	}
	got := CalculateActualSpending(2, 2025, txns, testCategories, nil, nil)

	if got.Expenses != 140 {
		t.Errorf("Expenses = %v, want 140", got.Expenses)
	}
	if got.Income != 3000 {
		t.Errorf("Income = %v, want 3000", got.Income)
	}
	if got.ByCategory["Groceries"].Actual != 100 {
		t.Errorf("Groceries actual = %v, want 100", got.ByCategory["Groceries"].Actual)
	}
	if got.Net != got.Income-got.Expenses {
		t.Errorf("Net = %v, want %v", got.Net, got.Income-got.Expenses)
	}
}

func TestCalculateActualSpendingUnresolvedCategoryKeepsRawID(t *testing.T) {
	txns := []model.Transaction{txn("t1", "2025-01-10", "c-deleted", 25, 0)}
	got := CalculateActualSpending(1, 2025, txns, testCategories, nil, nil)

	c := got.ByCategory["c-deleted"]
	if c == nil {
		t.Fatal("unresolved category should be bucketed under its id")
	}
	if c.Actual != 25 || got.Expenses != 25 {
		t.Errorf("actual = %v expenses = %v, want 25 and 25", c.Actual, got.Expenses)
	}
}

func TestCalculateActualSpendingFiltersMonthAndYear(t *testing.T) {
	txns := []model.Transaction{
		txn("t1", "2025-01-31", "c-rent", 10, 0),
		txn("t2", "2025-02-01", "c-rent", 20, 0),
		txn("t3", "2024-01-15", "c-rent", 40, 0),
		txn("t4", "2025-01-01T23:30:00Z", "c-rent", 80, 0),
		txn("t5", "not a date", "c-rent", 160, 0),
		txn("t6", "", "c-rent", 320, 0),
	}
	got := CalculateActualSpending(1, 2025, txns, testCategories, nil, nil)
	if got.Expenses != 90 {
		t.Errorf("Expenses = %v, want 90", got.Expenses)
	}
}

func TestCalculateActualSpendingDuplicateBudgetLastWins(t *testing.T) {
	first := rentBudget()
	second := rentBudget()
	second.Amounts = map[string]float64{"jan": 900}

	got := CalculateActualSpending(1, 2025, nil, testCategories, []model.BudgetItem{first, second}, nil)
	c := got.ByCategory["Rent"]
	if c.Budgeted != 900 || c.Difference != -900 {
		t.Errorf("Rent = %+v, want budgeted 900 difference -900", *c)
	}
}

func TestCalculateActualSpendingEmptyLedger(t *testing.T) {
	got := CalculateActualSpending(5, 2025, nil, nil, nil, nil)
	if got.Income != 0 || got.Expenses != 0 || got.Net != 0 || len(got.ByCategory) != 0 {
		t.Errorf("empty ledger = %+v, want zeros", got)
	}
}

func TestCalculateActualSpendingExpenseTotalsMatchCategories(t *testing.T) {
	txns := []model.Transaction{
		txn("t1", "2025-03-01", "c-rent", 1500, 0),
		txn("t2", "2025-03-02", "c-food", 62.5, 0),
		txn("t3", "2025-03-09", "c-food", 37.5, 0),
		txn("t4", "2025-03-12", "c-other", 12, 0),
		txn("t5", "2025-03-14", "c-transfer", 500, 0),
	}
	cls := DefaultClassifier()
	got := CalculateActualSpending(3, 2025, txns, testCategories, []model.BudgetItem{rentBudget()}, cls)

	var sum float64
	for name, c := range got.ByCategory {
		if cls.IsExpense(name) {
			sum += c.Actual
		}
	}
	if sum != got.Expenses {
		t.Errorf("sum of expense categories = %v, want %v", sum, got.Expenses)
	}
}

func TestRankCategories(t *testing.T) {
	cats := map[string]*model.CategoryComparison{
		"Rent":      {Actual: 1500},
		"Groceries": {Actual: 300},
		"Salary":    {Actual: 4800},
		"Transfer":  {Actual: 0},
	}
	rows := RankCategories(cats, nil)
	order := []string{"Salary", "Rent", "Groceries", "Transfer"}
	for i, name := range order {
		if rows[i].Name != name {
			t.Errorf("rows[%d] = %q, want %q", i, rows[i].Name, name)
		}
	}
}

func TestCalculateMonthlyBudgetIgnoresYearSingleItem(t *testing.T) {
	items := []model.BudgetItem{salaryBudget()}
	a := CalculateMonthlyBudget(1, 2025, items)
	b := CalculateMonthlyBudget(1, 1999, items)
	if a != b {
		t.Errorf("budget for 1999 = %+v, want %+v", b, a)
	}
}
