package pipeline

import (
	"testing"

	"github.com/theirongolddev/cbudget/internal/model"
)

func quarterLedger() []model.Transaction {
	return []model.Transaction{
		txn("t1", "2025-01-15", "c-salary", 0, 4800),
		txn("t2", "2025-01-20", "c-rent", 1500, 0),
		txn("t3", "2025-02-15", "c-salary", 0, 5000),
		txn("t4", "2025-02-18", "c-food", 240, 0),
		txn("t5", "2025-03-01", "c-rent", 1500, 0),
		txn("t6", "2025-03-15", "c-salary", 0, 5200),
		txn("t7", "2025-03-20", "c-transfer", 300, 0),
		txn("t8", "2025-04-02", "c-food", 99, 0),
	}
}

func TestGenerateReportDataSingleMonth(t *testing.T) {
	items := []model.BudgetItem{salaryBudget(), rentBudget()}
	r := GenerateReportData(1, 2025, false, items, testCategories, quarterLedger(), nil)

	if r.BudgetSummary != (model.BudgetSummary{Income: 5000, Expenses: 1500, Net: 3500}) {
		t.Errorf("BudgetSummary = %+v", r.BudgetSummary)
	}
	if r.ActualSummary != (model.BudgetSummary{Income: 4800, Expenses: 1500, Net: 3300}) {
		t.Errorf("ActualSummary = %+v", r.ActualSummary)
	}
	if r.Difference != (model.BudgetSummary{Income: -200, Expenses: 0, Net: -200}) {
		t.Errorf("Difference = %+v", r.Difference)
	}
	sal := r.Categories["Salary"]
	if sal == nil || sal.Budget != 5000 || sal.Actual != 4800 || sal.Difference != -200 {
		t.Errorf("Salary = %+v", sal)
	}
}

func TestGenerateReportDataYearToDateIsAdditive(t *testing.T) {
	items := []model.BudgetItem{salaryBudget(), rentBudget()}
	txns := quarterLedger()

	ytd := GenerateReportData(3, 2025, true, items, testCategories, txns, nil)

	var budgetIncome, budgetExpenses, actualIncome, actualExpenses float64
	merged := make(map[string]model.CategoryComparison)
	for m := 1; m <= 3; m++ {
		single := GenerateReportData(m, 2025, false, items, testCategories, txns, nil)
		budgetIncome += CalculateMonthlyBudget(m, 2025, items).Income
		budgetExpenses += single.BudgetSummary.Expenses
		actualIncome += single.ActualSummary.Income
		actualExpenses += single.ActualSummary.Expenses
		for name, c := range single.Categories {
			mc := merged[name]
			mc.Budget += c.Budget
			mc.Actual += c.Actual
			merged[name] = mc
		}
	}

	if ytd.BudgetSummary.Income != budgetIncome {
		t.Errorf("YTD budget income = %v, want %v", ytd.BudgetSummary.Income, budgetIncome)
	}
	if ytd.BudgetSummary.Expenses != budgetExpenses {
		t.Errorf("YTD budget expenses = %v, want %v", ytd.BudgetSummary.Expenses, budgetExpenses)
	}
	if ytd.ActualSummary.Income != actualIncome || ytd.ActualSummary.Expenses != actualExpenses {
		t.Errorf("YTD actual = %+v, want income %v expenses %v", ytd.ActualSummary, actualIncome, actualExpenses)
	}
	if len(ytd.Categories) != len(merged) {
		t.Fatalf("YTD has %d categories, want %d", len(ytd.Categories), len(merged))
	}
	for name, want := range merged {
		got := ytd.Categories[name]
		if got == nil {
			t.Errorf("missing category %q", name)
			continue
		}
		if got.Budget != want.Budget || got.Actual != want.Actual {
			t.Errorf("%s = %+v, want budget %v actual %v", name, *got, want.Budget, want.Actual)
		}
		if got.Difference != got.Actual-got.Budget {
			t.Errorf("%s difference = %v, want %v", name, got.Difference, got.Actual-got.Budget)
		}
	}
}

func TestGenerateReportDataNetIdentity(t *testing.T) {
	items := []model.BudgetItem{salaryBudget(), rentBudget()}
	for _, ytd := range []bool{false, true} {
		for m := 1; m <= 12; m++ {
			r := GenerateReportData(m, 2025, ytd, items, testCategories, quarterLedger(), nil)
			for _, s := range []model.BudgetSummary{r.BudgetSummary, r.ActualSummary} {
				if s.Net != s.Income-s.Expenses {
					t.Errorf("month %d ytd=%v: net %v != %v - %v", m, ytd, s.Net, s.Income, s.Expenses)
				}
			}
			if r.Difference.Net != r.ActualSummary.Net-r.BudgetSummary.Net {
				t.Errorf("month %d ytd=%v: difference net = %v", m, ytd, r.Difference.Net)
			}
		}
	}
}

func TestGenerateReportDataNoBudgetNoTransactions(t *testing.T) {
	r := GenerateReportData(6, 2025, true, nil, nil, nil, nil)
	if r.BudgetSummary != (model.BudgetSummary{}) || r.ActualSummary != (model.BudgetSummary{}) {
		t.Errorf("empty report = %+v", r)
	}
	if r.Categories == nil || len(r.Categories) != 0 {
		t.Errorf("Categories = %v, want empty map", r.Categories)
	}
}

func TestGenerateYearlyReport(t *testing.T) {
	y := GenerateYearlyReport(2025, quarterLedger(), testCategories, []model.BudgetItem{rentBudget()}, nil)

	if len(y.MonthlyData) != 12 {
		t.Fatalf("MonthlyData has %d rows, want 12", len(y.MonthlyData))
	}
	if y.MonthlyData[0].MonthName != "January" || y.MonthlyData[11].Month != 12 {
		t.Errorf("month labels = %+v / %+v", y.MonthlyData[0], y.MonthlyData[11])
	}
	if y.MonthlyData[3].Expenses != 99 {
		t.Errorf("April expenses = %v, want 99", y.MonthlyData[3].Expenses)
	}

	wantTotals := model.BudgetSummary{Income: 15000, Expenses: 3339, Net: 11661}
	if y.Totals != wantTotals {
		t.Errorf("Totals = %+v, want %+v", y.Totals, wantTotals)
	}
	if y.Averages.Income != y.Totals.Income/12 {
		t.Errorf("Averages.Income = %v, want %v", y.Averages.Income, y.Totals.Income/12)
	}
	if y.Averages.Expenses != y.Totals.Expenses/12 {
		t.Errorf("Averages.Expenses = %v, want %v", y.Averages.Expenses, y.Totals.Expenses/12)
	}

	rent := y.CategoryBreakdown["Rent"]
	if rent == nil || rent.Total != 3000 || rent.Average != 250 {
		t.Errorf("Rent breakdown = %+v, want total 3000 average 250", rent)
	}
	food := y.CategoryBreakdown["Groceries"]
	if food == nil || food.Total != 339 {
		t.Errorf("Groceries breakdown = %+v, want total 339", food)
	}
}

func TestYearToDateAverages(t *testing.T) {
	y := GenerateYearlyReport(2025, quarterLedger(), testCategories, nil, nil)

	got := YearToDateAverages(y, 3)
	if got.Income != 5000 {
		t.Errorf("Q1 average income = %v, want 5000", got.Income)
	}
	if got := YearToDateAverages(y, 0); got != (model.BudgetSummary{}) {
		t.Errorf("zero months = %+v, want zero", got)
	}
	if all := YearToDateAverages(y, 99); all != y.Averages {
		t.Errorf("clamped average = %+v, want %+v", all, y.Averages)
	}
}
