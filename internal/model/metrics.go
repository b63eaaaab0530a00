package model

// BudgetSummary holds planned or actual totals for a period.
type BudgetSummary struct {
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Net      float64 `json:"net"`
}

// CategoryActual is one category row of a single month's actual spending.
type CategoryActual struct {
	Budgeted   float64 `json:"budgeted"`
	Actual     float64 `json:"actual"`
	Difference float64 `json:"difference"`
}

// ActualSpending is the actual spending aggregate for one month.
type ActualSpending struct {
	Income     float64                    `json:"income"`
	Expenses   float64                    `json:"expenses"`
	Net        float64                    `json:"net"`
	ByCategory map[string]*CategoryActual `json:"byCategory"`
}

// Summary returns the income/expenses/net part of the aggregate.
func (a ActualSpending) Summary() BudgetSummary {
	return BudgetSummary{Income: a.Income, Expenses: a.Expenses, Net: a.Net}
}

// CategoryComparison is one category row of a budget-vs-actual report.
type CategoryComparison struct {
	Budget     float64 `json:"budget"`
	Actual     float64 `json:"actual"`
	Difference float64 `json:"difference"`
}

// ReportData is the budget-vs-actual report for a month or year-to-date.
type ReportData struct {
	BudgetSummary BudgetSummary                  `json:"budgetSummary"`
	ActualSummary BudgetSummary                  `json:"actualSummary"`
	Difference    BudgetSummary                  `json:"difference"`
	Categories    map[string]*CategoryComparison `json:"categories"`
}

// MonthlyData is one month row of the yearly report.
type MonthlyData struct {
	Month     int     `json:"month"`
	MonthName string  `json:"monthName"`
	Income    float64 `json:"income"`
	Expenses  float64 `json:"expenses"`
	Net       float64 `json:"net"`
}

// CategoryTrend is a category's yearly total and its average over 12 months.
type CategoryTrend struct {
	Total   float64 `json:"total"`
	Average float64 `json:"average"`
}

// YearlyReportData is the 12-month trend report for a year.
type YearlyReportData struct {
	Year              int                       `json:"year"`
	MonthlyData       []MonthlyData             `json:"monthlyData"`
	Totals            BudgetSummary             `json:"totals"`
	Averages          BudgetSummary             `json:"averages"`
	CategoryBreakdown map[string]*CategoryTrend `json:"categoryBreakdown"`
}

// BalanceTotals is the final running total of one account or fund.
type BalanceTotals struct {
	Balance float64 `json:"balance"`
	Cleared float64 `json:"cleared"`
}
