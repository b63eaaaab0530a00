package pipeline

import "github.com/theirongolddev/cbudget/internal/model"

// GenerateReportData builds the budget-vs-actual report for one month, or for
// January through month when yearToDate is set.
func GenerateReportData(
	month, year int,
	yearToDate bool,
	items []model.BudgetItem,
	cats []model.Category,
	txns []model.Transaction,
	cls *Classifier,
) model.ReportData {
	cls = orDefault(cls)
	r := model.ReportData{Categories: make(map[string]*model.CategoryComparison)}

	if yearToDate {
		for m := 1; m <= month && m <= 12; m++ {
			budget := CalculateMonthlyBudget(m, year, items)
			actual := CalculateActualSpending(m, year, txns, cats, items, cls)

			r.BudgetSummary.Income += budget.Income
			r.BudgetSummary.Expenses += budget.Expenses
			r.ActualSummary.Income += actual.Income
			r.ActualSummary.Expenses += actual.Expenses

			for name, c := range actual.ByCategory {
				cc, ok := r.Categories[name]
				if !ok {
					cc = &model.CategoryComparison{}
					r.Categories[name] = cc
				}
				cc.Budget += c.Budgeted
				cc.Actual += c.Actual
			}
		}
	} else {
		r.BudgetSummary = CalculateMonthlyBudget(month, year, items)
		actual := CalculateActualSpending(month, year, txns, cats, items, cls)
		r.ActualSummary = actual.Summary()
		for name, c := range actual.ByCategory {
			r.Categories[name] = &model.CategoryComparison{Budget: c.Budgeted, Actual: c.Actual}
		}
	}

	r.BudgetSummary.Net = r.BudgetSummary.Income - r.BudgetSummary.Expenses
	r.ActualSummary.Net = r.ActualSummary.Income - r.ActualSummary.Expenses
	r.Difference = model.BudgetSummary{
		Income:   r.ActualSummary.Income - r.BudgetSummary.Income,
		Expenses: r.ActualSummary.Expenses - r.BudgetSummary.Expenses,
		Net:      r.ActualSummary.Net - r.BudgetSummary.Net,
	}
	for _, c := range r.Categories {
		c.Difference = c.Actual - c.Budget
	}

	return r
}

// GenerateYearlyReport builds the 12-month trend for year. Averages divide by
// 12 regardless of how many months have data.
func GenerateYearlyReport(
	year int,
	txns []model.Transaction,
	cats []model.Category,
	items []model.BudgetItem,
	cls *Classifier,
) model.YearlyReportData {
	cls = orDefault(cls)
	y := model.YearlyReportData{
		Year:              year,
		MonthlyData:       make([]model.MonthlyData, 0, 12),
		CategoryBreakdown: make(map[string]*model.CategoryTrend),
	}

	for m := 1; m <= 12; m++ {
		actual := CalculateActualSpending(m, year, txns, cats, items, cls)
		y.MonthlyData = append(y.MonthlyData, model.MonthlyData{
			Month:     m,
			MonthName: model.MonthName(m),
			Income:    actual.Income,
			Expenses:  actual.Expenses,
			Net:       actual.Net,
		})

		y.Totals.Income += actual.Income
		y.Totals.Expenses += actual.Expenses
		y.Totals.Net += actual.Net

		for name, c := range actual.ByCategory {
			ct, ok := y.CategoryBreakdown[name]
			if !ok {
				ct = &model.CategoryTrend{}
				y.CategoryBreakdown[name] = ct
			}
			ct.Total += c.Actual
		}
	}

	y.Averages = model.BudgetSummary{
		Income:   y.Totals.Income / 12,
		Expenses: y.Totals.Expenses / 12,
		Net:      y.Totals.Net / 12,
	}
	for _, ct := range y.CategoryBreakdown {
		ct.Average = ct.Total / 12
	}

	return y
}

// YearToDateAverages averages the first throughMonth months of a yearly
// report. throughMonth is clamped to 1-12.
func YearToDateAverages(y model.YearlyReportData, throughMonth int) model.BudgetSummary {
	var s model.BudgetSummary
	if throughMonth < 1 {
		return s
	}
	if throughMonth > 12 {
		throughMonth = 12
	}

	n := 0
	for _, md := range y.MonthlyData {
		if md.Month > throughMonth {
			continue
		}
		s.Income += md.Income
		s.Expenses += md.Expenses
		s.Net += md.Net
		n++
	}
	if n == 0 {
		return model.BudgetSummary{}
	}
	s.Income /= float64(n)
	s.Expenses /= float64(n)
	s.Net /= float64(n)
	return s
}
