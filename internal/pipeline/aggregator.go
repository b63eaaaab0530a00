// Package pipeline folds ledgers and budget templates into reports, and loads
// and writes back the derived balances.
package pipeline

import (
	"sort"

	"github.com/theirongolddev/cbudget/internal/model"
)

// CategoryIndex maps category ids to names.
type CategoryIndex map[string]string

// IndexCategories builds a lookup table from a category list.
func IndexCategories(cats []model.Category) CategoryIndex {
	idx := make(CategoryIndex, len(cats))
	for _, c := range cats {
		idx[c.ID] = c.Name
	}
	return idx
}

// Lookup returns the name for id and whether it resolved.
func (idx CategoryIndex) Lookup(id string) (string, bool) {
	name, ok := idx[id]
	return name, ok
}

// Name returns the category name for id, or id itself when the reference
// does not resolve so the amount stays visible in the breakdown.
func (idx CategoryIndex) Name(id string) string {
	if name, ok := idx[id]; ok {
		return name
	}
	return id
}

// CalculateMonthlyBudget sums the budget template for one month. The year
// is ignored: the template repeats every year.
func CalculateMonthlyBudget(month, _ int, items []model.BudgetItem) model.BudgetSummary {
	var s model.BudgetSummary
	key := model.MonthKey(month)
	if key == "" {
		return s
	}

	for _, b := range items {
		switch b.Type {
		case model.BudgetIncome:
			s.Income += b.Amounts[key]
		case model.BudgetExpense:
			s.Expenses += b.Amounts[key]
		}
	}
	s.Net = s.Income - s.Expenses
	return s
}

// CalculateActualSpending folds one month of the ledger into income, expense
// and per-category totals, seeded with that month's budget amounts.
func CalculateActualSpending(
	month, year int,
	txns []model.Transaction,
	cats []model.Category,
	items []model.BudgetItem,
	cls *Classifier,
) model.ActualSpending {
	cls = orDefault(cls)
	names := IndexCategories(cats)
	filtered := FilterByMonth(txns, month, year)

	out := model.ActualSpending{ByCategory: make(map[string]*model.CategoryActual)}

	for _, t := range filtered {
		switch cls.Kind(names.Name(t.Category)) {
		case KindIncome:
			out.Income += t.Deposit
		case KindExpense:
			out.Expenses += t.Payment
		}
	}

	// Seed from the budget. Later items with the same name replace earlier ones.
	key := model.MonthKey(month)
	for _, b := range items {
		c := &model.CategoryActual{Budgeted: b.Amounts[key]}
		c.Difference = c.Actual - c.Budgeted
		out.ByCategory[names.Name(b.Category)] = c
	}

	for _, t := range filtered {
		name := names.Name(t.Category)
		c, ok := out.ByCategory[name]
		if !ok {
			c = &model.CategoryActual{}
			out.ByCategory[name] = c
		}
		switch cls.Kind(name) {
		case KindIncome:
			c.Actual += t.Deposit
		case KindExpense:
			c.Actual += t.Payment
		}
		c.Difference = c.Actual - c.Budgeted
	}

	out.Net = out.Income - out.Expenses
	return out
}

// FilterByMonth returns transactions dated in the given calendar month and
// year. Transactions with unparsable dates are dropped.
func FilterByMonth(txns []model.Transaction, month, year int) []model.Transaction {
	var result []model.Transaction
	for _, t := range txns {
		d, ok := t.Time()
		if !ok {
			continue
		}
		if int(d.Month()) == month && d.Year() == year {
			result = append(result, t)
		}
	}
	return result
}

// FilterByAccount returns transactions posted to the given account.
func FilterByAccount(txns []model.Transaction, accountID string) []model.Transaction {
	if accountID == "" {
		return txns
	}
	var result []model.Transaction
	for _, t := range txns {
		if t.Account == accountID {
			result = append(result, t)
		}
	}
	return result
}

// CountBadDates returns how many transactions have unparsable dates.
func CountBadDates(txns []model.Transaction) int {
	n := 0
	for _, t := range txns {
		if _, ok := t.Time(); !ok {
			n++
		}
	}
	return n
}

// CategoryRow is one named row of a budget-vs-actual comparison.
type CategoryRow struct {
	Name string
	Kind Kind
	model.CategoryComparison
}

// RankCategories flattens a report's categories into rows ordered by kind
// (income first, then expenses, then non-budget) and by actual descending.
func RankCategories(cats map[string]*model.CategoryComparison, cls *Classifier) []CategoryRow {
	cls = orDefault(cls)
	rows := make([]CategoryRow, 0, len(cats))
	for name, c := range cats {
		rows = append(rows, CategoryRow{Name: name, Kind: cls.Kind(name), CategoryComparison: *c})
	}
	rank := map[Kind]int{KindIncome: 0, KindExpense: 1, KindNonBudget: 2}
	sort.Slice(rows, func(i, j int) bool {
		if rank[rows[i].Kind] != rank[rows[j].Kind] {
			return rank[rows[i].Kind] < rank[rows[j].Kind]
		}
		if rows[i].Actual != rows[j].Actual {
			return rows[i].Actual > rows[j].Actual
		}
		return rows[i].Name < rows[j].Name
	})
	return rows
}
