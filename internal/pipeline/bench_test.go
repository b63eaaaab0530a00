package pipeline

import (
	"fmt"
	"testing"

	"github.com/theirongolddev/cbudget/internal/model"
)

func syntheticLedger(n int) []model.Transaction {
	cats := []string{"c-salary", "c-rent", "c-food", "c-transfer", "c-interest"}
	txns := make([]model.Transaction, n)
	for i := range txns {
		txns[i] = model.Transaction{
			ID:       fmt.Sprintf("t%d", i),
			Account:  fmt.Sprintf("acct-%d", i%3),
			Date:     fmt.Sprintf("2025-%02d-%02d", i%12+1, i%28+1),
			Category: cats[i%len(cats)],
			Payment:  float64(i % 97),
			Deposit:  float64(i % 13),
			Cleared:  i%2 == 0,
		}
	}
	return txns
}

func BenchmarkGenerateReportDataYTD(b *testing.B) {
	txns := syntheticLedger(20000)
	items := []model.BudgetItem{salaryBudget(), rentBudget()}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = GenerateReportData(12, 2025, true, items, testCategories, txns, nil)
	}
}

func BenchmarkGenerateYearlyReport(b *testing.B) {
	txns := syntheticLedger(20000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = GenerateYearlyReport(2025, txns, testCategories, nil, nil)
	}
}

func BenchmarkProjectBalances(b *testing.B) {
	txns := syntheticLedger(20000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ProjectBalances(txns, nil); err != nil {
			b.Fatal(err)
		}
	}
}
