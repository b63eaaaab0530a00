package model

// BudgetType is either income or expense.
type BudgetType string

// Budget item types.
const (
	BudgetIncome  BudgetType = "income"
	BudgetExpense BudgetType = "expense"
)

// BudgetItem is a monthly template for one category. Amounts is keyed by
// MonthKeys; a missing key counts as zero.
type BudgetItem struct {
	ID       string             `json:"id"`
	Category string             `json:"category"`
	Type     BudgetType         `json:"type"`
	Amounts  map[string]float64 `json:"amounts"`
}

// MonthKeys are the fixed budget amount keys, indexed by month-1.
var MonthKeys = [12]string{
	"jan", "feb", "mar", "apr", "may", "jun",
	"jul", "aug", "sep", "oct", "nov", "dec",
}

// MonthNames are the display names, indexed by month-1.
var MonthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthKey returns the amount key for month (1-12), or "" when out of range.
func MonthKey(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return MonthKeys[month-1]
}

// MonthName returns the display name for month (1-12), or "" when out of range.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return MonthNames[month-1]
}

// MonthFromKey returns the month number for a key like "mar", or 0.
func MonthFromKey(key string) int {
	for i, k := range MonthKeys {
		if k == key {
			return i + 1
		}
	}
	return 0
}
