package pipeline

// Kind is the reporting class of a category name.
type Kind int

// Category kinds. Every name maps to exactly one.
const (
	KindExpense Kind = iota
	KindIncome
	KindNonBudget
)

func (k Kind) String() string {
	switch k {
	case KindIncome:
		return "income"
	case KindNonBudget:
		return "non-budget"
	default:
		return "expense"
	}
}

// Default classification name lists.
var (
	DefaultIncomeNames    = []string{"Salary", "Interest", "Miscellaneous Income"}
	DefaultNonBudgetNames = []string{"Beginning Balance", "Transfer"}
)

// Classifier decides whether a category name is income, non-budget, or an
// expense. Matching is exact and case-sensitive.
type Classifier struct {
	income    map[string]struct{}
	nonBudget map[string]struct{}
}

// NewClassifier builds a classifier from the two name lists. A name present
// in both lists is treated as income.
func NewClassifier(incomeNames, nonBudgetNames []string) *Classifier {
	c := &Classifier{
		income:    make(map[string]struct{}, len(incomeNames)),
		nonBudget: make(map[string]struct{}, len(nonBudgetNames)),
	}
	for _, n := range incomeNames {
		c.income[n] = struct{}{}
	}
	for _, n := range nonBudgetNames {
		if _, ok := c.income[n]; ok {
			continue
		}
		c.nonBudget[n] = struct{}{}
	}
	return c
}

// DefaultClassifier uses DefaultIncomeNames and DefaultNonBudgetNames.
func DefaultClassifier() *Classifier {
	return NewClassifier(DefaultIncomeNames, DefaultNonBudgetNames)
}

// IsIncome reports whether name is an income category.
func (c *Classifier) IsIncome(name string) bool {
	_, ok := c.income[name]
	return ok
}

// IsNonBudget reports whether name is excluded from income and expense totals.
func (c *Classifier) IsNonBudget(name string) bool {
	_, ok := c.nonBudget[name]
	return ok
}

// IsExpense reports whether name counts toward expenses.
func (c *Classifier) IsExpense(name string) bool {
	return !c.IsIncome(name) && !c.IsNonBudget(name)
}

// Kind classifies name.
func (c *Classifier) Kind(name string) Kind {
	switch {
	case c.IsIncome(name):
		return KindIncome
	case c.IsNonBudget(name):
		return KindNonBudget
	default:
		return KindExpense
	}
}

func orDefault(c *Classifier) *Classifier {
	if c == nil {
		return DefaultClassifier()
	}
	return c
}
