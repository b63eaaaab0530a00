package pipeline

import "testing"

func TestClassifierDefaults(t *testing.T) {
	c := DefaultClassifier()

	tests := []struct {
		name string
		want Kind
	}{
		{"Salary", KindIncome},
		{"Interest", KindIncome},
		{"Miscellaneous Income", KindIncome},
		{"Beginning Balance", KindNonBudget},
		{"Transfer", KindNonBudget},
		{"Groceries", KindExpense},
		{"salary", KindExpense},
		{"Salary ", KindExpense},
		{"", KindExpense},
	}
	for _, tt := range tests {
		if got := c.Kind(tt.name); got != tt.want {
			t.Errorf("Kind(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestClassifierExactlyOneKind(t *testing.T) {
	c := NewClassifier([]string{"Pay", "Both"}, []string{"Move", "Both"})

	for _, name := range []string{"Pay", "Move", "Both", "Rent"} {
		n := 0
		if c.IsIncome(name) {
			n++
		}
		if c.IsNonBudget(name) {
			n++
		}
		if c.IsExpense(name) {
			n++
		}
		if n != 1 {
			t.Errorf("%q matched %d kinds, want 1", name, n)
		}
	}
	if !c.IsIncome("Both") {
		t.Error("name in both lists should be income")
	}
}

func TestNilClassifierFallsBack(t *testing.T) {
	if !orDefault(nil).IsIncome("Salary") {
		t.Error("nil classifier should use the default lists")
	}
}
