// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/theirongolddev/cbudget/internal/model"
)

// FormatMoney formats an amount with thousands separators and two decimals.
// e.g., 1234.5 -> "$1,234.50", -20 -> "-$20.00"
func FormatMoney(v float64) string {
	cents := int64(math.Round(math.Abs(v) * 100))
	s := "$" + FormatNumber(cents/100) + fmt.Sprintf(".%02d", cents%100)
	if v < 0 && cents != 0 {
		return "-" + s
	}
	return s
}

// FormatSignedMoney formats a variance with an explicit sign.
func FormatSignedMoney(v float64) string {
	if math.Round(v*100) == 0 {
		return FormatMoney(0)
	}
	if v > 0 {
		return "+" + FormatMoney(v)
	}
	return FormatMoney(v)
}

// FormatCompactMoney formats an amount for narrow spaces like chart axes.
// e.g., 1234 -> "$1.2K", 2500000 -> "$2.5M", 42 -> "$42"
func FormatCompactMoney(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("%s$%.1fM", sign, v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("%s$%.1fK", sign, v/1_000)
	default:
		return fmt.Sprintf("%s$%.0f", sign, v)
	}
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// BudgetUsed returns actual/budget. A zero budget yields 0 when nothing was
// spent and 1 otherwise.
func BudgetUsed(actual, budget float64) float64 {
	if budget == 0 {
		if actual == 0 {
			return 0
		}
		return 1
	}
	return actual / budget
}

// FormatBudgetUsed renders BudgetUsed, marking spending against a zero
// budget as "100%+".
func FormatBudgetUsed(actual, budget float64) string {
	if budget == 0 {
		if actual == 0 {
			return "-"
		}
		return "100%+"
	}
	return FormatPercent(actual / budget)
}

// FormatPeriod renders a report period label.
// e.g., (3, 2025, false) -> "March 2025", (3, 2025, true) -> "Jan-Mar 2025"
func FormatPeriod(month, year int, ytd bool) string {
	if ytd && month > 1 {
		return fmt.Sprintf("%s-%s %d", shortMonth(1), shortMonth(month), year)
	}
	return fmt.Sprintf("%s %d", model.MonthName(month), year)
}

func shortMonth(month int) string {
	name := model.MonthName(month)
	if len(name) < 3 {
		return name
	}
	return name[:3]
}
