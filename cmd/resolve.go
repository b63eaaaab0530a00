package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/cbudget/internal/model"
)

// lookup finds the id of the record whose id or name matches ref.
// Names match case-insensitively; ids must match exactly.
func lookup[T any](kind, ref string, list []T, id, name func(T) string) (string, error) {
	var matches []string
	for _, v := range list {
		if id(v) == ref {
			return ref, nil
		}
		if strings.EqualFold(name(v), ref) {
			matches = append(matches, id(v))
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no %s named %q", kind, ref)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%q matches %d %ss; use the id", ref, len(matches), kind)
	}
}

func resolveCategory(cats []model.Category, ref string) (string, error) {
	return lookup("category", ref, cats,
		func(c model.Category) string { return c.ID },
		func(c model.Category) string { return c.Name })
}

func resolveAccount(accts []model.Account, ref string) (string, error) {
	return lookup("account", ref, accts,
		func(a model.Account) string { return a.ID },
		func(a model.Account) string { return a.Name })
}

func resolveFund(funds []model.SubAccount, ref string) (string, error) {
	return lookup("fund", ref, funds,
		func(f model.SubAccount) string { return f.ID },
		func(f model.SubAccount) string { return f.Name })
}

// parseMoney reads an amount like "1,234.50" or "$20".
func parseMoney(s string) (float64, error) {
	clean := strings.NewReplacer("$", "", ",", "", "_", "").Replace(strings.TrimSpace(s))
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return v, nil
}

// parseAmounts reads month=amount pairs. Months are keys ("mar"), numbers
// ("3") or "all" for every month.
func parseAmounts(args []string) (map[string]float64, error) {
	out := make(map[string]float64)
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("expected month=amount, got %q", arg)
		}
		amount, err := parseMoney(v)
		if err != nil {
			return nil, err
		}

		k = strings.ToLower(strings.TrimSpace(k))
		if k == "all" {
			for _, mk := range model.MonthKeys {
				out[mk] = amount
			}
			continue
		}

		month := model.MonthFromKey(k)
		if month == 0 {
			if n, err := strconv.Atoi(k); err == nil {
				month = n
			} else if len(k) > 3 {
				month = model.MonthFromKey(k[:3])
			}
		}
		key := model.MonthKey(month)
		if key == "" {
			return nil, fmt.Errorf("unknown month %q", k)
		}
		out[key] = amount
	}
	return out, nil
}

// parseDateArg validates a date flag and returns it in storage form.
// Empty means today.
func parseDateArg(s string) (string, error) {
	if s == "" {
		return model.FormatDate(nowFunc()), nil
	}
	t, ok := model.ParseDate(s)
	if !ok {
		return "", fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return model.FormatDate(t), nil
}
