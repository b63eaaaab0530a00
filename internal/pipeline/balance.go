package pipeline

import (
	"fmt"
	"sort"
	"time"

	"github.com/theirongolddev/cbudget/internal/model"
)

// BalanceUpdateFunc persists the projected running balances of a transaction.
type BalanceUpdateFunc func(id string, balance, clearedBalance float64) error

// ProjectBalances walks the ledger in date order and computes each
// transaction's running account balance and cleared balance. update is called
// only for transactions whose stored values differ, so a second run over the
// updated ledger issues no calls. It returns the number of updates.
func ProjectBalances(txns []model.Transaction, update BalanceUpdateFunc) (int, error) {
	running := make(map[string]*model.BalanceTotals)
	updates := 0

	for _, t := range SortByDate(txns) {
		acc, ok := running[t.Account]
		if !ok {
			acc = &model.BalanceTotals{}
			running[t.Account] = acc
		}
		acc.Balance += t.Deposit - t.Payment
		if t.Cleared {
			acc.Cleared += t.Deposit - t.Payment
		}

		if !changed(t.Balance, acc.Balance) && !changed(t.ClearedBalance, acc.Cleared) {
			continue
		}
		if update != nil {
			if err := update(t.ID, acc.Balance, acc.Cleared); err != nil {
				return updates, fmt.Errorf("updating balance of %s: %w", t.ID, err)
			}
		}
		updates++
	}

	return updates, nil
}

// ApplyBalances returns a copy of txns with projected balances filled in.
func ApplyBalances(txns []model.Transaction) []model.Transaction {
	out := make([]model.Transaction, len(txns))
	copy(out, txns)
	pos := make(map[string]int, len(out))
	for i, t := range out {
		pos[t.ID] = i
	}
	_, _ = ProjectBalances(out, func(id string, balance, cleared float64) error {
		if i, ok := pos[id]; ok {
			out[i].Balance = &balance
			out[i].ClearedBalance = &cleared
		}
		return nil
	})
	return out
}

// AccountTotals returns the final running balances per account id.
func AccountTotals(txns []model.Transaction) map[string]model.BalanceTotals {
	totals := make(map[string]model.BalanceTotals)
	for _, t := range SortByDate(txns) {
		bt := totals[t.Account]
		bt.Balance += t.Deposit - t.Payment
		if t.Cleared {
			bt.Cleared += t.Deposit - t.Payment
		}
		totals[t.Account] = bt
	}
	return totals
}

// SubAccountBalances returns the balance of each fund from its transactions.
func SubAccountBalances(txns []model.SubAccountTransaction) map[string]float64 {
	sorted := make([]model.SubAccountTransaction, len(txns))
	copy(sorted, txns)
	sort.SliceStable(sorted, func(i, j int) bool {
		return dateBefore(sorted[i].Date, sorted[j].Date)
	})

	balances := make(map[string]float64)
	for _, t := range sorted {
		balances[t.SubAccount] += t.Deposit - t.Payment
	}
	return balances
}

// SortByDate returns a date-ordered copy. Equal dates keep their input order
// and unparsable dates go last.
func SortByDate(txns []model.Transaction) []model.Transaction {
	type dated struct {
		txn model.Transaction
		at  time.Time
		ok  bool
	}
	keyed := make([]dated, len(txns))
	for i, t := range txns {
		at, ok := t.Time()
		keyed[i] = dated{txn: t, at: at, ok: ok}
	}
	sort.SliceStable(keyed, func(i, j int) bool {
		a, b := keyed[i], keyed[j]
		switch {
		case a.ok && b.ok:
			return a.at.Before(b.at)
		case a.ok:
			return true
		default:
			return false
		}
	})

	sorted := make([]model.Transaction, len(keyed))
	for i, k := range keyed {
		sorted[i] = k.txn
	}
	return sorted
}

func dateBefore(a, b string) bool {
	ta, okA := model.ParseDate(a)
	tb, okB := model.ParseDate(b)
	switch {
	case okA && okB:
		return ta.Before(tb)
	case okA:
		return true
	default:
		return false
	}
}

func changed(stored *float64, computed float64) bool {
	return stored == nil || *stored != computed
}
