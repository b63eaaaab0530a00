package pipeline

import (
	"errors"
	"testing"

	"github.com/theirongolddev/cbudget/internal/model"
)

type balanceUpdate struct {
	balance, cleared float64
}

func recordUpdates(t *testing.T, txns []model.Transaction) (map[string]balanceUpdate, int) {
	t.Helper()
	got := make(map[string]balanceUpdate)
	n, err := ProjectBalances(txns, func(id string, balance, cleared float64) error {
		got[id] = balanceUpdate{balance, cleared}
		return nil
	})
	if err != nil {
		t.Fatalf("ProjectBalances: %v", err)
	}
	return got, n
}

func TestProjectBalancesStableOnEqualDates(t *testing.T) {
	txns := []model.Transaction{
		txn("T1", "2025-01-10", "c-salary", 0, 100),
		txn("T2", "2025-01-10", "c-food", 30, 0),
	}
	got, _ := recordUpdates(t, txns)

	if got["T1"].balance != 100 {
		t.Errorf("T1 balance = %v, want 100", got["T1"].balance)
	}
	if got["T2"].balance != 70 {
		t.Errorf("T2 balance = %v, want 70", got["T2"].balance)
	}
}

func TestProjectBalancesSortsAndSeparatesAccounts(t *testing.T) {
	a := txn("a2", "2025-02-01", "c-food", 40, 0)
	b := txn("a1", "2025-01-01", "c-salary", 0, 1000)
	c := txn("b1", "2025-01-15", "c-salary", 0, 50)
	c.Account = "acct-2"
	b.Cleared = true

	txns := []model.Transaction{a, b, c}
	got, n := recordUpdates(t, txns)

	if n != 3 {
		t.Errorf("updates = %d, want 3", n)
	}
	if got["a2"] != (balanceUpdate{960, 1000}) {
		t.Errorf("a2 = %+v, want {960 1000}", got["a2"])
	}
	if got["b1"] != (balanceUpdate{50, 0}) {
		t.Errorf("b1 = %+v, want {50 0}", got["b1"])
	}
	if txns[0].ID != "a2" {
		t.Error("input ledger order was mutated")
	}
}

func TestProjectBalancesIdempotent(t *testing.T) {
	txns := quarterLedger()
	txns[0].Cleared = true
	txns[2].Cleared = true

	applied := ApplyBalances(txns)
	_, n := recordUpdates(t, applied)
	if n != 0 {
		t.Errorf("second run issued %d updates, want 0", n)
	}

	// Changing one amount only rewrites that row and later rows.
	applied[4].Payment = 1400
	got, n := recordUpdates(t, applied)
	if n != 4 {
		t.Errorf("after edit: %d updates, want 4", n)
	}
	if _, ok := got["t4"]; ok {
		t.Error("earlier row t4 should not be rewritten")
	}
}

func TestProjectBalancesBadDatesLast(t *testing.T) {
	txns := []model.Transaction{
		txn("bad", "garbage", "c-food", 5, 0),
		txn("good", "2025-01-01", "c-salary", 0, 100),
	}
	got, _ := recordUpdates(t, txns)
	if got["bad"].balance != 95 {
		t.Errorf("bad-date balance = %v, want 95", got["bad"].balance)
	}
}

func TestProjectBalancesStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	n, err := ProjectBalances(quarterLedger(), func(string, float64, float64) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped boom", err)
	}
	if n != 0 {
		t.Errorf("updates = %d, want 0", n)
	}
}

func TestAccountTotals(t *testing.T) {
	txns := quarterLedger()
	txns[0].Cleared = true
	totals := AccountTotals(txns)

	bt := totals["acct-1"]
	if bt.Balance != 11361 {
		t.Errorf("Balance = %v, want 11361", bt.Balance)
	}
	if bt.Cleared != 4800 {
		t.Errorf("Cleared = %v, want 4800", bt.Cleared)
	}

	applied := ApplyBalances(txns)
	last := applied[len(applied)-1]
	if *last.Balance != bt.Balance {
		t.Errorf("last running balance = %v, want %v", *last.Balance, bt.Balance)
	}
}

func TestSubAccountBalances(t *testing.T) {
	got := SubAccountBalances([]model.SubAccountTransaction{
		{ID: "s1", SubAccount: "vacation", Date: "2025-01-01", Deposit: 200},
		{ID: "s2", SubAccount: "vacation", Date: "2025-02-01", Payment: 50},
		{ID: "s3", SubAccount: "car", Date: "2025-01-05", Deposit: 75},
	})
	if got["vacation"] != 150 || got["car"] != 75 {
		t.Errorf("balances = %v", got)
	}
}
