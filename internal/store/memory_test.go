package store

import (
	"context"
	"errors"
	"testing"

	"github.com/theirongolddev/cbudget/internal/model"
	"github.com/theirongolddev/cbudget/internal/pipeline"
)

func TestMemoryReadersReturnCopies(t *testing.T) {
	m := NewMemory(testDataset())
	ctx := context.Background()

	items, _ := m.BudgetItems(ctx)
	items[0].Amounts["jan"] = 1

	again, _ := m.BudgetItems(ctx)
	if again[0].Amounts["jan"] != 5000 {
		t.Errorf("jan = %v, want 5000", again[0].Amounts["jan"])
	}
}

func TestMemorySyncBalances(t *testing.T) {
	m := NewMemory(testDataset())
	ctx := context.Background()

	if _, err := pipeline.SyncBalances(ctx, m); err != nil {
		t.Fatal(err)
	}
	snap := m.Snapshot()
	if snap.Accounts[0].Balance != 3300 {
		t.Errorf("balance = %v, want 3300", snap.Accounts[0].Balance)
	}

	again, err := pipeline.SyncBalances(ctx, m)
	if err != nil {
		t.Fatal(err)
	}
	if again.Writes() != 0 {
		t.Errorf("second sync wrote %d, want 0", again.Writes())
	}
}

func TestMemorySaveKeepsProjectedBalance(t *testing.T) {
	m := NewMemory(testDataset())
	ctx := context.Background()
	if err := m.UpdateTransactionBalance(ctx, "t1", 10, 10); err != nil {
		t.Fatal(err)
	}

	edit := model.Transaction{ID: "t1", Account: "chk", Date: "2025-01-16", Deposit: 4800}
	if err := m.SaveTransaction(ctx, &edit); err != nil {
		t.Fatal(err)
	}
	txns, _ := m.Transactions(ctx)
	if txns[0].Date != "2025-01-16" || txns[0].Balance == nil || *txns[0].Balance != 10 {
		t.Errorf("t1 = %+v", txns[0])
	}
}

func TestMemoryDelete(t *testing.T) {
	m := NewMemory(testDataset())
	ctx := context.Background()

	if err := m.DeleteTransaction(ctx, "t1"); err != nil {
		t.Fatal(err)
	}
	if err := m.DeleteTransaction(ctx, "t1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
	txns, _ := m.Transactions(ctx)
	if len(txns) != 1 || txns[0].ID != "t2" {
		t.Errorf("remaining = %+v", txns)
	}
}

func TestMemoryImportAssignsIDs(t *testing.T) {
	m := NewMemory(model.Dataset{})
	err := m.ImportDataset(context.Background(), model.Dataset{
		Categories: []model.Category{{Name: "Gifts"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	cats, _ := m.Categories(context.Background())
	if len(cats) != 1 || cats[0].ID == "" {
		t.Errorf("cats = %+v", cats)
	}
}

func TestNewMemoryAssignsMissingIDs(t *testing.T) {
	m := NewMemory(model.Dataset{
		Transactions: []model.Transaction{
			{Account: "a1", Date: "2025-01-01", Deposit: 100},
			{Account: "a1", Date: "2025-01-02", Payment: 30},
		},
		SubAccounts: []model.SubAccount{{Name: "Vacation"}},
	})
	ctx := context.Background()

	txns, _ := m.Transactions(ctx)
	if txns[0].ID == "" || txns[1].ID == "" || txns[0].ID == txns[1].ID {
		t.Fatalf("transaction ids = %q, %q, want two distinct ids", txns[0].ID, txns[1].ID)
	}
	if err := m.UpdateTransactionBalance(ctx, txns[1].ID, 70, 70); err != nil {
		t.Fatal(err)
	}
	txns, _ = m.Transactions(ctx)
	if txns[0].Balance != nil {
		t.Errorf("first transaction balance = %v, want nil", *txns[0].Balance)
	}

	funds, _ := m.SubAccounts(ctx)
	if funds[0].ID == "" {
		t.Error("fund id is empty")
	}
}
