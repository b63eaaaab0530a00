package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/cbudget/internal/model"
	"github.com/theirongolddev/cbudget/internal/pipeline"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "nested", "ledger.db"), nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func testDataset() model.Dataset {
	return model.Dataset{
		Categories: []model.Category{
			{ID: "salary", Name: "Salary", Type: model.CategoryFixed},
			{ID: "rent", Name: "Rent", Type: model.CategoryFixed},
		},
		Accounts: []model.Account{{ID: "chk", Name: "Checking", Type: model.AccountChecking}},
		Transactions: []model.Transaction{
			{ID: "t1", Account: "chk", Date: "2025-01-15", Category: "salary", Deposit: 4800, Cleared: true},
			{ID: "t2", Account: "chk", Date: "2025-01-15", Category: "rent", Payment: 1500},
		},
		BudgetItems: []model.BudgetItem{
			{ID: "b1", Category: "salary", Type: model.BudgetIncome, Amounts: map[string]float64{"jan": 5000, "feb": 5000}},
		},
		SubAccounts: []model.SubAccount{{ID: "f1", Name: "Vacation", Account: "chk", Target: 2000}},
		SubAccountTransactions: []model.SubAccountTransaction{
			{ID: "s1", SubAccount: "f1", Date: "2025-01-20", Deposit: 300},
		},
	}
}

func TestDBImportAndRead(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if err := db.ImportDataset(ctx, testDataset()); err != nil {
		t.Fatalf("ImportDataset: %v", err)
	}

	loaded, err := pipeline.Load(ctx, db)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	ds := loaded.Dataset

	if len(ds.Categories) != 2 || ds.Categories[0].Name != "Salary" {
		t.Errorf("Categories = %+v", ds.Categories)
	}
	if len(ds.Transactions) != 2 || ds.Transactions[0].ID != "t1" || !ds.Transactions[0].Cleared {
		t.Errorf("Transactions = %+v", ds.Transactions)
	}
	if ds.Transactions[0].Balance != nil {
		t.Error("unprojected balance should be nil")
	}
	if got := ds.BudgetItems[0].Amounts["feb"]; got != 5000 {
		t.Errorf("feb amount = %v, want 5000", got)
	}
	if ds.SubAccounts[0].Target != 2000 {
		t.Errorf("fund target = %v, want 2000", ds.SubAccounts[0].Target)
	}
}

func TestDBSyncBalancesIdempotent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	if err := db.ImportDataset(ctx, testDataset()); err != nil {
		t.Fatal(err)
	}

	first, err := pipeline.SyncBalances(ctx, db)
	if err != nil {
		t.Fatalf("SyncBalances: %v", err)
	}
	if first.TransactionUpdates != 2 {
		t.Errorf("TransactionUpdates = %d, want 2", first.TransactionUpdates)
	}

	txns, err := db.Transactions(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if txns[1].Balance == nil || *txns[1].Balance != 3300 {
		t.Errorf("t2 balance = %v, want 3300", txns[1].Balance)
	}
	if *txns[1].ClearedBalance != 4800 {
		t.Errorf("t2 cleared = %v, want 4800", *txns[1].ClearedBalance)
	}

	accts, _ := db.Accounts(ctx)
	if accts[0].Balance != 3300 || accts[0].Cleared != 4800 {
		t.Errorf("account = %+v", accts[0])
	}
	funds, _ := db.SubAccounts(ctx)
	if funds[0].Balance != 300 {
		t.Errorf("fund balance = %v, want 300", funds[0].Balance)
	}

	second, err := pipeline.SyncBalances(ctx, db)
	if err != nil {
		t.Fatal(err)
	}
	if second.Writes() != 0 {
		t.Errorf("second sync wrote %d, want 0", second.Writes())
	}
}

func TestDBSaveTransactionKeepsLedgerPosition(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	if err := db.ImportDataset(ctx, testDataset()); err != nil {
		t.Fatal(err)
	}

	edit := model.Transaction{ID: "t1", Account: "chk", Date: "2025-01-15", Category: "salary", Deposit: 5000}
	if err := db.SaveTransaction(ctx, &edit); err != nil {
		t.Fatal(err)
	}
	txns, _ := db.Transactions(ctx)
	if txns[0].ID != "t1" || txns[0].Deposit != 5000 {
		t.Errorf("first row = %+v, want edited t1", txns[0])
	}
}

func TestDBSaveAssignsIDs(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	c := model.Category{Name: "Groceries", Type: model.CategoryVariable}
	if err := db.SaveCategory(ctx, &c); err != nil {
		t.Fatal(err)
	}
	if c.ID == "" {
		t.Fatal("SaveCategory did not assign an id")
	}

	b := model.BudgetItem{Category: c.ID, Type: model.BudgetExpense, Amounts: map[string]float64{"mar": 400}}
	if err := db.SaveBudgetItem(ctx, &b); err != nil {
		t.Fatal(err)
	}
	b.Amounts = map[string]float64{"apr": 250}
	if err := db.SaveBudgetItem(ctx, &b); err != nil {
		t.Fatal(err)
	}
	items, _ := db.BudgetItems(ctx)
	if len(items) != 1 || len(items[0].Amounts) != 1 || items[0].Amounts["apr"] != 250 {
		t.Errorf("items = %+v", items)
	}
}

func TestDBDeleteNotFound(t *testing.T) {
	db := openTestDB(t)
	err := db.DeleteTransaction(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDBDeleteCategoryLeavesReferences(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	if err := db.ImportDataset(ctx, testDataset()); err != nil {
		t.Fatal(err)
	}
	if err := db.DeleteCategory(ctx, "rent"); err != nil {
		t.Fatal(err)
	}

	loaded, err := pipeline.Load(ctx, db)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.UnresolvedRefs != 1 {
		t.Errorf("UnresolvedRefs = %d, want 1", loaded.UnresolvedRefs)
	}
	r := pipeline.GenerateReportData(1, 2025, false, loaded.Dataset.BudgetItems,
		loaded.Dataset.Categories, loaded.Dataset.Transactions, nil)
	if c := r.Categories["rent"]; c == nil || c.Actual != 1500 {
		t.Errorf("raw-id bucket = %+v, want actual 1500", c)
	}
}

func TestDBReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	ctx := context.Background()

	db, err := Open(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := db.ImportDataset(ctx, testDataset()); err != nil {
		t.Fatal(err)
	}
	_ = db.Close()

	db, err = Open(path, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = db.Close() }()
	cats, err := db.Categories(ctx)
	if err != nil || len(cats) != 2 {
		t.Errorf("Categories after reopen = %v, %v", cats, err)
	}
}
