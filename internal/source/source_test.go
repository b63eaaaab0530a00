package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/theirongolddev/cbudget/internal/model"
	"github.com/theirongolddev/cbudget/internal/pipeline"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseJSONL(t *testing.T) {
	body := strings.Join([]string{
		`{"kind":"category","record":{"id":"c1","name":"Salary","type":"Fixed"}}`,
		`{"kind":"transaction","record":{"id":"t1","account":"a1","date":"2025-01-15","category":"c1","deposit":4800}}`,
		``,
		`{"kind":"budget_item","record":{"id":"b1","category":"c1","type":"income","amounts":{"jan":5000}}}`,
		`{"kind":"transaction","record":{"id":"t2","payment":"twelve"}}`,
		`not json`,
		`{"kind":"receipt","record":{}}`,
	}, "\n")

	ds, pr, err := ParseJSONL(strings.NewReader(body))
	if err != nil {
		t.Fatalf("ParseJSONL: %v", err)
	}
	if pr.Lines != 6 {
		t.Errorf("Lines = %d, want 6", pr.Lines)
	}
	if pr.ParseErrors != 2 {
		t.Errorf("ParseErrors = %d, want 2", pr.ParseErrors)
	}
	if pr.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", pr.Skipped)
	}
	if len(ds.Transactions) != 1 || ds.Transactions[0].Deposit != 4800 {
		t.Errorf("Transactions = %+v", ds.Transactions)
	}
	if ds.BudgetItems[0].Amounts["jan"] != 5000 {
		t.Errorf("BudgetItems = %+v", ds.BudgetItems)
	}
}

func TestWriteThenReadDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "ledger.json")
	bal := 120.5
	in := model.Dataset{
		Categories:   []model.Category{{ID: "c1", Name: "Rent", Type: model.CategoryFixed}},
		Transactions: []model.Transaction{{ID: "t1", Account: "a1", Date: "2025-02-01", Category: "c1", Payment: 900, Balance: &bal}},
	}
	if err := WriteDataset(path, in); err != nil {
		t.Fatalf("WriteDataset: %v", err)
	}

	out, _, err := ReadDataset(path)
	if err != nil {
		t.Fatalf("ReadDataset: %v", err)
	}
	if out.Categories[0].Name != "Rent" {
		t.Errorf("Categories = %+v", out.Categories)
	}
	if out.Transactions[0].Balance == nil || *out.Transactions[0].Balance != bal {
		t.Errorf("Balance = %v, want %v", out.Transactions[0].Balance, bal)
	}
}

func TestReadDatasetReportsPath(t *testing.T) {
	path := writeFile(t, "broken.json", "{")
	_, _, err := ReadDataset(path)
	if err == nil || !strings.Contains(err.Error(), path) {
		t.Errorf("err = %v, want mention of %s", err, path)
	}
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.jsonl", "a.json", "notes.txt", ".hidden.json"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	files, err := ScanDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 || filepath.Base(files[0]) != "a.json" || filepath.Base(files[1]) != "b.jsonl" {
		t.Errorf("files = %v", files)
	}

	missing, err := ScanDir(filepath.Join(dir, "nope"))
	if err != nil || missing != nil {
		t.Errorf("missing dir = %v, %v", missing, err)
	}
}

func TestFileSyncAndFlush(t *testing.T) {
	path := writeFile(t, "ledger.json", `{
		"categories": [{"id": "c1", "name": "Salary", "type": "Fixed"}],
		"accounts": [{"id": "a1", "name": "Checking", "type": "checking"}],
		"transactions": [{"id": "t1", "account": "a1", "date": "2025-01-15", "category": "c1", "deposit": 4800}]
	}`)

	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := pipeline.SyncBalances(context.Background(), f); err != nil {
		t.Fatal(err)
	}
	if err := f.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	ds, _, err := ReadDataset(path)
	if err != nil {
		t.Fatal(err)
	}
	if ds.Accounts[0].Balance != 4800 {
		t.Errorf("persisted balance = %v, want 4800", ds.Accounts[0].Balance)
	}
}

func TestOpenMissingFileStartsEmpty(t *testing.T) {
	f, err := Open(filepath.Join(t.TempDir(), "new.json"))
	if err != nil {
		t.Fatal(err)
	}
	txns, _ := f.Transactions(context.Background())
	if len(txns) != 0 {
		t.Errorf("Transactions = %v, want empty", txns)
	}
}

func TestJSONLFileIsReadOnly(t *testing.T) {
	path := writeFile(t, "ledger.jsonl", `{"kind":"category","record":{"id":"c1","name":"Rent"}}`+"\n")
	f, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if f.Writable() == nil {
		t.Error("jsonl ledger should be read-only")
	}
	if err := f.Flush(); err == nil {
		t.Error("Flush on jsonl should fail")
	}
}

func TestOpenAssignsMissingIDs(t *testing.T) {
	path := writeFile(t, "ledger.json", `{
		"accounts": [{"id": "a1", "name": "Checking", "type": "checking"}],
		"transactions": [
			{"account": "a1", "date": "2025-01-01", "deposit": 100},
			{"account": "a1", "date": "2025-01-02", "payment": 30}
		]
	}`)

	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	ctx := context.Background()

	first, err := pipeline.SyncBalances(ctx, f)
	if err != nil {
		t.Fatal(err)
	}
	if first.TransactionUpdates != 2 {
		t.Errorf("first sync transaction updates = %d, want 2", first.TransactionUpdates)
	}

	txns, _ := f.Transactions(ctx)
	want := []float64{100, 70}
	seen := map[string]bool{}
	for i, tx := range txns {
		if tx.ID == "" || seen[tx.ID] {
			t.Fatalf("transaction %d id = %q, want unique non-empty", i, tx.ID)
		}
		seen[tx.ID] = true
		if tx.Balance == nil || *tx.Balance != want[i] {
			t.Errorf("transaction %d balance = %v, want %v", i, tx.Balance, want[i])
		}
	}

	again, err := pipeline.SyncBalances(ctx, f)
	if err != nil {
		t.Fatal(err)
	}
	if again.Writes() != 0 {
		t.Errorf("second sync writes = %d, want 0", again.Writes())
	}
}
