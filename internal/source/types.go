package source

import "encoding/json"

// Record kinds accepted in JSONL ledgers.
const (
	KindCategory              = "category"
	KindAccount               = "account"
	KindTransaction           = "transaction"
	KindBudgetItem            = "budget_item"
	KindSubAccount            = "sub_account"
	KindSubAccountTransaction = "sub_account_transaction"
)

// RawRecord is one line of a JSONL ledger: a kind tag and the record body.
type RawRecord struct {
	Kind   string          `json:"kind"`
	Record json.RawMessage `json:"record"`
}

// ParseResult holds the output of reading one ledger file.
type ParseResult struct {
	Path        string
	Lines       int
	ParseErrors int
	Skipped     int
}
