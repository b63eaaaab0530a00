// Package source reads and writes ledger datasets as JSON or JSONL files.
package source

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/theirongolddev/cbudget/internal/model"
)

// ReadDataset loads a ledger file. Files ending in .jsonl are read one record
// per line; anything else is decoded as a single JSON dataset.
func ReadDataset(path string) (model.Dataset, ParseResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Dataset{}, ParseResult{Path: path}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if isJSONL(path) {
		ds, pr, err := ParseJSONL(f)
		pr.Path = path
		if err != nil {
			return ds, pr, fmt.Errorf("reading %s: %w", path, err)
		}
		return ds, pr, nil
	}

	var ds model.Dataset
	if err := json.NewDecoder(f).Decode(&ds); err != nil {
		return model.Dataset{}, ParseResult{Path: path}, fmt.Errorf("decoding %s: %w", path, err)
	}
	return ds, ParseResult{Path: path}, nil
}

// ParseJSONL reads RawRecord lines. Malformed lines are counted in
// ParseErrors and unknown kinds in Skipped; neither stops the read.
func ParseJSONL(r io.Reader) (model.Dataset, ParseResult, error) {
	var (
		ds model.Dataset
		pr ParseResult
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		pr.Lines++

		var raw RawRecord
		if err := json.Unmarshal(line, &raw); err != nil {
			pr.ParseErrors++
			continue
		}

		var err error
		switch raw.Kind {
		case KindCategory:
			err = appendRecord(raw.Record, &ds.Categories)
		case KindAccount:
			err = appendRecord(raw.Record, &ds.Accounts)
		case KindTransaction:
			err = appendRecord(raw.Record, &ds.Transactions)
		case KindBudgetItem:
			err = appendRecord(raw.Record, &ds.BudgetItems)
		case KindSubAccount:
			err = appendRecord(raw.Record, &ds.SubAccounts)
		case KindSubAccountTransaction:
			err = appendRecord(raw.Record, &ds.SubAccountTransactions)
		default:
			pr.Skipped++
			continue
		}
		if err != nil {
			pr.ParseErrors++
		}
	}

	return ds, pr, scanner.Err()
}

func appendRecord[T any](data json.RawMessage, dst *[]T) error {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*dst = append(*dst, v)
	return nil
}

// WriteDataset writes ds as indented JSON, replacing path atomically.
func WriteDataset(path string, ds model.Dataset) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating dir for %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".cbudget-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ds); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func isJSONL(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".jsonl")
}
