package store

import (
	"context"
	"maps"
	"sync"

	"github.com/theirongolddev/cbudget/internal/model"
)

// Memory is an in-process ledger. Readers receive copies.
type Memory struct {
	mu sync.RWMutex
	ds model.Dataset
}

// NewMemory returns a ledger seeded with a copy of ds. Records without an
// ID are given one, as ImportDataset does, so balance writes by ID land on
// exactly one row.
func NewMemory(ds model.Dataset) *Memory {
	ds = cloneDataset(ds)
	for i := range ds.Categories {
		ensureID(&ds.Categories[i].ID)
	}
	for i := range ds.Accounts {
		ensureID(&ds.Accounts[i].ID)
	}
	for i := range ds.Transactions {
		ensureID(&ds.Transactions[i].ID)
	}
	for i := range ds.BudgetItems {
		ensureID(&ds.BudgetItems[i].ID)
	}
	for i := range ds.SubAccounts {
		ensureID(&ds.SubAccounts[i].ID)
	}
	for i := range ds.SubAccountTransactions {
		ensureID(&ds.SubAccountTransactions[i].ID)
	}
	return &Memory{ds: ds}
}

// Snapshot returns a copy of the whole ledger.
func (m *Memory) Snapshot() model.Dataset {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneDataset(m.ds)
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }

// Categories returns every category.
func (m *Memory) Categories(context.Context) ([]model.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]model.Category(nil), m.ds.Categories...), nil
}

// Accounts returns every account with its stored balances.
func (m *Memory) Accounts(context.Context) ([]model.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]model.Account(nil), m.ds.Accounts...), nil
}

// Transactions returns every transaction in stored order.
func (m *Memory) Transactions(context.Context) ([]model.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneTransactions(m.ds.Transactions), nil
}

// BudgetItems returns the budget template.
func (m *Memory) BudgetItems(context.Context) ([]model.BudgetItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneBudgetItems(m.ds.BudgetItems), nil
}

// SubAccounts returns every fund.
func (m *Memory) SubAccounts(context.Context) ([]model.SubAccount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]model.SubAccount(nil), m.ds.SubAccounts...), nil
}

// SubAccountTransactions returns every fund movement.
func (m *Memory) SubAccountTransactions(context.Context) ([]model.SubAccountTransaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]model.SubAccountTransaction(nil), m.ds.SubAccountTransactions...), nil
}

// SaveCategory inserts or replaces c, assigning an ID when empty.
func (m *Memory) SaveCategory(_ context.Context, c *model.Category) error {
	ensureID(&c.ID)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ds.Categories = upsert(m.ds.Categories, *c, func(x model.Category) string { return x.ID })
	return nil
}

// DeleteCategory removes the category with id.
func (m *Memory) DeleteCategory(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ok bool
	m.ds.Categories, ok = remove(m.ds.Categories, id, func(x model.Category) string { return x.ID })
	if !ok {
		return NotFound("category", id)
	}
	return nil
}

// SaveAccount inserts a, or renames and retypes an existing account. Stored balances are kept.
func (m *Memory) SaveAccount(_ context.Context, a *model.Account) error {
	ensureID(&a.ID)
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.ds.Accounts {
		if m.ds.Accounts[i].ID == a.ID {
			m.ds.Accounts[i].Name = a.Name
			m.ds.Accounts[i].Type = a.Type
			return nil
		}
	}
	m.ds.Accounts = append(m.ds.Accounts, *a)
	return nil
}

// DeleteAccount removes the account with id.
func (m *Memory) DeleteAccount(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ok bool
	m.ds.Accounts, ok = remove(m.ds.Accounts, id, func(x model.Account) string { return x.ID })
	if !ok {
		return NotFound("account", id)
	}
	return nil
}

// UpdateAccountBalance stores projected totals for an account.
func (m *Memory) UpdateAccountBalance(_ context.Context, id string, balance, cleared float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.ds.Accounts {
		if m.ds.Accounts[i].ID == id {
			m.ds.Accounts[i].Balance = balance
			m.ds.Accounts[i].Cleared = cleared
			return nil
		}
	}
	return NotFound("account", id)
}

// SaveTransaction inserts or replaces t, keeping any projected balances.
func (m *Memory) SaveTransaction(_ context.Context, t *model.Transaction) error {
	ensureID(&t.ID)
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.ds.Transactions {
		if m.ds.Transactions[i].ID == t.ID {
			cur := m.ds.Transactions[i]
			next := *t
			next.Balance, next.ClearedBalance = cur.Balance, cur.ClearedBalance
			m.ds.Transactions[i] = next
			return nil
		}
	}
	m.ds.Transactions = append(m.ds.Transactions, *t)
	return nil
}

// DeleteTransaction removes the transaction with id.
func (m *Memory) DeleteTransaction(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ok bool
	m.ds.Transactions, ok = remove(m.ds.Transactions, id, func(x model.Transaction) string { return x.ID })
	if !ok {
		return NotFound("transaction", id)
	}
	return nil
}

// UpdateTransactionBalance stores the running balances of one transaction.
func (m *Memory) UpdateTransactionBalance(_ context.Context, id string, balance, cleared float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.ds.Transactions {
		if m.ds.Transactions[i].ID == id {
			m.ds.Transactions[i].Balance = &balance
			m.ds.Transactions[i].ClearedBalance = &cleared
			return nil
		}
	}
	return NotFound("transaction", id)
}

// SaveBudgetItem inserts or replaces b.
func (m *Memory) SaveBudgetItem(_ context.Context, b *model.BudgetItem) error {
	ensureID(&b.ID)
	item := *b
	item.Amounts = maps.Clone(b.Amounts)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ds.BudgetItems = upsert(m.ds.BudgetItems, item, func(x model.BudgetItem) string { return x.ID })
	return nil
}

// DeleteBudgetItem removes the budget item with id.
func (m *Memory) DeleteBudgetItem(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ok bool
	m.ds.BudgetItems, ok = remove(m.ds.BudgetItems, id, func(x model.BudgetItem) string { return x.ID })
	if !ok {
		return NotFound("budget item", id)
	}
	return nil
}

// SaveSubAccount inserts or replaces sa, keeping its stored balance.
func (m *Memory) SaveSubAccount(_ context.Context, sa *model.SubAccount) error {
	ensureID(&sa.ID)
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.ds.SubAccounts {
		if m.ds.SubAccounts[i].ID == sa.ID {
			bal := m.ds.SubAccounts[i].Balance
			m.ds.SubAccounts[i] = *sa
			m.ds.SubAccounts[i].Balance = bal
			return nil
		}
	}
	m.ds.SubAccounts = append(m.ds.SubAccounts, *sa)
	return nil
}

// DeleteSubAccount removes the fund with id.
func (m *Memory) DeleteSubAccount(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ok bool
	m.ds.SubAccounts, ok = remove(m.ds.SubAccounts, id, func(x model.SubAccount) string { return x.ID })
	if !ok {
		return NotFound("fund", id)
	}
	return nil
}

// UpdateSubAccountBalance stores a fund's projected balance.
func (m *Memory) UpdateSubAccountBalance(_ context.Context, id string, balance float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.ds.SubAccounts {
		if m.ds.SubAccounts[i].ID == id {
			m.ds.SubAccounts[i].Balance = balance
			return nil
		}
	}
	return NotFound("fund", id)
}

// SaveSubAccountTransaction inserts or replaces a fund movement.
func (m *Memory) SaveSubAccountTransaction(_ context.Context, t *model.SubAccountTransaction) error {
	ensureID(&t.ID)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ds.SubAccountTransactions = upsert(m.ds.SubAccountTransactions, *t,
		func(x model.SubAccountTransaction) string { return x.ID })
	return nil
}

// DeleteSubAccountTransaction removes the fund movement with id.
func (m *Memory) DeleteSubAccountTransaction(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ok bool
	m.ds.SubAccountTransactions, ok = remove(m.ds.SubAccountTransactions, id,
		func(x model.SubAccountTransaction) string { return x.ID })
	if !ok {
		return NotFound("fund transaction", id)
	}
	return nil
}

// ImportDataset appends or replaces every record of ds.
func (m *Memory) ImportDataset(ctx context.Context, ds model.Dataset) error {
	ds = cloneDataset(ds)
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range ds.Categories {
		ensureID(&c.ID)
		m.ds.Categories = upsert(m.ds.Categories, c, func(x model.Category) string { return x.ID })
	}
	for _, a := range ds.Accounts {
		ensureID(&a.ID)
		m.ds.Accounts = upsert(m.ds.Accounts, a, func(x model.Account) string { return x.ID })
	}
	for _, t := range ds.Transactions {
		ensureID(&t.ID)
		m.ds.Transactions = upsert(m.ds.Transactions, t, func(x model.Transaction) string { return x.ID })
	}
	for _, b := range ds.BudgetItems {
		ensureID(&b.ID)
		m.ds.BudgetItems = upsert(m.ds.BudgetItems, b, func(x model.BudgetItem) string { return x.ID })
	}
	for _, sa := range ds.SubAccounts {
		ensureID(&sa.ID)
		m.ds.SubAccounts = upsert(m.ds.SubAccounts, sa, func(x model.SubAccount) string { return x.ID })
	}
	for _, t := range ds.SubAccountTransactions {
		ensureID(&t.ID)
		m.ds.SubAccountTransactions = upsert(m.ds.SubAccountTransactions, t,
			func(x model.SubAccountTransaction) string { return x.ID })
	}
	return ctx.Err()
}

func upsert[T any](list []T, v T, id func(T) string) []T {
	for i := range list {
		if id(list[i]) == id(v) {
			list[i] = v
			return list
		}
	}
	return append(list, v)
}

func remove[T any](list []T, target string, id func(T) string) ([]T, bool) {
	for i := range list {
		if id(list[i]) == target {
			return append(list[:i], list[i+1:]...), true
		}
	}
	return list, false
}

func cloneTransactions(txns []model.Transaction) []model.Transaction {
	out := make([]model.Transaction, len(txns))
	for i, t := range txns {
		if t.Balance != nil {
			v := *t.Balance
			t.Balance = &v
		}
		if t.ClearedBalance != nil {
			v := *t.ClearedBalance
			t.ClearedBalance = &v
		}
		out[i] = t
	}
	return out
}

func cloneBudgetItems(items []model.BudgetItem) []model.BudgetItem {
	out := make([]model.BudgetItem, len(items))
	for i, b := range items {
		b.Amounts = maps.Clone(b.Amounts)
		out[i] = b
	}
	return out
}

func cloneDataset(ds model.Dataset) model.Dataset {
	return model.Dataset{
		Categories:             append([]model.Category(nil), ds.Categories...),
		Accounts:               append([]model.Account(nil), ds.Accounts...),
		Transactions:           cloneTransactions(ds.Transactions),
		BudgetItems:            cloneBudgetItems(ds.BudgetItems),
		SubAccounts:            append([]model.SubAccount(nil), ds.SubAccounts...),
		SubAccountTransactions: append([]model.SubAccountTransaction(nil), ds.SubAccountTransactions...),
	}
}
