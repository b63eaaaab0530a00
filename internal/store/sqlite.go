package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/theirongolddev/cbudget/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// DB is a SQLite-backed ledger.
type DB struct {
	db  *sql.DB
	log *zap.Logger
}

// Open opens or creates the ledger database at dbPath and migrates it.
func Open(dbPath string, log *zap.Logger) (*DB, error) {
	if log == nil {
		log = zap.NewNop()
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening ledger db: %w", err)
	}

	log.Debug("ledger opened", zap.String("path", dbPath))
	return &DB{db: db, log: log}, nil
}

// Close closes the database.
func (s *DB) Close() error {
	return s.db.Close()
}

// Categories returns all categories in insertion order.
func (s *DB) Categories(ctx context.Context) ([]model.Category, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, type FROM categories ORDER BY rowid")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Type); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// SaveCategory inserts or updates a category.
func (s *DB) SaveCategory(ctx context.Context, c *model.Category) error {
	ensureID(&c.ID)
	_, err := s.db.ExecContext(ctx, `INSERT INTO categories (id, name, type) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, type = excluded.type`,
		c.ID, c.Name, string(c.Type))
	if err != nil {
		return fmt.Errorf("saving category: %w", err)
	}
	return nil
}

// DeleteCategory removes a category. Records referring to it keep the id.
func (s *DB) DeleteCategory(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "categories", "category", id)
}

// Accounts returns all accounts in insertion order.
func (s *DB) Accounts(ctx context.Context) ([]model.Account, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, type, balance, cleared FROM accounts ORDER BY rowid")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.Account
	for rows.Next() {
		var a model.Account
		if err := rows.Scan(&a.ID, &a.Name, &a.Type, &a.Balance, &a.Cleared); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// SaveAccount inserts or updates an account. Balances are left to the projector.
func (s *DB) SaveAccount(ctx context.Context, a *model.Account) error {
	ensureID(&a.ID)
	_, err := s.db.ExecContext(ctx, `INSERT INTO accounts (id, name, type, balance, cleared) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, type = excluded.type`,
		a.ID, a.Name, string(a.Type), a.Balance, a.Cleared)
	if err != nil {
		return fmt.Errorf("saving account: %w", err)
	}
	return nil
}

// DeleteAccount removes an account.
func (s *DB) DeleteAccount(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "accounts", "account", id)
}

// UpdateAccountBalance stores an account's derived totals.
func (s *DB) UpdateAccountBalance(ctx context.Context, id string, balance, cleared float64) error {
	return s.updateOne(ctx, "account", id,
		"UPDATE accounts SET balance = ?, cleared = ? WHERE id = ?", balance, cleared, id)
}

// Transactions returns the ledger in insertion order.
func (s *DB) Transactions(ctx context.Context) ([]model.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT
		id, account_id, date, description, category_id, payment, deposit,
		memo, cleared, type, balance, cleared_balance
		FROM transactions ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.Transaction
	for rows.Next() {
		var t model.Transaction
		var cleared int
		var balance, clearedBalance sql.NullFloat64
		err := rows.Scan(&t.ID, &t.Account, &t.Date, &t.Description, &t.Category,
			&t.Payment, &t.Deposit, &t.Memo, &cleared, &t.Type, &balance, &clearedBalance)
		if err != nil {
			return nil, err
		}
		t.Cleared = cleared != 0
		if balance.Valid {
			v := balance.Float64
			t.Balance = &v
		}
		if clearedBalance.Valid {
			v := clearedBalance.Float64
			t.ClearedBalance = &v
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// SaveTransaction inserts or updates a transaction. An update keeps the
// row's position in the ledger.
func (s *DB) SaveTransaction(ctx context.Context, t *model.Transaction) error {
	ensureID(&t.ID)
	_, err := s.db.ExecContext(ctx, `INSERT INTO transactions
		(id, account_id, date, description, category_id, payment, deposit, memo, cleared, type, balance, cleared_balance)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			account_id = excluded.account_id, date = excluded.date,
			description = excluded.description, category_id = excluded.category_id,
			payment = excluded.payment, deposit = excluded.deposit, memo = excluded.memo,
			cleared = excluded.cleared, type = excluded.type`,
		t.ID, t.Account, t.Date, t.Description, t.Category, t.Payment, t.Deposit,
		t.Memo, boolToInt(t.Cleared), t.Type, nullFloat(t.Balance), nullFloat(t.ClearedBalance),
	)
	if err != nil {
		return fmt.Errorf("saving transaction: %w", err)
	}
	return nil
}

// DeleteTransaction removes a transaction.
func (s *DB) DeleteTransaction(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "transactions", "transaction", id)
}

// UpdateTransactionBalance stores a transaction's projected running balances.
func (s *DB) UpdateTransactionBalance(ctx context.Context, id string, balance, cleared float64) error {
	return s.updateOne(ctx, "transaction", id,
		"UPDATE transactions SET balance = ?, cleared_balance = ? WHERE id = ?", balance, cleared, id)
}

// BudgetItems returns all budget items with their monthly amounts.
func (s *DB) BudgetItems(ctx context.Context) ([]model.BudgetItem, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, category_id, type FROM budget_items ORDER BY rowid")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []model.BudgetItem
	for rows.Next() {
		var b model.BudgetItem
		if err := rows.Scan(&b.ID, &b.Category, &b.Type); err != nil {
			return nil, err
		}
		b.Amounts = make(map[string]float64)
		items = append(items, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	amountRows, err := s.db.QueryContext(ctx, "SELECT item_id, month_key, amount FROM budget_amounts")
	if err != nil {
		return nil, err
	}
	defer func() { _ = amountRows.Close() }()

	itemIdx := make(map[string]int, len(items))
	for i, b := range items {
		itemIdx[b.ID] = i
	}

	for amountRows.Next() {
		var id, key string
		var amount float64
		if err := amountRows.Scan(&id, &key, &amount); err != nil {
			return nil, err
		}
		if i, ok := itemIdx[id]; ok {
			items[i].Amounts[key] = amount
		}
	}
	return items, amountRows.Err()
}

// SaveBudgetItem inserts or updates a budget item and replaces its amounts.
func (s *DB) SaveBudgetItem(ctx context.Context, b *model.BudgetItem) error {
	ensureID(&b.ID)
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := saveBudgetItemTx(ctx, tx, b); err != nil {
		return fmt.Errorf("saving budget item: %w", err)
	}
	return tx.Commit()
}

func saveBudgetItemTx(ctx context.Context, tx *sql.Tx, b *model.BudgetItem) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO budget_items (id, category_id, type) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET category_id = excluded.category_id, type = excluded.type`,
		b.ID, b.Category, string(b.Type))
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM budget_amounts WHERE item_id = ?", b.ID); err != nil {
		return err
	}
	for key, amount := range b.Amounts {
		_, err := tx.ExecContext(ctx, "INSERT INTO budget_amounts (item_id, month_key, amount) VALUES (?, ?, ?)",
			b.ID, key, amount)
		if err != nil {
			return err
		}
	}
	return nil
}

// DeleteBudgetItem removes a budget item and its amounts.
func (s *DB) DeleteBudgetItem(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "budget_items", "budget item", id)
}

// SubAccounts returns all funds in insertion order.
func (s *DB) SubAccounts(ctx context.Context) ([]model.SubAccount, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, account_id, target, balance FROM sub_accounts ORDER BY rowid")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.SubAccount
	for rows.Next() {
		var sa model.SubAccount
		if err := rows.Scan(&sa.ID, &sa.Name, &sa.Account, &sa.Target, &sa.Balance); err != nil {
			return nil, err
		}
		out = append(out, sa)
	}
	return out, rows.Err()
}

// SaveSubAccount inserts or updates a fund.
func (s *DB) SaveSubAccount(ctx context.Context, sa *model.SubAccount) error {
	ensureID(&sa.ID)
	_, err := s.db.ExecContext(ctx, `INSERT INTO sub_accounts (id, name, account_id, target, balance) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, account_id = excluded.account_id, target = excluded.target`,
		sa.ID, sa.Name, sa.Account, sa.Target, sa.Balance)
	if err != nil {
		return fmt.Errorf("saving fund: %w", err)
	}
	return nil
}

// DeleteSubAccount removes a fund.
func (s *DB) DeleteSubAccount(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "sub_accounts", "fund", id)
}

// UpdateSubAccountBalance stores a fund's derived balance.
func (s *DB) UpdateSubAccountBalance(ctx context.Context, id string, balance float64) error {
	return s.updateOne(ctx, "fund", id, "UPDATE sub_accounts SET balance = ? WHERE id = ?", balance, id)
}

// SubAccountTransactions returns all fund movements in insertion order.
func (s *DB) SubAccountTransactions(ctx context.Context) ([]model.SubAccountTransaction, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, sub_account_id, date, description, payment, deposit, memo
		FROM sub_account_transactions ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.SubAccountTransaction
	for rows.Next() {
		var t model.SubAccountTransaction
		if err := rows.Scan(&t.ID, &t.SubAccount, &t.Date, &t.Description, &t.Payment, &t.Deposit, &t.Memo); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// SaveSubAccountTransaction inserts or updates a fund movement.
func (s *DB) SaveSubAccountTransaction(ctx context.Context, t *model.SubAccountTransaction) error {
	ensureID(&t.ID)
	_, err := s.db.ExecContext(ctx, `INSERT INTO sub_account_transactions
		(id, sub_account_id, date, description, payment, deposit, memo) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			sub_account_id = excluded.sub_account_id, date = excluded.date,
			description = excluded.description, payment = excluded.payment,
			deposit = excluded.deposit, memo = excluded.memo`,
		t.ID, t.SubAccount, t.Date, t.Description, t.Payment, t.Deposit, t.Memo)
	if err != nil {
		return fmt.Errorf("saving fund transaction: %w", err)
	}
	return nil
}

// DeleteSubAccountTransaction removes a fund movement.
func (s *DB) DeleteSubAccountTransaction(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "sub_account_transactions", "fund transaction", id)
}

// ImportDataset writes every record of ds in a single transaction.
func (s *DB) ImportDataset(ctx context.Context, ds model.Dataset) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for i := range ds.Categories {
		c := &ds.Categories[i]
		ensureID(&c.ID)
		if _, err := tx.ExecContext(ctx, "INSERT OR REPLACE INTO categories (id, name, type) VALUES (?, ?, ?)",
			c.ID, c.Name, string(c.Type)); err != nil {
			return fmt.Errorf("importing category %s: %w", c.ID, err)
		}
	}
	for i := range ds.Accounts {
		a := &ds.Accounts[i]
		ensureID(&a.ID)
		if _, err := tx.ExecContext(ctx, "INSERT OR REPLACE INTO accounts (id, name, type, balance, cleared) VALUES (?, ?, ?, ?, ?)",
			a.ID, a.Name, string(a.Type), a.Balance, a.Cleared); err != nil {
			return fmt.Errorf("importing account %s: %w", a.ID, err)
		}
	}
	for i := range ds.Transactions {
		t := &ds.Transactions[i]
		ensureID(&t.ID)
		if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO transactions
			(id, account_id, date, description, category_id, payment, deposit, memo, cleared, type, balance, cleared_balance)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, t.Account, t.Date, t.Description, t.Category, t.Payment, t.Deposit,
			t.Memo, boolToInt(t.Cleared), t.Type, nullFloat(t.Balance), nullFloat(t.ClearedBalance)); err != nil {
			return fmt.Errorf("importing transaction %s: %w", t.ID, err)
		}
	}
	for i := range ds.BudgetItems {
		b := &ds.BudgetItems[i]
		ensureID(&b.ID)
		if err := saveBudgetItemTx(ctx, tx, b); err != nil {
			return fmt.Errorf("importing budget item %s: %w", b.ID, err)
		}
	}
	for i := range ds.SubAccounts {
		sa := &ds.SubAccounts[i]
		ensureID(&sa.ID)
		if _, err := tx.ExecContext(ctx, "INSERT OR REPLACE INTO sub_accounts (id, name, account_id, target, balance) VALUES (?, ?, ?, ?, ?)",
			sa.ID, sa.Name, sa.Account, sa.Target, sa.Balance); err != nil {
			return fmt.Errorf("importing fund %s: %w", sa.ID, err)
		}
	}
	for i := range ds.SubAccountTransactions {
		t := &ds.SubAccountTransactions[i]
		ensureID(&t.ID)
		if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO sub_account_transactions
			(id, sub_account_id, date, description, payment, deposit, memo) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			t.ID, t.SubAccount, t.Date, t.Description, t.Payment, t.Deposit, t.Memo); err != nil {
			return fmt.Errorf("importing fund transaction %s: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	s.log.Info("dataset imported",
		zap.Int("categories", len(ds.Categories)),
		zap.Int("accounts", len(ds.Accounts)),
		zap.Int("transactions", len(ds.Transactions)),
		zap.Int("budget_items", len(ds.BudgetItems)),
	)
	return nil
}

func (s *DB) deleteByID(ctx context.Context, table, kind, id string) error {
	return s.updateOne(ctx, kind, id, "DELETE FROM "+table+" WHERE id = ?", id)
}

func (s *DB) updateOne(ctx context.Context, kind, id, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("writing %s %s: %w", kind, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return NotFound(kind, id)
	}
	return nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
