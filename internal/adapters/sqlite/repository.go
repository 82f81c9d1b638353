package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"fxledger/internal/domain"
	"fxledger/internal/ports"
)

// Repository implements the ports.LedgerRepository and
// ports.PerformanceRepository interfaces using SQLite.
type Repository struct {
	db     *sql.DB
	logger ports.Logger
}

// Config holds configuration for the SQLite repository.
type Config struct {
	DBPath string
	Logger ports.Logger
}

// NewRepository creates a new SQLite repository instance.
func NewRepository(cfg Config) (*Repository, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for SQLite repository")
	}
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = "./data/fxledger.db" // Default path
	}

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		err = fmt.Errorf("failed to create data directory '%s': %w", filepath.Dir(dbPath), err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	// WAL mode for better concurrency; foreign keys enforce the
	// transactions -> accounts reference.
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		err = fmt.Errorf("failed to open database at '%s': %w", dbPath, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		err = fmt.Errorf("failed to ping database at '%s': %w", dbPath, ports.ErrDBConnection)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	// Set connection pool settings (important for SQLite)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	cfg.Logger.Info(context.Background(), "SQLite database connection established", map[string]interface{}{"path": dbPath})

	repo := &Repository{db: db, logger: cfg.Logger}

	if err := repo.initializeSchema(context.Background()); err != nil {
		db.Close()
		err = fmt.Errorf("failed to initialize database schema: %w", err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}
	cfg.Logger.Info(context.Background(), "Database schema initialized/verified")

	return repo, nil
}

// initializeSchema creates tables if they don't exist.
// NOTE: This is a basic approach. A proper migration tool is recommended for production.
func (r *Repository) initializeSchema(ctx context.Context) error {
	// Money columns hold canonical decimal strings; aggregate sums over
	// them are computed in Go so amounts never round-trip through float.
	const schema = `
	CREATE TABLE IF NOT EXISTS accounts (
		account_id TEXT PRIMARY KEY,
		account_name TEXT NOT NULL,
		initial_deposit TEXT NOT NULL,
		current_balance TEXT NOT NULL,
		currency TEXT NOT NULL DEFAULT 'USD',
		description TEXT NOT NULL DEFAULT '',
		created_date TIMESTAMP NOT NULL,
		is_active INTEGER NOT NULL DEFAULT 1
	);

	CREATE TABLE IF NOT EXISTS transactions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		account_id TEXT NOT NULL REFERENCES accounts(account_id),
		type TEXT NOT NULL,
		amount TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		transaction_date TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS performance (
		fxid TEXT PRIMARY KEY,
		account_base TEXT NOT NULL,
		week INTEGER NOT NULL,
		month INTEGER NOT NULL,
		year INTEGER NOT NULL,
		results TEXT NOT NULL,
		datetime TIMESTAMP NOT NULL,
		comments TEXT NOT NULL DEFAULT '',
		file_path TEXT NOT NULL DEFAULT '',
		total_trades INTEGER NOT NULL DEFAULT 0,
		total_profit TEXT NOT NULL DEFAULT '0',
		max_win TEXT NOT NULL DEFAULT '0',
		min_win TEXT NOT NULL DEFAULT '0',
		updated_at TIMESTAMP DEFAULT NULL
	);
	-- Add indexes for common lookups
	CREATE INDEX IF NOT EXISTS idx_transactions_account_date ON transactions (account_id, transaction_date);
	CREATE INDEX IF NOT EXISTS idx_performance_account_datetime ON performance (account_base, datetime);
	`
	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to execute schema initialization: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	if r.db != nil {
		r.logger.Info(context.Background(), "Closing SQLite database connection")
		return r.db.Close()
	}
	return nil
}

// --- LedgerRepository Implementation ---

const selectAccountColumns = `
	SELECT account_id, account_name, initial_deposit, current_balance, currency, description, created_date, is_active
	FROM accounts`

// CreateAccount inserts a new account. The current balance always starts at
// the initial deposit and the account starts active, whatever the caller set.
func (r *Repository) CreateAccount(ctx context.Context, acc *domain.Account) error {
	const query = `
	INSERT INTO accounts (account_id, account_name, initial_deposit, current_balance, currency, description, created_date, is_active)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	if acc.CreatedAt.IsZero() {
		acc.CreatedAt = time.Now().UTC()
	}
	if acc.Currency == "" {
		acc.Currency = "USD"
	}
	acc.CurrentBalance = acc.InitialDeposit
	acc.IsActive = true

	_, err := r.db.ExecContext(ctx, query,
		acc.AccountID, acc.Name, acc.InitialDeposit, acc.CurrentBalance,
		acc.Currency, acc.Description, acc.CreatedAt.UTC(), acc.IsActive)
	if err != nil {
		if isConstraintErr(err, sqlite3.ErrConstraintPrimaryKey, sqlite3.ErrConstraintUnique) {
			return fmt.Errorf("account id %q is taken: %w", acc.AccountID, ports.ErrDuplicateEntry)
		}
		return fmt.Errorf("failed to insert account %q: %w", acc.AccountID, err)
	}
	r.logger.Debug(ctx, "Account created", map[string]interface{}{"accountID": acc.AccountID, "initialDeposit": acc.InitialDeposit.String()})
	return nil
}

// FindAccount retrieves an account by id, active or not.
func (r *Repository) FindAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	row := r.db.QueryRowContext(ctx, selectAccountColumns+` WHERE account_id = ?`, accountID)
	acc, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not an error, just not found
		}
		return nil, fmt.Errorf("failed to query account %q: %w", accountID, err)
	}
	return acc, nil
}

// ListActiveAccounts retrieves active accounts, newest-created first.
func (r *Repository) ListActiveAccounts(ctx context.Context) ([]*domain.Account, error) {
	rows, err := r.db.QueryContext(ctx, selectAccountColumns+` WHERE is_active = 1 ORDER BY created_date DESC, account_id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query active accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]*domain.Account, 0)
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account during ListActiveAccounts: %w", err)
		}
		accounts = append(accounts, acc)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// DeactivateAccount clears the active flag. Accounts are never hard-deleted.
func (r *Repository) DeactivateAccount(ctx context.Context, accountID string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE accounts SET is_active = 0 WHERE account_id = ?`, accountID)
	if err != nil {
		return fmt.Errorf("failed to deactivate account %q: %w", accountID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for deactivate account %q: %w", accountID, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("account %q not found for deactivation: %w", accountID, ports.ErrNotFound)
	}
	r.logger.Debug(ctx, "Account deactivated", map[string]interface{}{"accountID": accountID})
	return nil
}

// RecordTransaction appends a transaction row without touching the account
// balance. ApplyTransaction is the balance-safe path.
func (r *Repository) RecordTransaction(ctx context.Context, tx *domain.Transaction) error {
	const query = `
	INSERT INTO transactions (account_id, type, amount, description, transaction_date)
	VALUES (?, ?, ?, ?, ?)`

	if tx.OccurredAt.IsZero() {
		tx.OccurredAt = time.Now().UTC()
	}

	result, err := r.db.ExecContext(ctx, query,
		tx.AccountID, string(tx.Type), tx.Amount, tx.Description, tx.OccurredAt.UTC())
	if err != nil {
		if isConstraintErr(err, sqlite3.ErrConstraintForeignKey) {
			return fmt.Errorf("account %q does not exist: %w", tx.AccountID, ports.ErrNotFound)
		}
		return fmt.Errorf("failed to insert transaction for account %q: %w", tx.AccountID, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID for transaction on account %q: %w", tx.AccountID, err)
	}
	tx.ID = id // Update the domain object with the ID
	r.logger.Debug(ctx, "Transaction recorded", map[string]interface{}{"transactionID": id, "accountID": tx.AccountID, "type": tx.Type})
	return nil
}

// ApplyTransaction appends the transaction and adjusts the account balance in
// one database transaction, so a failure at any step leaves no partial state
// and two concurrent deposits cannot produce a lost update.
func (r *Repository) ApplyTransaction(ctx context.Context, tx *domain.Transaction) (*domain.Account, error) {
	if tx.OccurredAt.IsZero() {
		tx.OccurredAt = time.Now().UTC()
	}

	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin ledger transaction: %w", err)
	}
	defer dbTx.Rollback()

	row := dbTx.QueryRowContext(ctx, selectAccountColumns+` WHERE account_id = ?`, tx.AccountID)
	acc, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account %q does not exist: %w", tx.AccountID, ports.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load account %q: %w", tx.AccountID, err)
	}
	if !acc.IsActive {
		return nil, fmt.Errorf("account %q: %w", tx.AccountID, ports.ErrAccountInactive)
	}

	newBalance := acc.CurrentBalance.Add(tx.Type.Signed(tx.Amount))
	if tx.Type == domain.Withdrawal && newBalance.IsNegative() {
		return nil, fmt.Errorf("withdrawal of %s exceeds balance %s on account %q: %w",
			tx.Amount, acc.CurrentBalance, tx.AccountID, ports.ErrInsufficientFunds)
	}

	if _, err := dbTx.ExecContext(ctx, `UPDATE accounts SET current_balance = ? WHERE account_id = ?`, newBalance, tx.AccountID); err != nil {
		return nil, fmt.Errorf("failed to update balance for account %q: %w", tx.AccountID, err)
	}

	result, err := dbTx.ExecContext(ctx, `
	INSERT INTO transactions (account_id, type, amount, description, transaction_date)
	VALUES (?, ?, ?, ?, ?)`,
		tx.AccountID, string(tx.Type), tx.Amount, tx.Description, tx.OccurredAt.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to insert transaction for account %q: %w", tx.AccountID, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert ID for transaction on account %q: %w", tx.AccountID, err)
	}

	if err := dbTx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit ledger transaction for account %q: %w", tx.AccountID, err)
	}

	tx.ID = id
	acc.CurrentBalance = newBalance
	r.logger.Debug(ctx, "Transaction applied", map[string]interface{}{
		"transactionID": id, "accountID": tx.AccountID, "type": tx.Type, "newBalance": newBalance.String()})
	return acc, nil
}

// UpdateBalance overwrites the current balance directly.
func (r *Repository) UpdateBalance(ctx context.Context, accountID string, newBalance decimal.Decimal) error {
	result, err := r.db.ExecContext(ctx, `UPDATE accounts SET current_balance = ? WHERE account_id = ?`, newBalance, accountID)
	if err != nil {
		return fmt.Errorf("failed to update balance for account %q: %w", accountID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for balance update on account %q: %w", accountID, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("account %q not found for balance update: %w", accountID, ports.ErrNotFound)
	}
	return nil
}

// ListTransactions retrieves the most recent transactions, newest first, for
// one account or ports.AllAccounts.
func (r *Repository) ListTransactions(ctx context.Context, accountID string, limit int) ([]*domain.Transaction, error) {
	const selectColumns = `
	SELECT id, account_id, type, amount, description, transaction_date
	FROM transactions`

	if limit <= 0 {
		limit = 100
	}

	var (
		rows *sql.Rows
		err  error
	)
	if accountID == ports.AllAccounts {
		rows, err = r.db.QueryContext(ctx, selectColumns+` ORDER BY transaction_date DESC, id DESC LIMIT ?`, limit)
	} else {
		rows, err = r.db.QueryContext(ctx, selectColumns+` WHERE account_id = ? ORDER BY transaction_date DESC, id DESC LIMIT ?`, accountID, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for %q: %w", accountID, err)
	}
	defer rows.Close()

	transactions := make([]*domain.Transaction, 0)
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction during ListTransactions: %w", err)
		}
		transactions = append(transactions, tx)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return transactions, nil
}

// TotalActiveBalance sums current balances over active accounts. The sum is
// computed in Go over the scanned decimals rather than with SQL SUM.
func (r *Repository) TotalActiveBalance(ctx context.Context) (decimal.Decimal, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT current_balance FROM accounts WHERE is_active = 1`)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to query active balances: %w", err)
	}
	defer rows.Close()

	total := decimal.Zero
	for rows.Next() {
		var balance decimal.Decimal
		if err := rows.Scan(&balance); err != nil {
			return decimal.Zero, fmt.Errorf("failed to scan balance during TotalActiveBalance: %w", err)
		}
		total = total.Add(balance)
	}
	if err = rows.Err(); err != nil {
		return decimal.Zero, fmt.Errorf("error iterating balance rows: %w", err)
	}
	return total, nil
}

// ActiveAccountCount counts active accounts.
func (r *Repository) ActiveAccountCount(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts WHERE is_active = 1`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active accounts: %w", err)
	}
	return count, nil
}

// --- PerformanceRepository Implementation ---

const selectPerformanceColumns = `
	SELECT fxid, account_base, week, month, year, results, datetime, comments, file_path,
	       total_trades, total_profit, max_win, min_win, updated_at
	FROM performance`

// Create inserts a new performance record.
func (r *Repository) Create(ctx context.Context, rec *domain.PerformanceRecord) error {
	const query = `
	INSERT INTO performance (fxid, account_base, week, month, year, results, datetime, comments, file_path,
	                         total_trades, total_profit, max_win, min_win)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	if rec.RecordedAt.IsZero() {
		rec.RecordedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, query,
		rec.FxID, rec.AccountID, rec.Week, rec.Month, rec.Year, rec.Results, rec.RecordedAt.UTC(),
		rec.Comments, rec.FilePath, rec.TotalTrades, rec.TotalProfit, rec.MaxWin, rec.MinWin)
	if err != nil {
		if isConstraintErr(err, sqlite3.ErrConstraintPrimaryKey, sqlite3.ErrConstraintUnique) {
			return fmt.Errorf("performance record %q already exists: %w", rec.FxID, ports.ErrDuplicateEntry)
		}
		return fmt.Errorf("failed to insert performance record %q: %w", rec.FxID, err)
	}
	r.logger.Debug(ctx, "Performance record created", map[string]interface{}{"fxID": rec.FxID, "accountID": rec.AccountID})
	return nil
}

// Update modifies the mutable fields of an existing record and stamps
// updated_at.
func (r *Repository) Update(ctx context.Context, fxID string, results decimal.Decimal, comments string, stats domain.TradeStats) error {
	const query = `
	UPDATE performance
	SET results = ?, comments = ?, total_trades = ?, total_profit = ?, max_win = ?, min_win = ?, updated_at = ?
	WHERE fxid = ?`

	result, err := r.db.ExecContext(ctx, query,
		results, comments, stats.TotalTrades, stats.TotalProfit, stats.MaxWin, stats.MinWin,
		time.Now().UTC(), fxID)
	if err != nil {
		return fmt.Errorf("failed to update performance record %q: %w", fxID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for update of performance record %q: %w", fxID, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("performance record %q not found for update: %w", fxID, ports.ErrNotFound)
	}
	r.logger.Debug(ctx, "Performance record updated", map[string]interface{}{"fxID": fxID})
	return nil
}

// Delete hard-deletes a record.
func (r *Repository) Delete(ctx context.Context, fxID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM performance WHERE fxid = ?`, fxID)
	if err != nil {
		return fmt.Errorf("failed to delete performance record %q: %w", fxID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for delete of performance record %q: %w", fxID, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("performance record %q not found for delete: %w", fxID, ports.ErrNotFound)
	}
	r.logger.Debug(ctx, "Performance record deleted", map[string]interface{}{"fxID": fxID})
	return nil
}

// FindByID retrieves a record by fx id.
func (r *Repository) FindByID(ctx context.Context, fxID string) (*domain.PerformanceRecord, error) {
	row := r.db.QueryRowContext(ctx, selectPerformanceColumns+` WHERE fxid = ?`, fxID)
	rec, err := scanPerformance(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not an error, just not found
		}
		return nil, fmt.Errorf("failed to query performance record %q: %w", fxID, err)
	}
	return rec, nil
}

// ListForAccount retrieves records for one account or ports.AllAccounts,
// newest first by record timestamp.
func (r *Repository) ListForAccount(ctx context.Context, accountID string) ([]*domain.PerformanceRecord, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if accountID == ports.AllAccounts {
		rows, err = r.db.QueryContext(ctx, selectPerformanceColumns+` ORDER BY datetime DESC, fxid DESC`)
	} else {
		rows, err = r.db.QueryContext(ctx, selectPerformanceColumns+` WHERE account_base = ? ORDER BY datetime DESC, fxid DESC`, accountID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query performance records for %q: %w", accountID, err)
	}
	defer rows.Close()

	records := make([]*domain.PerformanceRecord, 0)
	for rows.Next() {
		rec, err := scanPerformance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan performance record during ListForAccount: %w", err)
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating performance record rows: %w", err)
	}
	return records, nil
}

// WeeklyProfitLoss sums record results within the ISO week containing at.
func (r *Repository) WeeklyProfitLoss(ctx context.Context, at time.Time) (decimal.Decimal, error) {
	from, to := isoWeekWindow(at)
	rows, err := r.db.QueryContext(ctx, `SELECT results FROM performance WHERE datetime >= ? AND datetime < ?`, from, to)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to query weekly results: %w", err)
	}
	defer rows.Close()

	total := decimal.Zero
	for rows.Next() {
		var results decimal.Decimal
		if err := rows.Scan(&results); err != nil {
			return decimal.Zero, fmt.Errorf("failed to scan results during WeeklyProfitLoss: %w", err)
		}
		total = total.Add(results)
	}
	if err = rows.Err(); err != nil {
		return decimal.Zero, fmt.Errorf("error iterating weekly result rows: %w", err)
	}
	return total, nil
}

// WeeklyTradeCount sums total trade counts within the ISO week containing at.
func (r *Repository) WeeklyTradeCount(ctx context.Context, at time.Time) (int, error) {
	from, to := isoWeekWindow(at)
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(total_trades), 0) FROM performance WHERE datetime >= ? AND datetime < ?`,
		from, to).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to sum weekly trade count: %w", err)
	}
	return count, nil
}

// isoWeekWindow returns the half-open [Monday 00:00, next Monday 00:00) UTC
// range of the ISO week containing at.
func isoWeekWindow(at time.Time) (time.Time, time.Time) {
	at = at.UTC()
	day := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC)
	for day.Weekday() != time.Monday {
		day = day.AddDate(0, 0, -1)
	}
	return day, day.AddDate(0, 0, 7)
}

// isConstraintErr reports whether err is a SQLite constraint violation with
// one of the given extended codes.
func isConstraintErr(err error, codes ...sqlite3.ErrNoExtended) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	for _, code := range codes {
		if sqliteErr.ExtendedCode == code {
			return true
		}
	}
	return false
}

// --- Helper Scan Functions ---

// scanner defines an interface compatible with *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

// scanAccount scans a row into a domain.Account struct.
func scanAccount(s scanner) (*domain.Account, error) {
	a := &domain.Account{}
	err := s.Scan(
		&a.AccountID, &a.Name, &a.InitialDeposit, &a.CurrentBalance,
		&a.Currency, &a.Description, &a.CreatedAt, &a.IsActive)
	if err != nil {
		return nil, err // Handle sql.ErrNoRows in the caller
	}
	return a, nil
}

// scanTransaction scans a row into a domain.Transaction struct.
func scanTransaction(s scanner) (*domain.Transaction, error) {
	t := &domain.Transaction{}
	var txType string
	err := s.Scan(&t.ID, &t.AccountID, &txType, &t.Amount, &t.Description, &t.OccurredAt)
	if err != nil {
		return nil, err // Handle sql.ErrNoRows in the caller
	}
	t.Type = domain.TransactionType(txType)
	return t, nil
}

// scanPerformance scans a row into a domain.PerformanceRecord struct.
func scanPerformance(s scanner) (*domain.PerformanceRecord, error) {
	p := &domain.PerformanceRecord{}
	var updatedAt sql.NullTime
	err := s.Scan(
		&p.FxID, &p.AccountID, &p.Week, &p.Month, &p.Year, &p.Results, &p.RecordedAt,
		&p.Comments, &p.FilePath, &p.TotalTrades, &p.TotalProfit, &p.MaxWin, &p.MinWin, &updatedAt)
	if err != nil {
		return nil, err // Handle sql.ErrNoRows in the caller
	}
	if updatedAt.Valid {
		p.UpdatedAt = updatedAt.Time
	}
	return p, nil
}
