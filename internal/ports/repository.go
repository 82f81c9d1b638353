package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"fxledger/internal/domain"
)

// AllAccounts is the wildcard accepted by listing operations that can span
// every account.
const AllAccounts = "ALL"

// LedgerRepository defines the interface for storing accounts and their
// append-only transaction log.
type LedgerRepository interface {
	// CreateAccount inserts a new account with its balance set to the
	// initial deposit. Fails with ErrDuplicateEntry if the id is taken.
	CreateAccount(ctx context.Context, acc *domain.Account) error
	// FindAccount retrieves an account by id, active or not.
	// Returns nil, nil if not found.
	FindAccount(ctx context.Context, accountID string) (*domain.Account, error)
	// ListActiveAccounts retrieves active accounts, newest-created first.
	ListActiveAccounts(ctx context.Context) ([]*domain.Account, error)
	// DeactivateAccount soft-deletes an account by clearing its active flag.
	// Fails with ErrNotFound if no such account exists.
	DeactivateAccount(ctx context.Context, accountID string) error

	// RecordTransaction appends a transaction row without touching the
	// account balance. Callers that need the balance invariant upheld
	// should use ApplyTransaction instead.
	RecordTransaction(ctx context.Context, tx *domain.Transaction) error
	// ApplyTransaction atomically appends the transaction and adjusts the
	// account's current balance by the signed amount, in one database
	// transaction. A withdrawal past the available balance fails with
	// ErrInsufficientFunds and leaves no partial state. Returns the
	// account with its updated balance.
	ApplyTransaction(ctx context.Context, tx *domain.Transaction) (*domain.Account, error)
	// UpdateBalance overwrites the current balance directly.
	// Fails with ErrNotFound if no such account exists.
	UpdateBalance(ctx context.Context, accountID string, newBalance decimal.Decimal) error
	// ListTransactions retrieves the most recent transactions, newest
	// first, for one account or AllAccounts, up to limit.
	ListTransactions(ctx context.Context, accountID string, limit int) ([]*domain.Transaction, error)

	// TotalActiveBalance sums current balances over active accounts.
	// Zero when none match.
	TotalActiveBalance(ctx context.Context) (decimal.Decimal, error)
	// ActiveAccountCount counts active accounts.
	ActiveAccountCount(ctx context.Context) (int, error)
}

// PerformanceRepository defines the interface for weekly performance records.
type PerformanceRepository interface {
	// Create inserts a new record. Fails with ErrDuplicateEntry if the
	// fx id is taken.
	Create(ctx context.Context, rec *domain.PerformanceRecord) error
	// Update modifies the mutable fields of an existing record and stamps
	// updated_at. Fails with ErrNotFound if no record matches.
	Update(ctx context.Context, fxID string, results decimal.Decimal, comments string, stats domain.TradeStats) error
	// Delete hard-deletes a record. Fails with ErrNotFound if no record
	// matches. Irreversible; callers confirm first.
	Delete(ctx context.Context, fxID string) error
	// FindByID retrieves a record by fx id. Returns nil, nil if not found.
	FindByID(ctx context.Context, fxID string) (*domain.PerformanceRecord, error)
	// ListForAccount retrieves records for one account or AllAccounts,
	// newest first by record timestamp.
	ListForAccount(ctx context.Context, accountID string) ([]*domain.PerformanceRecord, error)

	// WeeklyProfitLoss sums record results within the ISO week containing
	// at. Zero when none match.
	WeeklyProfitLoss(ctx context.Context, at time.Time) (decimal.Decimal, error)
	// WeeklyTradeCount sums total trade counts within the ISO week
	// containing at. Zero when none match.
	WeeklyTradeCount(ctx context.Context, at time.Time) (int, error)
}
