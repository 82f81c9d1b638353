package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the direction of a ledger transaction.
type TransactionType string

const (
	Deposit    TransactionType = "DEPOSIT"
	Withdrawal TransactionType = "WITHDRAWAL"
)

// Signed returns the amount with the sign implied by the transaction type:
// deposits are positive, withdrawals negative.
func (t TransactionType) Signed(amount decimal.Decimal) decimal.Decimal {
	if t == Withdrawal {
		return amount.Neg()
	}
	return amount
}

// IsValid reports whether the type is one of the known enum values.
func (t TransactionType) IsValid() bool {
	return t == Deposit || t == Withdrawal
}

// Account represents a trading account tracked by the ledger.
// The current balance is a derived value: initial deposit plus the signed
// sum of all transactions recorded against the account. The store keeps it
// consistent on every mutation. Accounts are never hard-deleted, only
// deactivated.
type Account struct {
	AccountID      string          // Externally assigned identifier (e.g. "AC1")
	Name           string          // Display name
	InitialDeposit decimal.Decimal // Immutable after creation
	CurrentBalance decimal.Decimal // Mutated by every deposit/withdrawal
	Currency       string          // Fixed "USD" in this domain
	Description    string
	CreatedAt      time.Time
	IsActive       bool // Soft-delete flag
}

// Transaction is a single entry in the append-only ledger log.
// Immutable once created.
type Transaction struct {
	ID          int64           // Assigned by the store
	AccountID   string          // Owning account
	Type        TransactionType // DEPOSIT or WITHDRAWAL
	Amount      decimal.Decimal // Always positive; sign implied by Type
	Description string
	OccurredAt  time.Time
}
