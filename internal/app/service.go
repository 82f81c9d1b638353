package app

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"fxledger/config"
	"fxledger/internal/domain"
	"fxledger/internal/fxid"
	"fxledger/internal/ingest"
	"fxledger/internal/ports"
)

// Service orchestrates the ledger, performance and ingestion operations the
// presentation layer calls. It owns no state beyond its injected
// dependencies; every operation is an independent request/response call and
// is safe to invoke concurrently.
type Service struct {
	cfg    *config.Config
	logger ports.Logger
	ledger ports.LedgerRepository
	perf   ports.PerformanceRepository
	now    func() time.Time // Injected clock, overridden in tests
}

// New creates a new application service instance.
func New(cfg *config.Config, logger ports.Logger, ledger ports.LedgerRepository, perf ports.PerformanceRepository) (*Service, error) {
	if cfg == nil || logger == nil || ledger == nil || perf == nil {
		return nil, fmt.Errorf("missing required dependencies for Service")
	}
	return &Service{
		cfg:    cfg,
		logger: logger,
		ledger: ledger,
		perf:   perf,
		now:    time.Now,
	}, nil
}

// --- Accounts & Ledger ---

// CreateAccount registers a new trading account with its opening deposit.
func (s *Service) CreateAccount(ctx context.Context, accountID, name string, initialDeposit decimal.Decimal, description string) (*domain.Account, error) {
	if accountID == "" {
		return nil, fmt.Errorf("account id must not be empty: %w", ports.ErrInvalidRequest)
	}
	if name == "" {
		return nil, fmt.Errorf("account name must not be empty: %w", ports.ErrInvalidRequest)
	}
	if initialDeposit.IsNegative() {
		return nil, fmt.Errorf("initial deposit must not be negative: %w", ports.ErrInvalidRequest)
	}

	acc := &domain.Account{
		AccountID:      accountID,
		Name:           name,
		InitialDeposit: initialDeposit,
		Currency:       s.cfg.BaseCurrency,
		Description:    description,
		CreatedAt:      s.now().UTC(),
		IsActive:       true,
	}
	if err := s.ledger.CreateAccount(ctx, acc); err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "Account created", map[string]interface{}{"accountID": accountID, "initialDeposit": initialDeposit.String()})
	return acc, nil
}

// ActiveAccounts lists active accounts, newest-created first.
func (s *Service) ActiveAccounts(ctx context.Context) ([]*domain.Account, error) {
	return s.ledger.ListActiveAccounts(ctx)
}

// DeactivateAccount soft-deletes an account. Its history stays intact.
func (s *Service) DeactivateAccount(ctx context.Context, accountID string) error {
	if err := s.ledger.DeactivateAccount(ctx, accountID); err != nil {
		return err
	}
	s.logger.Info(ctx, "Account deactivated", map[string]interface{}{"accountID": accountID})
	return nil
}

// Deposit adds funds to an account, appending a ledger entry and adjusting
// the balance atomically.
func (s *Service) Deposit(ctx context.Context, accountID string, amount decimal.Decimal, description string) (*domain.Account, error) {
	return s.applyTransaction(ctx, accountID, domain.Deposit, amount, description)
}

// Withdraw removes funds from an account, appending a ledger entry and
// adjusting the balance atomically.
func (s *Service) Withdraw(ctx context.Context, accountID string, amount decimal.Decimal, description string) (*domain.Account, error) {
	return s.applyTransaction(ctx, accountID, domain.Withdrawal, amount, description)
}

func (s *Service) applyTransaction(ctx context.Context, accountID string, txType domain.TransactionType, amount decimal.Decimal, description string) (*domain.Account, error) {
	if accountID == "" {
		return nil, fmt.Errorf("account id must not be empty: %w", ports.ErrInvalidRequest)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%s amount must be positive: %w", txType, ports.ErrInvalidRequest)
	}

	acc, err := s.ledger.ApplyTransaction(ctx, &domain.Transaction{
		AccountID:   accountID,
		Type:        txType,
		Amount:      amount,
		Description: description,
		OccurredAt:  s.now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "Transaction applied", map[string]interface{}{
		"accountID": accountID, "type": txType, "amount": amount.String(), "newBalance": acc.CurrentBalance.String()})
	return acc, nil
}

// Transactions lists recent ledger entries for one account or
// ports.AllAccounts. A non-positive limit falls back to the configured
// default.
func (s *Service) Transactions(ctx context.Context, accountID string, limit int) ([]*domain.Transaction, error) {
	if limit <= 0 {
		limit = s.cfg.TxListLimit
	}
	return s.ledger.ListTransactions(ctx, accountID, limit)
}

// --- Performance ---

// ImportWeeklyStatement runs the full ingestion pipeline: parse the trade
// export, derive its statistics, generate the record key for the week of at,
// and persist the performance record. A zero at means the service clock,
// matching how the week is auto-detected at the call site.
//
// The record key does not encode the year, so an import that collides with a
// record from another year is rejected explicitly rather than left to the
// storage constraint.
func (s *Service) ImportWeeklyStatement(ctx context.Context, accountID, filePath string, results decimal.Decimal, comments string, at time.Time) (*domain.PerformanceRecord, error) {
	if accountID == "" {
		return nil, fmt.Errorf("account id must not be empty: %w", ports.ErrInvalidRequest)
	}
	if at.IsZero() {
		at = s.now()
	}

	acc, err := s.ledger.FindAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, fmt.Errorf("account %q does not exist: %w", accountID, ports.ErrNotFound)
	}

	trades, err := ingest.ParseFile(filePath)
	if err != nil {
		return nil, err
	}
	stats := ingest.ComputeStats(trades)

	week, month, year := fxid.WeekMonthYear(at)
	fxID := fxid.Generate(accountID, at)

	existing, err := s.perf.FindByID(ctx, fxID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.Year != year {
			return nil, fmt.Errorf("record %q already exists for year %d (key format does not distinguish years): %w",
				fxID, existing.Year, ports.ErrDuplicateEntry)
		}
		return nil, fmt.Errorf("record %q already exists: %w", fxID, ports.ErrDuplicateEntry)
	}

	rec := &domain.PerformanceRecord{
		FxID:        fxID,
		AccountID:   accountID,
		Week:        week,
		Month:       month,
		Year:        year,
		Results:     results,
		RecordedAt:  at.UTC(),
		Comments:    comments,
		FilePath:    filePath,
		TotalTrades: stats.TotalTrades,
		TotalProfit: stats.TotalProfit,
		MaxWin:      stats.MaxWin,
		MinWin:      stats.MinWin,
	}
	if err := s.perf.Create(ctx, rec); err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "Weekly statement imported", map[string]interface{}{
		"fxID": fxID, "accountID": accountID, "trades": stats.TotalTrades, "totalProfit": stats.TotalProfit.String()})
	return rec, nil
}

// RecordsForAccount lists performance records for one account or
// ports.AllAccounts, newest first.
func (s *Service) RecordsForAccount(ctx context.Context, accountID string) ([]*domain.PerformanceRecord, error) {
	return s.perf.ListForAccount(ctx, accountID)
}

// UpdateRecord modifies the mutable fields of a performance record.
func (s *Service) UpdateRecord(ctx context.Context, fxID string, results decimal.Decimal, comments string, stats domain.TradeStats) error {
	if fxID == "" {
		return fmt.Errorf("fx id must not be empty: %w", ports.ErrInvalidRequest)
	}
	return s.perf.Update(ctx, fxID, results, comments, stats)
}

// DeleteRecord hard-deletes a performance record. The caller confirms first;
// there is no undo.
func (s *Service) DeleteRecord(ctx context.Context, fxID string) error {
	if fxID == "" {
		return fmt.Errorf("fx id must not be empty: %w", ports.ErrInvalidRequest)
	}
	if err := s.perf.Delete(ctx, fxID); err != nil {
		return err
	}
	s.logger.Info(ctx, "Performance record deleted", map[string]interface{}{"fxID": fxID})
	return nil
}

// --- Dashboard ---

// Snapshot holds the dashboard-level figures.
type Snapshot struct {
	TotalBalance   decimal.Decimal
	WeeklyPnL      decimal.Decimal
	ActiveAccounts int
	WeeklyTrades   int

	// Degraded reports that at least one figure came from the fallback
	// because its aggregate query failed.
	Degraded bool
}

// DashboardSnapshot composes the four dashboard aggregates. Each is fetched
// independently; when one fails, only that figure is substituted from the
// caller-supplied fallback and the failure is logged. The snapshot as a whole
// never fails. This degraded-but-available policy is deliberate, mirroring a
// dashboard that stays up while the store is unreachable.
func (s *Service) DashboardSnapshot(ctx context.Context, fallback Snapshot) Snapshot {
	snap := Snapshot{}
	at := s.now()

	if total, err := s.ledger.TotalActiveBalance(ctx); err != nil {
		s.logger.Warn(ctx, "Falling back for total balance", map[string]interface{}{"error": err.Error()})
		snap.TotalBalance = fallback.TotalBalance
		snap.Degraded = true
	} else {
		snap.TotalBalance = total
	}

	if pnl, err := s.perf.WeeklyProfitLoss(ctx, at); err != nil {
		s.logger.Warn(ctx, "Falling back for weekly profit/loss", map[string]interface{}{"error": err.Error()})
		snap.WeeklyPnL = fallback.WeeklyPnL
		snap.Degraded = true
	} else {
		snap.WeeklyPnL = pnl
	}

	if count, err := s.ledger.ActiveAccountCount(ctx); err != nil {
		s.logger.Warn(ctx, "Falling back for active account count", map[string]interface{}{"error": err.Error()})
		snap.ActiveAccounts = fallback.ActiveAccounts
		snap.Degraded = true
	} else {
		snap.ActiveAccounts = count
	}

	if trades, err := s.perf.WeeklyTradeCount(ctx, at); err != nil {
		s.logger.Warn(ctx, "Falling back for weekly trade count", map[string]interface{}{"error": err.Error()})
		snap.WeeklyTrades = fallback.WeeklyTrades
		snap.Degraded = true
	} else {
		snap.WeeklyTrades = trades
	}

	return snap
}
