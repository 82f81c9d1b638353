package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fxledger/config"
	"fxledger/internal/adapters/logger"
	"fxledger/internal/domain"
	"fxledger/internal/ports"
)

// mockLogger implements ports.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {}
func (m *mockLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
}

// stubLedger implements ports.LedgerRepository with overridable behavior.
type stubLedger struct {
	createAccount      func(ctx context.Context, acc *domain.Account) error
	findAccount        func(ctx context.Context, accountID string) (*domain.Account, error)
	applyTransaction   func(ctx context.Context, tx *domain.Transaction) (*domain.Account, error)
	totalActiveBalance func(ctx context.Context) (decimal.Decimal, error)
	activeAccountCount func(ctx context.Context) (int, error)
}

func (s *stubLedger) CreateAccount(ctx context.Context, acc *domain.Account) error {
	if s.createAccount != nil {
		return s.createAccount(ctx, acc)
	}
	return nil
}

func (s *stubLedger) FindAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	if s.findAccount != nil {
		return s.findAccount(ctx, accountID)
	}
	return nil, nil
}

func (s *stubLedger) ListActiveAccounts(ctx context.Context) ([]*domain.Account, error) {
	return nil, nil
}

func (s *stubLedger) DeactivateAccount(ctx context.Context, accountID string) error { return nil }

func (s *stubLedger) RecordTransaction(ctx context.Context, tx *domain.Transaction) error {
	return nil
}

func (s *stubLedger) ApplyTransaction(ctx context.Context, tx *domain.Transaction) (*domain.Account, error) {
	if s.applyTransaction != nil {
		return s.applyTransaction(ctx, tx)
	}
	return &domain.Account{AccountID: tx.AccountID}, nil
}

func (s *stubLedger) UpdateBalance(ctx context.Context, accountID string, newBalance decimal.Decimal) error {
	return nil
}

func (s *stubLedger) ListTransactions(ctx context.Context, accountID string, limit int) ([]*domain.Transaction, error) {
	return nil, nil
}

func (s *stubLedger) TotalActiveBalance(ctx context.Context) (decimal.Decimal, error) {
	if s.totalActiveBalance != nil {
		return s.totalActiveBalance(ctx)
	}
	return decimal.Zero, nil
}

func (s *stubLedger) ActiveAccountCount(ctx context.Context) (int, error) {
	if s.activeAccountCount != nil {
		return s.activeAccountCount(ctx)
	}
	return 0, nil
}

// stubPerf implements ports.PerformanceRepository with overridable behavior.
type stubPerf struct {
	create           func(ctx context.Context, rec *domain.PerformanceRecord) error
	findByID         func(ctx context.Context, fxID string) (*domain.PerformanceRecord, error)
	weeklyProfitLoss func(ctx context.Context, at time.Time) (decimal.Decimal, error)
	weeklyTradeCount func(ctx context.Context, at time.Time) (int, error)
}

func (s *stubPerf) Create(ctx context.Context, rec *domain.PerformanceRecord) error {
	if s.create != nil {
		return s.create(ctx, rec)
	}
	return nil
}

func (s *stubPerf) Update(ctx context.Context, fxID string, results decimal.Decimal, comments string, stats domain.TradeStats) error {
	return nil
}

func (s *stubPerf) Delete(ctx context.Context, fxID string) error { return nil }

func (s *stubPerf) FindByID(ctx context.Context, fxID string) (*domain.PerformanceRecord, error) {
	if s.findByID != nil {
		return s.findByID(ctx, fxID)
	}
	return nil, nil
}

func (s *stubPerf) ListForAccount(ctx context.Context, accountID string) ([]*domain.PerformanceRecord, error) {
	return nil, nil
}

func (s *stubPerf) WeeklyProfitLoss(ctx context.Context, at time.Time) (decimal.Decimal, error) {
	if s.weeklyProfitLoss != nil {
		return s.weeklyProfitLoss(ctx, at)
	}
	return decimal.Zero, nil
}

func (s *stubPerf) WeeklyTradeCount(ctx context.Context, at time.Time) (int, error) {
	if s.weeklyTradeCount != nil {
		return s.weeklyTradeCount(ctx, at)
	}
	return 0, nil
}

func testConfig() *config.Config {
	return &config.Config{
		DBPath:       "./data/test.db",
		LogLevel:     logger.LevelError,
		LogFormat:    config.LogFormatStd,
		BaseCurrency: "USD",
		TxListLimit:  100,
	}
}

func newTestService(t *testing.T, ledger *stubLedger, perf *stubPerf) *Service {
	t.Helper()
	svc, err := New(testConfig(), &mockLogger{}, ledger, perf)
	require.NoError(t, err)
	svc.now = func() time.Time {
		return time.Date(2026, time.January, 7, 15, 0, 0, 0, time.UTC)
	}
	return svc
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestNew_MissingDependencies(t *testing.T) {
	_, err := New(nil, &mockLogger{}, &stubLedger{}, &stubPerf{})
	assert.Error(t, err)

	_, err = New(testConfig(), nil, &stubLedger{}, &stubPerf{})
	assert.Error(t, err)

	_, err = New(testConfig(), &mockLogger{}, nil, &stubPerf{})
	assert.Error(t, err)

	_, err = New(testConfig(), &mockLogger{}, &stubLedger{}, nil)
	assert.Error(t, err)
}

func TestService_CreateAccount_Validation(t *testing.T) {
	tests := []struct {
		name      string
		accountID string
		accName   string
		deposit   string
	}{
		{name: "empty id", accountID: "", accName: "Main", deposit: "100"},
		{name: "empty name", accountID: "AC1", accName: "", deposit: "100"},
		{name: "negative deposit", accountID: "AC1", accName: "Main", deposit: "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			ledger := &stubLedger{createAccount: func(ctx context.Context, acc *domain.Account) error {
				called = true
				return nil
			}}
			svc := newTestService(t, ledger, &stubPerf{})

			_, err := svc.CreateAccount(context.Background(), tt.accountID, tt.accName, dec(tt.deposit), "")
			assert.ErrorIs(t, err, ports.ErrInvalidRequest)
			assert.False(t, called, "repository must not be reached on validation failure")
		})
	}
}

func TestService_CreateAccount(t *testing.T) {
	var created *domain.Account
	ledger := &stubLedger{createAccount: func(ctx context.Context, acc *domain.Account) error {
		created = acc
		return nil
	}}
	svc := newTestService(t, ledger, &stubPerf{})

	acc, err := svc.CreateAccount(context.Background(), "AC1", "Main", dec("1000"), "primary account")
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "AC1", acc.AccountID)
	assert.Equal(t, "USD", created.Currency)
	assert.True(t, created.IsActive)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestService_DepositWithdraw(t *testing.T) {
	t.Run("non-positive amounts rejected", func(t *testing.T) {
		svc := newTestService(t, &stubLedger{}, &stubPerf{})

		_, err := svc.Deposit(context.Background(), "AC1", dec("0"), "")
		assert.ErrorIs(t, err, ports.ErrInvalidRequest)

		_, err = svc.Withdraw(context.Background(), "AC1", dec("-5"), "")
		assert.ErrorIs(t, err, ports.ErrInvalidRequest)
	})

	t.Run("transaction carries type, amount and clock time", func(t *testing.T) {
		var applied *domain.Transaction
		ledger := &stubLedger{applyTransaction: func(ctx context.Context, tx *domain.Transaction) (*domain.Account, error) {
			applied = tx
			return &domain.Account{AccountID: tx.AccountID, CurrentBalance: dec("1050")}, nil
		}}
		svc := newTestService(t, ledger, &stubPerf{})

		acc, err := svc.Deposit(context.Background(), "AC1", dec("50"), "wire")
		require.NoError(t, err)
		require.NotNil(t, applied)
		assert.Equal(t, domain.Deposit, applied.Type)
		assert.True(t, applied.Amount.Equal(dec("50")))
		assert.Equal(t, "wire", applied.Description)
		assert.Equal(t, time.Date(2026, time.January, 7, 15, 0, 0, 0, time.UTC), applied.OccurredAt)
		assert.True(t, acc.CurrentBalance.Equal(dec("1050")))
	})

	t.Run("repository failures surface to the caller", func(t *testing.T) {
		ledger := &stubLedger{applyTransaction: func(ctx context.Context, tx *domain.Transaction) (*domain.Account, error) {
			return nil, ports.ErrInsufficientFunds
		}}
		svc := newTestService(t, ledger, &stubPerf{})

		_, err := svc.Withdraw(context.Background(), "AC1", dec("50"), "")
		assert.ErrorIs(t, err, ports.ErrInsufficientFunds)
	})
}

func writeExport(t *testing.T, rows ...string) string {
	t.Helper()
	header := make([]string, 20)
	for i := range header {
		header[i] = "col"
	}
	content := strings.Join(append([]string{strings.Join(header, ",")}, rows...), "\n")
	path := filepath.Join(t.TempDir(), "trades.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func exportRow(id, status, profitLoss string) string {
	fields := make([]string, 20)
	for i := range fields {
		fields[i] = "x"
	}
	fields[0] = id
	fields[3] = "EURUSD"
	fields[12] = status
	fields[16] = profitLoss
	fields[19] = "2026-01-06 18:00:00"
	return strings.Join(fields, ",")
}

func TestService_ImportWeeklyStatement(t *testing.T) {
	existingAccount := func(ctx context.Context, accountID string) (*domain.Account, error) {
		return &domain.Account{AccountID: accountID, IsActive: true}, nil
	}

	t.Run("full pipeline", func(t *testing.T) {
		path := writeExport(t,
			exportRow("T1", "CLOSED", "10"),
			exportRow("T2", "CLOSED", "-5"),
			exportRow("T3", "CLOSED", "20"),
			exportRow("T4", "OPEN", "99"),
		)

		var created *domain.PerformanceRecord
		perf := &stubPerf{create: func(ctx context.Context, rec *domain.PerformanceRecord) error {
			created = rec
			return nil
		}}
		svc := newTestService(t, &stubLedger{findAccount: existingAccount}, perf)

		// Clock is Wed Jan 7 2026: week 2 of January.
		rec, err := svc.ImportWeeklyStatement(context.Background(), "AC1", path, dec("25"), "good week", time.Time{})
		require.NoError(t, err)
		require.NotNil(t, created)

		assert.Equal(t, "AC1WK0201", rec.FxID)
		assert.Equal(t, 2, rec.Week)
		assert.Equal(t, 1, rec.Month)
		assert.Equal(t, 2026, rec.Year)
		assert.Equal(t, 3, rec.TotalTrades)
		assert.True(t, rec.TotalProfit.Equal(dec("25")), rec.TotalProfit.String())
		assert.True(t, rec.MaxWin.Equal(dec("20")))
		assert.True(t, rec.MinWin.Equal(dec("10")))
		assert.True(t, rec.Results.Equal(dec("25")))
		assert.Equal(t, "good week", rec.Comments)
		assert.Equal(t, path, rec.FilePath)
	})

	t.Run("unknown account", func(t *testing.T) {
		svc := newTestService(t, &stubLedger{}, &stubPerf{})

		_, err := svc.ImportWeeklyStatement(context.Background(), "NOPE", "ignored.csv", dec("0"), "", time.Time{})
		assert.ErrorIs(t, err, ports.ErrNotFound)
	})

	t.Run("unreadable file", func(t *testing.T) {
		svc := newTestService(t, &stubLedger{findAccount: existingAccount}, &stubPerf{})

		_, err := svc.ImportWeeklyStatement(context.Background(), "AC1",
			filepath.Join(t.TempDir(), "missing.csv"), dec("0"), "", time.Time{})
		assert.Error(t, err)
	})

	t.Run("cross-year collision is rejected explicitly", func(t *testing.T) {
		path := writeExport(t, exportRow("T1", "CLOSED", "10"))
		perf := &stubPerf{findByID: func(ctx context.Context, fxID string) (*domain.PerformanceRecord, error) {
			return &domain.PerformanceRecord{FxID: fxID, Year: 2025}, nil
		}}
		svc := newTestService(t, &stubLedger{findAccount: existingAccount}, perf)

		_, err := svc.ImportWeeklyStatement(context.Background(), "AC1", path, dec("0"), "", time.Time{})
		assert.ErrorIs(t, err, ports.ErrDuplicateEntry)
		assert.Contains(t, err.Error(), "2025")
	})
}

func TestService_DashboardSnapshot(t *testing.T) {
	fallback := Snapshot{
		TotalBalance:   dec("15000"),
		WeeklyPnL:      dec("150.25"),
		ActiveAccounts: 2,
		WeeklyTrades:   24,
	}
	storeDown := errors.New("store unreachable")

	t.Run("healthy snapshot uses live figures", func(t *testing.T) {
		ledger := &stubLedger{
			totalActiveBalance: func(ctx context.Context) (decimal.Decimal, error) { return dec("3000.75"), nil },
			activeAccountCount: func(ctx context.Context) (int, error) { return 3, nil },
		}
		perf := &stubPerf{
			weeklyProfitLoss: func(ctx context.Context, at time.Time) (decimal.Decimal, error) { return dec("80.25"), nil },
			weeklyTradeCount: func(ctx context.Context, at time.Time) (int, error) { return 14, nil },
		}
		svc := newTestService(t, ledger, perf)

		snap := svc.DashboardSnapshot(context.Background(), fallback)
		assert.False(t, snap.Degraded)
		assert.True(t, snap.TotalBalance.Equal(dec("3000.75")))
		assert.True(t, snap.WeeklyPnL.Equal(dec("80.25")))
		assert.Equal(t, 3, snap.ActiveAccounts)
		assert.Equal(t, 14, snap.WeeklyTrades)
	})

	t.Run("single failure degrades only that figure", func(t *testing.T) {
		ledger := &stubLedger{
			totalActiveBalance: func(ctx context.Context) (decimal.Decimal, error) { return decimal.Zero, storeDown },
			activeAccountCount: func(ctx context.Context) (int, error) { return 3, nil },
		}
		perf := &stubPerf{
			weeklyProfitLoss: func(ctx context.Context, at time.Time) (decimal.Decimal, error) { return dec("80.25"), nil },
			weeklyTradeCount: func(ctx context.Context, at time.Time) (int, error) { return 14, nil },
		}
		svc := newTestService(t, ledger, perf)

		snap := svc.DashboardSnapshot(context.Background(), fallback)
		assert.True(t, snap.Degraded)
		assert.True(t, snap.TotalBalance.Equal(dec("15000")), "failed figure comes from the fallback")
		assert.True(t, snap.WeeklyPnL.Equal(dec("80.25")), "healthy figures stay live")
		assert.Equal(t, 3, snap.ActiveAccounts)
		assert.Equal(t, 14, snap.WeeklyTrades)
	})

	t.Run("total outage yields the full fallback", func(t *testing.T) {
		ledger := &stubLedger{
			totalActiveBalance: func(ctx context.Context) (decimal.Decimal, error) { return decimal.Zero, storeDown },
			activeAccountCount: func(ctx context.Context) (int, error) { return 0, storeDown },
		}
		perf := &stubPerf{
			weeklyProfitLoss: func(ctx context.Context, at time.Time) (decimal.Decimal, error) { return decimal.Zero, storeDown },
			weeklyTradeCount: func(ctx context.Context, at time.Time) (int, error) { return 0, storeDown },
		}
		svc := newTestService(t, ledger, perf)

		snap := svc.DashboardSnapshot(context.Background(), fallback)
		assert.True(t, snap.Degraded)
		assert.True(t, snap.TotalBalance.Equal(fallback.TotalBalance))
		assert.True(t, snap.WeeklyPnL.Equal(fallback.WeeklyPnL))
		assert.Equal(t, fallback.ActiveAccounts, snap.ActiveAccounts)
		assert.Equal(t, fallback.WeeklyTrades, snap.WeeklyTrades)
	})
}
