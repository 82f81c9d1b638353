package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PerformanceRecord captures one account's trading results for one calendar
// week. FxID has the form "{accountId}WK{week:02d}{month:02d}"; the year is
// not encoded, so at most one record can exist per (account, week, month)
// regardless of year.
type PerformanceRecord struct {
	FxID       string // Primary identifier, produced by the fxid package
	AccountID  string
	Week       int // Week of month, 1-5
	Month      int // 1-12
	Year       int
	Results    decimal.Decimal // Aggregate result amount for the week
	RecordedAt time.Time
	Comments   string
	FilePath   string // Source trade-export file, if any
	UpdatedAt  time.Time // Zero until the record is first updated

	// Statistics derived from the ingested trade export.
	TotalTrades int
	TotalProfit decimal.Decimal
	MaxWin      decimal.Decimal
	MinWin      decimal.Decimal
}
