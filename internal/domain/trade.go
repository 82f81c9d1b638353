package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TradeStatus represents the lifecycle state reported in a trade export.
type TradeStatus string

// TradeClosed marks a trade whose profit/loss is final. Only closed trades
// are retained by ingestion.
const TradeClosed TradeStatus = "CLOSED"

// TradeRecord is a single trade parsed from a weekly export file. It is
// transient: consumed immediately to compute aggregate statistics and never
// persisted on its own.
type TradeRecord struct {
	TradeID    string
	Instrument string
	ProfitLoss decimal.Decimal // Signed; negative for losers
	ClosedAt   time.Time       // Zero when the export carried an unparsable timestamp
	Status     TradeStatus
}

// TradeStats aggregates a batch of retained trades. MaxWin and MinWin only
// consider trades with strictly positive profit/loss and are zero when there
// are none.
type TradeStats struct {
	TotalProfit decimal.Decimal
	TotalTrades int
	MaxWin      decimal.Decimal
	MinWin      decimal.Decimal
}
