// Package ingest parses weekly trade-export files and derives the aggregate
// statistics that feed a performance record.
package ingest

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"fxledger/internal/domain"
)

// minFields is the minimum column count a data row must decompose into.
// Shorter rows are silently skipped; export files are messy and leniency
// here is contractual, not a bug.
const minFields = 20

// Positional columns consumed from the export format.
const (
	colTradeID    = 0
	colInstrument = 3
	colStatus     = 12
	colProfitLoss = 16
	colClosedAt   = 19
)

// timestampLayouts are tried in order when parsing close timestamps.
// Export tools disagree on formatting; an unparsable value defaults to the
// zero time rather than failing the row.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006.01.02 15:04:05",
	"02.01.2006 15:04:05",
	"2006-01-02",
}

// ParseFile reads a trade-export file and returns the retained trades.
// The only error condition is an unreadable file; malformed content is
// tolerated per Parse.
func ParseFile(path string) ([]domain.TradeRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trade export %q: %w", path, err)
	}
	defer f.Close()

	trades, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read trade export %q: %w", path, err)
	}
	return trades, nil
}

// Parse reads a comma-separated trade export: the first line is a header and
// is skipped; blank lines and rows with fewer than 20 fields are dropped;
// unparsable numeric or timestamp fields default to zero values. Only trades
// with status CLOSED are retained.
func Parse(r io.Reader) ([]domain.TradeRecord, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	trades := make([]domain.TradeRecord, 0)
	header := true
	for sc.Scan() {
		line := sc.Text()
		if header {
			header = false
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := splitLine(line)
		if len(fields) < minFields {
			continue
		}

		trade := domain.TradeRecord{
			TradeID:    fields[colTradeID],
			Instrument: fields[colInstrument],
			ProfitLoss: parseDecimal(fields[colProfitLoss]),
			ClosedAt:   parseTimestamp(fields[colClosedAt]),
			Status:     domain.TradeStatus(fields[colStatus]),
		}
		if trade.Status != domain.TradeClosed {
			continue
		}
		trades = append(trades, trade)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return trades, nil
}

// ComputeStats aggregates retained trades. Total profit sums winners and
// losers alike; max and min win only consider trades with strictly positive
// profit/loss and stay zero when there are none. Empty input yields the
// all-zero result.
func ComputeStats(trades []domain.TradeRecord) domain.TradeStats {
	stats := domain.TradeStats{
		TotalProfit: decimal.Zero,
		MaxWin:      decimal.Zero,
		MinWin:      decimal.Zero,
	}

	for _, trade := range trades {
		stats.TotalTrades++
		stats.TotalProfit = stats.TotalProfit.Add(trade.ProfitLoss)

		if !trade.ProfitLoss.IsPositive() {
			continue
		}
		if stats.MaxWin.IsZero() || trade.ProfitLoss.GreaterThan(stats.MaxWin) {
			stats.MaxWin = trade.ProfitLoss
		}
		if stats.MinWin.IsZero() || trade.ProfitLoss.LessThan(stats.MinWin) {
			stats.MinWin = trade.ProfitLoss
		}
	}
	return stats
}

// splitLine splits on commas while respecting double-quote-enclosed fields:
// a quote toggles the in-quotes state and is dropped, a comma inside quotes
// is literal. There is no escaped-quote handling; the export format does not
// produce any.
func splitLine(line string) []string {
	fields := make([]string, 0, minFields)
	var field strings.Builder
	inQuotes := false

	for _, c := range line {
		switch {
		case c == '"':
			inQuotes = !inQuotes
		case c == ',' && !inQuotes:
			fields = append(fields, field.String())
			field.Reset()
		default:
			field.WriteRune(c)
		}
	}
	return append(fields, field.String())
}

// parseDecimal parses a locale-invariant decimal, defaulting to zero on
// failure.
func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// parseTimestamp parses a close timestamp against the known layouts,
// defaulting to the zero time on failure.
func parseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts
		}
	}
	return time.Time{}
}
