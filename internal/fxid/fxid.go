// Package fxid produces the identifier that ties a trading account, a
// calendar week and a month together into one performance-record key.
package fxid

import (
	"fmt"
	"math"
	"time"
)

// Generate maps an account id and a trade date to the record key
// "{accountId}WK{week:02d}{month:02d}", e.g. "AC1WK0101". The year is
// deliberately not encoded; see PerformanceRecord. Pure function, no error
// conditions.
func Generate(accountID string, tradeDate time.Time) string {
	return fmt.Sprintf("%sWK%02d%02d", accountID, WeekOfMonth(tradeDate), int(tradeDate.Month()))
}

// WeekOfMonth computes the week-of-month for a date using an ISO-week-aligned
// rule: advance day by day until the day after the current one is a Monday
// (snapping forward to the Sunday that ends the current week), then take
// ceil(days-since-first-of-month / 7). Yields 1-5 depending on month length
// and weekday alignment.
//
// The snap can cross into the next month for dates in the last days of a
// month; the elapsed-day count still runs from the first of the original
// month, so such dates land in week 5. The fractional time-of-day component
// participates in the division, exactly as the ceil arithmetic implies.
func WeekOfMonth(date time.Time) int {
	firstOfMonth := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())

	d := date
	for d.AddDate(0, 0, 1).Weekday() != time.Monday {
		d = d.AddDate(0, 0, 1)
	}

	days := d.Sub(firstOfMonth).Hours() / 24
	return int(math.Ceil(days / 7))
}

// WeekMonthYear splits a date into the three period components a
// performance record carries alongside its generated key.
func WeekMonthYear(date time.Time) (week, month, year int) {
	return WeekOfMonth(date), int(date.Month()), date.Year()
}
