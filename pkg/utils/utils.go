package utils

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateOnly strips the time component, keeping the calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MonthSpan returns the number of monthly installments a lease running from
// start to end requires. The difference in calendar months is taken first;
// when the end day-of-month is on or past the start day-of-month the boundary
// month counts as a whole one. The result is never less than 1.
// Example: 2025-01-01 .. 2025-06-30 spans 6 months (Jan through Jun).
func MonthSpan(start, end time.Time) int {
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())

	if end.Day() >= start.Day() {
		months++
	}

	if months < 1 {
		return 1
	}

	return months
}

// AddMonths steps a date forward by n calendar months, not 30-day blocks.
// Overflow normalizes per time.AddDate (Jan 31 + 1 month lands in March).
func AddMonths(date time.Time, n int) time.Time {
	return date.AddDate(0, n, 0)
}

// GraceCutoff returns the latest expected date that is already past the
// grace window relative to now.
func GraceCutoff(now time.Time, graceDays int) time.Time {
	return DateOnly(now).AddDate(0, 0, -graceDays)
}

// RoundCurrency rounds a monetary amount to 2 decimal places.
func RoundCurrency(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// DecimalFromString converts string to decimal.Decimal
func DecimalFromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}
