package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthSpan(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{
			name:  "Half year counts the boundary month",
			start: date(2025, time.January, 1),
			end:   date(2025, time.June, 30),
			want:  6,
		},
		{
			name:  "Mid-month to mid-month stays one",
			start: date(2025, time.January, 15),
			end:   date(2025, time.February, 14),
			want:  1,
		},
		{
			name:  "One day apart clamps to one",
			start: date(2025, time.January, 1),
			end:   date(2025, time.January, 2),
			want:  1,
		},
		{
			name:  "Full calendar year",
			start: date(2025, time.January, 1),
			end:   date(2025, time.December, 31),
			want:  12,
		},
		{
			name:  "Across year boundary",
			start: date(2024, time.November, 1),
			end:   date(2025, time.February, 28),
			want:  4,
		},
		{
			name:  "End day past start day adds the partial month",
			start: date(2025, time.January, 10),
			end:   date(2025, time.March, 10),
			want:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MonthSpan(tt.start, tt.end))
		})
	}
}

func TestAddMonths(t *testing.T) {
	start := date(2025, time.January, 1)

	assert.Equal(t, date(2025, time.January, 1), AddMonths(start, 0))
	assert.Equal(t, date(2025, time.February, 1), AddMonths(start, 1))
	assert.Equal(t, date(2025, time.June, 1), AddMonths(start, 5))
	assert.Equal(t, date(2026, time.January, 1), AddMonths(start, 12))
}

func TestGraceCutoff(t *testing.T) {
	now := time.Date(2025, time.March, 10, 15, 4, 5, 0, time.UTC)

	cutoff := GraceCutoff(now, 3)

	assert.Equal(t, date(2025, time.March, 7), cutoff)
}

func TestDateOnly(t *testing.T) {
	ts := time.Date(2025, time.March, 10, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, date(2025, time.March, 10), DateOnly(ts))
}

func TestRoundCurrency(t *testing.T) {
	amount := decimal.RequireFromString("1000.005")
	assert.True(t, RoundCurrency(amount).Equal(decimal.RequireFromString("1000.01")))
}
