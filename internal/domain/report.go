package domain

import "github.com/shopspring/decimal"

// MonthlyIncomeReport compares expected rent against what was actually
// collected for one calendar month, keyed by installment expected dates.
type MonthlyIncomeReport struct {
	Year             int             `json:"year"`
	Month            int             `json:"month"`
	TotalExpected    decimal.Decimal `json:"total_expected"`
	TotalCollected   decimal.Decimal `json:"total_collected"`
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
	PercentCollected decimal.Decimal `json:"percent_collected"`
	ExpectedCount    int             `json:"expected_count"`
	CompletedCount   int             `json:"completed_count"`
}

type AnnualIncomeReport struct {
	Year             int                   `json:"year"`
	TotalExpected    decimal.Decimal       `json:"total_expected"`
	TotalCollected   decimal.Decimal       `json:"total_collected"`
	TotalOutstanding decimal.Decimal       `json:"total_outstanding"`
	PercentCollected decimal.Decimal       `json:"percent_collected"`
	Months           []MonthlyIncomeReport `json:"months"`
}
