package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/arriendo/lease-engine/internal/domain"
	"github.com/arriendo/lease-engine/internal/repository"
	customError "github.com/arriendo/lease-engine/pkg/errors"
)

var oneHundred = decimal.NewFromInt(100)

// ReportService produces read-only income reports over the installment
// schedule, keyed by expected dates.
type ReportService struct {
	PaymentRepo repository.PaymentRepository
}

func NewReportService(paymentRepo repository.PaymentRepository) *ReportService {
	return &ReportService{PaymentRepo: paymentRepo}
}

// MonthlyIncome compares the rent expected in one calendar month against
// what was fully collected.
func (s *ReportService) MonthlyIncome(ctx context.Context, year, month int) (*domain.MonthlyIncomeReport, error) {
	if month < 1 || month > 12 {
		return nil, customError.WrapInvalidAmount("month must be between 1 and 12")
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)

	payments, err := s.PaymentRepo.ListByExpectedDateRange(ctx, from, to)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	report := &domain.MonthlyIncomeReport{
		Year:           year,
		Month:          month,
		TotalExpected:  decimal.Zero,
		TotalCollected: decimal.Zero,
		ExpectedCount:  len(payments),
	}

	for _, payment := range payments {
		report.TotalExpected = report.TotalExpected.Add(payment.TotalAmount)
		if payment.State == domain.PaymentStatePaid {
			report.TotalCollected = report.TotalCollected.Add(payment.TotalAmount)
			report.CompletedCount++
		}
	}

	report.TotalOutstanding = report.TotalExpected.Sub(report.TotalCollected)
	report.PercentCollected = percentOf(report.TotalCollected, report.TotalExpected)

	return report, nil
}

// AnnualIncome rolls the twelve monthly reports of a year into one summary.
func (s *ReportService) AnnualIncome(ctx context.Context, year int) (*domain.AnnualIncomeReport, error) {
	report := &domain.AnnualIncomeReport{
		Year:           year,
		TotalExpected:  decimal.Zero,
		TotalCollected: decimal.Zero,
		Months:         make([]domain.MonthlyIncomeReport, 0, 12),
	}

	for month := 1; month <= 12; month++ {
		monthly, err := s.MonthlyIncome(ctx, year, month)
		if err != nil {
			return nil, err
		}

		report.TotalExpected = report.TotalExpected.Add(monthly.TotalExpected)
		report.TotalCollected = report.TotalCollected.Add(monthly.TotalCollected)
		report.Months = append(report.Months, *monthly)
	}

	report.TotalOutstanding = report.TotalExpected.Sub(report.TotalCollected)
	report.PercentCollected = percentOf(report.TotalCollected, report.TotalExpected)

	return report, nil
}

func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Mul(oneHundred).Div(whole).Round(2)
}
