package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/arriendo/lease-engine/internal/domain"
	customError "github.com/arriendo/lease-engine/pkg/errors"
)

func TestMonthlyIncome_SplitsExpectedAndCollected(t *testing.T) {
	mockPaymentRepo := &MockPaymentRepository{}
	service := &ReportService{PaymentRepo: mockPaymentRepo}

	payments := []*domain.Payment{
		{State: domain.PaymentStatePaid, TotalAmount: decimal.NewFromInt(1000), PaidAmount: decimal.NewFromInt(1000)},
		{State: domain.PaymentStatePaid, TotalAmount: decimal.NewFromInt(500), PaidAmount: decimal.NewFromInt(500)},
		{State: domain.PaymentStatePartial, TotalAmount: decimal.NewFromInt(1000), PaidAmount: decimal.NewFromInt(400)},
		{State: domain.PaymentStatePending, TotalAmount: decimal.NewFromInt(500), PaidAmount: decimal.Zero},
	}

	from := date(2025, time.March, 1)
	to := date(2025, time.March, 31)
	mockPaymentRepo.On("ListByExpectedDateRange", mock.Anything, from, to).Return(payments, nil)

	report, err := service.MonthlyIncome(context.Background(), 2025, 3)

	assert.NoError(t, err)
	assert.Equal(t, 2025, report.Year)
	assert.Equal(t, 3, report.Month)
	assert.Equal(t, 4, report.ExpectedCount)
	assert.Equal(t, 2, report.CompletedCount)
	assert.True(t, report.TotalExpected.Equal(decimal.NewFromInt(3000)))
	// Only fully paid installments count as collected.
	assert.True(t, report.TotalCollected.Equal(decimal.NewFromInt(1500)))
	assert.True(t, report.TotalOutstanding.Equal(decimal.NewFromInt(1500)))
	assert.True(t, report.PercentCollected.Equal(decimal.NewFromInt(50)))
}

func TestMonthlyIncome_EmptyMonthIsZeroPercent(t *testing.T) {
	mockPaymentRepo := &MockPaymentRepository{}
	service := &ReportService{PaymentRepo: mockPaymentRepo}

	mockPaymentRepo.On("ListByExpectedDateRange", mock.Anything, mock.Anything, mock.Anything).
		Return([]*domain.Payment{}, nil)

	report, err := service.MonthlyIncome(context.Background(), 2025, 7)

	assert.NoError(t, err)
	assert.True(t, report.TotalExpected.IsZero())
	assert.True(t, report.PercentCollected.IsZero())
}

func TestMonthlyIncome_RejectsBadMonth(t *testing.T) {
	service := &ReportService{PaymentRepo: &MockPaymentRepository{}}

	_, err := service.MonthlyIncome(context.Background(), 2025, 13)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, customError.ErrInvalidArgument))
}

func TestAnnualIncome_RollsUpTwelveMonths(t *testing.T) {
	mockPaymentRepo := &MockPaymentRepository{}
	service := &ReportService{PaymentRepo: mockPaymentRepo}

	payments := []*domain.Payment{
		{State: domain.PaymentStatePaid, TotalAmount: decimal.NewFromInt(100), PaidAmount: decimal.NewFromInt(100)},
	}

	mockPaymentRepo.On("ListByExpectedDateRange", mock.Anything, mock.Anything, mock.Anything).
		Return(payments, nil)

	report, err := service.AnnualIncome(context.Background(), 2025)

	assert.NoError(t, err)
	assert.Len(t, report.Months, 12)
	assert.True(t, report.TotalExpected.Equal(decimal.NewFromInt(1200)))
	assert.True(t, report.TotalCollected.Equal(decimal.NewFromInt(1200)))
	assert.True(t, report.PercentCollected.Equal(decimal.NewFromInt(100)))

	mockPaymentRepo.AssertNumberOfCalls(t, "ListByExpectedDateRange", 12)
}
