package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/arriendo/lease-engine/internal/domain"
	customError "github.com/arriendo/lease-engine/pkg/errors"
	"github.com/arriendo/lease-engine/pkg/utils"
)

func pendingPayment(id uuid.UUID, total int64) *domain.Payment {
	return &domain.Payment{
		ID:           id,
		ContractID:   uuid.New(),
		TotalAmount:  decimal.NewFromInt(total),
		PaidAmount:   decimal.Zero,
		State:        domain.PaymentStatePending,
		ExpectedDate: date(2025, time.June, 1),
	}
}

func TestRecordPayment_PartialThenFull(t *testing.T) {
	mockPaymentRepo := &MockPaymentRepository{}

	service := &PaymentService{
		PaymentRepo:  mockPaymentRepo,
		ContractRepo: &MockContractRepository{},
		GraceDays:    3,
	}

	paymentID := uuid.New()
	payment := pendingPayment(paymentID, 1000)

	mockPaymentRepo.On("GetByID", mock.Anything, paymentID).Return(payment, nil)
	mockPaymentRepo.On("Update", mock.Anything, payment).Return(nil)

	// First abono covers 600 of 1000.
	updated, err := service.RecordPayment(context.Background(), paymentID, &domain.RecordPaymentRequest{
		Amount: decimal.NewFromInt(600),
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.PaymentStatePartial, updated.State)
	assert.True(t, updated.PaidAmount.Equal(decimal.NewFromInt(600)))
	assert.Nil(t, updated.ActualPaymentDate)

	// Second abono completes the installment.
	paidOn := date(2025, time.June, 3)
	updated, err = service.RecordPayment(context.Background(), paymentID, &domain.RecordPaymentRequest{
		Amount:      decimal.NewFromInt(400),
		PaymentDate: &paidOn,
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.PaymentStatePaid, updated.State)
	assert.True(t, updated.PaidAmount.Equal(updated.TotalAmount))
	assert.NotNil(t, updated.ActualPaymentDate)
	assert.Equal(t, paidOn, *updated.ActualPaymentDate)

	mockPaymentRepo.AssertNumberOfCalls(t, "Update", 2)
}

func TestRecordPayment_RejectsOverpayment(t *testing.T) {
	mockPaymentRepo := &MockPaymentRepository{}

	service := &PaymentService{
		PaymentRepo:  mockPaymentRepo,
		ContractRepo: &MockContractRepository{},
	}

	paymentID := uuid.New()
	payment := pendingPayment(paymentID, 1000)
	payment.PaidAmount = decimal.NewFromInt(600)
	payment.State = domain.PaymentStatePartial

	mockPaymentRepo.On("GetByID", mock.Anything, paymentID).Return(payment, nil)

	_, err := service.RecordPayment(context.Background(), paymentID, &domain.RecordPaymentRequest{
		Amount: decimal.NewFromInt(500),
	})

	assert.Error(t, err)
	assert.True(t, errors.Is(err, customError.ErrInvalidArgument))

	var businessErr *customError.BusinessError
	assert.True(t, errors.As(err, &businessErr))
	assert.Equal(t, customError.ErrCodeOverpayment, businessErr.Code)
	mockPaymentRepo.AssertNotCalled(t, "Update")
}

func TestRecordPayment_RejectsPaidAndOverdue(t *testing.T) {
	tests := []struct {
		name  string
		state string
		paid  int64
	}{
		{"paid installment", domain.PaymentStatePaid, 1000},
		{"overdue installment", domain.PaymentStateOverdue, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockPaymentRepo := &MockPaymentRepository{}

			service := &PaymentService{
				PaymentRepo:  mockPaymentRepo,
				ContractRepo: &MockContractRepository{},
			}

			paymentID := uuid.New()
			payment := pendingPayment(paymentID, 1000)
			payment.State = tt.state
			payment.PaidAmount = decimal.NewFromInt(tt.paid)

			mockPaymentRepo.On("GetByID", mock.Anything, paymentID).Return(payment, nil)

			_, err := service.RecordPayment(context.Background(), paymentID, &domain.RecordPaymentRequest{
				Amount: decimal.NewFromInt(100),
			})

			assert.Error(t, err)
			assert.True(t, errors.Is(err, customError.ErrInvalidArgument))
			mockPaymentRepo.AssertNotCalled(t, "Update")
		})
	}
}

func TestRecordPayment_RejectsNonPositiveAmount(t *testing.T) {
	mockPaymentRepo := &MockPaymentRepository{}

	service := &PaymentService{
		PaymentRepo:  mockPaymentRepo,
		ContractRepo: &MockContractRepository{},
	}

	paymentID := uuid.New()
	mockPaymentRepo.On("GetByID", mock.Anything, paymentID).Return(pendingPayment(paymentID, 1000), nil)

	_, err := service.RecordPayment(context.Background(), paymentID, &domain.RecordPaymentRequest{
		Amount: decimal.Zero,
	})

	assert.Error(t, err)
	assert.True(t, errors.Is(err, customError.ErrInvalidArgument))
}

func TestRecordPayment_DetectsStateDrift(t *testing.T) {
	mockPaymentRepo := &MockPaymentRepository{}

	service := &PaymentService{
		PaymentRepo:  mockPaymentRepo,
		ContractRepo: &MockContractRepository{},
	}

	paymentID := uuid.New()
	payment := pendingPayment(paymentID, 1000)
	// PENDING with money on it is inconsistent.
	payment.PaidAmount = decimal.NewFromInt(200)

	mockPaymentRepo.On("GetByID", mock.Anything, paymentID).Return(payment, nil)

	_, err := service.RecordPayment(context.Background(), paymentID, &domain.RecordPaymentRequest{
		Amount: decimal.NewFromInt(100),
	})

	assert.Error(t, err)

	var businessErr *customError.BusinessError
	assert.True(t, errors.As(err, &businessErr))
	assert.Equal(t, customError.ErrCodeStateMismatch, businessErr.Code)
}

func TestUpdatePayment_ForbiddenOncePaid(t *testing.T) {
	mockPaymentRepo := &MockPaymentRepository{}

	service := &PaymentService{
		PaymentRepo:  mockPaymentRepo,
		ContractRepo: &MockContractRepository{},
	}

	paymentID := uuid.New()
	payment := pendingPayment(paymentID, 1000)
	payment.State = domain.PaymentStatePaid
	payment.PaidAmount = payment.TotalAmount

	mockPaymentRepo.On("GetByID", mock.Anything, paymentID).Return(payment, nil)

	newTotal := decimal.NewFromInt(1200)
	_, err := service.Update(context.Background(), paymentID, &domain.UpdatePaymentRequest{
		TotalAmount: &newTotal,
	})

	assert.Error(t, err)
	assert.True(t, errors.Is(err, customError.ErrInvalidArgument))
}

func TestUpdatePayment_TotalMustExceedPaid(t *testing.T) {
	mockPaymentRepo := &MockPaymentRepository{}

	service := &PaymentService{
		PaymentRepo:  mockPaymentRepo,
		ContractRepo: &MockContractRepository{},
	}

	paymentID := uuid.New()
	payment := pendingPayment(paymentID, 1000)
	payment.State = domain.PaymentStatePartial
	payment.PaidAmount = decimal.NewFromInt(600)

	mockPaymentRepo.On("GetByID", mock.Anything, paymentID).Return(payment, nil)

	newTotal := decimal.NewFromInt(600)
	_, err := service.Update(context.Background(), paymentID, &domain.UpdatePaymentRequest{
		TotalAmount: &newTotal,
	})

	assert.Error(t, err)
	assert.True(t, errors.Is(err, customError.ErrInvalidArgument))
}

func TestRunOverdueSweep_FlagsStaleInstallments(t *testing.T) {
	mockPaymentRepo := &MockPaymentRepository{}

	service := &PaymentService{
		PaymentRepo:  mockPaymentRepo,
		ContractRepo: &MockContractRepository{},
		GraceDays:    3,
	}

	stale := []*domain.Payment{
		pendingPayment(uuid.New(), 1000),
		pendingPayment(uuid.New(), 800),
	}
	stale[1].State = domain.PaymentStatePartial
	stale[1].PaidAmount = decimal.NewFromInt(300)

	expectedCutoff := utils.GraceCutoff(time.Now().UTC(), 3)

	mockPaymentRepo.On("ListOlderThan", mock.Anything, mock.MatchedBy(func(cutoff time.Time) bool {
		// The cutoff is derived from the wall clock; a day of slack keeps
		// this robust around midnight.
		return !cutoff.After(expectedCutoff.AddDate(0, 0, 1)) && !cutoff.Before(expectedCutoff.AddDate(0, 0, -1))
	}), []string{domain.PaymentStatePaid, domain.PaymentStateOverdue}).Return(stale, nil)
	mockPaymentRepo.On("Update", mock.Anything, mock.MatchedBy(func(payment *domain.Payment) bool {
		return payment.State == domain.PaymentStateOverdue
	})).Return(nil)

	result, err := service.RunOverdueSweep(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 2, result.OverdueCount)

	mockPaymentRepo.AssertExpectations(t)
}

func TestRunOverdueSweep_ContinuesPastItemFailures(t *testing.T) {
	mockPaymentRepo := &MockPaymentRepository{}

	service := &PaymentService{
		PaymentRepo:  mockPaymentRepo,
		ContractRepo: &MockContractRepository{},
		GraceDays:    3,
	}

	broken := pendingPayment(uuid.New(), 500)
	healthy := pendingPayment(uuid.New(), 700)

	mockPaymentRepo.On("ListOlderThan", mock.Anything, mock.Anything, mock.Anything).
		Return([]*domain.Payment{broken, healthy}, nil)
	mockPaymentRepo.On("Update", mock.Anything, broken).Return(errors.New("write failed"))
	mockPaymentRepo.On("Update", mock.Anything, healthy).Return(nil)

	result, err := service.RunOverdueSweep(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 1, result.OverdueCount)
}

func TestCreatePayment_DefaultsAmountToMonthlyRent(t *testing.T) {
	mockPaymentRepo := &MockPaymentRepository{}
	mockContractRepo := &MockContractRepository{}

	service := &PaymentService{
		PaymentRepo:  mockPaymentRepo,
		ContractRepo: mockContractRepo,
	}

	contractID := uuid.New()
	contract := testContract(contractID, date(2025, time.January, 1), date(2026, time.January, 1), 1250)

	mockContractRepo.On("GetByID", mock.Anything, contractID).Return(contract, nil)
	mockPaymentRepo.On("Create", mock.Anything, mock.MatchedBy(func(payment *domain.Payment) bool {
		return payment.TotalAmount.Equal(decimal.NewFromInt(1250)) &&
			payment.State == domain.PaymentStatePending &&
			payment.PaidAmount.IsZero()
	})).Return(nil)

	payment, err := service.Create(context.Background(), &domain.CreatePaymentRequest{
		ContractID:   contractID,
		ExpectedDate: date(2025, time.July, 1),
	})

	assert.NoError(t, err)
	assert.Equal(t, date(2025, time.July, 1), payment.ExpectedDate)
	mockPaymentRepo.AssertExpectations(t)
}

func TestStats_AggregatesPerState(t *testing.T) {
	mockPaymentRepo := &MockPaymentRepository{}

	service := &PaymentService{
		PaymentRepo:  mockPaymentRepo,
		ContractRepo: &MockContractRepository{},
	}

	payments := []*domain.Payment{
		{State: domain.PaymentStatePaid, TotalAmount: decimal.NewFromInt(1000), PaidAmount: decimal.NewFromInt(1000)},
		{State: domain.PaymentStatePartial, TotalAmount: decimal.NewFromInt(1000), PaidAmount: decimal.NewFromInt(400)},
		{State: domain.PaymentStatePending, TotalAmount: decimal.NewFromInt(1000), PaidAmount: decimal.Zero},
		{State: domain.PaymentStateOverdue, TotalAmount: decimal.NewFromInt(1000), PaidAmount: decimal.Zero},
	}

	mockPaymentRepo.On("Search", mock.Anything, domain.PaymentFilter{}).Return(payments, nil)

	stats, err := service.Stats(context.Background(), uuid.Nil)

	assert.NoError(t, err)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 1, stats.Paid)
	assert.Equal(t, 1, stats.Partial)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 1, stats.Overdue)
	assert.True(t, stats.TotalDue.Equal(decimal.NewFromInt(4000)))
	assert.True(t, stats.TotalPaid.Equal(decimal.NewFromInt(1400)))
	assert.True(t, stats.TotalOwed.Equal(decimal.NewFromInt(2600)))
}
