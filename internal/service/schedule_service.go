package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/arriendo/lease-engine/internal/domain"
	"github.com/arriendo/lease-engine/internal/repository"
	customError "github.com/arriendo/lease-engine/pkg/errors"
	"github.com/arriendo/lease-engine/pkg/utils"
)

// ScheduleService generates the monthly installment schedule for a contract.
// It never reaches back into the contract lifecycle; anything it needs about
// the contract comes from the contract store.
type ScheduleService struct {
	ContractRepo repository.ContractRepository
	PaymentRepo  repository.PaymentRepository
}

func NewScheduleService(
	contractRepo repository.ContractRepository,
	paymentRepo repository.PaymentRepository,
) *ScheduleService {
	return &ScheduleService{
		ContractRepo: contractRepo,
		PaymentRepo:  paymentRepo,
	}
}

// GenerateMonthly creates one PENDING installment per calendar month starting
// at the contract's start date. (contract, expected date) is the idempotency
// key: months that already have an installment are skipped, so re-running
// fills gaps without duplicating. Existing installments keep their original
// amount even if the rent has changed since.
func (s *ScheduleService) GenerateMonthly(ctx context.Context, contractID uuid.UUID, months int) ([]*domain.Payment, error) {
	if months < 1 {
		return nil, customError.WrapInvalidAmount("schedule months must be at least 1")
	}

	contract, err := s.ContractRepo.GetByID(ctx, contractID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if contract == nil {
		return nil, customError.WrapContractNotFound(contractID.String())
	}

	start := utils.DateOnly(contract.StartDate)
	now := time.Now().UTC()

	created := make([]*domain.Payment, 0, months)
	for i := 0; i < months; i++ {
		expectedDate := utils.AddMonths(start, i)

		existing, err := s.PaymentRepo.FindByContractAndDate(ctx, contractID, expectedDate)
		if err != nil {
			return nil, customError.WrapDatabaseError(err)
		}
		if existing != nil {
			continue
		}

		payment := &domain.Payment{
			ID:           uuid.New(),
			ContractID:   contractID,
			TotalAmount:  contract.MonthlyRent,
			PaidAmount:   decimal.Zero,
			State:        domain.PaymentStatePending,
			ExpectedDate: expectedDate,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		if err := s.PaymentRepo.Create(ctx, payment); err != nil {
			return nil, customError.WrapDatabaseError(err)
		}

		created = append(created, payment)
	}

	return created, nil
}
