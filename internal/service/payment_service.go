package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/arriendo/lease-engine/internal/domain"
	"github.com/arriendo/lease-engine/internal/repository"
	customError "github.com/arriendo/lease-engine/pkg/errors"
	"github.com/arriendo/lease-engine/pkg/utils"
)

// PaymentService is the single writer of payment state: every mutation path
// keeps the stored state synchronized with the amounts, and reads that find
// them diverged fail loudly instead of guessing.
type PaymentService struct {
	PaymentRepo  repository.PaymentRepository
	ContractRepo repository.ContractRepository
	GraceDays    int
	Log          zerolog.Logger
}

func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	contractRepo repository.ContractRepository,
	graceDays int,
	log zerolog.Logger,
) *PaymentService {
	return &PaymentService{
		PaymentRepo:  paymentRepo,
		ContractRepo: contractRepo,
		GraceDays:    graceDays,
		Log:          log,
	}
}

// Create registers a single PENDING installment outside the generated
// schedule, defaulting the amount to the contract's monthly rent.
func (s *PaymentService) Create(ctx context.Context, request *domain.CreatePaymentRequest) (*domain.Payment, error) {
	contract, err := s.ContractRepo.GetByID(ctx, request.ContractID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if contract == nil {
		return nil, customError.WrapContractNotFound(request.ContractID.String())
	}

	totalAmount := contract.MonthlyRent
	if request.TotalAmount != nil {
		totalAmount = utils.RoundCurrency(*request.TotalAmount)
	}
	if !totalAmount.IsPositive() {
		return nil, customError.WrapInvalidAmount("total amount must be positive")
	}

	now := time.Now().UTC()
	payment := &domain.Payment{
		ID:           uuid.New(),
		ContractID:   request.ContractID,
		TotalAmount:  totalAmount,
		PaidAmount:   decimal.Zero,
		State:        domain.PaymentStatePending,
		ExpectedDate: utils.DateOnly(request.ExpectedDate),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.PaymentRepo.Create(ctx, payment); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return payment, nil
}

// RecordPayment applies an abono against an installment. Partial amounts move
// it to PARTIAL; completing the total moves it to PAID and stamps the actual
// payment date. PAID and OVERDUE installments accept no further abonos.
func (s *PaymentService) RecordPayment(ctx context.Context, id uuid.UUID, request *domain.RecordPaymentRequest) (*domain.Payment, error) {
	payment, err := s.loadConsistent(ctx, id)
	if err != nil {
		return nil, err
	}

	if payment.State == domain.PaymentStatePaid {
		return nil, customError.WrapPaymentAlreadyPaid(id.String())
	}
	if payment.State == domain.PaymentStateOverdue {
		return nil, customError.WrapPaymentOverdue(id.String())
	}

	if !request.Amount.IsPositive() {
		return nil, customError.WrapInvalidAmount("abono amount must be positive")
	}

	newPaid := payment.PaidAmount.Add(request.Amount)
	if newPaid.GreaterThan(payment.TotalAmount) {
		return nil, customError.WrapOverpayment(id.String())
	}

	payment.PaidAmount = newPaid
	if newPaid.Equal(payment.TotalAmount) {
		payment.State = domain.PaymentStatePaid
		paidOn := utils.DateOnly(time.Now().UTC())
		if request.PaymentDate != nil {
			paidOn = utils.DateOnly(*request.PaymentDate)
		}
		payment.ActualPaymentDate = &paidOn
	} else {
		payment.State = domain.PaymentStatePartial
	}

	if err := s.PaymentRepo.Update(ctx, payment); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.Log.Info().
		Str("payment_id", id.String()).
		Str("state", payment.State).
		Str("paid_amount", payment.PaidAmount.String()).
		Msg("abono recorded")

	return payment, nil
}

// Update applies a generic field patch. Forbidden once the installment is
// fully paid.
func (s *PaymentService) Update(ctx context.Context, id uuid.UUID, patch *domain.UpdatePaymentRequest) (*domain.Payment, error) {
	payment, err := s.loadConsistent(ctx, id)
	if err != nil {
		return nil, err
	}

	if payment.State == domain.PaymentStatePaid {
		return nil, customError.WrapPaymentAlreadyPaid(id.String())
	}

	if patch.TotalAmount != nil {
		totalAmount := utils.RoundCurrency(*patch.TotalAmount)
		if !totalAmount.IsPositive() {
			return nil, customError.WrapInvalidAmount("total amount must be positive")
		}
		// Shrinking the total below or onto the paid amount would desync
		// state from amounts.
		if totalAmount.LessThanOrEqual(payment.PaidAmount) && payment.PaidAmount.IsPositive() {
			return nil, customError.WrapInvalidAmount("total amount must exceed the paid amount")
		}
		payment.TotalAmount = totalAmount
	}

	if patch.ExpectedDate != nil {
		payment.ExpectedDate = utils.DateOnly(*patch.ExpectedDate)
	}

	if err := s.PaymentRepo.Update(ctx, payment); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return payment, nil
}

func (s *PaymentService) Get(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	return s.loadConsistent(ctx, id)
}

func (s *PaymentService) ListByContract(ctx context.Context, contractID uuid.UUID) ([]*domain.Payment, error) {
	payments, err := s.PaymentRepo.ListByContract(ctx, contractID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return payments, nil
}

func (s *PaymentService) ListByState(ctx context.Context, state string) ([]*domain.Payment, error) {
	if !domain.ValidPaymentState(state) {
		return nil, customError.WrapInvalidState(state)
	}

	payments, err := s.PaymentRepo.ListByState(ctx, state)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return payments, nil
}

func (s *PaymentService) Search(ctx context.Context, filter domain.PaymentFilter) ([]*domain.Payment, error) {
	if filter.State != "" && !domain.ValidPaymentState(filter.State) {
		return nil, customError.WrapInvalidState(filter.State)
	}

	payments, err := s.PaymentRepo.Search(ctx, filter)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return payments, nil
}

// Stats aggregates installment counts and amounts, optionally scoped to one
// contract.
func (s *PaymentService) Stats(ctx context.Context, contractID uuid.UUID) (*domain.PaymentStats, error) {
	payments, err := s.PaymentRepo.Search(ctx, domain.PaymentFilter{ContractID: contractID})
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	stats := &domain.PaymentStats{
		Total:     len(payments),
		TotalDue:  decimal.Zero,
		TotalPaid: decimal.Zero,
		TotalOwed: decimal.Zero,
	}

	for _, payment := range payments {
		stats.TotalDue = stats.TotalDue.Add(payment.TotalAmount)
		stats.TotalPaid = stats.TotalPaid.Add(payment.PaidAmount)

		switch payment.State {
		case domain.PaymentStatePending:
			stats.Pending++
		case domain.PaymentStatePartial:
			stats.Partial++
		case domain.PaymentStatePaid:
			stats.Paid++
		case domain.PaymentStateOverdue:
			stats.Overdue++
		}
	}

	stats.TotalOwed = stats.TotalDue.Sub(stats.TotalPaid)
	return stats, nil
}

// RunOverdueSweep ages every unpaid installment whose expected date is past
// the grace window into OVERDUE. Per-item failures are logged and skipped so
// one bad record does not abort the batch. Repeated runs only touch
// installments not yet flagged.
func (s *PaymentService) RunOverdueSweep(ctx context.Context) (*domain.SweepResult, error) {
	cutoff := utils.GraceCutoff(time.Now().UTC(), s.GraceDays)
	excluded := []string{domain.PaymentStatePaid, domain.PaymentStateOverdue}

	stale, err := s.PaymentRepo.ListOlderThan(ctx, cutoff, excluded)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	result := &domain.SweepResult{Processed: len(stale)}
	for _, payment := range stale {
		payment.State = domain.PaymentStateOverdue

		if err := s.PaymentRepo.Update(ctx, payment); err != nil {
			s.Log.Error().
				Err(err).
				Str("payment_id", payment.ID.String()).
				Msg("failed to flag payment overdue")
			continue
		}

		result.OverdueCount++
	}

	s.Log.Info().
		Int("processed", result.Processed).
		Int("overdue", result.OverdueCount).
		Msg("overdue sweep finished")

	return result, nil
}

// loadConsistent fetches a payment and enforces the stored-state/amount
// invariant before any caller acts on it.
func (s *PaymentService) loadConsistent(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	payment, err := s.PaymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if payment == nil {
		return nil, customError.WrapPaymentNotFound(id.String())
	}

	if !payment.StateConsistent() {
		s.Log.Error().
			Str("payment_id", payment.ID.String()).
			Str("state", payment.State).
			Str("paid", payment.PaidAmount.String()).
			Str("total", payment.TotalAmount.String()).
			Msg("payment state drifted from amounts")
		return nil, customError.WrapStateMismatch(id.String())
	}

	return payment, nil
}
