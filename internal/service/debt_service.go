package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/arriendo/lease-engine/internal/cache"
	"github.com/arriendo/lease-engine/internal/domain"
	"github.com/arriendo/lease-engine/internal/repository"
	customError "github.com/arriendo/lease-engine/pkg/errors"
)

// DebtService builds the per-tenant debt report across all of a tenant's
// contracts. Reports are cached briefly; cache failures fall back to the
// stores and are only logged.
type DebtService struct {
	TenantRepo   repository.TenantRepository
	ContractRepo repository.ContractRepository
	PaymentRepo  repository.PaymentRepository
	Cache        cache.Cache
	CacheTTL     time.Duration
	Log          zerolog.Logger
}

func NewDebtService(
	tenantRepo repository.TenantRepository,
	contractRepo repository.ContractRepository,
	paymentRepo repository.PaymentRepository,
	reportCache cache.Cache,
	cacheTTL time.Duration,
	log zerolog.Logger,
) *DebtService {
	return &DebtService{
		TenantRepo:   tenantRepo,
		ContractRepo: contractRepo,
		PaymentRepo:  paymentRepo,
		Cache:        reportCache,
		CacheTTL:     cacheTTL,
		Log:          log,
	}
}

const debtCacheKeyPrefix = "debt:"

// DebtByNationalID resolves the tenant, collects every installment across
// the tenant's contracts and summarizes what is owed, broken down per state,
// with a derived classification.
func (s *DebtService) DebtByNationalID(ctx context.Context, nationalID string) (*domain.DebtReport, error) {
	if report := s.fromCache(ctx, nationalID); report != nil {
		return report, nil
	}

	tenant, err := s.TenantRepo.GetByNationalID(ctx, nationalID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if tenant == nil {
		return nil, customError.WrapTenantNotFound(nationalID)
	}

	contracts, err := s.ContractRepo.ListByTenant(ctx, tenant.ID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	payments := make([]*domain.Payment, 0)
	for _, contract := range contracts {
		contractPayments, err := s.PaymentRepo.ListByContract(ctx, contract.ID)
		if err != nil {
			return nil, customError.WrapDatabaseError(err)
		}
		payments = append(payments, contractPayments...)
	}

	if len(payments) == 0 {
		return nil, customError.WrapNoPaymentHistory(nationalID)
	}

	report := buildDebtReport(tenant, contracts, payments)
	s.toCache(ctx, nationalID, report)

	return report, nil
}

func buildDebtReport(tenant *domain.Tenant, contracts []*domain.Contract, payments []*domain.Payment) *domain.DebtReport {
	breakdown := domain.DebtBreakdown{
		Pending: decimal.Zero,
		Overdue: decimal.Zero,
		Partial: decimal.Zero,
	}
	counts := domain.DebtCounts{Total: len(payments)}

	var lastPaid *domain.LastPaid
	for _, payment := range payments {
		owed := payment.TotalAmount.Sub(payment.PaidAmount)

		switch payment.State {
		case domain.PaymentStatePending:
			counts.Pending++
			breakdown.Pending = breakdown.Pending.Add(owed)
		case domain.PaymentStateOverdue:
			counts.Overdue++
			breakdown.Overdue = breakdown.Overdue.Add(owed)
		case domain.PaymentStatePartial:
			counts.Partial++
			breakdown.Partial = breakdown.Partial.Add(owed)
		case domain.PaymentStatePaid:
			counts.Paid++
			if payment.ActualPaymentDate == nil {
				continue
			}
			if lastPaid == nil || payment.ActualPaymentDate.After(lastPaid.Date) {
				lastPaid = &domain.LastPaid{
					PaymentID: payment.ID,
					Date:      *payment.ActualPaymentDate,
					Amount:    payment.TotalAmount,
				}
			}
		}
	}

	totalOwed := breakdown.Pending.Add(breakdown.Overdue).Add(breakdown.Partial)
	upToDate := counts.Overdue == 0 && counts.Partial == 0

	level := domain.DebtLevelUpToDate
	if !upToDate {
		level = domain.DebtLevelPending
		if counts.Overdue > 0 {
			level = domain.DebtLevelDefault
		}
	}

	debtContracts := make([]domain.DebtContract, 0, len(contracts))
	for _, contract := range contracts {
		debtContract := domain.DebtContract{
			ID:          contract.ID,
			MonthlyRent: contract.MonthlyRent,
			State:       contract.State,
			StartDate:   contract.StartDate,
			EndDate:     contract.EndDate,
		}
		if contract.Property != nil {
			debtContract.PropertyAddress = contract.Property.Address
		}
		debtContracts = append(debtContracts, debtContract)
	}

	return &domain.DebtReport{
		Tenant: domain.DebtTenant{
			ID:         tenant.ID,
			NationalID: tenant.NationalID,
			FirstNames: tenant.FirstNames,
			LastNames:  tenant.LastNames,
			Email:      tenant.Email,
			Phone:      tenant.Phone,
			City:       tenant.City,
		},
		Contracts: debtContracts,
		Status: domain.DebtStatus{
			UpToDate:  upToDate,
			TotalOwed: totalOwed,
			Breakdown: breakdown,
			Counts:    counts,
			LastPaid:  lastPaid,
		},
		Level: level,
	}
}

func (s *DebtService) fromCache(ctx context.Context, nationalID string) *domain.DebtReport {
	if s.Cache == nil {
		return nil
	}

	raw, err := s.Cache.Get(ctx, debtCacheKeyPrefix+nationalID)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			s.Log.Warn().Err(err).Msg("debt cache read failed")
		}
		return nil
	}

	var report domain.DebtReport
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		s.Log.Warn().Err(err).Msg("debt cache entry unreadable")
		return nil
	}

	return &report
}

func (s *DebtService) toCache(ctx context.Context, nationalID string, report *domain.DebtReport) {
	if s.Cache == nil {
		return
	}

	raw, err := json.Marshal(report)
	if err != nil {
		s.Log.Warn().Err(err).Msg("debt cache encode failed")
		return
	}

	if err := s.Cache.Set(ctx, debtCacheKeyPrefix+nationalID, string(raw), s.CacheTTL); err != nil {
		s.Log.Warn().Err(err).Msg("debt cache write failed")
	}
}
