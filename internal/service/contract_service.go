package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/arriendo/lease-engine/internal/domain"
	"github.com/arriendo/lease-engine/internal/repository"
	customError "github.com/arriendo/lease-engine/pkg/errors"
	"github.com/arriendo/lease-engine/pkg/utils"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// ContractService orchestrates the contract lifecycle. State transitions keep
// three facts consistent: the property's availability, the tenant's
// availability and the generated installment schedule. All writes of one
// transition run in a single transaction.
type ContractService struct {
	ContractRepo repository.ContractRepository
	TenantRepo   repository.TenantRepository
	PropertyRepo repository.PropertyRepository
	Schedules    *ScheduleService
	Tx           repository.TxManager
	Log          zerolog.Logger
}

func NewContractService(
	contractRepo repository.ContractRepository,
	tenantRepo repository.TenantRepository,
	propertyRepo repository.PropertyRepository,
	schedules *ScheduleService,
	tx repository.TxManager,
	log zerolog.Logger,
) *ContractService {
	return &ContractService{
		ContractRepo: contractRepo,
		TenantRepo:   tenantRepo,
		PropertyRepo: propertyRepo,
		Schedules:    schedules,
		Tx:           tx,
		Log:          log,
	}
}

// Create validates the references and the date range, persists the contract
// and, when it starts out ACTIVE, marks the property and tenant unavailable
// and generates the full installment schedule.
func (s *ContractService) Create(ctx context.Context, request *domain.CreateContractRequest) (*domain.Contract, error) {
	state := request.State
	if state == "" {
		state = domain.ContractStateDraft
	}
	if !domain.ValidContractState(state) {
		return nil, customError.WrapInvalidState(state)
	}

	if !request.MonthlyRent.IsPositive() {
		return nil, customError.WrapInvalidAmount("monthly rent must be positive")
	}

	tenant, err := s.TenantRepo.GetByID(ctx, request.TenantID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if tenant == nil || !tenant.Active {
		return nil, customError.WrapTenantNotFound(request.TenantID.String())
	}

	property, err := s.PropertyRepo.GetByID(ctx, request.PropertyID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if property == nil {
		return nil, customError.WrapPropertyNotFound(request.PropertyID.String())
	}
	if !property.Available {
		return nil, customError.WrapPropertyUnavailable(property.ID.String())
	}

	startDate := utils.DateOnly(request.StartDate)
	endDate := utils.DateOnly(request.EndDate)
	if !startDate.Before(endDate) {
		return nil, customError.WrapInvalidDateRange()
	}

	existing, err := s.ContractRepo.FindActiveByProperty(ctx, request.PropertyID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if existing != nil {
		return nil, customError.WrapActiveContractExists(request.PropertyID.String())
	}

	now := time.Now().UTC()
	contract := &domain.Contract{
		ID:          uuid.New(),
		TenantID:    request.TenantID,
		PropertyID:  request.PropertyID,
		StartDate:   startDate,
		EndDate:     endDate,
		MonthlyRent: utils.RoundCurrency(request.MonthlyRent),
		State:       state,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.Tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.ContractRepo.Create(ctx, contract); err != nil {
			return customError.WrapDatabaseError(err)
		}

		if contract.State != domain.ContractStateActive {
			return nil
		}

		return s.activate(ctx, contract)
	})
	if err != nil {
		return nil, err
	}

	s.Log.Info().
		Str("contract_id", contract.ID.String()).
		Str("state", contract.State).
		Msg("contract created")

	return s.Get(ctx, contract.ID)
}

// activate flips availability and generates the schedule for the contract's
// current date range. Runs inside the caller's transaction.
func (s *ContractService) activate(ctx context.Context, contract *domain.Contract) error {
	if err := s.PropertyRepo.SetAvailability(ctx, contract.PropertyID, false); err != nil {
		return customError.WrapDatabaseError(err)
	}
	if err := s.TenantRepo.SetAvailability(ctx, contract.TenantID, false); err != nil {
		return customError.WrapDatabaseError(err)
	}

	months := utils.MonthSpan(contract.StartDate, contract.EndDate)
	if _, err := s.Schedules.GenerateMonthly(ctx, contract.ID, months); err != nil {
		return err
	}

	return nil
}

// Update applies a partial patch. Reference changes are validated against
// availability, date changes against ordering, and state changes carry the
// availability and schedule side effects.
func (s *ContractService) Update(ctx context.Context, id uuid.UUID, patch *domain.UpdateContractRequest) (*domain.Contract, error) {
	contract, err := s.ContractRepo.GetByID(ctx, id)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if contract == nil {
		return nil, customError.WrapContractNotFound(id.String())
	}

	oldState := contract.State
	oldPropertyID := contract.PropertyID
	oldTenantID := contract.TenantID

	propertyChanged := patch.PropertyID != nil && *patch.PropertyID != contract.PropertyID
	if propertyChanged {
		newProperty, err := s.PropertyRepo.GetByID(ctx, *patch.PropertyID)
		if err != nil {
			return nil, customError.WrapDatabaseError(err)
		}
		if newProperty == nil {
			return nil, customError.WrapPropertyNotFound(patch.PropertyID.String())
		}
		if !newProperty.Available {
			return nil, customError.WrapPropertyUnavailable(newProperty.ID.String())
		}
	}

	if patch.TenantID != nil && *patch.TenantID != contract.TenantID {
		newTenant, err := s.TenantRepo.GetByID(ctx, *patch.TenantID)
		if err != nil {
			return nil, customError.WrapDatabaseError(err)
		}
		if newTenant == nil || !newTenant.Active {
			return nil, customError.WrapTenantNotFound(patch.TenantID.String())
		}
	}

	// Merge dates and re-validate ordering whenever either changes.
	startDate := contract.StartDate
	endDate := contract.EndDate
	datesChanged := patch.StartDate != nil || patch.EndDate != nil
	if patch.StartDate != nil {
		startDate = utils.DateOnly(*patch.StartDate)
	}
	if patch.EndDate != nil {
		endDate = utils.DateOnly(*patch.EndDate)
	}
	if datesChanged && !startDate.Before(endDate) {
		return nil, customError.WrapInvalidDateRange()
	}

	newState := contract.State
	if patch.State != nil {
		if !domain.ValidContractState(*patch.State) {
			return nil, customError.WrapInvalidState(*patch.State)
		}
		newState = *patch.State
	}

	if patch.MonthlyRent != nil && !patch.MonthlyRent.IsPositive() {
		return nil, customError.WrapInvalidAmount("monthly rent must be positive")
	}

	stateChanged := newState != oldState
	becomesActive := stateChanged && newState == domain.ContractStateActive
	leavesActive := stateChanged && oldState == domain.ContractStateActive

	if becomesActive {
		targetProperty := contract.PropertyID
		if patch.PropertyID != nil {
			targetProperty = *patch.PropertyID
		}
		existing, err := s.ContractRepo.FindActiveByProperty(ctx, targetProperty)
		if err != nil {
			return nil, customError.WrapDatabaseError(err)
		}
		if existing != nil && existing.ID != id {
			return nil, customError.WrapActiveContractExists(targetProperty.String())
		}
	}

	err = s.Tx.RunInTx(ctx, func(ctx context.Context) error {
		// A still-active contract moving off a property frees the old one.
		if propertyChanged && oldState == domain.ContractStateActive {
			if err := s.PropertyRepo.SetAvailability(ctx, oldPropertyID, true); err != nil {
				return customError.WrapDatabaseError(err)
			}
		}

		if patch.TenantID != nil {
			contract.TenantID = *patch.TenantID
		}
		if patch.PropertyID != nil {
			contract.PropertyID = *patch.PropertyID
		}
		contract.StartDate = startDate
		contract.EndDate = endDate
		if patch.MonthlyRent != nil {
			contract.MonthlyRent = utils.RoundCurrency(*patch.MonthlyRent)
		}
		contract.State = newState

		if err := s.ContractRepo.Update(ctx, contract); err != nil {
			return customError.WrapDatabaseError(err)
		}

		if becomesActive {
			return s.activate(ctx, contract)
		}

		if leavesActive {
			if err := s.PropertyRepo.SetAvailability(ctx, oldPropertyID, true); err != nil {
				return customError.WrapDatabaseError(err)
			}
			if err := s.TenantRepo.SetAvailability(ctx, oldTenantID, true); err != nil {
				return customError.WrapDatabaseError(err)
			}
		}

		// Date changes on a contract that is (or was) active extend the
		// schedule; generation is idempotent per (contract, date).
		if datesChanged && (newState == domain.ContractStateActive || oldState == domain.ContractStateActive) {
			months := utils.MonthSpan(startDate, endDate)
			if _, err := s.Schedules.GenerateMonthly(ctx, contract.ID, months); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Log.Info().
		Str("contract_id", id.String()).
		Str("state", newState).
		Msg("contract updated")

	return s.Get(ctx, id)
}

// Remove deletes a contract and restores the property's and tenant's
// availability. Active contracts must be transitioned out of ACTIVE first.
func (s *ContractService) Remove(ctx context.Context, id uuid.UUID) error {
	contract, err := s.ContractRepo.GetByID(ctx, id)
	if err != nil {
		return customError.WrapDatabaseError(err)
	}
	if contract == nil {
		return customError.WrapContractNotFound(id.String())
	}

	if contract.State == domain.ContractStateActive {
		return customError.WrapContractActive(id.String())
	}

	err = s.Tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.PropertyRepo.SetAvailability(ctx, contract.PropertyID, true); err != nil {
			return customError.WrapDatabaseError(err)
		}
		if err := s.TenantRepo.SetAvailability(ctx, contract.TenantID, true); err != nil {
			return customError.WrapDatabaseError(err)
		}
		if err := s.ContractRepo.Delete(ctx, id); err != nil {
			return customError.WrapDatabaseError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.Log.Info().Str("contract_id", id.String()).Msg("contract deleted")
	return nil
}

// Get returns the contract with tenant and property joined.
func (s *ContractService) Get(ctx context.Context, id uuid.UUID) (*domain.Contract, error) {
	contract, err := s.ContractRepo.GetByID(ctx, id)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if contract == nil {
		return nil, customError.WrapContractNotFound(id.String())
	}

	return contract, nil
}

// List returns a filtered page of contracts, newest first.
func (s *ContractService) List(ctx context.Context, filter domain.ContractFilter, page, limit int) (*domain.PaginatedContracts, error) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}

	offset := (page - 1) * limit
	contracts, total, err := s.ContractRepo.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	totalPages := (total + limit - 1) / limit

	return &domain.PaginatedContracts{
		Data:       contracts,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

func (s *ContractService) ListActive(ctx context.Context) ([]*domain.Contract, error) {
	contracts, err := s.ContractRepo.ListActive(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return contracts, nil
}

// ListExpiringWithin returns active contracts ending in [today, today+days].
func (s *ContractService) ListExpiringWithin(ctx context.Context, days int) ([]*domain.Contract, error) {
	if days < 1 {
		return nil, customError.WrapInvalidAmount("days must be at least 1")
	}

	from := utils.DateOnly(time.Now().UTC())
	to := from.AddDate(0, 0, days)

	contracts, err := s.ContractRepo.ListExpiringWithin(ctx, from, to)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return contracts, nil
}
