package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/arriendo/lease-engine/internal/domain"
	"github.com/arriendo/lease-engine/internal/repository"
	customError "github.com/arriendo/lease-engine/pkg/errors"
)

// TenantService handles tenant onboarding and activation. Availability is
// never touched here; only the contract lifecycle toggles it.
type TenantService struct {
	TenantRepo   repository.TenantRepository
	ContractRepo repository.ContractRepository
	Log          zerolog.Logger
}

func NewTenantService(
	tenantRepo repository.TenantRepository,
	contractRepo repository.ContractRepository,
	log zerolog.Logger,
) *TenantService {
	return &TenantService{
		TenantRepo:   tenantRepo,
		ContractRepo: contractRepo,
		Log:          log,
	}
}

func (s *TenantService) Create(ctx context.Context, request *domain.CreateTenantRequest) (*domain.Tenant, error) {
	existing, err := s.TenantRepo.GetByNationalID(ctx, request.NationalID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if existing != nil {
		return nil, customError.WrapTenantExists("national ID")
	}

	existing, err = s.TenantRepo.GetByEmail(ctx, request.Email)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if existing != nil {
		return nil, customError.WrapTenantExists("email")
	}

	now := time.Now().UTC()
	tenant := &domain.Tenant{
		ID:                uuid.New(),
		NationalID:        request.NationalID,
		FirstNames:        request.FirstNames,
		LastNames:         request.LastNames,
		Phone:             request.Phone,
		Email:             request.Email,
		Address:           request.Address,
		City:              request.City,
		EmergencyContact:  request.EmergencyContact,
		AvailableForLease: true,
		Active:            true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.TenantRepo.Create(ctx, tenant); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.Log.Info().Str("tenant_id", tenant.ID.String()).Msg("tenant created")
	return tenant, nil
}

func (s *TenantService) Get(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	tenant, err := s.TenantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if tenant == nil {
		return nil, customError.WrapTenantNotFound(id.String())
	}
	return tenant, nil
}

func (s *TenantService) GetByNationalID(ctx context.Context, nationalID string) (*domain.Tenant, error) {
	tenant, err := s.TenantRepo.GetByNationalID(ctx, nationalID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if tenant == nil {
		return nil, customError.WrapTenantNotFound(nationalID)
	}
	return tenant, nil
}

func (s *TenantService) Update(ctx context.Context, id uuid.UUID, patch *domain.UpdateTenantRequest) (*domain.Tenant, error) {
	tenant, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.NationalID != nil && *patch.NationalID != tenant.NationalID {
		existing, err := s.TenantRepo.GetByNationalID(ctx, *patch.NationalID)
		if err != nil {
			return nil, customError.WrapDatabaseError(err)
		}
		if existing != nil {
			return nil, customError.WrapTenantExists("national ID")
		}
		tenant.NationalID = *patch.NationalID
	}

	if patch.Email != nil && *patch.Email != tenant.Email {
		existing, err := s.TenantRepo.GetByEmail(ctx, *patch.Email)
		if err != nil {
			return nil, customError.WrapDatabaseError(err)
		}
		if existing != nil {
			return nil, customError.WrapTenantExists("email")
		}
		tenant.Email = *patch.Email
	}

	if patch.FirstNames != nil {
		tenant.FirstNames = *patch.FirstNames
	}
	if patch.LastNames != nil {
		tenant.LastNames = *patch.LastNames
	}
	if patch.Phone != nil {
		tenant.Phone = *patch.Phone
	}
	if patch.Address != nil {
		tenant.Address = *patch.Address
	}
	if patch.City != nil {
		tenant.City = *patch.City
	}
	if patch.EmergencyContact != nil {
		tenant.EmergencyContact = *patch.EmergencyContact
	}

	if err := s.TenantRepo.Update(ctx, tenant); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return tenant, nil
}

// Activate toggles onboarding activation. Deactivation is refused while the
// tenant holds an active contract.
func (s *TenantService) Activate(ctx context.Context, id uuid.UUID, active bool) (*domain.Tenant, error) {
	tenant, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !active && tenant.Active {
		activeContract, err := s.ContractRepo.FindActiveByTenant(ctx, id)
		if err != nil {
			return nil, customError.WrapDatabaseError(err)
		}
		if activeContract != nil {
			return nil, customError.WrapTenantHasActiveContract(id.String())
		}
	}

	if err := s.TenantRepo.SetActive(ctx, id, active); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	tenant.Active = active
	return tenant, nil
}
