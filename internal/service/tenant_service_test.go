package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/arriendo/lease-engine/internal/domain"
	customError "github.com/arriendo/lease-engine/pkg/errors"
)

func TestCreateTenant_Success(t *testing.T) {
	mockTenantRepo := &MockTenantRepository{}

	service := &TenantService{
		TenantRepo:   mockTenantRepo,
		ContractRepo: &MockContractRepository{},
	}

	mockTenantRepo.On("GetByNationalID", mock.Anything, "12345678-9").Return(nil, nil)
	mockTenantRepo.On("GetByEmail", mock.Anything, "ana@example.com").Return(nil, nil)
	mockTenantRepo.On("Create", mock.Anything, mock.MatchedBy(func(tenant *domain.Tenant) bool {
		return tenant.Active && tenant.AvailableForLease
	})).Return(nil)

	tenant, err := service.Create(context.Background(), &domain.CreateTenantRequest{
		NationalID:       "12345678-9",
		FirstNames:       "Ana",
		LastNames:        "Rojas",
		Phone:            "+56911111111",
		Email:            "ana@example.com",
		Address:          "Calle Uno 100",
		City:             "Santiago",
		EmergencyContact: "Luis Rojas +56922222222",
	})

	assert.NoError(t, err)
	assert.True(t, tenant.Active)
	assert.True(t, tenant.AvailableForLease)
	mockTenantRepo.AssertExpectations(t)
}

func TestCreateTenant_DuplicateNationalID(t *testing.T) {
	mockTenantRepo := &MockTenantRepository{}

	service := &TenantService{
		TenantRepo:   mockTenantRepo,
		ContractRepo: &MockContractRepository{},
	}

	existing := &domain.Tenant{ID: uuid.New(), NationalID: "12345678-9"}
	mockTenantRepo.On("GetByNationalID", mock.Anything, "12345678-9").Return(existing, nil)

	_, err := service.Create(context.Background(), &domain.CreateTenantRequest{
		NationalID: "12345678-9",
		Email:      "ana@example.com",
	})

	assert.Error(t, err)
	assert.True(t, errors.Is(err, customError.ErrConflict))
	mockTenantRepo.AssertNotCalled(t, "Create")
}

func TestCreateTenant_DuplicateEmail(t *testing.T) {
	mockTenantRepo := &MockTenantRepository{}

	service := &TenantService{
		TenantRepo:   mockTenantRepo,
		ContractRepo: &MockContractRepository{},
	}

	existing := &domain.Tenant{ID: uuid.New(), Email: "ana@example.com"}
	mockTenantRepo.On("GetByNationalID", mock.Anything, "12345678-9").Return(nil, nil)
	mockTenantRepo.On("GetByEmail", mock.Anything, "ana@example.com").Return(existing, nil)

	_, err := service.Create(context.Background(), &domain.CreateTenantRequest{
		NationalID: "12345678-9",
		Email:      "ana@example.com",
	})

	assert.Error(t, err)
	assert.True(t, errors.Is(err, customError.ErrConflict))
}

func TestActivateTenant_DeactivationBlockedByActiveContract(t *testing.T) {
	mockTenantRepo := &MockTenantRepository{}
	mockContractRepo := &MockContractRepository{}

	service := &TenantService{
		TenantRepo:   mockTenantRepo,
		ContractRepo: mockContractRepo,
	}

	tenantID := uuid.New()
	tenant := &domain.Tenant{ID: tenantID, Active: true}
	active := &domain.Contract{ID: uuid.New(), TenantID: tenantID, State: domain.ContractStateActive}

	mockTenantRepo.On("GetByID", mock.Anything, tenantID).Return(tenant, nil)
	mockContractRepo.On("FindActiveByTenant", mock.Anything, tenantID).Return(active, nil)

	_, err := service.Activate(context.Background(), tenantID, false)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, customError.ErrConflict))

	var businessErr *customError.BusinessError
	assert.True(t, errors.As(err, &businessErr))
	assert.Equal(t, customError.ErrCodeTenantHasContract, businessErr.Code)
	mockTenantRepo.AssertNotCalled(t, "SetActive")
}

func TestActivateTenant_DeactivationAllowedWithoutActiveContract(t *testing.T) {
	mockTenantRepo := &MockTenantRepository{}
	mockContractRepo := &MockContractRepository{}

	service := &TenantService{
		TenantRepo:   mockTenantRepo,
		ContractRepo: mockContractRepo,
	}

	tenantID := uuid.New()
	tenant := &domain.Tenant{ID: tenantID, Active: true}

	mockTenantRepo.On("GetByID", mock.Anything, tenantID).Return(tenant, nil)
	mockContractRepo.On("FindActiveByTenant", mock.Anything, tenantID).Return(nil, nil)
	mockTenantRepo.On("SetActive", mock.Anything, tenantID, false).Return(nil)

	updated, err := service.Activate(context.Background(), tenantID, false)

	assert.NoError(t, err)
	assert.False(t, updated.Active)
	mockTenantRepo.AssertExpectations(t)
}

func TestUpdateTenant_NationalIDChangeChecksUniqueness(t *testing.T) {
	mockTenantRepo := &MockTenantRepository{}

	service := &TenantService{
		TenantRepo:   mockTenantRepo,
		ContractRepo: &MockContractRepository{},
	}

	tenantID := uuid.New()
	tenant := &domain.Tenant{ID: tenantID, NationalID: "11111111-1", Email: "ana@example.com"}
	taken := &domain.Tenant{ID: uuid.New(), NationalID: "22222222-2"}

	mockTenantRepo.On("GetByID", mock.Anything, tenantID).Return(tenant, nil)
	mockTenantRepo.On("GetByNationalID", mock.Anything, "22222222-2").Return(taken, nil)

	newNationalID := "22222222-2"
	_, err := service.Update(context.Background(), tenantID, &domain.UpdateTenantRequest{
		NationalID: &newNationalID,
	})

	assert.Error(t, err)
	assert.True(t, errors.Is(err, customError.ErrConflict))
	mockTenantRepo.AssertNotCalled(t, "Update")
}
