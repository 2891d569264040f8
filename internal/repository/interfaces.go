package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/arriendo/lease-engine/internal/domain"
)

// All Get/Find methods return (nil, nil) when no row matches; callers map
// that to their own not-found errors.

// TenantRepository defines the interface for tenant data operations
type TenantRepository interface {
	Create(ctx context.Context, tenant *domain.Tenant) error

	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error)

	GetByNationalID(ctx context.Context, nationalID string) (*domain.Tenant, error)

	GetByEmail(ctx context.Context, email string) (*domain.Tenant, error)

	Update(ctx context.Context, tenant *domain.Tenant) error

	// SetAvailability flips the available-for-lease flag as a contract
	// lifecycle side effect.
	SetAvailability(ctx context.Context, id uuid.UUID, available bool) error

	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

// PropertyRepository defines the interface for property data operations
type PropertyRepository interface {
	Create(ctx context.Context, property *domain.Property) error

	GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error)

	Update(ctx context.Context, property *domain.Property) error

	SetAvailability(ctx context.Context, id uuid.UUID, available bool) error
}

// ContractRepository defines the interface for contract data operations
type ContractRepository interface {
	Create(ctx context.Context, contract *domain.Contract) error

	// GetByID retrieves a contract with its tenant and property joined.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Contract, error)

	// FindActiveByProperty returns the single ACTIVE contract referencing
	// the property, if any.
	FindActiveByProperty(ctx context.Context, propertyID uuid.UUID) (*domain.Contract, error)

	FindActiveByTenant(ctx context.Context, tenantID uuid.UUID) (*domain.Contract, error)

	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*domain.Contract, error)

	ListActive(ctx context.Context) ([]*domain.Contract, error)

	// ListExpiringWithin returns ACTIVE contracts whose end date falls in
	// [today, today+days].
	ListExpiringWithin(ctx context.Context, from, to time.Time) ([]*domain.Contract, error)

	// List returns a page of contracts matching the filter, ordered by
	// creation time descending, plus the total match count.
	List(ctx context.Context, filter domain.ContractFilter, offset, limit int) ([]*domain.Contract, int, error)

	Update(ctx context.Context, contract *domain.Contract) error

	Delete(ctx context.Context, id uuid.UUID) error
}

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error

	GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error)

	// FindByContractAndDate looks up the installment for the schedule
	// idempotency key (contract, expected date).
	FindByContractAndDate(ctx context.Context, contractID uuid.UUID, date time.Time) (*domain.Payment, error)

	ListByContract(ctx context.Context, contractID uuid.UUID) ([]*domain.Payment, error)

	ListByState(ctx context.Context, state string) ([]*domain.Payment, error)

	// ListOlderThan returns payments with expected date on or before cutoff
	// whose state is not in excludedStates. Feeds the overdue sweep.
	ListOlderThan(ctx context.Context, cutoff time.Time, excludedStates []string) ([]*domain.Payment, error)

	// ListDueOn returns PENDING payments expected exactly on the given date.
	ListDueOn(ctx context.Context, date time.Time) ([]*domain.Payment, error)

	ListByExpectedDateRange(ctx context.Context, from, to time.Time) ([]*domain.Payment, error)

	Search(ctx context.Context, filter domain.PaymentFilter) ([]*domain.Payment, error)

	Update(ctx context.Context, payment *domain.Payment) error
}
