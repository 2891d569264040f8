package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	ContractStateDraft        = "DRAFT"
	ContractStateActive       = "ACTIVE"
	ContractStateExpiringSoon = "EXPIRING_SOON"
	ContractStateExpired      = "EXPIRED"
	ContractStateFinished     = "FINISHED"
)

// ValidContractState reports whether s is one of the known contract states.
func ValidContractState(s string) bool {
	switch s {
	case ContractStateDraft, ContractStateActive, ContractStateExpiringSoon,
		ContractStateExpired, ContractStateFinished:
		return true
	}
	return false
}

// Contract is a lease agreement between one tenant and one property for a
// date range at a fixed monthly rent. At most one contract per property may
// be ACTIVE at any time.
type Contract struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	TenantID    uuid.UUID       `json:"tenant_id" db:"tenant_id"`
	PropertyID  uuid.UUID       `json:"property_id" db:"property_id"`
	StartDate   time.Time       `json:"start_date" db:"start_date"`
	EndDate     time.Time       `json:"end_date" db:"end_date"`
	MonthlyRent decimal.Decimal `json:"monthly_rent" db:"monthly_rent"`
	State       string          `json:"state" db:"state"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`

	// Joined relations, populated on single-contract reads and listings.
	Tenant   *Tenant   `json:"tenant,omitempty" db:"-"`
	Property *Property `json:"property,omitempty" db:"-"`
}

type CreateContractRequest struct {
	TenantID    uuid.UUID       `json:"tenant_id" validate:"required"`
	PropertyID  uuid.UUID       `json:"property_id" validate:"required"`
	StartDate   time.Time       `json:"start_date" validate:"required"`
	EndDate     time.Time       `json:"end_date" validate:"required"`
	MonthlyRent decimal.Decimal `json:"monthly_rent" validate:"required"`
	State       string          `json:"state"`
}

// UpdateContractRequest is a partial patch; nil fields are left untouched.
type UpdateContractRequest struct {
	TenantID    *uuid.UUID       `json:"tenant_id,omitempty"`
	PropertyID  *uuid.UUID       `json:"property_id,omitempty"`
	StartDate   *time.Time       `json:"start_date,omitempty"`
	EndDate     *time.Time       `json:"end_date,omitempty"`
	MonthlyRent *decimal.Decimal `json:"monthly_rent,omitempty"`
	State       *string          `json:"state,omitempty"`
}

// ContractFilter narrows paginated contract listings.
type ContractFilter struct {
	State      string
	TenantID   uuid.UUID
	PropertyID uuid.UUID
	StartFrom  time.Time
	StartTo    time.Time
	EndFrom    time.Time
	EndTo      time.Time
}

type PaginatedContracts struct {
	Data       []*Contract `json:"data"`
	Total      int         `json:"total"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	TotalPages int         `json:"total_pages"`
}
