package domain

import (
	"time"

	"github.com/google/uuid"
)

// Tenant represents a lease tenant. AvailableForLease mirrors whether the
// tenant is currently tied to an active contract; Active is the onboarding
// activation switch.
type Tenant struct {
	ID                uuid.UUID `json:"id" db:"id"`
	NationalID        string    `json:"national_id" db:"national_id"`
	FirstNames        string    `json:"first_names" db:"first_names"`
	LastNames         string    `json:"last_names" db:"last_names"`
	Phone             string    `json:"phone" db:"phone"`
	Email             string    `json:"email" db:"email"`
	Address           string    `json:"address" db:"address"`
	City              string    `json:"city" db:"city"`
	EmergencyContact  string    `json:"emergency_contact" db:"emergency_contact"`
	AvailableForLease bool      `json:"available_for_lease" db:"available_for_lease"`
	Active            bool      `json:"active" db:"active"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

type CreateTenantRequest struct {
	NationalID       string `json:"national_id" validate:"required"`
	FirstNames       string `json:"first_names" validate:"required"`
	LastNames        string `json:"last_names" validate:"required"`
	Phone            string `json:"phone" validate:"required"`
	Email            string `json:"email" validate:"required,email"`
	Address          string `json:"address" validate:"required"`
	City             string `json:"city" validate:"required"`
	EmergencyContact string `json:"emergency_contact" validate:"required"`
}

type UpdateTenantRequest struct {
	NationalID       *string `json:"national_id,omitempty"`
	FirstNames       *string `json:"first_names,omitempty"`
	LastNames        *string `json:"last_names,omitempty"`
	Phone            *string `json:"phone,omitempty"`
	Email            *string `json:"email,omitempty" validate:"omitempty,email"`
	Address          *string `json:"address,omitempty"`
	City             *string `json:"city,omitempty"`
	EmergencyContact *string `json:"emergency_contact,omitempty"`
}

type ActivateTenantRequest struct {
	Active *bool `json:"active" validate:"required"`
}
