package domain

import (
	"time"

	"github.com/google/uuid"
)

// Property represents a leasable property. Available is false exactly while
// an active contract references the property; only the contract lifecycle
// toggles it.
type Property struct {
	ID               uuid.UUID `json:"id" db:"id"`
	Address          string    `json:"address" db:"address"`
	WaterAccountCode string    `json:"water_account_code" db:"water_account_code"`
	GasAccountCode   string    `json:"gas_account_code" db:"gas_account_code"`
	PowerAccountCode string    `json:"power_account_code" db:"power_account_code"`
	Available        bool      `json:"available" db:"available"`
	Description      string    `json:"description" db:"description"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

type CreatePropertyRequest struct {
	Address          string `json:"address" validate:"required"`
	WaterAccountCode string `json:"water_account_code" validate:"required"`
	GasAccountCode   string `json:"gas_account_code" validate:"required"`
	PowerAccountCode string `json:"power_account_code" validate:"required"`
	Description      string `json:"description"`
}

type UpdatePropertyRequest struct {
	Address          *string `json:"address,omitempty"`
	WaterAccountCode *string `json:"water_account_code,omitempty"`
	GasAccountCode   *string `json:"gas_account_code,omitempty"`
	PowerAccountCode *string `json:"power_account_code,omitempty"`
	Description      *string `json:"description,omitempty"`
}
