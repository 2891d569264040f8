package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Debt classification levels.
const (
	DebtLevelUpToDate = "AL_DIA"
	DebtLevelDefault  = "MOROSO"
	DebtLevelPending  = "PENDIENTE"
)

// DebtReport is the cross-contract debt summary for one tenant, looked up by
// national ID.
type DebtReport struct {
	Tenant    DebtTenant     `json:"tenant"`
	Contracts []DebtContract `json:"contracts"`
	Status    DebtStatus     `json:"status"`
	Level     string         `json:"level"`
}

type DebtTenant struct {
	ID         uuid.UUID `json:"id"`
	NationalID string    `json:"national_id"`
	FirstNames string    `json:"first_names"`
	LastNames  string    `json:"last_names"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	City       string    `json:"city"`
}

type DebtContract struct {
	ID              uuid.UUID       `json:"id"`
	MonthlyRent     decimal.Decimal `json:"monthly_rent"`
	State           string          `json:"state"`
	StartDate       time.Time       `json:"start_date"`
	EndDate         time.Time       `json:"end_date"`
	PropertyAddress string          `json:"property_address"`
}

type DebtStatus struct {
	UpToDate  bool            `json:"up_to_date"`
	TotalOwed decimal.Decimal `json:"total_owed"`
	Breakdown DebtBreakdown   `json:"breakdown"`
	Counts    DebtCounts      `json:"counts"`
	LastPaid  *LastPaid       `json:"last_paid,omitempty"`
}

// DebtBreakdown splits the owed total by installment state.
type DebtBreakdown struct {
	Pending decimal.Decimal `json:"pending"`
	Overdue decimal.Decimal `json:"overdue"`
	Partial decimal.Decimal `json:"partial"`
}

type DebtCounts struct {
	Pending int `json:"pending"`
	Overdue int `json:"overdue"`
	Partial int `json:"partial"`
	Paid    int `json:"paid"`
	Total   int `json:"total"`
}

// LastPaid identifies the most recent fully paid installment.
type LastPaid struct {
	PaymentID uuid.UUID       `json:"payment_id"`
	Date      time.Time       `json:"date"`
	Amount    decimal.Decimal `json:"amount"`
}
