package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	PaymentStatePending = "PENDING"
	PaymentStatePartial = "PARTIAL"
	PaymentStatePaid    = "PAID"
	PaymentStateOverdue = "OVERDUE"
)

// ValidPaymentState reports whether s is one of the known payment states.
func ValidPaymentState(s string) bool {
	switch s {
	case PaymentStatePending, PaymentStatePartial, PaymentStatePaid, PaymentStateOverdue:
		return true
	}
	return false
}

// Payment is one month's expected rent installment within a contract's
// schedule. (ContractID, ExpectedDate) is unique and serves as the
// idempotency key for schedule generation. Invariant: 0 <= PaidAmount <=
// TotalAmount, and State always agrees with the amounts.
type Payment struct {
	ID                uuid.UUID       `json:"id" db:"id"`
	ContractID        uuid.UUID       `json:"contract_id" db:"contract_id"`
	TotalAmount       decimal.Decimal `json:"total_amount" db:"total_amount"`
	PaidAmount        decimal.Decimal `json:"paid_amount" db:"paid_amount"`
	State             string          `json:"state" db:"state"`
	ExpectedDate      time.Time       `json:"expected_date" db:"expected_date"`
	ActualPaymentDate *time.Time      `json:"actual_payment_date,omitempty" db:"actual_payment_date"`
	CreatedAt         time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at" db:"updated_at"`
}

// StateConsistent checks the stored state against the amounts. OVERDUE is
// exempt from the amount rules: an installment may be aged out at any paid
// fraction below the total.
func (p *Payment) StateConsistent() bool {
	if p.PaidAmount.IsNegative() || p.PaidAmount.GreaterThan(p.TotalAmount) {
		return false
	}

	switch p.State {
	case PaymentStatePaid:
		return p.PaidAmount.Equal(p.TotalAmount)
	case PaymentStatePartial:
		return p.PaidAmount.IsPositive() && p.PaidAmount.LessThan(p.TotalAmount)
	case PaymentStatePending:
		return p.PaidAmount.IsZero()
	case PaymentStateOverdue:
		return p.PaidAmount.LessThan(p.TotalAmount)
	}
	return false
}

type CreatePaymentRequest struct {
	ContractID   uuid.UUID        `json:"contract_id" validate:"required"`
	ExpectedDate time.Time        `json:"expected_date" validate:"required"`
	TotalAmount  *decimal.Decimal `json:"total_amount,omitempty"`
}

type RecordPaymentRequest struct {
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	PaymentDate *time.Time      `json:"payment_date,omitempty"`
}

// UpdatePaymentRequest is a partial patch; forbidden once the payment is PAID.
type UpdatePaymentRequest struct {
	TotalAmount  *decimal.Decimal `json:"total_amount,omitempty"`
	ExpectedDate *time.Time       `json:"expected_date,omitempty"`
}

// PaymentFilter narrows payment searches.
type PaymentFilter struct {
	ContractID uuid.UUID
	State      string
	DateFrom   time.Time
	DateTo     time.Time
}

// SweepResult summarizes one overdue sweep run.
type SweepResult struct {
	Processed    int `json:"processed"`
	OverdueCount int `json:"overdue_count"`
}

// PaymentStats aggregates installments per state for a contract (or globally).
type PaymentStats struct {
	Total     int             `json:"total"`
	Pending   int             `json:"pending"`
	Partial   int             `json:"partial"`
	Paid      int             `json:"paid"`
	Overdue   int             `json:"overdue"`
	TotalDue  decimal.Decimal `json:"total_due"`
	TotalPaid decimal.Decimal `json:"total_paid"`
	TotalOwed decimal.Decimal `json:"total_owed"`
}
