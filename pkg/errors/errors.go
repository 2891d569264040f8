package errors

import (
	"errors"
	"fmt"
)

// Error classes. Every business error wraps one of these so callers can
// classify with errors.Is without knowing the specific condition.
var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrInvalidArgument = errors.New("invalid argument")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeTenantNotFound      = "TENANT_NOT_FOUND"
	ErrCodePropertyNotFound    = "PROPERTY_NOT_FOUND"
	ErrCodeContractNotFound    = "CONTRACT_NOT_FOUND"
	ErrCodePaymentNotFound     = "PAYMENT_NOT_FOUND"
	ErrCodeTenantExists        = "TENANT_ALREADY_EXISTS"
	ErrCodePropertyUnavailable = "PROPERTY_UNAVAILABLE"
	ErrCodeActiveContract      = "ACTIVE_CONTRACT_EXISTS"
	ErrCodeTenantHasContract   = "TENANT_HAS_ACTIVE_CONTRACT"
	ErrCodeInvalidDateRange    = "INVALID_DATE_RANGE"
	ErrCodeInvalidAmount       = "INVALID_AMOUNT"
	ErrCodeInvalidState        = "INVALID_STATE"
	ErrCodeNoPaymentHistory    = "NO_PAYMENT_HISTORY"
	ErrCodePaymentAlreadyPaid  = "PAYMENT_ALREADY_PAID"
	ErrCodePaymentOverdue      = "PAYMENT_OVERDUE"
	ErrCodeOverpayment         = "OVERPAYMENT"
	ErrCodeContractActive      = "CONTRACT_ACTIVE"
	ErrCodeStateMismatch       = "PAYMENT_STATE_MISMATCH"
	ErrCodeDatabaseError       = "DATABASE_ERROR"
)

// Wrap common errors with business context

func WrapTenantNotFound(id string) *BusinessError {
	return NewBusinessError(
		ErrCodeTenantNotFound,
		fmt.Sprintf("Tenant %s not found or inactive", id),
		ErrNotFound,
	)
}

func WrapPropertyNotFound(id string) *BusinessError {
	return NewBusinessError(
		ErrCodePropertyNotFound,
		fmt.Sprintf("Property %s not found", id),
		ErrNotFound,
	)
}

func WrapContractNotFound(id string) *BusinessError {
	return NewBusinessError(
		ErrCodeContractNotFound,
		fmt.Sprintf("Contract %s not found", id),
		ErrNotFound,
	)
}

func WrapPaymentNotFound(id string) *BusinessError {
	return NewBusinessError(
		ErrCodePaymentNotFound,
		fmt.Sprintf("Payment %s not found", id),
		ErrNotFound,
	)
}

func WrapTenantExists(field string) *BusinessError {
	return NewBusinessError(
		ErrCodeTenantExists,
		fmt.Sprintf("A tenant with this %s already exists", field),
		ErrConflict,
	)
}

func WrapPropertyUnavailable(id string) *BusinessError {
	return NewBusinessError(
		ErrCodePropertyUnavailable,
		fmt.Sprintf("Property %s is not available for lease", id),
		ErrConflict,
	)
}

func WrapActiveContractExists(propertyID string) *BusinessError {
	return NewBusinessError(
		ErrCodeActiveContract,
		fmt.Sprintf("Property %s already has an active contract", propertyID),
		ErrConflict,
	)
}

func WrapTenantHasActiveContract(id string) *BusinessError {
	return NewBusinessError(
		ErrCodeTenantHasContract,
		fmt.Sprintf("Tenant %s cannot be deactivated while holding an active contract", id),
		ErrConflict,
	)
}

func WrapInvalidDateRange() *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidDateRange,
		"Start date must be before end date",
		ErrInvalidArgument,
	)
}

func WrapInvalidAmount(detail string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidAmount,
		fmt.Sprintf("Invalid amount: %s", detail),
		ErrInvalidArgument,
	)
}

func WrapInvalidState(state string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidState,
		fmt.Sprintf("Unknown state %q", state),
		ErrInvalidArgument,
	)
}

func WrapNoPaymentHistory(nationalID string) *BusinessError {
	return NewBusinessError(
		ErrCodeNoPaymentHistory,
		fmt.Sprintf("No payment history for national ID %s", nationalID),
		ErrNotFound,
	)
}

func WrapPaymentAlreadyPaid(id string) *BusinessError {
	return NewBusinessError(
		ErrCodePaymentAlreadyPaid,
		fmt.Sprintf("Payment %s is already fully paid", id),
		ErrInvalidArgument,
	)
}

func WrapPaymentOverdue(id string) *BusinessError {
	return NewBusinessError(
		ErrCodePaymentOverdue,
		fmt.Sprintf("Cannot pay overdue installment %s", id),
		ErrInvalidArgument,
	)
}

func WrapOverpayment(id string) *BusinessError {
	return NewBusinessError(
		ErrCodeOverpayment,
		fmt.Sprintf("Amount exceeds the remaining balance of payment %s", id),
		ErrInvalidArgument,
	)
}

func WrapContractActive(id string) *BusinessError {
	return NewBusinessError(
		ErrCodeContractActive,
		fmt.Sprintf("Cannot delete active contract %s; change its state first", id),
		ErrInvalidArgument,
	)
}

// WrapStateMismatch flags drift between a payment's stored state and its
// amounts. Internal invariant violation, not a client error.
func WrapStateMismatch(id string) *BusinessError {
	return NewBusinessError(
		ErrCodeStateMismatch,
		fmt.Sprintf("Payment %s state is inconsistent with its amounts", id),
		nil,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}
