package service

import (
	"errors"
	"fmt"

	"shop-billing/internal/billing"
	"shop-billing/pkg/validator"
)

// Operation failures. Every error returned by a service matches exactly one
// of these with errors.Is.
var (
	ErrInvalidQuantity     = errors.New("quantity must be a positive whole number")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrEmptyCart           = errors.New("cart is empty")
	ErrMissingCustomerInfo = errors.New("customer name and phone are required")
	ErrAccessDenied        = errors.New("access denied")
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("not found")
	ErrPersistenceFailure  = errors.New("failed to persist data")
	ErrInsufficientPoints  = billing.ErrInsufficientPoints
)

func persistErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrPersistenceFailure, op, err)
}

// validationErr turns validator output into an error wrapping sentinel, or
// nil when there is nothing to report.
func validationErr(sentinel error, errs []*validator.ErrorResponse) error {
	if len(errs) == 0 {
		return nil
	}
	first := errs[0]
	return fmt.Errorf("%w: field '%s' failed on tag '%s'", sentinel, first.FailedField, first.Tag)
}
