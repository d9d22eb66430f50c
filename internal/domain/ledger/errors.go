/*
errors.go - Error taxonomy of the inventory ledger

CATEGORIES:
  1. Stock errors     - a batch cannot cover the requested quantity
  2. State errors     - a document is not in a state that allows the action
  3. Money errors     - a payment exceeds what is owed
  4. Lookup errors    - a referenced record does not exist
  5. Input errors     - a request is malformed before any lookup happens
  6. Contention       - a lock or unique number could not be had in time

Every error aborts the enclosing transaction. Callers match with errors.Is
against the sentinels and errors.As against the structured types.
*/
package ledger

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// SENTINEL ERRORS
// =============================================================================

var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidState      = errors.New("invalid state")
	ErrOverpayment       = errors.New("payment exceeds due amount")
	ErrNotFound          = errors.New("not found")
	ErrAlreadyCancelled  = errors.New("already cancelled")
	ErrValidation        = errors.New("validation failed")
	ErrBusy              = errors.New("resource busy, retry the request")
	ErrConflict          = errors.New("conflicting record exists")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// InsufficientStockError reports the batch that could not cover a line.
type InsufficientStockError struct {
	BatchID     uuid.UUID
	BatchNumber string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock in batch %s: requested %d, available %d",
		e.BatchNumber, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// InvalidStateError reports an action attempted on a document in the wrong state.
type InvalidStateError struct {
	Entity string
	ID     uuid.UUID
	State  string
	Action string
}

func (e *InvalidStateError) Error() string {
	if e.State == "" {
		return fmt.Sprintf("cannot %s %s %s", e.Action, e.Entity, e.ID)
	}
	return fmt.Sprintf("cannot %s %s %s in state %s", e.Action, e.Entity, e.ID, e.State)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// AlreadyCancelledError matches both ErrAlreadyCancelled and ErrInvalidState.
type AlreadyCancelledError struct {
	Entity string
	ID     uuid.UUID
}

func (e *AlreadyCancelledError) Error() string {
	return fmt.Sprintf("%s %s is already cancelled", e.Entity, e.ID)
}

func (e *AlreadyCancelledError) Unwrap() []error {
	return []error{ErrAlreadyCancelled, ErrInvalidState}
}

// OverpaymentError reports a payment larger than the outstanding amount.
type OverpaymentError struct {
	SaleID uuid.UUID
	Amount decimal.Decimal
	Due    decimal.Decimal
}

func (e *OverpaymentError) Error() string {
	return fmt.Sprintf("payment amount %s exceeds due amount %s",
		e.Amount.StringFixed(2), e.Due.StringFixed(2))
}

func (e *OverpaymentError) Unwrap() error {
	return ErrOverpayment
}

// NotFoundError reports a missing record.
type NotFoundError struct {
	Entity string
	ID     uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// ValidationError reports a malformed request field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// =============================================================================
// CONSTRUCTORS
// =============================================================================

func NotFound(entity string, id uuid.UUID) error {
	return &NotFoundError{Entity: entity, ID: id}
}

func InvalidState(entity string, id uuid.UUID, state, action string) error {
	return &InvalidStateError{Entity: entity, ID: id, State: state, Action: action}
}

func AlreadyCancelled(entity string, id uuid.UUID) error {
	return &AlreadyCancelledError{Entity: entity, ID: id}
}

func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// =============================================================================
// HELPERS
// =============================================================================

// IsClientError reports whether err was caused by the request rather than the system.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInsufficientStock) ||
		errors.Is(err, ErrInvalidState) ||
		errors.Is(err, ErrOverpayment) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrConflict)
}
