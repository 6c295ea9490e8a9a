package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates the operation conflicts with the current state of the resource.
var ErrConflict = errors.New("conflict with current state")

// Ledger store errors.
var (
	// ErrUnbalancedEntry indicates a journal entry whose debits do not equal its credits.
	ErrUnbalancedEntry = errors.New("journal entry debits do not equal credits")

	// ErrInvalidLine indicates a journal line with both debit and credit set, or neither.
	ErrInvalidLine = errors.New("journal line must have exactly one of debit or credit")

	// ErrAccountNotConfigured indicates a required chart-of-accounts code resolves to
	// zero or multiple accounts. This is a setup problem, not a user mistake.
	ErrAccountNotConfigured = errors.New("required ledger account is not configured")
)

// Invoice lifecycle errors.
var (
	ErrInvoiceNotDraft  = errors.New("invoice is not in DRAFT status")
	ErrInvoiceNotIssued = errors.New("invoice is not in ISSUED status")
	ErrHasPayments      = errors.New("invoice has payments applied")
	ErrNoLinesAttached  = errors.New("invoice has no lines attached")
	ErrDraftExists      = errors.New("client already has a draft invoice")
	ErrItemNotEligible  = errors.New("item is not eligible for invoicing")
)

// Payment allocation errors.
var (
	ErrOverAllocation = errors.New("allocation exceeds unapplied payment balance")
	ErrClientMismatch = errors.New("invoice does not belong to the payment's client")
)

// AppError wraps an underlying error with an HTTP-ish status code and a message.
// Repositories return these for infrastructure failures.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that unwraps to ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
