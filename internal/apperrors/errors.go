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

// ErrUnauthorized indicates the principal driving the call is not the identity the
// operation requires.
var ErrUnauthorized = errors.New("principal not authorized")

// ErrInsufficientCapability indicates the principal exists and is active, but its role
// does not grant the capability the operation requires.
var ErrInsufficientCapability = errors.New("role lacks required capability")

// ErrInactiveParty indicates the principal is suspended, on leave, or terminated and
// may not act.
var ErrInactiveParty = errors.New("party is not active")

// ErrInvalidAmount indicates a non-positive amount was presented to a ledger mutator.
var ErrInvalidAmount = errors.New("amount must be positive")

// ErrInsufficientBalance indicates a debit would take an account balance below zero.
var ErrInsufficientBalance = errors.New("insufficient balance")

// ErrInvalidFilter indicates an aggregation filter with unsatisfiable parameters,
// such as a period whose start is after its end.
var ErrInvalidFilter = errors.New("invalid report filter")

// ErrStorageFault indicates the persistence collaborator failed. It is always fatal
// to the enclosing mutation; partial commits are forbidden.
var ErrStorageFault = errors.New("storage fault")

// ErrConflict indicates the operation conflicts with the current state of the resource.
var ErrConflict = errors.New("conflict with current resource state")

// ErrForbidden indicates the principal may not perform the operation.
var ErrForbidden = errors.New("operation forbidden")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError wraps a lower-level error with a status code and a message. Repositories
// use it to report storage-layer failures without leaking driver details upward.
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

// NewAppError creates a new AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
