package shared

import "errors"

// ErrorKind classifies a domain error into the three outcomes callers act on
type ErrorKind string

const (
	ErrorKindNotFound   ErrorKind = "not_found"
	ErrorKindConflict   ErrorKind = "conflict"
	ErrorKindValidation ErrorKind = "validation"
	ErrorKindInternal   ErrorKind = "internal"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string    `json:"code"`
	Message string    `json:"message"`
	Kind    ErrorKind `json:"-"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target carries the same code, so wrapped copies of a
// sentinel still match with errors.Is
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error. The kind is derived from the code.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Kind:    kindForCode(code),
	}
}

// NewNotFoundError creates an error for a missing resource or an unmet precondition
// that makes the resource effectively absent
func NewNotFoundError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message, Kind: ErrorKindNotFound}
}

// NewConflictError creates an error for a request that collides with existing state
func NewConflictError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message, Kind: ErrorKindConflict}
}

// NewValidationError creates an error for malformed input
func NewValidationError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message, Kind: ErrorKindValidation}
}

// Common domain errors
var (
	ErrNotFound            = NewNotFoundError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewConflictError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewValidationError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewConflictError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrInvalidState        = NewConflictError("INVALID_STATE", "Operation not allowed in current state")
)

// KindOf returns the kind of a domain error, or ErrorKindInternal for anything else
func KindOf(err error) ErrorKind {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		if domainErr.Kind != "" {
			return domainErr.Kind
		}
		return kindForCode(domainErr.Code)
	}
	return ErrorKindInternal
}

// IsNotFound reports whether err is a not-found domain error
func IsNotFound(err error) bool {
	return KindOf(err) == ErrorKindNotFound
}

// IsConflict reports whether err is a conflict domain error
func IsConflict(err error) bool {
	return KindOf(err) == ErrorKindConflict
}

// IsValidation reports whether err is a validation domain error
func IsValidation(err error) bool {
	return KindOf(err) == ErrorKindValidation
}

func kindForCode(code string) ErrorKind {
	switch code {
	case "NOT_FOUND":
		return ErrorKindNotFound
	case "ALREADY_EXISTS", "CONCURRENCY_CONFLICT", "CONCURRENT_MODIFICATION", "INVALID_STATE":
		return ErrorKindConflict
	default:
		return ErrorKindValidation
	}
}
