package dto

import (
	"errors"
	"net/http"

	"github.com/Wolf09/back-prof-sub000/internal/domain/shared"
)

// Transport-level error codes. Domain errors keep their own codes
// (ALREADY_RATED, INVALID_TRANSITION, JOB_NOT_FINISHED, ...).
const (
	ErrCodeInternal    = "ERR_INTERNAL"
	ErrCodeValidation  = "ERR_VALIDATION"
	ErrCodeBadRequest  = "ERR_BAD_REQUEST"
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
	ErrCodeNotFound    = "ERR_NOT_FOUND"
	ErrCodeTooLarge    = "REQUEST_TOO_LARGE"
)

var kindHTTPStatus = map[shared.ErrorKind]int{
	shared.ErrorKindNotFound:   http.StatusNotFound,
	shared.ErrorKindConflict:   http.StatusConflict,
	shared.ErrorKindValidation: http.StatusBadRequest,
	shared.ErrorKindInternal:   http.StatusInternalServerError,
}

// StatusForKind returns the HTTP status of an error kind
func StatusForKind(kind shared.ErrorKind) int {
	if status, ok := kindHTTPStatus[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// FromError maps err to an HTTP status and the code and message to expose.
// Anything that is not a domain error becomes an opaque 500.
func FromError(err error) (status int, code, message string) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return StatusForKind(shared.KindOf(err)), domainErr.Code, domainErr.Message
	}
	return http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred"
}
