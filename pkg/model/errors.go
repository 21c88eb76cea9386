package model

import "fmt"

// ErrorCode represents a structured API error code. The codes mirror the
// grid's failure taxonomy: bad input, unknown id, denied authorization, and
// a ranked list exhausted without an acceptor.
type ErrorCode string

const (
	ErrValidation   ErrorCode = "VALIDATION_ERROR"
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrNoCapacity   ErrorCode = "NO_CAPACITY"
	ErrInternal     ErrorCode = "INTERNAL_ERROR"
)

// APIError is a structured error returned by the gridd API.
type APIError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewValidationError creates a VALIDATION_ERROR.
func NewValidationError(msg string) *APIError {
	return &APIError{Code: ErrValidation, Message: msg}
}

// NewNotFoundError creates a NOT_FOUND error for an entity id.
func NewNotFoundError(resource string, id uint32) *APIError {
	return &APIError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s %d not found", resource, id),
	}
}
