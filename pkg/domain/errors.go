package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a domain-specific error with a code and message
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Error codes
const (
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeNotConfigured = "DATABASE_NOT_CONFIGURED"
	ErrCodeBackend       = "BACKEND_ERROR"
	ErrCodeConflict      = "CONFLICT"
	ErrCodeBadRequest    = "BAD_REQUEST"
	ErrCodeInternal      = "INTERNAL_ERROR"
)

// ErrNotConfigured is returned by mutating store operations when no database
// backend is selected. Mutations are never faked against sample data.
var ErrNotConfigured = &DomainError{
	Code:    ErrCodeNotConfigured,
	Message: "Database not configured",
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string) error {
	return &DomainError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// NewValidationError creates a new validation error
func NewValidationError(msg string) error {
	return &DomainError{
		Code:    ErrCodeValidation,
		Message: msg,
	}
}

// NewBackendError wraps a backend query failure
func NewBackendError(op string, err error) error {
	return &DomainError{
		Code:    ErrCodeBackend,
		Message: fmt.Sprintf("%s failed", op),
		Err:     err,
	}
}

// NewBadRequestError creates a new bad request error
func NewBadRequestError(msg string) error {
	return &DomainError{
		Code:    ErrCodeBadRequest,
		Message: msg,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(err error) error {
	return &DomainError{
		Code:    ErrCodeInternal,
		Message: "An internal error occurred",
		Err:     err,
	}
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return codeOf(err) == ErrCodeNotFound
}

// IsValidation checks if the error is a validation error
func IsValidation(err error) bool {
	return codeOf(err) == ErrCodeValidation
}

// IsNotConfigured checks if the error reports a missing database backend
func IsNotConfigured(err error) bool {
	return codeOf(err) == ErrCodeNotConfigured
}

// IsBackend checks if the error is a backend query failure
func IsBackend(err error) bool {
	return codeOf(err) == ErrCodeBackend
}

// AsDomainError extracts a DomainError from an error chain
func AsDomainError(err error, target **DomainError) bool {
	return errors.As(err, target)
}

func codeOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}
