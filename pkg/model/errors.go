package model

import "fmt"

// ErrorCode represents a structured API error code.
type ErrorCode string

const (
	ErrValidation   ErrorCode = "VALIDATION_ERROR"
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrForbidden    ErrorCode = "FORBIDDEN"
	ErrUpstream     ErrorCode = "UPSTREAM_ERROR"
	ErrRateLimited  ErrorCode = "RATE_LIMITED"
	ErrInternal     ErrorCode = "INTERNAL_ERROR"
)

// APIError is a structured error returned by the FleetGate API.
type APIError struct {
	Code    ErrorCode    `json:"code"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// FieldError describes a validation error on a specific request field.
type FieldError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// NewValidationError creates an APIError with validation details.
func NewValidationError(msg string, details ...FieldError) *APIError {
	return &APIError{Code: ErrValidation, Message: msg, Details: details}
}

// NewUnauthorizedError creates an UNAUTHORIZED APIError.
// Credential and privilege failures share one user-facing message so the
// response does not reveal which check failed.
func NewUnauthorizedError(msg string) *APIError {
	return &APIError{Code: ErrUnauthorized, Message: msg}
}

// NewNotFoundError creates a NOT_FOUND APIError.
func NewNotFoundError(resource, id string) *APIError {
	return &APIError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s '%s' not found", resource, id),
	}
}

// NewUpstreamError creates an UPSTREAM_ERROR APIError carrying the
// upstream HTTP status text.
func NewUpstreamError(statusText string) *APIError {
	return &APIError{
		Code:    ErrUpstream,
		Message: fmt.Sprintf("upstream request failed: %s", statusText),
	}
}
