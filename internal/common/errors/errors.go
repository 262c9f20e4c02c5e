// Package errors provides standardized error handling for the assistant.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeConfigurationMissing ErrorCode = "CONFIGURATION_MISSING"
	ErrCodeBackendHTTP          ErrorCode = "BACKEND_HTTP_ERROR"
	ErrCodeSearchUnavailable    ErrorCode = "SEARCH_UNAVAILABLE"
	ErrCodeRequestInvalid       ErrorCode = "REQUEST_INVALID"
	ErrCodeRateLimited          ErrorCode = "RATE_LIMITED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewConfigurationMissingError creates a non-retryable error for an absent
// required backend credential.
func NewConfigurationMissingError(backend string) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfigurationMissing,
		Message:   fmt.Sprintf("Backend '%s' is not configured", backend),
		Details:   "required API credential is missing",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewBackendHTTPError creates a retryable error carrying the non-success
// status code and the raw error body from a backend.
func NewBackendHTTPError(backend string, statusCode int, body string) *StandardError {
	return &StandardError{
		Code:      ErrCodeBackendHTTP,
		Message:   fmt.Sprintf("Backend '%s' returned status %d", backend, statusCode),
		Details:   body,
		Retryable: statusCode >= 500,
		Metadata: map[string]interface{}{
			"backend":    backend,
			"statusCode": statusCode,
		},
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchUnavailableError creates a non-retryable error for the two-stage
// retrieval path when the search backend has no credential.
func NewSearchUnavailableError() *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchUnavailable,
		Message:   "Search backend is not available",
		Details:   "no search API credential configured",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRequestInvalidError creates a non-retryable request validation error.
func NewRequestInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRequestInvalid,
		Message:   "Request validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRateLimitedError creates a retryable rate limit error.
func NewRateLimitedError(clientKey string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRateLimited,
		Message:   "Too many requests",
		Details:   fmt.Sprintf("clientKey: %s", clientKey),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// CodeOf extracts the error code from an error chain, or empty string.
func CodeOf(err error) ErrorCode {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code
	}
	return ""
}

// IsCode reports whether err carries the given error code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// BackendStatusCode returns the HTTP status embedded in a BACKEND_HTTP_ERROR,
// or 0 for any other error.
func BackendStatusCode(err error) int {
	var stdErr *StandardError
	if !errors.As(err, &stdErr) || stdErr.Code != ErrCodeBackendHTTP {
		return 0
	}
	if sc, ok := stdErr.Metadata["statusCode"].(int); ok {
		return sc
	}
	return 0
}

// HTTPStatus maps an error to the status the API surface should respond with.
var httpStatusMapping = map[ErrorCode]int{
	ErrCodeConfigurationMissing: http.StatusServiceUnavailable,
	ErrCodeBackendHTTP:          http.StatusBadGateway,
	ErrCodeSearchUnavailable:    http.StatusServiceUnavailable,
	ErrCodeRequestInvalid:       http.StatusBadRequest,
	ErrCodeRateLimited:          http.StatusTooManyRequests,
}

func HTTPStatus(err error) int {
	if status, exists := httpStatusMapping[CodeOf(err)]; exists {
		return status
	}
	return http.StatusInternalServerError
}
