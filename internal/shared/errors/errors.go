package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType classifies application errors by how the boundary must react to them.
type ErrorType string

const (
	ErrorTypeValidation    ErrorType = "VALIDATION_ERROR"
	ErrorTypeConfiguration ErrorType = "CONFIGURATION_ERROR"
	ErrorTypeSchemaFetch   ErrorType = "SCHEMA_FETCH_ERROR"
	ErrorTypeRemoteWrite   ErrorType = "REMOTE_WRITE_ERROR"
	ErrorTypeUnresolved    ErrorType = "REFERENCE_UNRESOLVED"
	ErrorTypePartialBatch  ErrorType = "PARTIAL_BATCH_FAILURE"
	ErrorTypeTotalBatch    ErrorType = "TOTAL_BATCH_FAILURE"
	ErrorTypeInternal      ErrorType = "INTERNAL_ERROR"
)

// Common application errors
var (
	ErrMissingClient       = errors.New("workspace client not configured")
	ErrMissingCollectionID = errors.New("collection identifier missing")
	ErrInvalidInput        = errors.New("invalid input")
	ErrRecordNotFound      = errors.New("record not found")
)

// AppError represents an application error with enough context for the boundary
// to pick a transport status and for logs to reproduce the failure.
type AppError struct {
	Type     ErrorType              `json:"type"`
	Message  string                 `json:"message"`
	Code     string                 `json:"code,omitempty"`
	HTTPCode int                    `json:"-"`
	Details  map[string]interface{} `json:"details,omitempty"`
	Cause    error                  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new application error
func NewAppError(errorType ErrorType, message string, httpCode int) *AppError {
	return &AppError{
		Type:     errorType,
		Message:  message,
		HTTPCode: httpCode,
	}
}

// WithCode adds an error code
func (e *AppError) WithCode(code string) *AppError {
	e.Code = code
	return e
}

// WithCause adds the underlying cause
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail adds a detail field
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// NewValidationError creates a validation error. Validation errors are surfaced
// immediately and never reach the remote store.
func NewValidationError(message string) *AppError {
	return NewAppError(ErrorTypeValidation, message, http.StatusBadRequest)
}

// NewConfigurationError creates a configuration error, surfaced as service-unavailable.
func NewConfigurationError(message string) *AppError {
	return NewAppError(ErrorTypeConfiguration, message, http.StatusServiceUnavailable)
}

// NewSchemaFetchError creates an error for a failed remote schema fetch. A fetch
// failure is fatal to the calling operation; an empty-schema fallback would make
// every filter silently drop.
func NewSchemaFetchError(collectionID string, cause error) *AppError {
	return NewAppError(ErrorTypeSchemaFetch,
		fmt.Sprintf("failed to fetch schema for collection %s", collectionID),
		http.StatusServiceUnavailable).WithCause(cause)
}

// NewRemoteWriteError creates a per-record write error, tallied rather than raised.
func NewRemoteWriteError(message string, cause error) *AppError {
	return NewAppError(ErrorTypeRemoteWrite, message, http.StatusBadGateway).WithCause(cause)
}

// NewInternalError creates an internal server error
func NewInternalError(message string) *AppError {
	return NewAppError(ErrorTypeInternal, message, http.StatusInternalServerError)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == ErrorTypeValidation
	}
	return errors.Is(err, ErrInvalidInput)
}

// IsConfiguration checks if an error is a configuration error
func IsConfiguration(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == ErrorTypeConfiguration
	}
	return errors.Is(err, ErrMissingClient) || errors.Is(err, ErrMissingCollectionID)
}

// IsSchemaFetch checks if an error is a schema fetch error
func IsSchemaFetch(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == ErrorTypeSchemaFetch
	}
	return false
}
