package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	CodeInternal     = "INTERNAL_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeConflict     = "CONFLICT"
	CodeRateLimited  = "RATE_LIMITED"
	CodeBadRequest   = "BAD_REQUEST"
	CodeReadOnly     = "READ_ONLY"

	// Bootstrap failures. None of these are recoverable.
	CodeUnknownDeploymentStage   = "UNKNOWN_DEPLOYMENT_STAGE"
	CodeInvalidEnvironmentValue  = "INVALID_ENVIRONMENT_VALUE"
	CodeBackendConnectionFailure = "BACKEND_CONNECTION_FAILURE"
)

// AppError represents an application error with context
type AppError struct {
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Details    map[string]string `json:"details,omitempty"`
	StatusCode int               `json:"-"`
	Err        error             `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail adds a detail to the error
func (e *AppError) WithDetail(key, value string) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithError wraps an underlying error
func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

// New creates a new AppError
func New(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// Internal creates an internal server error
func Internal(message string) *AppError {
	return New(CodeInternal, message, http.StatusInternalServerError)
}

// NotFound creates a not found error
func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

// Validation creates a validation error
func Validation(message string) *AppError {
	return New(CodeValidation, message, http.StatusBadRequest)
}

// Unauthorized creates an unauthorized error
func Unauthorized(message string) *AppError {
	if message == "" {
		message = "unauthorized"
	}
	return New(CodeUnauthorized, message, http.StatusUnauthorized)
}

// Conflict creates a conflict error
func Conflict(message string) *AppError {
	return New(CodeConflict, message, http.StatusConflict)
}

// RateLimited creates a rate limited error
func RateLimited() *AppError {
	return New(CodeRateLimited, "rate limit exceeded", http.StatusTooManyRequests)
}

// BadRequest creates a bad request error
func BadRequest(message string) *AppError {
	return New(CodeBadRequest, message, http.StatusBadRequest)
}

// ReadOnly creates an error for a mutation attempted through a reader-role repository
func ReadOnly(resource string) *AppError {
	return New(CodeReadOnly, fmt.Sprintf("%s repository is read-only", resource), http.StatusForbidden)
}

// UnknownDeploymentStage creates an error for a stage outside TEST, STAGING and PRODUCTION
func UnknownDeploymentStage(value string) *AppError {
	return New(CodeUnknownDeploymentStage, fmt.Sprintf("unknown deployment stage %q", value), http.StatusInternalServerError).
		WithDetail("stage", value)
}

// InvalidEnvironmentValue creates an error for a numeric variable holding a non-numeric value
func InvalidEnvironmentValue(key, value string) *AppError {
	return New(CodeInvalidEnvironmentValue, fmt.Sprintf("environment variable %s has invalid value %q", key, value), http.StatusInternalServerError).
		WithDetail("key", key).
		WithDetail("value", value)
}

// BackendConnectionFailure creates an error for a backend that could not be reached at startup
func BackendConnectionFailure(backend string, err error) *AppError {
	return New(CodeBackendConnectionFailure, fmt.Sprintf("failed to connect to %s", backend), http.StatusServiceUnavailable).
		WithDetail("backend", backend).
		WithError(err)
}

// As attempts to convert an error to a specific type
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts AppError from error if present
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// GetStatusCode returns the HTTP status code for an error
func GetStatusCode(err error) int {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return hasCode(err, CodeNotFound)
}

// IsValidation checks if the error is a validation error
func IsValidation(err error) bool {
	return hasCode(err, CodeValidation)
}

// IsUnauthorized checks if the error is an unauthorized error
func IsUnauthorized(err error) bool {
	return hasCode(err, CodeUnauthorized)
}

// IsConflict checks if the error is a conflict error
func IsConflict(err error) bool {
	return hasCode(err, CodeConflict)
}

// IsReadOnly checks if the error is a read-only repository error
func IsReadOnly(err error) bool {
	return hasCode(err, CodeReadOnly)
}

// IsUnknownDeploymentStage checks if the error is an unknown deployment stage error
func IsUnknownDeploymentStage(err error) bool {
	return hasCode(err, CodeUnknownDeploymentStage)
}

// IsInvalidEnvironmentValue checks if the error is an invalid environment value error
func IsInvalidEnvironmentValue(err error) bool {
	return hasCode(err, CodeInvalidEnvironmentValue)
}

// IsBackendConnectionFailure checks if the error is a backend connection failure
func IsBackendConnectionFailure(err error) bool {
	return hasCode(err, CodeBackendConnectionFailure)
}

func hasCode(err error, code string) bool {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Code == code
	}
	return false
}
