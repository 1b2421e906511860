package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an error so callers can branch on the failure class
// without string matching.
type Kind string

const (
	KindAuth        Kind = "auth"
	KindValidation  Kind = "validation"
	KindNotFound    Kind = "not_found"
	KindPersistence Kind = "persistence"
	KindConcurrency Kind = "concurrency"
	KindInternal    Kind = "internal"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Kind    Kind         `json:"kind"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrNotFound       = &AppError{Code: http.StatusNotFound, Kind: KindNotFound, Message: "Resource not found"}
	ErrUnauthorized   = &AppError{Code: http.StatusUnauthorized, Kind: KindAuth, Message: "Unauthorized"}
	ErrForbidden      = &AppError{Code: http.StatusForbidden, Kind: KindAuth, Message: "Forbidden"}
	ErrBadRequest     = &AppError{Code: http.StatusBadRequest, Kind: KindValidation, Message: "Bad request"}
	ErrInternalServer = &AppError{Code: http.StatusInternalServerError, Kind: KindInternal, Message: "Internal server error"}

	ErrOperatorNotFound = &AppError{Code: http.StatusNotFound, Kind: KindNotFound, Message: "Operator not found"}

	// Identity provider failures; each gets its own message because the
	// till operator needs different guidance for each.
	ErrInvalidCredentials = &AppError{Code: http.StatusUnauthorized, Kind: KindAuth, Message: "Invalid email or password"}
	ErrAuthNetwork        = &AppError{Code: http.StatusBadGateway, Kind: KindAuth, Message: "Could not reach the sign-in service, check your connection"}
	ErrAuthRateLimited    = &AppError{Code: http.StatusTooManyRequests, Kind: KindAuth, Message: "Too many failed attempts, wait a few minutes and try again"}
	ErrAuthDisabled       = &AppError{Code: http.StatusForbidden, Kind: KindAuth, Message: "This sign-in method is disabled"}
	ErrTokenExpired       = &AppError{Code: http.StatusUnauthorized, Kind: KindAuth, Message: "Token has expired"}
	ErrInvalidToken       = &AppError{Code: http.StatusUnauthorized, Kind: KindAuth, Message: "Invalid token"}

	// ErrPaymentInFlight is returned while another payment is being
	// processed anywhere in the session.
	ErrPaymentInFlight = &AppError{Code: http.StatusConflict, Kind: KindConcurrency, Message: "Another payment is already being processed"}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    KindInternal,
		Message: message,
	}
}

// NewValidationError creates a validation error with a custom message
func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindValidation,
		Message: message,
	}
}

// NewFieldValidationError creates a validation error for specific fields
func NewFieldValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindValidation,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Kind:    KindNotFound,
		Message: resource + " not found",
	}
}

// NewPersistenceError wraps a document store failure
func NewPersistenceError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadGateway,
		Kind:    KindPersistence,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Kind:    KindValidation,
		Message: message,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// IsKind reports whether err is an AppError of the given kind
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindInternal,
		Message: err.Error(),
	}
}
