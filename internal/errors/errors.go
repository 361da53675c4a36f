package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError represents a domain-specific error with a code and message.
type DomainError struct {
	Code    string
	Message string
	Err     error // underlying error for wrapping
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is and errors.As.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new domain error.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error with domain error context.
func WrapError(domainErr *DomainError, err error) *DomainError {
	return &DomainError{
		Code:    domainErr.Code,
		Message: domainErr.Message,
		Err:     err,
	}
}

// Predefined domain errors
var (
	// Account errors
	ErrUserNotFound    = NewDomainError("USER_NOT_FOUND", "user not found")
	ErrDaycareNotFound = NewDomainError("DAYCARE_NOT_FOUND", "daycare not found")
	ErrNotFound        = NewDomainError("NOT_FOUND", "resource not found")
	ErrEmailExists     = NewDomainError("EMAIL_EXISTS", "an account with this email already exists")
	ErrDuplicate       = NewDomainError("CONFLICT", "resource already exists")

	// Authentication errors
	ErrInvalidCredentials = NewDomainError("INVALID_CREDENTIALS", "invalid email or password")
	ErrEmailNotVerified   = NewDomainError("EMAIL_NOT_VERIFIED", "email address has not been verified")
	ErrUnauthorized       = NewDomainError("UNAUTHORIZED", "unauthorized")
	ErrForbidden          = NewDomainError("FORBIDDEN", "access to this resource is not allowed")

	// Token errors. Expired and invalid are distinct kinds: an expired
	// access token tells the client to refresh, an invalid one forces
	// re-login.
	ErrInvalidToken          = NewDomainError("INVALID_TOKEN", "invalid token")
	ErrTokenExpired          = NewDomainError("TOKEN_EXPIRED", "token has expired")
	ErrWrongTokenType        = NewDomainError("WRONG_TOKEN_TYPE", "token type mismatch")
	ErrInvalidRefreshToken   = NewDomainError("INVALID_REFRESH_TOKEN", "invalid refresh token")
	ErrInvalidOrExpiredToken = NewDomainError("INVALID_OR_EXPIRED_TOKEN", "invalid or expired token")

	// Validation errors
	ErrInvalidInput      = NewDomainError("VALIDATION_FAILED", "invalid input")
	ErrIncorrectPassword = NewDomainError("INCORRECT_PASSWORD", "current password is incorrect")

	// System errors
	ErrInternal           = NewDomainError("INTERNAL_ERROR", "internal server error")
	ErrServiceUnavailable = NewDomainError("SERVICE_UNAVAILABLE", "service unavailable")
)

// IsDomainError checks if an error is a domain error.
func IsDomainError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr)
}

// GetDomainError extracts the domain error from an error, or nil.
func GetDomainError(err error) *DomainError {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// ToHTTPStatus maps a domain error code to its HTTP status code.
func ToHTTPStatus(code string) int {
	switch code {
	case "VALIDATION_FAILED", "INVALID_OR_EXPIRED_TOKEN", "INCORRECT_PASSWORD":
		return http.StatusBadRequest
	case "INVALID_CREDENTIALS", "UNAUTHORIZED", "INVALID_TOKEN",
		"TOKEN_EXPIRED", "WRONG_TOKEN_TYPE", "INVALID_REFRESH_TOKEN":
		return http.StatusUnauthorized
	case "EMAIL_NOT_VERIFIED", "FORBIDDEN":
		return http.StatusForbidden
	case "USER_NOT_FOUND", "DAYCARE_NOT_FOUND", "NOT_FOUND":
		return http.StatusNotFound
	case "EMAIL_EXISTS", "CONFLICT":
		return http.StatusConflict
	case "SERVICE_UNAVAILABLE":
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// StatusOf returns the HTTP status for any error, treating non-domain
// errors as internal errors.
func StatusOf(err error) int {
	if de := GetDomainError(err); de != nil {
		return ToHTTPStatus(de.Code)
	}
	return http.StatusInternalServerError
}
