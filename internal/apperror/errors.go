// Package apperror provides domain-specific error types for the portal
// backend. These errors carry an HTTP status code and a user-safe message.
// The Echo error handler maps them to the JSON error envelope automatically.
//
// NEVER return raw database or infrastructure errors to the client. Always
// wrap them in an apperror type or return a generic internal error.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the base error type for all domain errors. It carries an
// HTTP status code, a machine-readable error type, and a human-readable
// message safe to show to the client.
type AppError struct {
	// Code is the HTTP status code (e.g., 404, 400, 500).
	Code int `json:"-"`

	// Type is a machine-readable error classifier (e.g., "duplicate_email").
	Type string `json:"type"`

	// Message is a human-readable description safe for the client.
	Message string `json:"message"`

	// Internal holds the underlying error for logging. Never exposed to client.
	Internal error `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (internal: %v)", e.Type, e.Message, e.Internal)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *AppError) Unwrap() error {
	return e.Internal
}

// --- Constructors for the portal error taxonomy ---

// NewValidation creates a 400 error for missing or malformed input.
func NewValidation(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Type:    "validation_error",
		Message: message,
	}
}

// NewDuplicateEmail creates the 400 registration-conflict error. The
// message matches what the mobile client surfaces verbatim.
func NewDuplicateEmail() *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Type:    "duplicate_email",
		Message: "E-mail já cadastrado",
	}
}

// NewInvalidCredentials creates the 401 login-failure error. The same
// message is used whether the email is unknown or the password is wrong,
// so the response never reveals which accounts exist.
func NewInvalidCredentials() *AppError {
	return &AppError{
		Code:    http.StatusUnauthorized,
		Type:    "invalid_credentials",
		Message: "E-mail ou senha incorretos",
	}
}

// NewInvalidToken creates a 401 error for a token with a bad signature,
// malformed structure, or revoked ID.
func NewInvalidToken() *AppError {
	return &AppError{
		Code:    http.StatusUnauthorized,
		Type:    "invalid_token",
		Message: "Token inválido",
	}
}

// NewExpiredToken creates a 401 error for a well-formed token past its
// expiry. Clients must log in again; there is no sliding renewal.
func NewExpiredToken() *AppError {
	return &AppError{
		Code:    http.StatusUnauthorized,
		Type:    "expired_token",
		Message: "Sessão expirada, faça login novamente",
	}
}

// NewUnauthorized creates a generic 401 error (missing bearer token).
func NewUnauthorized(message string) *AppError {
	return &AppError{
		Code:    http.StatusUnauthorized,
		Type:    "unauthorized",
		Message: message,
	}
}

// NewForbidden creates a 403 error for authenticated users lacking the
// required role.
func NewForbidden(message string) *AppError {
	return &AppError{
		Code:    http.StatusForbidden,
		Type:    "forbidden",
		Message: message,
	}
}

// NewNotFound creates a 404 Not Found error.
func NewNotFound(message string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Type:    "not_found",
		Message: message,
	}
}

// NewStoreUnavailable creates a 500 error for persistence-layer failures.
// The real error is stored in Internal for logging but the client only
// sees a generic connection message.
func NewStoreUnavailable(err error) *AppError {
	return &AppError{
		Code:     http.StatusInternalServerError,
		Type:     "store_unavailable",
		Message:  "Erro de conexão, tente novamente",
		Internal: err,
	}
}

// NewInternal creates a 500 Internal Server Error for unexpected failures.
func NewInternal(err error) *AppError {
	return &AppError{
		Code:     http.StatusInternalServerError,
		Type:     "internal_error",
		Message:  "Erro inesperado, tente novamente",
		Internal: err,
	}
}

// IsCode reports whether err is an *AppError with the given HTTP status.
func IsCode(err error, code int) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// SafeMessage returns the client-safe error message from an error. If the
// error is an AppError, returns its Message field (which is safe to expose).
// For any other error type, returns a generic message to prevent leaking
// internal details like table names, query structure, or stack traces.
func SafeMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Erro inesperado, tente novamente"
}

// SafeCode returns the HTTP status code from an AppError, or 500 for
// any other error type.
func SafeCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return http.StatusInternalServerError
}
