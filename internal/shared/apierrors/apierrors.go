// Package apierrors defines the uniform error contract of the admin API.
// Every failure surfaces to the client as {"error": "..."} with an HTTP
// status from the taxonomy: 400 validation, 401 authentication, 403
// authorization, 404 unknown resource, 500 everything else.
package apierrors

import (
	"fmt"
	"net/http"
)

// APIError is an error carrying the HTTP status it should surface with.
type APIError struct {
	// Status is the HTTP status code for this occurrence.
	Status int `json:"-"`
	// Message is the client-facing error string.
	Message string `json:"error"`
}

// Error implements the error interface.
func (e APIError) Error() string {
	return e.Message
}

// WithMessage returns a copy with the given client-facing message.
func (e APIError) WithMessage(format string, args ...any) APIError {
	e.Message = fmt.Sprintf(format, args...)
	return e
}

// Pre-defined templates for the common taxonomy.
var (
	// ErrBadRequest indicates the request failed validation.
	ErrBadRequest = APIError{
		Status:  http.StatusBadRequest,
		Message: "Bad request",
	}

	// ErrUnauthorized indicates missing or invalid authentication.
	ErrUnauthorized = APIError{
		Status:  http.StatusUnauthorized,
		Message: "Unauthorized - Please login",
	}

	// ErrForbidden indicates the caller lacks the required role.
	ErrForbidden = APIError{
		Status:  http.StatusForbidden,
		Message: "Forbidden - Super Admin access required",
	}

	// ErrNotFound indicates the requested resource was not found.
	ErrNotFound = APIError{
		Status:  http.StatusNotFound,
		Message: "Resource not found",
	}

	// ErrInternal indicates an unexpected server error. The underlying cause
	// is logged server-side and never leaked to the caller.
	ErrInternal = APIError{
		Status:  http.StatusInternalServerError,
		Message: "Internal server error",
	}
)

// NotFound builds a 404 for a specific resource type.
func NotFound(resource string) APIError {
	return ErrNotFound.WithMessage("%s not found", resource)
}

// Validation builds a 400 with the given message.
func Validation(format string, args ...any) APIError {
	return ErrBadRequest.WithMessage(format, args...)
}
