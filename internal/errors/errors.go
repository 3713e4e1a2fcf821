package errors

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a backend lookup matches no row or object.
var ErrNotFound = errors.New("record not found")

// BackendError carries the status and message reported by the backend
// provider. Callers treat every BackendError uniformly; the detail exists
// for logs only.
type BackendError struct {
	StatusCode int
	Message    string
}

func (e *BackendError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend error: status %d: %s", e.StatusCode, e.Message)
}

// NewBackendError creates a backend error from a provider response.
func NewBackendError(statusCode int, message string) *BackendError {
	return &BackendError{
		StatusCode: statusCode,
		Message:    message,
	}
}

// IsBackendError reports whether err wraps a BackendError.
func IsBackendError(err error) bool {
	var be *BackendError
	return errors.As(err, &be)
}
