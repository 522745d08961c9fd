package api

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError represents an error response from the helpdesk API. Detail
// carries the backend's human-readable message when one was provided.
type APIError struct {
	StatusCode int    `json:"status_code"`
	Detail     string `json:"detail"`
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("helpdesk API error (%d): %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("helpdesk API error (%d)", e.StatusCode)
}

// NewAPIError creates a new API error.
func NewAPIError(statusCode int, detail string) *APIError {
	return &APIError{StatusCode: statusCode, Detail: detail}
}

// Common error values.
var (
	// ErrUnauthorized represents a 401 Unauthorized response.
	ErrUnauthorized = &APIError{
		StatusCode: http.StatusUnauthorized,
		Detail:     "unauthorized",
	}

	// ErrForbidden represents a 403 Forbidden response.
	ErrForbidden = &APIError{
		StatusCode: http.StatusForbidden,
		Detail:     "forbidden",
	}

	// ErrNotFound represents a 404 Not Found response.
	ErrNotFound = &APIError{
		StatusCode: http.StatusNotFound,
		Detail:     "resource not found",
	}

	// ErrNotLoggedIn is returned for calls that require a session when the
	// store is empty.
	ErrNotLoggedIn = errors.New("not logged in: run 'supportdesk login' first")
)

// statusOf extracts the HTTP status from an error chain, or 0.
func statusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsUnauthorized reports whether err is a 401 API error.
func IsUnauthorized(err error) bool {
	return statusOf(err) == http.StatusUnauthorized
}

// IsForbidden reports whether err is a 403 API error.
func IsForbidden(err error) bool {
	return statusOf(err) == http.StatusForbidden
}

// IsNotFound reports whether err is a 404 API error.
func IsNotFound(err error) bool {
	return statusOf(err) == http.StatusNotFound
}

// Detail returns the server-provided message from err, or fallback when err
// carries none. Every view turns request failures into a toast through this.
func Detail(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}

// NetworkError represents a transport-level failure before any HTTP status
// was received.
type NetworkError struct {
	Operation string
	URL       string
	Err       error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error during %s to %s: %v", e.Operation, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
