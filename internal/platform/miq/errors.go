package miq

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx response from the management server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned status %d: %s", e.StatusCode, e.Message)
}

// IsNotFound checks if an error is a 404 from the management server.
func IsNotFound(err error) bool {
	return isStatus(err, http.StatusNotFound)
}

// IsUnauthorized checks if an error indicates rejected credentials.
func IsUnauthorized(err error) bool {
	return isStatus(err, http.StatusUnauthorized) || isStatus(err, http.StatusForbidden)
}

func isStatus(err error, code int) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == code
	}
	return false
}
