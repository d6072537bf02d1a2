package seoapi

import (
	"errors"
	"fmt"
)

// ErrPollTimeout is returned when an asynchronous provider task does not
// complete within the configured number of poll attempts.
var ErrPollTimeout = errors.New("task polling exceeded attempt limit")

// ErrMissingAPIKey is returned when the client is constructed without
// credentials.
var ErrMissingAPIKey = errors.New("api key is not configured")

// APIError represents a non-2xx response from the provider. The status
// code and response body are preserved so callers can distinguish rate
// limiting from bad requests.
type APIError struct {
	// Status is the HTTP status code.
	Status int

	// Body is the raw response body, truncated to a reasonable size.
	Body string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("api request failed with status %d: %s", e.Status, e.Body)
}
