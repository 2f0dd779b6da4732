package datasource

import (
	"errors"
	"fmt"
)

// ErrInvalidCoordinates is returned when a forecast fetch is attempted with
// missing or non-finite coordinates. It is checked before any network call.
var ErrInvalidCoordinates = errors.New("missing or invalid coordinates")

// AuthError means the provider rejected the configured credential.
// Retrying or falling back will not help, so callers propagate it as-is.
type AuthError struct {
	Provider   string
	StatusCode int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s API key rejected (status %d): check the configured credential", e.Provider, e.StatusCode)
}

// APIError represents any other non-success response from a provider
type APIError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s request failed (status %d): %s", e.Provider, e.StatusCode, e.Body)
}

// NetworkError represents a transport-level failure before any response
// was received
type NetworkError struct {
	Provider string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
