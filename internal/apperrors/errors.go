package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrUnauthorized indicates missing, expired or rejected credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrNetwork indicates that a remote service could not be reached.
var ErrNetwork = errors.New("network error")

// ErrUnsupportedCurrency indicates a currency code outside the supported set.
var ErrUnsupportedCurrency = errors.New("unsupported currency")

// ErrInvalidTransition indicates a wizard was asked to move where it cannot go.
var ErrInvalidTransition = errors.New("invalid step transition")

// APIError is a non-2xx reply from the backend API.
// Payload holds the decoded JSON body when it was an object.
type APIError struct {
	Status  int
	Payload map[string]any
	Body    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend responded with status %d", e.Status)
}

// Unwrap lets errors.Is(err, ErrUnauthorized) match 401 replies.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest:
		return ErrValidation
	}
	return nil
}

// AsAPIError returns the *APIError in err's chain, if any.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsUnauthorized reports whether err means the stored credentials are no longer usable.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
