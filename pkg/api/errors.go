package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrValidation indicates a request failed local validation and never
	// reached the wire
	ErrValidation = errors.New("api.validation_failed")

	// ErrRequestFailed indicates the request could not be sent or completed
	ErrRequestFailed = errors.New("api.request_failed")
)

// Error is a failed API response. Message carries the server's human-readable
// message verbatim; callers surface it to the user as-is.
type Error struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// IsUnauthorized reports whether err is an API error with status 401. The
// session store treats this as a revoked token.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}
