// File: internal/api/errors.go
package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrTransport covers network failures and timeouts where no response was received
	ErrTransport = errors.New("transport failure")
	// ErrMalformedPayload indicates a response body that could not be decoded or lacked required fields
	ErrMalformedPayload = errors.New("malformed response payload")
	// ErrUnauthorized matches 401 and 403 responses (missing, invalid, or expired token)
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound matches 404 responses
	ErrNotFound = errors.New("resource not found")
	// ErrZeroAccessKey is returned before dispatch when a file call carries no resolved access key
	ErrZeroAccessKey = errors.New("access key is required")
)

// StatusError is returned for any non-2xx response
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("server returned %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Body)
}

// Is lets callers match a StatusError against ErrUnauthorized and ErrNotFound
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}
