// Package errors defines the failure kinds surfaced by the Monzo client:
// non-200 responses, undecodable bodies and transport failures.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCategory tells callers whether repeating the same request could succeed.
// The client itself never retries.
type ErrorCategory int

const (
	// Recoverable failures may succeed on a later attempt.
	// Examples: 429 Too Many Requests, 500 Internal Server Error, network timeouts.
	Recoverable ErrorCategory = iota

	// Irrecoverable failures will fail again with the same input.
	// Examples: 400 Bad Request, 401 Unauthorized, 404 Not Found.
	Irrecoverable
)

// String returns a human-readable representation of the error category.
func (c ErrorCategory) String() string {
	switch c {
	case Recoverable:
		return "Recoverable"
	case Irrecoverable:
		return "Irrecoverable"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// HTTPError is returned when the API answers with a status other than 200.
type HTTPError struct {
	Operation  string
	StatusCode int
	Body       string
	Category   ErrorCategory
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: HTTP %d", e.Operation, e.StatusCode)
	}
	return fmt.Sprintf("%s: HTTP %d: %s", e.Operation, e.StatusCode, e.Body)
}

// DecodeError is returned when a successful response does not carry the
// expected JSON document.
type DecodeError struct {
	Operation  string
	Underlying error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: decoding response: %v", e.Operation, e.Underlying)
}

func (e *DecodeError) Unwrap() error { return e.Underlying }

// NetworkError wraps failures that happened before any response was read.
type NetworkError struct {
	Operation  string
	Underlying error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s network error: %v", e.Operation, e.Underlying)
}

func (e *NetworkError) Unwrap() error { return e.Underlying }

// IsIrrecoverable reports whether err is an HTTP failure that will not go away on its own.
func IsIrrecoverable(err error) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Category == Irrecoverable
	}
	return false
}
