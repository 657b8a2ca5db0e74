package errors

import (
	"net/http"
	"unicode/utf8"
)

// maxBodyInError bounds how much of an error response is kept for diagnostics.
const maxBodyInError = 4096

// NewHTTPError builds the error for a non-200 response of the named operation.
func NewHTTPError(operation string, statusCode int, body []byte) *HTTPError {
	if len(body) > maxBodyInError {
		cut := maxBodyInError
		// Back off to a rune boundary so the kept body stays valid UTF-8.
		for cut > 0 && !utf8.RuneStart(body[cut]) {
			cut--
		}
		body = body[:cut]
	}
	return &HTTPError{
		Operation:  operation,
		StatusCode: statusCode,
		Body:       string(body),
		Category:   categoryForStatus(statusCode),
	}
}

// NewDecodeError wraps a JSON decoding failure.
func NewDecodeError(operation string, err error) *DecodeError {
	return &DecodeError{Operation: operation, Underlying: err}
}

// NewNetworkError wraps a transport-level failure.
func NewNetworkError(operation string, err error) *NetworkError {
	return &NetworkError{Operation: operation, Underlying: err}
}

// categoryForStatus maps HTTP status codes to error categories:
// 4xx are irrecoverable except 408 and 429, 5xx and anything unexpected are recoverable.
func categoryForStatus(statusCode int) ErrorCategory {
	switch {
	case statusCode >= 400 && statusCode < 500:
		switch statusCode {
		case http.StatusRequestTimeout, http.StatusTooManyRequests:
			return Recoverable
		default:
			return Irrecoverable
		}
	case statusCode >= 500 && statusCode < 600:
		return Recoverable
	default:
		return Recoverable
	}
}
