package client

import (
	"errors"
	"net/http"

	clienterrors "github.com/bquirin/MonzoAPIWrapper/client/internal/errors"
	"github.com/bquirin/MonzoAPIWrapper/client/internal/types"
)

// Re-export error kinds so callers compare against a single package.
type (
	HTTPError     = clienterrors.HTTPError
	DecodeError   = clienterrors.DecodeError
	NetworkError  = clienterrors.NetworkError
	ErrorCategory = clienterrors.ErrorCategory
)

const (
	Recoverable   = clienterrors.Recoverable
	Irrecoverable = clienterrors.Irrecoverable
)

var (
	ErrInvalidTokenShape = types.ErrInvalidTokenShape
	ErrTokenType         = types.ErrTokenType
	ErrTokenLength       = types.ErrTokenLength
	ErrMissingID         = types.ErrMissingID
	ErrMissingField      = types.ErrMissingField
)

// AsHTTPError returns the *HTTPError in err's chain, if any.
func AsHTTPError(err error) (*HTTPError, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool { return hasStatus(err, http.StatusNotFound) }

// IsUnauthorized reports whether the API rejected the access token.
func IsUnauthorized(err error) bool { return hasStatus(err, http.StatusUnauthorized) }

func hasStatus(err error, code int) bool {
	httpErr, ok := AsHTTPError(err)
	return ok && httpErr.StatusCode == code
}
