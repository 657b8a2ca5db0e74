package types

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// AccessTokenLength is the exact length of a Monzo access token.
const AccessTokenLength = 239

// ------------------------------
// Shared Errors
// ------------------------------

var (
	// ErrInvalidTokenShape is wrapped by every access token validation failure.
	ErrInvalidTokenShape = errors.New("invalid access token")
	// ErrTokenType means the token was not a string.
	ErrTokenType = errors.New("access token should be a string")
	// ErrTokenLength means the token had the wrong number of characters.
	ErrTokenLength = errors.New("access token has the wrong length")

	// ErrMissingID is returned when a required identifier argument is empty.
	ErrMissingID = errors.New("identifier is required")
	// ErrMissingField is returned when a response lacks a field the client depends on.
	ErrMissingField = errors.New("response field missing")
)

// ValidateAccessToken checks the token is a string of exactly AccessTokenLength characters.
func ValidateAccessToken(token any) error {
	s, ok := token.(string)
	if !ok {
		return fmt.Errorf("%w: %w (got %T)", ErrInvalidTokenShape, ErrTokenType, token)
	}
	if n := utf8.RuneCountInString(s); n != AccessTokenLength {
		return fmt.Errorf("%w: %w: got %d characters, want %d", ErrInvalidTokenShape, ErrTokenLength, n, AccessTokenLength)
	}
	return nil
}

// ValidateIDPresent ensures an opaque identifier was supplied.
func ValidateIDPresent(id, fieldName string) error {
	if id == "" {
		return fmt.Errorf("%s: %w", fieldName, ErrMissingID)
	}
	return nil
}

// AccountIDs extracts the id of every item of the "accounts" array, in order.
func AccountIDs(doc Document) ([]string, error) {
	raw, ok := doc["accounts"]
	if !ok {
		return nil, fmt.Errorf("%w: accounts", ErrMissingField)
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: accounts is %T, want array", ErrMissingField, raw)
	}
	ids := make([]string, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: accounts[%d] is %T, want object", ErrMissingField, i, item)
		}
		id, ok := obj["id"].(string)
		if !ok || id == "" {
			return nil, fmt.Errorf("%w: accounts[%d].id", ErrMissingField, i)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
