package types

import (
	"fmt"
	"net/url"
	"strconv"
)

// ------------------------------
// Request parameters
// ------------------------------

// TransactionsQuery holds the optional filters of the /transactions endpoint.
// Since and Before accept an RFC 3339 timestamp; Since also accepts a
// transaction id. Zero values are left out of the query string.
type TransactionsQuery struct {
	Since  string
	Before string
	Limit  int
}

// Values builds the query string for accountID. Merchant expansion is always requested.
func (q TransactionsQuery) Values(accountID string) (url.Values, error) {
	if err := ValidateIDPresent(accountID, "account_id"); err != nil {
		return nil, err
	}
	if q.Limit < 0 {
		return nil, fmt.Errorf("limit must be >= 0, got %d", q.Limit)
	}
	v := url.Values{}
	v.Set("expand[]", "merchant")
	v.Set("account_id", accountID)
	if q.Since != "" {
		v.Set("since", q.Since)
	}
	if q.Before != "" {
		v.Set("before", q.Before)
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v, nil
}
