package api

import (
	"context"
	"net/url"

	"github.com/go-resty/resty/v2"

	"github.com/bquirin/MonzoAPIWrapper/client/internal/types"
)

// GetPots returns the pots attached to the current account.
func GetPots(ctx context.Context, rc *resty.Client, currentAccountID string) (types.Document, error) {
	if err := types.ValidateIDPresent(currentAccountID, "current_account_id"); err != nil {
		return nil, err
	}
	params := url.Values{"current_account_id": {currentAccountID}}
	return GetDocument(ctx, rc, "get_pots", "/pots", params)
}
