package api

import (
	"context"
	"net/url"

	"github.com/go-resty/resty/v2"

	"github.com/bquirin/MonzoAPIWrapper/client/internal/types"
)

// GetAccounts returns the /accounts document.
func GetAccounts(ctx context.Context, rc *resty.Client) (types.Document, error) {
	return GetDocument(ctx, rc, "get_accounts", "/accounts", nil)
}

// GetAccountIDs returns the id of every account listed by /accounts, in response order.
func GetAccountIDs(ctx context.Context, rc *resty.Client) ([]string, error) {
	doc, err := GetAccounts(ctx, rc)
	if err != nil {
		return nil, err
	}
	return types.AccountIDs(doc)
}

// GetBalance returns the /balance document for accountID.
func GetBalance(ctx context.Context, rc *resty.Client, accountID string) (types.Document, error) {
	if err := types.ValidateIDPresent(accountID, "account_id"); err != nil {
		return nil, err
	}
	params := url.Values{"account_id": {accountID}}
	return GetDocument(ctx, rc, "get_balance", "/balance", params)
}
