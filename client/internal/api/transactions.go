package api

import (
	"context"
	"net/url"

	"github.com/go-resty/resty/v2"

	"github.com/bquirin/MonzoAPIWrapper/client/internal/types"
)

// GetTransactions lists transactions of accountID with merchants expanded.
func GetTransactions(ctx context.Context, rc *resty.Client, accountID string, q types.TransactionsQuery) (types.Document, error) {
	params, err := q.Values(accountID)
	if err != nil {
		return nil, err
	}
	return GetDocument(ctx, rc, "get_transactions", "/transactions", params)
}

// GetTransaction fetches one transaction with its merchant expanded.
func GetTransaction(ctx context.Context, rc *resty.Client, transactionID string) (types.Document, error) {
	if err := types.ValidateIDPresent(transactionID, "transaction_id"); err != nil {
		return nil, err
	}
	params := url.Values{"expand[]": {"merchant"}}
	return GetDocument(ctx, rc, "get_transaction", "/transactions/"+url.PathEscape(transactionID), params)
}
