package client

import "github.com/bquirin/MonzoAPIWrapper/client/internal/types"

// Public type aliases so SDK consumers can import only the client package.
type (
	// Responses
	Document = types.Document
	Response = types.Response

	// Requests
	TransactionsQuery = types.TransactionsQuery

	// Domain entities
	WhoamiInfo  = types.WhoamiInfo
	Account     = types.Account
	Owner       = types.Owner
	Balance     = types.Balance
	Transaction = types.Transaction
	Merchant    = types.Merchant
	Pot         = types.Pot
)

// FormatAmount renders an amount in minor units as "GBP 12.34".
func FormatAmount(amount int64, currency string) string {
	return types.FormatAmount(amount, currency)
}
