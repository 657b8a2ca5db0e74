package handlers

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/bquirin/MonzoAPIWrapper/client"
	"github.com/bquirin/MonzoAPIWrapper/internal/window"
)

// TransactionHandler exposes transaction listing and lookup.
type TransactionHandler struct {
	client *client.Client
	now    func() time.Time
}

func NewTransactionHandler(c *client.Client) *TransactionHandler {
	return &TransactionHandler{client: c, now: time.Now}
}

func (th *TransactionHandler) RegisterTools(s *server.MCPServer) error {
	list := mcp.NewTool("list_transactions",
		mcp.WithDescription("List transactions of an account with merchants expanded. "+
			"since/before accept RFC 3339 timestamps or relative durations such as 7d or 12h; since also accepts a transaction id"),
		mcp.WithString("account_id", mcp.Required(), mcp.Description("Account id")),
		mcp.WithString("since", mcp.Description("Lower bound (optional)")),
		mcp.WithString("before", mcp.Description("Upper bound (optional)")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of transactions (optional)")),
	)
	get := mcp.NewTool("get_transaction",
		mcp.WithDescription("Get a single transaction with its merchant expanded"),
		mcp.WithString("transaction_id", mcp.Required(), mcp.Description("Transaction id, e.g. tx_00009...")),
	)

	s.AddTool(list, th.handleListTransactions)
	s.AddTool(get, th.handleGetTransaction)
	return nil
}

func (th *TransactionHandler) handleListTransactions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	accountID, err := req.RequireString("account_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	now := th.now()
	since, err := window.Resolve(req.GetString("since", ""), window.Since, now)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	before, err := window.Resolve(req.GetString("before", ""), window.Before, now)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	q := client.TransactionsQuery{Since: since, Before: before, Limit: req.GetInt("limit", 0)}

	log.Debug().
		Str("account_id", accountID).
		Str("since", q.Since).
		Str("before", q.Before).
		Int("limit", q.Limit).
		Msg("list_transactions invoked")

	start := time.Now()
	doc, err := th.client.GetTransactions(ctx, accountID, q)
	elapsed := time.Since(start)
	if err != nil {
		log.Error().Err(err).Str("account_id", accountID).Dur("elapsed", elapsed).Msg("list_transactions failed")
		return toolError("list transactions", err), nil
	}
	return jsonResult(doc)
}

func (th *TransactionHandler) handleGetTransaction(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	txID, err := req.RequireString("transaction_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	log.Debug().Str("transaction_id", txID).Msg("get_transaction invoked")

	start := time.Now()
	doc, err := th.client.GetTransaction(ctx, txID)
	elapsed := time.Since(start)
	if err != nil {
		log.Error().Err(err).Str("transaction_id", txID).Dur("elapsed", elapsed).Msg("get_transaction failed")
		return toolError("get transaction", err), nil
	}
	return jsonResult(doc)
}
