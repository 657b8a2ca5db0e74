package handlers

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/bquirin/MonzoAPIWrapper/client"
)

// AccountHandler exposes identity, account and balance tools.
type AccountHandler struct {
	client *client.Client
}

func NewAccountHandler(c *client.Client) *AccountHandler { return &AccountHandler{client: c} }

func (ah *AccountHandler) RegisterTools(s *server.MCPServer) error {
	whoami := mcp.NewTool("whoami",
		mcp.WithDescription("Describe the access token in use (authenticated flag, client_id, user_id)"),
	)
	listAccounts := mcp.NewTool("list_accounts",
		mcp.WithDescription("List the accounts owned by the authenticated user"),
	)
	listIDs := mcp.NewTool("list_account_ids",
		mcp.WithDescription("List only the account ids, in the order Monzo returns them"),
	)
	balance := mcp.NewTool("get_balance",
		mcp.WithDescription("Get the balance of an account, raw plus formatted in major units"),
		mcp.WithString("account_id", mcp.Required(), mcp.Description("Account id, e.g. acc_00009...")),
	)

	s.AddTool(whoami, ah.handleWhoami)
	s.AddTool(listAccounts, ah.handleListAccounts)
	s.AddTool(listIDs, ah.handleListAccountIDs)
	s.AddTool(balance, ah.handleGetBalance)
	return nil
}

func (ah *AccountHandler) handleWhoami(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log.Debug().Msg("whoami invoked")

	start := time.Now()
	doc, err := ah.client.Whoami(ctx)
	elapsed := time.Since(start)
	if err != nil {
		log.Error().Err(err).Dur("elapsed", elapsed).Msg("whoami failed")
		return toolError("describe access token", err), nil
	}
	return jsonResult(doc)
}

func (ah *AccountHandler) handleListAccounts(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log.Debug().Msg("list_accounts invoked")

	start := time.Now()
	doc, err := ah.client.GetAccounts(ctx)
	elapsed := time.Since(start)
	if err != nil {
		log.Error().Err(err).Dur("elapsed", elapsed).Msg("list_accounts failed")
		return toolError("list accounts", err), nil
	}
	return jsonResult(doc)
}

func (ah *AccountHandler) handleListAccountIDs(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log.Debug().Msg("list_account_ids invoked")

	start := time.Now()
	ids, err := ah.client.GetAccountIDs(ctx)
	elapsed := time.Since(start)
	if err != nil {
		log.Error().Err(err).Dur("elapsed", elapsed).Msg("list_account_ids failed")
		return toolError("list account ids", err), nil
	}
	log.Debug().Int("count", len(ids)).Dur("elapsed", elapsed).Msg("list_account_ids completed")
	return jsonResult(map[string]any{"account_ids": ids})
}

func (ah *AccountHandler) handleGetBalance(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	accountID, err := req.RequireString("account_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	log.Debug().Str("account_id", accountID).Msg("get_balance invoked")

	start := time.Now()
	doc, err := ah.client.GetBalance(ctx, accountID)
	elapsed := time.Since(start)
	if err != nil {
		log.Error().Err(err).Str("account_id", accountID).Dur("elapsed", elapsed).Msg("get_balance failed")
		return toolError("get balance", err), nil
	}

	out := map[string]any{"balance": doc}
	var b client.Balance
	if err := doc.Decode(&b); err == nil && b.Currency != "" {
		out["formatted"] = map[string]string{
			"balance":       client.FormatAmount(b.Balance, b.Currency),
			"total_balance": client.FormatAmount(b.TotalBalance, b.Currency),
			"spend_today":   client.FormatAmount(b.SpendToday, b.Currency),
		}
	}
	return jsonResult(out)
}
