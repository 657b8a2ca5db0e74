package handlers

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/bquirin/MonzoAPIWrapper/client"
)

// PotHandler exposes the pots attached to a current account.
type PotHandler struct {
	client *client.Client
}

func NewPotHandler(c *client.Client) *PotHandler { return &PotHandler{client: c} }

func (ph *PotHandler) RegisterTools(s *server.MCPServer) error {
	list := mcp.NewTool("list_pots",
		mcp.WithDescription("List the pots of a current account"),
		mcp.WithString("current_account_id", mcp.Required(), mcp.Description("Current account id")),
	)
	s.AddTool(list, ph.handleListPots)
	return nil
}

func (ph *PotHandler) handleListPots(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	accountID, err := req.RequireString("current_account_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	log.Debug().Str("current_account_id", accountID).Msg("list_pots invoked")

	start := time.Now()
	doc, err := ph.client.GetPots(ctx, accountID)
	elapsed := time.Since(start)
	if err != nil {
		log.Error().Err(err).Str("current_account_id", accountID).Dur("elapsed", elapsed).Msg("list_pots failed")
		return toolError("list pots", err), nil
	}
	return jsonResult(doc)
}
