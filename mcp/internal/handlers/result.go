package handlers

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/bquirin/MonzoAPIWrapper/client"
)

// jsonResult renders v as the text content of a tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

// toolError turns an SDK error into a tool-level error result. API failures
// keep their status so the model can tell a bad id from an expired token.
func toolError(action string, err error) *mcp.CallToolResult {
	if httpErr, ok := client.AsHTTPError(err); ok {
		return mcp.NewToolResultError(fmt.Sprintf("failed to %s: Monzo API returned HTTP %d (%s): %s",
			action, httpErr.StatusCode, httpErr.Category, httpErr.Body))
	}
	var decErr *client.DecodeError
	if errors.As(err, &decErr) {
		return mcp.NewToolResultError(fmt.Sprintf("failed to %s: unreadable response: %v", action, decErr.Underlying))
	}
	return mcp.NewToolResultError(fmt.Sprintf("failed to %s: %v", action, err))
}
