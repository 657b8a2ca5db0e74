package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bquirin/MonzoAPIWrapper/client"
)

// stubAPI serves canned bodies keyed by path and remembers the last query.
type stubAPI struct {
	bodies    map[string]string
	status    int
	lastPath  string
	lastQuery url.Values
}

func (s *stubAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.lastPath = r.URL.Path
	s.lastQuery = r.URL.Query()
	w.Header().Set("Content-Type", "application/json")
	if s.status != 0 {
		w.WriteHeader(s.status)
		_, _ = w.Write([]byte(`{"code":"not_found"}`))
		return
	}
	body, ok := s.bodies[r.URL.Path]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	_, _ = w.Write([]byte(body))
}

func newSDK(t *testing.T, stub *stubAPI) *client.Client {
	t.Helper()
	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)
	c, err := client.New(strings.Repeat("t", client.AccessTokenLength), client.WithBaseURL(srv.URL))
	require.NoError(t, err)
	return c
}

func callReq(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{Params: mcp.CallToolParams{Arguments: args}}
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", res.Content[0])
	return tc.Text
}

func TestWhoamiTool(t *testing.T) {
	stub := &stubAPI{bodies: map[string]string{
		"/ping/whoami": `{"authenticated":true,"client_id":"oauth2client_1","user_id":"user_1"}`,
	}}
	ah := NewAccountHandler(newSDK(t, stub))

	res, err := ah.handleWhoami(context.Background(), callReq(nil))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &payload))
	assert.Equal(t, true, payload["authenticated"])
	assert.Equal(t, "user_1", payload["user_id"])
}

func TestListAccountIDsTool(t *testing.T) {
	stub := &stubAPI{bodies: map[string]string{
		"/accounts": `{"accounts":[{"id":"acc_1"},{"id":"acc_2"}]}`,
	}}
	ah := NewAccountHandler(newSDK(t, stub))

	res, err := ah.handleListAccountIDs(context.Background(), callReq(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"account_ids":["acc_1","acc_2"]}`, resultText(t, res))
}

func TestListAccountIDsTool_MalformedResponse(t *testing.T) {
	stub := &stubAPI{bodies: map[string]string{"/accounts": `{"other":[]}`}}
	ah := NewAccountHandler(newSDK(t, stub))

	res, err := ah.handleListAccountIDs(context.Background(), callReq(nil))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestGetBalanceTool(t *testing.T) {
	stub := &stubAPI{bodies: map[string]string{
		"/balance": `{"balance":1234,"total_balance":5000,"currency":"GBP","spend_today":-250}`,
	}}
	ah := NewAccountHandler(newSDK(t, stub))

	res, err := ah.handleGetBalance(context.Background(), callReq(map[string]any{"account_id": "acc_1"}))
	require.NoError(t, err)
	assert.Equal(t, "acc_1", stub.lastQuery.Get("account_id"))

	var payload struct {
		Balance   map[string]any    `json:"balance"`
		Formatted map[string]string `json:"formatted"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &payload))
	assert.Equal(t, float64(1234), payload.Balance["balance"])
	assert.Equal(t, "GBP 12.34", payload.Formatted["balance"])
	assert.Equal(t, "GBP 50.00", payload.Formatted["total_balance"])
	assert.Equal(t, "GBP -2.50", payload.Formatted["spend_today"])
}

func TestGetBalanceTool_MissingAccountID(t *testing.T) {
	ah := NewAccountHandler(newSDK(t, &stubAPI{}))

	res, err := ah.handleGetBalance(context.Background(), callReq(map[string]any{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestGetBalanceTool_HTTPError(t *testing.T) {
	stub := &stubAPI{status: http.StatusForbidden}
	ah := NewAccountHandler(newSDK(t, stub))

	res, err := ah.handleGetBalance(context.Background(), callReq(map[string]any{"account_id": "acc_1"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "HTTP 403")
	assert.Contains(t, resultText(t, res), "Irrecoverable")
}

func TestListTransactionsTool_ResolvesRelativeSince(t *testing.T) {
	stub := &stubAPI{bodies: map[string]string{
		"/transactions": `{"transactions":[{"id":"tx_1","amount":-500,"currency":"GBP"}]}`,
	}}
	th := NewTransactionHandler(newSDK(t, stub))
	th.now = func() time.Time { return time.Date(2024, 5, 8, 9, 0, 0, 0, time.UTC) }

	res, err := th.handleListTransactions(context.Background(), callReq(map[string]any{
		"account_id": "acc_1",
		"since":      "7d",
		"before":     "2024-05-08T00:00:00Z",
		"limit":      float64(25),
	}))
	require.NoError(t, err)
	assert.False(t, res.IsError, resultText(t, res))

	assert.Equal(t, "/transactions", stub.lastPath)
	assert.Equal(t, "merchant", stub.lastQuery.Get("expand[]"))
	assert.Equal(t, "acc_1", stub.lastQuery.Get("account_id"))
	assert.Equal(t, "2024-05-01T09:00:00Z", stub.lastQuery.Get("since"))
	assert.Equal(t, "2024-05-08T00:00:00Z", stub.lastQuery.Get("before"))
	assert.Equal(t, "25", stub.lastQuery.Get("limit"))
	assert.Contains(t, resultText(t, res), "tx_1")
}

func TestListTransactionsTool_OmitsUnsetFilters(t *testing.T) {
	stub := &stubAPI{bodies: map[string]string{"/transactions": `{"transactions":[]}`}}
	th := NewTransactionHandler(newSDK(t, stub))

	res, err := th.handleListTransactions(context.Background(), callReq(map[string]any{"account_id": "acc_1"}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.False(t, stub.lastQuery.Has("since"))
	assert.False(t, stub.lastQuery.Has("before"))
	assert.False(t, stub.lastQuery.Has("limit"))
}

func TestListTransactionsTool_BadWindow(t *testing.T) {
	stub := &stubAPI{}
	th := NewTransactionHandler(newSDK(t, stub))

	res, err := th.handleListTransactions(context.Background(), callReq(map[string]any{
		"account_id": "acc_1",
		"since":      "last tuesday",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Empty(t, stub.lastPath, "no request should be sent")
}

func TestGetTransactionTool(t *testing.T) {
	stub := &stubAPI{bodies: map[string]string{
		"/transactions/tx_9": `{"transaction":{"id":"tx_9","merchant":{"id":"merch_1","name":"Cafe"}}}`,
	}}
	th := NewTransactionHandler(newSDK(t, stub))

	res, err := th.handleGetTransaction(context.Background(), callReq(map[string]any{"transaction_id": "tx_9"}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, "merchant", stub.lastQuery.Get("expand[]"))
	assert.Contains(t, resultText(t, res), "Cafe")
}

func TestGetTransactionTool_NotFound(t *testing.T) {
	th := NewTransactionHandler(newSDK(t, &stubAPI{status: http.StatusNotFound}))

	res, err := th.handleGetTransaction(context.Background(), callReq(map[string]any{"transaction_id": "tx_missing"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "HTTP 404")
}

func TestListPotsTool(t *testing.T) {
	stub := &stubAPI{bodies: map[string]string{
		"/pots": `{"pots":[{"id":"pot_1","name":"Holiday","balance":10000,"currency":"GBP"}]}`,
	}}
	ph := NewPotHandler(newSDK(t, stub))

	res, err := ph.handleListPots(context.Background(), callReq(map[string]any{"current_account_id": "acc_1"}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, "acc_1", stub.lastQuery.Get("current_account_id"))
	assert.Contains(t, resultText(t, res), "Holiday")
}
