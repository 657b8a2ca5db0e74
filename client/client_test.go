package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// monzoStub records the last request and answers with a fixed status and body.
type monzoStub struct {
	status int
	body   string
	last   *http.Request
}

func (s *monzoStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.last = r.Clone(context.Background())
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(s.status)
	_, _ = w.Write([]byte(s.body))
}

func newStubClient(t *testing.T, status int, body string) (*Client, *monzoStub) {
	t.Helper()
	stub := &monzoStub{status: status, body: body}
	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)
	c, err := New(testToken, WithBaseURL(srv.URL))
	require.NoError(t, err)
	return c, stub
}

func TestNew_NonStringToken(t *testing.T) {
	for _, v := range []any{10, 3.14, nil, true, []string{testToken}} {
		c, err := NewFromValue(v)
		assert.Nil(t, c)
		require.ErrorIs(t, err, ErrInvalidTokenShape, "value %v", v)
		assert.ErrorIs(t, err, ErrTokenType)
	}
}

func TestNew_WrongLengthToken(t *testing.T) {
	for _, n := range []int{0, 1, 19, AccessTokenLength - 1, AccessTokenLength + 1, 500} {
		c, err := New(strings.Repeat("x", n))
		assert.Nil(t, c)
		require.ErrorIs(t, err, ErrInvalidTokenShape, "length %d", n)
		assert.ErrorIs(t, err, ErrTokenLength)
	}
}

func TestNew_ValidToken(t *testing.T) {
	c, err := New(testToken)
	require.NoError(t, err)
	assert.Equal(t, "https://api.monzo.com", c.BaseURL())
	assert.Equal(t, DefaultHTTPTimeout, c.http.Timeout)

	c, err = NewFromValue(testToken)
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, c.BaseURL())
}

func TestNew_OptionErrorPreventsClient(t *testing.T) {
	c, err := New(testToken, WithHTTPTimeout(-1))
	assert.Nil(t, c)
	assert.Error(t, err)
}

func TestRequest_SendsBearerAndParams(t *testing.T) {
	c, stub := newStubClient(t, http.StatusOK, `{"authenticated":true}`)

	resp, err := c.Request(context.Background(), "/ping/whoami", url.Values{"a": {"1"}, "empty": {""}})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "Bearer "+testToken, stub.last.Header.Get("Authorization"))
	assert.Equal(t, "/ping/whoami", stub.last.URL.Path)
	assert.Equal(t, "a=1", stub.last.URL.RawQuery)

	doc, err := resp.Document()
	require.NoError(t, err)
	assert.Equal(t, true, doc["authenticated"])

	var who WhoamiInfo
	require.NoError(t, resp.Decode(&who))
	assert.True(t, who.Authenticated)
}

func TestGetAccountIDs_ExtractsInOrder(t *testing.T) {
	c, stub := newStubClient(t, http.StatusOK, `{"accounts":[{"id":"acc_1"},{"id":"acc_2"}]}`)

	ids, err := c.GetAccountIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"acc_1", "acc_2"}, ids)
	assert.Equal(t, "/accounts", stub.last.URL.Path)
}

func TestGetAccountIDs_MissingAccounts(t *testing.T) {
	c, _ := newStubClient(t, http.StatusOK, `{"something_else":[]}`)

	_, err := c.GetAccountIDs(context.Background())
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestGetTransactions_QueryParameters(t *testing.T) {
	c, stub := newStubClient(t, http.StatusOK, `{"transactions":[]}`)

	_, err := c.GetTransactions(context.Background(), "acc_1", TransactionsQuery{Since: "2020-01-01T00:00:00Z", Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, "/transactions", stub.last.URL.Path)
	assert.Equal(t, url.Values{
		"expand[]":   {"merchant"},
		"account_id": {"acc_1"},
		"since":      {"2020-01-01T00:00:00Z"},
		"limit":      {"10"},
	}, stub.last.URL.Query())
}

func TestGetTransaction_PathAndExpand(t *testing.T) {
	c, stub := newStubClient(t, http.StatusOK, `{"transaction":{"id":"tx_1"}}`)

	doc, err := c.GetTransaction(context.Background(), "tx_1")
	require.NoError(t, err)
	assert.Equal(t, "/transactions/tx_1", stub.last.URL.Path)
	assert.Equal(t, url.Values{"expand[]": {"merchant"}}, stub.last.URL.Query())
	assert.Contains(t, doc, "transaction")
}

func TestGetBalanceAndPots_Params(t *testing.T) {
	c, stub := newStubClient(t, http.StatusOK, `{"balance":100,"currency":"GBP","pots":[]}`)

	_, err := c.GetBalance(context.Background(), "acc_1")
	require.NoError(t, err)
	assert.Equal(t, "/balance", stub.last.URL.Path)
	assert.Equal(t, "acc_1", stub.last.URL.Query().Get("account_id"))

	_, err = c.GetPots(context.Background(), "acc_9")
	require.NoError(t, err)
	assert.Equal(t, "/pots", stub.last.URL.Path)
	assert.Equal(t, "acc_9", stub.last.URL.Query().Get("current_account_id"))

	_, err = c.Whoami(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/ping/whoami", stub.last.URL.Path)
}

func TestNonOKStatus_SurfacesHTTPError(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound, http.StatusInternalServerError} {
		t.Run(fmt.Sprint(status), func(t *testing.T) {
			c, _ := newStubClient(t, status, `{"code":"nope"}`)

			calls := []func() error{
				func() error { _, err := c.Whoami(context.Background()); return err },
				func() error { _, err := c.GetAccounts(context.Background()); return err },
				func() error { _, err := c.GetAccountIDs(context.Background()); return err },
				func() error { _, err := c.GetBalance(context.Background(), "acc_1"); return err },
				func() error {
					_, err := c.GetTransactions(context.Background(), "acc_1", TransactionsQuery{})
					return err
				},
				func() error { _, err := c.GetTransaction(context.Background(), "tx_1"); return err },
				func() error { _, err := c.GetPots(context.Background(), "acc_1"); return err },
				func() error { _, err := c.Request(context.Background(), "/accounts", nil); return err },
			}
			for i, call := range calls {
				err := call()
				httpErr, ok := AsHTTPError(err)
				require.True(t, ok, "call %d: expected *HTTPError, got %T %v", i, err, err)
				assert.Equal(t, status, httpErr.StatusCode)
				assert.Equal(t, `{"code":"nope"}`, httpErr.Body)
			}
		})
	}
}

func TestErrorHelpers(t *testing.T) {
	c, _ := newStubClient(t, http.StatusNotFound, `{}`)
	_, err := c.GetTransaction(context.Background(), "tx_404")
	assert.True(t, IsNotFound(err))
	assert.False(t, IsUnauthorized(err))

	c, _ = newStubClient(t, http.StatusUnauthorized, `{}`)
	_, err = c.GetAccounts(context.Background())
	assert.True(t, IsUnauthorized(err))
	httpErr, _ := AsHTTPError(err)
	assert.Equal(t, Irrecoverable, httpErr.Category)

	_, ok := AsHTTPError(errors.New("plain"))
	assert.False(t, ok)
}

func TestDecodeError_IsDistinct(t *testing.T) {
	c, _ := newStubClient(t, http.StatusOK, `not json`)

	_, err := c.GetAccounts(context.Background())
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	_, isHTTP := AsHTTPError(err)
	assert.False(t, isHTTP)
}

func TestTypedHelpers(t *testing.T) {
	c, _ := newStubClient(t, http.StatusOK, `{
		"accounts":[{"id":"acc_1","description":"Personal","currency":"GBP","created":"2020-01-01T00:00:00Z"}],
		"balance":5000,"total_balance":6000,"currency":"GBP","spend_today":0,
		"transactions":[{"id":"tx_1","amount":-250,"currency":"GBP","merchant":{"id":"m_1","name":"Pret"}}],
		"pots":[{"id":"pot_1","name":"Rainy day","balance":1000,"currency":"GBP"}]
	}`)
	ctx := context.Background()

	accounts, err := c.ListAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "Personal", accounts[0].Description)

	bal, err := c.Balance(ctx, "acc_1")
	require.NoError(t, err)
	assert.Equal(t, "GBP 50.00", FormatAmount(bal.Balance, bal.Currency))

	txs, err := c.ListTransactions(ctx, "acc_1", TransactionsQuery{Limit: 1})
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "Pret", txs[0].Merchant.Name)

	pots, err := c.ListPots(ctx, "acc_1")
	require.NoError(t, err)
	require.Len(t, pots, 1)
	assert.Equal(t, "Rainy day", pots[0].Name)
}

func TestTypedHelpers_DecodeError(t *testing.T) {
	c, _ := newStubClient(t, http.StatusOK, `{"accounts":"not-a-list","balance":"lots"}`)

	_, err := c.ListAccounts(context.Background())
	var decodeErr *DecodeError
	assert.ErrorAs(t, err, &decodeErr)

	_, err = c.Balance(context.Background(), "acc_1")
	assert.ErrorAs(t, err, &decodeErr)
}
