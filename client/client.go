package client

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/bquirin/MonzoAPIWrapper/client/internal/api"
	clienterrors "github.com/bquirin/MonzoAPIWrapper/client/internal/errors"
	"github.com/bquirin/MonzoAPIWrapper/client/internal/types"
)

const (
	// DefaultBaseURL is the production Monzo API.
	DefaultBaseURL = "https://api.monzo.com"
	// AccessTokenLength is the exact length every access token must have.
	AccessTokenLength = types.AccessTokenLength
	// DefaultHTTPTimeout bounds a single request when no option overrides it.
	DefaultHTTPTimeout = 30 * time.Second
)

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Client is an authenticated gateway to the Monzo API. It is immutable after
// New returns and safe for concurrent use; it holds no resources that need closing.
type Client struct {
	baseURL string
	token   string
	debug   bool
	timeout time.Duration
	http    *http.Client
	rest    *resty.Client
}

// New constructs a Client for accessToken. Construction fails with an error
// wrapping ErrInvalidTokenShape when the token is not AccessTokenLength characters long.
func New(accessToken string, opts ...Option) (*Client, error) {
	return NewFromValue(accessToken, opts...)
}

// NewFromValue is New for untyped configuration input such as a decoded JSON
// document; values that are not strings fail with ErrTokenType.
func NewFromValue(accessToken any, opts ...Option) (*Client, error) {
	if err := ValidateAccessToken(accessToken); err != nil {
		return nil, err
	}

	c := &Client{
		baseURL: DefaultBaseURL,
		token:   accessToken.(string),
		http:    &http.Client{},
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	c.applyTimeout()
	c.installTransports()
	c.rest = api.NewRestyClient(c.http, c.baseURL)
	return c, nil
}

// ValidateAccessToken reports whether token has the shape of a Monzo access token.
func ValidateAccessToken(token any) error {
	return types.ValidateAccessToken(token)
}

// BaseURL returns the API root requests are sent to.
func (c *Client) BaseURL() string { return c.baseURL }

// applyTimeout settles the request timeout once every option has run: an
// explicit WithHTTPTimeout wins, then a timeout already set on a client passed
// to WithHTTPClient, then DefaultHTTPTimeout.
func (c *Client) applyTimeout() {
	switch {
	case c.timeout > 0:
		c.http.Timeout = c.timeout
	case c.http.Timeout <= 0:
		c.http.Timeout = DefaultHTTPTimeout
	}
}

// installTransports stacks the debug transport (when enabled) and the
// Authorization transport on top of the configured base transport.
func (c *Client) installTransports() {
	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	if c.debug {
		base = &debugTransport{base: base}
	}
	c.http.Transport = &bearerTransport{
		base:       base,
		authHeader: "Bearer " + c.token,
	}
}

// bearerTransport wraps an http.RoundTripper to add the precomputed Authorization header.
type bearerTransport struct {
	base       http.RoundTripper
	authHeader string
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original
	cloned := req.Clone(req.Context())
	cloned.Header.Set("Authorization", t.authHeader)
	return t.base.RoundTrip(cloned)
}

// --------------------------------------------------------------------
// Generic request
// --------------------------------------------------------------------

// Request issues an authenticated GET to path with the given query parameters
// and returns the raw response for the caller to decode. Parameters with empty
// values are omitted. Any status other than 200 yields an *HTTPError.
func (c *Client) Request(ctx context.Context, path string, params url.Values) (*Response, error) {
	return api.Get(ctx, c.rest, "request", path, params)
}

// --------------------------------------------------------------------
// Endpoint operations - delegated to internal/api
// --------------------------------------------------------------------

// Whoami returns information about the current access token (/ping/whoami).
func (c *Client) Whoami(ctx context.Context) (Document, error) {
	return api.Whoami(ctx, c.rest)
}

// GetAccounts returns the /accounts document.
func (c *Client) GetAccounts(ctx context.Context) (Document, error) {
	return api.GetAccounts(ctx, c.rest)
}

// GetAccountIDs returns the id of every account, in the order /accounts lists them.
// It fails with ErrMissingField when the response lacks an accounts array or an id.
func (c *Client) GetAccountIDs(ctx context.Context) ([]string, error) {
	return api.GetAccountIDs(ctx, c.rest)
}

// GetBalance returns the /balance document for accountID.
func (c *Client) GetBalance(ctx context.Context, accountID string) (Document, error) {
	return api.GetBalance(ctx, c.rest, accountID)
}

// GetTransactions returns the /transactions document for accountID, merchants expanded.
func (c *Client) GetTransactions(ctx context.Context, accountID string, q TransactionsQuery) (Document, error) {
	return api.GetTransactions(ctx, c.rest, accountID, q)
}

// GetTransaction returns the /transactions/{id} document, merchant expanded.
func (c *Client) GetTransaction(ctx context.Context, transactionID string) (Document, error) {
	return api.GetTransaction(ctx, c.rest, transactionID)
}

// GetPots returns the /pots document for the current account.
func (c *Client) GetPots(ctx context.Context, currentAccountID string) (Document, error) {
	return api.GetPots(ctx, c.rest, currentAccountID)
}

// --------------------------------------------------------------------
// Typed helpers
// --------------------------------------------------------------------

// ListAccounts is GetAccounts decoded into Account values.
func (c *Client) ListAccounts(ctx context.Context) ([]Account, error) {
	doc, err := c.GetAccounts(ctx)
	if err != nil {
		return nil, err
	}
	var out types.AccountsResponse
	if err := decode("get_accounts", doc, &out); err != nil {
		return nil, err
	}
	return out.Accounts, nil
}

// Balance is GetBalance decoded into a Balance value.
func (c *Client) Balance(ctx context.Context, accountID string) (*Balance, error) {
	doc, err := c.GetBalance(ctx, accountID)
	if err != nil {
		return nil, err
	}
	var out Balance
	if err := decode("get_balance", doc, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListTransactions is GetTransactions decoded into Transaction values.
func (c *Client) ListTransactions(ctx context.Context, accountID string, q TransactionsQuery) ([]Transaction, error) {
	doc, err := c.GetTransactions(ctx, accountID, q)
	if err != nil {
		return nil, err
	}
	var out types.TransactionsResponse
	if err := decode("get_transactions", doc, &out); err != nil {
		return nil, err
	}
	return out.Transactions, nil
}

// ListPots is GetPots decoded into Pot values.
func (c *Client) ListPots(ctx context.Context, currentAccountID string) ([]Pot, error) {
	doc, err := c.GetPots(ctx, currentAccountID)
	if err != nil {
		return nil, err
	}
	var out types.PotsResponse
	if err := decode("get_pots", doc, &out); err != nil {
		return nil, err
	}
	return out.Pots, nil
}

func decode(operation string, doc Document, v any) error {
	if err := doc.Decode(v); err != nil {
		return clienterrors.NewDecodeError(operation, err)
	}
	return nil
}
