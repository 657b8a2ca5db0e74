package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// ------------------------------
// Response envelopes
// ------------------------------

// AccountsResponse mirrors the /accounts response shape.
type AccountsResponse struct {
	Accounts []Account `json:"accounts"`
}

// TransactionsResponse mirrors the /transactions response shape.
type TransactionsResponse struct {
	Transactions []Transaction `json:"transactions"`
}

// TransactionResponse mirrors the /transactions/{id} response shape.
type TransactionResponse struct {
	Transaction Transaction `json:"transaction"`
}

// PotsResponse mirrors the /pots response shape.
type PotsResponse struct {
	Pots []Pot `json:"pots"`
}

// Response is a successful raw API response, kept for callers that decode it themselves.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// errTrailingData rejects bodies with anything after the JSON value.
var errTrailingData = errors.New("unexpected data after JSON value")

// Document decodes the body as an untyped JSON object. Numbers are kept as
// json.Number so minor-unit amounts survive Decode into int64 fields exactly.
func (r *Response) Document() (Document, error) {
	dec := json.NewDecoder(bytes.NewReader(r.Body))
	dec.UseNumber()
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errTrailingData
	}
	return doc, nil
}

// Decode decodes the body into v.
func (r *Response) Decode(v any) error {
	return json.Unmarshal(r.Body, v)
}
