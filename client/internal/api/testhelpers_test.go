package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/go-resty/resty/v2"
)

// errRT is an http.RoundTripper that always returns an error (simulates network failure).
type errRT struct{}

func (e *errRT) RoundTrip(*http.Request) (*http.Response, error) { return nil, fmt.Errorf("boom") }

// newTestClient points a resty client at srv.
func newTestClient(srv *httptest.Server) *resty.Client {
	return NewRestyClient(srv.Client(), srv.URL)
}

// jsonHandler answers every request with status and body, after letting inspect look at it.
func jsonHandler(status int, body string, inspect func(*http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if inspect != nil {
			inspect(r)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}
