package client

import (
	"net/http"
	"net/http/httputil"
	"os"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// debugTransport logs every request and response through zerolog at debug level.
//
// Purpose:
//   - Troubleshoot API communication problems (timeouts, unexpected statuses, odd payloads)
//   - Inspect the exact query string sent for transaction filters
//
// When to use:
//   - Set MONZO_DEBUG=true or DEBUG=true environment variable
//   - Pass WithDebugLogging(true) to New
//
// Security considerations:
//   - The Authorization header is redacted, but response bodies carry balances,
//     transactions and merchant data. Only enable in development.
//
// Each round trip gets a request_id so the request and response lines can be correlated.
type debugTransport struct{ base http.RoundTripper }

var authHeaderPattern = regexp.MustCompile(`(?mi)^(Authorization:\s*Bearer\s+)\S+`)

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	requestID := uuid.NewString()
	if reqDump, err := httputil.DumpRequestOut(req, false); err == nil {
		log.Debug().
			Str("request_id", requestID).
			Str("method", req.Method).
			Str("url", req.URL.String()).
			Str("request_dump", redactAuthorization(string(reqDump))).
			Msg("HTTP request")
	}

	start := time.Now()
	resp, err := dt.base.RoundTrip(req)
	elapsed := time.Since(start)
	if err != nil {
		log.Error().Err(err).Str("request_id", requestID).Str("method", req.Method).Str("url", req.URL.String()).Dur("elapsed", elapsed).Msg("HTTP request failed")
		return nil, err
	}

	if respDump, err := httputil.DumpResponse(resp, true); err == nil {
		log.Debug().
			Str("request_id", requestID).
			Int("status_code", resp.StatusCode).
			Dur("elapsed", elapsed).
			Str("response_dump", string(respDump)).
			Msg("HTTP response")
	}
	return resp, nil
}

// redactAuthorization hides the bearer token in a dumped request.
func redactAuthorization(dump string) string {
	return authHeaderPattern.ReplaceAllString(dump, "${1}REDACTED")
}

// debugLoggingRequested checks if HTTP debug logging should be enabled.
//
// Activation methods:
//   - MONZO_DEBUG=true (client-specific debug flag)
//   - DEBUG=true (general debug flag, common in development workflows)
func debugLoggingRequested() bool {
	return os.Getenv("MONZO_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}
