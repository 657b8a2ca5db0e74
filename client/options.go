package client

// This file defines functional options that configure the Client during
// construction. Keeping them in a standalone file avoids cluttering
// client.go and makes it easy to discover all available knobs at a glance.

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Option configures a Client during construction in New.
//
// Options are applied before the transports are installed, so the debug and
// Authorization wrappers always sit on top of whatever transport an option
// provides, regardless of option order.
type Option func(*Client) error

// WithBaseURL points the client at a different API root, typically a mock
// server in tests. The URL must be absolute; a trailing slash is dropped.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) error {
		u, err := url.Parse(baseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("base url must be an absolute URL, got %q", baseURL)
		}
		c.baseURL = strings.TrimRight(baseURL, "/")
		return nil
	}
}

// WithHTTPClient replaces the underlying http.Client. The client is copied, so
// installing the Authorization transport never mutates the caller's value.
// A zero Timeout on hc falls back to DefaultHTTPTimeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("http client must not be nil")
		}
		cp := *hc
		c.http = &cp
		return nil
	}
}

// WithHTTPTimeout sets the underlying http.Client Timeout used by the SDK.
//
// Prefer per-request context deadlines where possible; this timeout is a
// coarse safety net that bounds the total time spent on a single HTTP request
// (including connection, TLS handshake, redirects, and reading the response).
// The value must be greater than zero. It applies regardless of where
// WithHTTPClient appears in the option list.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.timeout = d
		return nil
	}
}

// WithDebugLogging logs each request/response through zerolog when enabled is true.
//
// Do not enable this option in production environments as it increases
// verbosity and dumps response bodies, which carry account data.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if enabled {
			c.debug = true
		}
		return nil
	}
}
