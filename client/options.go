package client

// This file defines functional options that configure the Client during
// construction. Keeping them in a standalone file avoids cluttering
// client.go and makes it easy to discover all available knobs at a glance.

import (
	"fmt"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"
)

// Option configures a Client during construction in New.
//
// Options are applied in order. Transport wrappers (debug dumps, request id)
// are installed after all options ran, so the order of WithHTTPClient and
// WithDebugLogging does not matter.
type Option func(*Client) error

// WithHTTPClient replaces the underlying http.Client. Its Timeout is kept.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("http client cannot be nil")
		}
		// Copy so wrapping the transport never mutates the caller's client.
		cp := *hc
		c.http = &cp
		return nil
	}
}

// WithHTTPTimeout sets the per-request timeout of the underlying http.Client.
//
// It bounds the total time spent on a single HTTP request (connection, TLS
// handshake, redirects, reading the response). Per-call context deadlines
// still apply on top. The value must be greater than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.Timeout = d
		return nil
	}
}

// WithDebugLogging wraps the client's transport so each request/response is
// dumped at debug level when enabled is true. Secrets are redacted.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if enabled {
			c.debug = true
		}
		return nil
	}
}

// WithLoginMode selects how credentials are sent on login.
func WithLoginMode(mode LoginMode) Option {
	return func(c *Client) error {
		switch mode {
		case LoginQuery, LoginJSON:
			c.loginMode = mode
			return nil
		default:
			return fmt.Errorf("unsupported login mode %q", mode)
		}
	}
}

// WithPollInterval sets the initial and maximum delay between status polls
// in AwaitTenderStatus.
func WithPollInterval(initial, max time.Duration) Option {
	return func(c *Client) error {
		if initial <= 0 || max < initial {
			return fmt.Errorf("poll interval must satisfy 0 < initial <= max")
		}
		c.pollInterval = initial
		c.pollMaxInterval = max
		return nil
	}
}

// WithAwaitTimeout bounds how long AwaitTenderStatus keeps polling.
func WithAwaitTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("await timeout must be > 0")
		}
		c.awaitTimeout = d
		return nil
	}
}

// WithClock overrides the clock used to measure the await budget.
func WithClock(clock clockwork.Clock) Option {
	return func(c *Client) error {
		if clock == nil {
			return fmt.Errorf("clock cannot be nil")
		}
		c.clock = clock
		return nil
	}
}
