package fintrack

// This file defines functional options that configure the Client during
// construction. Keeping them in a standalone file avoids cluttering
// client.go and makes it easy to discover all available knobs at a glance.

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/fintrackapp/fintrack-go/tokenstore"
)

// Option configures a Client during construction in New.
//
// Options are applied before the auth transport wrapper is installed,
// so transport-related options (like debug logging) will be placed
// underneath the token wrapper. Options must be deterministic and
// side-effect free.
type Option func(*Client) error

// WithHTTPTimeout sets the underlying http.Client Timeout used by the SDK.
//
// Prefer per-request context deadlines where possible; this timeout is a
// coarse safety net that bounds the total time spent on a single HTTP request
// (including connection, TLS handshake, redirects, and reading the response).
// The value must be greater than zero.
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
// logged when enabled is true.
//
// Do not enable this option in production environments: dumps include
// headers and bodies, and therefore tokens and user data.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if enabled {
			c.http.Transport = &debugTransport{base: c.http.Transport}
		}
		return nil
	}
}

// WithTokenStore mirrors the client's auth token into store. The store
// is read once during New to rehydrate the previous session and written
// on every token change afterwards. Write failures are logged and
// swallowed; the in-memory token stays authoritative for this process.
func WithTokenStore(store tokenstore.Store) Option {
	return func(c *Client) error {
		if store == nil {
			return fmt.Errorf("token store must not be nil")
		}
		c.auth.store = store
		return nil
	}
}

// WithExecutor replaces the default refetch executor. Mainly for tests
// that need a synchronous or instrumented executor.
func WithExecutor(exec executor) Option {
	return func(c *Client) error {
		if exec == nil {
			return fmt.Errorf("executor must not be nil")
		}
		c.exec = exec
		return nil
	}
}

// WithLogger routes the client's internal logging (swallowed token
// persistence failures, refetch errors) to log.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) error {
		c.log = log
		c.auth.log = log
		return nil
	}
}
