package client

// This file defines functional options that configure the Client during
// construction. Keeping them in a standalone file avoids cluttering
// client.go and makes it easy to discover all available knobs at a glance.

import (
	"fmt"
	"net/http"
	"time"
)

// Option configures a Client during construction in New.
//
// Options are applied before the request-id transport wrapper is installed,
// so transport-related options (like debug logging) sit underneath it.
// Options must be deterministic and side-effect free.
type Option func(*Client) error

// WithHTTPClient injects a custom *http.Client. The client must carry a
// cookie jar, or the backend session cookie will be dropped between calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("nil http client")
		}
		if hc.Jar == nil {
			hc.Jar = c.http.Jar
		}
		c.http = hc
		return nil
	}
}

// WithHTTPTimeout sets the underlying http.Client Timeout used by the SDK.
//
// Prefer per-request context deadlines where possible; this timeout is a
// coarse safety net that bounds the total time spent on a single HTTP
// request. The value must be greater than zero.
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
// logged when enabled is true. Do not enable in production environments;
// dumps include headers and bodies.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if enabled {
			base := c.http.Transport
			if base == nil {
				base = http.DefaultTransport
			}
			c.http.Transport = &debugTransport{base: base}
		}
		return nil
	}
}

// WithAssetBaseURL sets the static asset host that character image paths are
// resolved against. Without it, CharacterImageURL falls back to the API base.
func WithAssetBaseURL(base string) Option {
	return func(c *Client) error {
		c.assetBase = base
		return nil
	}
}

// WithoutExecutor disables the internal shard executor. Background jobs run
// inline on the caller's goroutine instead; useful for short-lived CLI
// invocations that would otherwise have to drain a queue before exiting.
func WithoutExecutor() Option {
	return func(c *Client) error {
		c.exec = inlineExecutor{}
		return nil
	}
}
