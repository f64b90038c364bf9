// Package client is the Chatterbox SDK: credentialed HTTP wrappers for the
// character chatbot backend, plus the durable session handling the view layer
// builds on. Construct one Client per backend and share it; the wrappers are
// stateless request shapers around a single http.Client whose cookie jar
// carries the server session.
package client

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"sync/atomic"
	"time"

	"github.com/chatterbox-ai/chatterbox-client/client/internal/job"
	"github.com/chatterbox-ai/chatterbox-client/client/internal/shardqueue"
	"github.com/chatterbox-ai/chatterbox-client/session"
)

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

type Client struct {
	baseURL   string
	assetBase string
	http      *http.Client
	exec      executor
	store     session.Store

	closedOnce uint32 // ensures Close is idempotent
}

// New constructs a Client for the backend at baseURL. The session store is
// injected explicitly: every auth transition writes through it, and it is the
// single source of truth for "who is logged in" across restarts.
func New(baseURL string, store session.Store, opts ...Option) *Client {
	if baseURL == "" {
		panic("baseURL cannot be empty")
	}
	if store == nil {
		panic("session store cannot be nil")
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		panic(err)
	}
	c := &Client{
		baseURL: baseURL,
		store:   store,
		http:    &http.Client{Timeout: 30 * time.Second, Jar: jar},
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			panic(err)
		}
	}
	if c.exec == nil {
		c.exec = newDefaultExecutor()
	}

	// Outermost wrapper so every request, including retried background
	// jobs, gets a fresh correlation id.
	c.wrapTransportWithRequestID()

	return c
}

// wrapTransportWithRequestID installs the X-Request-ID wrapper around
// whatever transport the options left in place.
func (c *Client) wrapTransportWithRequestID() {
	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	c.http.Transport = &requestIDTransport{base: base}
}

// Close stops the background executor (if any). Safe to call multiple times.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapUint32(&c.closedOnce, 0, 1) {
		return nil
	}
	if c.exec != nil {
		c.exec.Stop()
	}
	return nil
}

// AwaitIdle blocks until all previously submitted background jobs for the
// given key (a character ID, or the logout key) have executed. It works by
// submitting a no-op job and waiting for it to run, thereby guaranteeing the
// FIFO queue has flushed.
func (c *Client) AwaitIdle(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	done := make(chan struct{})
	j := job.New(func(context.Context) error {
		close(done)
		return nil
	})
	if err := c.exec.Submit(ctx, key, j); err != nil {
		return mapSubmitErr(err)
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

// newDefaultExecutor constructs the shardqueue executor with sane defaults.
func newDefaultExecutor() *shardqueue.ShardExecutor {
	cfg, err := shardqueue.LoadConfig()
	if err != nil {
		cfg = shardqueue.Config{}
	}
	return shardqueue.NewShardExecutor(cfg)
}
