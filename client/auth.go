package client

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/chatterbox-ai/chatterbox-client/client/internal/api"
	"github.com/chatterbox-ai/chatterbox-client/client/internal/job"
	"github.com/chatterbox-ai/chatterbox-client/session"
)

// logoutKey serializes background logout notifications behind any other
// session work on the same shard.
const logoutKey = "session"

// Signup registers a new user and persists the returned projection to the
// durable session store. The server session cookie is captured by the
// client's cookie jar as a side effect.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*User, error) {
	u, err := api.Signup(ctx, c.http, c.baseURL, req)
	if err != nil {
		log.Warn().Err(err).Str("userName", req.UserName).Msg("signup failed")
		return nil, err
	}
	if err := c.persistProjection(u); err != nil {
		return nil, err
	}
	log.Info().Str("userName", u.UserName).Msg("signed up")
	return u, nil
}

// Login authenticates an existing user and persists the returned projection.
// Callers should distinguish invalid credentials (IsUnauthorized) from
// connectivity problems (IsTransport) when choosing a user-visible message.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*User, error) {
	u, err := api.Login(ctx, c.http, c.baseURL, req)
	if err != nil {
		log.Warn().Err(err).Str("userName", req.UserName).Msg("login failed")
		return nil, err
	}
	if err := c.persistProjection(u); err != nil {
		return nil, err
	}
	log.Info().Str("userName", u.UserName).Msg("logged in")
	return u, nil
}

// Logout ends the local session. The durable store is cleared first and
// unconditionally; the backend notification is fired through the background
// executor as best effort and its failure never reaches the caller; logout
// must not block the UI on the network. The only error Logout can return is
// a local store failure.
func (c *Client) Logout(ctx context.Context) error {
	clearErr := c.store.Clear()
	if clearErr != nil {
		log.Error().Err(clearErr).Msg("failed to clear session store")
	} else {
		sessionWritesTotal.WithLabelValues("clear").Inc()
	}

	notify := job.New(func(jobCtx context.Context) error {
		return api.Logout(jobCtx, c.http, c.baseURL)
	})
	if err := c.exec.Submit(ctx, logoutKey, notify); err != nil {
		// Best effort only. Inline executors surface the network error
		// here; queued ones surface submission problems. Either way the
		// local transition already happened.
		log.Warn().Err(err).Msg("logout notification not delivered")
	}
	return clearErr
}

func (c *Client) persistProjection(u *User) error {
	err := c.store.Save(&session.StoredUser{
		ID:        u.ID,
		Username:  u.UserName,
		UserImage: u.UserImage,
		SavedAt:   time.Now(),
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to persist session projection")
		return err
	}
	sessionWritesTotal.WithLabelValues("save").Inc()
	return nil
}
