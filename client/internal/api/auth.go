package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	sdkerrors "github.com/chatterbox-ai/chatterbox-client/client/internal/errors"
	"github.com/chatterbox-ai/chatterbox-client/client/internal/types"
)

// Signup registers a new user. The backend returns the created user record at
// the top level of the response body.
func Signup(ctx context.Context, httpClient *http.Client, baseURL string, req types.SignupRequest) (*types.User, error) {
	const op = "signup"
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateCredentials(op, req.UserName, req.UserPassword); err != nil {
		return nil, err
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/signup", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, sdkerrors.FromTransport(op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, sdkerrors.FromStatus(op, resp.StatusCode, readErrorBody(resp))
	}

	var user types.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, sdkerrors.FromTransport(op, err)
	}
	return &user, nil
}

// Login authenticates an existing user. Unlike /signup, the user record comes
// back nested under a "user" envelope.
func Login(ctx context.Context, httpClient *http.Client, baseURL string, req types.LoginRequest) (*types.User, error) {
	const op = "login"
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateCredentials(op, req.UserName, req.UserPassword); err != nil {
		return nil, err
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/login", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, sdkerrors.FromTransport(op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, sdkerrors.FromStatus(op, resp.StatusCode, readErrorBody(resp))
	}

	var envelope types.LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, sdkerrors.FromTransport(op, err)
	}
	return &envelope.User, nil
}

// Logout notifies the backend that the session is over. The response body is
// opaque; any 2xx counts as success.
func Logout(ctx context.Context, httpClient *http.Client, baseURL string) error {
	const op = "logout"
	if err := ctx.Err(); err != nil {
		return err
	}
	url := fmt.Sprintf("%s/logout", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return err
	}

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return sdkerrors.FromTransport(op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return sdkerrors.FromStatus(op, resp.StatusCode, readErrorBody(resp))
	}
	return nil
}
