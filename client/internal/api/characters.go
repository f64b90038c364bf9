package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"

	sdkerrors "github.com/chatterbox-ai/chatterbox-client/client/internal/errors"
	"github.com/chatterbox-ai/chatterbox-client/client/internal/types"
)

// ListCharacters fetches all characters visible to the current session.
// The backend enforces authentication; a missing or expired session surfaces
// as a KindUnauthorized error.
func ListCharacters(ctx context.Context, httpClient *http.Client, baseURL string) ([]types.Character, error) {
	const op = "getCharacters"
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/getCharacters", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, sdkerrors.FromTransport(op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, sdkerrors.FromStatus(op, resp.StatusCode, readErrorBody(resp))
	}

	var characters []types.Character
	if err := json.NewDecoder(resp.Body).Decode(&characters); err != nil {
		return nil, sdkerrors.FromTransport(op, err)
	}
	return characters, nil
}

// CreateCharacter creates a new character persona. Name and prompt are
// validated client-side before any network I/O; the payload is multipart so
// the optional avatar image can ride along as a binary part.
func CreateCharacter(ctx context.Context, httpClient *http.Client, baseURL string, req types.CreateCharacterRequest) (*types.Character, error) {
	const op = "createCharacter"
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateCharacterInput(req); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("characterName", req.Name); err != nil {
		return nil, err
	}
	if err := mw.WriteField("characterPrompt", req.Prompt); err != nil {
		return nil, err
	}
	if len(req.Image) > 0 {
		filename := req.ImageFilename
		if filename == "" {
			filename = "character-image"
		}
		fw, err := mw.CreateFormFile("characterImage", filename)
		if err != nil {
			return nil, err
		}
		if _, err := fw.Write(req.Image); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/createCharacter", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, sdkerrors.FromTransport(op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, sdkerrors.FromStatus(op, resp.StatusCode, readErrorBody(resp))
	}

	var character types.Character
	if err := json.NewDecoder(resp.Body).Decode(&character); err != nil {
		return nil, sdkerrors.FromTransport(op, err)
	}
	return &character, nil
}
