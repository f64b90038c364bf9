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

// FetchConversation returns prior turns for the given character. A character
// with no history yields an empty slice and a nil error.
func FetchConversation(ctx context.Context, httpClient *http.Client, baseURL, characterID string) ([]types.HistoryMessage, error) {
	const op = "conversation"
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateIDPresent(op, characterID, "characterId"); err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/conversation/%s", baseURL, characterID)
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

	var envelope types.ConversationResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, sdkerrors.FromTransport(op, err)
	}
	return envelope.Messages, nil
}

// SendChatTurn transmits one user message and returns the generated reply
// text. Failures are reported as KindChat so the conversation layer can
// degrade to a substitute bot reply instead of a dead end.
func SendChatTurn(ctx context.Context, httpClient *http.Client, baseURL, characterID, message string) (string, error) {
	const op = "chat"
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := types.ValidateIDPresent(op, characterID, "characterId"); err != nil {
		return "", err
	}
	body, err := json.Marshal(types.ChatTurnRequest{CharacterID: characterID, Message: message})
	if err != nil {
		return "", err
	}
	url := fmt.Sprintf("%s/chat", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return "", asChatError(sdkerrors.FromTransport(op, err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", asChatError(sdkerrors.FromStatus(op, resp.StatusCode, readErrorBody(resp)))
	}

	var envelope types.ChatTurnResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return "", asChatError(sdkerrors.FromTransport(op, err))
	}
	return envelope.Reply, nil
}

// asChatError relabels a classified error as KindChat while keeping its
// retry category and diagnostics.
func asChatError(e *sdkerrors.Error) *sdkerrors.Error {
	e.Kind = sdkerrors.KindChat
	return e
}
