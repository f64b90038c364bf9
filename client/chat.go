package client

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/chatterbox-ai/chatterbox-client/client/internal/api"
	"github.com/chatterbox-ai/chatterbox-client/client/internal/job"
)

// FetchConversation returns the prior turns for a character, oldest first.
// A character with no history yields an empty slice and a nil error.
func (c *Client) FetchConversation(ctx context.Context, characterID string) ([]HistoryMessage, error) {
	msgs, err := api.FetchConversation(ctx, c.http, c.baseURL, characterID)
	if err != nil {
		historyFetchesTotal.WithLabelValues(statusError).Inc()
		log.Warn().Err(err).Str("characterId", characterID).Msg("history fetch failed")
		return nil, err
	}
	historyFetchesTotal.WithLabelValues(statusOK).Inc()
	return msgs, nil
}

// SendChatTurn transmits one user message and blocks for the reply.
func (c *Client) SendChatTurn(ctx context.Context, characterID, message string) (string, error) {
	reply, err := api.SendChatTurn(ctx, c.http, c.baseURL, characterID, message)
	if err != nil {
		chatTurnsTotal.WithLabelValues(statusError).Inc()
		log.Warn().Err(err).Str("characterId", characterID).Msg("chat turn failed")
		return "", err
	}
	chatTurnsTotal.WithLabelValues(statusOK).Inc()
	return reply, nil
}

// EnqueueChatTurn dispatches one user message through the background
// executor, keyed by character so turns for one conversation never reorder,
// and invokes onDone from the worker goroutine with the reply or the
// failure. The job reports success to the queue either way: the outcome is
// handed to onDone exactly once, so the executor must not retry and call it
// again.
//
// Returns ErrBackPressure (via errors.Is) when the queue is full.
func (c *Client) EnqueueChatTurn(ctx context.Context, characterID, message string, onDone func(reply string, err error)) error {
	turn := job.New(func(jobCtx context.Context) error {
		reply, err := api.SendChatTurn(jobCtx, c.http, c.baseURL, characterID, message)
		if err != nil {
			chatTurnsTotal.WithLabelValues(statusError).Inc()
			log.Warn().Err(err).Str("characterId", characterID).Msg("chat turn failed")
		} else {
			chatTurnsTotal.WithLabelValues(statusOK).Inc()
		}
		if onDone != nil {
			onDone(reply, err)
		}
		return nil
	})
	if err := c.exec.Submit(ctx, characterID, turn); err != nil {
		return mapSubmitErr(err)
	}
	return nil
}
