package client

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/chatterbox-ai/chatterbox-client/client/internal/api"
)

// ListCharacters fetches all characters visible to the current session.
// An absent or expired session surfaces as IsUnauthorized.
func (c *Client) ListCharacters(ctx context.Context) ([]Character, error) {
	chars, err := api.ListCharacters(ctx, c.http, c.baseURL)
	if err != nil {
		log.Warn().Err(err).Msg("list characters failed")
		return nil, err
	}
	return chars, nil
}

// CreateCharacter creates a new chatbot persona. Name and prompt are
// required; the avatar image is optional and uploaded as a multipart part.
func (c *Client) CreateCharacter(ctx context.Context, req CreateCharacterRequest) (*Character, error) {
	ch, err := api.CreateCharacter(ctx, c.http, c.baseURL, req)
	if err != nil {
		log.Warn().Err(err).Str("characterName", req.Name).Msg("create character failed")
		return nil, err
	}
	log.Info().Str("characterId", ch.ID).Str("characterName", ch.Name).Msg("character created")
	return ch, nil
}

// CharacterImageURL resolves a character's avatar path against the static
// asset host. Characters without an avatar yield an empty string.
func (c *Client) CharacterImageURL(ch Character) string {
	if ch.Image == "" {
		return ""
	}
	base := c.assetBase
	if base == "" {
		base = c.baseURL
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(ch.Image, "/")
}
