package client

import "github.com/chatterbox-ai/chatterbox-client/client/internal/types"

// Public type aliases so SDK consumers can import only the client package.
type (
	// Requests
	SignupRequest          = types.SignupRequest
	LoginRequest           = types.LoginRequest
	CreateCharacterRequest = types.CreateCharacterRequest

	// Domain entities
	User           = types.User
	Character      = types.Character
	HistoryMessage = types.HistoryMessage
)

// Errors and classification helpers live in errors.go
