package types

import (
	"strings"

	"github.com/chatterbox-ai/chatterbox-client/client/internal/errors"
)

// ------------------------------
// Client-side preconditions
// ------------------------------

// ValidateCredentials rejects blank usernames or passwords before any request
// is issued.
func ValidateCredentials(op, userName, userPassword string) error {
	if strings.TrimSpace(userName) == "" {
		return errors.Validation(op, "userName is required")
	}
	if userPassword == "" {
		return errors.Validation(op, "userPassword is required")
	}
	return nil
}

// ValidateCharacterInput enforces the createCharacter precondition: name and
// prompt must be non-empty. The avatar image is optional.
func ValidateCharacterInput(req CreateCharacterRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return errors.Validation("createCharacter", "characterName is required")
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return errors.Validation("createCharacter", "characterPrompt is required")
	}
	return nil
}

// ValidateIDPresent rejects empty identifiers before they reach a URL path.
func ValidateIDPresent(op, id, fieldName string) error {
	if strings.TrimSpace(id) == "" {
		return errors.Validation(op, fieldName+" is required")
	}
	return nil
}
