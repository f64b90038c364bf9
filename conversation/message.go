package conversation

import (
	"fmt"
	"time"
)

// Sender values for Message.
const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// User-visible texts synthesized by the manager. They are part of the client's
// observable behavior and tests assert on them verbatim.
const (
	// Apology is appended as a bot message when a chat turn fails.
	Apology = "Sorry, I'm having trouble connecting right now. Please try again later."

	// HistoryNotice is recorded when prior history could not be loaded. It is
	// non-fatal: the conversation proceeds with a fresh greeting.
	HistoryNotice = "Could not load conversation history"

	// NoCharacterNotice is shown in the NoCharacter state before redirecting.
	NoCharacterNotice = "No character selected"
)

// Message is one visible turn of the conversation. IDs are monotonic within a
// manager and derived from wall-clock milliseconds; messages are append-only
// and never deduplicated.
type Message struct {
	ID        int64
	Text      string
	Sender    string
	Timestamp time.Time
}

// Greeting builds the synthesized opening line for an empty conversation.
// The username is optional and omitted (with its leading space) when unknown.
func Greeting(username, characterName string) string {
	if username == "" {
		return fmt.Sprintf("Hello! I'm %s. How can I help you today?", characterName)
	}
	return fmt.Sprintf("Hello %s! I'm %s. How can I help you today?", username, characterName)
}
