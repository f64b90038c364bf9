package types

import "time"

// ------------------------------
// Core Domain Entities
// ------------------------------

// User is the server's user record. The backend assigns the identity (_id);
// the client only ever persists a denormalized projection of it (see the
// session package).
type User struct {
	ID        string    `json:"_id"`
	UserName  string    `json:"userName"`
	UserImage string    `json:"userImage,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Character is a configurable chatbot persona. Characters are immutable from
// the client's perspective: there are no edit or delete operations.
type Character struct {
	ID     string `json:"_id"`
	Name   string `json:"characterName"`
	Prompt string `json:"characterPrompt"`
	Image  string `json:"characterImage,omitempty"`
	UserID string `json:"userId"`
}

// HistoryMessage is one prior turn returned by the conversation endpoint.
type HistoryMessage struct {
	Text      string    `json:"text"`
	Sender    string    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}
