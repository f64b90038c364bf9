package types

// ------------------------------
// Response Types
// ------------------------------

// LoginResponse wraps the /login envelope; the user record is nested, unlike
// /signup which returns it at the top level.
type LoginResponse struct {
	User User `json:"user"`
}

// ConversationResponse wraps GET /conversation/{characterId}.
type ConversationResponse struct {
	Messages []HistoryMessage `json:"messages"`
}

// ChatTurnResponse wraps POST /chat.
type ChatTurnResponse struct {
	Reply string `json:"reply"`
}
