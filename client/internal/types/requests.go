package types

// ------------------------------
// Request Types
// ------------------------------

// SignupRequest holds credentials for a new user.
type SignupRequest struct {
	UserName     string `json:"userName"`
	UserPassword string `json:"userPassword"`
	UserImage    string `json:"userImage,omitempty"`
}

// LoginRequest holds credentials for an existing user.
type LoginRequest struct {
	UserName     string `json:"userName"`
	UserPassword string `json:"userPassword"`
}

// CreateCharacterRequest holds parameters for a new character. Image carries
// the raw avatar bytes; it is transmitted as a multipart file part, not JSON.
type CreateCharacterRequest struct {
	Name          string
	Prompt        string
	Image         []byte
	ImageFilename string
}

// ChatTurnRequest is the payload for POST /chat.
type ChatTurnRequest struct {
	CharacterID string `json:"characterId"`
	Message     string `json:"message"`
}
