package models

// Transcript speaker roles. The voice service reports the candidate as "user".
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// TranscriptTurn is one conversational turn of a voice interview
type TranscriptTurn struct {
	Role    string `json:"role" bson:"role"` // "user" or "assistant"
	Content string `json:"content" bson:"content"`
}
