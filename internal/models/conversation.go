package models

import "time"

// Conversation statuses. A conversation has no status until it is ended;
// ending marks the document, it never erases messages.
const (
	StatusActive = "active"
	StatusEnded  = "ended"
)

// Conversation is the persisted transcript for one room. It is created
// implicitly by the first appended message and keyed by the room name.
type Conversation struct {
	Room     string     `json:"room"`
	Messages []Message  `json:"messages"`
	Status   string     `json:"status,omitempty"`
	EndedAt  *time.Time `json:"ended_at,omitempty"`
}

// UserTurns counts the caller-authored messages in a transcript.
func UserTurns(messages []Message) int {
	n := 0
	for _, m := range messages {
		if m.Role == RoleUser {
			n++
		}
	}
	return n
}
