package models

// Message roles. The voice pipeline reports the interviewer's turns as
// "assistant"; they are normalized to RoleAgent before they reach the store
// or the wire.
const (
	RoleUser  = "user"
	RoleAgent = "agent"
)

// Message is a single conversation turn. Messages are immutable and
// append-only within a room.
type Message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}
