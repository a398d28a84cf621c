package store

import (
	"context"

	"github.com/yousuf-kodexo/livekitPOC/internal/models"
)

// ConversationStore defines the interface for persistent conversation
// storage. Both PostgresStore and SQLiteStore implement this interface.
// A conversation document is created implicitly by the first append.
type ConversationStore interface {
	// Connection management
	Close()
	Ping(ctx context.Context) error

	// AppendMessage appends one message to a room's transcript,
	// creating the document if the room is unknown (upsert-with-append).
	AppendMessage(ctx context.Context, room string, msg models.Message) error

	// GetConversation returns the transcript for a room, or (nil, nil)
	// if the room has never been written to.
	GetConversation(ctx context.Context, room string) (*models.Conversation, error)

	// ListRooms returns the distinct known room identifiers.
	ListRooms(ctx context.Context) ([]string, error)

	// MarkEnded marks a room's conversation as ended. It upserts, so
	// ending an unseen room creates an empty ended document. Messages
	// are never erased.
	MarkEnded(ctx context.Context, room string) error
}
