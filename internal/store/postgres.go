package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yousuf-kodexo/livekitPOC/internal/models"
)

// PostgresStore persists conversations as one JSONB document per room.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL store with a connection pool.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}

	return &PostgresStore{pool: pool}, nil
}

// Close closes the database connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping checks the database connection.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// AppendMessage appends a message to the room's document, creating it on
// first write. Appends preserve arrival order.
func (s *PostgresStore) AppendMessage(ctx context.Context, room string, msg models.Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO conversations (room, messages)
		VALUES ($1, jsonb_build_array($2::jsonb))
		ON CONFLICT (room)
		DO UPDATE SET messages = conversations.messages || EXCLUDED.messages
	`, room, data)
	return err
}

// GetConversation retrieves a room's transcript.
func (s *PostgresStore) GetConversation(ctx context.Context, room string) (*models.Conversation, error) {
	conv := &models.Conversation{Room: room}
	var status *string
	err := s.pool.QueryRow(ctx, `
		SELECT messages, status, ended_at
		FROM conversations WHERE room = $1
	`, room).Scan(&conv.Messages, &status, &conv.EndedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if status != nil {
		conv.Status = *status
	}
	return conv, nil
}

// ListRooms returns all known room identifiers.
func (s *PostgresStore) ListRooms(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT room FROM conversations ORDER BY room`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []string
	for rows.Next() {
		var room string
		if err := rows.Scan(&room); err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

// MarkEnded marks a room's conversation as ended without touching its
// messages. Ending an unseen room creates an empty ended document.
func (s *PostgresStore) MarkEnded(ctx context.Context, room string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO conversations (room, messages, status, ended_at)
		VALUES ($1, '[]'::jsonb, 'ended', NOW())
		ON CONFLICT (room)
		DO UPDATE SET status = 'ended', ended_at = NOW()
	`, room)
	return err
}
