package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/yousuf-kodexo/livekitPOC/internal/models"
)

// SQLiteStore is the single-node fallback store. It keeps the same one
// document per room layout as Postgres, with messages as a JSON text column.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store.
// If dbPath is empty, defaults to "./data/intake.db"
func NewSQLiteStore(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		dbPath = "./data/intake.db"
	}

	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	store := &SQLiteStore{db: db}

	// Initialize schema
	if err := store.initSchema(ctx); err != nil {
		return nil, err
	}

	return store, nil
}

// initSchema creates tables if they don't exist.
func (s *SQLiteStore) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS conversations (
		room TEXT PRIMARY KEY,
		messages TEXT NOT NULL DEFAULT '[]',
		status TEXT,
		ended_at TIMESTAMP
	);`

	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() {
	s.db.Close()
}

// Ping checks the database connection.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// AppendMessage appends a message to the room's document, creating it on
// first write.
func (s *SQLiteStore) AppendMessage(ctx context.Context, room string, msg models.Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO conversations (room, messages)
		VALUES (?, json_array(json(?)))
		ON CONFLICT(room)
		DO UPDATE SET messages = json_insert(messages, '$[#]', json(?))
	`, room, string(data), string(data))
	return err
}

// GetConversation retrieves a room's transcript.
func (s *SQLiteStore) GetConversation(ctx context.Context, room string) (*models.Conversation, error) {
	var (
		rawMessages string
		status      sql.NullString
		endedAt     sql.NullTime
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT messages, status, ended_at
		FROM conversations WHERE room = ?
	`, room).Scan(&rawMessages, &status, &endedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	conv := &models.Conversation{Room: room}
	if err := json.Unmarshal([]byte(rawMessages), &conv.Messages); err != nil {
		return nil, err
	}
	if status.Valid {
		conv.Status = status.String
	}
	if endedAt.Valid {
		t := endedAt.Time
		conv.EndedAt = &t
	}
	return conv, nil
}

// ListRooms returns all known room identifiers.
func (s *SQLiteStore) ListRooms(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT room FROM conversations ORDER BY room`)
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
// messages.
func (s *SQLiteStore) MarkEnded(ctx context.Context, room string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO conversations (room, messages, status, ended_at)
		VALUES (?, '[]', 'ended', ?)
		ON CONFLICT(room)
		DO UPDATE SET status = 'ended', ended_at = excluded.ended_at
	`, room, time.Now().UTC())
	return err
}
