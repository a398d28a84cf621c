package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/yousuf-kodexo/livekitPOC/internal/config"
	"github.com/yousuf-kodexo/livekitPOC/internal/store"
)

// RoomDeleter tears down a live voice room. Implemented by
// livekit.RoomClient; nil when LiveKit credentials are not configured.
type RoomDeleter interface {
	DeleteRoom(ctx context.Context, room string) error
}

// Handler contains shared dependencies for all HTTP handlers.
type Handler struct {
	store  store.ConversationStore
	redis  *store.RedisStore
	rooms  RoomDeleter
	cfg    *config.Config
	logger zerolog.Logger
}

// NewHandler creates a new Handler with the given dependencies.
func NewHandler(cs store.ConversationStore, redis *store.RedisStore, rooms RoomDeleter, cfg *config.Config, logger zerolog.Logger) *Handler {
	return &Handler{store: cs, redis: redis, rooms: rooms, cfg: cfg, logger: logger}
}

// JSON sends a JSON response with the given status code.
func (h *Handler) JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Error sends a JSON error response with the given status code.
func (h *Handler) Error(w http.ResponseWriter, status int, message string) {
	h.JSON(w, status, map[string]string{"error": message})
}
