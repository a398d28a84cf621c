package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yousuf-kodexo/livekitPOC/internal/models"
)

// ConversationResponse represents a room's transcript.
type ConversationResponse struct {
	Room     string           `json:"room"`
	Messages []models.Message `json:"messages"`
}

// RoomsResponse lists the distinct known room identifiers.
type RoomsResponse struct {
	Rooms []string `json:"rooms"`
}

// GetConversation returns a room's transcript, empty list if unknown.
func (h *Handler) GetConversation(w http.ResponseWriter, r *http.Request) {
	room := chi.URLParam(r, "room")

	conv, err := h.store.GetConversation(r.Context(), room)
	if err != nil {
		h.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	messages := []models.Message{}
	if conv != nil && conv.Messages != nil {
		messages = conv.Messages
	}

	h.JSON(w, http.StatusOK, ConversationResponse{
		Room:     room,
		Messages: messages,
	})
}

// ListRooms returns all known room identifiers.
func (h *Handler) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.store.ListRooms(r.Context())
	if err != nil {
		h.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if rooms == nil {
		rooms = []string{}
	}

	h.JSON(w, http.StatusOK, RoomsResponse{Rooms: rooms})
}
