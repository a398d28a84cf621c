package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yousuf-kodexo/livekitPOC/internal/models"
)

// SessionRequest represents the connect request.
type SessionRequest struct {
	Room   string `json:"room"`
	UserID string `json:"user_id,omitempty"`
}

// SessionResponse represents a session lifecycle response.
type SessionResponse struct {
	Room    string `json:"room"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ResumeResponse carries the stored transcript back to the caller so the
// interrupted interview can continue where it left off.
type ResumeResponse struct {
	Room          string           `json:"room"`
	Messages      []models.Message `json:"messages"`
	Status        string           `json:"status"`
	TotalMessages int              `json:"total_messages"`
}

// Connect starts or resumes a session. The status is derived solely from
// whether a stored conversation exists for the room.
func (h *Handler) Connect(w http.ResponseWriter, r *http.Request) {
	var req SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Room == "" {
		h.Error(w, http.StatusBadRequest, "room is required")
		return
	}

	conv, err := h.store.GetConversation(r.Context(), req.Room)
	if err != nil {
		h.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	if conv != nil {
		h.JSON(w, http.StatusOK, SessionResponse{
			Room:    req.Room,
			Status:  "resumed",
			Message: fmt.Sprintf("Session resumed for room %s", req.Room),
		})
		return
	}

	h.JSON(w, http.StatusOK, SessionResponse{
		Room:    req.Room,
		Status:  "new",
		Message: fmt.Sprintf("New session started for room %s", req.Room),
	})
}

// Pause acknowledges a pause. It has no persisted effect; the voice platform
// keeps the room alive and the transcript stays where it is.
func (h *Handler) Pause(w http.ResponseWriter, r *http.Request) {
	room := chi.URLParam(r, "room")

	h.JSON(w, http.StatusOK, SessionResponse{
		Room:    room,
		Status:  "paused",
		Message: fmt.Sprintf("Session paused for room %s", room),
	})
}

// Resume returns the stored transcript for a room, 404 if unknown.
func (h *Handler) Resume(w http.ResponseWriter, r *http.Request) {
	room := chi.URLParam(r, "room")

	conv, err := h.store.GetConversation(r.Context(), room)
	if err != nil {
		h.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if conv == nil {
		h.Error(w, http.StatusNotFound, "room not found")
		return
	}

	messages := conv.Messages
	if messages == nil {
		messages = []models.Message{}
	}

	h.JSON(w, http.StatusOK, ResumeResponse{
		Room:          room,
		Messages:      messages,
		Status:        "resumed",
		TotalMessages: len(messages),
	})
}

// End marks the conversation ended and best-effort deletes the live room.
// A LiveKit failure never fails the request; the store is the authority.
func (h *Handler) End(w http.ResponseWriter, r *http.Request) {
	room := chi.URLParam(r, "room")

	if err := h.store.MarkEnded(r.Context(), room); err != nil {
		h.logger.Error().Err(err).Str("room", room).Msg("failed to mark session ended")
		h.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	if h.rooms != nil {
		if err := h.rooms.DeleteRoom(r.Context(), room); err != nil {
			h.logger.Error().Err(err).Str("room", room).Msg("LiveKit room deletion failed")
		} else {
			h.logger.Info().Str("room", room).Msg("room deleted from LiveKit")
		}
	}

	h.JSON(w, http.StatusOK, SessionResponse{
		Room:    room,
		Status:  "ended",
		Message: fmt.Sprintf("Session ended and room %s deleted", room),
	})
}
