package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/yousuf-kodexo/livekitPOC/internal/livekit"
	"github.com/yousuf-kodexo/livekitPOC/internal/metrics"
)

// TokenRequest represents the token generation request.
type TokenRequest struct {
	Room     string `json:"room"`
	Identity string `json:"identity,omitempty"`
}

// TokenResponse represents the token generation response.
type TokenResponse struct {
	Token    string `json:"token"`
	Identity string `json:"identity"`
	Room     string `json:"room"`
	URL      string `json:"url"`
}

// Token handles LiveKit access token generation for a room.
func (h *Handler) Token(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Room == "" {
		h.Error(w, http.StatusBadRequest, "room is required")
		return
	}

	if !h.cfg.HasLiveKitCredentials() {
		h.Error(w, http.StatusInternalServerError, "LiveKit credentials not configured")
		return
	}

	identity := req.Identity
	if identity == "" {
		identity = fmt.Sprintf("patient_%d", time.Now().Unix())
	}

	token, err := livekit.MintToken(h.cfg.LiveKitAPIKey, h.cfg.LiveKitAPISecret, req.Room, identity, livekit.DefaultTokenTTL)
	if err != nil {
		h.logger.Error().Err(err).Str("room", req.Room).Msg("token generation failed")
		h.Error(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	metrics.TokensIssued.Inc()

	h.JSON(w, http.StatusOK, TokenResponse{
		Token:    token,
		Identity: identity,
		Room:     req.Room,
		URL:      h.cfg.LiveKitURL,
	})
}
