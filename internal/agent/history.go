package agent

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/yousuf-kodexo/livekitPOC/internal/models"
)

// HistoryLoader fetches a room's stored transcript from the API server.
// It is fail-open: any failure (transport error, non-200 status, malformed
// payload) is logged and yields an empty history. A missing or unreachable
// history must never block session start.
type HistoryLoader struct {
	baseURL string
	client  *http.Client
	logger  zerolog.Logger
}

// NewHistoryLoader creates a loader against the API server at baseURL.
func NewHistoryLoader(baseURL string, logger zerolog.Logger) *HistoryLoader {
	return &HistoryLoader{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
}

// Fetch returns the ordered message sequence for a room, or nil on any
// failure.
func (l *HistoryLoader) Fetch(room string) []models.Message {
	url := fmt.Sprintf("%s/conversation/%s", l.baseURL, room)

	resp, err := l.client.Get(url)
	if err != nil {
		l.logger.Error().Err(err).Str("room", room).Msg("history fetch failed")
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		l.logger.Error().Int("status", resp.StatusCode).Str("room", room).Msg("history fetch returned non-200")
		return nil
	}

	var payload struct {
		Messages []models.Message `json:"messages"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		l.logger.Error().Err(err).Str("room", room).Msg("history payload malformed")
		return nil
	}

	return payload.Messages
}
