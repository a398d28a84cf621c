package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/yousuf-kodexo/livekitPOC/internal/metrics"
	"github.com/yousuf-kodexo/livekitPOC/internal/models"
)

// Session modes. The mode is decided exactly once, at connect time, by
// whether any stored history exists for the room.
const (
	ModeFresh   = "fresh"
	ModeResumed = "resumed"
)

// SessionPlan is the resolved startup decision for one room session.
type SessionPlan struct {
	Mode         string
	Stage        Stage // meaningful only when resumed
	Instructions string
	GreetFirst   bool
}

// PlanSession turns a room's stored history into a startup plan. Fresh
// sessions run the base script and trigger an opening turn; resumed sessions
// replay context plus the current stage and wait for the caller to speak.
func PlanSession(history []models.Message) SessionPlan {
	if len(history) == 0 {
		return SessionPlan{
			Mode:         ModeFresh,
			Instructions: baseInstructions,
			GreetFirst:   true,
		}
	}

	stage := ClassifyStage(history)
	return SessionPlan{
		Mode:         ModeResumed,
		Stage:        stage,
		Instructions: baseInstructions + BuildContext(history) + fmt.Sprintf("\n\nCURRENT STAGE: %s\n", stage),
	}
}

// broadcastMessage is the real-time payload sent to room participants for
// every completed turn.
type broadcastMessage struct {
	Type string `json:"type"`
	Role string `json:"role"`
	Text string `json:"text"`
}

// Orchestrator wires one voice-room session: it loads history, plans the
// session, starts the delegated pipeline, and feeds each completed turn into
// the persistence buffer and the room broadcast.
type Orchestrator struct {
	history *HistoryLoader
	buffer  *Buffer
	logger  zerolog.Logger
}

// NewOrchestrator creates an orchestrator. The buffer is shared with the
// process-wide flusher.
func NewOrchestrator(history *HistoryLoader, buffer *Buffer, logger zerolog.Logger) *Orchestrator {
	return &Orchestrator{history: history, buffer: buffer, logger: logger}
}

// StartSession runs session startup for a room. Pipeline failures are
// returned to the caller, which logs them and lets the session end without a
// user-visible signal; nothing here retries.
func (o *Orchestrator) StartSession(ctx context.Context, room string, pipe Pipeline, out Broadcaster) error {
	history := o.history.Fetch(room)
	plan := PlanSession(history)

	metrics.SessionsStarted.WithLabelValues(plan.Mode).Inc()
	if plan.Mode == ModeResumed {
		o.logger.Info().
			Str("room", room).
			Int("messages", len(history)).
			Str("stage", string(plan.Stage)).
			Msg("resuming previous conversation")
	} else {
		o.logger.Info().Str("room", room).Msg("no previous conversation found")
	}

	if err := pipe.Start(ctx, plan.Instructions, o.turnHandler(room, out)); err != nil {
		return fmt.Errorf("pipeline start: %w", err)
	}

	if plan.GreetFirst {
		if err := pipe.GenerateReply(ctx, greetingInstruction); err != nil {
			return fmt.Errorf("initial greeting: %w", err)
		}
	}

	o.logger.Info().Str("room", room).Msg("session fully running")
	return nil
}

// turnHandler persists and rebroadcasts each completed turn. The two side
// effects are independent: a broadcast failure never blocks persistence and
// vice versa. Each turn is enqueued exactly once.
func (o *Orchestrator) turnHandler(room string, out Broadcaster) func(Item) {
	return func(item Item) {
		role := item.Role
		if role != models.RoleUser {
			role = models.RoleAgent
		}

		o.buffer.Enqueue(room, models.Message{Role: role, Text: item.Text})
		o.logger.Info().Str("room", room).Str("role", role).Msg("queued message")

		payload, err := json.Marshal(broadcastMessage{
			Type: "conversation_message",
			Role: role,
			Text: item.Text,
		})
		if err != nil {
			o.logger.Error().Err(err).Str("room", room).Msg("failed to encode broadcast")
			return
		}
		if err := out.PublishData(payload); err != nil {
			metrics.BroadcastFailures.Inc()
			o.logger.Error().Err(err).Str("room", room).Msg("failed to broadcast turn")
		}
	}
}
