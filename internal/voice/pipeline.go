package voice

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/yousuf-kodexo/livekitPOC/internal/agent"
)

const defaultModel = "gemini-2.0-flash"

// Pipeline implements agent.Pipeline on top of the Gemini API. It keeps the
// running conversation in memory so every reply sees the turns of the
// current session; prior-session context arrives through the standing
// instructions assembled by the orchestrator.
type Pipeline struct {
	client *genai.Client
	model  string
	logger zerolog.Logger

	mu           sync.Mutex
	instructions string
	onItem       func(agent.Item)
	contents     []*genai.Content
}

// NewPipeline creates a pipeline backed by the Gemini API.
func NewPipeline(ctx context.Context, apiKey string, logger zerolog.Logger) (*Pipeline, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}

	return &Pipeline{client: client, model: defaultModel, logger: logger}, nil
}

// Start stores the standing instructions and the turn-completed callback.
func (p *Pipeline) Start(ctx context.Context, instructions string, onItem func(agent.Item)) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.onItem != nil {
		return errors.New("pipeline already started")
	}
	p.instructions = instructions
	p.onItem = onItem
	return nil
}

// GenerateReply asks the model for an unprompted turn, e.g. the opening
// greeting of a fresh session.
func (p *Pipeline) GenerateReply(ctx context.Context, instructions string) error {
	p.mu.Lock()
	p.contents = append(p.contents, genai.NewContentFromText(instructions, genai.RoleUser))
	p.mu.Unlock()

	return p.respond(ctx)
}

// HandleUserText processes one caller turn: it emits the user item and then
// generates the interviewer's reply. Wire it to the room's data callback.
func (p *Pipeline) HandleUserText(ctx context.Context, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	p.emit(agent.Item{Role: "user", Text: text})

	p.mu.Lock()
	p.contents = append(p.contents, genai.NewContentFromText(text, genai.RoleUser))
	p.mu.Unlock()

	if err := p.respond(ctx); err != nil {
		p.logger.Error().Err(err).Msg("reply generation failed")
	}
}

// respond calls the model over the session transcript and emits the reply.
func (p *Pipeline) respond(ctx context.Context) error {
	p.mu.Lock()
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(p.instructions, genai.RoleUser),
	}
	contents := make([]*genai.Content, len(p.contents))
	copy(contents, p.contents)
	p.mu.Unlock()

	resp, err := p.client.Models.GenerateContent(ctx, p.model, contents, cfg)
	if err != nil {
		return err
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return errors.New("model returned empty reply")
	}

	p.mu.Lock()
	p.contents = append(p.contents, genai.NewContentFromText(text, genai.RoleModel))
	p.mu.Unlock()

	p.emit(agent.Item{Role: "assistant", Text: text})
	return nil
}

func (p *Pipeline) emit(item agent.Item) {
	p.mu.Lock()
	onItem := p.onItem
	p.mu.Unlock()

	if onItem != nil {
		onItem(item)
	}
}
