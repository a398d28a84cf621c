package agent

import "context"

// Item is one completed conversation turn reported by the pipeline. Roles
// arrive in the provider's vocabulary ("user"/"assistant") and are
// normalized by the orchestrator before persistence.
type Item struct {
	Role string
	Text string
}

// Pipeline is the delegated voice stack. Audio transport, voice activity
// detection, speech recognition, language-model inference and speech
// synthesis all live behind it; the orchestrator only starts it, asks for
// unprompted replies, and consumes its turn-completed events.
type Pipeline interface {
	// Start begins the session with the given standing instructions and
	// registers the turn-completed callback. The callback may be invoked
	// from the pipeline's own goroutines.
	Start(ctx context.Context, instructions string, onItem func(Item)) error

	// GenerateReply asks the language model for an unprompted turn.
	GenerateReply(ctx context.Context, instructions string) error
}

// Broadcaster delivers a payload to every room participant as a reliable
// out-of-band data message.
type Broadcaster interface {
	PublishData(payload []byte) error
}
