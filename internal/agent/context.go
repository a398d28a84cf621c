package agent

import (
	"strings"

	"github.com/yousuf-kodexo/livekitPOC/internal/models"
)

// contextWindow is how many trailing messages are replayed into the prompt.
const contextWindow = 10

// BuildContext renders the most recent slice of a transcript into a prompt
// block. An empty transcript yields the empty string: no context is injected.
func BuildContext(messages []models.Message) string {
	if len(messages) == 0 {
		return ""
	}

	recent := messages
	if len(recent) > contextWindow {
		recent = recent[len(recent)-contextWindow:]
	}

	separator := strings.Repeat("=", 50)

	var b strings.Builder
	b.WriteString("\n\nPREVIOUS CONVERSATION CONTEXT:\n")
	b.WriteString(separator + "\n")
	for _, msg := range recent {
		label := "DR. VIRTUAL"
		if msg.Role == models.RoleUser {
			label = "PATIENT"
		}
		b.WriteString(label + ": " + msg.Text + "\n")
	}
	b.WriteString(separator + "\n")
	b.WriteString("Continue the conversation naturally from where we left off. Do not repeat questions that have already been asked and answered.\n\n")

	return b.String()
}
