// Package agent implements the intake interviewer: the write-behind
// persistence queue, the session-resumption routine, and the orchestrator
// that drives the delegated voice pipeline.
package agent

import (
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/yousuf-kodexo/livekitPOC/internal/metrics"
	"github.com/yousuf-kodexo/livekitPOC/internal/models"
)

// Entry is one queued (room, message) pair awaiting persistence. The ID is
// for log correlation only and is never persisted.
type Entry struct {
	ID      string
	Room    string
	Message models.Message
}

// Buffer is an unbounded FIFO queue of messages awaiting persistence.
// Enqueue is called from the event-handling path and never blocks on I/O;
// Dequeue is called only by the Flusher. There is no capacity bound and no
// deduplication: a producer surge grows memory unboundedly and a message
// enqueued twice is persisted twice.
type Buffer struct {
	mu      sync.Mutex
	entries []Entry
}

// NewBuffer creates an empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Enqueue appends a message for a room in O(1).
func (b *Buffer) Enqueue(room string, msg models.Message) {
	b.mu.Lock()
	b.entries = append(b.entries, Entry{
		ID:      ulid.Make().String(),
		Room:    room,
		Message: msg,
	})
	depth := len(b.entries)
	b.mu.Unlock()

	metrics.MessagesQueued.Inc()
	metrics.QueueDepth.Set(float64(depth))
}

// Dequeue removes and returns the oldest entry, or ok=false when empty.
func (b *Buffer) Dequeue() (Entry, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.entries) == 0 {
		return Entry{}, false
	}

	e := b.entries[0]
	b.entries = b.entries[1:]
	metrics.QueueDepth.Set(float64(len(b.entries)))
	return e, true
}

// Len returns the number of queued entries.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}
