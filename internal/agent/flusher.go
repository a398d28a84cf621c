package agent

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/yousuf-kodexo/livekitPOC/internal/metrics"
	"github.com/yousuf-kodexo/livekitPOC/internal/store"
)

// Flusher drains the buffer one entry per tick and upserts each into the
// store. Persistence is best-effort: a failed upsert is logged and the entry
// dropped, never retried or requeued. One flusher runs per worker process;
// starting a second one would duplicate drains.
type Flusher struct {
	buf      *Buffer
	store    store.ConversationStore
	interval time.Duration
	logger   zerolog.Logger
}

// NewFlusher creates a flusher draining buf into cs every interval.
func NewFlusher(buf *Buffer, cs store.ConversationStore, interval time.Duration, logger zerolog.Logger) *Flusher {
	if interval <= 0 {
		interval = time.Second
	}
	return &Flusher{buf: buf, store: cs, interval: interval, logger: logger}
}

// Run loops until ctx is cancelled. The fixed cadence bounds throughput to
// one message per interval regardless of queue depth; that is a simplicity
// trade-off, not backpressure.
func (f *Flusher) Run(ctx context.Context) {
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			f.logger.Info().Int("pending", f.buf.Len()).Msg("flusher stopped")
			return
		case <-ticker.C:
			f.flushOne(ctx)
		}
	}
}

// flushOne persists at most one entry. FIFO order per room is preserved
// because this is the buffer's only consumer; a dropped entry is a
// contiguous loss, never a reorder.
func (f *Flusher) flushOne(ctx context.Context) {
	entry, ok := f.buf.Dequeue()
	if !ok {
		return
	}

	start := time.Now()
	if err := f.store.AppendMessage(ctx, entry.Room, entry.Message); err != nil {
		metrics.MessagesDropped.Inc()
		f.logger.Error().
			Err(err).
			Str("entry_id", entry.ID).
			Str("room", entry.Room).
			Msg("flush failed, message dropped")
		return
	}

	metrics.MessagesFlushed.Inc()
	metrics.FlushLatency.Observe(time.Since(start).Seconds())
	f.logger.Info().
		Str("entry_id", entry.ID).
		Str("room", entry.Room).
		Msg("flushed message to store")
}
