package agent

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/yousuf-kodexo/livekitPOC/internal/models"
)

// recordingStore is an in-memory ConversationStore for flusher tests.
type recordingStore struct {
	mu       sync.Mutex
	appended map[string][]models.Message
	failOn   map[string]bool // message texts whose append fails
}

func newRecordingStore() *recordingStore {
	return &recordingStore{
		appended: make(map[string][]models.Message),
		failOn:   make(map[string]bool),
	}
}

func (s *recordingStore) Close()                          {}
func (s *recordingStore) Ping(ctx context.Context) error  { return nil }
func (s *recordingStore) MarkEnded(ctx context.Context, room string) error { return nil }

func (s *recordingStore) AppendMessage(ctx context.Context, room string, msg models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failOn[msg.Text] {
		return errors.New("store unavailable")
	}
	s.appended[room] = append(s.appended[room], msg)
	return nil
}

func (s *recordingStore) GetConversation(ctx context.Context, room string) (*models.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs, ok := s.appended[room]
	if !ok {
		return nil, nil
	}
	return &models.Conversation{Room: room, Messages: msgs}, nil
}

func (s *recordingStore) ListRooms(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var rooms []string
	for room := range s.appended {
		rooms = append(rooms, room)
	}
	return rooms, nil
}

func (s *recordingStore) messages(room string) []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Message, len(s.appended[room]))
	copy(out, s.appended[room])
	return out
}

func TestFlusher_PreservesOrder(t *testing.T) {
	buf := NewBuffer()
	cs := newRecordingStore()
	f := NewFlusher(buf, cs, time.Millisecond, zerolog.Nop())

	for i := 0; i < 4; i++ {
		role := models.RoleUser
		if i%2 == 1 {
			role = models.RoleAgent
		}
		buf.Enqueue("roomX", models.Message{Role: role, Text: fmt.Sprintf("msg-%d", i)})
	}

	ctx := context.Background()
	for i := 0; i < 4; i++ {
		f.flushOne(ctx)
	}

	got := cs.messages("roomX")
	if len(got) != 4 {
		t.Fatalf("expected 4 flushed messages, got %d", len(got))
	}
	for i, m := range got {
		if m.Text != fmt.Sprintf("msg-%d", i) {
			t.Errorf("position %d: expected msg-%d, got %q", i, i, m.Text)
		}
		wantRole := models.RoleUser
		if i%2 == 1 {
			wantRole = models.RoleAgent
		}
		if m.Role != wantRole {
			t.Errorf("position %d: expected role %q, got %q", i, wantRole, m.Role)
		}
	}
}

func TestFlusher_DropsFailedEntryWithoutReordering(t *testing.T) {
	buf := NewBuffer()
	cs := newRecordingStore()
	cs.failOn["msg-1"] = true
	f := NewFlusher(buf, cs, time.Millisecond, zerolog.Nop())

	for i := 0; i < 3; i++ {
		buf.Enqueue("roomX", models.Message{Role: models.RoleUser, Text: fmt.Sprintf("msg-%d", i)})
	}

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		f.flushOne(ctx)
	}

	got := cs.messages("roomX")
	if len(got) != 2 {
		t.Fatalf("expected 2 surviving messages, got %d", len(got))
	}
	// Contiguous loss, never a reorder
	if got[0].Text != "msg-0" || got[1].Text != "msg-2" {
		t.Fatalf("expected [msg-0 msg-2], got [%s %s]", got[0].Text, got[1].Text)
	}
	if buf.Len() != 0 {
		t.Fatalf("failed entry should be dropped, not requeued; %d left", buf.Len())
	}
}

func TestFlusher_RunDrainsAndStops(t *testing.T) {
	buf := NewBuffer()
	cs := newRecordingStore()
	f := NewFlusher(buf, cs, time.Millisecond, zerolog.Nop())

	buf.Enqueue("roomY", models.Message{Role: models.RoleUser, Text: "hello"})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		f.Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for len(cs.messages("roomY")) == 0 {
		select {
		case <-deadline:
			t.Fatal("flusher did not drain within deadline")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("flusher did not stop on context cancel")
	}
}

func TestFlusher_RoundTrip(t *testing.T) {
	buf := NewBuffer()
	cs := newRecordingStore()
	f := NewFlusher(buf, cs, time.Millisecond, zerolog.Nop())

	buf.Enqueue("roomZ", models.Message{Role: models.RoleAgent, Text: "I am Doctor Virtual"})
	f.flushOne(context.Background())

	conv, err := cs.GetConversation(context.Background(), "roomZ")
	if err != nil {
		t.Fatal(err)
	}
	if conv == nil || len(conv.Messages) != 1 {
		t.Fatal("expected flushed message to be readable")
	}
	if conv.Messages[0].Text != "I am Doctor Virtual" {
		t.Fatalf("unexpected text %q", conv.Messages[0].Text)
	}
}
