package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/yousuf-kodexo/livekitPOC/internal/api"
	"github.com/yousuf-kodexo/livekitPOC/internal/config"
	"github.com/yousuf-kodexo/livekitPOC/internal/handlers"
	"github.com/yousuf-kodexo/livekitPOC/internal/models"
)

// memStore is an in-memory ConversationStore for handler tests.
type memStore struct {
	mu    sync.Mutex
	convs map[string]*models.Conversation
}

func newMemStore() *memStore {
	return &memStore{convs: make(map[string]*models.Conversation)}
}

func (s *memStore) Close()                         {}
func (s *memStore) Ping(ctx context.Context) error { return nil }

func (s *memStore) AppendMessage(ctx context.Context, room string, msg models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.convs[room]
	if !ok {
		conv = &models.Conversation{Room: room}
		s.convs[room] = conv
	}
	conv.Messages = append(conv.Messages, msg)
	return nil
}

func (s *memStore) GetConversation(ctx context.Context, room string) (*models.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.convs[room]
	if !ok {
		return nil, nil
	}
	out := *conv
	return &out, nil
}

func (s *memStore) ListRooms(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var rooms []string
	for room := range s.convs {
		rooms = append(rooms, room)
	}
	sort.Strings(rooms)
	return rooms, nil
}

func (s *memStore) MarkEnded(ctx context.Context, room string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.convs[room]
	if !ok {
		conv = &models.Conversation{Room: room}
		s.convs[room] = conv
	}
	now := time.Now().UTC()
	conv.Status = models.StatusEnded
	conv.EndedAt = &now
	return nil
}

// fakeDeleter records room deletions.
type fakeDeleter struct {
	mu      sync.Mutex
	deleted []string
	err     error
}

func (d *fakeDeleter) DeleteRoom(ctx context.Context, room string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return d.err
	}
	d.deleted = append(d.deleted, room)
	return nil
}

func testServer(t *testing.T, cs *memStore, rooms handlers.RoomDeleter, cfg *config.Config) *httptest.Server {
	t.Helper()
	if cfg == nil {
		cfg = &config.Config{LiveKitURL: "wss://test.livekit.cloud"}
	}
	h := handlers.NewHandler(cs, nil, rooms, cfg, zerolog.Nop())
	srv := httptest.NewServer(api.NewRouter(zerolog.Nop(), h, nil))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url, body string) (*http.Response, map[string]interface{}) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	return resp, out
}

func getJSON(t *testing.T, url string) (*http.Response, map[string]interface{}) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	return resp, out
}

func TestConnect_NewAndResumed(t *testing.T) {
	cs := newMemStore()
	srv := testServer(t, cs, nil, nil)

	resp, out := postJSON(t, srv.URL+"/connect", `{"room":"room1"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if out["status"] != "new" {
		t.Fatalf("expected new, got %v", out["status"])
	}

	cs.AppendMessage(context.Background(), "room1", models.Message{Role: models.RoleUser, Text: "hi"})

	_, out = postJSON(t, srv.URL+"/connect", `{"room":"room1"}`)
	if out["status"] != "resumed" {
		t.Fatalf("expected resumed, got %v", out["status"])
	}
}

func TestConnect_RequiresRoom(t *testing.T) {
	srv := testServer(t, newMemStore(), nil, nil)

	resp, _ := postJSON(t, srv.URL+"/connect", `{}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestPause_NoPersistedEffect(t *testing.T) {
	cs := newMemStore()
	srv := testServer(t, cs, nil, nil)

	resp, out := postJSON(t, srv.URL+"/pause/room1", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if out["status"] != "paused" {
		t.Fatalf("expected paused, got %v", out["status"])
	}

	conv, _ := cs.GetConversation(context.Background(), "room1")
	if conv != nil {
		t.Fatal("pause must not create a conversation document")
	}
}

func TestResume_UnknownRoomIs404(t *testing.T) {
	srv := testServer(t, newMemStore(), nil, nil)

	resp, _ := postJSON(t, srv.URL+"/resume/ghost", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestResume_ReturnsTranscript(t *testing.T) {
	cs := newMemStore()
	cs.AppendMessage(context.Background(), "room1", models.Message{Role: models.RoleUser, Text: "hi"})
	cs.AppendMessage(context.Background(), "room1", models.Message{Role: models.RoleAgent, Text: "hello"})
	srv := testServer(t, cs, nil, nil)

	resp, out := postJSON(t, srv.URL+"/resume/room1", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if out["status"] != "resumed" {
		t.Fatalf("expected resumed, got %v", out["status"])
	}
	if out["total_messages"].(float64) != 2 {
		t.Fatalf("expected 2 total_messages, got %v", out["total_messages"])
	}
}

func TestConversation_UnknownRoomReturnsEmptyList(t *testing.T) {
	srv := testServer(t, newMemStore(), nil, nil)

	resp, out := getJSON(t, srv.URL+"/conversation/ghost")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	msgs, ok := out["messages"].([]interface{})
	if !ok {
		t.Fatalf("messages must be a list, got %T", out["messages"])
	}
	if len(msgs) != 0 {
		t.Fatalf("expected empty list, got %d", len(msgs))
	}
}

func TestConversation_AlternatingOrderPreserved(t *testing.T) {
	cs := newMemStore()
	texts := []string{"u1", "a1", "u2", "a2"}
	for i, text := range texts {
		role := models.RoleUser
		if i%2 == 1 {
			role = models.RoleAgent
		}
		cs.AppendMessage(context.Background(), "roomX", models.Message{Role: role, Text: text})
	}
	srv := testServer(t, cs, nil, nil)

	_, out := getJSON(t, srv.URL+"/conversation/roomX")
	msgs := out["messages"].([]interface{})
	if len(msgs) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(msgs))
	}
	for i, raw := range msgs {
		m := raw.(map[string]interface{})
		if m["text"] != texts[i] {
			t.Errorf("position %d: expected %q, got %v", i, texts[i], m["text"])
		}
	}
}

func TestRooms_Idempotent(t *testing.T) {
	cs := newMemStore()
	cs.AppendMessage(context.Background(), "a", models.Message{Role: models.RoleUser, Text: "x"})
	cs.AppendMessage(context.Background(), "b", models.Message{Role: models.RoleUser, Text: "y"})
	srv := testServer(t, cs, nil, nil)

	_, first := getJSON(t, srv.URL+"/rooms")
	_, second := getJSON(t, srv.URL+"/rooms")

	if !reflect.DeepEqual(first["rooms"], second["rooms"]) {
		t.Fatalf("rooms not idempotent: %v vs %v", first["rooms"], second["rooms"])
	}
	if len(first["rooms"].([]interface{})) != 2 {
		t.Fatalf("expected 2 rooms, got %v", first["rooms"])
	}
}

func TestEnd_MarksEndedAndDeletesRoom(t *testing.T) {
	cs := newMemStore()
	cs.AppendMessage(context.Background(), "room1", models.Message{Role: models.RoleUser, Text: "hi"})
	deleter := &fakeDeleter{}
	srv := testServer(t, cs, deleter, nil)

	resp, out := postJSON(t, srv.URL+"/end/room1", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if out["status"] != "ended" {
		t.Fatalf("expected ended, got %v", out["status"])
	}

	if len(deleter.deleted) != 1 || deleter.deleted[0] != "room1" {
		t.Fatalf("expected room1 deletion, got %v", deleter.deleted)
	}

	// Ending never erases messages
	conv, _ := cs.GetConversation(context.Background(), "room1")
	if conv.Status != models.StatusEnded {
		t.Fatalf("expected ended status, got %q", conv.Status)
	}
	if len(conv.Messages) != 1 {
		t.Fatalf("end must not erase messages, got %d", len(conv.Messages))
	}
}

func TestEnd_LiveKitFailureIsBestEffort(t *testing.T) {
	cs := newMemStore()
	deleter := &fakeDeleter{err: errors.New("livekit down")}
	srv := testServer(t, cs, deleter, nil)

	resp, out := postJSON(t, srv.URL+"/end/room1", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("room deletion failure must not fail the request, got %d", resp.StatusCode)
	}
	if out["status"] != "ended" {
		t.Fatalf("expected ended, got %v", out["status"])
	}
}

// Scenario: connect an unseen room, end it immediately, read it back.
func TestSessionLifecycle_ConnectEndConversation(t *testing.T) {
	cs := newMemStore()
	srv := testServer(t, cs, &fakeDeleter{}, nil)

	_, out := postJSON(t, srv.URL+"/connect", `{"room":"fresh-room"}`)
	if out["status"] != "new" {
		t.Fatalf("expected new, got %v", out["status"])
	}

	_, out = postJSON(t, srv.URL+"/end/fresh-room", "")
	if out["status"] != "ended" {
		t.Fatalf("expected ended, got %v", out["status"])
	}

	_, out = getJSON(t, srv.URL+"/conversation/fresh-room")
	if len(out["messages"].([]interface{})) != 0 {
		t.Fatalf("expected empty transcript, got %v", out["messages"])
	}
}

func TestToken_MissingCredentials(t *testing.T) {
	srv := testServer(t, newMemStore(), nil, &config.Config{LiveKitURL: "wss://test.livekit.cloud"})

	resp, out := postJSON(t, srv.URL+"/token", `{"room":"room1"}`)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500 without credentials, got %d", resp.StatusCode)
	}
	if out["error"] == "" {
		t.Fatal("expected error message")
	}
}

func TestToken_IssuesTokenWithDefaultIdentity(t *testing.T) {
	cfg := &config.Config{
		LiveKitAPIKey:    "APItestkey",
		LiveKitAPISecret: "supersecretsupersecretsupersecret42",
		LiveKitURL:       "wss://test.livekit.cloud",
	}
	srv := testServer(t, newMemStore(), nil, cfg)

	resp, out := postJSON(t, srv.URL+"/token", `{"room":"room1"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", resp.StatusCode, out)
	}
	if out["token"] == "" {
		t.Fatal("expected a token")
	}
	if out["url"] != cfg.LiveKitURL {
		t.Fatalf("expected url %q, got %v", cfg.LiveKitURL, out["url"])
	}
	identity, _ := out["identity"].(string)
	if !strings.HasPrefix(identity, "patient_") {
		t.Fatalf("expected timestamp-derived identity, got %q", identity)
	}
}

func TestHealth_Degraded(t *testing.T) {
	// No store configured at all
	h := handlers.NewHandler(nil, nil, nil, &config.Config{}, zerolog.Nop())
	srv := httptest.NewServer(api.NewRouter(zerolog.Nop(), h, nil))
	defer srv.Close()

	resp, out := getJSON(t, srv.URL+"/health")
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.StatusCode)
	}
	if out["status"] != "degraded" {
		t.Fatalf("expected degraded, got %v", out["status"])
	}
}
