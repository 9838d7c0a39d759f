package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/carebothq/carebot-api/internal/llm"
	"github.com/carebothq/carebot-api/internal/models"
	"github.com/carebothq/carebot-api/internal/store"
)

// fakeCompletion records the transcripts it receives and returns a canned
// reply or error.
type fakeCompletion struct {
	reply    string
	err      error
	lastSys  string
	received [][]llm.Turn
}

func (f *fakeCompletion) Complete(ctx context.Context, system string, turns []llm.Turn) (string, error) {
	f.lastSys = system
	f.received = append(f.received, turns)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func newChatService(reply string) (*ChatService, *store.Memory, *fakeCompletion) {
	mem := store.NewMemory()
	fake := &fakeCompletion{reply: reply}
	return NewChatService(store.FromMemory(mem), fake), mem, fake
}

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		name string
		seed string
		want string
	}{
		{"plain", "I have a headache", "I have a headache"},
		{"trimmed", "  sore throat  ", "sore throat"},
		{"empty", "", "New Chat"},
		{"whitespace only", "   \t ", "New Chat"},
		{"long", strings.Repeat("a", 100), strings.Repeat("a", 40)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := deriveTitle(tt.seed); got != tt.want {
				t.Errorf("deriveTitle(%q) = %q, want %q", tt.seed, got, tt.want)
			}
		})
	}
}

func TestPostMessageCreatesSession(t *testing.T) {
	svc, mem, _ := newChatService("Rest and stay hydrated.")
	ctx := context.Background()

	reply, err := svc.PostMessage(ctx, "I have a mild fever", "")
	if err != nil {
		t.Fatalf("post message: %v", err)
	}
	if reply.Role != models.RoleAssistant {
		t.Errorf("role: got %q", reply.Role)
	}
	if reply.Content != "Rest and stay hydrated." {
		t.Errorf("content: got %q", reply.Content)
	}
	if reply.Severity != "mild" {
		t.Errorf("severity stub: got %q", reply.Severity)
	}
	if len(reply.Suggestions) != 0 {
		t.Errorf("suggestions stub should be empty, got %v", reply.Suggestions)
	}
	if reply.SessionID == "" {
		t.Fatal("expected session id on reply")
	}

	sessions, err := mem.Sessions(ctx)
	if err != nil {
		t.Fatalf("sessions: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected exactly one session, got %d", len(sessions))
	}
	if sessions[0].Title != "I have a mild fever" {
		t.Errorf("title: got %q", sessions[0].Title)
	}
	if !sessions[0].LastMessageAt.After(sessions[0].CreatedAt) {
		t.Error("last_message_at should advance past creation time")
	}

	msgs, err := mem.MessagesBySession(ctx, sessions[0].ID)
	if err != nil {
		t.Fatalf("messages: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected user + assistant messages, got %d", len(msgs))
	}
	if msgs[0].Role != models.RoleUser || msgs[1].Role != models.RoleAssistant {
		t.Errorf("message order: got %q then %q", msgs[0].Role, msgs[1].Role)
	}
}

func TestPostMessageExistingSession(t *testing.T) {
	svc, mem, _ := newChatService("ok")
	ctx := context.Background()

	first, err := svc.PostMessage(ctx, "hello", "")
	if err != nil {
		t.Fatalf("first message: %v", err)
	}
	second, err := svc.PostMessage(ctx, "still hurts", first.SessionID)
	if err != nil {
		t.Fatalf("second message: %v", err)
	}
	if second.SessionID != first.SessionID {
		t.Errorf("expected same session, got %s vs %s", second.SessionID, first.SessionID)
	}

	sessions, _ := mem.Sessions(ctx)
	if len(sessions) != 1 {
		t.Fatalf("expected one session, got %d", len(sessions))
	}

	history, err := svc.History(ctx, first.SessionID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(history))
	}
	for i := 1; i < len(history); i++ {
		if history[i].Timestamp.Before(history[i-1].Timestamp) {
			t.Fatalf("history not in ascending timestamp order at %d", i)
		}
	}
}

func TestPostMessageValidation(t *testing.T) {
	svc, _, _ := newChatService("ok")

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := svc.PostMessage(context.Background(), text, "")
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Errorf("PostMessage(%q): expected ValidationError, got %v", text, err)
		}
	}
}

func TestPostMessageUnknownSession(t *testing.T) {
	svc, _, _ := newChatService("ok")

	_, err := svc.PostMessage(context.Background(), "hi", "64b000000000000000000000")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	_, err = svc.PostMessage(context.Background(), "hi", "not-a-hex-id")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for malformed id, got %v", err)
	}
}

func TestPostMessageUpstreamFailure(t *testing.T) {
	svc, mem, fake := newChatService("")
	fake.err = &llm.UpstreamError{Status: 503}

	reply, err := svc.PostMessage(context.Background(), "help", "")
	if reply != nil {
		t.Fatal("expected no reply on upstream failure")
	}
	var upErr *llm.UpstreamError
	if !errors.As(err, &upErr) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}

	// No assistant message is invented on hard failure.
	sessions, _ := mem.Sessions(context.Background())
	if len(sessions) != 1 {
		t.Fatalf("expected session to exist, got %d", len(sessions))
	}
	msgs, _ := mem.MessagesBySession(context.Background(), sessions[0].ID)
	if len(msgs) != 1 || msgs[0].Role != models.RoleUser {
		t.Fatalf("expected only the persisted user message, got %d", len(msgs))
	}
}

func TestPostMessageEmptyReplyFallback(t *testing.T) {
	svc, _, _ := newChatService("   ")

	reply, err := svc.PostMessage(context.Background(), "hello", "")
	if err != nil {
		t.Fatalf("post message: %v", err)
	}
	if reply.Content != fallbackReply {
		t.Errorf("expected fallback reply, got %q", reply.Content)
	}
}

func TestTranscriptWindowIsBounded(t *testing.T) {
	svc, _, fake := newChatService("ok")
	ctx := context.Background()

	first, err := svc.PostMessage(ctx, "turn 0", "")
	if err != nil {
		t.Fatalf("first message: %v", err)
	}
	for i := 1; i < 15; i++ {
		if _, err := svc.PostMessage(ctx, "another turn", first.SessionID); err != nil {
			t.Fatalf("message %d: %v", i, err)
		}
	}

	last := fake.received[len(fake.received)-1]
	if len(last) != historyWindow {
		t.Fatalf("expected transcript capped at %d turns, got %d", historyWindow, len(last))
	}
	// The newest user message must be the final turn of the transcript.
	if last[len(last)-1].Role != models.RoleUser || last[len(last)-1].Content != "another turn" {
		t.Errorf("last turn should be the new user message, got %+v", last[len(last)-1])
	}
	if fake.lastSys == "" {
		t.Error("system directive missing from upstream call")
	}
}

func TestDeleteSessionCascades(t *testing.T) {
	svc, mem, _ := newChatService("ok")
	ctx := context.Background()

	reply, err := svc.PostMessage(ctx, "delete me", "")
	if err != nil {
		t.Fatalf("post message: %v", err)
	}

	if err := svc.DeleteSession(ctx, reply.SessionID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	sessions, _ := mem.Sessions(ctx)
	if len(sessions) != 0 {
		t.Fatalf("expected no sessions after delete, got %d", len(sessions))
	}
	if _, err := svc.History(ctx, reply.SessionID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for deleted session, got %v", err)
	}

	// Idempotent: a second delete and a malformed id are both fine.
	if err := svc.DeleteSession(ctx, reply.SessionID); err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if err := svc.DeleteSession(ctx, "garbage"); err != nil {
		t.Fatalf("delete with malformed id: %v", err)
	}
}

func TestListSessionsOrdering(t *testing.T) {
	svc, _, _ := newChatService("ok")
	ctx := context.Background()

	a, err := svc.PostMessage(ctx, "first conversation", "")
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	b, err := svc.PostMessage(ctx, "second conversation", "")
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	// Touch the first conversation again so it becomes most recent.
	if _, err := svc.PostMessage(ctx, "follow-up", a.SessionID); err != nil {
		t.Fatalf("post: %v", err)
	}

	sessions, err := svc.ListSessions(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	if sessions[0].ID != a.SessionID || sessions[1].ID != b.SessionID {
		t.Errorf("expected most recently active session first, got %s then %s", sessions[0].ID, sessions[1].ID)
	}
}

func TestCreateSessionExplicit(t *testing.T) {
	svc, _, _ := newChatService("ok")

	sess, err := svc.CreateSession(context.Background(), "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if sess.Title != "New Chat" {
		t.Errorf("default title: got %q", sess.Title)
	}

	named, err := svc.CreateSession(context.Background(), "Back pain")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if named.Title != "Back pain" {
		t.Errorf("title: got %q", named.Title)
	}
}
