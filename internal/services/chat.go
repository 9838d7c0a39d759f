package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/carebothq/carebot-api/internal/llm"
	"github.com/carebothq/carebot-api/internal/models"
	"github.com/carebothq/carebot-api/internal/store"
)

// historyWindow bounds how many recent messages are forwarded upstream per
// request. This caps both latency and the completion payload size.
const historyWindow = 20

// fallbackReply is substituted when the upstream call succeeds but returns
// no usable text. A hard upstream failure still fails the request.
const fallbackReply = "I'm sorry, I couldn't generate a response."

const defaultSessionTitle = "New Chat"

// systemDirective is the fixed persona sent ahead of every transcript.
const systemDirective = `You are CareBot, an AI health-guidance assistant. Follow these rules:
1. Listen to symptoms with empathy and ask clarifying questions about duration and severity.
2. You provide general health guidance only. Never diagnose conditions and never prescribe prescription medications.
3. Always remind the user that this is not a medical diagnosis and that a licensed healthcare professional should be consulted if symptoms persist or worsen.
4. If the symptoms sound like an emergency (chest pain, severe bleeding, difficulty breathing, stroke signs), immediately advise calling emergency services or going to the nearest emergency room.
5. Suggest booking an appointment with a doctor when a consultation seems appropriate.
6. Be warm, professional, and concise. Use simple language.`

// AssistantReply is the normalized shape returned to the client after one
// pipeline run. Severity and Suggestions are fixed placeholders: no
// classifier exists, severity is always "mild" and suggestions are always
// empty. Known stub, kept until a real classifier is designed.
type AssistantReply struct {
	ID          string    `json:"id"`
	Role        string    `json:"role"`
	Content     string    `json:"content"`
	Timestamp   time.Time `json:"timestamp"`
	Severity    string    `json:"severity"`
	Suggestions []string  `json:"suggestions"`
	SessionID   string    `json:"session_id"`
}

// ChatService owns the session manager and the message pipeline.
type ChatService struct {
	store  store.Store
	client llm.CompletionClient
}

func NewChatService(st store.Store, client llm.CompletionClient) *ChatService {
	return &ChatService{store: st, client: client}
}

// deriveTitle builds a session title from the first user message: the first
// 40 runes of the trimmed text, falling back to "New Chat" when empty.
func deriveTitle(seed string) string {
	seed = strings.TrimSpace(seed)
	if seed == "" {
		return defaultSessionTitle
	}
	runes := []rune(seed)
	if len(runes) > 40 {
		return string(runes[:40])
	}
	return seed
}

// EnsureSession loads the session with the given hex id, or creates a new
// one titled from seedText when the id is empty.
func (s *ChatService) EnsureSession(ctx context.Context, sessionID, seedText string) (*models.ChatSession, error) {
	if sessionID != "" {
		oid, err := primitive.ObjectIDFromHex(sessionID)
		if err != nil {
			return nil, ErrNotFound
		}
		sess, err := s.store.Sessions.SessionByID(ctx, oid)
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return sess, err
	}

	now := time.Now().UTC()
	sess := &models.ChatSession{
		ID:            primitive.NewObjectID(),
		Title:         deriveTitle(seedText),
		LastMessageAt: now,
		CreatedAt:     now,
	}
	if err := s.store.Sessions.InsertSession(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// CreateSession explicitly creates an empty session (POST /chat/sessions).
func (s *ChatService) CreateSession(ctx context.Context, title string) (*models.ChatSession, error) {
	now := time.Now().UTC()
	sess := &models.ChatSession{
		ID:            primitive.NewObjectID(),
		Title:         deriveTitle(title),
		LastMessageAt: now,
		CreatedAt:     now,
	}
	if err := s.store.Sessions.InsertSession(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// ListSessions returns all sessions, most recently active first.
func (s *ChatService) ListSessions(ctx context.Context) ([]models.ChatSessionView, error) {
	sessions, err := s.store.Sessions.Sessions(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]models.ChatSessionView, 0, len(sessions))
	for i := range sessions {
		views = append(views, sessions[i].View())
	}
	return views, nil
}

// DeleteSession removes a session and all of its messages, messages first
// so a partial failure cannot orphan them. Deleting an unknown or malformed
// id is not an error.
func (s *ChatService) DeleteSession(ctx context.Context, sessionID string) error {
	oid, err := primitive.ObjectIDFromHex(sessionID)
	if err != nil {
		return nil
	}
	if err := s.store.Messages.DeleteMessagesBySession(ctx, oid); err != nil {
		return err
	}
	return s.store.Sessions.DeleteSession(ctx, oid)
}

// History returns every message of a session in ascending creation order.
func (s *ChatService) History(ctx context.Context, sessionID string) ([]models.MessageView, error) {
	oid, err := primitive.ObjectIDFromHex(sessionID)
	if err != nil {
		return nil, ErrNotFound
	}
	if _, err := s.store.Sessions.SessionByID(ctx, oid); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	msgs, err := s.store.Messages.MessagesBySession(ctx, oid)
	if err != nil {
		return nil, err
	}
	views := make([]models.MessageView, 0, len(msgs))
	for i := range msgs {
		views = append(views, msgs[i].View())
	}
	return views, nil
}

// PostMessage runs the message pipeline: persist the user message, forward
// a bounded history window plus the system directive upstream, persist the
// reply, touch the session, and return the normalized assistant message.
func (s *ChatService) PostMessage(ctx context.Context, text, sessionID string) (*AssistantReply, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, invalid("message is required")
	}

	sess, err := s.EnsureSession(ctx, sessionID, text)
	if err != nil {
		return nil, err
	}

	userMsg := &models.Message{
		ID:        primitive.NewObjectID(),
		SessionID: sess.ID,
		Role:      models.RoleUser,
		Content:   text,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Messages.InsertMessage(ctx, userMsg); err != nil {
		return nil, err
	}

	history, err := s.store.Messages.RecentMessages(ctx, sess.ID, historyWindow)
	if err != nil {
		return nil, err
	}
	turns := make([]llm.Turn, 0, len(history))
	for i := range history {
		turns = append(turns, llm.Turn{Role: history[i].Role, Content: history[i].Content})
	}

	reply, err := s.client.Complete(ctx, systemDirective, turns)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(reply) == "" {
		reply = fallbackReply
	}

	assistantMsg := &models.Message{
		ID:        primitive.NewObjectID(),
		SessionID: sess.ID,
		Role:      models.RoleAssistant,
		Content:   reply,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Messages.InsertMessage(ctx, assistantMsg); err != nil {
		return nil, err
	}
	if err := s.store.Sessions.TouchSession(ctx, sess.ID, assistantMsg.CreatedAt); err != nil {
		return nil, err
	}

	return &AssistantReply{
		ID:          assistantMsg.ID.Hex(),
		Role:        models.RoleAssistant,
		Content:     reply,
		Timestamp:   assistantMsg.CreatedAt,
		Severity:    "mild",
		Suggestions: []string{},
		SessionID:   sess.ID.Hex(),
	}, nil
}
