package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatSession is a named container for an ordered sequence of messages.
// LastMessageAt is touched on every message-pipeline invocation.
type ChatSession struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Title         string             `bson:"title" json:"title"`
	LastMessageAt time.Time          `bson:"last_message_at" json:"last_message_at"`
	CreatedAt     time.Time          `bson:"createdAt" json:"-"`
}

type ChatSessionView struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	LastMessageAt time.Time `json:"last_message_at"`
}

func (s *ChatSession) View() ChatSessionView {
	return ChatSessionView{
		ID:            s.ID.Hex(),
		Title:         s.Title,
		LastMessageAt: s.LastMessageAt,
	}
}

// Message is immutable once created. Ordering within a session is by
// CreatedAt ascending.
type Message struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	SessionID primitive.ObjectID `bson:"session_id" json:"-"`
	Role      string             `bson:"role" json:"role"`
	Content   string             `bson:"content" json:"content"`
	CreatedAt time.Time          `bson:"createdAt" json:"-"`
}

type MessageView struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

func (m *Message) View() MessageView {
	return MessageView{
		ID:        m.ID.Hex(),
		Role:      m.Role,
		Content:   m.Content,
		Timestamp: m.CreatedAt,
	}
}
