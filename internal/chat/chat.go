// Package chat defines the minimal chat domain model the host and its
// extensions exchange over the event bus.
package chat

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User identifies a chat participant.
type User struct {
	Name    string
	Aliases []string
}

// Chat is one live conversation surface maintained by a connector
// extension.
type Chat interface {
	// Name identifies the chat for logs and replies.
	Name() string

	// Send delivers content to the remote side of the chat.
	Send(ctx context.Context, content string) error
}

// Provider is the capability interface of connector extensions. Handles
// of extensions implementing the chat-connector identity are expected to
// expose it.
type Provider interface {
	Chats() []Chat
}

// Message is one message observed on a chat.
type Message struct {
	ID      uuid.UUID
	Chat    Chat
	Author  User
	Content string
	SentAt  time.Time
}

// NewMessage stamps content with identity and receive time.
func NewMessage(c Chat, author User, content string) Message {
	return Message{
		ID:      uuid.New(),
		Chat:    c,
		Author:  author,
		Content: content,
		SentAt:  time.Now(),
	}
}
