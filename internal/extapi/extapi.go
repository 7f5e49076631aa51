// Package extapi implements the host surface handed to extension
// factories: alias lookups, chat registration, profile access, and the
// event bus, all scoped to one session.
package extapi

import (
	"context"
	"log/slog"
	"sync"

	"github.com/vk/chathostgo/internal/chat"
	"github.com/vk/chathostgo/internal/events"
	"github.com/vk/chathostgo/internal/extension"
	"github.com/vk/chathostgo/internal/profile"
	"github.com/vk/chathostgo/internal/registry"
)

// Host is the concrete registry.Host handed to extension factories.
type Host struct {
	extensions *extension.Registry
	bus        events.Bus
	prof       *profile.Profile
	logger     *slog.Logger

	mu    sync.Mutex
	chats []chat.Chat
}

var _ registry.Host = (*Host)(nil)

// New builds the host surface for one session.
func New(extensions *extension.Registry, bus events.Bus, prof *profile.Profile, logger *slog.Logger) *Host {
	return &Host{
		extensions: extensions,
		bus:        bus,
		prof:       prof,
		logger:     logger,
	}
}

// Extension implements registry.Host.
func (h *Host) Extension(identifier string) (*extension.Handle, bool) {
	return h.extensions.Lookup(identifier)
}

// AddAlias implements registry.Host.
func (h *Host) AddAlias(handle *extension.Handle, alias string) error {
	return h.extensions.AddAlias(handle, alias)
}

// RegisterChat implements registry.Host.
func (h *Host) RegisterChat(ctx context.Context, c chat.Chat) {
	h.mu.Lock()
	h.chats = append(h.chats, c)
	h.mu.Unlock()

	h.logger.Info("Chat registered.", "chat", c.Name())
	h.bus.Publish(ctx, events.TopicChatAdded, c)
}

// Chats implements registry.Host.
func (h *Host) Chats() []chat.Chat {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]chat.Chat, len(h.chats))
	copy(out, h.chats)
	return out
}

// Events implements registry.Host.
func (h *Host) Events() events.Bus { return h.bus }

// Profile implements registry.Host.
func (h *Host) Profile() *profile.Profile { return h.prof }

// Logger implements registry.Host.
func (h *Host) Logger() *slog.Logger { return h.logger }
