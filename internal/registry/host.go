package registry

import (
	"context"
	"log/slog"

	"github.com/vk/chathostgo/internal/chat"
	"github.com/vk/chathostgo/internal/events"
	"github.com/vk/chathostgo/internal/extension"
	"github.com/vk/chathostgo/internal/profile"
)

// Host is the surface the application exposes to extension factories. It
// replaces any notion of process-global state: everything an extension
// can reach is scoped to the session that loaded it.
type Host interface {
	// Extension resolves any known alias (name, source, implemented
	// interface, or runtime-added alias) to a loaded handle. During
	// initialization an extension sees everything loaded before it.
	Extension(identifier string) (*extension.Handle, bool)

	// AddAlias attaches an additional alias to a loaded handle. It fails
	// when the alias already belongs to a different handle.
	AddAlias(h *extension.Handle, alias string) error

	// RegisterChat announces a live chat to the session and publishes it
	// on the event bus.
	RegisterChat(ctx context.Context, c chat.Chat)

	// Chats returns every chat registered so far, in registration order.
	Chats() []chat.Chat

	// Events returns the session event bus.
	Events() events.Bus

	// Profile returns the profile this session runs against.
	Profile() *profile.Profile

	// Logger returns the session logger.
	Logger() *slog.Logger
}
