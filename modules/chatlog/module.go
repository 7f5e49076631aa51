// Package chatlog records every message crossing the session and keeps
// per-chat running counts. Other extensions reach the counts through the
// Counter capability on its handle.
package chatlog

import (
	"context"
	"sync"

	"github.com/vk/chathostgo/internal/chat"
	"github.com/vk/chathostgo/internal/ctxlog"
	"github.com/vk/chathostgo/internal/extapi"
	"github.com/vk/chathostgo/internal/registry"
)

// Source is the identity this module registers under.
const Source = "chathostgo.chatlog"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Counter is the capability other extensions look up via extension.As.
type Counter struct {
	mu     sync.Mutex
	total  int
	byChat map[string]int
}

// Record counts one message.
func (c *Counter) Record(chatName string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.total++
	c.byChat[chatName]++
}

// Total returns the number of messages seen this session.
func (c *Counter) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// ByChat returns the number of messages seen on one chat.
func (c *Counter) ByChat(chatName string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.byChat[chatName]
}

// New is the factory invoked by the loader.
func New(ctx context.Context, host registry.Host, _ any) (any, error) {
	logger := ctxlog.FromContext(ctx).With("module", "chatlog")

	counter := &Counter{byChat: make(map[string]int)}

	extapi.OnMessage(host, func(_ context.Context, msg chat.Message) {
		counter.Record(msg.Chat.Name())
		logger.Info("Message.",
			"chat", msg.Chat.Name(),
			"author", msg.Author.Name,
			"content", msg.Content,
			"id", msg.ID,
		)
	})

	extapi.OnChatAdded(host, func(_ context.Context, c chat.Chat) {
		logger.Info("Watching chat.", "chat", c.Name())
	})

	// The handle exists only after this factory returns, so the alias is
	// attached once the whole batch is loaded.
	extapi.OnReady(host, func(context.Context) {
		h, ok := host.Extension(Source)
		if !ok {
			return
		}
		if err := host.AddAlias(h, "message-counter"); err != nil {
			logger.Warn("Counter alias not registered.", "error", err)
		}
	})

	extapi.OnCleanup(host, func(context.Context) {
		logger.Info("Session message count.", "total", counter.Total())
	})

	return counter, nil
}

// Register registers the extension factory with the host registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterExtension(Source, &registry.RegisteredExtension{
		New: New,
	})
}
