// Package echo replies to echo commands on every chat in the session. It
// exists mostly as the canonical consumer of the chat-connector contract.
package echo

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/chathostgo/internal/chat"
	"github.com/vk/chathostgo/internal/ctxlog"
	"github.com/vk/chathostgo/internal/extapi"
	"github.com/vk/chathostgo/internal/extension"
	"github.com/vk/chathostgo/internal/registry"
)

// Source is the identity this module registers under.
const Source = "chathostgo.echo"

// DefaultCommand triggers a reply when a message starts with it.
const DefaultCommand = "!echo"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Settings defines the manifest settings block for the responder.
type Settings struct {
	Command string `hcl:"command,optional"`
	Prefix  string `hcl:"prefix,optional"`
}

// Responder is the live extension instance.
type Responder struct {
	command string
	prefix  string
}

// Reply returns the response for one message, or false when the message
// is not an echo command.
func (r *Responder) Reply(content string) (string, bool) {
	if !strings.HasPrefix(content, r.command+" ") {
		return "", false
	}
	rest := strings.TrimSpace(strings.TrimPrefix(content, r.command))
	if rest == "" {
		return "", false
	}
	return r.prefix + rest, true
}

// New is the factory invoked by the loader. The chat-connector handle is
// guaranteed to be loaded already; the loader never calls this factory
// otherwise.
func New(ctx context.Context, host registry.Host, settings any) (any, error) {
	cfg := settings.(*Settings)
	logger := ctxlog.FromContext(ctx).With("module", "echo")

	command := cfg.Command
	if command == "" {
		command = DefaultCommand
	}

	connector, ok := host.Extension("chat-connector")
	if !ok {
		return nil, fmt.Errorf("no chat-connector loaded")
	}
	logger.Debug("Using chat connector.", "connector", connector.Name())

	r := &Responder{command: command, prefix: cfg.Prefix}

	extapi.OnMessage(host, func(ctx context.Context, msg chat.Message) {
		reply, ok := r.Reply(msg.Content)
		if !ok {
			return
		}
		if err := msg.Chat.Send(ctx, reply); err != nil {
			logger.Warn("Echo reply failed.", "chat", msg.Chat.Name(), "error", err)
		}
	})

	if provider, ok := extension.As[chat.Provider](connector); ok {
		extapi.OnReady(host, func(context.Context) {
			for _, c := range provider.Chats() {
				logger.Info("Echo active.", "chat", c.Name(), "command", command)
			}
		})
	}

	return r, nil
}

// Register registers the extension factory with the host registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterExtension(Source, &registry.RegisteredExtension{
		NewSettings: func() any { return new(Settings) },
		New:         New,
	})
}
