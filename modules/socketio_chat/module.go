// Package socketio_chat connects the session to a Socket.IO chat server
// and exposes each configured room as a chat the rest of the session can
// read from and send to.
package socketio_chat

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"

	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"

	"github.com/vk/chathostgo/internal/chat"
	"github.com/vk/chathostgo/internal/ctxlog"
	"github.com/vk/chathostgo/internal/extapi"
	"github.com/vk/chathostgo/internal/registry"
)

// Source is the identity this module registers under. A manifest that
// wants this connector declares the same source.
const Source = "chathostgo.socketio-chat"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Settings defines the manifest settings block for the connector.
type Settings struct {
	URL                string `hcl:"url"`
	Namespace          string `hcl:"namespace,optional"`
	Room               string `hcl:"room,optional"`
	MessageEvent       string `hcl:"message_event,optional"`
	SendEvent          string `hcl:"send_event,optional"`
	InsecureSkipVerify bool   `hcl:"insecure_skip_verify,optional"`
}

// Connector is the live extension instance. It implements chat.Provider
// for the single room it joins.
type Connector struct {
	room       *Room
	disconnect func()
}

// Chats implements chat.Provider.
func (c *Connector) Chats() []chat.Chat {
	return []chat.Chat{c.room}
}

// Room is one Socket.IO room exposed as a chat.
type Room struct {
	name string
	send func(content string)
}

// Name implements chat.Chat.
func (r *Room) Name() string { return r.name }

// Send implements chat.Chat. Delivery is fire-and-forget; the underlying
// client buffers while reconnecting.
func (r *Room) Send(ctx context.Context, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.send(content)
	return nil
}

// New is the factory invoked by the loader.
func New(ctx context.Context, host registry.Host, settings any) (any, error) {
	cfg := settings.(*Settings)
	logger := ctxlog.FromContext(ctx).With("module", "socketio_chat", "url", cfg.URL)

	parsedURL, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	room := cfg.Room
	if room == "" {
		room = parsedURL.Host
	}
	messageEvent := cfg.MessageEvent
	if messageEvent == "" {
		messageEvent = "message"
	}
	sendEvent := cfg.SendEvent
	if sendEvent == "" {
		sendEvent = "message"
	}

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)

	if cfg.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(cfg.Namespace, opts)

	conn := &Connector{
		room: &Room{
			name: room,
			send: func(content string) {
				io.Emit(sendEvent, content)
			},
		},
		disconnect: func() {
			logger.Debug("Disconnecting socket client")
			io.Disconnect()
		},
	}

	// busCtx outlives the load call; handlers fire for the whole session.
	busCtx := context.WithoutCancel(ctx)

	io.On(types.EventName("connect"), func(...any) {
		logger.Info("Connected to chat server.", "namespace", cfg.Namespace, "sid", io.Id())
		host.RegisterChat(busCtx, conn.room)
	})

	io.On(types.EventName("connect_error"), func(errs ...any) {
		logger.Warn("Connection attempt failed.", "error", fmt.Sprint(errs...))
	})

	io.On(types.EventName(messageEvent), func(data ...any) {
		author, content := decodeInbound(data)
		extapi.PublishMessage(busCtx, host, conn.room, author, content)
	})

	extapi.OnCleanup(host, func(context.Context) {
		conn.disconnect()
	})

	io.Connect()
	logger.Info("Chat connector started.", "room", room)

	return conn, nil
}

// decodeInbound maps one raw Socket.IO payload to an author and content.
// Servers either send a bare string or an object with author/content keys.
func decodeInbound(data []any) (chat.User, string) {
	author := chat.User{Name: "unknown"}
	if len(data) == 0 {
		return author, ""
	}

	switch payload := data[0].(type) {
	case string:
		return author, payload
	case map[string]any:
		if name, ok := payload["author"].(string); ok {
			author.Name = name
		}
		if content, ok := payload["content"].(string); ok {
			return author, content
		}
		if text, ok := payload["text"].(string); ok {
			return author, text
		}
		return author, fmt.Sprint(payload)
	default:
		return author, fmt.Sprint(payload)
	}
}

// Register registers the extension factory with the host registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterExtension(Source, &registry.RegisteredExtension{
		NewSettings: func() any { return new(Settings) },
		New:         New,
	})
}
