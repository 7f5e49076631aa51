package extapi

import (
	"context"

	"github.com/vk/chathostgo/internal/chat"
	"github.com/vk/chathostgo/internal/events"
	"github.com/vk/chathostgo/internal/registry"
)

// OnReady calls fn once every extension in the session has loaded. The
// returned cancel function removes the subscription.
func OnReady(h registry.Host, fn func(ctx context.Context)) func() {
	return h.Events().Subscribe(events.TopicReady, func(ctx context.Context, _ any) {
		fn(ctx)
	})
}

// OnCleanup calls fn when the session shuts down.
func OnCleanup(h registry.Host, fn func(ctx context.Context)) func() {
	return h.Events().Subscribe(events.TopicCleanup, func(ctx context.Context, _ any) {
		fn(ctx)
	})
}

// OnMessage calls fn for every chat message published on the bus.
// Payloads that are not chat.Message are ignored.
func OnMessage(h registry.Host, fn func(ctx context.Context, msg chat.Message)) func() {
	return h.Events().Subscribe(events.TopicMessage, func(ctx context.Context, payload any) {
		if msg, ok := payload.(chat.Message); ok {
			fn(ctx, msg)
		}
	})
}

// OnChatAdded calls fn for every chat a connector registers.
func OnChatAdded(h registry.Host, fn func(ctx context.Context, c chat.Chat)) func() {
	return h.Events().Subscribe(events.TopicChatAdded, func(ctx context.Context, payload any) {
		if c, ok := payload.(chat.Chat); ok {
			fn(ctx, c)
		}
	})
}

// PublishMessage stamps content observed on a chat and fans it out on the
// bus. Connector extensions call this for every inbound message.
func PublishMessage(ctx context.Context, h registry.Host, c chat.Chat, author chat.User, content string) chat.Message {
	msg := chat.NewMessage(c, author, content)
	h.Events().Publish(ctx, events.TopicMessage, msg)
	return msg
}
