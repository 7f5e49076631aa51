// Package events provides the in-process publish/subscribe boundary
// between the host application and its extensions. The load pipeline
// never publishes; the application does, once loading is complete, and
// extensions subscribe during initialization to be called back later.
package events

import (
	"context"
	"sync"
)

// Topics published by the host. Extensions may publish and subscribe to
// their own topics as well; the bus does not restrict names.
const (
	// TopicReady fires once, after every extension loaded successfully.
	TopicReady = "ready"
	// TopicCleanup fires once, when the session shuts down.
	TopicCleanup = "cleanup"
	// TopicChatAdded fires when a connector registers a new chat. The
	// payload is the chat.Chat.
	TopicChatAdded = "chat.added"
	// TopicMessage fires for every chat message. The payload is a
	// chat.Message.
	TopicMessage = "chat.message"
)

// Handler consumes one published payload.
type Handler func(ctx context.Context, payload any)

// Bus is the opaque pub/sub facility the host wires extensions into.
type Bus interface {
	// Subscribe registers a handler for a topic and returns a cancel
	// function that removes it again.
	Subscribe(topic string, fn Handler) (cancel func())

	// Publish delivers a payload to every current subscriber of the
	// topic, synchronously, in subscription order.
	Publish(ctx context.Context, topic string, payload any)
}

// SyncBus is the in-process Bus implementation. Dispatch is synchronous
// on the publisher's goroutine; handlers must not block indefinitely.
type SyncBus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[string][]subscription
}

type subscription struct {
	id int
	fn Handler
}

// New creates an empty bus.
func New() *SyncBus {
	return &SyncBus{
		subs: make(map[string][]subscription),
	}
}

// Subscribe implements Bus.
func (b *SyncBus) Subscribe(topic string, fn Handler) func() {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[topic] = append(b.subs[topic], subscription{id: id, fn: fn})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		current := b.subs[topic]
		for i, sub := range current {
			if sub.id == id {
				b.subs[topic] = append(current[:i:i], current[i+1:]...)
				break
			}
		}
	}
}

// Publish implements Bus. The subscriber list is snapshotted before
// dispatch so handlers may subscribe or publish without deadlocking.
func (b *SyncBus) Publish(ctx context.Context, topic string, payload any) {
	b.mu.RLock()
	snapshot := make([]subscription, len(b.subs[topic]))
	copy(snapshot, b.subs[topic])
	b.mu.RUnlock()

	for _, sub := range snapshot {
		sub.fn(ctx, payload)
	}
}
