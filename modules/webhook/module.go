// Package webhook forwards every chat message to an HTTP endpoint as a
// JSON POST.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vk/chathostgo/internal/chat"
	"github.com/vk/chathostgo/internal/ctxlog"
	"github.com/vk/chathostgo/internal/extapi"
	"github.com/vk/chathostgo/internal/registry"
)

// Source is the identity this module registers under.
const Source = "chathostgo.webhook"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Settings defines the manifest settings block for the forwarder.
type Settings struct {
	URL     string            `hcl:"url"`
	Timeout string            `hcl:"timeout,optional"`
	Headers map[string]string `hcl:"headers,optional"`
}

// Forwarder is the live extension instance.
type Forwarder struct {
	url     string
	headers map[string]string
	client  *http.Client
}

type payload struct {
	ID      string    `json:"id"`
	Chat    string    `json:"chat"`
	Author  string    `json:"author"`
	Content string    `json:"content"`
	SentAt  time.Time `json:"sent_at"`
}

// Forward delivers one message to the endpoint.
func (f *Forwarder) Forward(ctx context.Context, msg chat.Message) error {
	body, err := json.Marshal(payload{
		ID:      msg.ID.String(),
		Chat:    msg.Chat.Name(),
		Author:  msg.Author.Name,
		Content: msg.Content,
		SentAt:  msg.SentAt,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range f.headers {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %s", resp.Status)
	}
	return nil
}

// New is the factory invoked by the loader.
func New(ctx context.Context, host registry.Host, settings any) (any, error) {
	cfg := settings.(*Settings)
	logger := ctxlog.FromContext(ctx).With("module", "webhook", "url", cfg.URL)

	if cfg.Timeout == "" {
		cfg.Timeout = "10s"
	}
	timeout, err := time.ParseDuration(cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to parse timeout: %w", err)
	}

	f := &Forwarder{
		url:     cfg.URL,
		headers: cfg.Headers,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}

	extapi.OnMessage(host, func(ctx context.Context, msg chat.Message) {
		if err := f.Forward(ctx, msg); err != nil {
			logger.Warn("Webhook delivery failed.", "chat", msg.Chat.Name(), "error", err)
		}
	})

	extapi.OnCleanup(host, func(context.Context) {
		f.client.CloseIdleConnections()
	})

	logger.Info("Webhook forwarder started.")
	return f, nil
}

// Register registers the extension factory with the host registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterExtension(Source, &registry.RegisteredExtension{
		NewSettings: func() any { return new(Settings) },
		New:         New,
	})
}
