package testutil

import (
	"context"
	"sync"

	"github.com/vk/chathostgo/internal/registry"
)

// RecorderModule registers no-op factories for the given sources and
// records the order the loader runs them in.
type RecorderModule struct {
	Sources []string

	mu     sync.Mutex
	loaded []string
}

// Register implements registry.Module.
func (m *RecorderModule) Register(r *registry.Registry) {
	for _, source := range m.Sources {
		src := source
		r.RegisterExtension(src, &registry.RegisteredExtension{
			New: func(context.Context, registry.Host, any) (any, error) {
				m.mu.Lock()
				m.loaded = append(m.loaded, src)
				m.mu.Unlock()
				return src, nil
			},
		})
	}
}

// Loaded returns the sources whose factories ran, in order.
func (m *RecorderModule) Loaded() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.loaded))
	copy(out, m.loaded)
	return out
}

// FailingModule registers a factory for Source that always returns Err.
type FailingModule struct {
	Source string
	Err    error
}

// Register implements registry.Module.
func (m *FailingModule) Register(r *registry.Registry) {
	r.RegisterExtension(m.Source, &registry.RegisteredExtension{
		New: func(context.Context, registry.Host, any) (any, error) {
			return nil, m.Err
		},
	})
}

type probeSettings struct {
	Value string `hcl:"value"`
}

// SettingsProbeModule registers a factory for Source whose settings block
// carries a single value attribute. It records every decoded value.
type SettingsProbeModule struct {
	Source string

	mu     sync.Mutex
	values []string
}

// Register implements registry.Module.
func (m *SettingsProbeModule) Register(r *registry.Registry) {
	r.RegisterExtension(m.Source, &registry.RegisteredExtension{
		NewSettings: func() any { return new(probeSettings) },
		New: func(_ context.Context, _ registry.Host, settings any) (any, error) {
			v := settings.(*probeSettings).Value
			m.mu.Lock()
			m.values = append(m.values, v)
			m.mu.Unlock()
			return v, nil
		},
	})
}

// Values returns every settings value decoded so far, in load order.
func (m *SettingsProbeModule) Values() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.values))
	copy(out, m.values)
	return out
}
