package extension

import (
	"fmt"
	"sync"
)

// Registry is the session-scoped lookup table mapping every known alias
// to its Handle. Many aliases reach one handle; no entry is ever removed
// during a session. Mutation is serialized so the host environment may
// read and write from concurrent goroutines.
type Registry struct {
	mu      sync.RWMutex
	aliases map[string]*Handle
	handles []*Handle
}

// NewRegistry creates an empty registry for one profile session.
func NewRegistry() *Registry {
	return &Registry{
		aliases: make(map[string]*Handle),
	}
}

// Register adds a handle under every alias it currently carries. It fails
// without side effects when any of those aliases already resolves to a
// different handle.
func (r *Registry) Register(h *Handle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	aliases := h.Aliases()
	for _, a := range aliases {
		if existing, ok := r.aliases[a]; ok && existing != h {
			return fmt.Errorf("alias %q already refers to extension %q", a, existing.Source())
		}
	}
	for _, a := range aliases {
		r.aliases[a] = h
	}
	r.handles = append(r.handles, h)
	return nil
}

// Lookup resolves an identifier (name, source, implemented interface, or
// runtime-added alias) to its handle.
func (r *Registry) Lookup(identifier string) (*Handle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.aliases[identifier]
	return h, ok
}

// AddAlias attaches an additional alias to a registered handle. Adding an
// alias the handle already owns is a no-op; adding one owned by a
// different handle is an error.
func (r *Registry) AddAlias(h *Handle, alias string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.aliases[alias]; ok {
		if existing == h {
			return nil
		}
		return fmt.Errorf("alias %q already refers to extension %q", alias, existing.Source())
	}
	r.aliases[alias] = h
	h.addAlias(alias)
	return nil
}

// Handles returns the registered handles in load order.
func (r *Registry) Handles() []*Handle {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Handle, len(r.handles))
	copy(out, r.handles)
	return out
}

// Len returns the number of registered handles.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handles)
}
