package registry

import (
	"sort"
)

// Module is the interface every compiled-in extension package implements
// to be registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds the compiled-in extension factories for a single
// application instance.
type Registry struct {
	factories map[string]*RegisteredExtension
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		factories: make(map[string]*RegisteredExtension),
	}
}

// Factory returns the registered factory for a manifest source identity.
func (r *Registry) Factory(source string) (*RegisteredExtension, bool) {
	ext, ok := r.factories[source]
	return ext, ok
}

// Sources returns every registered source identity, sorted.
func (r *Registry) Sources() []string {
	out := make([]string, 0, len(r.factories))
	for source := range r.factories {
		out = append(out, source)
	}
	sort.Strings(out)
	return out
}
