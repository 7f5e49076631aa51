package registry

import (
	"context"
	"fmt"
	"log/slog"
)

// Factory instantiates one extension module. settings is the value built
// by NewSettings, already decoded from the manifest's settings block, or
// nil when the extension declares none. The returned instance is what the
// extension's handle exposes for typed capability lookups.
type Factory func(ctx context.Context, host Host, settings any) (any, error)

// RegisteredExtension holds the compiled Go parts of one extension.
type RegisteredExtension struct {
	// NewSettings returns a fresh settings struct for the manifest's
	// settings block to decode into. Nil when the extension takes no
	// settings.
	NewSettings func() any

	// New is the factory invoked by the loader, strictly in load order.
	New Factory
}

// RegisterExtension registers a factory under a manifest source identity.
func (r *Registry) RegisterExtension(source string, ext *RegisteredExtension) {
	if _, exists := r.factories[source]; exists {
		panic(fmt.Sprintf("extension factory for source '%s' already registered", source))
	}
	slog.Debug("Registering extension factory.", "source", source)
	r.factories[source] = ext
}
