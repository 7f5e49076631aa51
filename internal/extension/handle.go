package extension

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/Masterminds/semver/v3"
)

// HashSource returns the stable hex digest of a source identity. The
// digest keys per-extension storage directories across sessions and
// doubles as a unique module identifier. md5 here is a key derivation,
// not an integrity check.
func HashSource(source string) string {
	sum := md5.Sum([]byte(source))
	return hex.EncodeToString(sum[:])
}

// Handle is the live, post-load representation of one instantiated
// extension. Its identity (hash, descriptor, path) is immutable; the
// alias set may grow at runtime through Registry.AddAlias. Handles are
// never destroyed during a profile session.
type Handle struct {
	descriptor  *Descriptor
	hash        string
	instance    any
	storageRoot string

	mu          sync.Mutex
	aliases     map[string]struct{}
	storagePath string
}

// NewHandle wraps a freshly instantiated module. The descriptor's
// capability set becomes the initial alias set. storageRoot is the
// profile directory under which the extension's storage path is created
// on first access.
func NewHandle(d *Descriptor, instance any, storageRoot string) *Handle {
	aliases := make(map[string]struct{})
	for id := range d.Capabilities() {
		aliases[id] = struct{}{}
	}
	return &Handle{
		descriptor:  d,
		hash:        HashSource(d.Source),
		instance:    instance,
		storageRoot: storageRoot,
		aliases:     aliases,
	}
}

// Descriptor returns the metadata this extension was loaded from.
func (h *Handle) Descriptor() *Descriptor { return h.descriptor }

// Name returns the extension's human-readable name.
func (h *Handle) Name() string { return h.descriptor.Name }

// Source returns the extension's canonical identity string.
func (h *Handle) Source() string { return h.descriptor.Source }

// Hash returns the stable cross-session identifier derived from Source.
func (h *Handle) Hash() string { return h.hash }

// SemVer returns the extension's parsed version, or nil when the manifest
// declared none.
func (h *Handle) SemVer() *semver.Version { return h.descriptor.SemVer() }

// Instance returns the module object produced by the extension's factory.
func (h *Handle) Instance() any { return h.instance }

// Aliases returns every alias currently attached to the handle, sorted.
func (h *Handle) Aliases() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, 0, len(h.aliases))
	for a := range h.aliases {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

// HasAlias reports whether the handle answers to the given identifier.
func (h *Handle) HasAlias(alias string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.aliases[alias]
	return ok
}

// addAlias records an alias on the handle. Registry.AddAlias is the only
// caller; collision checks happen there.
func (h *Handle) addAlias(alias string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.aliases[alias] = struct{}{}
}

// StoragePath returns the extension's private storage directory,
// <storage root>/<hash>, creating it on first access.
func (h *Handle) StoragePath() (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.storagePath != "" {
		return h.storagePath, nil
	}
	if h.storageRoot == "" {
		return "", errors.New("extension handle has no storage root")
	}
	path := filepath.Join(h.storageRoot, h.hash)
	if err := os.MkdirAll(path, 0o755); err != nil {
		return "", fmt.Errorf("creating storage path for %q: %w", h.Source(), err)
	}
	h.storagePath = path
	return path, nil
}

// String renders the handle for logs.
func (h *Handle) String() string {
	return h.descriptor.String()
}

// As returns the handle's instance as T when it implements it. It is the
// typed accessor extensions use to reach a dependency's capability
// interface instead of poking attributes out of a loaded module.
func As[T any](h *Handle) (T, bool) {
	v, ok := h.instance.(T)
	return v, ok
}
