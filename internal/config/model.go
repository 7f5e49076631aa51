package config

import (
	"github.com/vk/chathostgo/internal/extension"
)

// Model is the unified, format-agnostic representation of everything the
// manifest loader discovered: one descriptor per extension block, in the
// order the blocks were found. That order is load-bearing; it is the
// tie-break order used when scheduling extensions with no mutual
// dependency.
type Model struct {
	Extensions []*extension.Descriptor
}

// BySource returns the descriptor with the given source identity, or nil.
func (m *Model) BySource(source string) *extension.Descriptor {
	for _, d := range m.Extensions {
		if d.Source == source {
			return d
		}
	}
	return nil
}
