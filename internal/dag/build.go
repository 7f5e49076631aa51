package dag

import (
	"context"
	"fmt"
	"sort"

	"github.com/vk/chathostgo/internal/ctxlog"
	"github.com/vk/chathostgo/internal/extension"
)

// Build constructs a complete, validated dependency graph from a batch of
// descriptors.
//
// Validation happens in two passes before any edge is drawn. First the
// batch's capability sets are checked for pairwise disjointness. Second,
// every hard requirement must be covered by the union of all capability
// sets; a miss aborts the build. Soft requirements never abort, they only
// contribute edges when a provider exists.
func Build(ctx context.Context, batch []*extension.Descriptor) (*Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: starting graph construction.", "descriptors", len(batch))

	owners, err := extension.Providers(batch)
	if err != nil {
		return nil, err
	}
	logger.Debug("Build: capability sets are disjoint.", "identities", len(owners))

	g := &Graph{
		nodes: make(map[string]*node, len(batch)),
		batch: batch,
	}
	for i, d := range batch {
		g.nodes[d.Source] = &node{
			descriptor: d,
			index:      i,
			deps:       make(map[string]*node),
			dependents: make(map[string]*node),
		}
	}

	// Availability check runs over the whole batch union, computed once.
	for _, d := range batch {
		for _, req := range d.Requires {
			if _, ok := owners[req]; !ok {
				return nil, &extension.UnsatisfiedDependencyError{Descriptor: d, Missing: req}
			}
		}
	}

	// Hard edges, then soft edges. Several entries resolving to the same
	// provider collapse into a single edge, and a requirement satisfied
	// by the descriptor itself draws no edge.
	for _, d := range batch {
		for _, req := range d.Requires {
			g.addEdge(d, owners[req])
		}
		for _, sup := range d.Supports {
			if owner, ok := owners[sup]; ok {
				g.addEdge(d, owner)
			}
		}
	}

	logger.Debug("Build: graph construction successful.", "nodes", len(g.nodes))
	return g, nil
}

// addEdge records "from must load after to".
func (g *Graph) addEdge(from, to *extension.Descriptor) {
	if from.Source == to.Source {
		return
	}
	f := g.nodes[from.Source]
	t := g.nodes[to.Source]
	f.deps[to.Source] = t
	t.dependents[from.Source] = f
}

func (g *Graph) node(source string) (*node, error) {
	n, ok := g.nodes[source]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", source)
	}
	return n, nil
}

func sortedKeys(m map[string]*node) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
