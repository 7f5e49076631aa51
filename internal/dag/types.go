package dag

import (
	"github.com/vk/chathostgo/internal/extension"
)

// Graph is the "must load after" relation over one batch of extension
// descriptors. It is built once, read once, and not safe for concurrent
// mutation; the load pipeline that owns it is single-threaded.
type Graph struct {
	// nodes stores all vertices, keyed by descriptor source.
	nodes map[string]*node
	// batch preserves the original descriptor order. It is the
	// deterministic tie-break used by Schedule.
	batch []*extension.Descriptor
}

// node represents a single vertex. It is un-exported to enforce
// interaction with the graph via the public API, not by direct struct
// manipulation.
type node struct {
	descriptor *extension.Descriptor
	// index is the descriptor's position in the original batch.
	index int
	// deps holds the providers this node must load after.
	deps map[string]*node
	// dependents holds the nodes that must load after this node.
	dependents map[string]*node
}

// Len returns the number of vertices in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Dependencies returns the sources the given extension must load after,
// sorted.
func (g *Graph) Dependencies(source string) ([]string, error) {
	n, err := g.node(source)
	if err != nil {
		return nil, err
	}
	return sortedKeys(n.deps), nil
}

// Dependents returns the sources that must load after the given
// extension, sorted.
func (g *Graph) Dependents(source string) ([]string, error) {
	n, err := g.node(source)
	if err != nil {
		return nil, err
	}
	return sortedKeys(n.dependents), nil
}
