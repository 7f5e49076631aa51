package dag

import (
	"context"

	"github.com/vk/chathostgo/internal/ctxlog"
	"github.com/vk/chathostgo/internal/extension"
)

// Schedule computes the load order of the graph using Kahn's algorithm.
//
// Every node starts with a pending count equal to the number of providers
// it must load after. Nodes with no pending providers are ready; emitting
// a node decrements the pending count of each of its dependents, which
// become ready at zero. Among simultaneously ready nodes, the one whose
// descriptor appeared earliest in the original batch is emitted first, so
// a given batch always schedules identically.
//
// If the queue drains while nodes still have pending providers, the
// residual subgraph contains a cycle and Schedule fails with a
// DependencyCycleError enumerating the stuck descriptors in batch order.
func (g *Graph) Schedule(ctx context.Context) ([]*extension.Descriptor, error) {
	logger := ctxlog.FromContext(ctx)

	pending := make(map[string]int, len(g.nodes))
	for source, n := range g.nodes {
		pending[source] = len(n.deps)
	}

	var ready []*node
	for _, d := range g.batch {
		if pending[d.Source] == 0 {
			ready = append(ready, g.nodes[d.Source])
		}
	}

	order := make([]*extension.Descriptor, 0, len(g.nodes))
	for len(ready) > 0 {
		best := 0
		for i := 1; i < len(ready); i++ {
			if ready[i].index < ready[best].index {
				best = i
			}
		}
		next := ready[best]
		ready = append(ready[:best], ready[best+1:]...)

		order = append(order, next.descriptor)
		logger.Debug("Scheduled extension.", "source", next.descriptor.Source, "position", len(order))

		for _, dep := range next.dependents {
			pending[dep.descriptor.Source]--
			if pending[dep.descriptor.Source] == 0 {
				ready = append(ready, dep)
			}
		}
	}

	if len(order) != len(g.nodes) {
		var remaining []*extension.Descriptor
		for _, d := range g.batch {
			if pending[d.Source] > 0 {
				remaining = append(remaining, d)
			}
		}
		return nil, &extension.DependencyCycleError{Remaining: remaining}
	}

	return order, nil
}
