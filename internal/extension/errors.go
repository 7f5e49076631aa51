package extension

import (
	"fmt"
	"strings"
)

// MetadataError reports a manifest that could not be parsed, or that is
// missing a mandatory identity field after defaults were applied.
type MetadataError struct {
	Path   string
	Reason string
	Err    error
}

func (e *MetadataError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid extension manifest at %s: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("invalid extension manifest at %s: %v", e.Path, e.Err)
}

func (e *MetadataError) Unwrap() error { return e.Err }

// DuplicateImplementationError reports two descriptors in one batch whose
// capability sets overlap. First is the descriptor seen earlier in the
// batch.
type DuplicateImplementationError struct {
	First  *Descriptor
	Second *Descriptor
	Shared []string
}

func (e *DuplicateImplementationError) Error() string {
	return fmt.Sprintf("duplicate capability: extensions %q and %q both provide %s",
		e.First.Source, e.Second.Source, quoteList(e.Shared))
}

// UnsatisfiedDependencyError reports a required identity that no
// descriptor in the batch provides.
type UnsatisfiedDependencyError struct {
	Descriptor *Descriptor
	Missing    string
}

func (e *UnsatisfiedDependencyError) Error() string {
	return fmt.Sprintf("extension %q requires %q, which nothing in the batch provides",
		e.Descriptor.Source, e.Missing)
}

// DependencyCycleError reports the descriptors left unresolved after
// scheduling drained every ready node. The remaining subgraph contains at
// least one cycle; enumerating its members is sufficient for diagnosis.
type DependencyCycleError struct {
	Remaining []*Descriptor
}

func (e *DependencyCycleError) Error() string {
	sources := make([]string, len(e.Remaining))
	for i, d := range e.Remaining {
		sources[i] = d.Source
	}
	return fmt.Sprintf("dependency cycle among extensions %s", quoteList(sources))
}

// ModuleLoadError reports a descriptor whose module instantiation failed.
// Extensions loaded before the failure stay registered; the batch itself
// is aborted.
type ModuleLoadError struct {
	Descriptor *Descriptor
	Err        error
}

func (e *ModuleLoadError) Error() string {
	return fmt.Sprintf("loading extension %q failed: %v", e.Descriptor.Source, e.Err)
}

func (e *ModuleLoadError) Unwrap() error { return e.Err }

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return strings.Join(quoted, ", ")
}
