package extension

import (
	"sort"
)

// Set is an identity set: the strings by which an extension can be
// required, supported, or looked up.
type Set map[string]struct{}

// NewSet builds a Set from the given identities.
func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add inserts an identity into the set.
func (s Set) Add(id string) { s[id] = struct{}{} }

// Has reports whether the identity is in the set.
func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Intersect returns the identities present in both sets, sorted.
func (s Set) Intersect(other Set) []string {
	var shared []string
	for id := range s {
		if other.Has(id) {
			shared = append(shared, id)
		}
	}
	sort.Strings(shared)
	return shared
}

// Sorted returns the identities of the set in sorted order.
func (s Set) Sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Capabilities computes the identity set this descriptor satisfies: its
// name, its source, and every declared implements entry.
func (d *Descriptor) Capabilities() Set {
	s := NewSet(d.Name, d.Source)
	for _, id := range d.Implements {
		s.Add(id)
	}
	return s
}

// Providers computes the union of all capability sets in a batch, mapping
// each identity to the descriptor providing it. Capability sets must be
// pairwise disjoint across the batch; the first overlap found is reported
// as a DuplicateImplementationError against the descriptor that claimed
// the identity earlier.
func Providers(batch []*Descriptor) (map[string]*Descriptor, error) {
	owners := make(map[string]*Descriptor)
	for _, d := range batch {
		caps := d.Capabilities()
		for _, id := range caps.Sorted() {
			prior, taken := owners[id]
			if !taken {
				continue
			}
			return nil, &DuplicateImplementationError{
				First:  prior,
				Second: d,
				Shared: prior.Capabilities().Intersect(caps),
			}
		}
		for id := range caps {
			owners[id] = d
		}
	}
	return owners, nil
}
