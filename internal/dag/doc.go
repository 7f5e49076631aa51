// Package dag turns a batch of extension descriptors into a directed
// acyclic "must load after" graph and computes the deterministic order in
// which the loader instantiates them.
//
// Building validates the batch on the way in: capability collisions and
// unsatisfiable hard requirements are rejected before any edge exists.
// Scheduling runs Kahn's algorithm and reports the residual descriptors
// when the graph turns out to be cyclic.
package dag
