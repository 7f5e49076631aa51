// Package app wires the pieces of a session together: logger, profile,
// compiled-in module registration, manifest discovery, the load pipeline,
// and the event lifecycle around it. The cli package builds a Config and
// hands it here; everything below this package is reusable without the
// process scaffolding.
package app
