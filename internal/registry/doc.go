// Package registry provides the central "glue" for the extension system.
//
// The Registry stores the mapping between the source identities declared
// in extension manifests and the compiled-in Go factories that implement
// the corresponding modules. Extensions ship as ordinary Go packages; a
// manifest only ever refers to them by source identity, and the loader
// resolves that identity here at load time.
//
// The package also defines the Host interface, the typed surface handed
// to every factory so modules can reach the rest of the running
// application without global state.
package registry
