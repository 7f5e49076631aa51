// Package extension defines the domain model of the extension system: the
// pre-load Descriptor parsed from a manifest, the capability identities a
// descriptor satisfies, the post-load Handle wrapping a live module
// instance, and the session-scoped Registry that resolves any alias to its
// Handle.
//
// The package also owns the error taxonomy of the load pipeline. Every
// failure mode is a distinct type so callers can branch on errors.As
// instead of string matching.
package extension
