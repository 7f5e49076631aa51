// Package config defines the format-agnostic configuration model for the
// application, along with the core interfaces (Loader, Converter) for
// reading extension manifests from various sources.
//
// The config.Model is the single source of truth for the dependency
// resolver and the loader. Concrete implementations of the interfaces,
// such as for HCL, are provided in separate packages.
package config
