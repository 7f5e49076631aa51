package config

import (
	"context"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// Loader is the interface for a format-specific manifest loader.
type Loader interface {
	// Load reads every manifest found under the given paths, translates
	// them into the format-agnostic model, and returns a matching
	// Converter for deferred settings decoding.
	Load(ctx context.Context, paths ...string) (*Model, Converter, error)
}

// Converter is the interface for a format-specific data binding
// implementation. It bridges the raw manifest `settings` body and the Go
// settings struct a module declares.
type Converter interface {
	// DecodeSettings decodes a raw settings body into the target Go
	// struct. The variables map is exposed to expressions in the body
	// (for example profile attributes).
	DecodeSettings(ctx context.Context, target any, body hcl.Body, vars map[string]cty.Value) error
}
