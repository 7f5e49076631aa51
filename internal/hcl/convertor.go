package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/zclconf/go-cty/cty"
)

// Converter is the HCL-specific implementation of the config.Converter
// interface.
type Converter struct{}

// NewConverter creates a new HCL converter.
func NewConverter() *Converter {
	return &Converter{}
}

// DecodeSettings decodes a settings body into the target struct. The
// variables map is exposed to expressions in the body keyed as given, so
// with a "profile" entry a manifest can write
//
//	url = "https://example.net/hooks/${profile.name}"
//
// A nil body leaves the target at its zero value.
func (c *Converter) DecodeSettings(ctx context.Context, target any, body hcl.Body, vars map[string]cty.Value) error {
	if body == nil {
		return nil
	}
	evalCtx := &hcl.EvalContext{Variables: vars}
	if diags := gohcl.DecodeBody(body, evalCtx, target); diags.HasErrors() {
		return fmt.Errorf("decoding settings: %w", diags)
	}
	return nil
}
