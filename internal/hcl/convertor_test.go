package hcl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

type forwarderSettings struct {
	URL     string `hcl:"url"`
	Retries int    `hcl:"retries,optional"`
}

func TestDecodeSettings(t *testing.T) {
	ctx := context.Background()

	t.Run("nil body leaves the target zeroed", func(t *testing.T) {
		var target forwarderSettings
		require.NoError(t, NewConverter().DecodeSettings(ctx, &target, nil, nil))
		assert.Zero(t, target)
	})

	t.Run("decodes literal attributes", func(t *testing.T) {
		dir := t.TempDir()
		writeManifest(t, dir, "extension.hcl", `
			extension {
				name   = "Forwarder"
				source = "vendor.forwarder"
				settings {
					url     = "http://localhost:8085"
					retries = 3
				}
			}
		`)
		model, converter, err := NewLoader().Load(ctx, dir)
		require.NoError(t, err)

		var target forwarderSettings
		require.NoError(t, converter.DecodeSettings(ctx, &target, model.Extensions[0].Settings, nil))
		assert.Equal(t, "http://localhost:8085", target.URL)
		assert.Equal(t, 3, target.Retries)
	})

	t.Run("expressions see the provided variables", func(t *testing.T) {
		dir := t.TempDir()
		writeManifest(t, dir, "extension.hcl", `
			extension {
				name   = "Forwarder"
				source = "vendor.forwarder"
				settings {
					url = "http://example.net/hooks/${profile.name}"
				}
			}
		`)
		model, converter, err := NewLoader().Load(ctx, dir)
		require.NoError(t, err)

		vars := map[string]cty.Value{
			"profile": cty.ObjectVal(map[string]cty.Value{
				"name": cty.StringVal("streaming"),
				"root": cty.StringVal("/tmp/streaming"),
			}),
		}
		var target forwarderSettings
		require.NoError(t, converter.DecodeSettings(ctx, &target, model.Extensions[0].Settings, vars))
		assert.Equal(t, "http://example.net/hooks/streaming", target.URL)
	})

	t.Run("type mismatches fail the decode", func(t *testing.T) {
		dir := t.TempDir()
		writeManifest(t, dir, "extension.hcl", `
			extension {
				name   = "Forwarder"
				source = "vendor.forwarder"
				settings {
					url     = "http://localhost:8085"
					retries = "many"
				}
			}
		`)
		model, converter, err := NewLoader().Load(ctx, dir)
		require.NoError(t, err)

		var target forwarderSettings
		err = converter.DecodeSettings(ctx, &target, model.Extensions[0].Settings, nil)
		require.ErrorContains(t, err, "decoding settings")
	})

	t.Run("missing required attribute fails the decode", func(t *testing.T) {
		dir := t.TempDir()
		writeManifest(t, dir, "extension.hcl", `
			extension {
				name   = "Forwarder"
				source = "vendor.forwarder"
				settings {
					retries = 2
				}
			}
		`)
		model, converter, err := NewLoader().Load(ctx, dir)
		require.NoError(t, err)

		var target forwarderSettings
		err = converter.DecodeSettings(ctx, &target, model.Extensions[0].Settings, nil)
		require.Error(t, err)
	})
}
