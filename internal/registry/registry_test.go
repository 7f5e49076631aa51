package registry

import (
	"context"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/chathostgo/internal/config"
	"github.com/vk/chathostgo/internal/extension"
)

func noopFactory(context.Context, Host, any) (any, error) { return nil, nil }

func TestRegisterExtension(t *testing.T) {
	t.Run("registered factories resolve by source", func(t *testing.T) {
		r := New()
		ext := &RegisteredExtension{New: noopFactory}
		r.RegisterExtension("vendor.one", ext)

		got, ok := r.Factory("vendor.one")
		require.True(t, ok)
		assert.Same(t, ext, got)

		_, ok = r.Factory("vendor.unknown")
		assert.False(t, ok)
	})

	t.Run("sources are sorted", func(t *testing.T) {
		r := New()
		r.RegisterExtension("vendor.zeta", &RegisteredExtension{New: noopFactory})
		r.RegisterExtension("vendor.alpha", &RegisteredExtension{New: noopFactory})

		assert.Equal(t, []string{"vendor.alpha", "vendor.zeta"}, r.Sources())
	})

	t.Run("duplicate source panics", func(t *testing.T) {
		r := New()
		r.RegisterExtension("vendor.twin", &RegisteredExtension{New: noopFactory})

		assert.PanicsWithValue(t,
			"extension factory for source 'vendor.twin' already registered",
			func() { r.RegisterExtension("vendor.twin", &RegisteredExtension{New: noopFactory}) },
		)
	})
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	model := func(descs ...*extension.Descriptor) *config.Model {
		return &config.Model{Extensions: descs}
	}

	t.Run("matching manifests and factories pass", func(t *testing.T) {
		r := New()
		r.RegisterExtension("vendor.one", &RegisteredExtension{New: noopFactory})

		err := r.Validate(ctx, model(&extension.Descriptor{Name: "One", Source: "vendor.one"}))
		assert.NoError(t, err)
	})

	t.Run("factory without manifest passes", func(t *testing.T) {
		r := New()
		r.RegisterExtension("vendor.unused", &RegisteredExtension{New: noopFactory})

		assert.NoError(t, r.Validate(ctx, model()))
	})

	t.Run("manifest without factory fails", func(t *testing.T) {
		r := New()

		err := r.Validate(ctx, model(&extension.Descriptor{Name: "Ghost", Source: "vendor.ghost"}))
		require.ErrorContains(t, err, "registry validation failed")
		assert.ErrorContains(t, err, "no factory registered for source 'vendor.ghost'")
	})

	t.Run("settings against a module that takes none fails", func(t *testing.T) {
		r := New()
		r.RegisterExtension("vendor.plain", &RegisteredExtension{New: noopFactory})

		err := r.Validate(ctx, model(&extension.Descriptor{
			Name:     "Plain",
			Source:   "vendor.plain",
			Settings: hcl.EmptyBody(),
		}))
		assert.ErrorContains(t, err, "manifest declares settings, but the module accepts none")
	})

	t.Run("every problem is collected", func(t *testing.T) {
		r := New()
		r.RegisterExtension("vendor.plain", &RegisteredExtension{New: noopFactory})

		err := r.Validate(ctx, model(
			&extension.Descriptor{Name: "Ghost", Source: "vendor.ghost"},
			&extension.Descriptor{Name: "Plain", Source: "vendor.plain", Settings: hcl.EmptyBody()},
		))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "vendor.ghost")
		assert.Contains(t, err.Error(), "vendor.plain")
	})
}
