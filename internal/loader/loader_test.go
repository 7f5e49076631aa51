package loader

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/chathostgo/internal/events"
	"github.com/vk/chathostgo/internal/extapi"
	"github.com/vk/chathostgo/internal/extension"
	hclcfg "github.com/vk/chathostgo/internal/hcl"
	"github.com/vk/chathostgo/internal/profile"
	"github.com/vk/chathostgo/internal/registry"
)

type stubConverter struct{ err error }

func (s stubConverter) DecodeSettings(context.Context, any, hcl.Body, map[string]cty.Value) error {
	return s.err
}

type fixture struct {
	factories  *registry.Registry
	extensions *extension.Registry
	host       *extapi.Host
	loader     *Loader
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	prof, err := profile.Open(t.TempDir())
	require.NoError(t, err)

	f := &fixture{
		factories:  registry.New(),
		extensions: extension.NewRegistry(),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.host = extapi.New(f.extensions, events.New(), prof, logger)
	f.loader = New(f.factories, f.extensions, f.host, hclcfg.NewConverter(), nil, prof.StorageRoot())
	return f
}

func descriptor(source string, mut ...func(*extension.Descriptor)) *extension.Descriptor {
	d := &extension.Descriptor{Name: "name." + source, Source: source}
	for _, m := range mut {
		m(d)
	}
	return d
}

func TestLoadAll(t *testing.T) {
	ctx := context.Background()

	t.Run("loads in scheduled order and registers every handle", func(t *testing.T) {
		f := newFixture(t)

		var ran []string
		record := func(source string) registry.Factory {
			return func(context.Context, registry.Host, any) (any, error) {
				ran = append(ran, source)
				return source + "-instance", nil
			}
		}
		f.factories.RegisterExtension("core", &registry.RegisteredExtension{New: record("core")})
		f.factories.RegisterExtension("plugin", &registry.RegisteredExtension{New: record("plugin")})

		handles, err := f.loader.LoadAll(ctx, []*extension.Descriptor{
			descriptor("plugin", func(d *extension.Descriptor) { d.Requires = []string{"core"} }),
			descriptor("core"),
		})
		require.NoError(t, err)

		assert.Equal(t, []string{"core", "plugin"}, ran)
		require.Len(t, handles, 2)
		assert.Equal(t, "core", handles[0].Source())
		assert.Equal(t, "plugin", handles[1].Source())
		assert.Equal(t, "core-instance", handles[0].Instance())
		assert.Equal(t, 2, f.extensions.Len())
	})

	t.Run("factories observe earlier extensions but never later ones", func(t *testing.T) {
		f := newFixture(t)

		f.factories.RegisterExtension("core", &registry.RegisteredExtension{
			New: func(_ context.Context, host registry.Host, _ any) (any, error) {
				_, ok := host.Extension("plugin")
				assert.False(t, ok, "later extensions must be invisible during load")
				return "core-instance", nil
			},
		})
		f.factories.RegisterExtension("plugin", &registry.RegisteredExtension{
			New: func(_ context.Context, host registry.Host, _ any) (any, error) {
				h, ok := host.Extension("core")
				require.True(t, ok, "providers must be visible to dependents")
				return h.Instance(), nil
			},
		})

		handles, err := f.loader.LoadAll(ctx, []*extension.Descriptor{
			descriptor("core"),
			descriptor("plugin", func(d *extension.Descriptor) { d.Requires = []string{"core"} }),
		})
		require.NoError(t, err)
		assert.Equal(t, "core-instance", handles[1].Instance())
	})

	t.Run("missing factory aborts the descriptor's load step", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.loader.LoadAll(ctx, []*extension.Descriptor{descriptor("ghost")})

		var loadErr *extension.ModuleLoadError
		require.ErrorAs(t, err, &loadErr)
		assert.Equal(t, "ghost", loadErr.Descriptor.Source)
		assert.ErrorContains(t, err, "no factory registered")
		assert.Equal(t, 0, f.extensions.Len())
	})

	t.Run("a failure keeps earlier extensions loaded", func(t *testing.T) {
		f := newFixture(t)

		f.factories.RegisterExtension("core", &registry.RegisteredExtension{
			New: func(context.Context, registry.Host, any) (any, error) { return "ok", nil },
		})
		boom := errors.New("backend unreachable")
		f.factories.RegisterExtension("flaky", &registry.RegisteredExtension{
			New: func(context.Context, registry.Host, any) (any, error) { return nil, boom },
		})

		handles, err := f.loader.LoadAll(ctx, []*extension.Descriptor{
			descriptor("core"),
			descriptor("flaky", func(d *extension.Descriptor) { d.Requires = []string{"core"} }),
		})

		require.ErrorIs(t, err, boom)
		var loadErr *extension.ModuleLoadError
		require.ErrorAs(t, err, &loadErr)
		assert.Equal(t, "flaky", loadErr.Descriptor.Source)
		assert.Nil(t, handles)

		// No rollback: core stays registered and reachable.
		assert.Equal(t, 1, f.extensions.Len())
		h, ok := f.extensions.Lookup("core")
		require.True(t, ok)
		assert.Equal(t, "ok", h.Instance())
	})

	t.Run("manifest settings against a module that takes none", func(t *testing.T) {
		f := newFixture(t)

		f.factories.RegisterExtension("plain", &registry.RegisteredExtension{
			New: func(context.Context, registry.Host, any) (any, error) { return "ok", nil },
		})

		_, err := f.loader.LoadAll(ctx, []*extension.Descriptor{
			descriptor("plain", func(d *extension.Descriptor) { d.Settings = hcl.EmptyBody() }),
		})

		var loadErr *extension.ModuleLoadError
		require.ErrorAs(t, err, &loadErr)
		assert.ErrorContains(t, err, "accepts none")
	})

	t.Run("settings decode failures wrap as load errors", func(t *testing.T) {
		f := newFixture(t)
		decodeErr := errors.New("attribute has the wrong type")
		f.loader = New(f.factories, f.extensions, f.host, stubConverter{err: decodeErr}, nil, "")

		f.factories.RegisterExtension("configurable", &registry.RegisteredExtension{
			NewSettings: func() any { return new(struct{}) },
			New: func(context.Context, registry.Host, any) (any, error) {
				t.Fatal("factory must not run when settings fail to decode")
				return nil, nil
			},
		})

		_, err := f.loader.LoadAll(ctx, []*extension.Descriptor{descriptor("configurable")})

		require.ErrorIs(t, err, decodeErr)
		var loadErr *extension.ModuleLoadError
		assert.ErrorAs(t, err, &loadErr)
	})

	t.Run("runtime alias stolen before registration", func(t *testing.T) {
		f := newFixture(t)

		f.factories.RegisterExtension("first", &registry.RegisteredExtension{
			New: func(context.Context, registry.Host, any) (any, error) { return "first", nil },
		})
		f.factories.RegisterExtension("thief", &registry.RegisteredExtension{
			New: func(_ context.Context, host registry.Host, _ any) (any, error) {
				h, ok := host.Extension("first")
				require.True(t, ok)
				require.NoError(t, host.AddAlias(h, "victim-iface"))
				return "thief", nil
			},
		})
		f.factories.RegisterExtension("victim", &registry.RegisteredExtension{
			New: func(context.Context, registry.Host, any) (any, error) { return "victim", nil },
		})

		_, err := f.loader.LoadAll(ctx, []*extension.Descriptor{
			descriptor("first"),
			descriptor("thief", func(d *extension.Descriptor) { d.Requires = []string{"first"} }),
			descriptor("victim", func(d *extension.Descriptor) {
				d.Requires = []string{"thief"}
				d.Implements = []string{"victim-iface"}
			}),
		})

		var loadErr *extension.ModuleLoadError
		require.ErrorAs(t, err, &loadErr)
		assert.Equal(t, "victim", loadErr.Descriptor.Source)
		assert.ErrorContains(t, err, `"victim-iface" already refers to extension "first"`)

		// The two successful loads survive.
		assert.Equal(t, 2, f.extensions.Len())
	})

	t.Run("graph errors pass through untouched", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.loader.LoadAll(ctx, []*extension.Descriptor{
			descriptor("a", func(d *extension.Descriptor) { d.Requires = []string{"b"} }),
			descriptor("b", func(d *extension.Descriptor) { d.Requires = []string{"a"} }),
		})

		var cycle *extension.DependencyCycleError
		require.ErrorAs(t, err, &cycle)
		assert.Equal(t, 0, f.extensions.Len())
	})
}
