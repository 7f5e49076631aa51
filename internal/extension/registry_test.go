package extension

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandle(source string, implements ...string) *Handle {
	d := &Descriptor{Name: "name." + source, Source: source, Implements: implements}
	return NewHandle(d, nil, "")
}

func TestRegistryRegister(t *testing.T) {
	t.Run("every alias resolves to the handle", func(t *testing.T) {
		r := NewRegistry()
		h := newTestHandle("vendor.connector", "chat-iface")
		require.NoError(t, r.Register(h))

		for _, alias := range []string{"vendor.connector", "name.vendor.connector", "chat-iface"} {
			got, ok := r.Lookup(alias)
			require.True(t, ok, "alias %q should resolve", alias)
			assert.Same(t, h, got)
		}
		assert.Equal(t, 1, r.Len())
	})

	t.Run("unknown identifier misses", func(t *testing.T) {
		r := NewRegistry()
		_, ok := r.Lookup("nope")
		assert.False(t, ok)
	})

	t.Run("colliding alias fails without side effects", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.Register(newTestHandle("vendor.one", "shared-iface")))

		second := newTestHandle("vendor.two", "shared-iface")
		err := r.Register(second)
		require.ErrorContains(t, err, `"shared-iface" already refers to extension "vendor.one"`)

		// The failed handle must not be reachable under any alias.
		_, ok := r.Lookup("vendor.two")
		assert.False(t, ok)
		_, ok = r.Lookup("name.vendor.two")
		assert.False(t, ok)
		assert.Equal(t, 1, r.Len())
	})

	t.Run("handles keeps registration order", func(t *testing.T) {
		r := NewRegistry()
		first := newTestHandle("vendor.one")
		second := newTestHandle("vendor.two")
		require.NoError(t, r.Register(first))
		require.NoError(t, r.Register(second))

		handles := r.Handles()
		require.Len(t, handles, 2)
		assert.Same(t, first, handles[0])
		assert.Same(t, second, handles[1])
	})
}

func TestRegistryAddAlias(t *testing.T) {
	t.Run("new alias resolves and sticks to the handle", func(t *testing.T) {
		r := NewRegistry()
		h := newTestHandle("vendor.counter")
		require.NoError(t, r.Register(h))

		require.NoError(t, r.AddAlias(h, "message-counter"))

		got, ok := r.Lookup("message-counter")
		require.True(t, ok)
		assert.Same(t, h, got)
		assert.True(t, h.HasAlias("message-counter"))
	})

	t.Run("re-adding an owned alias is a no-op", func(t *testing.T) {
		r := NewRegistry()
		h := newTestHandle("vendor.counter")
		require.NoError(t, r.Register(h))

		assert.NoError(t, r.AddAlias(h, "vendor.counter"))
	})

	t.Run("alias owned by another handle is rejected", func(t *testing.T) {
		r := NewRegistry()
		first := newTestHandle("vendor.one")
		second := newTestHandle("vendor.two")
		require.NoError(t, r.Register(first))
		require.NoError(t, r.Register(second))

		err := r.AddAlias(second, "vendor.one")
		require.ErrorContains(t, err, `already refers to extension "vendor.one"`)
		assert.False(t, second.HasAlias("vendor.one"))
	})
}
