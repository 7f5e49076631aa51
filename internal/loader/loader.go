// Package loader drives one batch of descriptors through collision
// checking, graph building, scheduling, and instantiation.
//
// Loading is strictly single-threaded and sequential: no two factories
// run concurrently, and each one observes every earlier extension already
// registered. There is no rollback; a failure aborts the batch and leaves
// previously loaded extensions live.
package loader

import (
	"context"
	"fmt"

	"github.com/vk/chathostgo/internal/config"
	"github.com/vk/chathostgo/internal/ctxlog"
	"github.com/vk/chathostgo/internal/dag"
	"github.com/vk/chathostgo/internal/extension"
	"github.com/vk/chathostgo/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Loader instantiates extensions in scheduler order and registers the
// resulting handles.
type Loader struct {
	factories   *registry.Registry
	extensions  *extension.Registry
	host        registry.Host
	converter   config.Converter
	vars        map[string]cty.Value
	storageRoot string
}

// New creates a Loader. vars is the variable set exposed to settings
// expressions; storageRoot is where handles place their per-extension
// storage directories.
func New(
	factories *registry.Registry,
	extensions *extension.Registry,
	host registry.Host,
	converter config.Converter,
	vars map[string]cty.Value,
	storageRoot string,
) *Loader {
	return &Loader{
		factories:   factories,
		extensions:  extensions,
		host:        host,
		converter:   converter,
		vars:        vars,
		storageRoot: storageRoot,
	}
}

// LoadAll validates, orders, and instantiates the batch, returning the
// handles in load order.
//
// Any failure aborts the whole call with one of the extension error
// types. Handles registered before a ModuleLoadError stay registered and
// remain reachable through the extension registry; the returned slice is
// nil on error.
func (l *Loader) LoadAll(ctx context.Context, batch []*extension.Descriptor) ([]*extension.Handle, error) {
	logger := ctxlog.FromContext(ctx)

	graph, err := dag.Build(ctx, batch)
	if err != nil {
		return nil, err
	}

	ordered, err := graph.Schedule(ctx)
	if err != nil {
		return nil, err
	}

	handles := make([]*extension.Handle, 0, len(ordered))
	for _, d := range ordered {
		h, err := l.loadOne(ctx, d)
		if err != nil {
			return nil, err
		}
		handles = append(handles, h)
		logger.Info("Extension loaded.", "source", d.Source, "name", d.Name, "position", len(handles))
	}

	logger.Info("All extensions loaded.", "count", len(handles))
	return handles, nil
}

// loadOne runs the load step for a single descriptor: resolve the
// factory, decode settings, instantiate, wrap, register.
func (l *Loader) loadOne(ctx context.Context, d *extension.Descriptor) (*extension.Handle, error) {
	factory, ok := l.factories.Factory(d.Source)
	if !ok {
		return nil, &extension.ModuleLoadError{
			Descriptor: d,
			Err:        fmt.Errorf("no factory registered for source %q", d.Source),
		}
	}

	var settings any
	if factory.NewSettings != nil {
		settings = factory.NewSettings()
		if err := l.converter.DecodeSettings(ctx, settings, d.Settings, l.vars); err != nil {
			return nil, &extension.ModuleLoadError{Descriptor: d, Err: err}
		}
	} else if d.Settings != nil {
		return nil, &extension.ModuleLoadError{
			Descriptor: d,
			Err:        fmt.Errorf("manifest declares settings, but the module accepts none"),
		}
	}

	instance, err := factory.New(ctx, l.host, settings)
	if err != nil {
		return nil, &extension.ModuleLoadError{Descriptor: d, Err: err}
	}

	h := extension.NewHandle(d, instance, l.storageRoot)
	if err := l.extensions.Register(h); err != nil {
		return nil, &extension.ModuleLoadError{Descriptor: d, Err: err}
	}
	return h, nil
}
