package app

import (
	"context"
	"fmt"

	"github.com/vk/chathostgo/internal/ctxlog"
	"github.com/vk/chathostgo/internal/dag"
	"github.com/vk/chathostgo/internal/events"
	"github.com/vk/chathostgo/internal/extension"
	"github.com/vk/chathostgo/internal/loader"
)

// Run drives the session: resolve the load order, load every extension,
// announce readiness, then block until the context is cancelled. Cleanup
// is published on the way out regardless of why the context ended.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	if a.cfg.HealthcheckPort > 0 {
		stop, err := a.startHealthcheck(ctx)
		if err != nil {
			return err
		}
		defer stop()
	}

	if a.cfg.CheckOnly {
		return a.check(ctx)
	}

	handles, err := a.Load(ctx)
	if err != nil {
		return err
	}

	a.logger.Info("🚀 Session ready.", "extensions", len(handles))
	a.bus.Publish(ctx, events.TopicReady, nil)

	<-ctx.Done()

	// Handlers still get a live context during shutdown.
	cleanupCtx := context.WithoutCancel(ctx)
	a.bus.Publish(cleanupCtx, events.TopicCleanup, nil)
	a.logger.Info("🏁 Session finished.")
	return nil
}

// Load resolves the batch order and loads every extension into the
// session. Exported so tests can drive the load phase without the
// blocking part of Run.
func (a *App) Load(ctx context.Context) ([]*extension.Handle, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	ldr := loader.New(a.factories, a.extensions, a.host, a.converter, a.settingsVars(), a.prof.StorageRoot())
	return ldr.LoadAll(ctx, a.model.Extensions)
}

// check resolves the load order and validates the factory registry
// without instantiating anything, then prints the order.
func (a *App) check(ctx context.Context) error {
	graph, err := dag.Build(ctx, a.model.Extensions)
	if err != nil {
		return err
	}
	ordered, err := graph.Schedule(ctx)
	if err != nil {
		return err
	}
	if err := a.factories.Validate(ctx, a.model); err != nil {
		return err
	}

	for i, d := range ordered {
		fmt.Fprintf(a.outW, "%d. %s\n", i+1, d)
	}
	a.logger.Info("Load order is valid.", "extensions", len(ordered))
	return nil
}
