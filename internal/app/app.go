package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/chathostgo/internal/config"
	"github.com/vk/chathostgo/internal/ctxlog"
	"github.com/vk/chathostgo/internal/events"
	"github.com/vk/chathostgo/internal/extapi"
	"github.com/vk/chathostgo/internal/extension"
	"github.com/vk/chathostgo/internal/profile"
	"github.com/vk/chathostgo/internal/registry"
)

// App owns one wired session: the open profile, the compiled-in factory
// registry, every discovered manifest, and the registries the loaded
// extensions end up in.
type App struct {
	cfg    *Config
	outW   io.Writer
	logger *slog.Logger

	prof      *profile.Profile
	factories *registry.Registry
	model     *config.Model
	converter config.Converter

	bus        events.Bus
	extensions *extension.Registry
	host       *extapi.Host
}

// NewApp opens the profile, registers the compiled-in modules, and
// discovers every manifest reachable from the configured directories.
// Nothing is loaded yet; Run drives the load pipeline.
func NewApp(outW io.Writer, cfg *Config, ldr config.Loader, modules ...registry.Module) (*App, error) {
	logger, err := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	if err != nil {
		return nil, err
	}
	ctx := ctxlog.WithLogger(context.Background(), logger)

	prof, err := profile.Open(cfg.ProfilePath)
	if err != nil {
		return nil, fmt.Errorf("opening profile: %w", err)
	}
	logger.Info("Profile open.", "name", prof.Name(), "root", prof.Root())

	factories := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, m := range modules {
		m.Register(factories)
	}

	paths := append([]string{cfg.ModulesPath}, prof.ExtensionDirs()...)
	model, converter, err := ldr.Load(ctx, paths...)
	if err != nil {
		return nil, err
	}
	logger.Info("Manifests discovered.", "count", len(model.Extensions))

	extensions := extension.NewRegistry()
	bus := events.New()

	return &App{
		cfg:        cfg,
		outW:       outW,
		logger:     logger,
		prof:       prof,
		factories:  factories,
		model:      model,
		converter:  converter,
		bus:        bus,
		extensions: extensions,
		host:       extapi.New(extensions, bus, prof, logger),
	}, nil
}

// Logger exposes the process logger for the cmd layer.
func (a *App) Logger() *slog.Logger { return a.logger }

// Profile exposes the open profile.
func (a *App) Profile() *profile.Profile { return a.prof }

// Extensions exposes the live registry of loaded extensions.
func (a *App) Extensions() *extension.Registry { return a.extensions }

// Host exposes the surface handed to extension factories.
func (a *App) Host() *extapi.Host { return a.host }

// settingsVars is the variable scope available to settings expressions
// in manifests.
func (a *App) settingsVars() map[string]cty.Value {
	return map[string]cty.Value{
		"profile": cty.ObjectVal(map[string]cty.Value{
			"name": cty.StringVal(a.prof.Name()),
			"root": cty.StringVal(a.prof.Root()),
		}),
	}
}
