package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/yonkmanjl/vizro/charts"
	"github.com/yonkmanjl/vizro/internal/builder"
	"github.com/yonkmanjl/vizro/internal/config"
	"github.com/yonkmanjl/vizro/internal/ctxlog"
	"github.com/yonkmanjl/vizro/internal/metrics"
	"github.com/yonkmanjl/vizro/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle. The served snapshot is swapped atomically on rebuilds, so
// in-flight requests always see a consistent registry and action graph.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	loader  config.Loader
	modules []registry.Module

	mets     *metrics.Metrics
	gatherer prometheus.Gatherer
	snapshot atomic.Pointer[builder.Snapshot]
}

// NewApp is the constructor for the main application. It loads the dashboard
// definition, builds and validates the initial snapshot, and returns a fully
// initialized App instance with its own isolated logger and metrics registry.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, modules ...registry.Module) (*App, error) {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	if len(modules) == 0 {
		modules = charts.Builtins()
	}

	promRegistry := prometheus.NewRegistry()
	a := &App{
		outW:     outW,
		logger:   logger,
		config:   appConfig,
		loader:   loader,
		modules:  modules,
		mets:     metrics.New(promRegistry),
		gatherer: promRegistry,
	}

	snap, err := a.build(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}
	a.snapshot.Store(snap)
	logger.Debug("Initial snapshot built and validated.")

	return a, nil
}

// Snapshot returns the currently served snapshot.
func (a *App) Snapshot() *builder.Snapshot {
	return a.snapshot.Load()
}

// build loads the definition files and constructs a validated snapshot.
func (a *App) build(ctx context.Context) (*builder.Snapshot, error) {
	model, err := a.loader.Load(ctx, a.config.ConfigPath)
	if err != nil {
		a.mets.ObserveBuild(err)
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	a.logger.Debug("Configuration loaded and translated into unified model.")

	snap, err := builder.Build(ctx, model, a.modules...)
	a.mets.ObserveBuild(err)
	return snap, err
}

// rebuild constructs a fresh snapshot and swaps it in. A failed rebuild
// keeps the previous snapshot serving.
func (a *App) rebuild(ctx context.Context) {
	snap, err := a.build(ctx)
	if err != nil {
		a.logger.Warn("Rebuild failed, keeping previous snapshot.", "error", err)
		return
	}
	a.snapshot.Store(snap)
	a.logger.Info("Dashboard rebuilt.", "path", a.config.ConfigPath)
}
