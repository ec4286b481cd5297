package app

import (
	"context"

	"github.com/yonkmanjl/vizro/internal/ctxlog"
	"github.com/yonkmanjl/vizro/internal/server"
	"github.com/yonkmanjl/vizro/internal/watch"
)

// Run serves the dashboard until ctx is cancelled. When watching is enabled,
// definition file changes trigger rebuilds of the served snapshot.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.Watch {
		watcher, err := watch.New([]string{a.config.ConfigPath}, a.rebuild)
		if err != nil {
			return err
		}
		go func() {
			if err := watcher.Run(ctx); err != nil && ctx.Err() == nil {
				a.logger.Error("File watcher stopped unexpectedly.", "error", err)
			}
		}()
		a.logger.Info("Watching for definition changes.", "path", a.config.ConfigPath)
	}

	srv := server.New(a.config.Addr, a.Snapshot, a.mets, a.gatherer)
	return srv.Run(ctx)
}
