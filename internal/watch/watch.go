// Package watch triggers dashboard rebuilds when definition files change on
// disk.
package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/yonkmanjl/vizro/internal/ctxlog"
)

// debounce coalesces editor write bursts (truncate + write + chmod) into a
// single rebuild.
const debounce = 250 * time.Millisecond

// Watcher observes a set of directories and invokes a callback after file
// changes settle.
type Watcher struct {
	fsw      *fsnotify.Watcher
	onChange func(ctx context.Context)
}

// New creates a watcher over the given directories. onChange runs on the
// watcher's goroutine; it must not block indefinitely.
func New(dirs []string, onChange func(ctx context.Context)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, err
		}
	}
	return &Watcher{fsw: fsw, onChange: onChange}, nil
}

// Run blocks, dispatching debounced change callbacks until ctx is cancelled
// or the underlying watcher closes.
func (w *Watcher) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	defer w.fsw.Close()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			logger.Debug("definition change detected", "file", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(debounce)
				fire = timer.C
			} else {
				timer.Reset(debounce)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("file watcher error", "error", err)

		case <-fire:
			timer = nil
			fire = nil
			w.onChange(ctx)
		}
	}
}

// relevant filters the event stream down to content changes of definition
// files.
func relevant(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) && !event.Op.Has(fsnotify.Remove) {
		return false
	}
	switch filepath.Ext(event.Name) {
	case ".hcl", ".yaml", ".yml", ".csv":
		return true
	}
	return false
}
