package library

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fsnotify/fsnotify"
)

// Watch follows dir until ctx is cancelled, loading archives as they
// appear or change and dropping them when they disappear.
func (l *Library) Watch(ctx context.Context, dir string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	slog.Info("watching archive directory", "dir", dir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			l.handleEvent(ev)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Warn("archive watcher error", "error", err)
		}
	}
}

func (l *Library) handleEvent(ev fsnotify.Event) {
	if !isArchive(ev.Name) {
		return
	}

	switch {
	case ev.Op.Has(fsnotify.Create), ev.Op.Has(fsnotify.Write):
		if err := l.Add(ev.Name); err != nil {
			// Creates fire before the file is fully written; the
			// closing write will retry.
			slog.Debug("archive not loadable yet", "path", ev.Name, "error", err)
			return
		}
		slog.Info("archive loaded", "path", ev.Name)
	case ev.Op.Has(fsnotify.Remove), ev.Op.Has(fsnotify.Rename):
		if l.Remove(ev.Name) {
			slog.Info("archive removed", "path", ev.Name)
		}
	}
}
