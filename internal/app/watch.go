package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watch renders once, then again whenever the input or a vars file changes.
// Render failures are reported and watching continues. Returns nil when ctx
// is cancelled.
func (a *App) watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	targets := make(map[string]bool)
	dirs := make(map[string]bool)
	for _, path := range append([]string{a.cfg.InputPath}, a.varsFiles()...) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		targets[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	// Editors replace files on save, so watch directories and filter by name.
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	a.renderAndReport(ctx)

	debounce := a.settings.WatchDebounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	timer := time.NewTimer(debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !targets[abs] {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				a.logger.Debug("change detected", slog.String("file", event.Name), slog.String("op", event.Op.String()))
				timer.Reset(debounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.logger.Warn("watch error", slog.String("error", err.Error()))

		case <-timer.C:
			a.renderAndReport(ctx)
		}
	}
}

func (a *App) renderAndReport(ctx context.Context) {
	if err := a.render(ctx); err != nil {
		a.errColor.Fprintln(a.errW, ErrorLine(err))
	}
}
