package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/baditaflorin/go_fuzzy_compare/internal/ports"
	"github.com/fsnotify/fsnotify"
)

// DefaultWatchDebounce coalesces the burst of events an editor emits for one save.
const DefaultWatchDebounce = 200 * time.Millisecond

// Watch reloads path whenever it changes and hands every valid configuration to onChange.
// Invalid files are logged and skipped, so the last good configuration stays in effect.
// The parent directory is watched, which also catches editors that save by rename.
// Watch blocks until ctx is done.
func Watch(ctx context.Context, path string, debounce time.Duration, log ports.Logger, onChange func(Config)) error {
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve config path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create config watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}
	log.Info("Watching config file", "path", abs)

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("Config watcher error", "error", err)

		case <-timer.C:
			if _, err := os.Stat(abs); err != nil {
				// renamed away or deleted; wait for the replacement
				continue
			}
			cfg, err := Load(abs)
			if err != nil {
				log.Error("Ignoring invalid config change", "path", abs, "error", err)
				continue
			}
			log.Info("Config reloaded", "path", abs)
			onChange(cfg)
		}
	}
}
