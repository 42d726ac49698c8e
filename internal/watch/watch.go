// Package watch re-runs a check whenever the flag folder or tag file changes.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const DefaultDebounce = 250 * time.Millisecond

type Options struct {
	// Paths are watched non-recursively. Files are watched through their
	// parent directory so editors that replace files are still seen.
	Paths    []string
	Debounce time.Duration
	Logger   *zap.Logger
}

// Run blocks until ctx is done, calling onChange once per burst of events.
// onChange is never called concurrently with itself.
func Run(ctx context.Context, opts Options, onChange func(ctx context.Context)) error {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range watchDirs(opts.Paths) {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		logger.Debug("watching", zap.String("path", dir))
	}

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
			if event.Op == fsnotify.Chmod {
				continue
			}
			logger.Debug("change detected", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", zap.Error(err))
		case <-timer.C:
			onChange(ctx)
		}
	}
}

// watchDirs maps each path to a directory to watch, without duplicates.
func watchDirs(paths []string) []string {
	seen := make(map[string]struct{})
	dirs := make([]string, 0, len(paths))
	for _, path := range paths {
		if path == "" {
			continue
		}
		dir := filepath.Clean(path)
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			dir = filepath.Dir(dir)
		}
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
	}
	return dirs
}
