package catalog

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch reloads the catalogue file at path into h whenever it is written,
// until ctx is done. A file that fails to parse leaves the previous
// catalogue in place.
//
// The parent directory is watched rather than the file so editors that
// replace files by rename are still seen.
func Watch(ctx context.Context, path string, h *Holder, logger *zap.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}
	logger.Info("watching catalog", zap.String("path", target))

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			reload(target, h, logger)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("catalog watcher error", zap.Error(err))
		}
	}
}

func reload(path string, h *Holder, logger *zap.Logger) {
	c, err := LoadFile(path)
	if err != nil {
		logger.Warn("catalog reload failed, keeping previous catalog", zap.String("path", path), zap.Error(err))
		return
	}
	h.Swap(c)
	logger.Info("catalog reloaded", zap.String("path", path), zap.Int("items", c.Len()))
}
