// Package watch observes a journal tree and reports entry file changes.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// EventCallback is called for each observed entry change.
// kind is one of "created", "updated", "deleted".
type EventCallback func(kind string, path string)

// hasEntryExt reports whether path carries an indexable extension. The
// file may no longer exist (remove/rename events), so this checks the
// name only, unlike the walk-time eligibility filter.
func hasEntryExt(path string) bool {
	switch filepath.Ext(path) {
	case ".md", ".txt":
		return true
	}
	return false
}

// Watch starts an fsnotify watcher on the journal root and reports entry
// file changes until ctx is cancelled. Paths passed to cb are relative
// to root.
//
// New directories created at runtime are automatically added to the
// watch list, and entry files already inside them are reported as
// created.
func Watch(ctx context.Context, root string, logger *slog.Logger, cb EventCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := addDirsRecursive(w, root); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("root", root))

	for {
		select {
		case <-ctx.Done():
			logger.Info("watcher: stopped")
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			absPath := ev.Name

			// --- Handle new directories: add to watcher ---
			if ev.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(absPath); statErr == nil && info.IsDir() {
					if addErr := addDirsRecursive(w, absPath); addErr != nil {
						logger.Warn("watcher: add new dir failed",
							slog.String("path", absPath),
							slog.String("error", addErr.Error()))
					} else {
						logger.Debug("watcher: watching new dir", slog.String("path", absPath))
					}
					reportNewDir(root, absPath, logger, cb)
					continue
				}
			}

			// Only entry files from here on.
			if !hasEntryExt(absPath) {
				continue
			}

			rel, relErr := filepath.Rel(root, absPath)
			if relErr != nil {
				continue
			}

			switch {
			case ev.Op&fsnotify.Create != 0:
				logger.Debug("watcher: entry created", slog.String("path", rel))
				if cb != nil {
					cb("created", rel)
				}

			case ev.Op&fsnotify.Write != 0:
				logger.Debug("watcher: entry updated", slog.String("path", rel))
				if cb != nil {
					cb("updated", rel)
				}

			case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				// Rename fires on the OLD path only; the new path arrives
				// as a separate Create event when it stays under root.
				logger.Debug("watcher: entry deleted", slog.String("path", rel))
				if cb != nil {
					cb("deleted", rel)
				}
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// reportNewDir reports entry files already present in a newly created
// directory, which fsnotify would otherwise miss.
func reportNewDir(root, dirPath string, logger *slog.Logger, cb EventCallback) {
	_ = filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !hasEntryExt(path) {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		logger.Debug("watcher: entry found in new dir", slog.String("path", rel))
		if cb != nil {
			cb("created", rel)
		}
		return nil
	})
}

// addDirsRecursive adds root and all its subdirectories to the watcher.
func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}
