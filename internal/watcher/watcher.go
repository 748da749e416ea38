// Package watcher reports on-disk changes to the reference document.
// A built index holds the document's chunks and vectors in memory, so
// any change to the file on disk makes the running index stale.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/ansera-cli/internal/logger"
)

// Watcher watches one document file and logs a warning when it changes.
type Watcher struct {
	path string
	fs   *fsnotify.Watcher
}

// New watches the directory containing path. Watching the directory
// rather than the file itself survives editors that save by writing a
// temp copy and renaming it over the original.
func New(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := fs.Add(filepath.Dir(abs)); err != nil {
		fs.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{path: abs, fs: fs}, nil
}

// Watch blocks until ctx is cancelled or the watcher is closed, logging
// a warning for every change to the watched document. There is no
// automatic rebuild; the operator restarts to pick up the new content.
func (w *Watcher) Watch(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if w.invalidates(event) {
				logger.Warn("Document %s changed on disk; the index is stale. Restart to rebuild.", w.path)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logger.Debug("Watch error: %v", err)
		}
	}
}

// invalidates reports whether the event makes the index stale: a write,
// create, rename or removal of the watched file. Chmod and events for
// other files in the directory do not.
func (w *Watcher) invalidates(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

// Close stops the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.fs.Close()
}
