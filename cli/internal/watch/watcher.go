// Package watch provides file watching for domain config changes.
package watch

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/domainforge/domainforge/internal/debug"
)

const debounce = 500 * time.Millisecond

// Watcher watches one config file and re-runs a callback on change.
type Watcher struct {
	file     string
	callback func() error
	watcher  *fsnotify.Watcher
	done     chan struct{}
}

// NewWatcher creates a watcher for the given file. The containing directory
// is watched so editors that replace the file on save are still seen.
func NewWatcher(file string, callback func() error) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	absPath, err := filepath.Abs(file)
	if err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch directory: %w", err)
	}

	return &Watcher{
		file:     absPath,
		callback: callback,
		watcher:  fsw,
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching. Change events are debounced so a burst of editor
// writes triggers one regeneration.
func (w *Watcher) Start() {
	go func() {
		timer := time.NewTimer(debounce)
		timer.Stop()
		var pending <-chan time.Time

		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				eventPath, err := filepath.Abs(event.Name)
				if err == nil && eventPath == w.file {
					timer.Reset(debounce)
					pending = timer.C
				}

			case <-pending:
				pending = nil
				if err := w.callback(); err != nil {
					debug.Error("Watch callback failed", "file", w.file, "error", err)
				}

			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				debug.Error("Watcher error", "error", err)

			case <-w.done:
				return
			}
		}
	}()
}

// Stop stops watching and releases resources.
func (w *Watcher) Stop() {
	close(w.done)
	w.watcher.Close()
}
