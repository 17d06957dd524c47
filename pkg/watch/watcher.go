// Package watch reloads a document when the file behind it changes.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/grovetools/jsonview/errors"
	"github.com/grovetools/jsonview/logging"
)

// DefaultDebounce is used when New is given a non-positive debounce.
const DefaultDebounce = 100 * time.Millisecond

// Watcher watches a single file and calls onChange once a burst of writes
// has settled. The parent directory is watched, so editors that replace the
// file by renaming are picked up too.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	target   string
	debounce time.Duration
	onChange func(path string)
	logger   *logrus.Entry

	mu    sync.Mutex
	timer *time.Timer
}

// New creates a Watcher for path. onChange runs on the timer goroutine.
func New(path string, debounce time.Duration, onChange func(path string)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "failed to resolve path").WithDetail("path", path)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to create file watcher")
	}

	logger := logging.NewLogger("jsonview-watch")

	// fsnotify doesn't follow symlinks, so a linked file is watched at its target too
	target := abs
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		target = resolved
	}

	dirs := map[string]bool{filepath.Dir(abs): true, filepath.Dir(target): true}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "failed to watch directory").WithDetail("path", dir)
		}
		logger.Debugf("Watching directory: %s", dir)
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{
		watcher:  watcher,
		path:     abs,
		target:   target,
		debounce: debounce,
		onChange: onChange,
		logger:   logger,
	}, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Start begins watching for changes. It blocks until the context is cancelled
// or the watcher is closed.
func (w *Watcher) Start(ctx context.Context) {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Name != w.path && event.Name != w.target {
				continue
			}
			w.logger.Debugf("fsnotify event: %s op=%v", event.Name, event.Op)
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				w.schedule()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Errorf("Watcher error: %v", err)
		case <-ctx.Done():
			w.Close()
			return
		}
	}
}

// schedule restarts the debounce timer so only the last write of a burst fires.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.fire)
}

func (w *Watcher) fire() {
	w.logger.Infof("File changed: %s", filepath.Base(w.path))
	if w.onChange != nil {
		w.onChange(w.path)
	}
}

// Close stops the watcher and any pending callback.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.watcher.Close()
}
