// Package watcher provides file watching for configuration live reload.
package watcher

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Handler is called with the changed path after the debounce window.
type Handler func(path string)

// Watcher monitors a configuration file and calls the handler when it
// changes, debouncing editor save bursts.
type Watcher struct {
	fsw      *fsnotify.Watcher
	path     string
	debounce time.Duration
	handler  Handler

	mu     sync.Mutex
	timer  *time.Timer
	closed bool
	done   chan struct{}
}

// New creates a watcher for path. The handler fires at most once per
// debounce window. Watching the containing directory keeps the watch
// alive across rename-based saves.
func New(path string, debounce time.Duration, handler Handler) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		_ = fsw.Close()
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &Watcher{
		fsw:      fsw,
		path:     abs,
		debounce: debounce,
		handler:  handler,
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.arm()
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		}
	}
}

// arm starts or restarts the debounce timer.
func (w *Watcher) arm() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		closed := w.closed
		w.mu.Unlock()
		if !closed {
			w.handler(w.path)
		}
	})
}

// Close stops watching. Pending debounced calls are dropped.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	close(w.done)
	return w.fsw.Close()
}
