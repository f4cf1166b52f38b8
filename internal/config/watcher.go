package config

import (
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/blockcore/editorcore/internal/corelog"
)

// Watcher live-reloads Options whenever the backing file changes,
// updating Current and calling onChange with the new values. A
// history.Engine copies its Options when constructed and does not read
// later reloads.
type Watcher struct {
	mu       sync.RWMutex
	loader   *Loader
	current  Options
	fsw      *fsnotify.Watcher
	log      *corelog.Logger
	onChange func(Options)
	closeCh  chan struct{}
}

// NewWatcher loads path once and starts watching it for writes. If the
// underlying filesystem watcher cannot be created, the returned Watcher
// still works for Current() but never observes changes — matching the
// engine-wide rule that listener misconfiguration degrades silently
// rather than failing construction.
func NewWatcher(path string, log *corelog.Logger, onChange func(Options)) (*Watcher, error) {
	if log == nil {
		log = corelog.Null
	}

	loader := NewLoader(path)
	opts, err := loader.Load()
	if err != nil {
		log.Warn("config: initial load failed, using defaults: %v", err)
		opts = Default()
	}

	w := &Watcher{loader: loader, current: opts, log: log, onChange: onChange, closeCh: make(chan struct{})}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		log.Warn("config: filesystem watcher unavailable, live reload disabled: %v", err)
		return w, nil
	}
	if err := fsw.Add(path); err != nil {
		log.Warn("config: watch %s failed, live reload disabled: %v", path, err)
		_ = fsw.Close()
		return w, nil
	}

	w.fsw = fsw
	go w.run()
	return w, nil
}

// Current returns the most recently loaded Options.
func (w *Watcher) Current() Options {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// Close stops watching and releases the underlying filesystem resource.
func (w *Watcher) Close() {
	if w.fsw == nil {
		return
	}
	close(w.closeCh)
	_ = w.fsw.Close()
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.closeCh:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.reload()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("config: watcher error: %v", err)
		}
	}
}

func (w *Watcher) reload() {
	opts, err := w.loader.Load()
	if err != nil {
		w.log.Warn("config: reload failed, keeping previous options: %v", err)
		return
	}

	w.mu.Lock()
	w.current = opts
	w.mu.Unlock()

	if w.onChange != nil {
		w.onChange(opts)
	}
}
