// Package config loads and live-reloads the four tunables the history
// engine reads: stack cap, debounce window, pause threshold, and
// whether keyboard shortcuts register globally or only on the editor
// root.
package config

import "time"

// Options holds the engine's tunable configuration.
type Options struct {
	// MaxHistoryLength caps the undo stack; the oldest entries are
	// trimmed once it is exceeded.
	MaxHistoryLength int
	// HistoryDebounceTime is the rapid-typing coalescing window.
	HistoryDebounceTime time.Duration
	// NewGroupDelay is the typing-pause threshold that promotes the
	// last recorded state to a checkpoint.
	NewGroupDelay time.Duration
	// GlobalUndoRedo registers undo/redo shortcuts on the whole
	// document instead of just the editor root.
	GlobalUndoRedo bool
}

// Option mutates Options during construction.
type Option func(*Options)

// Default returns the engine's documented defaults.
func Default() Options {
	return Options{
		MaxHistoryLength:    30,
		HistoryDebounceTime: 300 * time.Millisecond,
		NewGroupDelay:       500 * time.Millisecond,
		GlobalUndoRedo:      true,
	}
}

// New builds an Options value from Default with opts applied in order.
func New(opts ...Option) Options {
	o := Default()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithMaxHistoryLength overrides the undo stack cap.
func WithMaxHistoryLength(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxHistoryLength = n
		}
	}
}

// WithHistoryDebounceTime overrides the typing-coalescing window.
func WithHistoryDebounceTime(d time.Duration) Option {
	return func(o *Options) {
		if d > 0 {
			o.HistoryDebounceTime = d
		}
	}
}

// WithNewGroupDelay overrides the pause threshold.
func WithNewGroupDelay(d time.Duration) Option {
	return func(o *Options) {
		if d > 0 {
			o.NewGroupDelay = d
		}
	}
}

// WithGlobalUndoRedo overrides shortcut registration scope.
func WithGlobalUndoRedo(global bool) Option {
	return func(o *Options) {
		o.GlobalUndoRedo = global
	}
}
