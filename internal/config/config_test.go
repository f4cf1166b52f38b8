package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultMatchesDocumentedValues(t *testing.T) {
	d := Default()
	if d.MaxHistoryLength != 30 {
		t.Errorf("expected default MaxHistoryLength 30, got %d", d.MaxHistoryLength)
	}
	if d.HistoryDebounceTime != 300*time.Millisecond {
		t.Errorf("expected default HistoryDebounceTime 300ms, got %v", d.HistoryDebounceTime)
	}
	if d.NewGroupDelay != 500*time.Millisecond {
		t.Errorf("expected default NewGroupDelay 500ms, got %v", d.NewGroupDelay)
	}
	if !d.GlobalUndoRedo {
		t.Errorf("expected default GlobalUndoRedo true")
	}
}

func TestNewAppliesOptions(t *testing.T) {
	o := New(WithMaxHistoryLength(50), WithGlobalUndoRedo(false))
	if o.MaxHistoryLength != 50 {
		t.Errorf("expected override to 50, got %d", o.MaxHistoryLength)
	}
	if o.GlobalUndoRedo {
		t.Errorf("expected override to false")
	}
	if o.HistoryDebounceTime != 300*time.Millisecond {
		t.Errorf("expected untouched field to keep its default")
	}
}

func TestOptionsIgnoreInvalidOverrides(t *testing.T) {
	o := New(WithMaxHistoryLength(-1), WithHistoryDebounceTime(0))
	if o.MaxHistoryLength != 30 {
		t.Errorf("expected non-positive MaxHistoryLength override to be ignored, got %d", o.MaxHistoryLength)
	}
	if o.HistoryDebounceTime != 300*time.Millisecond {
		t.Errorf("expected zero duration override to be ignored")
	}
}

func TestLoaderMissingFileYieldsDefaults(t *testing.T) {
	l := NewLoader(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	opts, err := l.Load()
	if err != nil {
		t.Fatalf("expected missing file to not be an error, got %v", err)
	}
	if opts != Default() {
		t.Fatalf("expected defaults, got %+v", opts)
	}
}

func TestLoaderParsesOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "max_history_length = 10\nhistory_debounce_time_ms = 150\nnew_group_delay_ms = 900\nglobal_undo_redo = false\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	opts, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if opts.MaxHistoryLength != 10 {
		t.Errorf("expected MaxHistoryLength 10, got %d", opts.MaxHistoryLength)
	}
	if opts.HistoryDebounceTime != 150*time.Millisecond {
		t.Errorf("expected HistoryDebounceTime 150ms, got %v", opts.HistoryDebounceTime)
	}
	if opts.NewGroupDelay != 900*time.Millisecond {
		t.Errorf("expected NewGroupDelay 900ms, got %v", opts.NewGroupDelay)
	}
	if opts.GlobalUndoRedo {
		t.Errorf("expected GlobalUndoRedo false")
	}
}

func TestLoaderPartialFileKeepsDefaultsForOmittedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("max_history_length = 5\n"), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	opts, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if opts.MaxHistoryLength != 5 {
		t.Errorf("expected override applied, got %d", opts.MaxHistoryLength)
	}
	if opts.NewGroupDelay != 500*time.Millisecond {
		t.Errorf("expected omitted field to keep its default, got %v", opts.NewGroupDelay)
	}
}

func TestWatcherCurrentReflectsInitialLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("max_history_length = 7\n"), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	w, err := NewWatcher(path, nil, nil)
	if err != nil {
		t.Fatalf("unexpected watcher error: %v", err)
	}
	defer w.Close()

	if w.Current().MaxHistoryLength != 7 {
		t.Fatalf("expected initial load to apply override, got %d", w.Current().MaxHistoryLength)
	}
}
