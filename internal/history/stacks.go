package history

import (
	"errors"
	"sync"

	"github.com/blockcore/editorcore/internal/caret"
)

// ErrNothingToUndo and ErrNothingToRedo are the sentinel failures the
// stack-level operations return; the engine-level Undo/Redo convert
// these into the fail-soft boolean contract instead of surfacing them.
var (
	ErrNothingToUndo = errors.New("history: nothing to undo")
	ErrNothingToRedo = errors.New("history: nothing to redo")
)

// stacks holds the undo/redo entry lists and the size cap, guarded by a
// mutex so the engine can read stack sizes from one goroutine (e.g. a
// debounce callback) while another mutates them. Each Entry is a full
// document snapshot rather than a replayable operation, since block
// data is opaque and tool-owned.
type stacks struct {
	mu         sync.Mutex
	undo       []Entry
	redo       []Entry
	maxEntries int
}

func newStacks(maxEntries int) *stacks {
	if maxEntries <= 0 {
		maxEntries = 30
	}
	return &stacks{maxEntries: maxEntries}
}

// canUndo mirrors the data model invariant: undoing requires at least
// two entries, since the tail entry is always the current state.
func (s *stacks) canUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.undo) >= 2
}

func (s *stacks) canRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.redo) >= 1
}

// push appends a new current-state entry, clears the redo stack (any
// mutation that is not itself an undo/redo invalidates it), and trims
// the undo stack from the head once it exceeds maxEntries.
func (s *stacks) push(e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.redo = s.redo[:0]
	s.undo = append(s.undo, e)

	if over := len(s.undo) - s.maxEntries; over > 0 {
		s.undo = append([]Entry(nil), s.undo[over:]...)
	}
}

// seed installs the single initial entry, used only by
// captureInitialState. It does not touch the redo stack.
func (s *stacks) seed(e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.undo = append(s.undo, e)
}

func (s *stacks) isEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.undo) == 0
}

// tail returns the current-state entry (the stack's top), or false if
// the stack is empty.
func (s *stacks) tail() (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.undo) == 0 {
		return Entry{}, false
	}
	return s.undo[len(s.undo)-1], true
}

// setTailCaret mutates the caret stored on the current tail entry in
// place, used by recordState to retroactively fill in the predecessor
// entry's pre-action caret once it becomes known.
func (s *stacks) setTailCaret(pos *caret.Position) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.undo) == 0 {
		return
	}
	s.undo[len(s.undo)-1].Caret = pos
}

// undoStep moves the tail entry to redo and returns the new tail, which
// the caller restores. Fails if fewer than two entries exist.
func (s *stacks) undoStep() (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.undo) < 2 {
		return Entry{}, ErrNothingToUndo
	}
	popped := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	s.redo = append(s.redo, popped)
	return s.undo[len(s.undo)-1], nil
}

// redoStep moves the last redo entry back onto undo and returns it.
func (s *stacks) redoStep() (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.redo) == 0 {
		return Entry{}, ErrNothingToRedo
	}
	e := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	s.undo = append(s.undo, e)
	return e, nil
}

func (s *stacks) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.undo = nil
	s.redo = nil
}

func (s *stacks) undoCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.undo)
}

func (s *stacks) redoCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.redo)
}

// undoEntries returns read-only info for every undo entry, oldest
// first, for host UI introspection.
func (s *stacks) undoEntries() []EntryInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]EntryInfo, len(s.undo))
	for i, e := range s.undo {
		out[i] = e.info()
	}
	return out
}

func (s *stacks) peekUndo() (EntryInfo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.undo) < 2 {
		return EntryInfo{}, false
	}
	return s.undo[len(s.undo)-2].info(), true
}

func (s *stacks) peekRedo() (EntryInfo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.redo) == 0 {
		return EntryInfo{}, false
	}
	return s.redo[len(s.redo)-1].info(), true
}
