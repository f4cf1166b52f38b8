package history

import (
	"context"
)

// Undo fails soft (returns false) when fewer than two entries exist or
// a restore is already in progress. Otherwise it pops the current entry
// to the redo stack, restores the new tail's snapshot and caret, waits
// out the restore cooldown, and returns true.
func (e *Engine) Undo(ctx context.Context) bool {
	e.mu.Lock()
	if e.restoring || e.destroyed {
		e.mu.Unlock()
		return false
	}
	e.mu.Unlock()

	if !e.stacks.canUndo() {
		return false
	}

	target, err := e.stacks.undoStep()
	if err != nil {
		return false
	}

	e.restoreTo(ctx, target, restoreKindUndo)
	return true
}

// Redo fails soft when the redo stack is empty or a restore is already
// in progress. Otherwise it moves the last redo entry back onto undo,
// restores it, waits out the cooldown, and returns true.
func (e *Engine) Redo(ctx context.Context) bool {
	e.mu.Lock()
	if e.restoring || e.destroyed {
		e.mu.Unlock()
		return false
	}
	e.mu.Unlock()

	if !e.stacks.canRedo() {
		return false
	}

	target, err := e.stacks.redoStep()
	if err != nil {
		return false
	}

	e.restoreTo(ctx, target, restoreKindRedo)
	return true
}
