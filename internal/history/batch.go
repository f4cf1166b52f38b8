package history

import (
	"context"

	"github.com/blockcore/editorcore/internal/caret"
)

// StartBatch opens (or nests into) a batch scope. Only the outermost
// call captures the pre-batch caret; nested calls just increment depth.
// Mismatched calls never drive depth negative.
func (e *Engine) StartBatch(current *caret.Position) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.batchDepth == 0 {
		e.batchHasMutations = false
		if current != nil {
			c := *current
			e.batchCaret = &c
		} else {
			e.batchCaret = nil
		}
	}
	e.batchDepth++
}

// EndBatch closes one level of batch scope. Only the outermost EndBatch
// records a snapshot, and only if a mutation happened inside the batch.
// Every EndBatch call, including nested ones, advances the generation
// counter so any recordState scheduled before the batch discards itself
// if dispatched after this point.
func (e *Engine) EndBatch(ctx context.Context) {
	e.mu.Lock()
	if e.batchDepth == 0 {
		e.mu.Unlock()
		return
	}
	e.batchDepth--
	e.generation++

	outermost := e.batchDepth == 0
	hadMutations := e.batchHasMutations
	preBatchCaret := e.batchCaret
	e.mu.Unlock()

	if !outermost || !hadMutations {
		return
	}

	e.mu.Lock()
	e.batchCaret = nil
	e.batchHasMutations = false
	e.mu.Unlock()

	if !e.inlineToolFocused() {
		e.fakeBG.Clear(e.fgHost)
	}

	snap := e.buildSnapshot(ctx)

	e.mu.Lock()
	e.stacks.setTailCaret(preBatchCaret)
	prev, hasPrev := e.stacks.tail()
	if hasPrev && snap.Equal(prev.Snapshot) {
		e.mu.Unlock()
		return
	}
	e.stacks.push(Entry{ID: newEntryID(), Snapshot: snap, CreatedAt: now()})
	e.mu.Unlock()

	e.emitState()
}

// Transaction runs fn inside a batch scope, guaranteeing EndBatch runs
// even if fn panics, and propagates fn's error.
func (e *Engine) Transaction(ctx context.Context, current *caret.Position, fn func() error) error {
	e.StartBatch(current)
	defer e.EndBatch(ctx)
	return fn()
}
