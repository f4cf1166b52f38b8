package history

import (
	"context"
	"time"

	"github.com/blockcore/editorcore/internal/blockdoc"
	"github.com/blockcore/editorcore/internal/grouping"
)

// HandleBlockChanged is the mutation intake entry point: the host
// editor calls this whenever a tool reports that block id changed.
// blockID identifies the block the mutation landed on; ctx bounds any
// Save/Validate calls a resulting snapshot build makes.
func (e *Engine) HandleBlockChanged(ctx context.Context, blockID blockdoc.BlockID) {
	if e.coord != nil {
		e.coord.Acquire(e)
	}

	e.mu.Lock()
	if e.restoring {
		e.mu.Unlock()
		return
	}
	if !e.initialCaptured {
		e.mu.Unlock()
		e.CaptureInitialState(ctx)
		return
	}
	if e.batchDepth > 0 {
		e.batchHasMutations = true
		e.mu.Unlock()
		return
	}

	n := now()
	if !e.lastMutationTime.IsZero() && n.Sub(e.lastMutationTime) > e.cfg.NewGroupDelay {
		e.stopDebounceLocked()
		e.policy.Reset()
		if e.pendingAction != nil {
			e.policy.ShouldCreateCheckpoint(*e.pendingAction)
		}
		e.lastMutationTime = n
		e.scheduleDebounceLocked(ctx)
		e.mu.Unlock()
		return
	}
	e.lastMutationTime = n

	action := e.pendingAction
	var checkpoint, immediate bool
	if action != nil {
		checkpoint = e.policy.ShouldCreateCheckpoint(*action)
		immediate = grouping.IsImmediateCheckpoint(action.Type)
	}
	e.mu.Unlock()

	if action == nil {
		e.scheduleDebounce(ctx)
		return
	}

	if checkpoint || immediate {
		e.mu.Lock()
		e.stopDebounceLocked()
		gen := e.generation
		e.mu.Unlock()

		e.recordState(ctx, &gen)
		e.scheduleDebounce(ctx)
		return
	}

	e.scheduleDebounce(ctx)
}

// scheduleDebounceLocked (re)arms the debounce timer; e.mu must be held.
func (e *Engine) scheduleDebounceLocked(ctx context.Context) {
	e.stopDebounceLocked()
	gen := e.generation
	delay := e.cfg.HistoryDebounceTime
	e.debounceTimer = time.AfterFunc(delay, func() {
		e.recordState(ctx, &gen)
	})
}

func (e *Engine) scheduleDebounce(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scheduleDebounceLocked(ctx)
}

// recordState serializes and pushes the current document state.
// scheduledGeneration, when non-nil, ties this call to the batch
// generation counter at schedule time; a call dispatched after a batch
// has since closed discards itself rather than recording stale state.
func (e *Engine) recordState(ctx context.Context, scheduledGeneration *uint64) {
	e.mu.Lock()
	if e.restoring || e.batchDepth > 0 {
		e.mu.Unlock()
		return
	}
	if scheduledGeneration != nil && *scheduledGeneration != e.generation {
		e.mu.Unlock()
		return
	}
	e.mu.Unlock()

	if !e.inlineToolFocused() {
		e.fakeBG.Clear(e.fgHost)
	}

	snap := e.buildSnapshot(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()

	pending := e.pendingCaret
	e.pendingCaret = nil
	e.hasCapturedGroupPosition = false
	e.keydownCapturedPosition = false
	e.stacks.setTailCaret(pending)

	if prev, ok := e.stacks.tail(); ok && snap.Equal(prev.Snapshot) {
		return
	}

	e.stacks.push(Entry{ID: newEntryID(), Snapshot: snap, CreatedAt: now()})
	e.emitState()
}

func (e *Engine) inlineToolFocused() bool {
	if e.inlineFocused == nil {
		return false
	}
	return e.inlineFocused()
}
