package history

import (
	"context"

	"github.com/blockcore/editorcore/internal/blockdoc"
	"github.com/blockcore/editorcore/internal/caret"
)

// restoreCaret walks a six-step fallback cascade to place the caret
// after a restore. Every step degrades gracefully: a restore that
// cannot place the caret exactly still leaves the user with a
// reasonable place to type, rather than losing focus entirely.
func (e *Engine) restoreCaret(ctx context.Context, desired *caret.Position, fallbackIndex int, fallbackCaret *caret.Position) {
	if e.manager == nil || e.caretHelper == nil {
		return
	}

	// Step 1: no desired caret, but the entry being left behind had one.
	if desired == nil && fallbackCaret != nil {
		if e.focusResolved(ctx, fallbackCaret.BlockID, fallbackCaret.BlockIndex, fallbackCaret.InputIndex, fallbackCaret.Offset, fallbackCaret.EndOffset) {
			return
		}
	}

	// Step 2: no desired caret, fall back to the index the restore
	// computed from the pre-restore block count.
	if desired == nil && fallbackIndex >= 0 {
		if e.focusIndexEnd(fallbackIndex) {
			return
		}
	}

	// Step 3: nothing to go on at all. Focus the first focusable block.
	if desired == nil {
		e.focusFirstFocusable()
		return
	}

	// Steps 4-6: resolve the desired block, preferring its id, falling
	// back to its recorded index.
	handle, ok := e.manager.BlockByID(desired.BlockID)
	if !ok {
		if h, ok2 := e.manager.BlockByIndex(desired.BlockIndex); ok2 {
			handle = h
			ok = true
		} else if fallbackIndex >= 0 {
			if h, ok3 := e.manager.BlockByIndex(fallbackIndex); ok3 {
				handle = h
				ok = true
			}
		}
	}
	if !ok {
		e.focusFirstFocusable()
		return
	}

	e.awaitReady(ctx, handle)

	// The block's underlying instance may have been replaced by the
	// tool's own Ready lifecycle (e.g. a reinitializing editor); re-fetch
	// by id before trusting the handle again.
	if reresolved, ok := e.manager.BlockByID(handle.ID()); ok {
		handle = reresolved
	}

	inputIndex := desired.InputIndex
	if n := handle.InputCount(); n > 0 && inputIndex >= n {
		inputIndex = n - 1
	}
	if inputIndex < 0 {
		inputIndex = 0
	}

	if desired.Offset != desired.EndOffset {
		if e.caretHelper.SetRange(handle.ID(), inputIndex, desired.Offset, desired.EndOffset) {
			return
		}
	} else if e.caretHelper.SetToInput(handle.ID(), inputIndex, caret.PlaceDefault, desired.Offset) {
		return
	}

	e.caretHelper.SetToInput(handle.ID(), inputIndex, caret.PlaceEnd, 0)
}

func (e *Engine) focusResolved(ctx context.Context, id blockdoc.BlockID, blockIndex, inputIndex, offset, endOffset int) bool {
	handle, ok := e.manager.BlockByID(id)
	if !ok {
		handle, ok = e.manager.BlockByIndex(blockIndex)
	}
	if !ok {
		return false
	}
	e.awaitReady(ctx, handle)
	if offset != endOffset {
		return e.caretHelper.SetRange(handle.ID(), inputIndex, offset, endOffset)
	}
	return e.caretHelper.SetToInput(handle.ID(), inputIndex, caret.PlaceDefault, offset)
}

func (e *Engine) focusIndexEnd(index int) bool {
	handle, ok := e.manager.BlockByIndex(index)
	if !ok {
		return false
	}
	return e.caretHelper.SetToBlock(handle.ID(), caret.PlaceEnd)
}

func (e *Engine) focusFirstFocusable() {
	for _, h := range e.manager.Blocks() {
		if h.Focusable() {
			e.caretHelper.SetToBlock(h.ID(), caret.PlaceEnd)
			return
		}
	}
}

func (e *Engine) awaitReady(ctx context.Context, handle blockdoc.BlockHandle) {
	tool := handle.Tool()
	if tool == nil {
		return
	}
	if err := tool.Ready(ctx); err != nil {
		e.log.Debug("history: block %v tool not ready during caret restore: %v", handle.ID(), err)
	}
}
