package history

import (
	"context"
	"time"

	"github.com/blockcore/editorcore/internal/blockdoc"
	"github.com/blockcore/editorcore/internal/caret"
)

type restoreKind int

const (
	restoreKindUndo restoreKind = iota
	restoreKindRedo
)

// fullRerenderFactor and fullRerenderFloor set the threshold past which
// incremental restore is abandoned in favor of a full re-render: once
// the number of additions plus removals exceeds
// max(|current|/fullRerenderFactor, fullRerenderFloor), diffing the two
// snapshots block by block costs more than just re-rendering from
// scratch. Named constants so a future retune is a one-line change.
const (
	fullRerenderFactor = 2
	fullRerenderFloor  = 5
)

// restoreTo applies target's snapshot to the document with minimal
// churn, then restores the caret. The modifications observer is
// disabled for the duration so the restore itself is never recorded as
// a new mutation.
func (e *Engine) restoreTo(ctx context.Context, target Entry, kind restoreKind) {
	e.mu.Lock()
	e.restoring = true
	fallbackCaret := e.lastFallbackCaretLocked(kind)
	e.mu.Unlock()

	if e.observer != nil {
		e.observer.Disable()
	}

	fallbackIndex := -1
	if e.manager != nil {
		fallbackIndex = len(e.manager.Blocks()) - 1
	}

	e.applyStructuralDiff(ctx, target.Snapshot)

	e.restoreCaret(ctx, target.Caret, fallbackIndex, fallbackCaret)

	e.fakeBG.Clear(e.fgHost)

	e.mu.Lock()
	e.pendingCaret = nil
	e.hasCapturedGroupPosition = false
	e.keydownCapturedPosition = false
	e.mu.Unlock()

	if e.observer != nil {
		e.observer.Enable()
	}

	time.Sleep(RestoreCooldown)

	e.mu.Lock()
	e.restoring = false
	e.mu.Unlock()

	e.emitState()
}

// lastFallbackCaretLocked returns the caret stored on the entry the
// restore is leaving behind (the entry undoStep just moved to the redo
// stack, or the entry redoStep just covered), used when the target entry
// being restored to has none. Must be called with e.mu held.
func (e *Engine) lastFallbackCaretLocked(kind restoreKind) *caret.Position {
	s := e.stacks
	s.mu.Lock()
	defer s.mu.Unlock()
	var left Entry
	switch {
	case kind == restoreKindUndo && len(s.redo) > 0:
		left = s.redo[len(s.redo)-1]
	case kind == restoreKindRedo && len(s.undo) > 1:
		left = s.undo[len(s.undo)-2]
	}
	if left.Caret == nil {
		return nil
	}
	c := *left.Caret
	return &c
}

func (e *Engine) applyStructuralDiff(ctx context.Context, target blockdoc.Snapshot) {
	if e.manager == nil {
		return
	}

	current := e.buildSnapshot(ctx)

	currentIdx := make(map[blockdoc.BlockID]int, len(current.Blocks))
	for i, b := range current.Blocks {
		currentIdx[b.ID] = i
	}
	targetIdx := make(map[blockdoc.BlockID]int, len(target.Blocks))
	for i, b := range target.Blocks {
		targetIdx[b.ID] = i
	}

	var toRemove, toAdd []blockdoc.BlockID
	for id := range currentIdx {
		if _, ok := targetIdx[id]; !ok {
			toRemove = append(toRemove, id)
		}
	}
	for id := range targetIdx {
		if _, ok := currentIdx[id]; !ok {
			toAdd = append(toAdd, id)
		}
	}

	threshold := len(current.Blocks) / fullRerenderFactor
	if threshold < fullRerenderFloor {
		threshold = fullRerenderFloor
	}

	if len(current.Blocks) == 0 || len(toRemove)+len(toAdd) > threshold {
		e.manager.Clear()
		e.manager.Render(target.Blocks)
		return
	}

	for _, id := range toRemove {
		e.manager.RemoveBlock(id)
	}

	for id, ti := range targetIdx {
		ci, ok := currentIdx[id]
		if !ok {
			continue
		}
		newBlock := target.Blocks[ti]
		oldBlock := current.Blocks[ci]
		if newBlock.Equal(oldBlock) {
			continue
		}
		// A tool swap changes Type on a stable id; SetData/Update can
		// only change a tool's own data, not swap its identity, so this
		// case is a removal followed by a reinsertion at the same slot.
		if newBlock.Type != oldBlock.Type {
			e.manager.RemoveBlock(id)
			e.manager.Insert(newBlock, ci, false)
			continue
		}
		e.applyUpdate(newBlock)
	}

	for _, id := range toAdd {
		ti := targetIdx[id]
		e.manager.Insert(target.Blocks[ti], ti, false)
	}

	e.settleOrder(target)
}

func (e *Engine) applyUpdate(newBlock blockdoc.Block) {
	handle, ok := e.manager.BlockByID(newBlock.ID)
	if !ok {
		return
	}
	tool := handle.Tool()
	if tool != nil && tool.SetData(newBlock.Data) {
		return
	}
	e.manager.Update(newBlock.ID, newBlock.Data, newBlock.Tunes)
}

// settleOrder walks the target list in order and moves any
// out-of-place block into position. This is an intentional O(n^2)
// settle: the block counts involved are small enough that a simpler
// pass beats a minimal-move algorithm.
func (e *Engine) settleOrder(target blockdoc.Snapshot) {
	for targetIndex, b := range target.Blocks {
		currentIndex := e.manager.BlockIndex(b.ID)
		if currentIndex < 0 || currentIndex == targetIndex {
			continue
		}
		e.manager.Move(currentIndex, targetIndex)
	}
}
