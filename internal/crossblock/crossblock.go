// Package crossblock implements the drag- and shift-arrow-driven
// cross-block selection state machine: tracking a first/last anchor
// pair across the block list and toggling each block's selected flag as
// the pointer moves between them.
package crossblock

import "sync"

// State is one of idle, single, or multi, per the data model: idle has
// no anchors, single has both anchors equal (a latent anchor with no
// visible multi-selection yet), multi has two distinct anchors.
type State int

const (
	StateIdle State = iota
	StateSingle
	StateMulti
)

// ClearReason distinguishes why Clear was invoked, since an arrow-key
// clear additionally repositions the caret.
type ClearReason int

const (
	ClearOther ClearReason = iota
	ClearArrowLeft
	ClearArrowRight
	ClearArrowUp
	ClearArrowDown
)

// Direction is used by ToggleBlockSelectedState to promote single into
// multi by selecting an immediate neighbor.
type Direction int

const (
	DirPrev Direction = iota
	DirNext
)

// Host is the collaborator the state machine drives: block ordering and
// index math, selection-flag toggling, caret placement, and toolbar
// lifecycle.
type Host interface {
	IndexOf(block BlockRef) int
	BlockAt(index int) (BlockRef, bool)
	SetSelected(block BlockRef, selected bool)

	SetCaretEnd(block BlockRef)
	SetCaretStart(block BlockRef)

	CloseInlineToolbar()
	OpenMultiBlockToolbar()
	DisableHoverForCooldown()

	ScrollIntoView(block BlockRef)
}

// BlockRef is an opaque handle to a block, compared by identity.
type BlockRef interface{}

// Selector holds cross-block selection state for a single editor
// instance.
type Selector struct {
	mu sync.Mutex

	first BlockRef
	last  BlockRef

	tracking bool
}

// State reports the current machine state.
func (s *Selector) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Selector) stateLocked() State {
	if s.first == nil && s.last == nil {
		return StateIdle
	}
	if s.first == s.last {
		return StateSingle
	}
	return StateMulti
}

// Anchors returns the current first/last selected block references.
func (s *Selector) Anchors() (first, last BlockRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.first, s.last
}

// PointerDown resolves the target block under the pointer and, if
// found, starts tracking with both anchors set to it (entering Single).
// No-op if target is nil (stays Idle) or toolbarOpened is true.
func (s *Selector) PointerDown(host Host, target BlockRef, toolbarOpened bool, selectionNonCollapsed bool, clearSelectionCache func()) {
	if toolbarOpened || target == nil {
		return
	}

	s.mu.Lock()
	s.first = target
	s.last = target
	s.tracking = true
	s.mu.Unlock()

	if selectionNonCollapsed && clearSelectionCache != nil {
		clearSelectionCache()
	}
}

// PointerMove advances the selection from "from" toward "to", following
// the spec's toggle rules. dragInProgress and toolbarOpened suppress the
// move entirely, as does an unresolved or equal from/to pair.
func (s *Selector) PointerMove(host Host, from, to BlockRef, dragInProgress, toolbarOpened bool) {
	s.mu.Lock()
	tracking := s.tracking
	first := s.first
	s.mu.Unlock()

	if !tracking || dragInProgress || toolbarOpened {
		return
	}
	if from == nil || to == nil || from == to {
		return
	}

	switch {
	case from == first:
		host.SetSelected(from, true)
		host.SetSelected(to, true)
		s.setLast(to)
	case to == first:
		host.SetSelected(from, false)
		host.SetSelected(to, false)
		s.setLast(to)
	default:
		s.toggleBetween(host, first, to)
		s.setLast(to)
	}

	host.CloseInlineToolbar()
}

// toggleBetween selects every block strictly between first (exclusive)
// and to (inclusive), whether to lies after or before first. It always
// sets selected rather than flipping state: a drag only ever grows the
// selection here, and shrinking it back is handled separately by the
// caller's retract branch above, not by toggling here.
func (s *Selector) toggleBetween(host Host, first, to BlockRef) {
	firstIdx := host.IndexOf(first)
	toIdx := host.IndexOf(to)
	if firstIdx < 0 || toIdx < 0 {
		return
	}

	lo, hi := firstIdx, toIdx
	if lo > hi {
		lo, hi = hi, lo
	}

	for i := lo; i <= hi; i++ {
		block, ok := host.BlockAt(i)
		if !ok || block == first {
			continue
		}
		host.SetSelected(block, true)
	}
}

func (s *Selector) setLast(block BlockRef) {
	s.mu.Lock()
	s.last = block
	s.mu.Unlock()
}

// PointerUp ends tracking. If the state is Multi, it opens the
// multi-block toolbar after disabling hover detection for a cooldown so
// stale pointer-move events cannot reposition it.
func (s *Selector) PointerUp(host Host) {
	s.mu.Lock()
	s.tracking = false
	state := s.stateLocked()
	s.mu.Unlock()

	if state == StateMulti {
		host.DisableHoverForCooldown()
		host.OpenMultiBlockToolbar()
	}
}

// Clear resets to Idle. When reason names an arrow key, the caret is
// placed at the matching edge of the anchor pair; the caller must supply
// index comparisons via host since BlockRef is opaque.
func (s *Selector) Clear(host Host, reason ClearReason) {
	s.mu.Lock()
	first, last := s.first, s.last
	s.first, s.last = nil, nil
	s.tracking = false
	s.mu.Unlock()

	if host == nil || first == nil || last == nil {
		return
	}

	firstIdx, lastIdx := host.IndexOf(first), host.IndexOf(last)
	if firstIdx < 0 || lastIdx < 0 {
		return
	}

	switch reason {
	case ClearArrowRight, ClearArrowDown:
		target, idx := first, firstIdx
		if lastIdx > idx {
			target, idx = last, lastIdx
		}
		host.SetCaretEnd(target)
	case ClearArrowLeft, ClearArrowUp:
		target, idx := first, firstIdx
		if lastIdx < idx {
			target, idx = last, lastIdx
		}
		host.SetCaretStart(target)
	}
}

// ToggleBlockSelectedState promotes Single into Multi by selecting the
// immediate neighbor in dir, scrolling it into view, and reopening the
// multi-block toolbar if the state newly became Multi.
func (s *Selector) ToggleBlockSelectedState(host Host, dir Direction) {
	s.mu.Lock()
	first := s.first
	wasMulti := s.stateLocked() == StateMulti
	s.mu.Unlock()

	if host == nil || first == nil {
		return
	}

	idx := host.IndexOf(first)
	if idx < 0 {
		return
	}

	neighborIdx := idx - 1
	if dir == DirNext {
		neighborIdx = idx + 1
	}
	neighbor, ok := host.BlockAt(neighborIdx)
	if !ok {
		return
	}

	host.SetSelected(first, true)
	host.SetSelected(neighbor, true)
	s.setLast(neighbor)

	host.ScrollIntoView(neighbor)

	if !wasMulti {
		host.OpenMultiBlockToolbar()
	}
}
