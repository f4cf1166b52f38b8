// Package grouping implements the smart checkpoint policy consulted by
// the history engine on every mutation: a pure function of the current
// and previous action context, with no knowledge of snapshots, timers,
// or the DOM.
package grouping

import (
	"time"

	"github.com/blockcore/editorcore/internal/blockdoc"
)

// ActionType classifies the mutation that produced a BlockChanged event.
type ActionType int

const (
	ActionInsert ActionType = iota
	ActionDeleteBack
	ActionDeleteForward
	ActionFormat
	ActionStructural
	ActionPaste
	ActionCut
)

// ActionContext records the most recently observed action, used to
// decide whether the next action continues the same group.
type ActionContext struct {
	Type      ActionType
	BlockID   blockdoc.BlockID
	Timestamp time.Time
	// Char is the inserted character for ActionInsert actions; reserved
	// for future grouping refinements (e.g. whitespace-boundary splits).
	Char rune
}

// ActionChangeThreshold is the number of consecutive action-type changes
// within the insert/delete family on the same block that forces a
// checkpoint. The first ActionChangeThreshold-1 changes stay grouped,
// keeping quick back-to-back corrections (e.g. delete-back then insert
// while fixing a typo) inside one undo entry instead of splitting on
// every type flip; a repeated action type resets the count. A value of 0
// disables the relaxation and reverts to stock type/block comparison.
const ActionChangeThreshold = 3

// sameCorrectionFamily reports whether two action types belong to the
// "editing the same word" family that ActionChangeThreshold is allowed
// to keep grouped across a type change (insert <-> delete-back/forward).
func sameCorrectionFamily(a, b ActionType) bool {
	isEdit := func(t ActionType) bool {
		return t == ActionInsert || t == ActionDeleteBack || t == ActionDeleteForward
	}
	return isEdit(a) && isEdit(b)
}

// Policy tracks the running count of same-family type changes so
// ActionChangeThreshold has state to compare against. The history engine
// owns one Policy per editor instance and feeds it every action.
type Policy struct {
	current       *ActionContext
	typeChangeRun int
}

// NewPolicy returns a Policy with no observed context yet.
func NewPolicy() *Policy {
	return &Policy{}
}

// ShouldCreateCheckpoint reports whether next should start a new
// checkpoint rather than be grouped with the previous action. The first
// action ever observed never forces a checkpoint (there is nothing to
// diverge from yet).
func (p *Policy) ShouldCreateCheckpoint(next ActionContext) bool {
	prev := p.current
	p.current = &next

	if prev == nil {
		p.typeChangeRun = 0
		return false
	}

	if prev.BlockID != next.BlockID {
		p.typeChangeRun = 0
		return true
	}

	if prev.Type == next.Type {
		p.typeChangeRun = 0
		return false
	}

	if sameCorrectionFamily(prev.Type, next.Type) && ActionChangeThreshold > 0 {
		p.typeChangeRun++
		if p.typeChangeRun < ActionChangeThreshold {
			return false
		}
		p.typeChangeRun = 0
		return true
	}

	p.typeChangeRun = 0
	return true
}

// Reset clears any observed context, as if no action had ever occurred.
func (p *Policy) Reset() {
	p.current = nil
	p.typeChangeRun = 0
}

// IsImmediateCheckpoint reports whether an action type must create a
// checkpoint before it is recorded, rather than being grouped with
// whatever preceded it.
func IsImmediateCheckpoint(t ActionType) bool {
	switch t {
	case ActionFormat, ActionStructural, ActionPaste, ActionCut:
		return true
	default:
		return false
	}
}
