package caret

import "github.com/blockcore/editorcore/internal/blockdoc"

// Placement is the caret helper's position enum: a caret can be
// requested at a block's start, its end, or "default" (the exact
// stored offset).
type Placement int

const (
	PlaceDefault Placement = iota
	PlaceStart
	PlaceEnd
)

// Helper is the host collaborator that actually moves the caret once
// the history engine has resolved which block and input to focus. Every
// method is fail-soft: it returns false rather than panicking when the
// target cannot be resolved (block gone, input index out of range,
// offset beyond the current text length), so callers can fall through
// to the next cascade level.
type Helper interface {
	// SetToBlock focuses block's current input at the given placement.
	SetToBlock(id blockdoc.BlockID, pos Placement) bool
	// SetToInput focuses a specific input within block. offset is only
	// meaningful when pos is PlaceDefault; PlaceStart/PlaceEnd ignore it.
	SetToInput(id blockdoc.BlockID, inputIndex int, pos Placement, offset int) bool
	// SetRange installs a selection [start, end) within a specific
	// input. Returns false if the offsets are out of bounds, in which
	// case the caller should fall back to SetToInput at PlaceEnd.
	SetRange(id blockdoc.BlockID, inputIndex, start, end int) bool
}
