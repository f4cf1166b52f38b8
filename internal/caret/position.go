// Package caret provides stateless operations over the platform's
// notion of a text selection: offset math, anchor/collapsed queries, and
// caret placement. Every accessor is fail-soft — absent selection or an
// out-of-range request yields a safe zero value, never a panic or error.
package caret

import (
	"github.com/blockcore/editorcore/internal/blockdoc"
)

// Position locates a caret (or the edge of a selection) within a
// document: which block, which input inside that block, and a
// grapheme-cluster offset range within that input's text.
type Position struct {
	BlockID    blockdoc.BlockID
	BlockIndex int // fallback when BlockID lookup fails after a restore
	InputIndex int
	Offset     int
	EndOffset  int // equal to Offset when the caret is collapsed
}

// Collapsed reports whether the position describes a caret rather than a
// range.
func (p Position) Collapsed() bool {
	return p.EndOffset == p.Offset
}

// NewCollapsed returns a collapsed Position at offset.
func NewCollapsed(id blockdoc.BlockID, blockIndex, inputIndex, offset int) Position {
	return Position{BlockID: id, BlockIndex: blockIndex, InputIndex: inputIndex, Offset: offset, EndOffset: offset}
}

// NewRange returns a Position describing a non-collapsed selection. If
// end < start the two are swapped so Offset <= EndOffset always holds.
func NewRange(id blockdoc.BlockID, blockIndex, inputIndex, start, end int) Position {
	if end < start {
		start, end = end, start
	}
	return Position{BlockID: id, BlockIndex: blockIndex, InputIndex: inputIndex, Offset: start, EndOffset: end}
}

// Zero is the reported position when no selection exists.
var Zero = Position{}
