package blockdoc

import "time"

// Snapshot is an ordered, immutable view of the document at one point in
// time. Timestamp is carried for diagnostics only; it is excluded from
// Equal.
type Snapshot struct {
	Blocks    []Block
	Timestamp time.Time
}

// NewSnapshot builds a Snapshot from blocks, copying the slice so later
// mutation of the caller's slice cannot reach back into history.
func NewSnapshot(blocks []Block) Snapshot {
	cp := make([]Block, len(blocks))
	copy(cp, blocks)
	return Snapshot{Blocks: cp, Timestamp: time.Now()}
}

// Equal implements the snapshot equality from the data model: identical
// length and, for every index, an equal block under Block.Equal.
// Timestamps are ignored.
func (s Snapshot) Equal(other Snapshot) bool {
	if len(s.Blocks) != len(other.Blocks) {
		return false
	}
	for i := range s.Blocks {
		if !s.Blocks[i].Equal(other.Blocks[i]) {
			return false
		}
	}
	return true
}

// IsEmpty reports whether the snapshot reduces to the "one empty block"
// case, or has no blocks at all.
func (s Snapshot) IsEmpty() bool {
	if len(s.Blocks) == 0 {
		return true
	}
	return len(s.Blocks) == 1 && len(s.Blocks[0].Data) == 0
}

// IndexOf returns the position of id within the snapshot, or -1.
func (s Snapshot) IndexOf(id BlockID) int {
	for i, b := range s.Blocks {
		if b.ID == id {
			return i
		}
	}
	return -1
}
