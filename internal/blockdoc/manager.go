package blockdoc

import "context"

// Manager is the block-list collaborator the history engine restores
// against. Implementations own block lifecycle (insertion, removal,
// rendering); the history engine only ever reads the current list and
// asks for targeted mutations during restore.
type Manager interface {
	Blocks() []BlockHandle
	BlockByID(id BlockID) (BlockHandle, bool)
	BlockByIndex(index int) (BlockHandle, bool)
	BlockIndex(id BlockID) int

	RemoveBlock(id BlockID)
	// Update replaces a block's data/tunes wholesale (used when SetData
	// reports it cannot apply the change in place).
	Update(id BlockID, data, tunes []byte)
	Insert(b Block, index int, needToFocus bool)
	Move(fromIndex, toIndex int)
	Clear()

	// Render performs a full re-render of the given block list, used
	// when the incremental diff in the history engine opts out.
	Render(blocks []Block)
}

// BlockHandle is a live block instance as seen by the host editor,
// distinct from the serialized Block value stored in a Snapshot.
type BlockHandle interface {
	ID() BlockID
	Type() string
	Tool() Tool
	Focusable() bool
	InputCount() int

	Save(ctx context.Context) (Block, error)
}

// ModificationsObserver lets the history engine silence the editor's
// own change-detection while it performs a structural restore, so the
// restore itself is never recorded as a new mutation.
type ModificationsObserver interface {
	Disable()
	Enable()
}
