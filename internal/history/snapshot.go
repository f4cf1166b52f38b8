package history

import (
	"context"

	"github.com/blockcore/editorcore/internal/blockdoc"
)

// buildSnapshot serializes the document's current block list: each
// block is serialized via its tool's Save; a block that errors, or
// whose tool rejects its own serialized data under Validate, is
// dropped silently rather than aborting the whole snapshot. A document
// that reduces to exactly one empty block is recorded as an empty
// block list.
func (e *Engine) buildSnapshot(ctx context.Context) blockdoc.Snapshot {
	if e.manager == nil {
		return blockdoc.NewSnapshot(nil)
	}

	handles := e.manager.Blocks()
	blocks := make([]blockdoc.Block, 0, len(handles))

	for _, h := range handles {
		b, err := h.Save(ctx)
		if err != nil {
			e.log.Debug("history: dropping block %v from snapshot: save failed: %v", h.ID(), err)
			continue
		}
		if tool := h.Tool(); tool != nil && !tool.Validate(b.Data) {
			e.log.Debug("history: dropping block %v from snapshot: failed validation", h.ID())
			continue
		}
		blocks = append(blocks, b)
	}

	snap := blockdoc.NewSnapshot(blocks)
	if snap.IsEmpty() {
		return blockdoc.NewSnapshot(nil)
	}
	return snap
}
