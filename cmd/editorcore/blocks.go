package main

import (
	"context"
	"sync"

	"github.com/blockcore/editorcore/internal/blockdoc"
	"github.com/blockcore/editorcore/internal/caret"
	"github.com/blockcore/editorcore/internal/corelog"
)

// paragraphTool is the only tool this demo ships: a block whose data is
// its raw text. Real tools (paragraph, header, list, table, ...) are an
// external collaborator per this module's scope; this one exists only
// to give the demo something to mutate.
type paragraphTool struct {
	text string
}

func (t *paragraphTool) Save(ctx context.Context) ([]byte, error) { return []byte(t.text), nil }
func (t *paragraphTool) Validate(data []byte) bool                { return true }
func (t *paragraphTool) SetData(data []byte) bool {
	t.text = string(data)
	return true
}
func (t *paragraphTool) Ready(ctx context.Context) error { return nil }

type memBlock struct {
	id   blockdoc.BlockID
	typ  string
	tool *paragraphTool
}

func (b *memBlock) ID() blockdoc.BlockID { return b.id }
func (b *memBlock) Type() string         { return b.typ }
func (b *memBlock) Tool() blockdoc.Tool  { return b.tool }
func (b *memBlock) Focusable() bool      { return true }
func (b *memBlock) InputCount() int      { return 1 }

func (b *memBlock) Save(ctx context.Context) (blockdoc.Block, error) {
	data, err := b.tool.Save(ctx)
	if err != nil {
		return blockdoc.Block{}, err
	}
	return blockdoc.Block{ID: b.id, Type: b.typ, Data: data}, nil
}

// memManager is a minimal in-memory blockdoc.Manager: an ordered slice
// of blocks guarded by a mutex, with no rendering behind it. It exists
// only to give the demo composition root something to drive the
// history engine against.
type memManager struct {
	mu     sync.Mutex
	blocks []*memBlock
}

func newMemManager(texts ...string) *memManager {
	m := &memManager{}
	for _, t := range texts {
		m.blocks = append(m.blocks, &memBlock{id: blockdoc.NewBlockID(), typ: "paragraph", tool: &paragraphTool{text: t}})
	}
	return m
}

func (m *memManager) Blocks() []blockdoc.BlockHandle {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]blockdoc.BlockHandle, len(m.blocks))
	for i, b := range m.blocks {
		out[i] = b
	}
	return out
}

func (m *memManager) BlockByID(id blockdoc.BlockID) (blockdoc.BlockHandle, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.blocks {
		if b.id == id {
			return b, true
		}
	}
	return nil, false
}

func (m *memManager) BlockByIndex(index int) (blockdoc.BlockHandle, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if index < 0 || index >= len(m.blocks) {
		return nil, false
	}
	return m.blocks[index], true
}

func (m *memManager) BlockIndex(id blockdoc.BlockID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, b := range m.blocks {
		if b.id == id {
			return i
		}
	}
	return -1
}

func (m *memManager) RemoveBlock(id blockdoc.BlockID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, b := range m.blocks {
		if b.id == id {
			m.blocks = append(m.blocks[:i], m.blocks[i+1:]...)
			return
		}
	}
}

func (m *memManager) Update(id blockdoc.BlockID, data, tunes []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.blocks {
		if b.id == id {
			b.tool.text = string(data)
			return
		}
	}
}

func (m *memManager) Insert(b blockdoc.Block, index int, needToFocus bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	nb := &memBlock{id: b.ID, typ: b.Type, tool: &paragraphTool{text: string(b.Data)}}
	if index < 0 || index > len(m.blocks) {
		m.blocks = append(m.blocks, nb)
		return
	}
	m.blocks = append(m.blocks, nil)
	copy(m.blocks[index+1:], m.blocks[index:])
	m.blocks[index] = nb
}

func (m *memManager) Move(fromIndex, toIndex int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if fromIndex < 0 || fromIndex >= len(m.blocks) || toIndex < 0 || toIndex >= len(m.blocks) {
		return
	}
	b := m.blocks[fromIndex]
	m.blocks = append(m.blocks[:fromIndex], m.blocks[fromIndex+1:]...)
	m.blocks = append(m.blocks, nil)
	copy(m.blocks[toIndex+1:], m.blocks[toIndex:])
	m.blocks[toIndex] = b
}

func (m *memManager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blocks = nil
}

func (m *memManager) Render(blocks []blockdoc.Block) {
	m.mu.Lock()
	m.blocks = nil
	m.mu.Unlock()
	for i, b := range blocks {
		m.Insert(b, i, false)
	}
}

func (m *memManager) texts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.blocks))
	for i, b := range m.blocks {
		out[i] = b.tool.text
	}
	return out
}

// memObserver is a no-op blockdoc.ModificationsObserver: this demo has
// no real change-detection to silence during a restore.
type memObserver struct{}

func (memObserver) Disable() {}
func (memObserver) Enable()  {}

// loggingCaretHelper reports where the history engine wanted to place
// the caret instead of actually moving one, since this demo has no
// rendered UI to place it in.
type loggingCaretHelper struct {
	log *corelog.Logger
}

func (h loggingCaretHelper) SetToBlock(id blockdoc.BlockID, pos caret.Placement) bool {
	h.log.Info("caret -> block %s at %v", id, pos)
	return true
}

func (h loggingCaretHelper) SetToInput(id blockdoc.BlockID, inputIndex int, pos caret.Placement, offset int) bool {
	h.log.Info("caret -> block %s input %d at %v offset %d", id, inputIndex, pos, offset)
	return true
}

func (h loggingCaretHelper) SetRange(id blockdoc.BlockID, inputIndex, start, end int) bool {
	h.log.Info("caret -> block %s input %d range [%d,%d]", id, inputIndex, start, end)
	return true
}
