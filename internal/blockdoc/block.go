// Package blockdoc defines the document model shared by the history
// engine and its collaborators: an ordered list of blocks, each owned by
// a pluggable Tool, plus the snapshot equality the history engine uses to
// suppress no-op recordings.
package blockdoc

import (
	"bytes"
	"context"

	"github.com/google/uuid"
)

// BlockID stably identifies a block across its lifetime, independent of
// its position in the document.
type BlockID string

// NewBlockID returns a fresh, randomly generated block identifier.
func NewBlockID() BlockID {
	return BlockID(uuid.NewString())
}

// Block is one serialized unit of document content. Data and Tunes are
// opaque to the history core; only the owning Tool interprets them.
type Block struct {
	ID    BlockID
	Type  string
	Data  []byte
	Tunes []byte
}

// Equal reports whether b and other are identical under the snapshot
// equality rule: same id, same type, byte-equal data, byte-equal tunes.
// Absent tunes are treated as equal to empty tunes.
func (b Block) Equal(other Block) bool {
	if b.ID != other.ID || b.Type != other.Type {
		return false
	}
	if !bytes.Equal(b.Data, other.Data) {
		return false
	}
	return bytes.Equal(normalizeTunes(b.Tunes), normalizeTunes(other.Tunes))
}

func normalizeTunes(t []byte) []byte {
	if len(t) == 0 {
		return nil
	}
	return t
}

// Tool is the contract every block type must satisfy. It mirrors the
// host editor's block interface: a tool owns serialization, validation,
// in-place updates, and reports readiness asynchronously.
type Tool interface {
	// Save serializes the tool's current state. An error drops the
	// block from the snapshot being built.
	Save(ctx context.Context) ([]byte, error)
	// Validate reports whether data is acceptable for this tool.
	Validate(data []byte) bool
	// SetData attempts an in-place update and reports whether it
	// succeeded; false requests a full block replacement instead.
	SetData(data []byte) bool
	// Ready resolves once the tool's inputs exist and can be focused.
	Ready(ctx context.Context) error
}
