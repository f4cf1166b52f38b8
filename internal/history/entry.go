package history

import (
	"time"

	"github.com/blockcore/editorcore/internal/blockdoc"
	"github.com/blockcore/editorcore/internal/caret"
)

// Entry pairs one document snapshot with the caret position that is
// restored when undoing back to this entry, plus a creation timestamp.
// The caret recorded here describes where the user was immediately
// before the action that produced the entry which follows it, so it is
// filled in only once that next entry is recorded (see setTailCaret).
type Entry struct {
	ID        string
	Snapshot  blockdoc.Snapshot
	Caret     *caret.Position
	CreatedAt time.Time
}

// EntryInfo is a read-only view of an Entry for host UI (e.g. to label
// an undo button), without exposing the full snapshot.
type EntryInfo struct {
	ID        string
	CreatedAt time.Time
	HasCaret  bool
}

func (e Entry) info() EntryInfo {
	return EntryInfo{ID: e.ID, CreatedAt: e.CreatedAt, HasCaret: e.Caret != nil}
}
