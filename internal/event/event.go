// Package event implements the small synchronous publish/subscribe bus
// the history engine uses to receive BlockChanged notifications and to
// emit its own history-state-changed notification for host UI.
package event

import (
	"time"

	"github.com/google/uuid"
)

// Topic names one kind of event. The core only needs two: mutation
// intake and state-change notification, so this stays a flat string
// rather than the hierarchical dot-path scheme a larger event catalog
// would want.
type Topic string

const (
	// TopicBlockChanged carries a blockdoc.BlockID payload identifying
	// the block whose tool just mutated.
	TopicBlockChanged Topic = "block.changed"
	// TopicHistoryStateChanged carries a HistoryState payload whenever
	// canUndo/canRedo may have changed.
	TopicHistoryStateChanged Topic = "history.state_changed"
)

// Metadata travels alongside every event payload.
type Metadata struct {
	ID        string
	Timestamp time.Time
	Source    string
}

// Event is a generic, typed envelope carrying a payload of type T plus
// routing/diagnostic metadata.
type Event[T any] struct {
	Topic    Topic
	Payload  T
	Metadata Metadata
}

// New wraps payload for topic with freshly generated metadata.
func New[T any](topic Topic, payload T, source string) Event[T] {
	return Event[T]{
		Topic:   topic,
		Payload: payload,
		Metadata: Metadata{
			ID:        uuid.NewString(),
			Timestamp: time.Now(),
			Source:    source,
		},
	}
}
