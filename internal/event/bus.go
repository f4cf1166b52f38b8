package event

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Handler receives a published payload along with the metadata it was
// published with.
type Handler func(payload any, meta Metadata)

// Bus is a synchronous, single-threaded publish/subscribe dispatcher.
// The editor core runs on exactly one cooperative event loop, so
// Publish dispatches handlers inline rather than through worker
// goroutines; the mutex only protects concurrent Subscribe/Unsubscribe
// calls against an in-flight Publish.
type Bus struct {
	mu       sync.Mutex
	handlers map[Topic][]subscription
	nextID   int
}

type subscription struct {
	id int
	fn Handler
}

// NewBus returns an empty Bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[Topic][]subscription)}
}

// Subscribe registers fn for topic and returns a function that removes
// the subscription.
func (b *Bus) Subscribe(topic Topic, fn Handler) (unsubscribe func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.handlers[topic] = append(b.handlers[topic], subscription{id: id, fn: fn})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.handlers[topic]
		for i, s := range subs {
			if s.id == id {
				b.handlers[topic] = append(subs[:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Publish dispatches payload to every handler registered for topic, in
// registration order. A panicking handler is recovered and does not
// prevent later handlers on the same topic from running, matching the
// engine-wide fail-soft contract.
func (b *Bus) Publish(topic Topic, payload any, source string) {
	b.mu.Lock()
	subs := make([]subscription, len(b.handlers[topic]))
	copy(subs, b.handlers[topic])
	b.mu.Unlock()

	meta := Metadata{ID: uuid.NewString(), Timestamp: time.Now(), Source: source}
	for _, s := range subs {
		dispatchSafely(s.fn, payload, meta)
	}
}

func dispatchSafely(fn Handler, payload any, meta Metadata) {
	defer func() { _ = recover() }()
	fn(payload, meta)
}
