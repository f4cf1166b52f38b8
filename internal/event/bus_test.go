package event

import "testing"

func TestPublishDispatchesToSubscriber(t *testing.T) {
	b := NewBus()
	var got any
	b.Subscribe(TopicBlockChanged, func(payload any, meta Metadata) {
		got = payload
	})

	b.Publish(TopicBlockChanged, "block-1", "test")

	if got != "block-1" {
		t.Fatalf("expected handler to receive payload, got %v", got)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := NewBus()
	calls := 0
	unsub := b.Subscribe(TopicBlockChanged, func(payload any, meta Metadata) {
		calls++
	})

	b.Publish(TopicBlockChanged, nil, "test")
	unsub()
	b.Publish(TopicBlockChanged, nil, "test")

	if calls != 1 {
		t.Fatalf("expected exactly one delivery before unsubscribe, got %d", calls)
	}
}

func TestPublishToUnrelatedTopicDoesNotDeliver(t *testing.T) {
	b := NewBus()
	calls := 0
	b.Subscribe(TopicBlockChanged, func(payload any, meta Metadata) {
		calls++
	})

	b.Publish(TopicHistoryStateChanged, nil, "test")

	if calls != 0 {
		t.Fatalf("expected no delivery on an unrelated topic, got %d", calls)
	}
}

func TestPanickingHandlerDoesNotBlockOthers(t *testing.T) {
	b := NewBus()
	second := false

	b.Subscribe(TopicBlockChanged, func(payload any, meta Metadata) {
		panic("boom")
	})
	b.Subscribe(TopicBlockChanged, func(payload any, meta Metadata) {
		second = true
	})

	b.Publish(TopicBlockChanged, nil, "test")

	if !second {
		t.Fatalf("expected second handler to run despite first handler panicking")
	}
}

func TestMultipleSubscribersAllReceive(t *testing.T) {
	b := NewBus()
	counts := make([]int, 3)
	for i := range counts {
		i := i
		b.Subscribe(TopicBlockChanged, func(payload any, meta Metadata) {
			counts[i]++
		})
	}

	b.Publish(TopicBlockChanged, nil, "test")

	for i, c := range counts {
		if c != 1 {
			t.Errorf("subscriber %d: expected 1 delivery, got %d", i, c)
		}
	}
}
