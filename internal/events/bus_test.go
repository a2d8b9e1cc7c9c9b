package events

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryBus_PublishDeliversToSubscribers(t *testing.T) {
	bus := NewInMemoryBus()
	var mu sync.Mutex
	var received []Event

	unsubscribe := bus.Subscribe(func(e Event) {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, e)
	})
	defer unsubscribe()

	bus.Publish(NewEvent("scenario-1", Started, StartedPayload{JobID: "job-1"}))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, received, 1)
	assert.Equal(t, Started, received[0].Kind)
	assert.Equal(t, AggregateType, received[0].AggregateType)
	assert.NotEmpty(t, received[0].EventID)
}

func TestInMemoryBus_UnsubscribeStopsDelivery(t *testing.T) {
	bus := NewInMemoryBus()
	count := 0
	unsubscribe := bus.Subscribe(func(e Event) { count++ })
	unsubscribe()

	bus.Publish(NewEvent("scenario-1", Started, nil))
	assert.Equal(t, 0, count)
}

func TestInMemoryBus_PanickingHandlerDoesNotBlockOthers(t *testing.T) {
	bus := NewInMemoryBus()
	secondCalled := false

	bus.Subscribe(func(e Event) { panic("boom") })
	bus.Subscribe(func(e Event) { secondCalled = true })

	bus.Publish(NewEvent("scenario-1", Failed, FailedPayload{Error: "x"}))

	assert.True(t, secondCalled, "expected second handler to still be called despite the first panicking")
}

func TestEventIDsAreUnique(t *testing.T) {
	a := NewEvent("s1", Started, nil)
	b := NewEvent("s1", Started, nil)
	assert.NotEqual(t, a.EventID, b.EventID)
}
