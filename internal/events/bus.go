// Package events implements an in-memory publish/subscribe bus carrying
// the four optimization lifecycle event kinds, each stamped with a
// process-unique eventId, an ISO-8601 UTC timestamp, and a fixed
// aggregateType.
package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind enumerates the four optimization lifecycle event kinds.
type Kind string

const (
	Started  Kind = "optimization.started"
	Progress Kind = "optimization.progress"
	Completed Kind = "optimization.completed"
	Failed   Kind = "optimization.failed"
)

// AggregateType is fixed for every event this bus carries.
const AggregateType = "OptimizationScenario"

// Event is the envelope published for every lifecycle transition.
type Event struct {
	EventID       string
	ScenarioID    string
	Kind          Kind
	AggregateType string
	Timestamp     time.Time
	Payload       any
}

// StartedPayload accompanies a Started event.
type StartedPayload struct {
	ScenarioName string
	JobID        string
	StartedAt    time.Time
}

// ProgressPayload accompanies a Progress event.
type ProgressPayload struct {
	Progress float64
	Message  string
}

// CompletedPayload accompanies a Completed event.
type CompletedPayload struct {
	PlanID          string
	PlanNumber      int
	TotalWaste      float64
	WastePercentage float64
	StockUsedCount  int
	CompletedAt     time.Time
}

// FailedPayload accompanies a Failed event.
type FailedPayload struct {
	Error    string
	FailedAt time.Time
}

// Handler receives published events. Handlers must be idempotent on
// (ScenarioID, Kind, terminal) since delivery is at-least-once.
type Handler func(Event)

// Bus is the abstract publish/subscribe boundary the engine depends on.
type Bus interface {
	Subscribe(h Handler) (unsubscribe func())
	Publish(e Event)
}

// InMemoryBus is a process-local, synchronous fan-out implementation.
// It is the reference Bus: production deployments may swap in a broker
// without the engine noticing, since it depends only on the Bus
// interface.
type InMemoryBus struct {
	mu       sync.RWMutex
	handlers map[int]Handler
	nextID   int
}

// NewInMemoryBus constructs an empty bus.
func NewInMemoryBus() *InMemoryBus {
	return &InMemoryBus{handlers: make(map[int]Handler)}
}

func (b *InMemoryBus) Subscribe(h Handler) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.handlers[id] = h
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.handlers, id)
		b.mu.Unlock()
	}
}

// Publish delivers e to every current subscriber synchronously, at least
// once. A panicking handler is recovered so one bad subscriber cannot
// break delivery to the rest.
func (b *InMemoryBus) Publish(e Event) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.handlers))
	for _, h := range b.handlers {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		dispatch(h, e)
	}
}

func dispatch(h Handler, e Event) {
	defer func() { recover() }()
	h(e)
}

// NewEvent stamps a fresh envelope for scenarioID/kind with the given
// payload.
func NewEvent(scenarioID string, kind Kind, payload any) Event {
	return Event{
		EventID:       uuid.NewString(),
		ScenarioID:    scenarioID,
		Kind:          kind,
		AggregateType: AggregateType,
		Timestamp:     time.Now().UTC(),
		Payload:       payload,
	}
}
