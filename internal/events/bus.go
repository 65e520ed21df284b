// Package events carries workbench notifications (state changes, job results) from
// producers to stream subscribers.
package events

import (
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

// EventType represents different event types
type EventType string

const (
	StateChanged     EventType = "STATE_CHANGED"
	CuesReloaded     EventType = "CUES_RELOADED"
	SnapshotArchived EventType = "SNAPSHOT_ARCHIVED"
	JobCompleted     EventType = "JOB_COMPLETED"
	JobFailed        EventType = "JOB_FAILED"
	ErrorOccurred    EventType = "ERROR_OCCURRED"
)

// AllTypes lists every event type the bus carries
var AllTypes = []EventType{
	StateChanged,
	CuesReloaded,
	SnapshotArchived,
	JobCompleted,
	JobFailed,
	ErrorOccurred,
}

// Event is one emitted notification. IDs are ULIDs, so they sort by emission time.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Module    string    `json:"module"`
	Data      EventData `json:"data"`
}

// Handler receives events. It runs on the emitting goroutine and must not block.
type Handler func(*Event)

type subscription struct {
	id      uint64
	handler Handler
}

// Bus fans events out to subscribers by type
type Bus struct {
	mu       sync.RWMutex
	subs     map[EventType][]subscription
	nextID   uint64
	log      zerolog.Logger
	emitted  uint64
	lastSeen time.Time
}

// NewBus creates an empty bus
func NewBus(log zerolog.Logger) *Bus {
	return &Bus{
		subs: make(map[EventType][]subscription),
		log:  log.With().Str("component", "events").Logger(),
	}
}

// Subscribe registers handler for the given types (all types when none are given)
// and returns a function that removes it
func (b *Bus) Subscribe(handler Handler, types ...EventType) func() {
	if len(types) == 0 {
		types = AllTypes
	}

	b.mu.Lock()
	b.nextID++
	id := b.nextID
	for _, t := range types {
		b.subs[t] = append(b.subs[t], subscription{id: id, handler: handler})
	}
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			for _, t := range types {
				b.subs[t] = removeSubscription(b.subs[t], id)
			}
		})
	}
}

func removeSubscription(subs []subscription, id uint64) []subscription {
	out := subs[:0:0]
	for _, s := range subs {
		if s.id != id {
			out = append(out, s)
		}
	}
	return out
}

// Emit publishes data to every subscriber of its type and returns the event
func (b *Bus) Emit(module string, data EventData) *Event {
	event := &Event{
		ID:        ulid.Make().String(),
		Type:      data.EventType(),
		Timestamp: time.Now(),
		Module:    module,
		Data:      data,
	}

	b.mu.Lock()
	b.emitted++
	b.lastSeen = event.Timestamp
	handlers := make([]Handler, 0, len(b.subs[event.Type]))
	for _, s := range b.subs[event.Type] {
		handlers = append(handlers, s.handler)
	}
	b.mu.Unlock()

	b.log.Debug().
		Str("event_id", event.ID).
		Str("event_type", string(event.Type)).
		Str("module", module).
		Int("subscribers", len(handlers)).
		Msg("Event emitted")

	for _, h := range handlers {
		h(event)
	}
	return event
}

// EmitError emits an ErrorOccurred event
func (b *Bus) EmitError(module string, err error, context map[string]interface{}) *Event {
	return b.Emit(module, &ErrorEventData{Error: err.Error(), Context: context})
}

// Stats reports how many events were emitted and when the last one was
func (b *Bus) Stats() (emitted uint64, last time.Time) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.emitted, b.lastSeen
}

// SubscriberCount returns the number of subscriptions for a type
func (b *Bus) SubscriberCount(t EventType) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[t])
}
