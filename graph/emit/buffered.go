package emit

import "sync"

// BufferedEmitter implements Emitter by storing events in memory.
//
// It captures all events keyed by entity id and provides query capabilities
// for post-tick analysis:
//   - Thread-safe concurrent access
//   - Query by entity with optional filtering
//   - Filter by nodeID or message
//   - Clear by entity or all
//
// Use cases:
//   - Tests asserting on diagnostics (cycle guard, unknown kinds)
//   - Debug overlays showing per-entity evaluation warnings
//
// Warning: events accumulate in memory; long-running hosts should Clear
// between frames or use a bounded backend instead.
//
// Example:
//
//	emitter := emit.NewBufferedEmitter()
//	engine := graph.New(store, emitter, graph.Options{})
//
//	engine.EvaluateLogic(g, tick)
//
//	warnings := emitter.History("player-1")
//	cycles := emitter.HistoryWithFilter("player-1", emit.HistoryFilter{Msg: "cycle_detected"})
type BufferedEmitter struct {
	mu     sync.RWMutex
	events map[string][]Event // entityID -> events
}

// HistoryFilter specifies criteria for filtering captured events.
//
// All fields are optional; set fields combine with AND logic.
type HistoryFilter struct {
	NodeID string // filter by node id (empty = no filter)
	Msg    string // filter by message (empty = no filter)
}

// NewBufferedEmitter creates a new BufferedEmitter.
func NewBufferedEmitter() *BufferedEmitter {
	return &BufferedEmitter{
		events: make(map[string][]Event),
	}
}

// Emit stores an event in the buffer. Thread-safe.
func (b *BufferedEmitter) Emit(event Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.events[event.EntityID] = append(b.events[event.EntityID], event)
}

// History retrieves all events for an entity in emission order.
// Returns a copy; the caller may retain it across Clear.
func (b *BufferedEmitter) History(entityID string) []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()

	events := b.events[entityID]
	out := make([]Event, len(events))
	copy(out, events)
	return out
}

// HistoryWithFilter retrieves events for an entity matching the filter.
func (b *BufferedEmitter) HistoryWithFilter(entityID string, filter HistoryFilter) []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var out []Event
	for _, event := range b.events[entityID] {
		if filter.NodeID != "" && event.NodeID != filter.NodeID {
			continue
		}
		if filter.Msg != "" && event.Msg != filter.Msg {
			continue
		}
		out = append(out, event)
	}
	return out
}

// Len returns the total number of buffered events across all entities.
func (b *BufferedEmitter) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := 0
	for _, events := range b.events {
		n += len(events)
	}
	return n
}

// Clear removes all events for one entity.
func (b *BufferedEmitter) Clear(entityID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.events, entityID)
}

// ClearAll removes all buffered events.
func (b *BufferedEmitter) ClearAll() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.events = make(map[string][]Event)
}
