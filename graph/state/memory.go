package state

import "sync"

// MemStore is the in-memory Store implementation and the default backing
// for an Engine.
//
// It is a flat map keyed by the (entity, node) composite. The RWMutex makes
// it safe for a multithreaded host that partitions evaluation by entity:
// one graph's evaluation only ever touches its own entity's keys, so
// entity-disjoint evaluations never contend on data, only on the lock.
//
// For persistence across process restarts, pair it with a snapshot store
// (see sqlite.go, mysql.go): Snapshot into the backend on save, Restore on
// load.
type MemStore struct {
	mu     sync.RWMutex
	values map[Key]float64
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		values: make(map[Key]float64),
	}
}

// Get returns the stored value for (entity, node), with ok reporting
// whether the key exists.
func (m *MemStore) Get(entity, node string) (float64, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[Key{Entity: entity, Node: node}]
	return v, ok
}

// Set stores a value for (entity, node).
func (m *MemStore) Set(entity, node string, value float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[Key{Entity: entity, Node: node}] = value
}

// ResetAll drops every entry.
func (m *MemStore) ResetAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values = make(map[Key]float64)
}

// ResetEntity drops every entry belonging to one entity.
func (m *MemStore) ResetEntity(entity string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for k := range m.values {
		if k.Entity == entity {
			delete(m.values, k)
		}
	}
}

// Snapshot returns a copy of all entries in unspecified order.
func (m *MemStore) Snapshot() []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := make([]Entry, 0, len(m.values))
	for k, v := range m.values {
		entries = append(entries, Entry{Entity: k.Entity, Node: k.Node, Value: v})
	}
	return entries
}

// Restore replaces the store contents with the given entries.
func (m *MemStore) Restore(entries []Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values = make(map[Key]float64, len(entries))
	for _, e := range entries {
		m.values[Key{Entity: e.Entity, Node: e.Node}] = e.Value
	}
}
