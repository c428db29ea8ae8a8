// Package state provides the per-entity persistent value store backing
// stateful node kinds, boundary-node port injections, and edge detection.
package state

import "errors"

// ErrNotFound is returned when a requested snapshot label does not exist.
var ErrNotFound = errors.New("not found")

// Key addresses one persistent value: a composite of entity instance and
// node id. A struct key avoids per-frame string concatenation and hashing
// of joined keys on the evaluation hot path.
type Key struct {
	Entity string
	Node   string
}

// Entry is one (key, value) pair, used for snapshot transfer.
type Entry struct {
	Entity string  `json:"entity"`
	Node   string  `json:"node"`
	Value  float64 `json:"value"`
}

// Store holds per-entity, per-node scalar state that survives across ticks
// until explicit reset.
//
// Lookups never fail: missing keys report !ok and callers fall back to
// their kind-specific default (0 or an authored initial value). Graphs are
// shared immutable data; only this state is per-instance.
type Store interface {
	// Get returns the stored value for (entity, node). ok is false when
	// the key has never been written.
	Get(entity, node string) (value float64, ok bool)

	// Set stores a value for (entity, node), creating the entry lazily.
	Set(entity, node string, value float64)

	// ResetAll drops every entry (simulation restart).
	ResetAll()

	// ResetEntity drops every entry belonging to one entity (entity
	// removal).
	ResetEntity(entity string)

	// Snapshot returns a copy of all entries in unspecified order.
	Snapshot() []Entry

	// Restore replaces the store contents with the given entries.
	Restore(entries []Entry)
}
