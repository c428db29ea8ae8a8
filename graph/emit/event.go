package emit

// Event represents an observability event emitted during graph evaluation.
//
// The engine emits events for node-level diagnostics (cycle guard trips,
// unknown node kinds, recursion depth overflows), port protocol traffic,
// and entity lifecycle. Events are delivered to an Emitter which can:
//   - Log to stdout/stderr
//   - Send to OpenTelemetry
//   - Buffer in memory for inspection
type Event struct {
	// EntityID identifies the entity instance that was being evaluated.
	// Empty string for engine-level events.
	EntityID string

	// GraphID identifies the authored graph involved.
	GraphID string

	// NodeID identifies which node produced this event.
	// Empty string for graph-level events.
	NodeID string

	// Msg is a short machine-matchable event name.
	// Common values: "cycle_detected", "depth_exceeded", "unknown_kind",
	// "port_write", "port_read", "entity_bound", "entity_released".
	Msg string

	// Meta contains additional structured data specific to this event.
	// Common keys:
	//   - "socket": socket id involved
	//   - "port": port id involved
	//   - "value": scalar value involved
	//   - "kind": node kind string
	//   - "depth": resolver recursion depth at the time
	Meta map[string]interface{}
}
