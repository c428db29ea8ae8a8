package emit

// NullEmitter implements Emitter by discarding all events.
//
// Use it when diagnostics are unwanted, e.g. tight render loops in release
// builds, or tests that don't inspect events. Safe for concurrent use, zero
// overhead.
type NullEmitter struct{}

// NewNullEmitter creates a new NullEmitter.
func NewNullEmitter() *NullEmitter {
	return &NullEmitter{}
}

// Emit discards the event without any processing.
func (n *NullEmitter) Emit(event Event) {
	// No-op: discard the event
}
