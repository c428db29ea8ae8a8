package graph

// EmittedEvent is a discrete game event requested by a TriggerEvent sink.
// The host's event bus consumes it; the engine only records the request.
type EmittedEvent struct {
	// ID uniquely identifies this emission for downstream dedupe.
	ID string `json:"id"`

	// Type is the authored event name, e.g. "explode", "damage".
	Type string `json:"type"`

	// Payload is the resolved payload input at the moment of firing.
	Payload float64 `json:"payload"`
}

// AudioTriggerRequest is a one-shot audio hit requested by an AudioTrigger
// sink, consumed by the host's audio playback layer.
type AudioTriggerRequest struct {
	// Instrument names the logical instrument or sample bank.
	Instrument string `json:"instrument"`

	// Index selects a sample within the instrument.
	Index int `json:"index"`

	// Pitch is a playback rate multiplier (1 = authored pitch).
	Pitch float64 `json:"pitch"`

	// Gain is the playback gain in [0, 1].
	Gain float64 `json:"gain"`
}

// LogicResult is the side-effect bundle produced by EvaluateLogic for one
// entity and one tick. The host applies it: physics actuator consumes the
// impulse, event bus consumes Events, audio sink consumes AudioTriggers.
type LogicResult struct {
	// Impulse is the requested force, nil when no Impulse sink fired.
	// When several Impulse sinks fire in one tick their vectors sum.
	Impulse *Vec3 `json:"impulse,omitempty"`

	// ImpulseLocal selects local- vs world-space application.
	ImpulseLocal bool `json:"impulseIsLocal,omitempty"`

	// Events are the discrete game events requested this tick.
	Events []EmittedEvent `json:"emittedEvents,omitempty"`

	// AudioTriggers are the one-shot audio hits requested this tick.
	AudioTriggers []AudioTriggerRequest `json:"audioTriggers,omitempty"`
}

// addImpulse accumulates one Impulse sink's request. Vectors from several
// sinks sum; the local flag of the last firing sink wins.
func (r *LogicResult) addImpulse(dir Vec3, local bool) {
	if r.Impulse == nil {
		r.Impulse = &Vec3{}
	}
	r.Impulse.X += dir.X
	r.Impulse.Y += dir.Y
	r.Impulse.Z += dir.Z
	r.ImpulseLocal = local
}
