package graph

// AudioSnapshot is the host-captured audio feature frame for one tick.
//
// The engine only reads it; feature extraction happens upstream. Tracks
// carries per-logical-track features keyed by track name for graphs that
// analyze a single stem (e.g. "drums", "bass") instead of the full mix.
type AudioSnapshot struct {
	// Amplitude is the full-mix amplitude in [0, 1].
	Amplitude float64

	// Frequency is the dominant frequency of the mix, in Hz.
	Frequency float64

	// Tracks holds per-track features, keyed by logical track name.
	Tracks map[string]AudioTrack
}

// AudioTrack is one logical track's feature set within an AudioSnapshot.
type AudioTrack struct {
	Amplitude float64
	Frequency float64
}

// InputSnapshot is the host-captured named external input state for one
// tick: terminal press states, controller axes, AI-supplied controls.
// Missing names read as 0.
type InputSnapshot map[string]float64

// Tick carries everything a single evaluation call may read: the identity
// of the entity being evaluated plus the already-captured frame inputs.
// The engine never reaches past a Tick to a clock or device; that keeps
// evaluation deterministic for fixed inputs and fixed prior state.
type Tick struct {
	// EntityID identifies the entity instance whose state is in play.
	EntityID string

	// Time is the simulation time in seconds, from the host's monotonic
	// time source.
	Time float64

	// Audio is the per-tick audio feature snapshot.
	Audio AudioSnapshot

	// Input is the per-tick named external input snapshot.
	Input InputSnapshot
}
