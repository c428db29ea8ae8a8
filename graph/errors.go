package graph

// EngineError represents an error from Engine or Graph operations.
//
// Per-tick evaluation never returns one: node-level failures degrade to
// neutral values with a diagnostic event instead. EngineError surfaces from
// construction, binding, and document paths only.
type EngineError struct {
	Message string
	Code    string
}

func (e *EngineError) Error() string {
	if e.Code != "" {
		return e.Code + ": " + e.Message
	}
	return e.Message
}
