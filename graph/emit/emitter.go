package emit

// Emitter receives and processes observability events from graph evaluation.
//
// Emitters enable pluggable observability backends:
//   - Logging: stdout, files, syslog
//   - Distributed tracing: OpenTelemetry, Jaeger, Zipkin
//   - In-memory capture for tests and dashboards
//
// Implementations should be:
//   - Non-blocking: evaluation runs once per entity per frame; a slow
//     emitter stalls the tick loop
//   - Thread-safe: a multithreaded host may evaluate disjoint entities
//     concurrently
//   - Resilient: handle backend failures without crashing evaluation
type Emitter interface {
	// Emit sends an observability event to the configured backend.
	//
	// Emit must not panic and must not block the tick loop. Backend
	// errors should be handled internally (buffer, drop, log).
	Emit(event Event)
}
