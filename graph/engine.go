package graph

import (
	"sync"

	"github.com/dshills/siggraph-go/graph/emit"
	"github.com/dshills/siggraph-go/graph/state"
)

// Engine evaluates signal graphs once per entity per simulation tick.
//
// The Engine is the embedded runtime that:
//   - Resolves requested output sockets backward through edges, on demand
//   - Memoizes per call so shared subgraphs evaluate once per tick
//   - Dispatches each node kind through an explicit registry table
//   - Consults and mutates the per-entity state store for stateful kinds
//   - Collects sink requests (impulses, events, audio hits) for the host
//   - Guards against same-tick cycles and unknown kinds without aborting
//   - Emits diagnostics and, optionally, Prometheus metrics
//
// Evaluation is synchronous and runs entirely over the captured
// Tick inputs; the only shared mutable resource is the state store, which
// is touched only for the entity being evaluated.
//
// Example:
//
//	store := state.NewMemStore()
//	emitter := emit.NewLogEmitter(os.Stderr, false)
//
//	engine := graph.New(store, emitter, graph.Options{})
//	point := engine.EvaluateGeometry(g, graph.Tick{
//	    EntityID: "player-1",
//	    Time:     t,
//	})
type Engine struct {
	mu sync.RWMutex

	// kinds is the dispatch table, built once at construction.
	kinds map[Kind]kindSpec

	// state holds per-entity persistent values.
	state state.Store

	// emitter receives diagnostics (optional, may be nil).
	emitter emit.Emitter

	// metrics records Prometheus metrics (optional, may be nil).
	metrics *Metrics

	// bindings maps entity ids to their graph and port mappings.
	bindings map[string]Binding

	// opts contains evaluation configuration.
	opts Options
}

// Options configures Engine evaluation behavior. Zero values are valid.
type Options struct {
	// MaxDepth bounds resolver recursion. 0 uses DefaultMaxDepth. Graphs
	// deeper than this resolve their tail to neutral values.
	MaxDepth int

	// Metrics, when non-nil, records evaluation metrics.
	Metrics *Metrics
}

// DefaultMaxDepth is the recursion bound applied when Options.MaxDepth is 0.
// Authored graphs are shallow; a chain this long is almost certainly a
// cycle the guard should cut.
const DefaultMaxDepth = 64

// New creates an Engine over the given state store.
//
// Parameters:
//   - st: per-entity state store (required; NewMemStore for the default)
//   - emitter: diagnostics receiver (optional, may be nil)
//   - opts: evaluation configuration
func New(st state.Store, emitter emit.Emitter, opts Options) *Engine {
	if st == nil {
		st = state.NewMemStore()
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	return &Engine{
		kinds:    defaultKinds(),
		state:    st,
		emitter:  emitter,
		metrics:  opts.Metrics,
		bindings: make(map[string]Binding),
		opts:     opts,
	}
}

// RegisterKind adds or replaces a kind in the Engine's dispatch table.
//
// Hosts use it to expose domain-specific taps without forking the engine;
// tests use it for instrumented stub kinds. Not safe to call concurrently
// with evaluation.
func (e *Engine) RegisterKind(kind Kind, category Category, eval func(n *Node, resolved map[string]Value, tick Tick) map[string]Value) error {
	if kind == "" {
		return &EngineError{Message: "kind cannot be empty"}
	}
	if eval == nil {
		return &EngineError{Message: "evaluator cannot be nil"}
	}
	e.kinds[kind] = kindSpec{
		Category: category,
		Eval: func(n *Node, in inputs, tc *tickContext) map[string]Value {
			return eval(n, map[string]Value(in), tc.Tick)
		},
	}
	return nil
}

// EvaluateGeometry resolves the graph's VisualOutput sink and returns the
// entity's geometry point for this tick. Graphs without a VisualOutput
// yield the zero point.
func (e *Engine) EvaluateGeometry(g *Graph, tick Tick) Point3 {
	defer e.metrics.timeEvaluation("geometry")()

	var point Point3
	tc := e.newTickContext(g, tick)
	tc.geometry = &point

	for _, id := range g.nodesOfKind(KindVisualOutput) {
		tc.resolve(id, "out")
	}
	return point
}

// EvaluateProperties resolves every PropertyOutput sink and returns the
// entity's named scalar properties for this tick.
func (e *Engine) EvaluateProperties(g *Graph, tick Tick) map[string]float64 {
	defer e.metrics.timeEvaluation("properties")()

	tc := e.newTickContext(g, tick)
	tc.props = make(map[string]float64)

	for _, id := range g.nodesOfKind(KindPropertyOutput) {
		tc.resolve(id, "out")
	}
	return tc.props
}

// EvaluateLogic resolves every Impulse, TriggerEvent, and AudioTrigger sink
// and returns the side-effect bundle the host should apply: the physics
// actuator consumes the impulse, the event bus the events, the audio layer
// the audio triggers.
func (e *Engine) EvaluateLogic(g *Graph, tick Tick) LogicResult {
	defer e.metrics.timeEvaluation("logic")()

	tc := e.newTickContext(g, tick)
	tc.sinks = &LogicResult{}

	for _, id := range g.nodesOfKind(KindImpulse, KindTriggerEvent, KindAudioTrigger) {
		tc.resolve(id, "out")
	}
	return *tc.sinks
}

// GetState returns the stored value for (entity, node), or 0 when absent.
// Hosts use it for debugging overlays and persistence checks; graph code
// reads state through stateful kinds instead.
func (e *Engine) GetState(entityID, nodeID string) float64 {
	v, _ := e.state.Get(entityID, nodeID)
	return v
}

// ResetState drops per-entity state: all of it when entityID is empty, or
// one entity's. Stat accumulators return to their initial values and edge
// detectors re-arm on the next evaluation.
func (e *Engine) ResetState(entityID string) {
	if entityID == "" {
		e.state.ResetAll()
		return
	}
	e.state.ResetEntity(entityID)
}
