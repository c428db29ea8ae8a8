package graph

import "github.com/dshills/siggraph-go/graph/emit"

// tickContext is the per-entry-point evaluation scope: the captured Tick
// plus the memoization cache, cycle guard, sink collectors, and diagnostic
// dedupe for one call. It is never reused across calls; sharing a cache
// across entities or ticks would silently propagate stale values.
type tickContext struct {
	Tick

	g   *Graph
	eng *Engine

	// cache memoizes resolved socket values. A node feeding N consumers is
	// evaluated once per call, even through diamond-shaped fan-out.
	cache map[socketRef]Value

	// visiting marks nodes whose inputs are currently being resolved; a
	// re-entry is a same-tick cycle and resolves to the neutral value.
	visiting map[string]bool

	// depth bounds recursion as a second line of defense.
	depth int

	// sinks collects side-effect requests (EvaluateLogic / ReadPort).
	sinks *LogicResult

	// props collects PropertyOutput publications (EvaluateProperties).
	props map[string]float64

	// geometry receives the VisualOutput point (EvaluateGeometry).
	geometry *Point3

	// warned dedupes diagnostics within the call: one event per
	// (node, message) occurrence, not one per resolution attempt.
	warned map[socketRef]bool
}

func (e *Engine) newTickContext(g *Graph, tick Tick) *tickContext {
	return &tickContext{
		Tick:     tick,
		g:        g,
		eng:      e,
		cache:    make(map[socketRef]Value),
		visiting: make(map[string]bool),
	}
}

// warnOnce emits a diagnostic event at most once per (node, msg) per call.
func (tc *tickContext) warnOnce(nodeID, msg string, meta map[string]interface{}) {
	if tc.warned == nil {
		tc.warned = make(map[socketRef]bool)
	}
	key := socketRef{node: nodeID, socket: msg}
	if tc.warned[key] {
		return
	}
	tc.warned[key] = true

	if tc.eng.emitter != nil {
		tc.eng.emitter.Emit(emit.Event{
			EntityID: tc.EntityID,
			GraphID:  tc.g.ID,
			NodeID:   nodeID,
			Msg:      msg,
			Meta:     meta,
		})
	}
}

// resolve computes the value of one output socket, pulling inputs on demand.
//
// The algorithm:
//  1. Memo hit → return the cached value.
//  2. Cycle or depth overflow → neutral value, diagnosed once. Feedback
//     across ticks belongs in stateful nodes reading previous-tick state,
//     not in same-tick cyclic wiring.
//  3. Resolve every input socket by following its single inbound edge,
//     recursing into the source; unconnected inputs fall back to the data
//     constant named after the socket, or 0.
//  4. Dispatch to the kind's evaluator; unknown kinds are neutral.
//  5. Cache every output of the node, then return the requested one.
func (tc *tickContext) resolve(nodeID, socketID string) Value {
	ref := socketRef{node: nodeID, socket: socketID}
	if v, ok := tc.cache[ref]; ok {
		tc.eng.metrics.recordCacheHit()
		return v
	}

	n, ok := tc.g.Nodes[nodeID]
	if !ok {
		tc.warnOnce(nodeID, "missing_node", nil)
		return Value{}
	}

	if tc.visiting[nodeID] {
		tc.eng.metrics.recordCycle()
		tc.warnOnce(nodeID, "cycle_detected", map[string]interface{}{"socket": socketID})
		return Value{}
	}
	if tc.depth >= tc.eng.opts.MaxDepth {
		tc.eng.metrics.recordCycle()
		tc.warnOnce(nodeID, "depth_exceeded", map[string]interface{}{"depth": tc.depth})
		return Value{}
	}

	tc.visiting[nodeID] = true
	tc.depth++

	in := make(inputs, len(n.Inputs))
	for _, s := range n.Inputs {
		if edge := tc.g.edgeInto(n.ID, s.ID); edge != nil {
			in[s.Name] = tc.resolve(edge.SourceNode, edge.SourceSocket)
		} else if _, has := n.Data[s.Name]; has {
			in[s.Name] = Scalar(n.floatData(s.Name, 0))
		}
	}

	tc.depth--
	delete(tc.visiting, nodeID)

	spec, known := tc.eng.kinds[n.Kind]
	if !known {
		tc.eng.metrics.recordUnknownKind(string(n.Kind))
		tc.warnOnce(nodeID, "unknown_kind", map[string]interface{}{"kind": string(n.Kind)})
		tc.cache[ref] = Value{}
		return Value{}
	}

	tc.eng.metrics.recordNodeEval(string(n.Kind))
	outs := spec.Eval(n, in, tc)

	// Cache by output socket name and, where declared, by socket id; edges
	// reference ids while evaluators speak names.
	for name, v := range outs {
		tc.cache[socketRef{node: nodeID, socket: name}] = v
	}
	for _, s := range n.Outputs {
		if v, ok := outs[s.Name]; ok {
			tc.cache[socketRef{node: nodeID, socket: s.ID}] = v
		}
	}

	return tc.cache[ref]
}
