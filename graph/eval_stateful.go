package graph

// Stateful evaluators: read and write the per-entity state store. State
// entries are created lazily on first evaluation for an entity and survive
// until the entity is released or the store is reset.

// evalStat accumulates its "modify" input into a per-entity value seeded
// from data.initialValue, and outputs the new total. The substrate for
// health, ammo, scores: any named quantity other graphs adjust by wiring
// deltas into modify.
func evalStat(n *Node, in inputs, tc *tickContext) map[string]Value {
	current, ok := tc.eng.state.Get(tc.EntityID, n.ID)
	if !ok {
		current = n.floatData("initialValue", 0)
	}

	current += in.Float("modify", 0)
	tc.eng.state.Set(tc.EntityID, n.ID, current)

	return map[string]Value{"out": Scalar(current)}
}

// evalStepSequencer maps the tick time onto a fixed-length pattern of hit
// and rest symbols and pulses its trigger output when a hit step begins.
//
// data.bpm sets the step rate (one pattern symbol per beat); data.pattern
// is a string where 'x', 'X' and '1' are hits and anything else rests. The
// previously seen step index is stored per entity so each hit step fires
// exactly one pulse no matter how many ticks land inside it, and
// consecutive hits produce distinct pulses.
func evalStepSequencer(n *Node, in inputs, tc *tickContext) map[string]Value {
	pattern := n.stringData("pattern", "")
	bpm := in.Float("bpm", n.floatData("bpm", 120))
	if len(pattern) == 0 || bpm <= 0 {
		return map[string]Value{"out": Scalar(0), "step": Scalar(0)}
	}

	stepDur := 60.0 / bpm
	step := int(tc.Time/stepDur) % len(pattern)
	if step < 0 {
		step += len(pattern)
	}

	pulse := 0.0
	prev, seen := tc.eng.state.Get(tc.EntityID, n.ID)
	if !seen || int(prev) != step {
		tc.eng.state.Set(tc.EntityID, n.ID, float64(step))
		if isHit(pattern[step]) {
			pulse = 1
		}
	}

	return map[string]Value{
		"out":  Scalar(pulse),
		"step": Scalar(float64(step)),
	}
}

func isHit(symbol byte) bool {
	return symbol == 'x' || symbol == 'X' || symbol == '1'
}

// evalThreshold compares "in" against data.level (default 0.5) and outputs
// a trigger-type level that is high exactly while in >= level.
//
// The output is a continuous level, not a one-shot: deriving a single event
// from the low→high transition is the consuming sink's job, via the shared
// edge detector. Keeping detection in one place means a held condition
// fires once regardless of how many sinks watch it.
func evalThreshold(n *Node, in inputs, tc *tickContext) map[string]Value {
	level := in.Float("level", n.floatData("level", 0.5))
	out := 0.0
	if in.Float("in", 0) >= level {
		out = 1
	}
	return map[string]Value{"out": Scalar(out)}
}
