package graph

import "github.com/google/uuid"

// Sink evaluators: publish values or side-effect requests to the entry
// point that resolved them. Sinks never act on the world themselves; they
// record requests into the tick's collector and the host applies them.

// evalImpulse requests a force on the owning entity.
//
// The direction arrives on the "direction" geometry input (or as data
// dx/dy/dz constants), scaled by "strength". An optional "active" trigger
// input gates the request: when wired, the impulse is only requested while
// the level is high. data.local selects local- vs entity-space application;
// the physics actuator interprets the flag.
func evalImpulse(n *Node, in inputs, tc *tickContext) map[string]Value {
	active := true
	if _, wired := in["active"]; wired {
		active = in["active"].High()
	}

	if active && tc.sinks != nil {
		dir := Vec3{
			X: n.floatData("dx", 0),
			Y: n.floatData("dy", 0),
			Z: n.floatData("dz", 0),
		}
		if v, wired := in["direction"]; wired {
			dir = v.Vec3()
		}
		strength := in.Float("strength", n.floatData("strength", 1))
		dir.X *= strength
		dir.Y *= strength
		dir.Z *= strength

		tc.sinks.addImpulse(dir, n.boolData("local", false))
	}

	return map[string]Value{"out": Scalar(0)}
}

// evalTriggerEvent requests emission of a named event with a payload.
// Edge-detected: a held trigger level produces one event, re-armed when the
// level drops.
func evalTriggerEvent(n *Node, in inputs, tc *tickContext) map[string]Value {
	high := in["trigger"].High()

	if tc.risingEdge(n.ID, high) && tc.sinks != nil {
		tc.sinks.Events = append(tc.sinks.Events, EmittedEvent{
			ID:      uuid.NewString(),
			Type:    n.stringData("event", ""),
			Payload: in.Float("payload", n.floatData("payload", 0)),
		})
	}

	return map[string]Value{"out": Scalar(boolToFloat(high))}
}

// evalAudioTrigger requests a one-shot audio hit. Edge-detected like
// TriggerEvent so a sequencer step or held condition plays once.
func evalAudioTrigger(n *Node, in inputs, tc *tickContext) map[string]Value {
	high := in["trigger"].High()

	if tc.risingEdge(n.ID, high) && tc.sinks != nil {
		tc.sinks.AudioTriggers = append(tc.sinks.AudioTriggers, AudioTriggerRequest{
			Instrument: n.stringData("instrument", ""),
			Index:      int(in.Float("index", n.floatData("index", 0))),
			Pitch:      in.Float("pitch", n.floatData("pitch", 1)),
			Gain:       in.Float("gain", n.floatData("gain", 1)),
		})
	}

	return map[string]Value{"out": Scalar(boolToFloat(high))}
}

// evalVisualOutput publishes the graph's geometry point for this tick.
func evalVisualOutput(n *Node, in inputs, tc *tickContext) map[string]Value {
	v := in["in"]
	if tc.geometry != nil {
		p := v.Vec3()
		*tc.geometry = p
	}
	return map[string]Value{"out": v}
}

// evalPropertyOutput publishes a named scalar property for this tick under
// data.name.
func evalPropertyOutput(n *Node, in inputs, tc *tickContext) map[string]Value {
	v := in.Float("in", 0)
	if tc.props != nil {
		name := n.stringData("name", n.ID)
		tc.props[name] = v
	}
	return map[string]Value{"out": Scalar(v)}
}

// evalGraphInput returns the value most recently injected for this
// (entity, node) through the port mapping layer, defaulting to
// data.initialValue (or 0) when never written.
func evalGraphInput(n *Node, in inputs, tc *tickContext) map[string]Value {
	v, ok := tc.eng.state.Get(tc.EntityID, n.ID)
	if !ok {
		v = n.floatData("initialValue", 0)
	}
	return map[string]Value{"out": Scalar(v)}
}

// evalGraphOutput forwards its single input to the boundary context. Port
// reads resolve this node's output socket.
func evalGraphOutput(n *Node, in inputs, tc *tickContext) map[string]Value {
	return map[string]Value{"out": in["in"]}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
