package graph

import "math"

// Pure evaluators: functions of resolved inputs and the tick context only.
// Socket names follow the authoring convention: the primary input is "in",
// the primary output is "out".

// evalTime taps the captured simulation time.
func evalTime(n *Node, in inputs, tc *tickContext) map[string]Value {
	return map[string]Value{"out": Scalar(tc.Time)}
}

// evalValue emits the authored constant in data.value.
func evalValue(n *Node, in inputs, tc *tickContext) map[string]Value {
	return map[string]Value{"out": Scalar(n.floatData("value", 0))}
}

// evalMathMult multiplies "in" by "factor". The factor may arrive wired or
// as a data constant; an unconnected, unauthored factor multiplies by 1 so
// a bare MathMult passes its input through.
func evalMathMult(n *Node, in inputs, tc *tickContext) map[string]Value {
	factor := in.Float("factor", n.floatData("factor", 1))
	return map[string]Value{"out": Scalar(in.Float("in", 0) * factor)}
}

func evalMathSin(n *Node, in inputs, tc *tickContext) map[string]Value {
	return map[string]Value{"out": Scalar(math.Sin(in.Float("in", 0)))}
}

func evalMathCos(n *Node, in inputs, tc *tickContext) map[string]Value {
	return map[string]Value{"out": Scalar(math.Cos(in.Float("in", 0)))}
}

// evalMathMap linearly remaps "in" from [inMin, inMax] to [outMin, outMax].
// Unclamped: values outside the input range extrapolate. A degenerate input
// range maps everything to outMin.
func evalMathMap(n *Node, in inputs, tc *tickContext) map[string]Value {
	inMin := in.Float("inMin", n.floatData("inMin", 0))
	inMax := in.Float("inMax", n.floatData("inMax", 1))
	outMin := in.Float("outMin", n.floatData("outMin", 0))
	outMax := in.Float("outMax", n.floatData("outMax", 1))

	v := in.Float("in", 0)
	if inMax == inMin {
		return map[string]Value{"out": Scalar(outMin)}
	}
	t := (v - inMin) / (inMax - inMin)
	return map[string]Value{"out": Scalar(outMin + t*(outMax-outMin))}
}

// evalConvertPolar converts (radius, angle) polar coordinates to a
// Cartesian geometry point. The angle is in radians. An optional "z" input
// passes through as the third component.
func evalConvertPolar(n *Node, in inputs, tc *tickContext) map[string]Value {
	radius := in.Float("radius", n.floatData("radius", 0))
	angle := in.Float("angle", n.floatData("angle", 0))
	z := in.Float("z", n.floatData("z", 0))

	return map[string]Value{
		"out": Vector(radius*math.Cos(angle), radius*math.Sin(angle), z),
	}
}

// evalAudioAnalyze taps the per-tick audio feature snapshot.
//
// data.feature selects "amplitude" (default) or "frequency"; data.track
// selects a logical track, falling back to the full mix when the track is
// absent from the snapshot.
func evalAudioAnalyze(n *Node, in inputs, tc *tickContext) map[string]Value {
	amplitude := tc.Audio.Amplitude
	frequency := tc.Audio.Frequency

	if track := n.stringData("track", ""); track != "" {
		if t, ok := tc.Audio.Tracks[track]; ok {
			amplitude = t.Amplitude
			frequency = t.Frequency
		}
	}

	selected := amplitude
	if n.stringData("feature", "amplitude") == "frequency" {
		selected = frequency
	}

	return map[string]Value{
		"out":       Scalar(selected),
		"amplitude": Scalar(amplitude),
		"frequency": Scalar(frequency),
	}
}

// evalInputReceiver taps the named external input snapshot: terminal press
// states, controller axes, AI-supplied controls. Missing names read as 0.
func evalInputReceiver(n *Node, in inputs, tc *tickContext) map[string]Value {
	id := n.stringData("inputId", "")
	return map[string]Value{"out": Scalar(tc.Input[id])}
}
