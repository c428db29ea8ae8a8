package graph

// Kind identifies a node's evaluation behavior. The set is closed for
// authored documents; hosts may extend an Engine with RegisterKind.
type Kind string

const (
	// Pure kinds: functions of resolved inputs and the tick context.
	KindTime         Kind = "Time"
	KindValue        Kind = "Value"
	KindMathMult     Kind = "MathMult"
	KindMathSin      Kind = "MathSin"
	KindMathCos      Kind = "MathCos"
	KindMathMap      Kind = "MathMap"
	KindConvertPolar Kind = "ConvertPolar"
	KindAudioAnalyze Kind = "AudioAnalyze"

	// Stateful kinds: read and write per-entity state across ticks.
	KindStat          Kind = "Stat"
	KindStepSequencer Kind = "StepSequencer"
	KindThreshold     Kind = "Threshold"

	// Sink kinds: publish values or side-effect requests to the caller.
	KindImpulse        Kind = "Impulse"
	KindTriggerEvent   Kind = "TriggerEvent"
	KindAudioTrigger   Kind = "AudioTrigger"
	KindVisualOutput   Kind = "VisualOutput"
	KindPropertyOutput Kind = "PropertyOutput"

	// Boundary kinds: a sub-graph's external interface.
	KindGraphInput  Kind = "GraphInput"
	KindGraphOutput Kind = "GraphOutput"

	// Input kinds: taps into the captured external input snapshot.
	KindInputReceiver Kind = "InputReceiver"
)

// Category classifies a kind for tooling and validation. It does not affect
// dispatch; evaluation behavior lives entirely in the evaluator.
type Category string

const (
	CategoryPure     Category = "pure"
	CategoryStateful Category = "stateful"
	CategorySink     Category = "sink"
	CategoryBoundary Category = "boundary"
	CategoryInput    Category = "input"
)

// evalFunc computes all output socket values of one node for one tick.
// Inputs arrive already resolved, keyed by input socket name. The returned
// map is keyed by output socket name; the resolver caches every entry so a
// multi-output node is evaluated once per tick regardless of fan-out.
type evalFunc func(n *Node, in inputs, tc *tickContext) map[string]Value

// inputs holds the resolved input values of a node, keyed by socket name.
type inputs map[string]Value

// Float returns the named input as a scalar, or fallback when absent.
func (in inputs) Float(name string, fallback float64) float64 {
	if v, ok := in[name]; ok {
		return v.Float()
	}
	return fallback
}

// Vec returns the named input as a vector.
func (in inputs) Vec(name string) Vec3 {
	return in[name].Vec3()
}

// kindSpec is one entry in the Engine's kind registry.
type kindSpec struct {
	Category Category
	Eval     evalFunc
}

// defaultKinds builds the registry table for the closed kind set. The table
// is constructed once per Engine and passed by reference into resolution;
// there is no mutable package-global registration.
func defaultKinds() map[Kind]kindSpec {
	return map[Kind]kindSpec{
		KindTime:         {CategoryPure, evalTime},
		KindValue:        {CategoryPure, evalValue},
		KindMathMult:     {CategoryPure, evalMathMult},
		KindMathSin:      {CategoryPure, evalMathSin},
		KindMathCos:      {CategoryPure, evalMathCos},
		KindMathMap:      {CategoryPure, evalMathMap},
		KindConvertPolar: {CategoryPure, evalConvertPolar},
		KindAudioAnalyze: {CategoryPure, evalAudioAnalyze},

		KindStat:          {CategoryStateful, evalStat},
		KindStepSequencer: {CategoryStateful, evalStepSequencer},
		KindThreshold:     {CategoryStateful, evalThreshold},

		KindImpulse:        {CategorySink, evalImpulse},
		KindTriggerEvent:   {CategorySink, evalTriggerEvent},
		KindAudioTrigger:   {CategorySink, evalAudioTrigger},
		KindVisualOutput:   {CategorySink, evalVisualOutput},
		KindPropertyOutput: {CategorySink, evalPropertyOutput},

		KindGraphInput:  {CategoryBoundary, evalGraphInput},
		KindGraphOutput: {CategoryBoundary, evalGraphOutput},

		KindInputReceiver: {CategoryInput, evalInputReceiver},
	}
}
