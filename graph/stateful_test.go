package graph

import "testing"

// statGraph wires an InputReceiver delta into a Stat accumulator and taps
// the running total as a property.
func statGraph(t *testing.T, initial float64) *Graph {
	return buildGraph(t, "health", []*Node{
		testNode("delta", KindInputReceiver, map[string]any{"inputId": "delta"}, nil, valueOut("out")),
		testNode("hp", KindStat, map[string]any{"initialValue": initial}, valueIn("modify"), valueOut("out")),
		testNode("p", KindPropertyOutput, map[string]any{"name": "health"}, valueIn("in"), valueOut("out")),
	}, []wire{
		{"delta", "out", "hp", "modify"},
		{"hp", "out", "p", "in"},
	})
}

func TestStatAccumulation(t *testing.T) {
	eng := New(nil, nil, Options{})
	g := statGraph(t, 100)

	deltas := []float64{-10, -10, -5}
	want := []float64{90, 80, 75}

	for i, d := range deltas {
		tick := Tick{EntityID: "e1", Time: float64(i), Input: InputSnapshot{"delta": d}}
		got := eng.EvaluateProperties(g, tick)["health"]
		if got != want[i] {
			t.Errorf("tick %d: health = %v, want %v", i, got, want[i])
		}
	}

	if got := eng.GetState("e1", "hp"); got != 75 {
		t.Errorf("stored state = %v, want 75", got)
	}
}

func TestStatResetRestoresInitial(t *testing.T) {
	eng := New(nil, nil, Options{})
	g := statGraph(t, 100)

	tick := Tick{EntityID: "e1", Input: InputSnapshot{"delta": -40}}
	if got := eng.EvaluateProperties(g, tick)["health"]; got != 60 {
		t.Fatalf("pre-reset health = %v, want 60", got)
	}

	eng.ResetState("e1")

	tick.Input = InputSnapshot{"delta": 0}
	if got := eng.EvaluateProperties(g, tick)["health"]; got != 100 {
		t.Errorf("post-reset health = %v, want 100", got)
	}
}

func TestStatStatePerEntity(t *testing.T) {
	eng := New(nil, nil, Options{})
	g := statGraph(t, 100)

	hit := func(entity string, delta float64) float64 {
		tick := Tick{EntityID: entity, Input: InputSnapshot{"delta": delta}}
		return eng.EvaluateProperties(g, tick)["health"]
	}

	if got := hit("e1", -30); got != 70 {
		t.Errorf("e1 health = %v, want 70", got)
	}
	if got := hit("e2", -5); got != 95 {
		t.Errorf("e2 health = %v, want 95", got)
	}

	// Resetting one entity leaves the other untouched.
	eng.ResetState("e1")
	if got := hit("e1", 0); got != 100 {
		t.Errorf("e1 after reset = %v, want 100", got)
	}
	if got := hit("e2", 0); got != 95 {
		t.Errorf("e2 after e1 reset = %v, want 95", got)
	}
}

func TestStepSequencerPulsesOncePerHitStep(t *testing.T) {
	eng := New(nil, nil, Options{})
	g := buildGraph(t, "seq", []*Node{
		testNode("seq", KindStepSequencer, map[string]any{"bpm": 60.0, "pattern": "x.x."},
			valueIn("bpm"), append(triggerIO("out"), valueOut("step")...)),
		testNode("p", KindPropertyOutput, map[string]any{"name": "pulse"}, valueIn("in"), valueOut("out")),
	}, []wire{
		{"seq", "out", "p", "in"},
	})

	// At 60 bpm each pattern symbol spans one second. Two ticks inside
	// step 0 pulse once; the rest step at t=1 stays silent; the hit at
	// t=2 pulses again.
	cases := []struct {
		time float64
		want float64
	}{
		{0, 1},
		{0.5, 0},
		{1, 0},
		{2, 1},
	}

	for _, tc := range cases {
		tick := Tick{EntityID: "e1", Time: tc.time}
		if got := eng.EvaluateProperties(g, tick)["pulse"]; got != tc.want {
			t.Errorf("t=%v: pulse = %v, want %v", tc.time, got, tc.want)
		}
	}
}

func TestStepSequencerStepIndexWraps(t *testing.T) {
	eng := New(nil, nil, Options{})
	g := buildGraph(t, "seq", []*Node{
		testNode("seq", KindStepSequencer, map[string]any{"bpm": 120.0, "pattern": "x..x"},
			valueIn("bpm"), append(triggerIO("out"), valueOut("step")...)),
		testNode("p", KindPropertyOutput, map[string]any{"name": "step"}, valueIn("in"), valueOut("out")),
	}, []wire{
		{"seq", "step", "p", "in"},
	})

	// 120 bpm: half-second steps, four-symbol pattern, two-second loop.
	cases := []struct {
		time float64
		want float64
	}{
		{0, 0},
		{0.6, 1},
		{1.7, 3},
		{2.1, 0}, // wrapped
	}

	for _, tc := range cases {
		tick := Tick{EntityID: "e1", Time: tc.time}
		if got := eng.EvaluateProperties(g, tick)["step"]; got != tc.want {
			t.Errorf("t=%v: step = %v, want %v", tc.time, got, tc.want)
		}
	}
}

func TestStepSequencerEmptyPatternIsSilent(t *testing.T) {
	eng := New(nil, nil, Options{})
	g := buildGraph(t, "seq", []*Node{
		testNode("seq", KindStepSequencer, map[string]any{"bpm": 60.0},
			valueIn("bpm"), append(triggerIO("out"), valueOut("step")...)),
		testNode("p", KindPropertyOutput, map[string]any{"name": "pulse"}, valueIn("in"), valueOut("out")),
	}, []wire{
		{"seq", "out", "p", "in"},
	})

	for _, tm := range []float64{0, 1, 2} {
		if got := eng.EvaluateProperties(g, Tick{EntityID: "e1", Time: tm})["pulse"]; got != 0 {
			t.Errorf("t=%v: pulse = %v, want 0", tm, got)
		}
	}
}
