package graph

import (
	"errors"
	"testing"

	"github.com/dshills/siggraph-go/graph/emit"
)

// damageableGraph exposes a writable "damage" port feeding a Stat and a
// readable "health" port serving the running total.
func damageableGraph(t *testing.T) *Graph {
	return buildGraph(t, "damageable", []*Node{
		testNode("dmgIn", KindGraphInput, nil, nil, valueOut("out")),
		testNode("hp", KindStat, map[string]any{"initialValue": 100.0}, valueIn("modify"), valueOut("out")),
		testNode("hpOut", KindGraphOutput, nil, valueIn("in"), valueOut("out")),
	}, []wire{
		{"dmgIn", "out", "hp", "modify"},
		{"hp", "out", "hpOut", "in"},
	})
}

func damageableBinding(t *testing.T) Binding {
	return Binding{
		Graph: damageableGraph(t),
		Ports: []PortMapping{
			{Port: "damage", Node: "dmgIn", Socket: "out"},
			{Port: "health", Node: "hpOut", Socket: "in"},
		},
	}
}

func TestWritePortFeedsGraphInput(t *testing.T) {
	eng := New(nil, nil, Options{})

	g := buildGraph(t, "scaled", []*Node{
		testNode("in", KindGraphInput, map[string]any{"initialValue": 3.0}, nil, valueOut("out")),
		testNode("mult", KindMathMult, map[string]any{"factor": 2.0}, valueIn("in", "factor"), valueOut("out")),
		testNode("p", KindPropertyOutput, map[string]any{"name": "scaled"}, valueIn("in"), valueOut("out")),
	}, []wire{
		{"in", "out", "mult", "in"},
		{"mult", "out", "p", "in"},
	})
	if err := eng.BindEntity("e1", Binding{Graph: g, Ports: []PortMapping{{Port: "x", Node: "in", Socket: "out"}}}); err != nil {
		t.Fatalf("BindEntity: %v", err)
	}

	// Before any write, GraphInput serves its authored initial value.
	if got := eng.EvaluateProperties(g, Tick{EntityID: "e1"})["scaled"]; got != 6 {
		t.Errorf("initial scaled = %v, want 6", got)
	}

	if err := eng.WritePort("e1", "x", 10); err != nil {
		t.Fatalf("WritePort: %v", err)
	}
	if got := eng.EvaluateProperties(g, Tick{EntityID: "e1"})["scaled"]; got != 20 {
		t.Errorf("scaled after write = %v, want 20", got)
	}

	// Injected values persist until overwritten.
	if got := eng.EvaluateProperties(g, Tick{EntityID: "e1", Time: 1})["scaled"]; got != 20 {
		t.Errorf("scaled next tick = %v, want 20", got)
	}
}

func TestReadPortResolvesGraphOutput(t *testing.T) {
	eng := New(nil, nil, Options{})

	g := buildGraph(t, "clock", []*Node{
		testNode("time", KindTime, nil, nil, valueOut("out")),
		testNode("mult", KindMathMult, map[string]any{"factor": 2.0}, valueIn("in", "factor"), valueOut("out")),
		testNode("out", KindGraphOutput, nil, valueIn("in"), valueOut("out")),
	}, []wire{
		{"time", "out", "mult", "in"},
		{"mult", "out", "out", "in"},
	})
	if err := eng.BindEntity("e1", Binding{Graph: g, Ports: []PortMapping{{Port: "speed", Node: "out", Socket: "in"}}}); err != nil {
		t.Fatalf("BindEntity: %v", err)
	}

	got, err := eng.ReadPort("e1", "speed", Tick{Time: 3})
	if err != nil {
		t.Fatalf("ReadPort: %v", err)
	}
	if got != 6 {
		t.Errorf("ReadPort = %v, want 6", got)
	}
}

func TestPortProtocolRoundTrip(t *testing.T) {
	eng := New(nil, nil, Options{})
	if err := eng.BindEntity("target", damageableBinding(t)); err != nil {
		t.Fatalf("BindEntity: %v", err)
	}

	// A projectile writes damage; the host then reads back health. The
	// Stat applies the pending delta on its next evaluation.
	if err := eng.WritePort("target", "damage", -30); err != nil {
		t.Fatalf("WritePort: %v", err)
	}
	got, err := eng.ReadPort("target", "health", Tick{})
	if err != nil {
		t.Fatalf("ReadPort: %v", err)
	}
	if got != 70 {
		t.Errorf("health = %v, want 70", got)
	}
}

func TestPortErrors(t *testing.T) {
	eng := New(nil, nil, Options{})
	if err := eng.BindEntity("e1", damageableBinding(t)); err != nil {
		t.Fatalf("BindEntity: %v", err)
	}

	wantCode := func(t *testing.T, err error, code string) {
		t.Helper()
		var ee *EngineError
		if !errors.As(err, &ee) {
			t.Fatalf("error = %v, want *EngineError", err)
		}
		if ee.Code != code {
			t.Errorf("code = %q, want %q", ee.Code, code)
		}
	}

	t.Run("unbound entity", func(t *testing.T) {
		err := eng.WritePort("ghost", "damage", 1)
		wantCode(t, err, "ENTITY_NOT_BOUND")
	})

	t.Run("unknown port", func(t *testing.T) {
		err := eng.WritePort("e1", "mana", 1)
		wantCode(t, err, "PORT_NOT_FOUND")
	})

	t.Run("write to out port", func(t *testing.T) {
		err := eng.WritePort("e1", "health", 1)
		wantCode(t, err, "PORT_NOT_WRITABLE")
	})

	t.Run("read from in port", func(t *testing.T) {
		_, err := eng.ReadPort("e1", "damage", Tick{})
		wantCode(t, err, "PORT_NOT_READABLE")
	})
}

func TestBindEntityValidatesMappings(t *testing.T) {
	eng := New(nil, nil, Options{})
	g := damageableGraph(t)

	t.Run("missing node", func(t *testing.T) {
		err := eng.BindEntity("e1", Binding{
			Graph: g,
			Ports: []PortMapping{{Port: "damage", Node: "nope", Socket: "out"}},
		})
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("error = %v, want *ValidationError", err)
		}
		if len(ve.Issues) != 1 || ve.Issues[0].Code != "PORT_UNMAPPED" {
			t.Errorf("issues = %+v, want one PORT_UNMAPPED", ve.Issues)
		}
	})

	t.Run("non-boundary node", func(t *testing.T) {
		err := eng.BindEntity("e1", Binding{
			Graph: g,
			Ports: []PortMapping{{Port: "damage", Node: "hp", Socket: "out"}},
		})
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("error = %v, want *ValidationError", err)
		}
		if ve.Issues[0].Code != "PORT_UNMAPPED" {
			t.Errorf("code = %q, want PORT_UNMAPPED", ve.Issues[0].Code)
		}
	})

	t.Run("empty entity id", func(t *testing.T) {
		if err := eng.BindEntity("", damageableBinding(t)); err == nil {
			t.Error("expected error for empty entity id")
		}
	})

	t.Run("nil graph", func(t *testing.T) {
		if err := eng.BindEntity("e1", Binding{}); err == nil {
			t.Error("expected error for nil graph")
		}
	})
}

func TestPortsDerivesDefinitions(t *testing.T) {
	eng := New(nil, nil, Options{})
	if err := eng.BindEntity("e1", damageableBinding(t)); err != nil {
		t.Fatalf("BindEntity: %v", err)
	}

	defs := eng.Ports("e1")
	if len(defs) != 2 {
		t.Fatalf("got %d definitions, want 2", len(defs))
	}

	want := map[string]PortDefinition{
		"damage": {ID: "damage", Direction: PortIn, ValueType: TypeValue},
		"health": {ID: "health", Direction: PortOut, ValueType: TypeValue},
	}
	for _, def := range defs {
		if def != want[def.ID] {
			t.Errorf("port %q = %+v, want %+v", def.ID, def, want[def.ID])
		}
	}

	if got := eng.Ports("ghost"); got != nil {
		t.Errorf("Ports(ghost) = %+v, want nil", got)
	}
}

func TestReleaseEntityDropsBindingAndState(t *testing.T) {
	buf := emit.NewBufferedEmitter()
	eng := New(nil, buf, Options{})
	if err := eng.BindEntity("e1", damageableBinding(t)); err != nil {
		t.Fatalf("BindEntity: %v", err)
	}

	if err := eng.WritePort("e1", "damage", -10); err != nil {
		t.Fatalf("WritePort: %v", err)
	}
	eng.ReleaseEntity("e1")

	if err := eng.WritePort("e1", "damage", -10); err == nil {
		t.Error("write after release should fail")
	}
	if got := eng.GetState("e1", "dmgIn"); got != 0 {
		t.Errorf("state after release = %v, want 0", got)
	}

	released := buf.HistoryWithFilter("e1", emit.HistoryFilter{Msg: "entity_released"})
	if len(released) != 1 {
		t.Errorf("entity_released events = %d, want 1", len(released))
	}
}
