package graph

import "testing"

// Test graph construction helpers. Socket ids equal socket names here;
// document tests cover id/name divergence.

func sockets(vt ValueType, names ...string) []Socket {
	out := make([]Socket, len(names))
	for i, name := range names {
		out[i] = Socket{ID: name, Name: name, Type: vt}
	}
	return out
}

func valueIn(names ...string) []Socket   { return sockets(TypeValue, names...) }
func valueOut(names ...string) []Socket  { return sockets(TypeValue, names...) }
func triggerIO(names ...string) []Socket { return sockets(TypeTrigger, names...) }
func geoIO(names ...string) []Socket     { return sockets(TypeGeometry, names...) }

func testNode(id string, kind Kind, data map[string]any, ins, outs []Socket) *Node {
	return &Node{ID: id, Kind: kind, Data: data, Inputs: ins, Outputs: outs}
}

// wire is one edge as [sourceNode, sourceSocket, targetNode, targetSocket].
type wire [4]string

func buildGraph(t *testing.T, id string, nodes []*Node, wires []wire) *Graph {
	t.Helper()

	g := NewGraph(id)
	for _, n := range nodes {
		if err := g.Add(n); err != nil {
			t.Fatalf("Add(%s): %v", n.ID, err)
		}
	}
	for i, w := range wires {
		if err := g.Connect(edgeID(i), w[0], w[1], w[2], w[3]); err != nil {
			t.Fatalf("Connect(%v): %v", w, err)
		}
	}
	if err := Validate(g); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	return g
}

func edgeID(i int) string {
	return "e" + string(rune('0'+i))
}

// orbitGraph is the running example: Time → MathMult(factor) → MathSin →
// VisualOutput.
func orbitGraph(t *testing.T, factor float64) *Graph {
	return buildGraph(t, "orbit", []*Node{
		testNode("time", KindTime, nil, nil, valueOut("out")),
		testNode("mult", KindMathMult, map[string]any{"factor": factor}, valueIn("in", "factor"), valueOut("out")),
		testNode("sin", KindMathSin, nil, valueIn("in"), valueOut("out")),
		testNode("vis", KindVisualOutput, nil, geoIO("in"), geoIO("out")),
	}, []wire{
		{"time", "out", "mult", "in"},
		{"mult", "out", "sin", "in"},
		{"sin", "out", "vis", "in"},
	})
}

func almostEqual(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-9
}
