package graph

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
)

func readTestdata(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return data
}

func TestDecodeDocument(t *testing.T) {
	g, err := DecodeDocument(readTestdata(t, "orbit.json"))
	if err != nil {
		t.Fatalf("DecodeDocument: %v", err)
	}

	if g.ID != "orbit" {
		t.Errorf("graph id = %q, want orbit", g.ID)
	}
	if len(g.Nodes) != 3 || len(g.Edges) != 2 {
		t.Fatalf("got %d nodes, %d edges, want 3 and 2", len(g.Nodes), len(g.Edges))
	}

	mult := g.Nodes["mult"]
	if mult.Kind != KindMathMult {
		t.Errorf("mult kind = %q, want %q", mult.Kind, KindMathMult)
	}
	if got := mult.floatData("factor", 0); got != 2 {
		t.Errorf("mult factor = %v, want 2", got)
	}

	// A decoded document evaluates like a hand-built graph.
	eng := New(nil, nil, Options{})
	point := eng.EvaluateGeometry(g, Tick{EntityID: "e1", Time: 1.5})
	if point.X != 3 || point.Y != 3 || point.Z != 3 {
		t.Errorf("point = %+v, want (3, 3, 3)", point)
	}
}

func TestEncodeDocumentCanonicalForm(t *testing.T) {
	g, err := DecodeDocument(readTestdata(t, "orbit.json"))
	if err != nil {
		t.Fatalf("DecodeDocument: %v", err)
	}

	// Encoding is canonical: nodes sorted by id, node fields sorted by
	// key, editor metadata (here the "position" objects) re-emitted.
	data, err := EncodeDocument(g)
	if err != nil {
		t.Fatalf("EncodeDocument: %v", err)
	}

	gold := goldie.New(t)
	gold.Assert(t, "orbit_encoded", data)
}

func TestDocumentRoundTripIsStable(t *testing.T) {
	g, err := DecodeDocument(readTestdata(t, "orbit.json"))
	if err != nil {
		t.Fatalf("DecodeDocument: %v", err)
	}
	first, err := EncodeDocument(g)
	if err != nil {
		t.Fatalf("EncodeDocument: %v", err)
	}

	g2, err := DecodeDocument(first)
	if err != nil {
		t.Fatalf("DecodeDocument(encoded): %v", err)
	}
	second, err := EncodeDocument(g2)
	if err != nil {
		t.Fatalf("EncodeDocument(second): %v", err)
	}

	if string(first) != string(second) {
		t.Errorf("encoding is not a fixed point:\nfirst:\n%s\nsecond:\n%s", first, second)
	}
}

func TestDecodeDocumentRejectsInvalid(t *testing.T) {
	t.Run("malformed JSON", func(t *testing.T) {
		if _, err := DecodeDocument([]byte("{not json")); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("duplicate node ids", func(t *testing.T) {
		doc := []byte(`{
			"id": "dup",
			"nodes": [
				{"id": "a", "kind": "Value"},
				{"id": "a", "kind": "Value"}
			],
			"edges": []
		}`)
		_, err := DecodeDocument(doc)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("error = %v, want *ValidationError", err)
		}
		if len(ve.Issues) != 1 || ve.Issues[0].Code != "DUPLICATE_NODE" {
			t.Errorf("issues = %+v, want one DUPLICATE_NODE", ve.Issues)
		}
	})

	t.Run("dangling edge", func(t *testing.T) {
		doc := []byte(`{
			"id": "dangling",
			"nodes": [
				{"id": "a", "kind": "Value", "outputs": [{"id": "out", "name": "out", "type": "value"}]}
			],
			"edges": [
				{"id": "e0", "sourceNodeId": "a", "sourceSocketId": "out", "targetNodeId": "b", "targetSocketId": "in"}
			]
		}`)
		_, err := DecodeDocument(doc)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("error = %v, want *ValidationError", err)
		}
		if ve.Issues[0].Code != "DANGLING_TARGET" {
			t.Errorf("code = %q, want DANGLING_TARGET", ve.Issues[0].Code)
		}
	})
}

func TestDecodeDocumentYAML(t *testing.T) {
	doc := []byte(`
id: orbit
nodes:
  - id: time
    kind: Time
    outputs:
      - id: out
        name: out
        type: value
  - id: mult
    kind: MathMult
    data:
      factor: 2
    inputs:
      - id: in
        name: in
        type: value
      - id: factor
        name: factor
        type: value
    outputs:
      - id: out
        name: out
        type: value
  - id: vis
    kind: VisualOutput
    inputs:
      - id: in
        name: in
        type: geometry
    outputs:
      - id: out
        name: out
        type: geometry
edges:
  - id: e0
    sourceNodeId: time
    sourceSocketId: out
    targetNodeId: mult
    targetSocketId: in
  - id: e1
    sourceNodeId: mult
    sourceSocketId: out
    targetNodeId: vis
    targetSocketId: in
`)

	g, err := DecodeDocumentYAML(doc)
	if err != nil {
		t.Fatalf("DecodeDocumentYAML: %v", err)
	}

	eng := New(nil, nil, Options{})
	point := eng.EvaluateGeometry(g, Tick{EntityID: "e1", Time: 1.5})
	if point.X != 3 {
		t.Errorf("point.X = %v, want 3", point.X)
	}

	t.Run("malformed YAML", func(t *testing.T) {
		if _, err := DecodeDocumentYAML([]byte(":\n  - ][")); err == nil {
			t.Error("expected parse error")
		}
	})
}
