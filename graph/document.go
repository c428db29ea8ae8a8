package graph

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Graph documents: the serialized authoring format.
//
// A document is the editor's view of a graph. Evaluation ignores layout
// metadata (node positions, editor annotations), but documents must
// round-trip unchanged, so unknown per-node fields are retained verbatim
// and re-emitted on encode.

// document is the wire shape of a graph. Nodes are a list in documents and
// a map in memory.
type document struct {
	ID    string         `json:"id"`
	Nodes []documentNode `json:"nodes"`
	Edges []Edge         `json:"edges"`
}

// documentNode wraps Node with retention of unknown fields.
type documentNode struct {
	node *Node
}

// knownNodeField reports whether the engine interprets a node-level
// document key. Everything else is editor metadata.
func knownNodeField(key string) bool {
	switch key {
	case "id", "kind", "inputs", "outputs", "data":
		return true
	}
	return false
}

func (d *documentNode) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	n := &Node{}
	if raw, ok := fields["id"]; ok {
		if err := json.Unmarshal(raw, &n.ID); err != nil {
			return fmt.Errorf("node id: %w", err)
		}
	}
	if raw, ok := fields["kind"]; ok {
		if err := json.Unmarshal(raw, &n.Kind); err != nil {
			return fmt.Errorf("node kind: %w", err)
		}
	}
	if raw, ok := fields["inputs"]; ok {
		if err := json.Unmarshal(raw, &n.Inputs); err != nil {
			return fmt.Errorf("node inputs: %w", err)
		}
	}
	if raw, ok := fields["outputs"]; ok {
		if err := json.Unmarshal(raw, &n.Outputs); err != nil {
			return fmt.Errorf("node outputs: %w", err)
		}
	}
	if raw, ok := fields["data"]; ok {
		if err := json.Unmarshal(raw, &n.Data); err != nil {
			return fmt.Errorf("node data: %w", err)
		}
	}

	for key, raw := range fields {
		if knownNodeField(key) {
			continue
		}
		if n.meta == nil {
			n.meta = make(map[string]json.RawMessage)
		}
		n.meta[key] = raw
	}

	d.node = n
	return nil
}

func (d documentNode) MarshalJSON() ([]byte, error) {
	n := d.node

	fields := make(map[string]json.RawMessage, 5+len(n.meta))
	put := func(key string, v any) error {
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("node %s: %w", key, err)
		}
		fields[key] = raw
		return nil
	}

	if err := put("id", n.ID); err != nil {
		return nil, err
	}
	if err := put("kind", n.Kind); err != nil {
		return nil, err
	}
	if len(n.Inputs) > 0 {
		if err := put("inputs", n.Inputs); err != nil {
			return nil, err
		}
	}
	if len(n.Outputs) > 0 {
		if err := put("outputs", n.Outputs); err != nil {
			return nil, err
		}
	}
	if len(n.Data) > 0 {
		if err := put("data", n.Data); err != nil {
			return nil, err
		}
	}
	for key, raw := range n.meta {
		fields[key] = raw
	}

	return json.Marshal(fields)
}

// DecodeDocument parses a JSON graph document, validates it, and returns
// the graph. Duplicate node ids and structural problems are load-time
// errors; they never surface during evaluation.
func DecodeDocument(data []byte) (*Graph, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse graph document: %w", err)
	}

	g := NewGraph(doc.ID)
	var issues []Issue
	for _, dn := range doc.Nodes {
		if err := g.Add(dn.node); err != nil {
			issues = append(issues, Issue{
				Code:    "DUPLICATE_NODE",
				NodeID:  dn.node.ID,
				Message: err.Error(),
			})
		}
	}
	g.Edges = doc.Edges

	issues = append(issues, structuralIssues(g)...)
	if len(issues) > 0 {
		return nil, &ValidationError{GraphID: doc.ID, Issues: issues}
	}
	return g, nil
}

// EncodeDocument serializes a graph back to its JSON document form,
// including any retained editor metadata. Nodes are emitted sorted by id so
// encoding is deterministic.
func EncodeDocument(g *Graph) ([]byte, error) {
	ids := make([]string, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	sortStrings(ids)

	doc := document{ID: g.ID, Edges: g.Edges}
	for _, id := range ids {
		doc.Nodes = append(doc.Nodes, documentNode{node: g.Nodes[id]})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode graph document: %w", err)
	}
	return data, nil
}

// DecodeDocumentYAML parses a YAML graph document by converting it to the
// JSON document shape first. YAML is an authoring convenience; JSON is the
// canonical format and the only one EncodeDocument emits.
func DecodeDocumentYAML(data []byte) (*Graph, error) {
	var tree any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("failed to parse YAML graph document: %w", err)
	}

	jsonData, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("failed to convert YAML graph document: %w", err)
	}
	return DecodeDocument(jsonData)
}
