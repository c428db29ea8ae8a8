package graph

import "encoding/json"

// Socket is a named, typed input or output slot on a node.
type Socket struct {
	ID   string    `json:"id"`
	Name string    `json:"name"`
	Type ValueType `json:"type"`
}

// Node is one typed processing unit in a signal graph.
//
// Data holds kind-specific constants (a multiplier, a BPM and pattern
// string, an initial value, ...). An input socket with no incoming edge
// resolves to the Data constant keyed by the socket's name, or 0.
type Node struct {
	ID      string         `json:"id"`
	Kind    Kind           `json:"kind"`
	Inputs  []Socket       `json:"inputs,omitempty"`
	Outputs []Socket       `json:"outputs,omitempty"`
	Data    map[string]any `json:"data,omitempty"`

	// meta carries editor-only fields (layout position and anything else
	// this engine does not interpret) so documents round-trip unchanged.
	meta map[string]json.RawMessage
}

// floatData returns a numeric Data constant, or fallback when absent or not
// a number. JSON decoding produces float64; authored graphs may hold ints.
func (n *Node) floatData(key string, fallback float64) float64 {
	switch v := n.Data[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return fallback
		}
		return f
	default:
		return fallback
	}
}

// stringData returns a string Data constant, or fallback when absent.
func (n *Node) stringData(key, fallback string) string {
	if s, ok := n.Data[key].(string); ok {
		return s
	}
	return fallback
}

// boolData returns a boolean Data constant, or fallback when absent.
func (n *Node) boolData(key string, fallback bool) bool {
	if b, ok := n.Data[key].(bool); ok {
		return b
	}
	return fallback
}

// input returns the input socket with the given id.
func (n *Node) input(socketID string) (Socket, bool) {
	for _, s := range n.Inputs {
		if s.ID == socketID {
			return s, true
		}
	}
	return Socket{}, false
}

// output returns the output socket with the given id.
func (n *Node) output(socketID string) (Socket, bool) {
	for _, s := range n.Outputs {
		if s.ID == socketID {
			return s, true
		}
	}
	return Socket{}, false
}

// Edge connects exactly one output socket to exactly one input socket.
type Edge struct {
	ID           string `json:"id"`
	SourceNode   string `json:"sourceNodeId"`
	SourceSocket string `json:"sourceSocketId"`
	TargetNode   string `json:"targetNodeId"`
	TargetSocket string `json:"targetSocketId"`
}

// Graph is an authored signal program: typed nodes connected by edges.
//
// Graphs are authored once and shared by reference across entity instances;
// only per-entity state lives elsewhere (see the state package). A Graph
// must not be mutated after it is handed to an Engine.
type Graph struct {
	ID    string           `json:"id"`
	Nodes map[string]*Node `json:"nodes"`
	Edges []Edge           `json:"edges"`

	// inbound indexes the single edge feeding each input socket, keyed by
	// (targetNode, targetSocket). Built lazily, read on the per-tick hot
	// path instead of scanning Edges.
	inbound map[socketRef]*Edge
}

// socketRef identifies one socket on one node. Used as the memoization and
// edge-index key; a struct key avoids string concatenation per lookup.
type socketRef struct {
	node   string
	socket string
}

// NewGraph creates an empty graph with the given id.
func NewGraph(id string) *Graph {
	return &Graph{
		ID:    id,
		Nodes: make(map[string]*Node),
	}
}

// Add registers a node. Returns an error for empty or duplicate ids; ids
// must be unique within a graph.
func (g *Graph) Add(n *Node) error {
	if n == nil {
		return &EngineError{Message: "node cannot be nil"}
	}
	if n.ID == "" {
		return &EngineError{Message: "node ID cannot be empty"}
	}
	if _, exists := g.Nodes[n.ID]; exists {
		return &EngineError{
			Message: "duplicate node ID: " + n.ID,
			Code:    "DUPLICATE_NODE",
		}
	}
	g.Nodes[n.ID] = n
	g.inbound = nil
	return nil
}

// Connect adds an edge from an output socket to an input socket.
//
// Endpoint existence is not checked here (graphs may be wired before all
// nodes are added); Validate performs the full structural check at load
// time.
func (g *Graph) Connect(id, sourceNode, sourceSocket, targetNode, targetSocket string) error {
	if sourceNode == "" || targetNode == "" {
		return &EngineError{Message: "edge endpoints cannot be empty"}
	}
	g.Edges = append(g.Edges, Edge{
		ID:           id,
		SourceNode:   sourceNode,
		SourceSocket: sourceSocket,
		TargetNode:   targetNode,
		TargetSocket: targetSocket,
	})
	g.inbound = nil
	return nil
}

// edgeInto returns the edge feeding the given input socket, if any.
func (g *Graph) edgeInto(nodeID, socketID string) *Edge {
	if g.inbound == nil {
		g.buildIndex()
	}
	return g.inbound[socketRef{node: nodeID, socket: socketID}]
}

// buildIndex populates the inbound edge index. Later edges win when two
// edges target the same input socket; Validate rejects that shape, so the
// index is deterministic for validated graphs either way.
func (g *Graph) buildIndex() {
	g.inbound = make(map[socketRef]*Edge, len(g.Edges))
	for i := range g.Edges {
		e := &g.Edges[i]
		g.inbound[socketRef{node: e.TargetNode, socket: e.TargetSocket}] = e
	}
}

// nodesOfKind returns the ids of all nodes of the given kinds in a
// deterministic order (sorted by id). Entry points use it to locate sinks.
func (g *Graph) nodesOfKind(kinds ...Kind) []string {
	var ids []string
	for id, n := range g.Nodes {
		for _, k := range kinds {
			if n.Kind == k {
				ids = append(ids, id)
				break
			}
		}
	}
	sortStrings(ids)
	return ids
}

// sortStrings is an insertion sort; sink sets are small and this keeps the
// hot path free of package sort's interface conversions.
func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j] < s[j-1]; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}
