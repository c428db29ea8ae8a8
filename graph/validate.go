package graph

import (
	"fmt"
	"strings"
)

// Issue is one structural problem found in a graph or binding.
type Issue struct {
	// Code classifies the problem: "DANGLING_SOURCE", "DANGLING_TARGET",
	// "SOCKET_NOT_FOUND", "DUPLICATE_INPUT_EDGE", "DUPLICATE_NODE",
	// "PORT_UNMAPPED".
	Code string

	// NodeID, EdgeID, and PortID locate the problem where applicable.
	NodeID string
	EdgeID string
	PortID string

	// Message is the human-readable description.
	Message string
}

func (i Issue) String() string {
	return i.Code + ": " + i.Message
}

// ValidationError reports every structural problem in a graph at once, so
// authoring tools can surface the full list instead of the first hit.
//
// Validation runs at load and bind time, never during per-tick evaluation.
type ValidationError struct {
	GraphID string
	Issues  []Issue
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "graph %q is invalid (%d issues)", e.GraphID, len(e.Issues))
	for _, issue := range e.Issues {
		b.WriteString("; ")
		b.WriteString(issue.String())
	}
	return b.String()
}

// Validate checks a graph's static shape: every edge endpoint must resolve
// to an existing node and a socket of the matching direction, and at most
// one edge may feed a given input socket. Returns nil or a
// *ValidationError listing every problem.
func Validate(g *Graph) error {
	issues := structuralIssues(g)
	if len(issues) == 0 {
		return nil
	}
	return &ValidationError{GraphID: g.ID, Issues: issues}
}

func structuralIssues(g *Graph) []Issue {
	var issues []Issue

	seen := make(map[socketRef]string, len(g.Edges))
	for _, e := range g.Edges {
		src, ok := g.Nodes[e.SourceNode]
		if !ok {
			issues = append(issues, Issue{
				Code:    "DANGLING_SOURCE",
				EdgeID:  e.ID,
				NodeID:  e.SourceNode,
				Message: fmt.Sprintf("edge %q references missing source node %q", e.ID, e.SourceNode),
			})
		} else if _, ok := src.output(e.SourceSocket); !ok {
			issues = append(issues, Issue{
				Code:    "SOCKET_NOT_FOUND",
				EdgeID:  e.ID,
				NodeID:  e.SourceNode,
				Message: fmt.Sprintf("edge %q references missing output socket %q on node %q", e.ID, e.SourceSocket, e.SourceNode),
			})
		}

		tgt, ok := g.Nodes[e.TargetNode]
		if !ok {
			issues = append(issues, Issue{
				Code:    "DANGLING_TARGET",
				EdgeID:  e.ID,
				NodeID:  e.TargetNode,
				Message: fmt.Sprintf("edge %q references missing target node %q", e.ID, e.TargetNode),
			})
			continue
		}
		if _, ok := tgt.input(e.TargetSocket); !ok {
			issues = append(issues, Issue{
				Code:    "SOCKET_NOT_FOUND",
				EdgeID:  e.ID,
				NodeID:  e.TargetNode,
				Message: fmt.Sprintf("edge %q references missing input socket %q on node %q", e.ID, e.TargetSocket, e.TargetNode),
			})
			continue
		}

		ref := socketRef{node: e.TargetNode, socket: e.TargetSocket}
		if first, dup := seen[ref]; dup {
			issues = append(issues, Issue{
				Code:    "DUPLICATE_INPUT_EDGE",
				EdgeID:  e.ID,
				NodeID:  e.TargetNode,
				Message: fmt.Sprintf("edges %q and %q both feed input socket %q on node %q", first, e.ID, e.TargetSocket, e.TargetNode),
			})
		} else {
			seen[ref] = e.ID
		}
	}

	return issues
}

// ValidateBinding checks a composite entity's binding: the graph itself
// plus every port mapping, which must name an existing boundary node of the
// matching kind. Returns nil or a *ValidationError listing every problem.
func ValidateBinding(b Binding) error {
	if b.Graph == nil {
		return &EngineError{Message: "binding graph cannot be nil"}
	}

	issues := structuralIssues(b.Graph)

	for _, m := range b.Ports {
		n, ok := b.Graph.Nodes[m.Node]
		if !ok {
			issues = append(issues, Issue{
				Code:    "PORT_UNMAPPED",
				PortID:  m.Port,
				NodeID:  m.Node,
				Message: fmt.Sprintf("port %q maps to missing node %q", m.Port, m.Node),
			})
			continue
		}
		if n.Kind != KindGraphInput && n.Kind != KindGraphOutput {
			issues = append(issues, Issue{
				Code:    "PORT_UNMAPPED",
				PortID:  m.Port,
				NodeID:  m.Node,
				Message: fmt.Sprintf("port %q maps to node %q of kind %q, want a boundary node", m.Port, m.Node, n.Kind),
			})
		}
	}

	if len(issues) == 0 {
		return nil
	}
	return &ValidationError{GraphID: b.Graph.ID, Issues: issues}
}
