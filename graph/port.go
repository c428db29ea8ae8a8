package graph

import "github.com/dshills/siggraph-go/graph/emit"

// Port mapping: the protocol layer letting heterogeneous entities expose
// standard named ports backed by arbitrary internal graphs. A projectile's
// graph computes a damage amount and writes it into any entity implementing
// a "damageable" protocol; neither side knows the other's internal shape.

// PortDirection tells whether a port accepts writes or serves reads.
type PortDirection string

const (
	// PortIn ports accept WritePort and map to a GraphInput node.
	PortIn PortDirection = "in"

	// PortOut ports serve ReadPort and map to a GraphOutput node.
	PortOut PortDirection = "out"
)

// PortDefinition is the static, externally visible shape of one port.
type PortDefinition struct {
	ID        string        `json:"id"`
	Direction PortDirection `json:"direction"`
	ValueType ValueType     `json:"valueType"`
}

// PortMapping binds a named port to exactly one boundary node's socket.
type PortMapping struct {
	Port   string `json:"externalPortId"`
	Node   string `json:"internalNodeId"`
	Socket string `json:"internalSocketId"`
}

// Binding associates an entity instance with its internal graph and the
// port mappings exposing that graph's boundary nodes.
type Binding struct {
	Graph *Graph
	Ports []PortMapping
}

// BindEntity registers an entity's graph and port mappings.
//
// Every mapping is checked against the graph: the mapped node must exist
// and be a boundary node (GraphInput for writable ports, GraphOutput for
// readable ones). Rebinding an id replaces the previous binding; state is
// kept so a graph swap preserves accumulated values.
func (e *Engine) BindEntity(entityID string, b Binding) error {
	if entityID == "" {
		return &EngineError{Message: "entity ID cannot be empty"}
	}
	if err := ValidateBinding(b); err != nil {
		return err
	}

	e.mu.Lock()
	e.bindings[entityID] = b
	e.mu.Unlock()

	e.emitEngine(entityID, b.Graph.ID, "entity_bound", nil)
	return nil
}

// ReleaseEntity drops an entity's binding and all of its state.
func (e *Engine) ReleaseEntity(entityID string) {
	e.mu.Lock()
	b, ok := e.bindings[entityID]
	delete(e.bindings, entityID)
	e.mu.Unlock()

	e.state.ResetEntity(entityID)

	if ok {
		e.emitEngine(entityID, b.Graph.ID, "entity_released", nil)
	}
}

// Ports returns the bound entity's port definitions, derived from its
// mappings and the mapped boundary nodes' socket types.
func (e *Engine) Ports(entityID string) []PortDefinition {
	e.mu.RLock()
	b, ok := e.bindings[entityID]
	e.mu.RUnlock()
	if !ok {
		return nil
	}

	defs := make([]PortDefinition, 0, len(b.Ports))
	for _, m := range b.Ports {
		n := b.Graph.Nodes[m.Node]
		def := PortDefinition{ID: m.Port, ValueType: TypeValue}
		if n.Kind == KindGraphInput {
			def.Direction = PortIn
			if s, ok := n.output(m.Socket); ok {
				def.ValueType = s.Type
			}
		} else {
			def.Direction = PortOut
			if s, ok := n.input(m.Socket); ok {
				def.ValueType = s.Type
			}
		}
		defs = append(defs, def)
	}
	return defs
}

// WritePort injects a value at the GraphInput node mapped to the port. The
// next evaluation of that boundary node returns it; until overwritten, it
// keeps returning it.
func (e *Engine) WritePort(entityID, portID string, value float64) error {
	b, m, err := e.lookupPort(entityID, portID)
	if err != nil {
		return err
	}

	n := b.Graph.Nodes[m.Node]
	if n.Kind != KindGraphInput {
		return &EngineError{
			Message: "port " + portID + " is not writable",
			Code:    "PORT_NOT_WRITABLE",
		}
	}

	e.state.Set(entityID, m.Node, value)
	e.metrics.recordPortWrite()
	e.emitEngine(entityID, b.Graph.ID, "port_write", map[string]interface{}{
		"port":  portID,
		"value": value,
	})
	return nil
}

// ReadPort resolves the GraphOutput node mapped to the port and returns its
// current value for the given tick. The read evaluates the subgraph behind
// the boundary node with a fresh tick cache; the tick's EntityID is forced
// to the bound entity so the right state is consulted.
func (e *Engine) ReadPort(entityID, portID string, tick Tick) (float64, error) {
	b, m, err := e.lookupPort(entityID, portID)
	if err != nil {
		return 0, err
	}

	n := b.Graph.Nodes[m.Node]
	if n.Kind != KindGraphOutput {
		return 0, &EngineError{
			Message: "port " + portID + " is not readable",
			Code:    "PORT_NOT_READABLE",
		}
	}

	tick.EntityID = entityID
	tc := e.newTickContext(b.Graph, tick)
	v := tc.resolve(m.Node, "out")

	e.metrics.recordPortRead()
	e.emitEngine(entityID, b.Graph.ID, "port_read", map[string]interface{}{
		"port":  portID,
		"value": v.Float(),
	})
	return v.Float(), nil
}

func (e *Engine) lookupPort(entityID, portID string) (Binding, PortMapping, error) {
	e.mu.RLock()
	b, ok := e.bindings[entityID]
	e.mu.RUnlock()
	if !ok {
		return Binding{}, PortMapping{}, &EngineError{
			Message: "entity not bound: " + entityID,
			Code:    "ENTITY_NOT_BOUND",
		}
	}

	for _, m := range b.Ports {
		if m.Port == portID {
			return b, m, nil
		}
	}
	return Binding{}, PortMapping{}, &EngineError{
		Message: "port not found: " + portID,
		Code:    "PORT_NOT_FOUND",
	}
}

func (e *Engine) emitEngine(entityID, graphID, msg string, meta map[string]interface{}) {
	if e.emitter == nil {
		return
	}
	e.emitter.Emit(emit.Event{
		EntityID: entityID,
		GraphID:  graphID,
		Msg:      msg,
		Meta:     meta,
	})
}
