// Package graph provides the core signal graph evaluation engine for SigGraph-Go.
package graph

// ValueType classifies what a socket carries.
//
// The three types:
//   - TypeValue: a continuous scalar signal
//   - TypeTrigger: a 0/1 level signal; sinks derive discrete events from its
//     low→high transitions (see risingEdge)
//   - TypeGeometry: a 3D point or vector
type ValueType string

const (
	TypeValue    ValueType = "value"
	TypeTrigger  ValueType = "trigger"
	TypeGeometry ValueType = "geometry"
)

// Vec3 is a 3D vector. Geometry sockets and impulse requests carry one.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Point3 is an evaluated geometry output. Alias of Vec3 for readability at
// the host API boundary.
type Point3 = Vec3

// Value is the unit of data flowing along an edge during evaluation.
//
// A Value is either a scalar or a vector. The zero Value is the neutral
// value of every type: scalar 0, zero vector, trigger low. Evaluators that
// fail resolve to it rather than erroring (node-level failures degrade
// locally, they never halt sibling evaluation).
type Value struct {
	vec      Vec3
	scalar   float64
	isVector bool
}

// Scalar wraps a float64 as a socket Value.
func Scalar(f float64) Value {
	return Value{scalar: f}
}

// Vector wraps a 3D vector as a socket Value.
func Vector(x, y, z float64) Value {
	return Value{vec: Vec3{X: x, Y: y, Z: z}, isVector: true}
}

// Float returns the scalar view of the value. For vectors it returns the X
// component, which keeps accidental vector→scalar wiring continuous instead
// of discontinuously zero.
func (v Value) Float() float64 {
	if v.isVector {
		return v.vec.X
	}
	return v.scalar
}

// Vec3 returns the vector view of the value. Scalars broadcast to (s, s, s).
func (v Value) Vec3() Vec3 {
	if v.isVector {
		return v.vec
	}
	return Vec3{X: v.scalar, Y: v.scalar, Z: v.scalar}
}

// IsVector reports whether the value was produced as geometry.
func (v Value) IsVector() bool {
	return v.isVector
}

// High reports whether a trigger-typed level is high.
func (v Value) High() bool {
	return v.Float() >= triggerHigh
}

// triggerHigh is the level at which a trigger signal counts as high.
const triggerHigh = 0.5
