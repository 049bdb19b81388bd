// Package boolean orchestrates set operations between two meshes around an
// external CSG engine. It validates the operands, times the engine call and
// turns every outcome into a Result; it never post-processes geometry.
package boolean

import (
	"fmt"
	"strings"
	"time"

	"github.com/meshcut/meshcut/pkg/mesh"
)

// Kind selects the set operation.
type Kind int

const (
	Union Kind = iota
	Intersection
	Difference // A minus B
)

// String returns the display name of the operation.
func (k Kind) String() string {
	switch k {
	case Union:
		return "Union"
	case Intersection:
		return "Intersection"
	case Difference:
		return "Difference (A-B)"
	default:
		return "Unknown"
	}
}

// ParseKind accepts "union", "intersection" and "difference" (or their first letter).
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "union", "u":
		return Union, nil
	case "intersection", "intersect", "i":
		return Intersection, nil
	case "difference", "diff", "d":
		return Difference, nil
	}
	return 0, fmt.Errorf("unknown boolean operation %q (expected union, intersection or difference)", s)
}

// Engine computes a boolean operation between two closed meshes. A non-nil
// error carries the engine's diagnostic, which is reported unchanged.
type Engine interface {
	Compute(a, b mesh.Mesh, kind Kind) (mesh.Mesh, error)
}

// EngineFunc adapts a plain function to Engine.
type EngineFunc func(a, b mesh.Mesh, kind Kind) (mesh.Mesh, error)

// Compute calls f.
func (f EngineFunc) Compute(a, b mesh.Mesh, kind Kind) (mesh.Mesh, error) {
	return f(a, b, kind)
}

// Result is the outcome of one Execute call. When Succeeded is false Mesh is
// the zero value and must not be used.
type Result struct {
	Mesh      mesh.Mesh
	Succeeded bool
	Err       string
	Elapsed   time.Duration
}

// ElapsedMs returns the engine time in milliseconds.
func (r Result) ElapsedMs() float64 {
	return float64(r.Elapsed) / float64(time.Millisecond)
}

// Operator runs boolean operations through an Engine.
type Operator struct {
	engine Engine
	now    func() time.Time
}

// NewOperator creates an Operator backed by engine.
func NewOperator(engine Engine) *Operator {
	return &Operator{engine: engine, now: time.Now}
}

// Execute validates a and b, then calls the engine exactly once. Empty operands
// fail before the engine is reached. The elapsed time covers only the engine
// call and is recorded on success and failure alike.
func (o *Operator) Execute(a, b mesh.Mesh, kind Kind) Result {
	if a.IsEmpty() {
		return Result{Err: "Mesh A is empty"}
	}
	if b.IsEmpty() {
		return Result{Err: "Mesh B is empty"}
	}

	start := o.now()
	out, err := o.engine.Compute(a, b, kind)
	elapsed := o.now().Sub(start)

	if err != nil {
		return Result{Err: err.Error(), Elapsed: elapsed}
	}
	return Result{Mesh: out, Succeeded: true, Elapsed: elapsed}
}

// Difference runs Execute(a, b, Difference).
func (o *Operator) Difference(a, b mesh.Mesh) Result {
	return o.Execute(a, b, Difference)
}

// CutPiece returns the material of a lying inside b, i.e. what Difference(a, b)
// removes. Callers pass the target as it was before the cut.
func (o *Operator) CutPiece(a, b mesh.Mesh) Result {
	return o.Execute(a, b, Intersection)
}
