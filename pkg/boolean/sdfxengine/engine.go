// Package sdfxengine implements boolean.Engine on top of the
// github.com/deadsy/sdfx SDF library. Operands are sampled as signed distance
// fields, combined with the sdfx CSG operators and re-meshed with marching
// cubes, so results are approximations whose fidelity follows the cell count.
package sdfxengine

import (
	"errors"
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"

	"github.com/meshcut/meshcut/pkg/boolean"
	"github.com/meshcut/meshcut/pkg/geometry"
	"github.com/meshcut/meshcut/pkg/mesh"
)

// Compile-time interface check.
var _ boolean.Engine = (*Engine)(nil)

// DefaultCells is the marching cubes resolution along the longest axis.
const DefaultCells = 96

// ErrEmptyResult is returned when the operation leaves no material.
var ErrEmptyResult = errors.New("boolean result is empty")

// paddingRatio widens each operand's bounds so the sampled surface is closed.
const paddingRatio = 0.05

// Engine runs boolean operations through sdfx.
type Engine struct {
	cells int
}

// Option configures an Engine.
type Option func(*Engine)

// WithCells sets the marching cubes resolution. Values below 8 are raised to 8.
func WithCells(cells int) Option {
	return func(e *Engine) {
		e.cells = max(cells, 8)
	}
}

// New returns an Engine with DefaultCells unless overridden.
func New(opts ...Option) *Engine {
	e := &Engine{cells: DefaultCells}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Cells returns the configured resolution.
func (e *Engine) Cells() int {
	return e.cells
}

// Compute implements boolean.Engine. Panics raised inside sdfx are returned as
// errors.
func (e *Engine) Compute(a, b mesh.Mesh, kind boolean.Kind) (result mesh.Mesh, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = mesh.Mesh{}
			err = fmt.Errorf("sdfx: %v", r)
		}
	}()

	bounds := a.BoundingBox()
	bounds.Union(b.BoundingBox())
	padding := bounds.MaxExtent() * paddingRatio

	sa := newMeshSDF(a, padding)
	sb := newMeshSDF(b, padding)

	var combined sdf.SDF3
	switch kind {
	case boolean.Union:
		combined = sdf.Union3D(sa, sb)
	case boolean.Intersection:
		combined = sdf.Intersect3D(sa, sb)
	case boolean.Difference:
		combined = sdf.Difference3D(sa, sb)
	default:
		return mesh.Mesh{}, fmt.Errorf("unsupported operation %v", kind)
	}

	triangles := render.ToTriangles(combined, render.NewMarchingCubesUniform(e.cells))

	soup := make([]geometry.Triangle, 0, len(triangles))
	for _, tri := range triangles {
		soup = append(soup, geometry.NewTriangle(fromVec(tri[0]), fromVec(tri[1]), fromVec(tri[2])))
	}

	out := mesh.FromTriangles(resultName(a, b, kind), soup, bounds.MaxExtent()*1e-9)
	if out.IsEmpty() || out.FaceCount() == 0 {
		return mesh.Mesh{}, ErrEmptyResult
	}
	return out, nil
}

func resultName(a, b mesh.Mesh, kind boolean.Kind) string {
	switch kind {
	case boolean.Union:
		return fmt.Sprintf("%s+%s", a.Name, b.Name)
	case boolean.Intersection:
		return fmt.Sprintf("%s&%s", a.Name, b.Name)
	default:
		return fmt.Sprintf("%s-%s", a.Name, b.Name)
	}
}
