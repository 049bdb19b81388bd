// Package primitive generates parametric solids used as cutting tools and as
// the initial scene.
package primitive

import (
	"math"

	"github.com/meshcut/meshcut/pkg/geometry"
	"github.com/meshcut/meshcut/pkg/mesh"
)

// Default cutter dimensions in millimetres.
const (
	DefaultLength   = 50.0
	DefaultDiameter = 6.0
	DefaultSegments = 64
)

// CylinderParams describes a capped cylinder
type CylinderParams struct {
	Length   float64 `yaml:"length"`
	Diameter float64 `yaml:"diameter"`
	Segments int     `yaml:"segments"`
}

// DefaultCylinderParams returns the 50mm x 6mm cutter
func DefaultCylinderParams() CylinderParams {
	return CylinderParams{
		Length:   DefaultLength,
		Diameter: DefaultDiameter,
		Segments: DefaultSegments,
	}
}

// Radius returns half the diameter
func (p CylinderParams) Radius() float64 {
	return p.Diameter / 2.0
}

// Valid reports whether the generator will produce geometry for p
func (p CylinderParams) Valid() bool {
	return p.Segments >= 3 && p.Length > 0 && p.Diameter > 0
}

// GenerateCylinder builds a capped cylinder centered at the origin with its
// axis along +Z.
//
// Layout: vertex 0 is the top apex, vertex 1 the bottom apex, followed by the
// top ring and then the bottom ring, giving 2+2n vertices and 4n faces. All
// faces wind counter-clockwise seen from outside. Invalid params yield an empty
// mesh rather than an error.
func GenerateCylinder(p CylinderParams) mesh.Mesh {
	if !p.Valid() {
		return mesh.Mesh{}
	}

	n := p.Segments
	r := p.Radius()
	half := p.Length / 2.0

	m := mesh.Mesh{
		Name:     "cylinder",
		Vertices: make([]geometry.Vector3, 0, 2+2*n),
		Faces:    make([]mesh.Face, 0, 4*n),
	}

	top := m.AddVertex(geometry.NewVector3(0, 0, half))
	bottom := m.AddVertex(geometry.NewVector3(0, 0, -half))

	ring := func(z float64) int {
		first := len(m.Vertices)
		for i := 0; i < n; i++ {
			angle := 2.0 * math.Pi * float64(i) / float64(n)
			m.AddVertex(geometry.NewVector3(r*math.Cos(angle), r*math.Sin(angle), z))
		}
		return first
	}
	topRing := ring(half)
	bottomRing := ring(-half)

	for i := 0; i < n; i++ {
		next := (i + 1) % n
		m.AddFace(top, topRing+i, topRing+next)
	}
	for i := 0; i < n; i++ {
		next := (i + 1) % n
		m.AddFace(bottom, bottomRing+next, bottomRing+i)
	}
	for i := 0; i < n; i++ {
		next := (i + 1) % n
		m.AddFace(topRing+i, bottomRing+i, topRing+next)
		m.AddFace(topRing+next, bottomRing+i, bottomRing+next)
	}

	return m
}

// AlignAndPlace rigidly moves a +Z-authored mesh so its axis points along
// direction and its center sits at position. Directions within
// geometry.ParallelTolerance of +Z or -Z are translated only.
func AlignAndPlace(m mesh.Mesh, position, direction geometry.Vector3) mesh.Mesh {
	if m.IsEmpty() {
		return m
	}
	return m.Transformed(geometry.AlignZ(position, direction))
}
