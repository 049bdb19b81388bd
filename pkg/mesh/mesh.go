// Package mesh holds the indexed triangle mesh shared by the generators, the
// boolean orchestrator and the preview pipeline.
package mesh

import (
	"errors"
	"fmt"
	"math"

	"github.com/meshcut/meshcut/pkg/geometry"
)

// ErrEmptyMesh is returned when an operation needs at least one vertex.
var ErrEmptyMesh = errors.New("mesh is empty")

// Face is a triangle given by three vertex indices in winding order.
type Face [3]int

// Mesh is an ordered vertex list plus triangular faces indexing into it.
// Producers return meshes by value; consumers that only read take a pointer.
// Closedness is not guaranteed.
type Mesh struct {
	Name     string
	Vertices []geometry.Vector3
	Faces    []Face
}

// VertexCount returns the number of vertices.
func (m Mesh) VertexCount() int {
	return len(m.Vertices)
}

// FaceCount returns the number of faces.
func (m Mesh) FaceCount() int {
	return len(m.Faces)
}

// IsEmpty reports whether the mesh has no vertices.
func (m Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// AddVertex appends a vertex and returns its index.
func (m *Mesh) AddVertex(v geometry.Vector3) int {
	m.Vertices = append(m.Vertices, v)
	return len(m.Vertices) - 1
}

// AddFace appends a face.
func (m *Mesh) AddFace(a, b, c int) {
	m.Faces = append(m.Faces, Face{a, b, c})
}

// FaceValid reports whether f references three distinct in-range vertices.
func (m Mesh) FaceValid(f Face) bool {
	n := len(m.Vertices)
	for _, i := range f {
		if i < 0 || i >= n {
			return false
		}
	}
	return f[0] != f[1] && f[1] != f[2] && f[0] != f[2]
}

// Validate checks the face index invariant.
func (m Mesh) Validate() error {
	for i, f := range m.Faces {
		if !m.FaceValid(f) {
			return fmt.Errorf("face %d %v is invalid for %d vertices", i, f, len(m.Vertices))
		}
	}
	return nil
}

// Triangle returns the corners of face i.
func (m Mesh) Triangle(i int) geometry.Triangle {
	f := m.Faces[i]
	return geometry.NewTriangle(m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]])
}

// Triangles returns the corners of every valid face.
func (m Mesh) Triangles() []geometry.Triangle {
	tris := make([]geometry.Triangle, 0, len(m.Faces))
	for i, f := range m.Faces {
		if m.FaceValid(f) {
			tris = append(tris, m.Triangle(i))
		}
	}
	return tris
}

// BoundingBox returns the axis-aligned bounds of all vertices.
func (m Mesh) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, v := range m.Vertices {
		bbox.Extend(v)
	}
	return bbox
}

// SurfaceArea sums the area of all valid faces.
func (m Mesh) SurfaceArea() float64 {
	total := 0.0
	for _, tri := range m.Triangles() {
		total += tri.Area()
	}
	return total
}

// Volume returns the enclosed volume of a closed mesh. Inward winding gives
// the same magnitude, so the absolute value is returned.
func (m Mesh) Volume() float64 {
	total := 0.0
	for _, tri := range m.Triangles() {
		total += tri.SignedVolume()
	}
	return math.Abs(total)
}

// Clone returns a deep copy.
func (m Mesh) Clone() Mesh {
	out := Mesh{
		Name:     m.Name,
		Vertices: make([]geometry.Vector3, len(m.Vertices)),
		Faces:    make([]Face, len(m.Faces)),
	}
	copy(out.Vertices, m.Vertices)
	copy(out.Faces, m.Faces)
	return out
}

// Transformed returns an independent copy with every vertex mapped through t.
func (m Mesh) Transformed(t geometry.Transform) Mesh {
	out := m.Clone()
	for i, v := range out.Vertices {
		out.Vertices[i] = t.Apply(v)
	}
	return out
}
