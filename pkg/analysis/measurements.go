// Package analysis reports size and topology statistics of a mesh.
package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/samber/lo"

	"github.com/meshcut/meshcut/pkg/geometry"
	"github.com/meshcut/meshcut/pkg/mesh"
)

// Edge is an undirected mesh edge with the faces that use it
type Edge struct {
	A, B   int // vertex indices, A < B
	Length float64
	Faces  int
}

// Report contains measurements of a mesh
type Report struct {
	Name             string
	VertexCount      int
	FaceCount        int
	BoundingBox      geometry.BoundingBox
	Dimensions       geometry.Vector3
	Volume           float64 // enclosed volume, meaningful for closed meshes
	BoxVolume        float64
	SurfaceArea      float64
	Edges            []Edge
	BoundaryEdges    int
	NonManifoldEdges int
	MinEdgeLength    float64
	MaxEdgeLength    float64
	AvgEdgeLength    float64
}

// Closed reports whether every edge is shared by exactly two faces.
func (r Report) Closed() bool {
	return r.FaceCount > 0 && r.BoundaryEdges == 0 && r.NonManifoldEdges == 0
}

// Analyze measures m. Invalid faces are ignored.
func Analyze(m mesh.Mesh) Report {
	bbox := m.BoundingBox()
	r := Report{
		Name:        m.Name,
		VertexCount: m.VertexCount(),
		FaceCount:   m.FaceCount(),
		BoundingBox: bbox,
		Dimensions:  bbox.Size(),
		BoxVolume:   bbox.Volume(),
		Volume:      m.Volume(),
		SurfaceArea: m.SurfaceArea(),
	}

	uses := make(map[[2]int]int)
	for _, f := range m.Faces {
		if !m.FaceValid(f) {
			continue
		}
		for i := 0; i < 3; i++ {
			a, b := f[i], f[(i+1)%3]
			uses[[2]int{min(a, b), max(a, b)}]++
		}
	}

	r.Edges = make([]Edge, 0, len(uses))
	for k, n := range uses {
		r.Edges = append(r.Edges, Edge{
			A:      k[0],
			B:      k[1],
			Length: m.Vertices[k[0]].Distance(m.Vertices[k[1]]),
			Faces:  n,
		})
	}
	sort.Slice(r.Edges, func(i, j int) bool {
		if r.Edges[i].A != r.Edges[j].A {
			return r.Edges[i].A < r.Edges[j].A
		}
		return r.Edges[i].B < r.Edges[j].B
	})

	r.BoundaryEdges = lo.CountBy(r.Edges, func(e Edge) bool { return e.Faces == 1 })
	r.NonManifoldEdges = lo.CountBy(r.Edges, func(e Edge) bool { return e.Faces > 2 })

	if len(r.Edges) > 0 {
		lengths := lo.Map(r.Edges, func(e Edge, _ int) float64 { return e.Length })
		r.MinEdgeLength = lo.Min(lengths)
		r.MaxEdgeLength = lo.Max(lengths)
		r.AvgEdgeLength = lo.Sum(lengths) / float64(len(lengths))
	}
	return r
}

// FindLongestEdges returns the n longest edges, longest first.
func FindLongestEdges(r Report, n int) []Edge {
	return sortedEdges(r, n, func(a, b Edge) bool { return a.Length > b.Length })
}

// FindShortestEdges returns the n shortest edges, shortest first.
func FindShortestEdges(r Report, n int) []Edge {
	return sortedEdges(r, n, func(a, b Edge) bool { return a.Length < b.Length })
}

func sortedEdges(r Report, n int, less func(a, b Edge) bool) []Edge {
	edges := make([]Edge, len(r.Edges))
	copy(edges, r.Edges)
	sort.SliceStable(edges, func(i, j int) bool { return less(edges[i], edges[j]) })
	return edges[:lo.Clamp(n, 0, len(edges))]
}

// Summary is the one-line description shown in the viewer status bar.
func Summary(m mesh.Mesh) string {
	if m.IsEmpty() {
		return "No mesh"
	}
	size := m.BoundingBox().Size()
	return fmt.Sprintf("Vertices: %d, Faces: %d, Size: %.2f x %.2f x %.2f",
		m.VertexCount(), m.FaceCount(), size.X, size.Y, size.Z)
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}

// FormatMeasurement formats a measurement with appropriate units
func FormatMeasurement(value float64, unit string) string {
	if unit == "" {
		unit = "mm"
	}
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return "n/a"
	}
	return fmt.Sprintf("%.6f %s", value, unit)
}
