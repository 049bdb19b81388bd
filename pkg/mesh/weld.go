package mesh

import (
	"math"

	"github.com/meshcut/meshcut/pkg/geometry"
)

type weldKey struct {
	x, y, z int64
}

// FromTriangles builds an indexed mesh from a triangle soup. Corners closer than
// tolerance collapse onto one vertex (exact match when tolerance is 0) and faces
// that degenerate in the process are dropped.
func FromTriangles(name string, tris []geometry.Triangle, tolerance float64) Mesh {
	m := Mesh{
		Name:     name,
		Vertices: make([]geometry.Vector3, 0, len(tris)),
		Faces:    make([]Face, 0, len(tris)),
	}
	exact := make(map[geometry.Vector3]int)
	snapped := make(map[weldKey]int)

	index := func(v geometry.Vector3) int {
		if tolerance <= 0 {
			if i, ok := exact[v]; ok {
				return i
			}
			i := m.AddVertex(v)
			exact[v] = i
			return i
		}
		k := weldKey{
			x: int64(math.Round(v.X / tolerance)),
			y: int64(math.Round(v.Y / tolerance)),
			z: int64(math.Round(v.Z / tolerance)),
		}
		if i, ok := snapped[k]; ok {
			return i
		}
		i := m.AddVertex(v)
		snapped[k] = i
		return i
	}

	for _, tri := range tris {
		f := Face{index(tri.V1), index(tri.V2), index(tri.V3)}
		if f[0] == f[1] || f[1] == f[2] || f[0] == f[2] {
			continue
		}
		m.Faces = append(m.Faces, f)
	}
	return m
}
