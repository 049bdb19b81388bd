package primitive

import (
	"github.com/meshcut/meshcut/pkg/geometry"
	"github.com/meshcut/meshcut/pkg/mesh"
)

// boxFaces lists two outward-wound triangles per side. Corners 0-3 are the -Z
// face counter-clockwise from (-,-), corners 4-7 the +Z face in the same order.
var boxFaces = []mesh.Face{
	{0, 2, 1}, {0, 3, 2}, // -Z
	{4, 5, 6}, {4, 6, 7}, // +Z
	{0, 1, 5}, {0, 5, 4}, // -Y
	{3, 6, 2}, {3, 7, 6}, // +Y
	{0, 4, 7}, {0, 7, 3}, // -X
	{1, 2, 6}, {1, 6, 5}, // +X
}

// GenerateBox builds an axis-aligned box with 8 vertices and 12 faces.
// Zero or negative extents are not rejected.
func GenerateBox(center, size geometry.Vector3) mesh.Mesh {
	hx, hy, hz := size.X/2, size.Y/2, size.Z/2

	m := mesh.Mesh{
		Name: "box",
		Vertices: []geometry.Vector3{
			center.Add(geometry.NewVector3(-hx, -hy, -hz)),
			center.Add(geometry.NewVector3(hx, -hy, -hz)),
			center.Add(geometry.NewVector3(hx, hy, -hz)),
			center.Add(geometry.NewVector3(-hx, hy, -hz)),
			center.Add(geometry.NewVector3(-hx, -hy, hz)),
			center.Add(geometry.NewVector3(hx, -hy, hz)),
			center.Add(geometry.NewVector3(hx, hy, hz)),
			center.Add(geometry.NewVector3(-hx, hy, hz)),
		},
		Faces: make([]mesh.Face, len(boxFaces)),
	}
	copy(m.Faces, boxFaces)
	return m
}
