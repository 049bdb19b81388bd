package sdfxengine

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/dhconnelly/rtreego"

	"github.com/meshcut/meshcut/pkg/geometry"
	"github.com/meshcut/meshcut/pkg/mesh"
)

// Compile-time interface check.
var _ sdf.SDF3 = (*meshSDF)(nil)

// R-tree fan-out, the values sdfx uses for ImportTriMesh.
const (
	minChildren = 3
	maxChildren = 5
)

// nearestCandidates is the first batch of faces taken by bounding-box
// distance; the batch doubles until the nearest face is certain.
const nearestCandidates = 8

// rayDirections are the axes cast for the inside test. A point is inside when
// at least two of the three rays cross the surface an odd number of times.
var rayDirections = [3]geometry.Vector3{
	{X: 1},
	{Y: 1},
	{Z: 1},
}

// jitter moves ray origins off the grid lines marching cubes samples on, so
// rays do not run exactly through shared edges of axis-aligned faces.
var jitter = geometry.NewVector3(0.3183099, 0.5772157, 0.7071068)

// indexedTriangle is a face stored in the R-tree.
type indexedTriangle struct {
	tri    geometry.Triangle
	bounds rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (t *indexedTriangle) Bounds() rtreego.Rect {
	return t.bounds
}

// meshSDF evaluates a closed triangle mesh as a signed distance field. The
// magnitude is the exact distance to the nearest face; the sign comes from ray
// parity. Both queries go through an R-tree over the face bounds.
type meshSDF struct {
	tree   *rtreego.Rtree
	bb     sdf.Box3
	limit  geometry.Vector3 // ray end, beyond the padded bounds
	slack  float64          // half thickness of query boxes
	offset geometry.Vector3 // ray origin jitter
}

func newMeshSDF(m mesh.Mesh, padding float64) *meshSDF {
	bounds := m.BoundingBox()
	box := bounds.Grow(padding)
	slack := math.Max(bounds.MaxExtent(), 1) * 1e-9

	items := make([]rtreego.Spatial, 0, m.FaceCount())
	for _, tri := range m.Triangles() {
		items = append(items, &indexedTriangle{tri: tri, bounds: triangleRect(tri, slack)})
	}

	return &meshSDF{
		tree:   rtreego.NewTree(3, minChildren, maxChildren, items...),
		bb:     sdf.Box3{Min: toVec(box.Min), Max: toVec(box.Max)},
		limit:  box.Max.Add(geometry.NewVector3(padding, padding, padding)),
		slack:  slack,
		offset: jitter.Mul(math.Max(bounds.MaxExtent(), 1) * 1e-7),
	}
}

// Evaluate returns the signed distance from p to the surface, negative inside.
func (s *meshSDF) Evaluate(p v3.Vec) float64 {
	if s.tree.Size() == 0 {
		return math.Inf(1)
	}
	q := fromVec(p)
	dist := s.distance(q)
	if s.inside(q) {
		return -dist
	}
	return dist
}

// BoundingBox returns the padded mesh bounds.
func (s *meshSDF) BoundingBox() sdf.Box3 {
	return s.bb
}

// distance finds the nearest face. Faces come back ordered by bounding-box
// distance, which never exceeds the exact distance, so once the farthest box
// returned is no closer than the best face found no other face can win.
func (s *meshSDF) distance(q geometry.Vector3) float64 {
	pt := rtreego.Point{q.X, q.Y, q.Z}
	size := s.tree.Size()

	best := math.Inf(1)
	for k := nearestCandidates; ; k *= 2 {
		items := s.tree.NearestNeighbors(min(k, size), pt)
		for _, item := range items {
			best = math.Min(best, item.(*indexedTriangle).tri.Distance(q))
		}
		if k >= size || len(items) == 0 {
			return best
		}
		if rectDistance(items[len(items)-1].Bounds(), pt) >= best {
			return best
		}
	}
}

func (s *meshSDF) inside(q geometry.Vector3) bool {
	origin := q.Add(s.offset)
	votes := 0
	for axis, dir := range rayDirections {
		if s.crossings(origin, dir, axis)%2 == 1 {
			votes++
		}
	}
	return votes >= 2
}

// crossings counts the faces hit by the ray from origin along the given axis.
func (s *meshSDF) crossings(origin, dir geometry.Vector3, axis int) int {
	start := [3]float64{origin.X, origin.Y, origin.Z}
	end := [3]float64{s.limit.X, s.limit.Y, s.limit.Z}
	if start[axis] >= end[axis] {
		return 0
	}

	lo, hi := make(rtreego.Point, 3), make(rtreego.Point, 3)
	for i := range start {
		lo[i], hi[i] = start[i]-s.slack, start[i]+s.slack
	}
	hi[axis] = end[axis]

	slab, err := rtreego.NewRectFromPoints(lo, hi)
	if err != nil {
		return 0
	}

	n := 0
	for _, item := range s.tree.SearchIntersect(slab) {
		if _, hit := item.(*indexedTriangle).tri.IntersectRay(origin, dir); hit {
			n++
		}
	}
	return n
}

// rectDistance is the distance from p to the nearest point of r.
func rectDistance(r rtreego.Rect, p rtreego.Point) float64 {
	sum := 0.0
	for i, v := range p {
		lo := r.PointCoord(i)
		hi := lo + r.LengthsCoord(i)
		switch {
		case v < lo:
			sum += (lo - v) * (lo - v)
		case v > hi:
			sum += (v - hi) * (v - hi)
		}
	}
	return math.Sqrt(sum)
}

func triangleRect(tri geometry.Triangle, slack float64) rtreego.Rect {
	lo := tri.V1.Min(tri.V2).Min(tri.V3)
	hi := tri.V1.Max(tri.V2).Max(tri.V3)
	r, _ := rtreego.NewRectFromPoints(
		rtreego.Point{lo.X - slack, lo.Y - slack, lo.Z - slack},
		rtreego.Point{hi.X + slack, hi.Y + slack, hi.Z + slack},
	)
	return r
}

func toVec(v geometry.Vector3) v3.Vec {
	return v3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}

func fromVec(v v3.Vec) geometry.Vector3 {
	return geometry.NewVector3(v.X, v.Y, v.Z)
}
