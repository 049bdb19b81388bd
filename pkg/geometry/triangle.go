package geometry

import "math"

// Triangle is a facet given by its three corners in winding order
type Triangle struct {
	V1, V2, V3 Vector3
}

// NewTriangle creates a new triangle
func NewTriangle(v1, v2, v3 Vector3) Triangle {
	return Triangle{V1: v1, V2: v2, V3: v3}
}

// Normal returns the unit normal implied by the winding order
func (t Triangle) Normal() Vector3 {
	return t.V2.Sub(t.V1).Cross(t.V3.Sub(t.V1)).Normalize()
}

// Area returns the surface area of the triangle
func (t Triangle) Area() float64 {
	return t.V2.Sub(t.V1).Cross(t.V3.Sub(t.V1)).Length() / 2.0
}

// EdgeLengths returns the lengths of all three edges
func (t Triangle) EdgeLengths() [3]float64 {
	return [3]float64{
		t.V1.Distance(t.V2),
		t.V2.Distance(t.V3),
		t.V3.Distance(t.V1),
	}
}

// Perimeter returns the total length of all edges
func (t Triangle) Perimeter() float64 {
	lengths := t.EdgeLengths()
	return lengths[0] + lengths[1] + lengths[2]
}

// Center returns the centroid of the triangle
func (t Triangle) Center() Vector3 {
	return t.V1.Add(t.V2).Add(t.V3).Mul(1.0 / 3.0)
}

// SignedVolume returns the volume of the tetrahedron spanned by the triangle
// and the origin. Summed over a closed outward-wound mesh it gives the enclosed volume.
func (t Triangle) SignedVolume() float64 {
	return t.V1.Dot(t.V2.Cross(t.V3)) / 6.0
}

// IntersectRay returns the distance t > 0 along dir at which the ray from
// origin crosses the triangle (Moller-Trumbore). Rays parallel to the plane
// never hit.
func (t Triangle) IntersectRay(origin, dir Vector3) (float64, bool) {
	e1 := t.V2.Sub(t.V1)
	e2 := t.V3.Sub(t.V1)
	pv := dir.Cross(e2)
	det := e1.Dot(pv)
	if math.Abs(det) < 1e-15 {
		return 0, false
	}
	inv := 1.0 / det

	tv := origin.Sub(t.V1)
	u := tv.Dot(pv) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	qv := tv.Cross(e1)
	v := dir.Dot(qv) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	dist := e2.Dot(qv) * inv
	if dist <= 0 {
		return 0, false
	}
	return dist, true
}

// ClosestPoint returns the point of the triangle nearest to p
func (t Triangle) ClosestPoint(p Vector3) Vector3 {
	a, b, c := t.V1, t.V2, t.V3
	ab := b.Sub(a)
	ac := c.Sub(a)
	ap := p.Sub(a)

	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return a
	}

	bp := p.Sub(b)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return b
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		return a.Add(ab.Mul(d1 / (d1 - d3)))
	}

	cp := p.Sub(c)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return c
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		return a.Add(ac.Mul(d2 / (d2 - d6)))
	}

	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return b.Add(c.Sub(b).Mul(w))
	}

	denom := 1.0 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return a.Add(ab.Mul(v)).Add(ac.Mul(w))
}

// Distance returns the distance from p to the nearest point of the triangle
func (t Triangle) Distance(p Vector3) float64 {
	return p.Distance(t.ClosestPoint(p))
}
