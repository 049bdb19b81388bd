package primitive

import (
	"math"
	"testing"

	"github.com/meshcut/meshcut/pkg/geometry"
	"github.com/meshcut/meshcut/pkg/mesh"
)

// assertOutward checks that every face of a convex mesh faces away from center.
func assertOutward(t *testing.T, m mesh.Mesh, center geometry.Vector3) {
	t.Helper()
	for i := range m.Faces {
		tri := m.Triangle(i)
		if d := tri.Normal().Dot(tri.Center().Sub(center)); d <= 0 {
			t.Errorf("face %d %v winds inward (dot %v)", i, m.Faces[i], d)
		}
	}
}

func TestGenerateCylinderCounts(t *testing.T) {
	for _, segments := range []int{3, 4, 7, 32, 64} {
		p := CylinderParams{Length: 50, Diameter: 6, Segments: segments}
		m := GenerateCylinder(p)

		if got, want := m.VertexCount(), 2+2*segments; got != want {
			t.Errorf("segments=%d: VertexCount() = %d, want %d", segments, got, want)
		}
		if got, want := m.FaceCount(), 4*segments; got != want {
			t.Errorf("segments=%d: FaceCount() = %d, want %d", segments, got, want)
		}
		if err := m.Validate(); err != nil {
			t.Errorf("segments=%d: Validate() error = %v", segments, err)
		}
	}
}

func TestGenerateCylinderDegenerate(t *testing.T) {
	tests := []struct {
		name   string
		params CylinderParams
	}{
		{"two segments", CylinderParams{Length: 50, Diameter: 6, Segments: 2}},
		{"zero segments", CylinderParams{Length: 50, Diameter: 6, Segments: 0}},
		{"zero length", CylinderParams{Length: 0, Diameter: 6, Segments: 16}},
		{"negative length", CylinderParams{Length: -1, Diameter: 6, Segments: 16}},
		{"zero diameter", CylinderParams{Length: 50, Diameter: 0, Segments: 16}},
		{"negative diameter", CylinderParams{Length: 50, Diameter: -3, Segments: 16}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := GenerateCylinder(tt.params)
			if m.VertexCount() != 0 || m.FaceCount() != 0 {
				t.Errorf("expected empty mesh, got %d vertices and %d faces", m.VertexCount(), m.FaceCount())
			}
		})
	}
}

func TestGenerateCylinderGeometry(t *testing.T) {
	m := GenerateCylinder(DefaultCylinderParams())

	bbox := m.BoundingBox()
	if !bbox.Min.ApproxEqual(geometry.NewVector3(-3, -3, -25), 1e-9) ||
		!bbox.Max.ApproxEqual(geometry.NewVector3(3, 3, 25), 1e-9) {
		t.Errorf("unexpected bounds %v..%v", bbox.Min, bbox.Max)
	}
	if m.Vertices[0] != geometry.NewVector3(0, 0, 25) || m.Vertices[1] != geometry.NewVector3(0, 0, -25) {
		t.Errorf("apex vertices misplaced: %v %v", m.Vertices[0], m.Vertices[1])
	}
	assertOutward(t, m, geometry.Vector3{})

	// A 64-gon prism comes close to pi*r^2*h.
	want := math.Pi * 9 * 50
	if v := m.Volume(); math.Abs(v-want)/want > 0.01 {
		t.Errorf("Volume() = %v, want about %v", v, want)
	}
}

func TestAlignAndPlaceParallelIsTranslation(t *testing.T) {
	base := GenerateCylinder(CylinderParams{Length: 10, Diameter: 2, Segments: 8})
	position := geometry.NewVector3(1, -2, 3)

	for _, dir := range []geometry.Vector3{{Z: 1}, {Z: 7}, {X: 1e-6, Z: 1}} {
		placed := AlignAndPlace(base, position, dir)
		for i, v := range base.Vertices {
			if want := v.Add(position); !placed.Vertices[i].ApproxEqual(want, 1e-9) {
				t.Fatalf("dir %v vertex %d = %v, want %v", dir, i, placed.Vertices[i], want)
			}
		}
	}
}

func TestAlignAndPlaceAntiparallel(t *testing.T) {
	base := GenerateCylinder(CylinderParams{Length: 10, Diameter: 2, Segments: 8})
	position := geometry.NewVector3(0, 0, 5)

	placed := AlignAndPlace(base, position, geometry.NewVector3(0, 0, -1))
	for i, v := range placed.Vertices {
		if math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsNaN(v.Z) {
			t.Fatalf("vertex %d is NaN", i)
		}
		if want := base.Vertices[i].Add(position); !v.ApproxEqual(want, 1e-9) {
			t.Fatalf("vertex %d = %v, want %v", i, v, want)
		}
	}
}

func TestAlignAndPlaceRotates(t *testing.T) {
	base := GenerateCylinder(CylinderParams{Length: 10, Diameter: 2, Segments: 16})
	position := geometry.NewVector3(4, 0, 0)

	placed := AlignAndPlace(base, position, geometry.NewVector3(1, 0, 0))
	if !placed.Vertices[0].ApproxEqual(geometry.NewVector3(9, 0, 0), 1e-9) {
		t.Errorf("top apex = %v, want (9,0,0)", placed.Vertices[0])
	}
	if !placed.Vertices[1].ApproxEqual(geometry.NewVector3(-1, 0, 0), 1e-9) {
		t.Errorf("bottom apex = %v, want (-1,0,0)", placed.Vertices[1])
	}
	assertOutward(t, placed, position)

	if base.Vertices[0] != geometry.NewVector3(0, 0, 5) {
		t.Error("AlignAndPlace mutated its input")
	}
}

func TestAlignAndPlaceEmpty(t *testing.T) {
	if m := AlignAndPlace(mesh.Mesh{}, geometry.NewVector3(1, 1, 1), geometry.ZAxis); !m.IsEmpty() {
		t.Error("placing an empty mesh should stay empty")
	}
}

func TestCylinderGenerator(t *testing.T) {
	g := NewCylinderGenerator(DefaultCylinderParams())
	if g.Params() != DefaultCylinderParams() {
		t.Errorf("Params() = %+v", g.Params())
	}

	g.SetParams(CylinderParams{Length: 4, Diameter: 2, Segments: 5})
	m := g.GenerateAt(geometry.NewVector3(0, 0, 10), geometry.ZAxis)
	if m.VertexCount() != 12 {
		t.Errorf("VertexCount() = %d, want 12", m.VertexCount())
	}
	if m.Vertices[0] != geometry.NewVector3(0, 0, 12) {
		t.Errorf("top apex = %v, want (0,0,12)", m.Vertices[0])
	}
}
