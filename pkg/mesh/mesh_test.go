package mesh

import (
	"math"
	"testing"

	"github.com/meshcut/meshcut/pkg/geometry"
)

// unitTetra is a closed, outward-wound tetrahedron with volume 1/6.
func unitTetra() Mesh {
	return Mesh{
		Vertices: []geometry.Vector3{
			{X: 0, Y: 0, Z: 0},
			{X: 1, Y: 0, Z: 0},
			{X: 0, Y: 1, Z: 0},
			{X: 0, Y: 0, Z: 1},
		},
		Faces: []Face{{0, 2, 1}, {0, 1, 3}, {0, 3, 2}, {1, 2, 3}},
	}
}

func TestMeshCounts(t *testing.T) {
	tests := []struct {
		name      string
		mesh      Mesh
		verts     int
		faces     int
		wantEmpty bool
	}{
		{"empty", Mesh{}, 0, 0, true},
		{"tetra", unitTetra(), 4, 4, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.mesh.VertexCount(); got != tt.verts {
				t.Errorf("VertexCount() = %d, want %d", got, tt.verts)
			}
			if got := tt.mesh.FaceCount(); got != tt.faces {
				t.Errorf("FaceCount() = %d, want %d", got, tt.faces)
			}
			if got := tt.mesh.IsEmpty(); got != tt.wantEmpty {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.wantEmpty)
			}
		})
	}
}

func TestMeshValidate(t *testing.T) {
	m := unitTetra()
	if err := m.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	bad := []Face{{0, 0, 1}, {0, 1, 4}, {-1, 1, 2}}
	for _, f := range bad {
		broken := m.Clone()
		broken.Faces = append(broken.Faces, f)
		if err := broken.Validate(); err == nil {
			t.Errorf("Validate() accepted invalid face %v", f)
		}
		if got := len(broken.Triangles()); got != 4 {
			t.Errorf("Triangles() should skip invalid face %v, got %d triangles", f, got)
		}
	}
}

func TestMeshVolumeAndArea(t *testing.T) {
	m := unitTetra()
	if v := m.Volume(); math.Abs(v-1.0/6.0) > 1e-12 {
		t.Errorf("Volume() = %v, want 1/6", v)
	}
	wantArea := 1.5 + math.Sqrt(3)/2
	if a := m.SurfaceArea(); math.Abs(a-wantArea) > 1e-12 {
		t.Errorf("SurfaceArea() = %v, want %v", a, wantArea)
	}
}

func TestMeshTransformedDoesNotMutate(t *testing.T) {
	m := unitTetra()
	moved := m.Transformed(geometry.Translation(geometry.NewVector3(5, 0, 0)))

	if m.Vertices[1] != geometry.NewVector3(1, 0, 0) {
		t.Errorf("source mesh mutated: %v", m.Vertices[1])
	}
	if moved.Vertices[1] != geometry.NewVector3(6, 0, 0) {
		t.Errorf("Transformed vertex = %v, want (6,0,0)", moved.Vertices[1])
	}
}

func TestFromTrianglesWelds(t *testing.T) {
	a := geometry.NewVector3(0, 0, 0)
	b := geometry.NewVector3(1, 0, 0)
	c := geometry.NewVector3(0, 1, 0)
	d := geometry.NewVector3(1, 1, 0)
	soup := []geometry.Triangle{
		geometry.NewTriangle(a, b, c),
		geometry.NewTriangle(b, d, c),
		geometry.NewTriangle(a, a, b), // degenerate
	}

	m := FromTriangles("quad", soup, 0)
	if m.VertexCount() != 4 {
		t.Errorf("VertexCount() = %d, want 4", m.VertexCount())
	}
	if m.FaceCount() != 2 {
		t.Errorf("FaceCount() = %d, want 2", m.FaceCount())
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestFromTrianglesTolerance(t *testing.T) {
	soup := []geometry.Triangle{
		geometry.NewTriangle(geometry.NewVector3(0, 0, 0), geometry.NewVector3(1, 0, 0), geometry.NewVector3(0, 1, 0)),
		geometry.NewTriangle(geometry.NewVector3(1.0000001, 0, 0), geometry.NewVector3(1, 1, 0), geometry.NewVector3(0, 1, 0)),
	}

	if got := FromTriangles("", soup, 0).VertexCount(); got != 5 {
		t.Errorf("exact weld VertexCount() = %d, want 5", got)
	}
	if got := FromTriangles("", soup, 1e-4).VertexCount(); got != 4 {
		t.Errorf("tolerant weld VertexCount() = %d, want 4", got)
	}
}
