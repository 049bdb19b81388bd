package boolean

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/meshcut/meshcut/pkg/geometry"
	"github.com/meshcut/meshcut/pkg/mesh"
	"github.com/meshcut/meshcut/pkg/primitive"
)

// recordingEngine is a stub Engine that remembers how it was called.
type recordingEngine struct {
	calls  int
	kinds  []Kind
	result mesh.Mesh
	err    error
}

func (e *recordingEngine) Compute(a, b mesh.Mesh, kind Kind) (mesh.Mesh, error) {
	e.calls++
	e.kinds = append(e.kinds, kind)
	return e.result, e.err
}

var _ Engine = (*recordingEngine)(nil)

func box() mesh.Mesh {
	return primitive.GenerateBox(geometry.NewVector3(0, 0, 15), geometry.NewVector3(20, 20, 25))
}

func cutter() mesh.Mesh {
	return primitive.GenerateCylinder(primitive.CylinderParams{Length: 50, Diameter: 6, Segments: 16})
}

func TestExecuteEmptyMeshA(t *testing.T) {
	for _, b := range []mesh.Mesh{{}, cutter()} {
		engine := &recordingEngine{}
		res := NewOperator(engine).Execute(mesh.Mesh{}, b, Difference)

		if res.Succeeded {
			t.Fatal("expected failure for empty mesh A")
		}
		if !strings.Contains(res.Err, "Mesh A") {
			t.Errorf("error %q does not mention mesh A", res.Err)
		}
		if engine.calls != 0 {
			t.Errorf("engine called %d times after validation failure", engine.calls)
		}
		if !res.Mesh.IsEmpty() {
			t.Error("failed result carries a mesh")
		}
	}
}

func TestExecuteEmptyMeshB(t *testing.T) {
	engine := &recordingEngine{}
	res := NewOperator(engine).Execute(box(), mesh.Mesh{}, Union)

	if res.Succeeded || !strings.Contains(res.Err, "Mesh B") {
		t.Errorf("expected Mesh B failure, got %+v", res)
	}
	if engine.calls != 0 {
		t.Errorf("engine called %d times after validation failure", engine.calls)
	}
}

func TestExecuteSuccess(t *testing.T) {
	want := box()
	engine := &recordingEngine{result: want}
	res := NewOperator(engine).Execute(box(), cutter(), Union)

	if !res.Succeeded {
		t.Fatalf("expected success, got %q", res.Err)
	}
	if res.Elapsed < 0 {
		t.Errorf("negative elapsed time %v", res.Elapsed)
	}
	if res.Mesh.FaceCount() != want.FaceCount() {
		t.Errorf("result mesh has %d faces, want %d", res.Mesh.FaceCount(), want.FaceCount())
	}
	if engine.calls != 1 || engine.kinds[0] != Union {
		t.Errorf("engine calls = %d kinds = %v", engine.calls, engine.kinds)
	}
}

func TestExecuteForwardsEngineDiagnostic(t *testing.T) {
	const msg = "Bad contour: self-intersection at edge 42"
	engine := &recordingEngine{err: errors.New(msg)}
	res := NewOperator(engine).Difference(box(), cutter())

	if res.Succeeded {
		t.Fatal("expected failure")
	}
	if res.Err != msg {
		t.Errorf("Err = %q, want verbatim %q", res.Err, msg)
	}
}

func TestExecuteTimesOnlyTheEngineCall(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ticks := []time.Time{base, base.Add(250 * time.Millisecond)}
	op := NewOperator(EngineFunc(func(a, b mesh.Mesh, kind Kind) (mesh.Mesh, error) {
		return mesh.Mesh{}, errors.New("boom")
	}))
	op.now = func() time.Time {
		t := ticks[0]
		ticks = ticks[1:]
		return t
	}

	res := op.Execute(box(), cutter(), Intersection)
	if res.Elapsed != 250*time.Millisecond {
		t.Errorf("Elapsed = %v, want 250ms", res.Elapsed)
	}
	if res.ElapsedMs() != 250 {
		t.Errorf("ElapsedMs() = %v, want 250", res.ElapsedMs())
	}
	if len(ticks) != 0 {
		t.Errorf("clock read %d times, want 2", 2-len(ticks))
	}
}

func TestExecuteDoesNotMutateInputs(t *testing.T) {
	a, b := box(), cutter()
	aCopy, bCopy := a.Clone(), b.Clone()
	NewOperator(&recordingEngine{result: a}).Difference(a, b)

	for i := range a.Vertices {
		if a.Vertices[i] != aCopy.Vertices[i] {
			t.Fatal("mesh A mutated")
		}
	}
	for i := range b.Vertices {
		if b.Vertices[i] != bCopy.Vertices[i] {
			t.Fatal("mesh B mutated")
		}
	}
}

func TestConvenienceEntries(t *testing.T) {
	engine := &recordingEngine{result: box()}
	op := NewOperator(engine)
	op.Difference(box(), cutter())
	op.CutPiece(box(), cutter())

	if len(engine.kinds) != 2 || engine.kinds[0] != Difference || engine.kinds[1] != Intersection {
		t.Errorf("kinds = %v, want [Difference Intersection]", engine.kinds)
	}
}

func TestKindStrings(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"union", Union},
		{"Intersection", Intersection},
		{" difference ", Difference},
		{"d", Difference},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseKind(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseKind("xor"); err == nil {
		t.Error("ParseKind accepted xor")
	}
	if Difference.String() != "Difference (A-B)" {
		t.Errorf("Difference.String() = %q", Difference.String())
	}
}
