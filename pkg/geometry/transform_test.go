package geometry

import (
	"math"
	"testing"
)

func TestAxisAngleParallel(t *testing.T) {
	axis, angle, parallel := AxisAngle(ZAxis, NewVector3(0, 0, 5))
	if !parallel {
		t.Fatal("expected parallel directions to be detected")
	}
	if !axis.IsZero() {
		t.Errorf("expected zero axis for parallel directions, got %v", axis)
	}
	if math.Abs(angle) > 1e-9 {
		t.Errorf("expected zero angle, got %v", angle)
	}
}

func TestAxisAngleAntiparallel(t *testing.T) {
	_, angle, parallel := AxisAngle(ZAxis, NewVector3(0, 0, -1))
	if !parallel {
		t.Error("antiparallel directions should take the translation-only branch")
	}
	if math.IsNaN(angle) {
		t.Fatal("angle is NaN")
	}
	if math.Abs(angle-math.Pi) > 1e-6 {
		t.Errorf("expected angle ~pi, got %v", angle)
	}
}

func TestAxisAnglePerpendicular(t *testing.T) {
	axis, angle, parallel := AxisAngle(ZAxis, NewVector3(1, 0, 0))
	if parallel {
		t.Fatal("perpendicular directions reported parallel")
	}
	if !axis.ApproxEqual(NewVector3(0, 1, 0), 1e-12) {
		t.Errorf("expected +Y axis, got %v", axis)
	}
	if math.Abs(angle-math.Pi/2) > 1e-12 {
		t.Errorf("expected pi/2, got %v", angle)
	}
}

func TestAlignZ(t *testing.T) {
	position := NewVector3(1, 2, 3)
	tests := []struct {
		name      string
		direction Vector3
		in        Vector3
		want      Vector3
	}{
		{"parallel is translation", ZAxis, NewVector3(1, 1, 1), NewVector3(2, 3, 4)},
		{"antiparallel is translation", NewVector3(0, 0, -2), NewVector3(1, 1, 1), NewVector3(2, 3, 4)},
		{"zero direction is translation", Vector3{}, NewVector3(0, 0, 1), NewVector3(1, 2, 4)},
		{"z onto x", NewVector3(3, 0, 0), NewVector3(0, 0, 1), NewVector3(2, 2, 3)},
		{"z onto y", NewVector3(0, 1, 0), NewVector3(0, 0, 1), NewVector3(1, 3, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AlignZ(position, tt.direction).Apply(tt.in)
			if !got.ApproxEqual(tt.want, 1e-9) {
				t.Errorf("AlignZ(%v).Apply(%v) = %v, want %v", tt.direction, tt.in, got, tt.want)
			}
		})
	}
}

func TestTransformThenOrder(t *testing.T) {
	rot := Rotation(NewVector3(0, 0, 1), math.Pi/2)
	move := Translation(NewVector3(10, 0, 0))

	got := rot.Then(move).Apply(NewVector3(1, 0, 0))
	if !got.ApproxEqual(NewVector3(10, 1, 0), 1e-9) {
		t.Errorf("rotate then translate = %v, want (10,1,0)", got)
	}
}
