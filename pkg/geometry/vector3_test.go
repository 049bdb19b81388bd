package geometry

import (
	"math"
	"testing"
)

func TestVector3Add(t *testing.T) {
	result := NewVector3(1, 2, 3).Add(NewVector3(4, 5, 6))

	expected := NewVector3(5, 7, 9)
	if result != expected {
		t.Errorf("Add failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Sub(t *testing.T) {
	result := NewVector3(5, 7, 9).Sub(NewVector3(1, 2, 3))

	expected := NewVector3(4, 5, 6)
	if result != expected {
		t.Errorf("Sub failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Length(t *testing.T) {
	length := NewVector3(3, 4, 0).Length()

	if math.Abs(length-5.0) > 1e-10 {
		t.Errorf("Length failed: expected 5, got %v", length)
	}
}

func TestVector3NormalizeZero(t *testing.T) {
	if n := (Vector3{}).Normalize(); !n.IsZero() {
		t.Errorf("Normalize of zero vector should stay zero, got %v", n)
	}
}

func TestVector3Cross(t *testing.T) {
	result := NewVector3(1, 0, 0).Cross(NewVector3(0, 1, 0))

	expected := NewVector3(0, 0, 1)
	if result != expected {
		t.Errorf("Cross failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Dot(t *testing.T) {
	result := NewVector3(1, 2, 3).Dot(NewVector3(4, 5, 6))

	if math.Abs(result-32.0) > 1e-10 {
		t.Errorf("Dot failed: expected 32, got %v", result)
	}
}

func TestVector3MathglRoundTrip(t *testing.T) {
	v := NewVector3(1.5, -2, 7)
	if got := FromVec(v.Vec()); got != v {
		t.Errorf("FromVec(Vec()) = %v, want %v", got, v)
	}
}

func TestBoundingBox(t *testing.T) {
	bbox := NewBoundingBox()
	if !bbox.IsEmpty() {
		t.Fatal("new bounding box should be empty")
	}
	if size := bbox.Size(); !size.IsZero() {
		t.Errorf("empty box size should be zero, got %v", size)
	}

	bbox.Extend(NewVector3(-10, -10, 2.5))
	bbox.Extend(NewVector3(10, 10, 27.5))

	if got := bbox.Size(); got != NewVector3(20, 20, 25) {
		t.Errorf("Size failed: got %v", got)
	}
	if got := bbox.Center(); got != NewVector3(0, 0, 15) {
		t.Errorf("Center failed: got %v", got)
	}
	if got := bbox.MaxExtent(); got != 25 {
		t.Errorf("MaxExtent failed: got %v", got)
	}

	var other = NewBoundingBox()
	other.Extend(NewVector3(0, 0, 100))
	bbox.Union(other)
	if bbox.Max.Z != 100 {
		t.Errorf("Union failed: max Z = %v", bbox.Max.Z)
	}
}
