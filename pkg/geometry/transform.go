package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/samber/lo"
)

// ParallelTolerance is the |cos| above which two directions are treated as
// parallel and no rotation is computed between them.
const ParallelTolerance = 0.9999

// ZAxis is the axis primitives are authored along
var ZAxis = Vector3{X: 0, Y: 0, Z: 1}

// AxisAngle returns the rotation that takes from onto to. The angle is always
// finite (acos of the clamped dot product); when the directions are parallel or
// antiparallel within ParallelTolerance the axis is zero and parallel is true.
func AxisAngle(from, to Vector3) (axis Vector3, angle float64, parallel bool) {
	f := from.Normalize()
	t := to.Normalize()
	d := f.Dot(t)
	angle = math.Acos(lo.Clamp(d, -1.0, 1.0))
	if math.Abs(d) > ParallelTolerance {
		return Vector3{}, angle, true
	}
	return f.Cross(t).Normalize(), angle, false
}

// Transform is a 3D affine transform
type Transform struct {
	m mgl64.Mat4
}

// Identity returns the identity transform
func Identity() Transform {
	return Transform{m: mgl64.Ident4()}
}

// Translation returns a pure translation by offset
func Translation(offset Vector3) Transform {
	return Transform{m: mgl64.Translate3D(offset.X, offset.Y, offset.Z)}
}

// Rotation returns a right-handed rotation of angle radians about axis
func Rotation(axis Vector3, angle float64) Transform {
	if axis.IsZero() {
		return Identity()
	}
	return Transform{m: mgl64.HomogRotate3D(angle, axis.Normalize().Vec())}
}

// Then returns the transform that applies t first and next afterwards
func (t Transform) Then(next Transform) Transform {
	return Transform{m: next.m.Mul4(t.m)}
}

// Apply transforms a point
func (t Transform) Apply(p Vector3) Vector3 {
	return FromVec(mgl64.TransformCoordinate(p.Vec(), t.m))
}

// AlignZ returns the rigid transform that turns the +Z axis onto direction and
// moves the origin to position. Near-parallel and antiparallel directions get
// translation only; a zero direction counts as +Z.
func AlignZ(position, direction Vector3) Transform {
	if direction.IsZero() {
		return Translation(position)
	}
	axis, angle, parallel := AxisAngle(ZAxis, direction)
	if parallel {
		return Translation(position)
	}
	return Rotation(axis, angle).Then(Translation(position))
}
