// Package render turns meshes into an ordered list of 2D drawing primitives
// with an orthographic camera and the painter's algorithm. It needs no 3D API:
// any Surface able to fill polygons, stroke lines and print text can show a
// Frame.
package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/samber/lo"

	"github.com/meshcut/meshcut/pkg/geometry"
)

// Camera interaction constants
const (
	DragSensitivity = 0.01 // radians per pixel
	ZoomStep        = 1.1  // scale factor per wheel notch
	MinScale        = 0.1
	MaxScale        = 10.0
)

// DragState is the pointer state of the camera
type DragState int

const (
	Idle DragState = iota
	Dragging
)

// Button identifies a pointer button
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonTertiary
)

// EventKind discriminates Event
type EventKind int

const (
	PointerDown EventKind = iota
	PointerMove
	PointerUp
	Wheel
	Resize
	Pan
	Reset
)

// Event is one interaction delivered to the camera. Position is used by the
// pointer kinds, Notches by Wheel and Delta by Pan.
type Event struct {
	Kind     EventKind
	Button   Button
	Position geometry.Vector2
	Notches  float64
	Delta    geometry.Vector2
}

// Camera holds the view state: rotation angles, user zoom, screen pan and the
// drag state machine.
type Camera struct {
	Pitch  float64 // rotation about X, applied first
	Yaw    float64 // rotation about Y
	Scale  float64
	Pan    geometry.Vector2
	State  DragState
	Anchor geometry.Vector2
}

// NewCamera returns the initial view: no rotation, unit scale, no pan.
func NewCamera() Camera {
	return Camera{Scale: 1}
}

// Apply returns the camera after e and whether the view must be redrawn.
func (c Camera) Apply(e Event) (Camera, bool) {
	switch e.Kind {
	case PointerDown:
		if e.Button != ButtonPrimary || c.State == Dragging {
			return c, false
		}
		c.State = Dragging
		c.Anchor = e.Position
		return c, false

	case PointerMove:
		if c.State != Dragging {
			return c, false
		}
		d := e.Position.Sub(c.Anchor)
		c.Yaw += d.X * DragSensitivity
		c.Pitch += d.Y * DragSensitivity
		c.Anchor = e.Position
		return c, true

	case PointerUp:
		if e.Button == ButtonPrimary {
			c.State = Idle
		}
		return c, false

	case Wheel:
		c.Scale = lo.Clamp(c.Scale*math.Pow(ZoomStep, e.Notches), MinScale, MaxScale)
		return c, true

	case Resize:
		c.Pan = geometry.Vector2{}
		return c, true

	case Pan:
		c.Pan = c.Pan.Add(e.Delta)
		return c, true

	case Reset:
		return NewCamera(), true
	}
	return c, false
}

// Rotation returns the view rotation: pitch about X, then yaw about Y.
func (c Camera) Rotation() mgl64.Mat3 {
	return mgl64.Rotate3DY(c.Yaw).Mul3(mgl64.Rotate3DX(c.Pitch))
}

// Rotate maps a model-space point into camera space. The rotated Z is the depth,
// larger values being farther from the viewer.
func (c Camera) Rotate(p geometry.Vector3) geometry.Vector3 {
	return geometry.FromVec(c.Rotation().Mul3x1(p.Vec()))
}
