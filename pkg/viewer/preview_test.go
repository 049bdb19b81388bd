package viewer

import (
	"image/color"
	"math"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"

	"github.com/meshcut/meshcut/pkg/geometry"
	"github.com/meshcut/meshcut/pkg/primitive"
	"github.com/meshcut/meshcut/pkg/render"
)

func newTestPreview(t *testing.T) *Preview {
	t.Helper()
	test.NewTempApp(t)
	p := NewPreview(render.DefaultPalette())
	w := test.NewTempWindow(t, p)
	w.Resize(fyne.NewSize(500, 400))
	return p
}

func TestDragRotates(t *testing.T) {
	p := newTestPreview(t)

	p.Dragged(&fyne.DragEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(120, 100)},
		Dragged:    fyne.NewDelta(20, 0),
	})
	cam := p.Camera()
	if cam.State != render.Dragging {
		t.Fatalf("drag failed: expected Dragging, got %v", cam.State)
	}
	if math.Abs(cam.Yaw-20*render.DragSensitivity) > 1e-6 {
		t.Errorf("yaw failed: expected %v, got %v", 20*render.DragSensitivity, cam.Yaw)
	}

	p.Dragged(&fyne.DragEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(120, 110)},
		Dragged:    fyne.NewDelta(0, 10),
	})
	if math.Abs(p.Camera().Pitch-10*render.DragSensitivity) > 1e-6 {
		t.Errorf("pitch failed: got %v", p.Camera().Pitch)
	}

	p.DragEnd()
	if p.Camera().State != render.Idle {
		t.Error("DragEnd should return to Idle")
	}
}

func TestScrollZooms(t *testing.T) {
	p := newTestPreview(t)
	p.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.NewDelta(0, ScrollPerNotch)})
	if math.Abs(p.Camera().Scale-render.ZoomStep) > 1e-9 {
		t.Errorf("scroll failed: expected %v, got %v", render.ZoomStep, p.Camera().Scale)
	}
	for i := 0; i < 200; i++ {
		p.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.NewDelta(0, -ScrollPerNotch)})
	}
	if p.Camera().Scale != render.MinScale {
		t.Errorf("scroll clamp failed: got %v", p.Camera().Scale)
	}
}

func TestKeysPanAndReset(t *testing.T) {
	p := newTestPreview(t)
	p.TypedKey(&fyne.KeyEvent{Name: fyne.KeyRight})
	p.TypedKey(&fyne.KeyEvent{Name: fyne.KeyUp})
	if got := p.Camera().Pan; got != geometry.NewVector2(PanStep, -PanStep) {
		t.Errorf("pan failed: got %v", got)
	}
	p.TypedRune('+')
	if p.Camera().Scale <= 1 {
		t.Error("+ should zoom in")
	}
	p.TypedRune('r')
	if p.Camera() != render.NewCamera() {
		t.Errorf("reset failed: got %+v", p.Camera())
	}
}

func TestResizeResetsPan(t *testing.T) {
	test.NewTempApp(t)
	p := NewPreview(render.DefaultPalette())
	w := test.NewTempWindow(t, p)
	w.Resize(fyne.NewSize(500, 400))

	p.TypedKey(&fyne.KeyEvent{Name: fyne.KeyLeft})
	if p.Camera().Pan == (geometry.Vector2{}) {
		t.Fatal("pan did not move")
	}
	w.Resize(fyne.NewSize(640, 480))
	if p.Camera().Pan != (geometry.Vector2{}) {
		t.Errorf("resize should reset pan, got %v", p.Camera().Pan)
	}
}

func TestDrawShowsScene(t *testing.T) {
	p := newTestPreview(t)

	empty := p.Frame(200, 150)
	if !empty.Empty() {
		t.Error("preview without meshes should show the placeholder")
	}

	box := primitive.GenerateBox(geometry.NewVector3(0, 0, 15), geometry.NewVector3(20, 20, 25))
	p.SetScene(render.Scene{Target: &box}, render.SelectAll)

	frame := p.Frame(200, 150)
	if len(frame.Polygons) != 12 {
		t.Fatalf("expected 12 polygons, got %d", len(frame.Polygons))
	}

	img := p.draw(200, 150)
	center := color.RGBAModel.Convert(img.At(100, 75)).(color.RGBA)
	if center == (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Error("box should cover the viewport center")
	}
}
