// Package viewer provides a fyne widget showing a render.Frame that reacts to
// drag, scroll and keyboard input.
package viewer

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/meshcut/meshcut/pkg/geometry"
	"github.com/meshcut/meshcut/pkg/render"
	"github.com/meshcut/meshcut/pkg/render/raster"
)

// Input tuning
const (
	ScrollPerNotch = 10.0 // fyne scroll units per wheel notch
	PanStep        = 10.0 // pixels per arrow key press
)

var (
	_ fyne.Draggable     = (*Preview)(nil)
	_ fyne.Scrollable    = (*Preview)(nil)
	_ fyne.Focusable     = (*Preview)(nil)
	_ fyne.Tappable      = (*Preview)(nil)
	_ desktop.Cursorable = (*Preview)(nil)
)

// Preview is the mesh preview widget
type Preview struct {
	widget.BaseWidget
	camera    render.Camera
	scene     render.Scene
	selection render.Selection
	palette   render.Palette
	size      fyne.Size
	raster    *canvas.Raster
	onChange  func(render.Camera)
}

// NewPreview creates an empty preview.
func NewPreview(palette render.Palette) *Preview {
	p := &Preview{
		camera:    render.NewCamera(),
		selection: render.SelectAll,
		palette:   palette,
	}
	p.raster = canvas.NewRaster(p.draw)
	p.ExtendBaseWidget(p)
	return p
}

// SetScene replaces the shown meshes and selection and redraws.
func (p *Preview) SetScene(scene render.Scene, sel render.Selection) {
	p.scene = scene
	p.selection = sel
	p.Refresh()
}

// SetOnCameraChange registers a callback run after every camera change that redraws.
func (p *Preview) SetOnCameraChange(callback func(render.Camera)) {
	p.onChange = callback
}

// Camera returns the current camera.
func (p *Preview) Camera() render.Camera {
	return p.camera
}

// Apply feeds one interaction event to the camera and redraws when needed.
func (p *Preview) Apply(e render.Event) {
	cam, redraw := p.camera.Apply(e)
	p.camera = cam
	if !redraw {
		return
	}
	p.Refresh()
	if p.onChange != nil {
		p.onChange(cam)
	}
}

// ResetView restores the initial camera.
func (p *Preview) ResetView() {
	p.Apply(render.Event{Kind: render.Reset})
}

// Frame builds the frame for a w x h pixel viewport. Pan is given in widget
// units and scaled to pixels.
func (p *Preview) Frame(w, h int) render.Frame {
	cam := p.camera
	if p.size.Width > 0 {
		ratio := float64(w) / float64(p.size.Width)
		cam.Pan = geometry.NewVector2(cam.Pan.X*ratio, cam.Pan.Y*ratio)
	}
	vp := render.Viewport{Width: float64(w), Height: float64(h)}
	return render.BuildFrame(p.scene, cam, p.selection, vp, p.palette)
}

func (p *Preview) draw(w, h int) image.Image {
	return raster.Render(p.Frame(w, h), p.palette.Background).Image()
}

// CreateRenderer creates the renderer for the widget
func (p *Preview) CreateRenderer() fyne.WidgetRenderer {
	return &previewRenderer{preview: p}
}

// Dragged handles mouse drag events for rotation
func (p *Preview) Dragged(event *fyne.DragEvent) {
	pos := geometry.NewVector2(float64(event.Position.X), float64(event.Position.Y))
	if p.camera.State == render.Idle {
		start := pos.Sub(geometry.NewVector2(float64(event.Dragged.DX), float64(event.Dragged.DY)))
		p.Apply(render.Event{Kind: render.PointerDown, Button: render.ButtonPrimary, Position: start})
	}
	p.Apply(render.Event{Kind: render.PointerMove, Position: pos})
}

// DragEnd handles the end of a drag event
func (p *Preview) DragEnd() {
	p.Apply(render.Event{Kind: render.PointerUp, Button: render.ButtonPrimary})
}

// Scrolled handles scroll events for zooming
func (p *Preview) Scrolled(event *fyne.ScrollEvent) {
	p.Apply(render.Event{Kind: render.Wheel, Notches: float64(event.Scrolled.DY) / ScrollPerNotch})
}

// Tapped takes keyboard focus.
func (p *Preview) Tapped(*fyne.PointEvent) {
	if c := fyne.CurrentApp().Driver().CanvasForObject(p); c != nil {
		c.Focus(p)
	}
}

// Cursor shows a crosshair over the preview.
func (p *Preview) Cursor() desktop.Cursor {
	return desktop.CrosshairCursor
}

// FocusGained implements fyne.Focusable.
func (p *Preview) FocusGained() {}

// FocusLost implements fyne.Focusable.
func (p *Preview) FocusLost() {}

// TypedRune zooms with + and - and resets with r.
func (p *Preview) TypedRune(r rune) {
	switch r {
	case '+', '=':
		p.Apply(render.Event{Kind: render.Wheel, Notches: 1})
	case '-':
		p.Apply(render.Event{Kind: render.Wheel, Notches: -1})
	case 'r', 'R':
		p.ResetView()
	}
}

// TypedKey pans with the arrow keys.
func (p *Preview) TypedKey(event *fyne.KeyEvent) {
	var d geometry.Vector2
	switch event.Name {
	case fyne.KeyLeft:
		d = geometry.NewVector2(-PanStep, 0)
	case fyne.KeyRight:
		d = geometry.NewVector2(PanStep, 0)
	case fyne.KeyUp:
		d = geometry.NewVector2(0, -PanStep)
	case fyne.KeyDown:
		d = geometry.NewVector2(0, PanStep)
	case fyne.KeyHome:
		p.ResetView()
		return
	default:
		return
	}
	p.Apply(render.Event{Kind: render.Pan, Delta: d})
}

// previewRenderer implements fyne.WidgetRenderer
type previewRenderer struct {
	preview *Preview
}

func (r *previewRenderer) Layout(size fyne.Size) {
	p := r.preview
	p.raster.Resize(size)
	if size != p.size {
		p.size = size
		p.Apply(render.Event{Kind: render.Resize})
	}
}

func (r *previewRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 300)
}

func (r *previewRenderer) Refresh() {
	canvas.Refresh(r.preview.raster)
}

func (r *previewRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.preview.raster}
}

func (r *previewRenderer) Destroy() {}
