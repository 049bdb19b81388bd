package render

import (
	"image/color"
	"math"
	"slices"

	"github.com/samber/lo"

	"github.com/meshcut/meshcut/pkg/geometry"
	"github.com/meshcut/meshcut/pkg/mesh"
)

// Frame layout constants
const (
	MinModelExtent = 50.0 // smallest extent used for auto scale
	FitMargin      = 1.5  // viewport fraction left around the model
	AxisLength     = 40.0 // indicator length in pixels
	AxisInset      = 30.0 // indicator origin distance from the bottom-left corner
	AxisLabelGap   = 10.0
	OutlineWidth   = 1.0
	AxisWidth      = 2.0
	EmptyMessage   = "No mesh loaded"
)

var axisColors = [3]color.NRGBA{
	{R: 255, A: 255},
	{G: 255, A: 255},
	{B: 255, A: 255},
}

// Viewport is the pixel size of the drawing surface
type Viewport struct {
	Width, Height float64
}

// Center returns the middle of the viewport.
func (v Viewport) Center() geometry.Vector2 {
	return geometry.NewVector2(v.Width/2, v.Height/2)
}

// Scene is the set of meshes a frame may draw. Nil or empty meshes are skipped.
type Scene struct {
	Target *mesh.Mesh
	Cutter *mesh.Mesh
	Result *mesh.Mesh
}

// Mesh returns the mesh of layer l, or nil.
func (s Scene) Mesh(l Layer) *mesh.Mesh {
	switch l {
	case LayerTarget:
		return s.Target
	case LayerCutter:
		return s.Cutter
	case LayerResult:
		return s.Result
	}
	return nil
}

// Polygon is one projected face
type Polygon struct {
	Layer   Layer
	Face    int
	Points  [3]geometry.Vector2
	Depth   float64
	Fill    color.NRGBA
	Outline color.NRGBA
}

// AxisLine is one arm of the orientation indicator
type AxisLine struct {
	Label   string
	From    geometry.Vector2
	To      geometry.Vector2
	LabelAt geometry.Vector2
	Color   color.NRGBA
}

// Frame is a complete, ordered drawing. Polygons are sorted far to near.
type Frame struct {
	Viewport    Viewport
	Scale       float64
	Polygons    []Polygon
	Axes        []AxisLine
	Placeholder string
	TextColor   color.NRGBA
}

// Empty reports whether the frame shows the placeholder instead of meshes.
func (f Frame) Empty() bool {
	return f.Placeholder != ""
}

// FitScale returns the pixels-per-unit scale that fits bounds into vp at user
// zoom 1.
func FitScale(bounds geometry.BoundingBox, vp Viewport) float64 {
	extent := math.Max(MinModelExtent, bounds.MaxExtent())
	return math.Min(vp.Width, vp.Height) / (extent * FitMargin)
}

// Project maps a model-space point to screen coordinates and depth.
func Project(p geometry.Vector3, cam Camera, vp Viewport, scale float64) (geometry.Vector2, float64) {
	r := cam.Rotate(p)
	return screenPoint(r, cam, vp, scale), r.Z
}

func screenPoint(r geometry.Vector3, cam Camera, vp Viewport, scale float64) geometry.Vector2 {
	origin := vp.Center().Add(cam.Pan)
	return geometry.NewVector2(origin.X+r.X*scale, origin.Y-r.Y*scale)
}

// BuildFrame projects the selected layers of scene through cam. It does not
// modify its inputs.
func BuildFrame(scene Scene, cam Camera, sel Selection, vp Viewport, pal Palette) Frame {
	frame := Frame{
		Viewport:  vp,
		TextColor: toNRGBA(pal.Text),
	}

	layers := lo.Filter(sel.Layers(), func(l Layer, _ int) bool {
		m := scene.Mesh(l)
		return m != nil && !m.IsEmpty()
	})
	if len(layers) == 0 {
		frame.Placeholder = EmptyMessage
		return frame
	}

	bounds := geometry.NewBoundingBox()
	for _, l := range layers {
		bounds.Union(scene.Mesh(l).BoundingBox())
	}
	frame.Scale = FitScale(bounds, vp) * cam.Scale

	rot := cam.Rotation()
	for _, l := range layers {
		m := scene.Mesh(l)
		style := pal.Style(l)
		fill, outline := style.Fill(), style.Outline()

		rotated := lo.Map(m.Vertices, func(v geometry.Vector3, _ int) geometry.Vector3 {
			return geometry.FromVec(rot.Mul3x1(v.Vec()))
		})

		for i, f := range m.Faces {
			if !m.FaceValid(f) {
				continue
			}
			a, b, c := rotated[f[0]], rotated[f[1]], rotated[f[2]]
			frame.Polygons = append(frame.Polygons, Polygon{
				Layer: l,
				Face:  i,
				Points: [3]geometry.Vector2{
					screenPoint(a, cam, vp, frame.Scale),
					screenPoint(b, cam, vp, frame.Scale),
					screenPoint(c, cam, vp, frame.Scale),
				},
				Depth:   (a.Z + b.Z + c.Z) / 3,
				Fill:    fill,
				Outline: outline,
			})
		}
	}

	slices.SortStableFunc(frame.Polygons, func(p, q Polygon) int {
		switch {
		case p.Depth > q.Depth:
			return -1
		case p.Depth < q.Depth:
			return 1
		}
		return 0
	})

	frame.Axes = buildAxes(cam, vp)
	return frame
}

func buildAxes(cam Camera, vp Viewport) []AxisLine {
	origin := geometry.NewVector2(AxisInset, vp.Height-AxisInset)
	labels := [3]string{"X", "Y", "Z"}
	units := [3]geometry.Vector3{
		geometry.NewVector3(1, 0, 0),
		geometry.NewVector3(0, 1, 0),
		geometry.NewVector3(0, 0, 1),
	}

	axes := make([]AxisLine, 3)
	for i, u := range units {
		r := cam.Rotate(u)
		dir := geometry.NewVector2(r.X, -r.Y)
		axes[i] = AxisLine{
			Label:   labels[i],
			From:    origin,
			To:      origin.Add(geometry.NewVector2(dir.X*AxisLength, dir.Y*AxisLength)),
			LabelAt: origin.Add(geometry.NewVector2(dir.X*(AxisLength+AxisLabelGap), dir.Y*(AxisLength+AxisLabelGap))),
			Color:   axisColors[i],
		}
	}
	return axes
}

// Draw replays the frame onto s: every fill back to front, then every outline,
// then the axis indicator. An empty frame draws only the placeholder.
func (f Frame) Draw(s Surface) {
	if f.Empty() {
		s.Text(f.Viewport.Center(), f.Placeholder, f.TextColor, AnchorMiddle)
		return
	}

	for _, p := range f.Polygons {
		s.FillPolygon(p.Points[:], p.Fill)
	}
	for _, p := range f.Polygons {
		for i := range p.Points {
			s.Line(p.Points[i], p.Points[(i+1)%3], p.Outline, OutlineWidth)
		}
	}
	for _, a := range f.Axes {
		s.Line(a.From, a.To, a.Color, AxisWidth)
		s.Text(a.LabelAt, a.Label, a.Color, AnchorMiddle)
	}
}

func toNRGBA(c color.RGBA) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}
