// Package svgsurface implements render.Surface as an SVG document writer.
package svgsurface

import (
	"fmt"
	"image/color"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/meshcut/meshcut/pkg/geometry"
	"github.com/meshcut/meshcut/pkg/render"
)

// Compile-time interface check.
var _ render.Surface = (*Surface)(nil)

// Surface streams drawing calls into an SVG document. Call End once done.
type Surface struct {
	canvas *svg.SVG
}

// New starts a width x height document on w with a background rectangle.
func New(w io.Writer, width, height int, background color.Color) *Surface {
	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, fillStyle(background))
	return &Surface{canvas: canvas}
}

// FillPolygon emits a filled polygon without stroke.
func (s *Surface) FillPolygon(points []geometry.Vector2, fill color.Color) {
	if len(points) < 3 {
		return
	}
	xs := make([]int, len(points))
	ys := make([]int, len(points))
	for i, p := range points {
		xs[i], ys[i] = round(p.X), round(p.Y)
	}
	s.canvas.Polygon(xs, ys, fillStyle(fill)+";stroke:none")
}

// Line emits a stroked segment.
func (s *Surface) Line(from, to geometry.Vector2, stroke color.Color, width float64) {
	r, g, b, a := channels(stroke)
	s.canvas.Line(round(from.X), round(from.Y), round(to.X), round(to.Y),
		fmt.Sprintf("stroke:rgb(%d,%d,%d);stroke-opacity:%.3f;stroke-width:%g", r, g, b, a, width))
}

// Text emits a label.
func (s *Surface) Text(at geometry.Vector2, text string, c color.Color, anchor render.TextAnchor) {
	style := fillStyle(c) + ";font-family:sans-serif;font-size:12px"
	if anchor == render.AnchorMiddle {
		style += ";text-anchor:middle;dominant-baseline:middle"
	}
	s.canvas.Text(round(at.X), round(at.Y), text, style)
}

// End closes the document.
func (s *Surface) End() {
	s.canvas.End()
}

// Render writes frame as a complete SVG document to w.
func Render(w io.Writer, frame render.Frame, background color.Color) {
	s := New(w, round(frame.Viewport.Width), round(frame.Viewport.Height), background)
	frame.Draw(s)
	s.End()
}

func fillStyle(c color.Color) string {
	r, g, b, a := channels(c)
	return fmt.Sprintf("fill:rgb(%d,%d,%d);fill-opacity:%.3f", r, g, b, a)
}

// channels returns straight (non-premultiplied) 8-bit color and alpha in [0,1].
func channels(c color.Color) (r, g, b uint8, a float64) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return n.R, n.G, n.B, float64(n.A) / 255
}

func round(v float64) int {
	return int(math.Round(v))
}
