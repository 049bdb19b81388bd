// Package raster implements render.Surface on an in-memory RGBA image using
// draw2d for antialiased paths and x/image for labels.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/llgcode/draw2d/draw2dimg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/meshcut/meshcut/pkg/geometry"
	"github.com/meshcut/meshcut/pkg/render"
)

// Compile-time interface check.
var _ render.Surface = (*Canvas)(nil)

// Canvas is a raster drawing surface
type Canvas struct {
	img  *image.RGBA
	gc   *draw2dimg.GraphicContext
	face font.Face
}

// New creates a width x height canvas cleared to background.
func New(width, height int, background color.Color) *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, max(width, 1), max(height, 1)))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	return &Canvas{
		img:  img,
		gc:   draw2dimg.NewGraphicContext(img),
		face: basicfont.Face7x13,
	}
}

// Image returns the backing image.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// FillPolygon fills a closed polygon.
func (c *Canvas) FillPolygon(points []geometry.Vector2, fill color.Color) {
	if len(points) < 3 {
		return
	}
	c.gc.BeginPath()
	c.gc.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		c.gc.LineTo(p.X, p.Y)
	}
	c.gc.Close()
	c.gc.SetFillColor(fill)
	c.gc.Fill()
}

// Line strokes a segment.
func (c *Canvas) Line(from, to geometry.Vector2, stroke color.Color, width float64) {
	c.gc.BeginPath()
	c.gc.MoveTo(from.X, from.Y)
	c.gc.LineTo(to.X, to.Y)
	c.gc.SetStrokeColor(stroke)
	c.gc.SetLineWidth(width)
	c.gc.Stroke()
}

// Text draws a label with the fixed 7x13 face.
func (c *Canvas) Text(at geometry.Vector2, text string, col color.Color, anchor render.TextAnchor) {
	x, y := at.X, at.Y
	if anchor == render.AnchorMiddle {
		width := font.MeasureString(c.face, text)
		metrics := c.face.Metrics()
		x -= float64(width.Round()) / 2
		y += float64(metrics.Ascent.Round()-metrics.Descent.Round()) / 2
	}

	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: c.face,
		Dot:  fixed.P(int(x), int(y)),
	}
	d.DrawString(text)
}

// WritePNG encodes the canvas as PNG.
func (c *Canvas) WritePNG(w io.Writer) error {
	if err := imgio.PNGEncoder()(w, c.img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// SavePNG writes the canvas to a PNG file.
func (c *Canvas) SavePNG(path string) error {
	if err := imgio.Save(path, c.img, imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// Render draws frame onto a new canvas of the frame's viewport size.
func Render(frame render.Frame, background color.Color) *Canvas {
	c := New(int(frame.Viewport.Width), int(frame.Viewport.Height), background)
	frame.Draw(c)
	return c
}
