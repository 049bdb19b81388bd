package raster

import (
	"bytes"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/anthonynsimon/bild/imgio"

	"github.com/meshcut/meshcut/pkg/geometry"
	"github.com/meshcut/meshcut/pkg/mesh"
	"github.com/meshcut/meshcut/pkg/primitive"
	"github.com/meshcut/meshcut/pkg/render"
)

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

func TestFillPolygon(t *testing.T) {
	c := New(40, 40, white)
	c.FillPolygon([]geometry.Vector2{{X: 5, Y: 5}, {X: 35, Y: 5}, {X: 35, Y: 35}, {X: 5, Y: 35}}, color.RGBA{R: 255, A: 255})

	got := c.Image().RGBAAt(20, 20)
	if got.R != 255 || got.G != 0 || got.B != 0 {
		t.Errorf("fill failed: expected red at center, got %v", got)
	}
	if corner := c.Image().RGBAAt(1, 1); corner != white {
		t.Errorf("fill leaked outside the polygon: %v", corner)
	}
}

func TestFillPolygonIgnoresDegenerate(t *testing.T) {
	c := New(10, 10, white)
	c.FillPolygon([]geometry.Vector2{{X: 1, Y: 1}, {X: 8, Y: 8}}, color.Black)
	if got := c.Image().RGBAAt(4, 4); got != white {
		t.Errorf("two-point polygon should draw nothing, got %v", got)
	}
}

func TestTextDrawsPixels(t *testing.T) {
	c := New(120, 40, white)
	c.Text(geometry.NewVector2(60, 20), "No mesh loaded", color.Black, render.AnchorMiddle)

	dark := 0
	b := c.Image().Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if c.Image().RGBAAt(x, y).R < 128 {
				dark++
			}
		}
	}
	if dark == 0 {
		t.Error("text produced no pixels")
	}
}

func TestRenderFrameAndSave(t *testing.T) {
	box := primitive.GenerateBox(geometry.NewVector3(0, 0, 15), geometry.NewVector3(20, 20, 25))
	frame := render.BuildFrame(render.Scene{Target: &box}, render.NewCamera(), render.SelectAll,
		render.Viewport{Width: 200, Height: 150}, render.DefaultPalette())

	c := Render(frame, white)
	if got := c.Image().Bounds().Dx(); got != 200 {
		t.Fatalf("canvas width failed: expected 200, got %d", got)
	}

	var buf bytes.Buffer
	if err := c.WritePNG(&buf); err != nil {
		t.Fatalf("WritePNG failed: %v", err)
	}
	if _, err := png.Decode(&buf); err != nil {
		t.Fatalf("encoded PNG does not decode: %v", err)
	}

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := c.SavePNG(path); err != nil {
		t.Fatalf("SavePNG failed: %v", err)
	}
	img, err := imgio.Open(path)
	if err != nil {
		t.Fatalf("failed to reopen %s: %v", path, err)
	}
	if img.Bounds().Dy() != 150 {
		t.Errorf("saved height failed: expected 150, got %d", img.Bounds().Dy())
	}
}

func TestRenderEmptyFrame(t *testing.T) {
	empty := mesh.Mesh{}
	frame := render.BuildFrame(render.Scene{Target: &empty}, render.NewCamera(), render.SelectAll,
		render.Viewport{Width: 160, Height: 60}, render.DefaultPalette())
	c := Render(frame, white)
	if c.Image().Bounds().Dx() != 160 {
		t.Error("empty frame should still produce a full canvas")
	}
}
