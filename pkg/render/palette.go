package render

import (
	"image/color"
	"math"
)

// Layer is one of the three meshes a scene can show
type Layer int

const (
	LayerTarget Layer = iota
	LayerCutter
	LayerResult
)

// String returns the layer name
func (l Layer) String() string {
	switch l {
	case LayerTarget:
		return "target"
	case LayerCutter:
		return "cutter"
	case LayerResult:
		return "result"
	default:
		return "unknown"
	}
}

// FillAlphaFactor scales a layer's opacity into its face fill alpha.
const FillAlphaFactor = 0.3

// Style is the color and opacity of a layer
type Style struct {
	Color   color.RGBA `yaml:"color"`
	Opacity float64    `yaml:"opacity"`
}

// Fill returns the translucent face fill color.
func (s Style) Fill() color.NRGBA {
	a := math.Max(0, math.Min(1, s.Opacity*FillAlphaFactor))
	return color.NRGBA{R: s.Color.R, G: s.Color.G, B: s.Color.B, A: uint8(math.Round(a * 255))}
}

// Outline returns the opaque edge color.
func (s Style) Outline() color.NRGBA {
	return color.NRGBA{R: s.Color.R, G: s.Color.G, B: s.Color.B, A: 255}
}

// Palette assigns a Style to each layer
type Palette struct {
	Target     Style      `yaml:"target"`
	Cutter     Style      `yaml:"cutter"`
	Result     Style      `yaml:"result"`
	Background color.RGBA `yaml:"background"`
	Text       color.RGBA `yaml:"text"`
}

// DefaultPalette returns blue target, red cutter and green result on white.
func DefaultPalette() Palette {
	return Palette{
		Target:     Style{Color: color.RGBA{R: 100, G: 150, B: 255, A: 255}, Opacity: 0.7},
		Cutter:     Style{Color: color.RGBA{R: 255, G: 100, B: 100, A: 255}, Opacity: 0.5},
		Result:     Style{Color: color.RGBA{R: 100, G: 255, B: 150, A: 255}, Opacity: 1.0},
		Background: color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Text:       color.RGBA{R: 40, G: 40, B: 40, A: 255},
	}
}

// Style returns the style for l
func (p Palette) Style(l Layer) Style {
	switch l {
	case LayerCutter:
		return p.Cutter
	case LayerResult:
		return p.Result
	default:
		return p.Target
	}
}
