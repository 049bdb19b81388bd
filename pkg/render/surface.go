package render

import (
	"image/color"

	"github.com/meshcut/meshcut/pkg/geometry"
)

// TextAnchor positions a label relative to its point
type TextAnchor int

const (
	AnchorStart  TextAnchor = iota // point is the left end of the baseline
	AnchorMiddle                   // point is the center of the label
)

// Surface is a 2D drawing target. Coordinates are pixels, origin top-left,
// Y growing downward. Later calls paint over earlier ones.
type Surface interface {
	FillPolygon(points []geometry.Vector2, fill color.Color)
	Line(from, to geometry.Vector2, stroke color.Color, width float64)
	Text(at geometry.Vector2, text string, c color.Color, anchor TextAnchor)
}
