package render

import (
	"fmt"
	"strings"
)

// Selection chooses which layers a frame shows
type Selection int

const (
	SelectAll Selection = iota
	SelectTarget
	SelectCutter
	SelectResult
)

// Selections lists every selection in menu order.
var Selections = []Selection{SelectTarget, SelectCutter, SelectResult, SelectAll}

// Layers returns the layers drawn for s in paint order.
func (s Selection) Layers() []Layer {
	switch s {
	case SelectTarget:
		return []Layer{LayerTarget}
	case SelectCutter:
		return []Layer{LayerCutter}
	case SelectResult:
		return []Layer{LayerResult}
	default:
		return []Layer{LayerTarget, LayerCutter, LayerResult}
	}
}

// String returns the display name
func (s Selection) String() string {
	switch s {
	case SelectTarget:
		return "Target"
	case SelectCutter:
		return "Cutter"
	case SelectResult:
		return "Result"
	default:
		return "All"
	}
}

// ParseSelection accepts the display names case-insensitively. "original" is
// an alias for the target.
func ParseSelection(s string) (Selection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "all", "":
		return SelectAll, nil
	case "target", "original":
		return SelectTarget, nil
	case "cutter":
		return SelectCutter, nil
	case "result":
		return SelectResult, nil
	}
	return SelectAll, fmt.Errorf("unknown selection %q (expected target, cutter, result or all)", s)
}
