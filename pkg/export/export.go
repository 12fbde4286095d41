// Package export renders the in-memory tree into static artifacts:
// an SVG treemap, a PNG rasterization, and a markdown report. Exports
// are presentation-only snapshots of the current tree; none of them
// can be loaded back.
package export

import (
	"errors"
	"fmt"
	"math"

	"github.com/mattn/go-runewidth"

	"github.com/HumyZ/treemap-visualiser/pkg/layout"
)

// errNoTree is returned when an export is asked to render a nil root.
var errNoTree = errors.New("no tree to export")

const (
	// labelPad is the pixel inset of a label inside its rectangle.
	labelPad = 4
	// glyphPx approximates one monospace cell at the export font size.
	glyphPx = 7
	// labelBaseline is the pixel offset of the label baseline.
	labelBaseline = 13
	// minLabelCells is the narrowest label worth drawing.
	minLabelCells = 3
)

func validateCanvas(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid canvas %dx%d", width, height)
	}
	return nil
}

// snap rounds a float rectangle onto the pixel grid, rounding each
// edge once so neighbors stay flush.
func snap(r layout.Rect) (x, y, w, h int) {
	x = int(math.Round(r.X))
	y = int(math.Round(r.Y))
	w = int(math.Round(r.X+r.W)) - x
	h = int(math.Round(r.Y+r.H)) - y
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return x, y, w, h
}

// fitLabel truncates name to the cells available in a w×h pixel
// rectangle, returning "" when no readable label fits.
func fitLabel(name string, w, h int) string {
	if h < labelBaseline+labelPad {
		return ""
	}
	cells := (w - 2*labelPad) / glyphPx
	if cells < minLabelCells {
		return ""
	}
	return runewidth.Truncate(name, cells, "…")
}
