package export

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/HumyZ/treemap-visualiser/pkg/config"
	"github.com/HumyZ/treemap-visualiser/pkg/layout"
	"github.com/HumyZ/treemap-visualiser/pkg/tree"
)

// WriteSVG renders the tree as a width×height SVG treemap: one filled,
// outlined rect per visible leaf, labeled when the rectangle has room.
func WriteSVG(w io.Writer, root *tree.Node, width, height, maxDepth int, palette config.Palette) error {
	if root == nil {
		return errNoTree
	}
	if err := validateCanvas(width, height); err != nil {
		return err
	}

	bounds := layout.Rect{W: float64(width), H: float64(height)}
	placements := layout.Compute(root, bounds, maxDepth)

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:#0d0d0d")
	for _, p := range placements {
		if !p.Leaf {
			continue
		}
		x, y, pw, ph := snap(p.Rect)
		if pw < 1 || ph < 1 {
			continue
		}
		fill := palette.ColorAt(p.Depth, p.Index)
		canvas.Rect(x, y, pw, ph, fmt.Sprintf("fill:%s;stroke:#000000;stroke-width:1", fill))
		if label := fitLabel(p.Node.Name, pw, ph); label != "" {
			canvas.Text(x+labelPad, y+labelBaseline, label,
				"font-family:monospace;font-size:11px;fill:#ffffff")
		}
	}
	canvas.End()
	return nil
}
