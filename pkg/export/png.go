package export

import (
	"fmt"

	"git.sr.ht/~sbinet/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/HumyZ/treemap-visualiser/pkg/config"
	"github.com/HumyZ/treemap-visualiser/pkg/layout"
	"github.com/HumyZ/treemap-visualiser/pkg/tree"
)

// WritePNG renders the tree as a width×height PNG treemap at path,
// using the builtin Go regular face for labels.
func WritePNG(path string, root *tree.Node, width, height, maxDepth int, palette config.Palette) error {
	if root == nil {
		return errNoTree
	}
	if err := validateCanvas(width, height); err != nil {
		return err
	}

	face, err := regularFace(11)
	if err != nil {
		return err
	}

	bounds := layout.Rect{W: float64(width), H: float64(height)}
	placements := layout.Compute(root, bounds, maxDepth)

	dc := gg.NewContext(width, height)
	dc.SetHexColor("#0d0d0d")
	dc.Clear()
	dc.SetFontFace(face)

	for _, p := range placements {
		if !p.Leaf {
			continue
		}
		x, y, pw, ph := snap(p.Rect)
		if pw < 1 || ph < 1 {
			continue
		}
		dc.SetHexColor(palette.ColorAt(p.Depth, p.Index))
		dc.DrawRectangle(float64(x), float64(y), float64(pw), float64(ph))
		dc.FillPreserve()
		dc.SetHexColor("#000000")
		dc.SetLineWidth(1)
		dc.Stroke()

		if label := fitLabel(p.Node.Name, pw, ph); label != "" {
			dc.SetHexColor("#ffffff")
			dc.DrawString(label, float64(x+labelPad), float64(y+labelBaseline))
		}
	}

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func regularFace(points float64) (font.Face, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing builtin font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    points,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("building label face: %w", err)
	}
	return face, nil
}
