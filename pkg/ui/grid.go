package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/HumyZ/treemap-visualiser/pkg/layout"
	"github.com/HumyZ/treemap-visualiser/pkg/tree"
)

// cell is one terminal cell: a rune plus the style that paints it. Wide
// runes own their starting cell; continuation cells hold rune 0 and are
// skipped when the row is flushed.
type cell struct {
	r     rune
	style *lipgloss.Style
}

type cellGrid struct {
	width, height int
	cells         []cell
}

func newCellGrid(width, height int) *cellGrid {
	g := &cellGrid{width: width, height: height, cells: make([]cell, width*height)}
	for i := range g.cells {
		g.cells[i] = cell{r: ' ', style: &noStyle}
	}
	return g
}

func (g *cellGrid) set(x, y int, r rune, style *lipgloss.Style) {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return
	}
	g.cells[y*g.width+x] = cell{r: r, style: style}
}

// setText writes s from (x, y) rightwards, clipped at limit. Wide runes
// mark the cells they spill into so the flush does not emit them twice.
func (g *cellGrid) setText(x, y int, s string, limit int, style *lipgloss.Style) {
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if x+rw > limit {
			break
		}
		g.set(x, y, r, style)
		for i := 1; i < rw; i++ {
			g.set(x+i, y, 0, style)
		}
		x += rw
	}
}

// String flushes the grid row by row, batching cells that share a style
// into a single Render call.
func (g *cellGrid) String() string {
	var b strings.Builder
	for y := 0; y < g.height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		var run []rune
		var style *lipgloss.Style
		flush := func() {
			if len(run) == 0 {
				return
			}
			b.WriteString(style.Render(string(run)))
			run = run[:0]
		}
		for x := 0; x < g.width; x++ {
			c := g.cells[y*g.width+x]
			if c.r == 0 {
				continue
			}
			if c.style != style {
				flush()
				style = c.style
			}
			run = append(run, c.r)
		}
		flush()
	}
	return b.String()
}

// snapRect rounds each edge to the cell grid exactly once, so tiles that
// share a fractional edge keep sharing it after quantisation.
func snapRect(r layout.Rect) (x, y, w, h int) {
	x = int(math.Round(r.X))
	y = int(math.Round(r.Y))
	w = int(math.Round(r.X+r.W)) - x
	h = int(math.Round(r.Y+r.H)) - y
	return x, y, w, h
}

// renderGrid paints the leaf placements of a computed layout into a
// width×height cell grid and returns it as styled rows.
func renderGrid(placements []layout.Placement, width, height int, theme Theme, selected *tree.Node, bytes bool, labelMinWidth int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	g := newCellGrid(width, height)
	for _, p := range placements {
		if !p.Leaf {
			continue
		}
		x, y, w, h := snapRect(p.Rect)
		if w < 1 || h < 1 {
			continue
		}
		sel := selected != nil && p.Node == selected
		paintTile(g, p, x, y, w, h, theme, sel, bytes, labelMinWidth)
	}
	return g.String()
}

func paintTile(g *cellGrid, p layout.Placement, x, y, w, h int, theme Theme, selected, bytes bool, labelMinWidth int) {
	fill := theme.fill(p.Depth, p.Index)
	border := theme.border(p.Depth, p.Index, selected)
	label := theme.label(p.Depth, p.Index, selected)

	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			g.set(xx, yy, ' ', fill)
		}
	}

	if w >= 2 && h >= 2 {
		g.set(x, y, '┌', border)
		g.set(x+w-1, y, '┐', border)
		g.set(x, y+h-1, '└', border)
		g.set(x+w-1, y+h-1, '┘', border)
		for xx := x + 1; xx < x+w-1; xx++ {
			g.set(xx, y, '─', border)
			g.set(xx, y+h-1, '─', border)
		}
		for yy := y + 1; yy < y+h-1; yy++ {
			g.set(x, yy, '│', border)
			g.set(x+w-1, yy, '│', border)
		}
	}

	// Frame plus one cell of padding on each side.
	avail := w - 4
	if avail < labelMinWidth || h < 3 {
		return
	}
	g.setText(x+2, y+1, runewidth.Truncate(p.Node.Name, avail, "…"), x+2+avail, label)
	if h >= 4 {
		g.setText(x+2, y+2, runewidth.Truncate(humanWeight(p.Node.Weight, bytes), avail, "…"), x+2+avail, label)
	}
}
