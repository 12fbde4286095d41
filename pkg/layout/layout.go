// Package layout turns a weighted tree into screen-space rectangles
// with the slice-and-dice algorithm: every internal node splits its
// rectangle along the longer axis, each child receiving extent
// proportional to its share of the children's total weight.
//
// Geometry stays float64 end to end; consumers round once when they
// paint cells or pixels. Given the same tree, bounds, and depth limit
// the placement slice is always identical, ordering included.
package layout

import (
	"sort"

	"github.com/HumyZ/treemap-visualiser/pkg/tree"
)

// Rect is an axis-aligned rectangle in screen space.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Area returns the rectangle's area.
func (r Rect) Area() float64 {
	return r.W * r.H
}

// Degenerate reports whether the rectangle has no interior. Degenerate
// rectangles keep zero-weight nodes visible in the placement slice but
// are skipped by renderers and never hit.
func (r Rect) Degenerate() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains reports whether the point lies inside the half-open
// rectangle [X, X+W) × [Y, Y+H).
func (r Rect) Contains(x, y float64) bool {
	return !r.Degenerate() &&
		x >= r.X && x < r.X+r.W &&
		y >= r.Y && y < r.Y+r.H
}

// Placement binds one tree node to its rectangle. The flat slice of
// placements is rebuilt after every structural or weight change and is
// the single source for rendering and hit-testing.
type Placement struct {
	Node *tree.Node

	// Rect is the node's share of the bounds.
	Rect Rect

	// Depth is the node's distance from the layout root.
	Depth int

	// Index is the node's position among its (weight-ordered) siblings.
	Index int

	// Leaf marks placements that take part in hit-testing: true for
	// childless nodes and for internal nodes cut off by the depth
	// limit.
	Leaf bool
}

// Compute subdivides bounds over the tree rooted at root and returns a
// placement for every traversed node, parents before children. Children
// are ordered by weight descending, name ascending on ties, and the
// last positive-weight sibling absorbs the floating-point remainder so
// siblings always tile their parent exactly. A maxDepth of zero
// descends to the leaves; otherwise nodes at the limit are emitted as
// leaves. Zero-weight children receive degenerate rectangles at the
// running cursor; an internal node whose children sum to zero
// contributes no child placements.
func Compute(root *tree.Node, bounds Rect, maxDepth int) []Placement {
	if root == nil {
		return nil
	}
	placements := make([]Placement, 0, root.Count())
	place(root, bounds, 0, 0, maxDepth, &placements)
	return placements
}

func place(n *tree.Node, r Rect, depth, index, maxDepth int, out *[]Placement) {
	atLimit := maxDepth > 0 && depth >= maxDepth
	leaf := n.IsLeaf() || atLimit
	*out = append(*out, Placement{Node: n, Rect: r, Depth: depth, Index: index, Leaf: leaf})
	if leaf {
		return
	}

	children := ordered(n.Children)
	var total int64
	for _, c := range children {
		total += c.Weight
	}
	if total <= 0 {
		return
	}

	// The last positive-weight child absorbs the float remainder so the
	// children tile the parent exactly. Zero-weight children sort last
	// and sit degenerate at the far edge.
	lastPositive := -1
	for i, c := range children {
		if c.Weight > 0 {
			lastPositive = i
		}
	}

	horizontal := r.W >= r.H
	cursor := r.Y
	if horizontal {
		cursor = r.X
	}
	for i, c := range children {
		share := float64(c.Weight) / float64(total)
		if horizontal {
			w := r.W * share
			if i == lastPositive {
				w = r.X + r.W - cursor
			}
			place(c, Rect{X: cursor, Y: r.Y, W: w, H: r.H}, depth+1, i, maxDepth, out)
			cursor += w
		} else {
			h := r.H * share
			if i == lastPositive {
				h = r.Y + r.H - cursor
			}
			place(c, Rect{X: r.X, Y: cursor, W: r.W, H: h}, depth+1, i, maxDepth, out)
			cursor += h
		}
	}
}

// ordered returns the children sorted by weight descending, name
// ascending on equal weights, without touching the tree's own slice.
func ordered(children []*tree.Node) []*tree.Node {
	sorted := make([]*tree.Node, len(children))
	copy(sorted, children)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Weight != sorted[j].Weight {
			return sorted[i].Weight > sorted[j].Weight
		}
		return sorted[i].Name < sorted[j].Name
	})
	return sorted
}

// HitTest returns the deepest leaf placement whose rectangle contains
// the point, or nil when nothing is hit. Internal placements and
// degenerate rectangles never match.
func HitTest(placements []Placement, x, y float64) *Placement {
	var hit *Placement
	for i := range placements {
		p := &placements[i]
		if !p.Leaf || !p.Rect.Contains(x, y) {
			continue
		}
		if hit == nil || p.Depth > hit.Depth {
			hit = p
		}
	}
	return hit
}
