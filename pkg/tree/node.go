// Package tree builds and mutates the weighted hierarchies the rest of
// the program visualizes. A tree comes from one of two builders — a
// filesystem walk or a population JSON file — and is then mutated only
// through Detach and Scale, both of which keep ancestor weights in sync.
package tree

import (
	"fmt"
	"math"
	"path"
	"sort"
)

// Node is a single element of the weighted hierarchy.
//
// For every internal node the weight equals the sum of its children's
// weights. The builders establish that invariant and every mutation
// restores it before returning.
type Node struct {
	// Name is the display name of this node (file name, country name).
	Name string `json:"name"`

	// Path is the slash-joined ancestry from the root, unique within a
	// build. Used for selection tracking across reloads and for drift
	// comparison.
	Path string `json:"path"`

	// Weight is the non-negative size of this subtree: bytes for
	// filesystem trees, population counts for population trees.
	Weight int64 `json:"weight"`

	// Dir marks filesystem directories so the UI can label and
	// humanize them appropriately.
	Dir bool `json:"dir,omitempty"`

	// Children are owned by this node. Builders keep the input order;
	// presentation ordering is the layout engine's concern.
	Children []*Node `json:"children,omitempty"`

	// Parent is a non-owning back-reference, nil for the root.
	Parent *Node `json:"-"`
}

// AddChild appends child to n, sets the parent back-reference, and
// derives the child's Path from n's Path when it isn't set yet.
func (n *Node) AddChild(child *Node) {
	child.Parent = n
	if child.Path == "" {
		child.Path = path.Join(n.Path, child.Name)
	}
	n.Children = append(n.Children, child)
}

// IsLeaf reports whether n has no children. Empty directories count as
// leaves for traversal purposes even though Dir is set.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Detach unlinks n from its parent, subtracts n's subtree weight from
// every ancestor, and returns the removed weight. Detaching a root is a
// no-op on structure (there is nothing to unlink from) but still
// returns the weight so callers can treat the tree as emptied.
func (n *Node) Detach() int64 {
	removed := n.Weight
	parent := n.Parent
	if parent == nil {
		return removed
	}
	for i, c := range parent.Children {
		if c == n {
			parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
			break
		}
	}
	n.Parent = nil
	for p := parent; p != nil; p = p.Parent {
		p.Weight -= removed
	}
	return removed
}

// Scale sets n's weight to round(weight × factor), clamped at zero, and
// propagates the delta up the ancestor chain. Children are left
// untouched; callers scale leaves.
func (n *Node) Scale(factor float64) {
	scaled := int64(math.Round(float64(n.Weight) * factor))
	if scaled < 0 {
		scaled = 0
	}
	delta := scaled - n.Weight
	n.Weight = scaled
	for p := n.Parent; p != nil; p = p.Parent {
		p.Weight += delta
	}
}

// Leaves returns every leaf of the subtree rooted at n, in traversal
// order.
func (n *Node) Leaves() []*Node {
	var leaves []*Node
	n.Walk(func(node *Node) {
		if node.IsLeaf() {
			leaves = append(leaves, node)
		}
	})
	return leaves
}

// Count returns the number of nodes in the subtree rooted at n,
// including n itself.
func (n *Node) Count() int {
	count := 0
	n.Walk(func(*Node) { count++ })
	return count
}

// Depth returns the height of the subtree rooted at n: zero for a
// leaf, one more than the deepest child otherwise.
func (n *Node) Depth() int {
	deepest := 0
	for _, c := range n.Children {
		if d := c.Depth() + 1; d > deepest {
			deepest = d
		}
	}
	return deepest
}

// Walk visits every node of the subtree rooted at n in depth-first
// pre-order.
func (n *Node) Walk(visit func(*Node)) {
	visit(n)
	for _, c := range n.Children {
		c.Walk(visit)
	}
}

// Find returns the node with the given path in the subtree rooted at
// n, or nil when no such node exists. Used to restore the selection
// after a live reload.
func (n *Node) Find(p string) *Node {
	var found *Node
	n.Walk(func(node *Node) {
		if found == nil && node.Path == p {
			found = node
		}
	})
	return found
}

// Validate recursively checks the structural invariants: non-negative
// weights, parent back-references, and weight equal to the children's
// sum for every internal node.
func (n *Node) Validate() error {
	if n.Weight < 0 {
		return fmt.Errorf("%s: negative weight %d", n.Path, n.Weight)
	}
	if n.IsLeaf() {
		return nil
	}
	var sum int64
	for _, c := range n.Children {
		if c.Parent != n {
			return fmt.Errorf("%s: child %s has a stale parent reference", n.Path, c.Name)
		}
		if err := c.Validate(); err != nil {
			return err
		}
		sum += c.Weight
	}
	if sum != n.Weight {
		return fmt.Errorf("%s: weight %d does not match children sum %d", n.Path, n.Weight, sum)
	}
	return nil
}

// TopLeaves returns the top-n leaves of the subtree by weight
// descending, name ascending on ties. Used by reports.
func (n *Node) TopLeaves(top int) []*Node {
	leaves := n.Leaves()
	sort.SliceStable(leaves, func(i, j int) bool {
		if leaves[i].Weight != leaves[j].Weight {
			return leaves[i].Weight > leaves[j].Weight
		}
		return leaves[i].Name < leaves[j].Name
	})
	if top > 0 && top < len(leaves) {
		leaves = leaves[:top]
	}
	return leaves
}

// recompute sets every internal node's weight to the sum of its
// children's weights, bottom-up. The builders call it once after
// construction.
func (n *Node) recompute() int64 {
	if n.IsLeaf() {
		return n.Weight
	}
	var sum int64
	for _, c := range n.Children {
		sum += c.recompute()
	}
	n.Weight = sum
	return sum
}
