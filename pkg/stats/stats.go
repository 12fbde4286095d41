// Package stats summarizes the weight distribution of a tree's leaves
// for reports and the headless JSON surface.
package stats

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/HumyZ/treemap-visualiser/pkg/tree"
)

// Summary describes the leaf-weight distribution of one tree.
type Summary struct {
	// Nodes counts every node, Leaves only the childless ones.
	Nodes  int `json:"nodes"`
	Leaves int `json:"leaves"`

	// Depth is the height of the tree.
	Depth int `json:"depth"`

	// Total is the root weight; the remaining fields describe the
	// per-leaf distribution.
	Total  int64   `json:"total_weight"`
	Min    int64   `json:"min"`
	Max    int64   `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	P90    float64 `json:"p90"`
	P99    float64 `json:"p99"`

	// TopDecileShare is the weight share held by the heaviest tenth
	// (rounded up) of the leaves.
	TopDecileShare float64 `json:"top_decile_share"`

	// LeavesPerDepth counts leaves by their distance from the root.
	LeavesPerDepth []int `json:"leaves_per_depth"`
}

// Collect walks the tree once and returns its Summary. A nil root
// yields the zero Summary.
func Collect(root *tree.Node) Summary {
	if root == nil {
		return Summary{}
	}

	var s Summary
	s.Total = root.Weight
	s.Depth = root.Depth()

	var weights []float64
	var depthCounts []int
	var walk func(n *tree.Node, depth int)
	walk = func(n *tree.Node, depth int) {
		s.Nodes++
		if n.IsLeaf() {
			s.Leaves++
			weights = append(weights, float64(n.Weight))
			for len(depthCounts) <= depth {
				depthCounts = append(depthCounts, 0)
			}
			depthCounts[depth]++
			if n.Weight < s.Min || s.Leaves == 1 {
				s.Min = n.Weight
			}
			if n.Weight > s.Max {
				s.Max = n.Weight
			}
			return
		}
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	walk(root, 0)
	s.LeavesPerDepth = depthCounts

	sort.Float64s(weights)
	s.Mean = stat.Mean(weights, nil)
	s.Median = stat.Quantile(0.5, stat.Empirical, weights, nil)
	s.P90 = stat.Quantile(0.9, stat.Empirical, weights, nil)
	s.P99 = stat.Quantile(0.99, stat.Empirical, weights, nil)
	if len(weights) > 1 {
		// StdDev is NaN for a single sample, which JSON cannot carry.
		s.StdDev = stat.StdDev(weights, nil)
	}
	s.TopDecileShare = topShare(weights, s.Total)

	return s
}

// topShare returns the weight share of the heaviest ceil(n/10) leaves.
func topShare(ascending []float64, total int64) float64 {
	if total <= 0 || len(ascending) == 0 {
		return 0
	}
	k := (len(ascending) + 9) / 10
	var sum float64
	for _, w := range ascending[len(ascending)-k:] {
		sum += w
	}
	return sum / float64(total)
}
