package stats

import (
	"math"
	"reflect"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/HumyZ/treemap-visualiser/pkg/tree"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

// fixtureTree builds:
//
//	root (15000)
//	├── a (3000)
//	│   ├── a1 (1000)
//	│   └── a2 (2000)
//	└── b (12000)
//	    ├── b1 (3000)
//	    ├── b2 (4000)
//	    └── b3 (5000)
func fixtureTree() *tree.Node {
	root := &tree.Node{Name: "root", Path: "root"}
	a := &tree.Node{Name: "a", Weight: 3000}
	root.AddChild(a)
	a.AddChild(&tree.Node{Name: "a1", Weight: 1000})
	a.AddChild(&tree.Node{Name: "a2", Weight: 2000})
	b := &tree.Node{Name: "b", Weight: 12000}
	root.AddChild(b)
	b.AddChild(&tree.Node{Name: "b1", Weight: 3000})
	b.AddChild(&tree.Node{Name: "b2", Weight: 4000})
	b.AddChild(&tree.Node{Name: "b3", Weight: 5000})
	root.Weight = 15000
	return root
}

func TestCollect(t *testing.T) {
	s := Collect(fixtureTree())

	if s.Nodes != 8 {
		t.Errorf("Nodes = %d, want 8", s.Nodes)
	}
	if s.Leaves != 5 {
		t.Errorf("Leaves = %d, want 5", s.Leaves)
	}
	if s.Depth != 2 {
		t.Errorf("Depth = %d, want 2", s.Depth)
	}
	if s.Total != 15000 {
		t.Errorf("Total = %d, want 15000", s.Total)
	}
	if s.Min != 1000 || s.Max != 5000 {
		t.Errorf("Min/Max = %d/%d, want 1000/5000", s.Min, s.Max)
	}
	if !almostEqual(s.Mean, 3000) {
		t.Errorf("Mean = %v, want 3000", s.Mean)
	}
	if !almostEqual(s.Median, 3000) {
		t.Errorf("Median = %v, want 3000", s.Median)
	}
	if !almostEqual(s.P90, 5000) {
		t.Errorf("P90 = %v, want 5000", s.P90)
	}
	if !almostEqual(s.StdDev, math.Sqrt(2.5e6)) {
		t.Errorf("StdDev = %v, want %v", s.StdDev, math.Sqrt(2.5e6))
	}
	// Heaviest leaf (ceil(5/10) = 1) holds 5000 of 15000.
	if !almostEqual(s.TopDecileShare, 1.0/3.0) {
		t.Errorf("TopDecileShare = %v, want 1/3", s.TopDecileShare)
	}
	if want := []int{0, 0, 5}; !reflect.DeepEqual(s.LeavesPerDepth, want) {
		t.Errorf("LeavesPerDepth = %v, want %v", s.LeavesPerDepth, want)
	}
}

func TestCollectSingleLeaf(t *testing.T) {
	s := Collect(&tree.Node{Name: "solo", Path: "solo", Weight: 42})

	if s.Leaves != 1 || s.Nodes != 1 || s.Depth != 0 {
		t.Errorf("Leaves/Nodes/Depth = %d/%d/%d, want 1/1/0", s.Leaves, s.Nodes, s.Depth)
	}
	if s.StdDev != 0 {
		t.Errorf("StdDev = %v, want 0 for a single sample", s.StdDev)
	}
	if !almostEqual(s.TopDecileShare, 1) {
		t.Errorf("TopDecileShare = %v, want 1", s.TopDecileShare)
	}
}

func TestCollectNil(t *testing.T) {
	if s := Collect(nil); s.Nodes != 0 || s.Total != 0 {
		t.Errorf("Collect(nil) = %+v, want zero summary", s)
	}
}

func TestCollectZeroWeights(t *testing.T) {
	root := &tree.Node{Name: "root", Path: "root"}
	root.AddChild(&tree.Node{Name: "a"})
	root.AddChild(&tree.Node{Name: "b"})

	s := Collect(root)
	if s.TopDecileShare != 0 {
		t.Errorf("TopDecileShare = %v, want 0 for zero total", s.TopDecileShare)
	}
	if s.Mean != 0 || s.Median != 0 {
		t.Errorf("Mean/Median = %v/%v, want 0/0", s.Mean, s.Median)
	}
}

func TestSummaryMarshalsToJSON(t *testing.T) {
	tests := []struct {
		name string
		root *tree.Node
	}{
		{"fixture", fixtureTree()},
		{"single leaf", &tree.Node{Name: "solo", Weight: 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := json.Marshal(Collect(tt.root)); err != nil {
				t.Errorf("Marshal(Collect()) error: %v", err)
			}
		})
	}
}
