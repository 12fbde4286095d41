package tree

import (
	"strings"
	"testing"
)

// sampleTree builds a small fixed hierarchy:
//
//	root (10000)
//	├── src (7000)
//	│   ├── main.go (4000)
//	│   └── util.go (3000)
//	├── docs (3000)
//	│   ├── a.txt (1000)
//	│   └── b.txt (2000)
//	└── empty (0)
func sampleTree() *Node {
	root := &Node{Name: "root", Path: "root", Dir: true}

	src := &Node{Name: "src", Dir: true}
	root.AddChild(src)
	src.AddChild(&Node{Name: "main.go", Weight: 4000})
	src.AddChild(&Node{Name: "util.go", Weight: 3000})

	docs := &Node{Name: "docs", Dir: true}
	root.AddChild(docs)
	docs.AddChild(&Node{Name: "a.txt", Weight: 1000})
	docs.AddChild(&Node{Name: "b.txt", Weight: 2000})

	root.AddChild(&Node{Name: "empty", Dir: true})

	root.recompute()
	return root
}

func TestAddChildDerivesPath(t *testing.T) {
	root := sampleTree()

	tests := []struct {
		name string
		path string
	}{
		{"nested leaf", "root/src/main.go"},
		{"sibling leaf", "root/docs/b.txt"},
		{"internal node", "root/docs"},
		{"empty directory", "root/empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if root.Find(tt.path) == nil {
				t.Errorf("Find(%q) = nil, want node", tt.path)
			}
		})
	}
}

func TestDetach(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		wantRemoved int64
		wantRoot    int64
	}{
		{"leaf", "root/src/util.go", 3000, 7000},
		{"heaviest leaf", "root/src/main.go", 4000, 6000},
		{"whole subtree", "root/docs", 3000, 7000},
		{"zero-weight directory", "root/empty", 0, 10000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := sampleTree()
			node := root.Find(tt.path)
			if node == nil {
				t.Fatalf("Find(%q) = nil", tt.path)
			}
			parent := node.Parent

			removed := node.Detach()

			if removed != tt.wantRemoved {
				t.Errorf("Detach() = %d, want %d", removed, tt.wantRemoved)
			}
			if root.Weight != tt.wantRoot {
				t.Errorf("root weight after detach = %d, want %d", root.Weight, tt.wantRoot)
			}
			if root.Find(tt.path) != nil {
				t.Errorf("Find(%q) after detach = node, want nil", tt.path)
			}
			for _, c := range parent.Children {
				if c == node {
					t.Error("detached node still referenced by its parent")
				}
			}
			if node.Parent != nil {
				t.Error("detached node keeps a parent reference")
			}
			if err := root.Validate(); err != nil {
				t.Errorf("Validate() after detach: %v", err)
			}
		})
	}
}

func TestDetachRoot(t *testing.T) {
	root := sampleTree()
	if removed := root.Detach(); removed != 10000 {
		t.Errorf("Detach() on root = %d, want 10000", removed)
	}
	// Structure is untouched; emptying the display is the caller's job.
	if len(root.Children) != 3 {
		t.Errorf("root children after self-detach = %d, want 3", len(root.Children))
	}
}

func TestScale(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		factor     float64
		wantWeight int64
		wantRoot   int64
	}{
		{"grow by ten percent", "root/src/main.go", 1.1, 4400, 10400},
		{"shrink by ten percent", "root/src/main.go", 0.9, 3600, 9600},
		{"rounds half away from zero", "root/docs/a.txt", 1.0005, 1001, 10001},
		{"clamps at zero", "root/docs/a.txt", -2.0, 0, 9000},
		{"zero weight stays zero", "root/empty", 1.1, 0, 10000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := sampleTree()
			node := root.Find(tt.path)
			if node == nil {
				t.Fatalf("Find(%q) = nil", tt.path)
			}

			node.Scale(tt.factor)

			if node.Weight != tt.wantWeight {
				t.Errorf("weight after Scale(%v) = %d, want %d", tt.factor, node.Weight, tt.wantWeight)
			}
			if root.Weight != tt.wantRoot {
				t.Errorf("root weight after Scale = %d, want %d", root.Weight, tt.wantRoot)
			}
		})
	}
}

func TestScaleRoundTripStaysClose(t *testing.T) {
	// Growing then shrinking by ten percent must land within
	// max(1, w/50) of the original weight despite integer rounding.
	weights := []int64{1, 7, 99, 1000, 12345, 98765432}
	for _, w := range weights {
		root := &Node{Name: "root", Path: "root"}
		leaf := &Node{Name: "leaf", Weight: w}
		root.AddChild(leaf)
		root.recompute()

		leaf.Scale(1.1)
		leaf.Scale(0.9)

		tolerance := w / 50
		if tolerance < 1 {
			tolerance = 1
		}
		diff := leaf.Weight - w
		if diff < 0 {
			diff = -diff
		}
		if diff > tolerance {
			t.Errorf("weight %d: round trip landed at %d, outside ±%d", w, leaf.Weight, tolerance)
		}
	}
}

func TestTraversalHelpers(t *testing.T) {
	root := sampleTree()

	if got := root.Count(); got != 8 {
		t.Errorf("Count() = %d, want 8", got)
	}
	if got := root.Depth(); got != 2 {
		t.Errorf("Depth() = %d, want 2", got)
	}

	leaves := root.Leaves()
	if len(leaves) != 5 {
		t.Fatalf("Leaves() returned %d nodes, want 5", len(leaves))
	}
	for _, leaf := range leaves {
		if !leaf.IsLeaf() {
			t.Errorf("Leaves() returned internal node %s", leaf.Path)
		}
	}
}

func TestTopLeaves(t *testing.T) {
	root := sampleTree()

	top := root.TopLeaves(3)
	if len(top) != 3 {
		t.Fatalf("TopLeaves(3) returned %d nodes, want 3", len(top))
	}
	wantOrder := []string{"main.go", "util.go", "b.txt"}
	for i, want := range wantOrder {
		if top[i].Name != want {
			t.Errorf("TopLeaves(3)[%d] = %s, want %s", i, top[i].Name, want)
		}
	}
}

func TestTopLeavesBreaksTiesByName(t *testing.T) {
	root := &Node{Name: "root", Path: "root"}
	root.AddChild(&Node{Name: "zeta", Weight: 5})
	root.AddChild(&Node{Name: "alpha", Weight: 5})
	root.recompute()

	top := root.TopLeaves(0)
	if top[0].Name != "alpha" || top[1].Name != "zeta" {
		t.Errorf("tie order = [%s %s], want [alpha zeta]", top[0].Name, top[1].Name)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Node)
		wantErr string
	}{
		{
			name:    "intact tree",
			mutate:  func(*Node) {},
			wantErr: "",
		},
		{
			name: "broken weight sum",
			mutate: func(root *Node) {
				root.Find("root/src").Weight = 1
			},
			wantErr: "does not match children sum",
		},
		{
			name: "negative weight",
			mutate: func(root *Node) {
				root.Find("root/docs/a.txt").Weight = -5
			},
			wantErr: "negative weight",
		},
		{
			name: "stale parent reference",
			mutate: func(root *Node) {
				root.Find("root/docs/a.txt").Parent = root
			},
			wantErr: "stale parent",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := sampleTree()
			tt.mutate(root)

			err := root.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}
