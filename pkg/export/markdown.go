package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/HumyZ/treemap-visualiser/pkg/stats"
	"github.com/HumyZ/treemap-visualiser/pkg/tree"
)

// WriteMarkdown writes a report of the tree to w: distribution
// summary, the top leaves by weight, and the leaves-per-depth profile.
// A non-positive top falls back to ten rows.
func WriteMarkdown(w io.Writer, root *tree.Node, top int) error {
	if root == nil {
		return errNoTree
	}
	if top <= 0 {
		top = 10
	}
	s := stats.Collect(root)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Treemap report: %s\n\n", root.Name))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", time.Now().Format(time.RFC1123)))

	sb.WriteString("## Summary\n\n")
	sb.WriteString(fmt.Sprintf("- **Total weight**: %d\n", s.Total))
	sb.WriteString(fmt.Sprintf("- **Nodes**: %d (%d leaves)\n", s.Nodes, s.Leaves))
	sb.WriteString(fmt.Sprintf("- **Depth**: %d\n", s.Depth))
	sb.WriteString(fmt.Sprintf("- **Mean / median leaf**: %.1f / %.1f\n", s.Mean, s.Median))
	sb.WriteString(fmt.Sprintf("- **P90 / P99 leaf**: %.1f / %.1f\n", s.P90, s.P99))
	sb.WriteString(fmt.Sprintf("- **Top decile share**: %.1f%%\n\n", s.TopDecileShare*100))

	sb.WriteString(fmt.Sprintf("## Top %d leaves\n\n", top))
	sb.WriteString("| # | Path | Weight | Share |\n")
	sb.WriteString("|---|------|--------|-------|\n")
	for i, leaf := range root.TopLeaves(top) {
		share := 0.0
		if s.Total > 0 {
			share = float64(leaf.Weight) / float64(s.Total) * 100
		}
		sb.WriteString(fmt.Sprintf("| %d | %s | %d | %.1f%% |\n", i+1, leaf.Path, leaf.Weight, share))
	}
	sb.WriteString("\n")

	sb.WriteString("## Leaves per depth\n\n")
	for depth, count := range s.LeavesPerDepth {
		if count == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("- depth %d: %d\n", depth, count))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
