// Package drift compares two builds of the same source and classifies
// what changed between them: leaves that appeared or vanished, leaves
// whose weight shifted, and total-weight movement. Watch mode flashes
// the result in the status line; --check-drift turns it into an exit
// code for scripting.
package drift

import (
	"fmt"
	"math"
	"sort"

	"github.com/HumyZ/treemap-visualiser/pkg/tree"
)

// Severity represents the severity level of a drift alert
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// rank orders severities for max comparisons.
func (s Severity) rank() int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityWarning:
		return 2
	case SeverityInfo:
		return 1
	default:
		return 0
	}
}

// AlertType categorizes different kinds of drift alerts
type AlertType string

const (
	AlertNodeAdded   AlertType = "node_added"
	AlertNodeRemoved AlertType = "node_removed"
	AlertWeightShift AlertType = "weight_shift"
	AlertTotalDrift  AlertType = "total_drift"
	AlertTreeEmptied AlertType = "tree_emptied"
)

// WeightShiftThreshold is the relative per-leaf change below which a
// weight difference counts as noise and produces no alert.
const WeightShiftThreshold = 0.01

// criticalTotalShift marks a root-weight move that almost certainly
// means the source was replaced rather than edited.
const criticalTotalShift = 0.5

// Alert represents a single detected difference between two builds
type Alert struct {
	Type     AlertType `json:"type"`
	Severity Severity  `json:"severity"`
	Path     string    `json:"path,omitempty"`
	Message  string    `json:"message"`
	Before   int64     `json:"before,omitempty"`
	After    int64     `json:"after,omitempty"`
}

// Result contains the complete comparison outcome
type Result struct {
	// HasDrift is true if any alerts were generated
	HasDrift bool `json:"has_drift"`

	// Alerts lists all detected differences, removals first, the
	// total-weight alert last
	Alerts []Alert `json:"alerts"`

	// Summary statistics
	Added         int   `json:"added"`
	Removed       int   `json:"removed"`
	Resized       int   `json:"resized"`
	CriticalCount int   `json:"critical_count"`
	WarningCount  int   `json:"warning_count"`
	InfoCount     int   `json:"info_count"`
	TotalBefore   int64 `json:"total_before"`
	TotalAfter    int64 `json:"total_after"`
}

// Compare walks both trees by leaf path and reports every difference.
// Either argument may be nil, standing in for an empty tree. Comparing
// a tree against itself yields a clean result.
func Compare(before, after *tree.Node) *Result {
	result := &Result{}
	beforeLeaves := leavesByPath(before)
	afterLeaves := leavesByPath(after)
	if before != nil {
		result.TotalBefore = before.Weight
	}
	if after != nil {
		result.TotalAfter = after.Weight
	}

	for _, path := range sortedPaths(beforeLeaves) {
		b := beforeLeaves[path]
		a, ok := afterLeaves[path]
		if !ok {
			result.Removed++
			result.add(Alert{
				Type:     AlertNodeRemoved,
				Severity: SeverityWarning,
				Path:     path,
				Message:  fmt.Sprintf("%s vanished (weight %d)", path, b.Weight),
				Before:   b.Weight,
			})
			continue
		}
		if a.Weight != b.Weight && relativeShift(b.Weight, a.Weight) > WeightShiftThreshold {
			result.Resized++
			result.add(Alert{
				Type:     AlertWeightShift,
				Severity: SeverityInfo,
				Path:     path,
				Message:  fmt.Sprintf("%s weight %d → %d", path, b.Weight, a.Weight),
				Before:   b.Weight,
				After:    a.Weight,
			})
		}
	}

	for _, path := range sortedPaths(afterLeaves) {
		if _, ok := beforeLeaves[path]; ok {
			continue
		}
		a := afterLeaves[path]
		result.Added++
		result.add(Alert{
			Type:     AlertNodeAdded,
			Severity: SeverityWarning,
			Path:     path,
			Message:  fmt.Sprintf("%s appeared (weight %d)", path, a.Weight),
			After:    a.Weight,
		})
	}

	switch {
	case result.TotalBefore > 0 && result.TotalAfter == 0:
		result.add(Alert{
			Type:     AlertTreeEmptied,
			Severity: SeverityCritical,
			Message:  fmt.Sprintf("tree emptied, total weight %d → 0", result.TotalBefore),
			Before:   result.TotalBefore,
		})
	case result.TotalBefore != result.TotalAfter:
		severity := SeverityInfo
		if relativeShift(result.TotalBefore, result.TotalAfter) > criticalTotalShift {
			severity = SeverityCritical
		}
		result.add(Alert{
			Type:     AlertTotalDrift,
			Severity: severity,
			Message:  fmt.Sprintf("total weight %d → %d", result.TotalBefore, result.TotalAfter),
			Before:   result.TotalBefore,
			After:    result.TotalAfter,
		})
	}

	return result
}

func (r *Result) add(a Alert) {
	r.HasDrift = true
	r.Alerts = append(r.Alerts, a)
	switch a.Severity {
	case SeverityCritical:
		r.CriticalCount++
	case SeverityWarning:
		r.WarningCount++
	case SeverityInfo:
		r.InfoCount++
	}
}

// relativeShift returns |after-before| relative to before, treating a
// zero baseline as fully shifted.
func relativeShift(before, after int64) float64 {
	if before == 0 {
		if after == 0 {
			return 0
		}
		return 1
	}
	return math.Abs(float64(after-before)) / math.Abs(float64(before))
}

func leavesByPath(root *tree.Node) map[string]*tree.Node {
	leaves := make(map[string]*tree.Node)
	if root == nil {
		return leaves
	}
	for _, leaf := range root.Leaves() {
		leaves[leaf.Path] = leaf
	}
	return leaves
}

func sortedPaths(m map[string]*tree.Node) []string {
	paths := make([]string, 0, len(m))
	for p := range m {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Clean reports whether the comparison found no differences.
func (r *Result) Clean() bool {
	return !r.HasDrift
}

// TotalDelta returns the signed total-weight change.
func (r *Result) TotalDelta() int64 {
	return r.TotalAfter - r.TotalBefore
}

// MaxSeverity returns the highest severity among the alerts, or the
// empty string for a clean result.
func (r *Result) MaxSeverity() Severity {
	var max Severity
	for _, a := range r.Alerts {
		if a.Severity.rank() > max.rank() {
			max = a.Severity
		}
	}
	return max
}

// Summary renders the result as a one-line report.
func (r *Result) Summary() string {
	if r.Clean() {
		return "no drift"
	}
	return fmt.Sprintf("+%d −%d ~%d, total %d → %d",
		r.Added, r.Removed, r.Resized, r.TotalBefore, r.TotalAfter)
}

// ExitCode maps the result onto a scripting convention: 0 for clean or
// informational results, 2 when warnings are present, 1 on critical
// drift.
func (r *Result) ExitCode() int {
	switch r.MaxSeverity() {
	case SeverityCritical:
		return 1
	case SeverityWarning:
		return 2
	default:
		return 0
	}
}
