package ui

import (
	"fmt"
	"strconv"
)

// humanBytes renders a byte count in the usual 1024-based units, one
// decimal place past the kilobyte mark.
func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// humanCount groups digits with commas for plain quantities such as
// population figures, where binary units would be nonsense.
func humanCount(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	if len(s) > 3 {
		var out []byte
		lead := len(s) % 3
		if lead > 0 {
			out = append(out, s[:lead]...)
		}
		for i := lead; i < len(s); i += 3 {
			if len(out) > 0 {
				out = append(out, ',')
			}
			out = append(out, s[i:i+3]...)
		}
		s = string(out)
	}
	if neg {
		return "-" + s
	}
	return s
}

// humanWeight picks the rendering for a weight given the dataset kind.
func humanWeight(n int64, bytes bool) string {
	if bytes {
		return humanBytes(n)
	}
	return humanCount(n)
}
