package tree

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// GitignorePatterns reads dir/.gitignore and returns the patterns the
// ignore filter can honor: base-name globs. Comments, blank lines,
// negations, and path-anchored patterns (anything containing a slash)
// are skipped. A missing file yields nil.
func GitignorePatterns(dir string) []string {
	f, err := os.Open(filepath.Join(dir, ".gitignore"))
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn("reading .gitignore", "dir", dir, "error", err)
		}
		return nil
	}
	defer f.Close()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}
		line = strings.TrimSuffix(line, "/")
		if line == "" || strings.Contains(line, "/") {
			continue // path-anchored patterns need more than base-name matching
		}
		patterns = append(patterns, line)
	}
	if err := scanner.Err(); err != nil {
		log.Warn("reading .gitignore", "dir", dir, "error", err)
	}
	return patterns
}
