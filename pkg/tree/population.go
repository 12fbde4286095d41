package tree

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	json "github.com/goccy/go-json"
)

// ErrNoValidEntries is returned when a population file parses as JSON
// but contains no usable entry.
var ErrNoValidEntries = errors.New("no valid entries")

type populationEntry struct {
	Name       string `json:"name"`
	Population int64  `json:"population"`
}

// BuildPopulation decodes a JSON array of {"name", "population"}
// objects and returns them as leaves under a synthetic root named after
// the file.
//
// Entries with the wrong shape, a missing name, or a negative
// population are skipped with a warning; the build fails only when the
// file is not a JSON array at all or no valid entry remains.
func BuildPopulation(path string, opts ...Option) (*Node, error) {
	o := buildOptions(opts)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading population file: %w", err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	root := &Node{Name: base, Path: base}

	for i, msg := range raw {
		var entry populationEntry
		if err := json.Unmarshal(msg, &entry); err != nil {
			log.Warn("skipping malformed entry", "index", i, "err", err)
			continue
		}
		if entry.Name == "" {
			log.Warn("skipping entry without a name", "index", i)
			continue
		}
		if entry.Population < 0 {
			log.Warn("skipping entry with negative population", "index", i, "name", entry.Name)
			continue
		}
		if o.ignored(entry.Name) {
			log.Debug("ignoring entry", "name", entry.Name)
			continue
		}
		root.AddChild(&Node{Name: entry.Name, Weight: entry.Population})
	}

	if len(root.Children) == 0 {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrNoValidEntries)
	}

	root.recompute()
	return root, nil
}
