package tree

import "fmt"

// SourceKind selects which builder loads a dataset.
type SourceKind string

const (
	KindFilesystem SourceKind = "fs"
	KindPopulation SourceKind = "population"
)

// IsValid checks if the kind is a known value.
func (k SourceKind) IsValid() bool {
	switch k {
	case KindFilesystem, KindPopulation:
		return true
	}
	return false
}

// Source identifies a dataset on disk and can rebuild its tree, which
// is all watch mode and drift checks need.
type Source struct {
	Kind SourceKind `json:"kind"`
	Path string     `json:"path"`
}

// Build loads a fresh tree for the source.
func (s Source) Build(opts ...Option) (*Node, error) {
	switch s.Kind {
	case KindFilesystem:
		return BuildFS(s.Path, opts...)
	case KindPopulation:
		return BuildPopulation(s.Path, opts...)
	default:
		return nil, fmt.Errorf("unknown source kind %q", s.Kind)
	}
}

// HumanizeBytes reports whether the source's weights are byte counts.
func (s Source) HumanizeBytes() bool {
	return s.Kind == KindFilesystem
}
