package tree

import "path/filepath"

// defaultIgnore lists entry names every build skips. macOS Finder
// droppings are noise in a size treemap.
var defaultIgnore = []string{".DS_Store"}

type options struct {
	ignore []string
}

// Option configures a builder.
type Option func(*options)

// WithIgnore adds glob patterns (matched against the entry base name)
// to the default ignore list.
func WithIgnore(patterns ...string) Option {
	return func(o *options) {
		o.ignore = append(o.ignore, patterns...)
	}
}

func buildOptions(opts []Option) options {
	o := options{ignore: append([]string(nil), defaultIgnore...)}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ignored reports whether name matches any ignore pattern. Malformed
// patterns never match.
func (o options) ignored(name string) bool {
	for _, pattern := range o.ignore {
		if ok, err := filepath.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}
