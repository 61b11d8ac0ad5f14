package watch

import (
	"path/filepath"

	"lodestar/pkg/storage"
)

// PatternFilter filters file paths based on include/exclude glob patterns.
// Patterns are matched against both the base name and the full path.
type PatternFilter struct {
	Include []string
	Exclude []string
}

// NewPatternFilter creates a new pattern filter.
func NewPatternFilter(include, exclude []string) *PatternFilter {
	return &PatternFilter{
		Include: include,
		Exclude: exclude,
	}
}

// DefaultSnapshotFilter matches the snapshot and config files but never the
// activity log. The log grows on every recorded action, including actions a
// watch callback itself performs, so watching it would feed the watcher its
// own output.
func DefaultSnapshotFilter() *PatternFilter {
	return NewPatternFilter(
		[]string{"*.json", "*.yaml"},
		[]string{storage.ActivityFile},
	)
}

// Matches returns true if the path passes the filter.
// Excludes win over includes; with no include patterns set, everything passes.
func (f *PatternFilter) Matches(path string) bool {
	base := filepath.Base(path)

	for _, pattern := range f.Exclude {
		if matched, _ := filepath.Match(pattern, base); matched {
			return false
		}
		if matched, _ := filepath.Match(pattern, path); matched {
			return false
		}
	}

	if len(f.Include) == 0 {
		return true
	}

	for _, pattern := range f.Include {
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
		if matched, _ := filepath.Match(pattern, path); matched {
			return true
		}
	}

	return false
}
