// Package sources lists the project's source files for tooling such as
// formatters and linters.
package sources

import (
	"fmt"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// Default globs, relative to the project root.
var (
	DefaultPatterns = []string{"**/*.cpp", "**/*.h", "**/*.hpp", "**/*.py"}
	DefaultIgnore   = []string{"**/.git/**", "build*/**"}
)

// Filter selects files by glob. A file is listed when it matches a pattern
// and either matches no ignore glob or matches an include glob.
type Filter struct {
	Patterns []string
	Ignore   []string
	Include  []string
}

// List returns the slash-separated paths under root selected by f, sorted.
func List(root string, f Filter) ([]string, error) {
	patterns := f.Patterns
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	ignore := f.Ignore
	if ignore == nil {
		ignore = DefaultIgnore
	}

	fsys := os.DirFS(root)
	seen := make(map[string]bool)
	var files []string

	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("listing %s in %s: %w", pattern, root, err)
		}

		for _, m := range matches {
			if seen[m] {
				continue
			}
			seen[m] = true

			if matchesAny(ignore, m) && !matchesAny(f.Include, m) {
				continue
			}
			files = append(files, m)
		}
	}

	sort.Strings(files)
	return files, nil
}

func matchesAny(globs []string, path string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, path); ok {
			return true
		}
	}
	return false
}
