package config

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Discover walks from startDir up through its ancestors and globs pattern in
// each directory visited. maxHeight caps how many levels above startDir are
// searched (0 means startDir only); Unlimited walks to the filesystem root.
// The result is ordered farthest ancestor first so that later entries take
// effect last when merged.
func Discover(fsys afero.Fs, startDir, pattern string, maxHeight int) ([]DiscoveredFile, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, fmt.Errorf("resolving absolute path for %s: %w", startDir, err)
	}

	var found []DiscoveredFile
	for depth := 0; maxHeight < 0 || depth <= maxHeight; depth++ {
		matches, err := afero.Glob(fsys, filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("searching %s for %s: %w", dir, pattern, err)
		}

		for _, match := range matches {
			if isDir, _ := afero.IsDir(fsys, match); isDir {
				continue
			}
			log.Debug().Str("path", match).Int("depth", depth).Msg("found config fragment")
			found = append(found, DiscoveredFile{Path: match, Depth: depth})
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	slices.Reverse(found)
	return found, nil
}
