package config

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Load discovers every fragment matching pattern from startDir upwards and
// merges them, farthest ancestor first. It returns the merged tree together
// with the fragments that contributed to it.
func Load(fsys afero.Fs, startDir, pattern string, maxHeight int) (*Tree, []DiscoveredFile, error) {
	files, err := Discover(fsys, startDir, pattern, maxHeight)
	if err != nil {
		return nil, nil, err
	}

	merged := make(map[string]any)
	for _, f := range files {
		doc, err := ParseFragment(fsys, f.Path)
		if err != nil {
			return nil, nil, err
		}
		if doc == nil {
			log.Debug().Str("path", f.Path).Msg("skipping empty config fragment")
			continue
		}

		if err := Merge(merged, doc); err != nil {
			return nil, nil, fmt.Errorf("merging %s: %w", f.Path, err)
		}
	}

	return &Tree{root: merged}, files, nil
}
