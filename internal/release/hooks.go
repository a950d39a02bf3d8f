package release

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"go.dot.industries/cccpt/internal/artifact"
)

// DiscoverHooks lists the regular files in dir sorted by name. A missing
// directory yields no hooks.
func DiscoverHooks(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading hooks dir %s: %w", dir, err)
	}

	var hooks []string
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		hooks = append(hooks, path)
	}

	sort.Strings(hooks)
	return hooks, nil
}

// CheckHooks fails on the first hook that is not executable.
func CheckHooks(hooks []string) error {
	for _, hook := range hooks {
		if !artifact.IsExecutable(hook) {
			return preconditionf("pre-release hook %s is not executable", hook)
		}
	}
	return nil
}
