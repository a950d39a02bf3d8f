package pipeline

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog/log"
)

const buildDirGlob = "build-*"

// Clean removes every build-* directory under the project root. With all
// set it also removes untracked files with git clean.
func (o *Orchestrator) Clean(ctx context.Context, all bool) Result {
	defer o.scope.Enter()()

	root, err := o.Root(ctx)
	if err != nil {
		o.status.Error("Cleaning needs a project root: %v", err)
		return Fail(PhaseClean, 1)
	}

	dirs, err := doublestar.Glob(os.DirFS(root), buildDirGlob)
	if err != nil {
		o.status.Error("Could not list build directories: %v", err)
		return Fail(PhaseClean, 1)
	}

	var failed int
	for _, dir := range dirs {
		path := filepath.Join(root, dir)
		if info, err := os.Stat(path); err != nil || !info.IsDir() {
			continue
		}

		o.status.Info("Removing %s", path)
		if err := removeAll(path); err != nil {
			o.status.Error("Could not remove %s: %v", path, err)
			failed++
		}
	}
	if failed > 0 {
		return Fail(PhaseClean, failed)
	}

	if all {
		if code, err := o.git.Clean(ctx, root); err != nil || code != 0 {
			o.status.Error("git clean failed: %v", gitFailure(code, err))
			return Fail(PhaseClean, code)
		}
	}

	o.status.Success("Clean.")
	return Result{}
}

// removeAll deletes path after making everything under it writable, since
// dependency caches and git objects are often read-only.
func removeAll(path string) error {
	err := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.Mode().Perm()&0200 == 0 {
			if err := os.Chmod(p, info.Mode().Perm()|0200); err != nil {
				log.Debug().Err(err).Str("path", p).Msg("chmod before removal")
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return os.RemoveAll(path)
}
