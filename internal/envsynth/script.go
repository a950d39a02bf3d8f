package envsynth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// shellManaged lists variables the embedded shell maintains itself.
var shellManaged = map[string]bool{
	"PWD":    true,
	"OLDPWD": true,
	"SHLVL":  true,
}

// SourceScript runs a POSIX activation script in an embedded shell seeded
// with the current variables, then folds every exported variable it leaves
// behind back into the environment. A missing script is not an error.
func (e *Environment) SourceScript(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug().Str("path", path).Msg("no activation script")
		return nil
	}
	if err != nil {
		return fmt.Errorf("opening activation script %s: %w", path, err)
	}
	defer f.Close()

	file, err := syntax.NewParser().Parse(f, path)
	if err != nil {
		return fmt.Errorf("parsing activation script %s: %w", path, err)
	}

	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return fmt.Errorf("resolving absolute path for %s: %w", path, err)
	}

	runner, err := interp.New(
		interp.Env(expand.ListEnviron(e.Environ()...)),
		interp.Dir(dir),
		interp.StdIO(nil, io.Discard, io.Discard),
	)
	if err != nil {
		return fmt.Errorf("creating shell for %s: %w", path, err)
	}

	if err := runner.Run(ctx, file); err != nil {
		return fmt.Errorf("sourcing activation script %s: %w", path, err)
	}

	for name, v := range runner.Vars {
		if !v.Exported || v.Kind != expand.String || shellManaged[name] {
			continue
		}
		if current, ok := e.Lookup(name); !ok || current != v.Str {
			log.Debug().Str("name", name).Msg("activation script set variable")
			e.Set(name, v.Str)
		}
	}

	return nil
}
