// Package artifact finds test executables produced by a build and sorts
// them into debug and release views.
package artifact

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const defaultMaxConcurrency = 8

// Prober inspects candidate files.
type Prober interface {
	IsExecutable(path string) bool
	HasDebugInfo(path string) (bool, error)
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithMaxConcurrency sets how many files are probed at once. Values less
// than 1 are ignored.
func WithMaxConcurrency(n int) Option {
	return func(s *Scanner) {
		if n > 0 {
			s.maxConcurrency = n
		}
	}
}

// WithProber replaces the host prober. Nil values are ignored.
func WithProber(p Prober) Option {
	return func(s *Scanner) {
		if p != nil {
			s.prober = p
		}
	}
}

// Classification holds the executables found under a build directory.
// Release and Debug partition All by the presence of debug information.
type Classification struct {
	All     []string
	Release []string
	Debug   []string
}

// Select returns the view matching the requested build mode. Where debug
// information cannot be probed every executable is returned.
func (c *Classification) Select(debug bool) []string {
	switch {
	case !DebugInfoSupported:
		return c.All
	case debug:
		return c.Debug
	default:
		return c.Release
	}
}

// Scanner discovers and classifies executables.
type Scanner struct {
	prober         Prober
	maxConcurrency int
}

// New creates a Scanner that probes files on the host.
func New(opts ...Option) *Scanner {
	s := &Scanner{
		prober:         hostProber{},
		maxConcurrency: defaultMaxConcurrency,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Scan finds regular files under root whose base name matches any of
// patterns, at any depth, keeps the executable ones and classifies them.
// Paths in the result are absolute and sorted.
func (s *Scanner) Scan(ctx context.Context, root string, patterns []string) (*Classification, error) {
	paths, err := s.find(root, patterns)
	if err != nil {
		return nil, err
	}

	probes := make([]probe, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrency)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			p := probe{path: path, executable: s.prober.IsExecutable(path)}
			if p.executable {
				debug, err := s.prober.HasDebugInfo(path)
				if err != nil {
					return fmt.Errorf("probing %s: %w", path, err)
				}
				p.debug = debug
			}
			probes[i] = p

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	c := &Classification{}
	for _, p := range probes {
		if !p.executable {
			log.Debug().Str("path", p.path).Msg("skipping non-executable match")
			continue
		}

		c.All = append(c.All, p.path)
		if p.debug {
			c.Debug = append(c.Debug, p.path)
		} else {
			c.Release = append(c.Release, p.path)
		}
	}

	return c, nil
}

type probe struct {
	path       string
	executable bool
	debug      bool
}

func (s *Scanner) find(root string, patterns []string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving absolute path for %s: %w", root, err)
	}

	seen := make(map[string]bool)
	var paths []string

	fsys := os.DirFS(absRoot)
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, "**/"+pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("searching %s for %s: %w", absRoot, pattern, err)
		}

		for _, match := range matches {
			path := filepath.Join(absRoot, filepath.FromSlash(match))
			if seen[path] {
				continue
			}
			seen[path] = true
			paths = append(paths, path)
		}
	}

	sort.Strings(paths)
	return paths, nil
}

// IsExecutable reports whether path is a regular file the current user may
// execute.
func IsExecutable(path string) bool {
	return hostProber{}.IsExecutable(path)
}
