// Package vcs wraps the git operations the pipeline needs.
package vcs

import (
	"context"
	"fmt"
	"strings"

	"go.dot.industries/cccpt/internal/exec"
)

// Git runs git through an exec.Invoker.
type Git struct {
	invoker exec.Invoker
	path    string
	environ func() []string
}

// New returns a Git that runs the binary at path (a bare name is looked up
// on PATH) with the environment produced by environ.
func New(invoker exec.Invoker, path string, environ func() []string) *Git {
	if path == "" {
		path = "git"
	}
	return &Git{invoker: invoker, path: path, environ: environ}
}

// TopLevel returns the root of the working tree holding dir.
func (g *Git) TopLevel(ctx context.Context, dir string) (string, error) {
	out, err := g.output(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// TagExists reports whether tag names an existing tag.
func (g *Git) TagExists(ctx context.Context, dir, tag string) (bool, error) {
	out, err := g.output(ctx, dir, "tag", "--list", tag)
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) != "", nil
}

// IsDirty reports whether the working tree has uncommitted changes or
// untracked files.
func (g *Git) IsDirty(ctx context.Context, dir string) (bool, error) {
	out, err := g.output(ctx, dir, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) != "", nil
}

// Clone clones src into dest and returns git's exit code.
func (g *Git) Clone(ctx context.Context, src, dest string) (int, error) {
	return g.run(ctx, "", "clone", src, dest)
}

// Checkout checks out ref in dir.
func (g *Git) Checkout(ctx context.Context, dir, ref string) (int, error) {
	return g.run(ctx, dir, "checkout", ref)
}

// Tag creates an annotated tag at HEAD.
func (g *Git) Tag(ctx context.Context, dir, tag, message string) (int, error) {
	return g.run(ctx, dir, "tag", "-a", tag, "-m", message)
}

// Commit stages paths and commits them with message.
func (g *Git) Commit(ctx context.Context, dir, message string, paths ...string) (int, error) {
	args := append([]string{"add", "--"}, paths...)
	if code, err := g.run(ctx, dir, args...); code != 0 || err != nil {
		return code, err
	}

	args = append([]string{"commit", "-m", message, "--"}, paths...)
	return g.run(ctx, dir, args...)
}

// Clean removes untracked files and directories from dir.
func (g *Git) Clean(ctx context.Context, dir string) (int, error) {
	return g.run(ctx, dir, "clean", "-f", "-d")
}

func (g *Git) invocation(dir string, capture bool, args []string) exec.Invocation {
	inv := exec.Invocation{
		Argv:    append([]string{g.path}, args...),
		Dir:     dir,
		Capture: capture,
	}
	if g.environ != nil {
		inv.Env = g.environ()
	}
	return inv
}

func (g *Git) run(ctx context.Context, dir string, args ...string) (int, error) {
	res, err := g.invoker.Invoke(ctx, g.invocation(dir, false, args))
	if err != nil {
		return res.ExitCode, fmt.Errorf("git %s: %w", args[0], err)
	}
	return res.ExitCode, nil
}

func (g *Git) output(ctx context.Context, dir string, args ...string) (string, error) {
	res, err := g.invoker.Invoke(ctx, g.invocation(dir, true, args))
	if err != nil {
		return "", fmt.Errorf("git %s: %w", args[0], err)
	}
	if res.ExitCode != 0 {
		return "", fmt.Errorf("git %s exited with code %d", strings.Join(args, " "), res.ExitCode)
	}
	return res.Output, nil
}
