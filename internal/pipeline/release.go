package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"go.dot.industries/cccpt/internal/config"
	"go.dot.industries/cccpt/internal/project"
	"go.dot.industries/cccpt/internal/release"
)

// ReleaseOptions are the inputs of TagForRelease.
type ReleaseOptions struct {
	Tag         string
	DirtyOK     bool
	DryRun      bool
	Strict      bool
	BumpVersion bool
}

// TagForRelease checks the release preconditions, runs the release test
// pipeline in a throwaway build directory and the pre-release hooks, and
// only then tags HEAD. Nothing is written before every check has passed.
func (o *Orchestrator) TagForRelease(ctx context.Context, opts ReleaseOptions) Result {
	defer o.scope.Enter()()

	root, err := o.Root(ctx)
	if err != nil {
		o.status.Error("Tagging a release needs a git checkout: %v", err)
		return Fail(PhasePrecondition, 1)
	}

	versionFile := o.releasePath(root, config.PathVersionFile, release.DefaultVersionFile)
	bumpTo, err := o.checkRelease(ctx, root, versionFile, opts)
	if err != nil {
		return o.preconditionFailed(err)
	}

	hooks, err := release.DiscoverHooks(o.releasePath(root, config.PathHooksDir, release.DefaultHooksDir))
	if err == nil {
		err = release.CheckHooks(hooks)
	}
	if err != nil {
		return o.preconditionFailed(err)
	}

	if res := o.releaseTests(ctx); !res.OK() {
		o.status.Error("Release tests failed, not tagging %s.", opts.Tag)
		return res
	}

	for _, hook := range hooks {
		o.status.Info("Running pre-release hook %s", filepath.Base(hook))
		if code := o.run(ctx, root, hook, opts.Tag); code != 0 {
			o.status.Error("Pre-release hook %s failed with exit code %d.", filepath.Base(hook), code)
			return Fail(PhaseHook, code)
		}
	}

	if opts.DryRun {
		o.status.Success("Dry run passed, %s was not tagged.", opts.Tag)
		return Result{}
	}

	if bumpTo != "" {
		if res := o.bumpVersion(ctx, root, versionFile, bumpTo); !res.OK() {
			return res
		}
	}

	if code, err := o.git.Tag(ctx, root, opts.Tag, "Release "+opts.Tag); err != nil || code != 0 {
		o.status.Error("Could not tag %s: %v", opts.Tag, gitFailure(code, err))
		return Fail(PhaseTag, code)
	}

	o.status.Success("Tagged %s.", opts.Tag)
	return Result{}
}

// checkRelease verifies the preconditions that need no build. It returns
// the version to bump to when a bump was requested.
func (o *Orchestrator) checkRelease(ctx context.Context, root, versionFile string, opts ReleaseOptions) (string, error) {
	exists, err := o.git.TagExists(ctx, root, opts.Tag)
	if err != nil {
		return "", err
	}
	if exists {
		return "", &release.PreconditionError{Reason: fmt.Sprintf("tag %s already exists", opts.Tag)}
	}

	dirty, err := o.git.IsDirty(ctx, root)
	if err != nil {
		return "", err
	}
	if dirty && !opts.DirtyOK {
		return "", &release.PreconditionError{Reason: "working tree has uncommitted changes"}
	}

	current, ok, err := release.ReadVersionFile(versionFile)
	if err != nil || !ok {
		return "", err
	}
	log.Debug().Str("version_file", versionFile).Str("version", current).Msg("read version")

	if opts.BumpVersion {
		return release.NextVersion(current, opts.Tag)
	}
	return "", release.CheckVersion(current, opts.Tag, opts.Strict)
}

func (o *Orchestrator) releaseTests(ctx context.Context) Result {
	tmp, err := os.MkdirTemp("", "cccpt-release-")
	if err != nil {
		o.status.Error("Could not create a temporary build directory: %v", err)
		return Fail(PhaseTest, 1)
	}
	defer removeAll(tmp)

	if err := o.scope.Set(config.PathBuildDir, tmp); err != nil {
		o.status.Error("Could not use build directory %s: %v", tmp, err)
		return Fail(PhaseTest, 1)
	}

	o.status.Info("Running release tests in %s", tmp)
	return o.Test(ctx, TestOptions{Mode: project.Release})
}

func (o *Orchestrator) bumpVersion(ctx context.Context, root, versionFile, version string) Result {
	if err := release.WriteVersionFile(versionFile, version); err != nil {
		o.status.Error("%v", err)
		return Fail(PhaseTag, 1)
	}

	msg := "Bump version to " + version
	if code, err := o.git.Commit(ctx, root, msg, versionFile); err != nil || code != 0 {
		o.status.Error("Could not commit the version bump: %v", gitFailure(code, err))
		return Fail(PhaseTag, code)
	}
	return Result{}
}

func (o *Orchestrator) releasePath(root, path, fallback string) string {
	p := o.scope.String(path, fallback)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}

func (o *Orchestrator) preconditionFailed(err error) Result {
	var pe *release.PreconditionError
	if errors.As(err, &pe) {
		o.status.Error("Cannot release: %s.", pe.Reason)
	} else {
		o.status.Error("Cannot release: %v", err)
	}
	return Fail(PhasePrecondition, 1)
}

func gitFailure(code int, err error) error {
	if err != nil {
		return err
	}
	return fmt.Errorf("git exited with code %d", code)
}
