package pipeline

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"go.dot.industries/cccpt/internal/config"
	"go.dot.industries/cccpt/internal/project"
)

const defaultInstallBuildDir = "build-install"

// InstallOptions are the inputs of Install. Without Tag the current
// checkout is installed; with Tag a fresh clone checked out at Tag is.
type InstallOptions struct {
	Dir   string
	Tag   string
	Debug bool
}

// Install configures with Dir as the install prefix and builds the install
// target in a dedicated build directory.
func (o *Orchestrator) Install(ctx context.Context, opts InstallOptions) Result {
	defer o.scope.Enter()()

	mode := project.ModeFor(!opts.Debug)
	prefix := ""
	if opts.Dir != "" {
		prefix = o.abs(opts.Dir)
	}

	if opts.Tag != "" {
		tmp, clone, res := o.checkoutTag(ctx, opts.Tag)
		if tmp != "" {
			defer removeAll(tmp)
		}
		if !res.OK() {
			return res
		}
		if err := o.scope.Set(config.PathRoot, clone); err != nil {
			o.status.Error("Could not switch to %s: %v", clone, err)
			return Fail(PhaseCheckout, 1)
		}
	}

	root := o.rootOrWorkDir(ctx)
	buildDir := o.installBuildDir(root)
	if err := o.scope.Set(config.PathBuildDir, buildDir); err != nil {
		o.status.Error("Could not use build directory %s: %v", buildDir, err)
		return Fail(PhaseConfigure, 1)
	}
	log.Debug().Str("root", root).Str("build_dir", buildDir).Str("prefix", prefix).Msg("install")

	res := AbortOnFailure(
		func(ctx context.Context) Result {
			return o.Configure(ctx, ConfigureOptions{Mode: mode, InstallPrefix: prefix})
		},
		func(ctx context.Context) Result {
			return o.Build(ctx, BuildOptions{Mode: mode, Target: "install"})
		},
	)(ctx)

	if res.OK() {
		o.status.Success("Installed %s build.", mode)
	}
	return res
}

// installBuildDir returns an explicit /project/build-dir override when set,
// else the install build directory under root.
func (o *Orchestrator) installBuildDir(root string) string {
	if dir := o.scope.String(config.PathBuildDir, ""); dir != "" {
		return o.abs(dir)
	}
	dir := o.scope.String(config.PathInstallDir, defaultInstallBuildDir)
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(root, dir)
	}
	return dir
}

// checkoutTag clones the project into a temporary directory and checks out
// tag there. It returns the temporary directory, which the caller removes
// when non-empty, and the clone inside it.
func (o *Orchestrator) checkoutTag(ctx context.Context, tag string) (string, string, Result) {
	root, err := o.Root(ctx)
	if err != nil {
		o.status.Error("Installing a tag needs a git checkout: %v", err)
		return "", "", Fail(PhaseCheckout, 1)
	}

	tmp, err := os.MkdirTemp("", "cccpt-install-")
	if err != nil {
		o.status.Error("Could not create a temporary directory: %v", err)
		return "", "", Fail(PhaseCheckout, 1)
	}

	clone := filepath.Join(tmp, filepath.Base(root))
	o.status.Info("Cloning %s at %s", root, tag)
	if code, err := o.git.Clone(ctx, root, clone); err != nil || code != 0 {
		o.status.Error("Could not clone %s: %v", root, gitFailure(code, err))
		return tmp, "", Fail(PhaseCheckout, code)
	}
	if code, err := o.git.Checkout(ctx, clone, tag); err != nil || code != 0 {
		o.status.Error("Could not check out %s: %v", tag, gitFailure(code, err))
		return tmp, "", Fail(PhaseCheckout, code)
	}

	return tmp, clone, Result{}
}
