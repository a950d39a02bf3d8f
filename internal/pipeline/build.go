package pipeline

import (
	"context"
	"strconv"

	"github.com/rs/zerolog/log"

	"go.dot.industries/cccpt/internal/config"
	"go.dot.industries/cccpt/internal/project"
)

// BuildOptions are the inputs of Build. A Jobs value outside 1..1024 means
// auto; a nil Extra falls back to the configuration tree.
type BuildOptions struct {
	Mode           project.Mode
	Target         string
	Extra          []string
	ForceConfigure bool
	Jobs           int
}

// Build configures the build tree when forced or when it was never
// configured, then runs the CMake build step.
func (o *Orchestrator) Build(ctx context.Context, opts BuildOptions) Result {
	defer o.scope.Enter()()

	root := o.rootOrWorkDir(ctx)
	buildDir := o.BuildDir(root, opts.Mode)

	if opts.ForceConfigure || !project.IsConfigured(buildDir) {
		if res := o.Configure(ctx, ConfigureOptions{Mode: opts.Mode}); !res.OK() {
			return res
		}
	} else if res := o.refreshEnvironment(ctx, buildDir); !res.OK() {
		return res
	}

	if !project.HasBuildDescriptor(root) {
		o.status.Info("No %s in %s, nothing to build.", project.BuildDescriptor, root)
		return Result{}
	}

	extra, err := o.stringsOption(opts.Extra, config.PathExtraBuild)
	if err != nil {
		o.status.Error("Invalid build options: %v", err)
		return Fail(PhaseBuild, 1)
	}

	jobs := o.jobs(opts.Jobs)
	argv := []string{
		o.tool("cmake"), "--build", ".",
		"--config", opts.Mode.BuildType(),
		"--parallel", strconv.Itoa(jobs),
	}
	if opts.Target != "" {
		argv = append(argv, "--target", opts.Target)
	}
	argv = append(argv, extra...)

	log.Debug().Str("build_dir", buildDir).Int("jobs", jobs).Str("target", opts.Target).Msg("build")
	if code := o.run(ctx, buildDir, argv...); code != 0 {
		o.status.Error("Build failed with exit code %d.", code)
		return Fail(PhaseBuild, code)
	}
	return Result{}
}
