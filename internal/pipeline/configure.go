package pipeline

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"

	"go.dot.industries/cccpt/internal/config"
	"go.dot.industries/cccpt/internal/project"
)

// ConfigureOptions are the inputs of Configure. Nil option lists fall back
// to the configuration tree.
type ConfigureOptions struct {
	Mode          project.Mode
	InstallPrefix string
	ExtraCMake    []string
	ExtraConan    []string
}

// Configure installs dependencies when a manifest is present and then runs
// the CMake configure step when the root holds a CMakeLists.txt. A project
// with neither succeeds without running anything.
func (o *Orchestrator) Configure(ctx context.Context, opts ConfigureOptions) Result {
	defer o.scope.Enter()()

	root := o.rootOrWorkDir(ctx)
	buildDir := o.BuildDir(root, opts.Mode)
	log.Debug().Str("root", root).Str("build_dir", buildDir).Stringer("mode", opts.Mode).Msg("configure")

	if err := os.MkdirAll(buildDir, 0755); err != nil {
		o.status.Error("Could not create build directory %s: %v", buildDir, err)
		return Fail(PhaseConfigure, 1)
	}

	if manifest, ok := project.FindManifest(buildDir, root); ok {
		if res := o.installDependencies(ctx, manifest, buildDir, opts.ExtraConan); !res.OK() {
			return res
		}
	}

	if !project.HasBuildDescriptor(root) {
		log.Debug().Str("root", root).Msg("no build descriptor, skipping cmake configure")
		return Result{}
	}

	if res := o.refreshEnvironment(ctx, buildDir); !res.OK() {
		return res
	}

	extra, err := o.stringsOption(opts.ExtraCMake, config.PathExtraConfigure)
	if err != nil {
		o.status.Error("Invalid configure options: %v", err)
		return Fail(PhaseConfigure, 1)
	}

	cmake := o.tool("cmake")
	argv := []string{cmake, root, "-DCMAKE_BUILD_TYPE=" + opts.Mode.BuildType()}
	if gen := o.generator(ctx, cmake); gen != "" {
		argv = append(argv, "-G", gen)
	}
	argv = append(argv, extra...)
	if opts.InstallPrefix != "" {
		argv = append(argv, "-DCMAKE_INSTALL_PREFIX="+opts.InstallPrefix)
	}

	o.status.Info("Configuring %s build in %s", opts.Mode, buildDir)
	if code := o.run(ctx, buildDir, argv...); code != 0 {
		o.status.Error("CMake configure failed with exit code %d.", code)
		return Fail(PhaseConfigure, code)
	}
	return Result{}
}

func (o *Orchestrator) installDependencies(ctx context.Context, manifest, buildDir string, override []string) Result {
	extra, err := o.stringsOption(override, config.PathExtraConan)
	if err != nil {
		o.status.Error("Invalid dependency install options: %v", err)
		return Fail(PhaseDependencies, 1)
	}

	argv := append([]string{o.tool("conan"), "install", manifest, "--build=missing"}, extra...)

	o.status.Info("Installing dependencies from %s", manifest)
	code := o.run(ctx, buildDir, argv...)
	// the install rewrites the descriptors, so the next refresh must reread them
	delete(o.envLoaded, buildDir)
	if code != 0 {
		o.status.Error("Dependency install failed with exit code %d.", code)
		return Fail(PhaseDependencies, code)
	}
	return Result{}
}

func (o *Orchestrator) generator(ctx context.Context, cmake string) string {
	if gen := o.scope.String(config.PathGenerator, ""); gen != "" {
		return gen
	}
	return o.generators.Detect(ctx, cmake)
}
