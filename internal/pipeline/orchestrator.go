// Package pipeline sequences the external tools that configure, build, test,
// install and release a CMake/Conan project.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog/log"

	"go.dot.industries/cccpt/internal/artifact"
	"go.dot.industries/cccpt/internal/config"
	"go.dot.industries/cccpt/internal/envsynth"
	"go.dot.industries/cccpt/internal/exec"
	"go.dot.industries/cccpt/internal/project"
	"go.dot.industries/cccpt/internal/status"
	"go.dot.industries/cccpt/internal/vcs"
)

const (
	minJobs = 1
	maxJobs = 1024
)

const defaultParanoidPath = "/proc/sys/kernel/perf_event_paranoid"

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithReporter sets where status lines go. Nil values are ignored.
func WithReporter(r *status.Reporter) Option {
	return func(o *Orchestrator) {
		if r != nil {
			o.status = r
		}
	}
}

// WithScanner replaces the test executable scanner. Nil values are ignored.
func WithScanner(s *artifact.Scanner) Option {
	return func(o *Orchestrator) {
		if s != nil {
			o.scanner = s
		}
	}
}

// WithGeneratorDetector replaces generator detection. Nil values are
// ignored.
func WithGeneratorDetector(d GeneratorDetector) Option {
	return func(o *Orchestrator) {
		if d != nil {
			o.generators = d
		}
	}
}

// WithPlatform overrides the platform name used in default build
// directories.
func WithPlatform(platform string) Option {
	return func(o *Orchestrator) {
		if platform != "" {
			o.platform = platform
		}
	}
}

// WithParanoidPath overrides where the kernel perf_event_paranoid setting
// is read from.
func WithParanoidPath(path string) Option {
	return func(o *Orchestrator) {
		o.paranoidPath = path
	}
}

// Orchestrator runs pipeline commands. It is not safe for concurrent use;
// one pipeline run drives one Orchestrator.
type Orchestrator struct {
	scope      *Scope
	env        *envsynth.Environment
	invoker    exec.Invoker
	git        *vcs.Git
	status     *status.Reporter
	scanner    *artifact.Scanner
	generators GeneratorDetector

	workDir      string
	platform     string
	paranoidPath string

	detectedRoot string
	rootWarned   bool
	envLoaded    map[string]bool
}

// New creates an Orchestrator for a run started in workDir.
func New(scope *Scope, env *envsynth.Environment, invoker exec.Invoker, workDir string, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		scope:        scope,
		env:          env,
		invoker:      invoker,
		status:       status.Discard(),
		scanner:      artifact.New(),
		workDir:      workDir,
		platform:     project.HostPlatform(),
		paranoidPath: defaultParanoidPath,
		envLoaded:    make(map[string]bool),
	}

	for _, opt := range opts {
		opt(o)
	}

	if o.generators == nil {
		o.generators = NewGeneratorDetector(invoker, env)
	}
	o.git = vcs.New(invoker, o.tool("git"), env.Environ)

	return o
}

// Scope returns the run's configuration scope.
func (o *Orchestrator) Scope() *Scope {
	return o.scope
}

// Environment returns the synthesized environment.
func (o *Orchestrator) Environment() *envsynth.Environment {
	return o.env
}

// Bootstrap applies the dotenv files and the environment table from the
// configuration, in that order.
func (o *Orchestrator) Bootstrap(ctx context.Context) error {
	files, err := o.scope.Strings(config.PathEnvironmentFiles, o.env.Get)
	if err != nil {
		return fmt.Errorf("environment files: %w", err)
	}

	if len(files) > 0 {
		root := o.rootOrWorkDir(ctx)
		for i, f := range files {
			if !filepath.IsAbs(f) {
				files[i] = filepath.Join(root, f)
			}
		}
		if err := o.env.LoadDotenv(files...); err != nil {
			return err
		}
	}

	if vars := o.scope.Base().Table(config.PathEnvironment); len(vars) > 0 {
		if err := o.env.LoadVariables(vars); err != nil {
			return err
		}
	}

	return nil
}

// Root returns the project root: an explicit /project/root override, or
// the top level of the git working tree holding the working directory.
func (o *Orchestrator) Root(ctx context.Context) (string, error) {
	if root := o.scope.String(config.PathRoot, ""); root != "" {
		return o.abs(root), nil
	}
	if o.detectedRoot != "" {
		return o.detectedRoot, nil
	}

	root, err := project.ResolveRoot(ctx, o.git, o.workDir)
	if err != nil {
		return "", err
	}
	o.detectedRoot = root
	return root, nil
}

func (o *Orchestrator) rootOrWorkDir(ctx context.Context) string {
	root, err := o.Root(ctx)
	if err == nil {
		return root
	}

	if !o.rootWarned {
		o.rootWarned = true
		log.Debug().Err(err).Msg("falling back to working directory")
		o.status.Warn("Could not determine the project root; using %s.", o.workDir)
	}
	return o.workDir
}

// BuildDir returns the build directory for mode: the /project/build-dir
// override when set, else the per-mode default under root.
func (o *Orchestrator) BuildDir(root string, mode project.Mode) string {
	if dir := o.scope.String(config.PathBuildDir, ""); dir != "" {
		return o.abs(dir)
	}
	return project.BuildDir(root, mode, o.platform)
}

func (o *Orchestrator) abs(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(o.workDir, path)
}

func (o *Orchestrator) tool(name string) string {
	return o.scope.String(config.ToolPath(name), name)
}

// stringsOption returns override when it is non-nil, else the list at path.
func (o *Orchestrator) stringsOption(override []string, path string) ([]string, error) {
	if override != nil {
		return override, nil
	}
	return o.scope.Strings(path, o.env.Get)
}

func (o *Orchestrator) jobs(requested int) int {
	if requested >= minJobs && requested <= maxJobs {
		return requested
	}
	if n, ok := o.scope.Int(config.PathJobs); ok && n >= minJobs && n <= maxJobs {
		return n
	}
	return runtime.NumCPU()
}

// refreshEnvironment folds the dependency manager's output in buildDir into
// the environment: descriptor files, then build-info, then the activation
// script. Each build directory is folded once until a dependency install
// invalidates it.
func (o *Orchestrator) refreshEnvironment(ctx context.Context, buildDir string) Result {
	if o.envLoaded[buildDir] {
		return Result{}
	}

	if err := o.env.LoadFromDescriptorFile(buildDir); err != nil {
		o.status.Error("Could not load environment descriptors: %v", err)
		return Fail(PhaseEnvironment, 1)
	}
	if err := o.env.LoadFromBuildInfo(filepath.Join(buildDir, envsynth.BuildInfoFile)); err != nil {
		o.status.Error("Could not load build info: %v", err)
		return Fail(PhaseEnvironment, 1)
	}
	if envsynth.ActivateScript != "" {
		if err := o.env.SourceScript(ctx, filepath.Join(buildDir, envsynth.ActivateScript)); err != nil {
			o.status.Error("Could not source activation script: %v", err)
			return Fail(PhaseEnvironment, 1)
		}
	}

	o.envLoaded[buildDir] = true
	return Result{}
}

// run invokes argv in dir with the synthesized environment and returns the
// tool's exit code. A tool that cannot be started counts as a failure.
func (o *Orchestrator) run(ctx context.Context, dir string, argv ...string) int {
	res, err := o.invoker.Invoke(ctx, exec.Invocation{
		Argv: argv,
		Dir:  dir,
		Env:  o.env.Environ(),
	})
	if err != nil {
		o.status.Error("Could not run %s: %v", argv[0], err)
		return max(res.ExitCode, 1)
	}
	return res.ExitCode
}

// capture invokes argv in dir like run but returns the tool's stdout.
func (o *Orchestrator) capture(ctx context.Context, dir string, argv ...string) (string, int, error) {
	res, err := o.invoker.Invoke(ctx, exec.Invocation{
		Argv:    argv,
		Dir:     dir,
		Env:     o.env.Environ(),
		Capture: true,
	})
	if err != nil {
		return "", max(res.ExitCode, 1), err
	}
	return res.Output, res.ExitCode, nil
}
