package pipeline

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"go.dot.industries/cccpt/internal/artifact"
	"go.dot.industries/cccpt/internal/config"
	"go.dot.industries/cccpt/internal/project"
)

// TestOptions are the inputs of Test. Match filters executables by a
// substring of their path relative to the build directory. Prefix is
// prepended to every test command line, e.g. a debugger wrapper.
type TestOptions struct {
	Mode      project.Mode
	Match     string
	PassArgs  []string
	SkipBuild bool
	Prefix    []string
}

// Test builds (unless skipped), discovers the test executables in the
// build tree and runs each one. The result code is the sum of the absolute
// exit codes of the failing executables.
func (o *Orchestrator) Test(ctx context.Context, opts TestOptions) Result {
	defer o.scope.Enter()()

	root := o.rootOrWorkDir(ctx)
	buildDir := o.BuildDir(root, opts.Mode)

	if !opts.SkipBuild {
		if res := o.Build(ctx, BuildOptions{Mode: opts.Mode}); !res.OK() {
			o.status.Error("Build phase returned non-zero exit code %d, not running tests.", res.Code)
			return res
		}
	}
	if res := o.refreshEnvironment(ctx, buildDir); !res.OK() {
		return res
	}

	tests, res := o.discoverTests(ctx, buildDir, opts)
	if !res.OK() {
		return res
	}

	passArgs, err := o.stringsOption(opts.PassArgs, config.PathTestPassArgs)
	if err != nil {
		o.status.Error("Invalid test arguments: %v", err)
		return Fail(PhaseTest, 1)
	}

	steps := make([]Step, 0, len(tests))
	for _, path := range tests {
		steps = append(steps, o.testStep(buildDir, path, opts.Prefix, passArgs))
	}

	res = SumCodes(steps...)(ctx)
	if res.OK() {
		o.status.Success("All %d test executables passed.", len(tests))
	} else {
		o.status.Error("Tests failed (aggregate exit code %d).", res.Code)
	}
	return res
}

func (o *Orchestrator) discoverTests(ctx context.Context, buildDir string, opts TestOptions) ([]string, Result) {
	patterns, err := o.scope.Strings(config.PathTestPatterns, o.env.Get)
	if err != nil {
		o.status.Error("Invalid test patterns: %v", err)
		return nil, Fail(PhaseDiscover, 1)
	}
	if len(patterns) == 0 {
		patterns = artifact.DefaultPatterns
	}

	found, err := o.scanner.Scan(ctx, buildDir, patterns)
	if err != nil {
		o.status.Error("Could not scan %s for tests: %v", buildDir, err)
		return nil, Fail(PhaseDiscover, 1)
	}

	candidates, err := o.scanner.DedupeByContent(ctx, found.Select(opts.Mode == project.Debug))
	if err != nil {
		o.status.Error("Could not compare test executables: %v", err)
		return nil, Fail(PhaseDiscover, 1)
	}

	var tests []string
	for _, path := range candidates {
		if opts.Match == "" || strings.Contains(relativeTo(buildDir, path), opts.Match) {
			tests = append(tests, path)
		}
	}

	log.Debug().Strs("tests", tests).Int("candidates", len(found.All)).Msg("discovered tests")
	if len(tests) == 0 {
		o.status.Error("No test executables found in %s.", buildDir)
		return nil, Fail(PhaseDiscover, 1)
	}
	return tests, Result{}
}

func (o *Orchestrator) testStep(buildDir, path string, prefix, passArgs []string) Step {
	return func(ctx context.Context) Result {
		argv := make([]string, 0, len(prefix)+1+len(passArgs))
		argv = append(argv, prefix...)
		argv = append(argv, path)
		argv = append(argv, passArgs...)

		o.status.Info("Running %s", relativeTo(buildDir, path))
		if code := o.run(ctx, buildDir, argv...); code != 0 {
			o.status.Detail("exited with code %d", code)
			return Fail(PhaseTest, abs(code))
		}
		return Result{}
	}
}

func relativeTo(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
