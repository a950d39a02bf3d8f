package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"go.dot.industries/cccpt/internal/config"
	"go.dot.industries/cccpt/internal/envsynth"
	"go.dot.industries/cccpt/internal/exec"
	"go.dot.industries/cccpt/internal/pipeline"
	"go.dot.industries/cccpt/internal/status"
)

// maxExitCode is the largest code a process can report.
const maxExitCode = 255

var (
	flagConfig    string
	flagLocalOnly bool
	flagBuildDir  string
	flagVerbose   bool
	flagNoColor   bool
)

var rootCmd = &cobra.Command{
	Use:   "cccpt",
	Short: "Configure, build, test and release CMake/Conan C++ projects",
	Long: `cccpt drives conan, cmake and the project's test executables with one
consistent environment. Configuration is read from every .project.yml found
between the working directory and the filesystem root, farthest first.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// exitCodeError carries a failing pipeline result out of cobra.
type exitCodeError struct {
	result pipeline.Result
}

func (e *exitCodeError) Error() string {
	return fmt.Sprintf("%s phase failed with exit code %d", e.result.Phase, e.result.Code)
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return 0
	}

	var exitErr *exitCodeError
	if errors.As(err, &exitErr) {
		log.Debug().Str("phase", string(exitErr.result.Phase)).Int("code", exitErr.result.Code).Msg("command failed")
		return min(exitErr.result.Code, maxExitCode)
	}

	fmt.Fprintln(os.Stderr, "Error:", err)
	return 1
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", config.DefaultFileName, "config fragment file name looked up in every ancestor directory")
	rootCmd.PersistentFlags().BoolVarP(&flagLocalOnly, "local-config-only", "l", false, "only read the config fragment in the working directory")
	rootCmd.PersistentFlags().StringVarP(&flagBuildDir, "build-dir", "b", "", "build directory (overrides the per-mode default)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colored status lines")

	cobra.OnInitialize(initLogger)
}

func initLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level := zerolog.InfoLevel
	if flagVerbose {
		level = zerolog.DebugLevel
	}

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger().Level(level)
}

// loadConfig discovers and merges the config fragments visible from the
// working directory and applies the global flags on top.
func loadConfig() (*config.Tree, string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("getting working directory: %w", err)
	}

	maxHeight := config.Unlimited
	if flagLocalOnly {
		maxHeight = 0
	}

	tree, files, err := config.Load(afero.NewOsFs(), cwd, flagConfig, maxHeight)
	if err != nil {
		return nil, "", err
	}
	for _, f := range files {
		log.Debug().Str("path", f.Path).Int("depth", f.Depth).Msg("loaded config fragment")
	}

	if err := config.Validate(tree); err != nil {
		return nil, "", err
	}

	if flagBuildDir != "" {
		if err := tree.Set(config.PathBuildDir, flagBuildDir); err != nil {
			return nil, "", err
		}
	}
	if err := tree.Set(config.PathVerbose, flagVerbose); err != nil {
		return nil, "", err
	}

	return tree, cwd, nil
}

// setup builds the orchestrator for one command run and applies the
// configured environment.
func setup(ctx context.Context) (*pipeline.Orchestrator, error) {
	tree, cwd, err := loadConfig()
	if err != nil {
		return nil, err
	}

	color := !flagNoColor && os.Getenv("NO_COLOR") == ""
	o := pipeline.New(
		pipeline.NewScope(tree),
		envsynth.FromOS(),
		exec.NewOSInvoker(),
		cwd,
		pipeline.WithReporter(status.New(os.Stderr, color)),
	)

	if err := o.Bootstrap(ctx); err != nil {
		return nil, fmt.Errorf("applying configured environment: %w", err)
	}
	return o, nil
}

// finish turns a pipeline result into the command's error.
func finish(res pipeline.Result) error {
	if res.OK() {
		return nil
	}
	return &exitCodeError{result: res}
}

// extraArgs returns args, or nil when there are none so configured
// defaults apply.
func extraArgs(args []string) []string {
	if len(args) == 0 {
		return nil
	}
	return args
}
