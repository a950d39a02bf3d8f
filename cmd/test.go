package cmd

import (
	"github.com/spf13/cobra"

	"go.dot.industries/cccpt/internal/pipeline"
	"go.dot.industries/cccpt/internal/project"
)

var (
	flagTestRelease   bool
	flagTestMatch     string
	flagTestSkipBuild bool
)

func init() {
	testCmd.Flags().BoolVarP(&flagTestRelease, "release", "r", false, "test the release build")
	testCmd.Flags().StringVarP(&flagTestMatch, "match", "m", "", "only run executables whose path relative to the build directory contains this text")
	testCmd.Flags().BoolVarP(&flagTestSkipBuild, "skip-build", "s", false, "run the tests without building first")

	rootCmd.AddCommand(testCmd)
}

var testCmd = &cobra.Command{
	Use:   "test [flags] [-- test arguments...]",
	Short: "Build and run the test executables",
	Long: `Builds the project and runs every executable in the build directory whose
name matches the test patterns (*Tests*, *Tester*, *unitTest* by default).
Debug runs pick executables with debug information, release runs those
without. The exit code is the sum of the failing executables' exit codes.`,
	RunE: runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	o, err := setup(cmd.Context())
	if err != nil {
		return err
	}

	res := o.Test(cmd.Context(), pipeline.TestOptions{
		Mode:      project.ModeFor(flagTestRelease),
		Match:     flagTestMatch,
		PassArgs:  extraArgs(args),
		SkipBuild: flagTestSkipBuild,
	})
	return finish(res)
}
