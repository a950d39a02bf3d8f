package cmd

import (
	"github.com/spf13/cobra"

	"go.dot.industries/cccpt/internal/pipeline"
)

var (
	flagDebugMatch     string
	flagDebugSkipBuild bool
)

func init() {
	debugCmd.Flags().StringVarP(&flagDebugMatch, "match", "m", "", "only record executables whose path relative to the build directory contains this text")
	debugCmd.Flags().BoolVarP(&flagDebugSkipBuild, "skip-build", "s", false, "record without building first")

	rootCmd.AddCommand(debugCmd)
}

var debugCmd = &cobra.Command{
	Use:   "debug [flags] [-- test arguments...]",
	Short: "Record the debug test executables with rr",
	Long: `Builds in debug mode and runs each debug test executable under
"rr record". rr needs /proc/sys/kernel/perf_event_paranoid set to 1 or lower.`,
	RunE: runDebug,
}

func runDebug(cmd *cobra.Command, args []string) error {
	o, err := setup(cmd.Context())
	if err != nil {
		return err
	}

	res := o.Debug(cmd.Context(), pipeline.DebugOptions{
		Match:     flagDebugMatch,
		PassArgs:  extraArgs(args),
		SkipBuild: flagDebugSkipBuild,
	})
	return finish(res)
}
