package cmd

import (
	"github.com/spf13/cobra"

	"go.dot.industries/cccpt/internal/pipeline"
	"go.dot.industries/cccpt/internal/project"
)

var (
	flagBuildRelease   bool
	flagTarget         string
	flagForceConfigure bool
	flagJobs           int
)

func init() {
	buildCmd.Flags().BoolVarP(&flagBuildRelease, "release", "r", false, "build in release mode")
	buildCmd.Flags().StringVarP(&flagTarget, "target", "t", "", "build only this target")
	buildCmd.Flags().BoolVarP(&flagForceConfigure, "force-configure", "f", false, "configure even if the build directory is configured")
	buildCmd.Flags().IntVarP(&flagJobs, "jobs", "j", 0, "parallel build jobs, 1-1024 (default: number of CPUs)")

	rootCmd.AddCommand(buildCmd)
}

var buildCmd = &cobra.Command{
	Use:   "build [flags] [-- cmake build options...]",
	Short: "Build the project, configuring it first when needed",
	RunE:  runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	o, err := setup(cmd.Context())
	if err != nil {
		return err
	}

	res := o.Build(cmd.Context(), pipeline.BuildOptions{
		Mode:           project.ModeFor(flagBuildRelease),
		Target:         flagTarget,
		Extra:          extraArgs(args),
		ForceConfigure: flagForceConfigure,
		Jobs:           flagJobs,
	})
	return finish(res)
}
