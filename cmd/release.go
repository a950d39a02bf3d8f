package cmd

import (
	"github.com/spf13/cobra"

	"go.dot.industries/cccpt/internal/pipeline"
)

var (
	flagDirtyOK     bool
	flagDryRun      bool
	flagStrict      bool
	flagBumpVersion bool
)

func init() {
	releaseCmd.Flags().BoolVar(&flagDirtyOK, "dirty-ok", false, "allow uncommitted changes")
	releaseCmd.Flags().BoolVarP(&flagDryRun, "dry-run", "n", false, "run every check but do not tag")
	releaseCmd.Flags().BoolVar(&flagStrict, "strict", false, "require the version file to equal the tag")
	releaseCmd.Flags().BoolVar(&flagBumpVersion, "bump-version", false, "write the tag's version to the version file and commit it")

	rootCmd.AddCommand(releaseCmd)
}

var releaseCmd = &cobra.Command{
	Use:   "tag-for-release <tag>",
	Short: "Test a release build and tag HEAD",
	Long: `Refuses existing tags and dirty trees, checks the tag against version.txt,
runs the release tests in a temporary build directory and the executables in
.cccpt/pre-release.d, and only then creates an annotated tag.`,
	Args: cobra.ExactArgs(1),
	RunE: runRelease,
}

func runRelease(cmd *cobra.Command, args []string) error {
	o, err := setup(cmd.Context())
	if err != nil {
		return err
	}

	res := o.TagForRelease(cmd.Context(), pipeline.ReleaseOptions{
		Tag:         args[0],
		DirtyOK:     flagDirtyOK,
		DryRun:      flagDryRun,
		Strict:      flagStrict,
		BumpVersion: flagBumpVersion,
	})
	return finish(res)
}
