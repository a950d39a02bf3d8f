package cmd

import (
	"github.com/spf13/cobra"

	"go.dot.industries/cccpt/internal/pipeline"
)

var (
	flagInstallDir   string
	flagInstallTag   string
	flagInstallDebug bool
)

func init() {
	installCmd.Flags().StringVarP(&flagInstallDir, "dir", "d", "", "install prefix (default: CMake's)")
	installCmd.Flags().StringVar(&flagInstallTag, "tag", "", "install this tag from a fresh clone instead of the checkout")
	installCmd.Flags().BoolVar(&flagInstallDebug, "debug", false, "install a debug build")

	rootCmd.AddCommand(installCmd)
}

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Configure with an install prefix and build the install target",
	Args:  cobra.NoArgs,
	RunE:  runInstall,
}

func runInstall(cmd *cobra.Command, args []string) error {
	o, err := setup(cmd.Context())
	if err != nil {
		return err
	}

	res := o.Install(cmd.Context(), pipeline.InstallOptions{
		Dir:   flagInstallDir,
		Tag:   flagInstallTag,
		Debug: flagInstallDebug,
	})
	return finish(res)
}
