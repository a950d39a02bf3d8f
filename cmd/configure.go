package cmd

import (
	"github.com/spf13/cobra"

	"go.dot.industries/cccpt/internal/pipeline"
	"go.dot.industries/cccpt/internal/project"
)

var (
	flagConfigureRelease bool
	flagInstallPrefix    string
	flagConanOptions     []string
)

func init() {
	configureCmd.Flags().BoolVarP(&flagConfigureRelease, "release", "r", false, "configure a release build")
	configureCmd.Flags().StringVar(&flagInstallPrefix, "install-prefix", "", "CMAKE_INSTALL_PREFIX for the build")
	configureCmd.Flags().StringArrayVar(&flagConanOptions, "conan-option", nil, "extra option for conan install (repeatable)")

	rootCmd.AddCommand(configureCmd)
}

var configureCmd = &cobra.Command{
	Use:   "configure [flags] [-- cmake options...]",
	Short: "Install dependencies and run the CMake configure step",
	Long: `Installs the dependencies named by conanfile.py or conanfile.txt into the
build directory, then configures it with cmake. Arguments after -- are passed
to cmake and replace the configured extra options.`,
	RunE: runConfigure,
}

func runConfigure(cmd *cobra.Command, args []string) error {
	o, err := setup(cmd.Context())
	if err != nil {
		return err
	}

	res := o.Configure(cmd.Context(), pipeline.ConfigureOptions{
		Mode:          project.ModeFor(flagConfigureRelease),
		InstallPrefix: flagInstallPrefix,
		ExtraCMake:    extraArgs(args),
		ExtraConan:    extraArgs(flagConanOptions),
	})
	return finish(res)
}
