package cmd

import (
	"github.com/spf13/cobra"

	"go.dot.industries/cccpt/internal/pipeline"
)

var flagRecipeFile string

func init() {
	editableCmd.Flags().StringVarP(&flagRecipeFile, "conan-recipe-file", "r", "", "conanfile.py to install with the package")

	rootCmd.AddCommand(editableCmd)
}

var editableCmd = &cobra.Command{
	Use:   "make-conan-editable-package <reference>",
	Short: "Install the project and register it as a Conan editable package",
	Long: `Installs a release build into <release build dir>-conan_editable_package/INSTALL
and runs "conan editable add" for the reference. The recipe copied next to the
install is --conan-recipe-file, else conanfile.py from the build directory or
project root, else the output of "conan get <reference>".`,
	Args: cobra.ExactArgs(1),
	RunE: runEditable,
}

func runEditable(cmd *cobra.Command, args []string) error {
	o, err := setup(cmd.Context())
	if err != nil {
		return err
	}

	res := o.MakeEditable(cmd.Context(), pipeline.EditableOptions{
		Reference:  args[0],
		RecipeFile: flagRecipeFile,
	})
	return finish(res)
}
