package cmd

import (
	"github.com/spf13/cobra"

	"go.dot.industries/cccpt/internal/pipeline"
)

var (
	flagUserChannel string
	flagConanHome   string
)

func init() {
	recipesCmd.Flags().StringVarP(&flagUserChannel, "user-channel", "u", "", "user/channel to export recipes to")
	recipesCmd.Flags().StringVar(&flagConanHome, "home", "", "conan user home to export into")

	rootCmd.AddCommand(recipesCmd)
}

var recipesCmd = &cobra.Command{
	Use:   "install-recipes [url...]",
	Short: "Export Conan recipes from git repositories into the local cache",
	Long: `Clones each repository (default: the /recipes/remotes config list) and
exports its recipes: by running export-packages.py when the repository has
one, otherwise with "conan export" for every conanfile.py.`,
	RunE: runRecipes,
}

func runRecipes(cmd *cobra.Command, args []string) error {
	o, err := setup(cmd.Context())
	if err != nil {
		return err
	}

	res := o.InstallRecipes(cmd.Context(), pipeline.RecipeOptions{
		URLs:        extraArgs(args),
		UserChannel: flagUserChannel,
		Home:        flagConanHome,
	})
	return finish(res)
}
