package cmd

import (
	"github.com/spf13/cobra"
)

var flagCleanAll bool

func init() {
	cleanCmd.Flags().BoolVarP(&flagCleanAll, "all", "a", false, "also remove untracked files with git clean")

	rootCmd.AddCommand(cleanCmd)
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the build directories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		return finish(o.Clean(cmd.Context(), flagCleanAll))
	},
}
