package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(listSourcesCmd)
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the project name, root and build directories",
	Args:  cobra.NoArgs,
	RunE:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	o, err := setup(cmd.Context())
	if err != nil {
		return err
	}

	info, err := o.Info(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	name := info.Name
	if info.Note != "" {
		name = fmt.Sprintf("%s (%s)", name, info.Note)
	}
	fmt.Fprintf(out, "Project:       %s\n", name)
	fmt.Fprintf(out, "Root:          %s\n", info.Root)
	fmt.Fprintf(out, "Debug build:   %s\n", info.DebugBuildDir)
	fmt.Fprintf(out, "Release build: %s\n", info.ReleaseBuildDir)

	return nil
}

var listSourcesCmd = &cobra.Command{
	Use:   "list-sources",
	Short: "List the project's source files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := setup(cmd.Context())
		if err != nil {
			return err
		}

		files, err := o.Sources(cmd.Context())
		if err != nil {
			return err
		}
		for _, f := range files {
			fmt.Fprintln(cmd.OutOrStdout(), f)
		}
		return nil
	},
}
