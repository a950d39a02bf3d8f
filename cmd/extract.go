package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var flagOutputFile string

func init() {
	extractCmd.Flags().StringVarP(&flagOutputFile, "output-file", "o", "", "write the conanfile.txt here instead of stdout")

	rootCmd.AddCommand(extractCmd)
}

var extractCmd = &cobra.Command{
	Use:   "extract-basic-conan-file <conanfile.py>",
	Short: "Print the requires and generators of a Conan recipe as a conanfile.txt",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	o, err := setup(cmd.Context())
	if err != nil {
		return err
	}

	text, err := o.ExtractConanfile(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if flagOutputFile == "" {
		fmt.Fprint(cmd.OutOrStdout(), text)
		return nil
	}
	if err := os.WriteFile(flagOutputFile, []byte(text), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", flagOutputFile, err)
	}
	return nil
}
