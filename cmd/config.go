package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"go.dot.industries/cccpt/internal/config"
)

var flagShowTOML bool

func init() {
	configShowCmd.Flags().BoolVar(&flagShowTOML, "toml", false, "print as TOML instead of YAML")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the merged configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the merged configuration tree",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, _, err := loadConfig()
		if err != nil {
			return err
		}

		encode := config.EncodeYAML
		if flagShowTOML {
			encode = config.EncodeTOML
		}
		data, err := encode(tree)
		if err != nil {
			return err
		}

		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <path>",
	Short: "Print one value of the merged configuration, e.g. /project/build/jobs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, _, err := loadConfig()
		if err != nil {
			return err
		}

		v, ok := tree.Get(args[0])
		if !ok {
			return fmt.Errorf("%s is not set", config.CleanPath(args[0]))
		}

		out := cmd.OutOrStdout()
		switch val := v.(type) {
		case map[string]any:
			data, err := config.EncodeYAML(config.NewTree(val))
			if err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		case []any:
			items, err := config.AsStrings(val, nil)
			if err != nil {
				return err
			}
			for _, item := range items {
				fmt.Fprintln(out, item)
			}
		default:
			s, _ := config.AsString(val)
			fmt.Fprintln(out, s)
		}
		return nil
	},
}
