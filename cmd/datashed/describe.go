package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var describeCmd = &cobra.Command{
	Use:   "describe <name>",
	Short: "Show a dataset's configuration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := openCatalog()
		if err != nil {
			return err
		}
		desc, err := cat.Describe(args[0])
		if err != nil {
			return err
		}

		out, err := yaml.Marshal(desc)
		if err != nil {
			return fmt.Errorf("failed to render description: %w", err)
		}
		fmt.Print(string(out))
		return nil
	},
}
