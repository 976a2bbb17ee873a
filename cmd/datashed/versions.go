package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/datashed/datashed/version"
)

var versionsCmd = &cobra.Command{
	Use:   "versions <name>",
	Short: "List the saved versions of a dataset, oldest first",
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

		if v, _ := desc["version"].(*version.Version); v == nil {
			return fmt.Errorf("dataset %q is not versioned", args[0])
		}
		path, _ := desc["filepath"].(string)

		tokens, err := version.Tokens(path)
		if err != nil {
			return err
		}
		for _, token := range tokens {
			fmt.Println(token)
		}
		return nil
	},
}
