package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var existsCmd = &cobra.Command{
	Use:   "exists <name>",
	Short: "Report whether a dataset exists on disk",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := openCatalog()
		if err != nil {
			return err
		}
		exists, err := cat.Exists(args[0])
		if err != nil {
			return err
		}
		fmt.Println(exists)
		return nil
	},
}
