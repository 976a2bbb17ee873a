package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var loadCmd = &cobra.Command{
	Use:   "load <name>",
	Short: "Load a dataset and print its value",
	Long: `Load resolves the dataset's configured version, reads the file and
prints the decoded value to stdout. Text datasets print raw content;
everything else prints as indented JSON.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := openCatalog()
		if err != nil {
			return err
		}
		value, err := cat.Load(args[0])
		if err != nil {
			return err
		}

		if text, ok := value.(string); ok {
			fmt.Print(text)
			return nil
		}
		out, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to render value: %w", err)
		}
		fmt.Println(string(out))
		return nil
	},
}
