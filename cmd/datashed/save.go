package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var saveRaw bool

var saveCmd = &cobra.Command{
	Use:   "save <name> [file]",
	Short: "Save a value to a dataset",
	Long: `Save reads a value from the given file (or stdin when omitted or "-")
and writes it to the named dataset. Input is decoded as JSON when possible;
use --raw to store the input bytes verbatim, e.g. for text datasets.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readInput(args)
		if err != nil {
			return err
		}

		var value any = string(data)
		if !saveRaw {
			var decoded any
			if err := json.Unmarshal(data, &decoded); err == nil {
				value = decoded
			}
		}

		cat, err := openCatalog()
		if err != nil {
			return err
		}
		if err := cat.Save(args[0], value); err != nil {
			return err
		}
		logger.Info("dataset saved", "name", args[0])
		return nil
	},
}

func init() {
	saveCmd.Flags().BoolVar(&saveRaw, "raw", false, "store the input bytes without JSON decoding")
}

func readInput(args []string) ([]byte, error) {
	if len(args) < 2 || args[1] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(args[1])
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	return data, nil
}
