// This is the main entry point for the datashed CLI.
// Build with: go build -o bin/datashed ./cmd/datashed
// Usage: datashed --catalog catalog.yaml <command> [options]
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
