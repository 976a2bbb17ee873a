package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/datashed/datashed/catalog"
)

var rootCmd = &cobra.Command{
	Use:   "datashed",
	Short: "Datashed CLI - versioned file dataset management",
	Long: `Datashed manages named datasets stored as local files, with optional
versioning so historical copies of a dataset coexist on disk.

Datasets are described in a YAML catalog file and addressed by name.

Examples:
  # List the datasets in a catalog
  datashed --catalog catalog.yaml list

  # Save a JSON value read from stdin
  echo '{"a": 1}' | datashed --catalog catalog.yaml save weather

  # Print the latest saved copy
  datashed --catalog catalog.yaml load weather`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initLogging(viper.GetString("log-level"))
	},
}

func init() {
	rootCmd.PersistentFlags().StringP("catalog", "c", "catalog.yaml", "path to the catalog config file")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level: debug|info|warn|error")

	// Flags are overridable through DATASHED_* environment variables
	// (DATASHED_CATALOG, DATASHED_LOG_LEVEL).
	viper.SetEnvPrefix("DATASHED")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	_ = viper.BindPFlag("catalog", rootCmd.PersistentFlags().Lookup("catalog"))
	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(existsCmd)
	rootCmd.AddCommand(versionsCmd)
}

// openCatalog builds the catalog from the configured config file.
func openCatalog() (*catalog.Catalog, error) {
	path := viper.GetString("catalog")
	if path == "" {
		return nil, fmt.Errorf("catalog config path is required")
	}

	cfg, err := catalog.LoadConfigFile(path)
	if err != nil {
		return nil, err
	}
	return catalog.FromConfig(cfg, catalog.WithLogger(logger))
}
