package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "verity",
	Short: "Verity - data contract validation for YAML",
	Long: `Verity validates YAML data contracts and datasource declarations.

It parses contract documents into a located syntax tree, rejects malformed
files with precise line and column diagnostics, and validates cross-file
semantics:
  - Duplicate datasource declarations
  - Contract references to undefined datasources

Diagnostics are accumulated per run; a file with errors never blocks the
rest of the set from being validated.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
