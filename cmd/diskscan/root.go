package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "diskscan",
	Short: "Scan a directory and classify temp, cache, and build-artifact usage",
	Long: `diskscan walks a directory tree, aggregates disk usage bottom-up, and
classifies temp, cache, and build-artifact paths worth reclaiming.

Examples:
  diskscan scan .
  diskscan scan ~/projects --max-depth 5 --workers 8`,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
