// Command wavelet builds, inspects and queries succinct sequence
// structures from the command line.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wavelet",
	Short: "Succinct rank/select structures over integer sequences",
	Long:  "Build, inspect and query wavelet structures: rank, select, quantiles, 2-D range search and more.",
}

func main() {
	rootCmd.AddCommand(familiesCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(queryCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
