// Command sifetl loads files into a DataFrame and prints them as a table
package main

import (
	"os"

	"github.com/hpetrov29/sifetl/logging"
	"github.com/spf13/cobra"
)

func main() {
	logger := logging.New(os.Stderr, logging.InfoLevel)
	rootCmd := &cobra.Command{
		Use:   "sifetl",
		Short: "Load csv, json and parquet files into a DataFrame",
		Long: `sifetl resolves a file or directory into a set of files sharing one extension,
and loads them with a local engine session configured from a JSON document.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(newShowCommand(logger))
	if err := rootCmd.Execute(); err != nil {
		logger.Error("sifetl failed", "error", err)
		os.Exit(1)
	}
}
