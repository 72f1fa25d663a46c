// Package main provides the CLI entry point for studentperf.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath   string
	logLevel     string
	cacheBackend string
	cachePath    string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "studentperf",
		Short: "Analyze student marks from CSV",
		Long: `studentperf parses a CSV of student marks (Name followed by one column
per subject), computes totals, averages, grades and pass/fail status, and
renders the results as text, JSON, CSV or an xlsx report with charts.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (default: $SPA_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&cacheBackend, "cache-backend", "", "Cache backend: file, redis, memory")
	rootCmd.PersistentFlags().StringVar(&cachePath, "cache-path", "", "Cache file path (file backend)")

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newAddCmd(),
		newExportCmd(),
		newReportCmd(),
		newCacheCmd(),
		newServeCmd(),
	)
	return rootCmd
}
