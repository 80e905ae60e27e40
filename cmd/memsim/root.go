package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/memsim/internal/logger"
	"github.com/joshuapare/memsim/internal/pool"
	"github.com/joshuapare/memsim/printer"
)

var (
	// Global flags
	verbose  bool
	quiet    bool
	jsonOut  bool
	humanize bool
	backing  string

	// Resolved from --backing in PersistentPreRunE
	poolBacking pool.Backing
)

var rootCmd = &cobra.Command{
	Use:   "memsim",
	Short: "Simulate first/best/worst/next-fit allocation over a fixed pool",
	Long: `memsim is a teaching tool for dynamic-memory allocation. It manages a
single fixed-size pool with one of four placement strategies and reports how
each strategy fragments the pool.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output and debug logging")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&humanize, "humanize", false, "Group digits in byte counts")
	rootCmd.PersistentFlags().
		StringVar(&backing, "backing", "", "Pool backing: heap or mmap (default $MEMSIM_POOL or heap)")
}

// setup applies the global flags to the logger and pool backing.
func setup() error {
	switch {
	case verbose:
		logger.Init(logger.Options{Enabled: true, Level: slog.LevelDebug})
	case !logger.InitFromEnv():
		logger.Init(logger.Options{})
	}

	b, err := pool.ParseBacking(backing)
	if err != nil {
		return err
	}
	poolBacking = b
	return nil
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

// Helper functions for output

// printOptions builds printer options from the global flags.
func printOptions() printer.Options {
	opts := printer.DefaultOptions()
	opts.Humanize = humanize
	if jsonOut {
		opts.Format = printer.FormatJSON
	}
	return opts
}

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
