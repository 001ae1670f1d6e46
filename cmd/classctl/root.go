package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/classkit/pkg/types"
)

var (
	// Global flags
	verbose   bool
	quiet     bool
	jsonOut   bool
	strict    bool
	logLevel  string
	logFormat string
	logFile   string

	// logger is configured by the root command before any subcommand runs.
	logger      = slog.New(slog.DiscardHandler)
	closeLogger = func() error { return nil }
)

var rootCmd = &cobra.Command{
	Use:   "classctl",
	Short: "Inspect compiled class files and push changes into running processes",
	Long: `classctl decodes the header and constant pool of compiled class files.
It can print the declared class name, header metadata and the full constant
table, and can watch class files for changes and hand the new bytes to a
redefinition hook.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeLogger()
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output and debug logging")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "Reject class files whose magic is not 0xCAFEBABE")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default warn)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format: text or json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file instead of stderr")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

func setupLogging() error {
	level := logLevel
	switch {
	case level != "":
	case verbose:
		level = "debug"
	default:
		level = "warn"
	}
	l, closer, err := newLogger(level, logFormat, logFile)
	if err != nil {
		return err
	}
	logger, closeLogger = l, closer
	return nil
}

// decodeOptions builds decoder options from the global flags.
func decodeOptions() *types.Options {
	return &types.Options{Logger: logger, StrictMagic: strict}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
