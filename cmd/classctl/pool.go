package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/classkit/internal/printer"
	"github.com/joshuapare/classkit/pkg/classfile"
)

var (
	poolFormat    string
	poolNoResolve bool
	poolMaxText   int
)

func init() {
	rootCmd.AddCommand(newPoolCmd())
}

func newPoolCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pool <class-file>",
		Short: "Print the constant pool of a class file",
		Long: `The pool command prints every addressable constant of a class file with
the text its references resolve to.

Example:
  classctl pool Service.class
  classctl pool Service.class --format json
  classctl pool Service.class --format cbor > pool.cbor`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPool(args)
		},
	}
	cmd.Flags().StringVarP(&poolFormat, "format", "f", "text", "Output format: text, json or cbor")
	cmd.Flags().BoolVar(&poolNoResolve, "no-resolve", false, "Do not annotate references with the text they name")
	cmd.Flags().IntVar(&poolMaxText, "max-text", 0, "Truncate Utf8 constants to this many runes (0 = no limit)")
	return cmd
}

func runPool(args []string) error {
	path := args[0]

	format, err := printer.ParseFormat(poolFormat)
	if err != nil {
		return err
	}
	if jsonOut {
		format = printer.FormatJSON
	}

	printVerbose("Opening class file: %s\n", path)

	cf, err := classfile.Open(path, decodeOptions())
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	defer cf.Close()

	if quiet {
		return nil
	}
	opts := printer.Options{Format: format, Resolve: !poolNoResolve, MaxTextRunes: poolMaxText}
	return printer.New(os.Stdout, opts).PrintPool(cf)
}
