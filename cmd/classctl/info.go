package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/classkit/internal/printer"
	"github.com/joshuapare/classkit/pkg/classfile"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <class-file>",
		Short: "Report class file header metadata",
		Long: `The info command decodes a class file and displays its magic, version,
access flags, constant pool size and declared class name.

Example:
  classctl info Service.class
  classctl info Service.class --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
	return cmd
}

func runInfo(args []string) error {
	path := args[0]

	printVerbose("Opening class file: %s\n", path)

	cf, err := classfile.Open(path, decodeOptions())
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	defer cf.Close()

	opts := printer.DefaultOptions()
	if jsonOut {
		opts.Format = printer.FormatJSON
	}
	if quiet {
		return nil
	}

	if !jsonOut {
		printInfo("File: %s\n", path)
		if stat, err := os.Stat(path); err == nil {
			printInfo("Size: %d bytes\n", stat.Size())
		}
	}
	return printer.New(os.Stdout, opts).PrintInfo(cf)
}
