package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/classkit/pkg/classfile"
)

var nameJobs int

func init() {
	rootCmd.AddCommand(newNameCmd())
}

func newNameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "name <class-file>...",
		Short: "Print the declared class name and signature of class files",
		Long: `The name command decodes each class file far enough to resolve the
name of the class it declares, and prints it with the signature used to look
the class up in a running process.

Example:
  classctl name build/com/example/Service.class
  classctl name build/**/*.class --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runName(cmd.Context(), args)
		},
	}
	cmd.Flags().IntVarP(&nameJobs, "jobs", "j", 0, "Maximum concurrent decodes (default GOMAXPROCS)")
	return cmd
}

type nameResult struct {
	Path      string `json:"path"`
	Name      string `json:"name"`
	Signature string `json:"signature"`
}

func runName(ctx context.Context, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	printVerbose("Decoding %d class file(s)\n", len(args))

	files, err := classfile.DecodeAll(ctx, args, decodeOptions(), nameJobs)
	if err != nil {
		return fmt.Errorf("failed to decode: %w", err)
	}

	results := make([]nameResult, len(files))
	for i, cf := range files {
		results[i] = nameResult{Path: args[i], Name: cf.Name, Signature: cf.Signature()}
		if err := cf.Close(); err != nil {
			return err
		}
	}

	if jsonOut {
		return printJSON(results)
	}
	for _, r := range results {
		if len(results) > 1 {
			printInfo("%s: ", r.Path)
		}
		printInfo("%s %s\n", r.Name, r.Signature)
	}
	return nil
}
