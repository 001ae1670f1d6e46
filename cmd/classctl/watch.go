package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/joshuapare/classkit/internal/config"
	"github.com/joshuapare/classkit/internal/watch"
	"github.com/joshuapare/classkit/pkg/classfile"
	"github.com/joshuapare/classkit/pkg/registry"
)

var watchConfig string

func init() {
	rootCmd.AddCommand(newWatchCmd())
}

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch class files and report redefinitions",
		Long: `The watch command polls the class files named in classkit.toml and,
whenever one changes, decodes it and hands the new bytes to the redefinition
hook of the class registered under its signature. Every class file present at
startup is registered, as a runtime would on class preparation; the hook logs
each redefinition.

Example:
  classctl watch
  classctl watch --config ./agent/classkit.toml --log-level debug`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			err := runWatch(ctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&watchConfig, "config", "c", "", "Path to classkit.toml (default: search upwards from the working directory)")
	return cmd
}

func loadWatchConfig() (*config.Config, error) {
	if watchConfig != "" {
		return config.LoadFile(watchConfig)
	}
	cfg, err := config.FindAndLoad(".")
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("no %s found; pass --config", config.FileName)
	}
	return cfg, nil
}

// loggingRedefiner stands in for a runtime's redefinition call.
type loggingRedefiner struct{}

func (loggingRedefiner) Redefine(_ context.Context, path string, class []byte) error {
	logger.Info("redefine", "class_file", path, "bytes", len(class))
	printInfo("redefined %s (%d bytes)\n", path, len(class))
	return nil
}

func runWatch(ctx context.Context) error {
	cfg, err := loadWatchConfig()
	if err != nil {
		return err
	}

	// Flags win over the config file; otherwise the file decides.
	if logLevel == "" && !verbose {
		l, closer, err := newLogger(cfg.Log.Level, cfg.Log.Format, cfg.Log.File)
		if err != nil {
			return err
		}
		_ = closeLogger()
		logger, closeLogger = l, closer
	}

	opts := cfg.Options()
	opts.Logger = logger
	opts.StrictMagic = opts.StrictMagic || strict

	classes := registry.New[string]()
	w := watch.New(watch.Config{
		Paths:    cfg.WatchPaths(),
		Interval: cfg.Watch.Interval.Duration,
		Decode:   opts,
		Logger:   logger,
	}, classes, watch.Redefiner[string](loggingRedefiner{}))

	if err := w.Prime(); err != nil {
		return err
	}
	for _, path := range w.Files() {
		cf, err := classfile.Open(path, &opts)
		if err != nil {
			logger.Warn("cannot register class file", "path", path, "error", err)
			continue
		}
		if classes.Put(cf.Signature(), path) {
			logger.Warn("duplicate class signature", "signature", cf.Signature(), "path", path)
		}
		_ = cf.Close()
	}
	printInfo("Watching %d class file(s), %d registered\n", len(w.Files()), classes.Len())

	return w.Run(ctx)
}
