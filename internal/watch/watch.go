// Package watch polls compiled class files and pushes changed bytes to a
// running process through a Redefiner.
//
// Each scan stats the configured files, decodes the ones whose size or
// modification time moved, derives the class signature from the decoded
// name and looks up the runtime handle in a registry. Classes the runtime
// has not loaded yet, and files that fail to decode, are logged and
// skipped; they are retried on the next change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/joshuapare/classkit/internal/reader"
	"github.com/joshuapare/classkit/pkg/registry"
	"github.com/joshuapare/classkit/pkg/types"
)

// Redefiner replaces the definition of a loaded class with new bytes.
type Redefiner[H any] interface {
	Redefine(ctx context.Context, handle H, class []byte) error
}

// RedefinerFunc adapts a function to Redefiner.
type RedefinerFunc[H any] func(ctx context.Context, handle H, class []byte) error

func (f RedefinerFunc[H]) Redefine(ctx context.Context, handle H, class []byte) error {
	return f(ctx, handle, class)
}

// Outcome classifies what a scan did with one changed file.
type Outcome int

const (
	NotLoaded     Outcome = iota // signature not in the registry
	Redefined                    // bytes pushed to the runtime
	DecodeError                  // the file could not be read or decoded
	RedefineError                // the Redefiner refused the bytes
)

func (o Outcome) String() string {
	switch o {
	case NotLoaded:
		return "not-loaded"
	case Redefined:
		return "redefined"
	case DecodeError:
		return "decode-error"
	case RedefineError:
		return "redefine-error"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Event reports one changed file.
type Event struct {
	Path      string
	Name      string
	Signature string
	Outcome   Outcome
	Err       error
}

// Config controls a Watcher.
type Config struct {
	// Paths are class files or directories searched recursively for
	// *.class files.
	Paths []string

	// Interval between scans in Run. Defaults to 500ms.
	Interval time.Duration

	// Decode is passed to the decoder for every changed file. Its
	// Allocator must be nil or safe for concurrent decodes.
	Decode types.Options

	// Concurrency bounds parallel decodes within one scan.
	// Defaults to GOMAXPROCS.
	Concurrency int

	Logger *slog.Logger
}

type stamp struct {
	size    int64
	modTime time.Time
}

func (s stamp) same(o stamp) bool {
	return s.size == o.size && s.modTime.Equal(o.modTime)
}

// Watcher tracks file stamps between scans. Scan and Run must not be
// called concurrently.
type Watcher[H any] struct {
	cfg      Config
	log      *slog.Logger
	classes  *registry.Registry[H]
	redefine Redefiner[H]
	seen     map[string]stamp
	primed   bool
}

// New returns a watcher that resolves handles in classes and hands changed
// bytes to r.
func New[H any](cfg Config, classes *registry.Registry[H], r Redefiner[H]) *Watcher[H] {
	if cfg.Interval <= 0 {
		cfg.Interval = 500 * time.Millisecond
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = runtime.GOMAXPROCS(0)
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if cfg.Decode.Logger == nil {
		cfg.Decode.Logger = log
	}
	return &Watcher[H]{
		cfg:      cfg,
		log:      log,
		classes:  classes,
		redefine: r,
		seen:     make(map[string]stamp),
	}
}

// Prime records the current stamps without redefining anything, so the
// first Scan only reports files changed after Prime.
func (w *Watcher[H]) Prime() error {
	files, err := w.stat()
	if err != nil {
		return err
	}
	for path, st := range files {
		w.seen[path] = st
	}
	w.primed = true
	w.log.Info("watching class files", "files", len(files))
	return nil
}

// Files returns the class files recorded by the last Prime or Scan, in
// path order.
func (w *Watcher[H]) Files() []string {
	files := make([]string, 0, len(w.seen))
	for path := range w.seen {
		files = append(files, path)
	}
	slices.Sort(files)
	return files
}

// Run primes the watcher, unless Prime was already called, and scans
// every Interval until ctx is done.
func (w *Watcher[H]) Run(ctx context.Context) error {
	if !w.primed {
		if err := w.Prime(); err != nil {
			return err
		}
	}
	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := w.Scan(ctx); err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				w.log.Warn("scan failed", "error", err)
			}
		}
	}
}

// Scan checks every watched file once and processes the ones that changed
// since the previous scan. Events are returned in path order.
func (w *Watcher[H]) Scan(ctx context.Context) ([]Event, error) {
	files, err := w.stat()
	if err != nil {
		return nil, err
	}

	var changed []string
	for path, st := range files {
		if prev, ok := w.seen[path]; ok && prev.same(st) {
			continue
		}
		changed = append(changed, path)
	}
	for path := range w.seen {
		if _, ok := files[path]; !ok {
			delete(w.seen, path)
		}
	}
	slices.Sort(changed)

	changes, err := w.decodeAll(ctx, changed)
	if err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(changes))
	for _, ch := range changes {
		// Stamps are taken before reading, so a file rewritten while it
		// was being read is picked up again on the next scan.
		w.seen[ch.Path] = files[ch.Path]
		if ch.Outcome == DecodeError {
			w.log.Warn("skipping undecodable class file", "path", ch.Path, "error", ch.Err)
		} else {
			w.apply(ctx, &ch)
		}
		events = append(events, ch.Event)
	}
	return events, nil
}

type change struct {
	Event
	data []byte
}

// decodeAll reads and decodes paths in parallel. Per-file failures are
// recorded in the result; only cancellation aborts the scan.
func (w *Watcher[H]) decodeAll(ctx context.Context, paths []string) ([]change, error) {
	changes := make([]change, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.cfg.Concurrency)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			ch := &changes[i]
			ch.Path = path
			data, err := os.ReadFile(path)
			if err != nil {
				ch.Outcome, ch.Err = DecodeError, err
				return nil
			}
			cf, err := reader.Decode(data, w.cfg.Decode)
			if err != nil {
				ch.Outcome, ch.Err = DecodeError, err
				return nil
			}
			ch.Name = cf.Name
			ch.Signature = cf.Signature()
			ch.data = data
			return cf.Close()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return changes, nil
}

func (w *Watcher[H]) apply(ctx context.Context, ch *change) {
	handle, ok := w.classes.Get(ch.Signature)
	if !ok {
		ch.Outcome = NotLoaded
		w.log.Info("class not loaded, skipping", "path", ch.Path, "signature", ch.Signature)
		return
	}

	w.log.Info("redefining class", "signature", ch.Signature, "bytes", len(ch.data))
	if err := w.redefine.Redefine(ctx, handle, ch.data); err != nil {
		ch.Outcome, ch.Err = RedefineError, err
		w.log.Error("failed to redefine class", "signature", ch.Signature, "error", err)
		return
	}
	ch.Outcome = Redefined
	w.log.Info("class redefined", "signature", ch.Signature)
}

// stat expands the watched paths and stats every class file found.
// A missing watched path is logged and skipped.
func (w *Watcher[H]) stat() (map[string]stamp, error) {
	files := make(map[string]stamp)
	add := func(path string, info fs.FileInfo) {
		files[path] = stamp{size: info.Size(), modTime: info.ModTime()}
	}

	for _, root := range w.cfg.Paths {
		info, err := os.Stat(root)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				w.log.Debug("watched path missing", "path", root)
				continue
			}
			return nil, fmt.Errorf("stat %s: %w", root, err)
		}
		if !info.IsDir() {
			add(root, info)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(d.Name(), ".class") {
				return nil
			}
			fi, err := d.Info()
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					return nil
				}
				return err
			}
			add(path, fi)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}
	return files, nil
}
