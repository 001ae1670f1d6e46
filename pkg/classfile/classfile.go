package classfile

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/joshuapare/classkit/internal/reader"
	"github.com/joshuapare/classkit/pkg/types"
)

// Re-exported for convenience.
type (
	ClassFile    = types.ClassFile
	ConstantPool = types.ConstantPool
	Entry        = types.Entry
	Options      = types.Options
	Limits       = types.Limits
	Error        = types.Error
)

func optsOrDefault(opts *Options) Options {
	if opts == nil {
		return Options{}
	}
	return *opts
}

// Decode decodes a class file held in memory. The result does not alias b.
func Decode(b []byte, opts *Options) (*ClassFile, error) {
	return reader.Decode(b, optsOrDefault(opts))
}

// Open decodes the class file at path.
func Open(path string, opts *Options) (*ClassFile, error) {
	return reader.Open(path, optsOrDefault(opts))
}

// ReadName returns the binary name of the class declared in the file at
// path, e.g. "com/example/Service".
func ReadName(path string) (string, error) {
	cf, err := Open(path, nil)
	if err != nil {
		return "", err
	}
	defer cf.Close()
	return cf.Name, nil
}

// Signature converts a binary class name to its "L<name>;" form.
func Signature(name string) string {
	return types.Signature(name)
}

// DecodeAll opens every path concurrently, running at most limit decodes
// at once (GOMAXPROCS when limit <= 0). Results are in path order. On the
// first failure the remaining decodes are cancelled and every class file
// already decoded is closed.
//
// opts.Allocator, when set, must be safe for concurrent use and must not
// key its accounting on slot numbers alone.
func DecodeAll(ctx context.Context, paths []string, opts *Options, limit int) ([]*ClassFile, error) {
	o := optsOrDefault(opts)
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	out := make([]*ClassFile, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			cf, err := reader.Open(path, o)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			out[i] = cf
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		for _, cf := range out {
			_ = cf.Close()
		}
		return nil, err
	}
	return out, nil
}
