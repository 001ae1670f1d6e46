// Package reader provides the concrete class-file decoder. The exported
// entry points are used by the public wrapper (pkg/classfile) and the CLI
// to obtain a *types.ClassFile without exposing the parsing machinery
// directly.
package reader

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/joshuapare/classkit/internal/alloc"
	"github.com/joshuapare/classkit/internal/format"
	"github.com/joshuapare/classkit/internal/mmfile"
	"github.com/joshuapare/classkit/pkg/types"
)

// Open maps the class file at path, decodes it and unmaps it again. The
// returned ClassFile never aliases the mapping.
func Open(path string, opts types.Options) (*types.ClassFile, error) {
	data, unmap, err := mmfile.Map(path)
	if err != nil {
		return nil, wrapIOErr(fmt.Errorf("open class file %s: %w", path, err))
	}
	cf, err := Decode(data, opts)
	if unmap != nil {
		if uerr := unmap(); uerr != nil && err == nil {
			_ = cf.Close()
			return nil, wrapIOErr(fmt.Errorf("unmap class file %s: %w", path, uerr))
		}
	}
	return cf, err
}

// Decode decodes the class file held in b. On success the caller owns the
// result and should Close it; on failure every payload decoded so far has
// already been released.
func Decode(b []byte, opts types.Options) (*types.ClassFile, error) {
	d := newDecoder(opts)
	cf, err := d.decode(b)
	if err != nil {
		d.log.Debug("decode failed", "error", err, "size", len(b))
		return nil, err
	}
	return cf, nil
}

type decoder struct {
	log    *slog.Logger
	debug  bool
	strict bool
	limits types.Limits
	alloc  types.Allocator
}

func newDecoder(opts types.Options) *decoder {
	limits := types.DefaultLimits()
	if opts.Limits != nil {
		limits = *opts.Limits
	}
	if limits.MaxConstantPoolCount <= 0 || limits.MaxConstantPoolCount > types.MaxConstantPoolCount {
		limits.MaxConstantPoolCount = types.MaxConstantPoolCount
	}

	a := opts.Allocator
	if a == nil {
		if limits.MaxPayloadBytes > 0 {
			a = alloc.NewBudget(limits.MaxPayloadBytes)
		} else {
			a = alloc.Heap{}
		}
	}

	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &decoder{
		log:    log,
		debug:  log.Enabled(context.Background(), slog.LevelDebug),
		strict: opts.StrictMagic,
		limits: limits,
		alloc:  a,
	}
}

func (d *decoder) decode(b []byte) (*types.ClassFile, error) {
	c := format.NewCursor(b)

	h, err := format.ReadHeader(c)
	if err != nil {
		return nil, err
	}
	if h.Magic != format.Magic {
		if d.strict {
			return nil, types.InvalidFormat(fmt.Sprintf("bad magic 0x%08X", h.Magic),
				format.MagicOffset, format.ErrSignatureMismatch)
		}
		d.log.Warn("unexpected magic", "magic", fmt.Sprintf("0x%08X", h.Magic))
	}
	if d.debug {
		d.log.Debug("header decoded",
			"minor", h.MinorVersion,
			"major", h.MajorVersion,
			"constant_pool_count", h.ConstantPoolCount)
	}

	pool, err := d.assemble(c, h.ConstantPoolCount)
	if err != nil {
		return nil, err
	}
	owned := false
	defer func() {
		if !owned {
			pool.Release(d.alloc)
		}
	}()

	flags, err := c.ReadU16("access_flags")
	if err != nil {
		return nil, err
	}
	thisClass, err := c.ReadU16("this_class")
	if err != nil {
		return nil, err
	}
	name, err := resolveClassName(pool, thisClass)
	if err != nil {
		return nil, err
	}

	if d.debug {
		d.log.Debug("class resolved", "name", name, "this_class", thisClass)
	}
	owned = true
	return types.NewClassFile(h, types.AccessFlags(flags), thisClass, name, pool, d.alloc), nil
}
