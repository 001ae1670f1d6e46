// Package printer renders decoded class files as text, JSON or CBOR.
package printer

import (
	"errors"
	"fmt"
	"io"

	"github.com/joshuapare/classkit/pkg/types"
)

// Format specifies the output format for printing.
type Format string

const (
	// FormatText outputs a javap-style constant table.
	FormatText Format = "text"

	// FormatJSON outputs indented JSON.
	FormatJSON Format = "json"

	// FormatCBOR outputs canonical CBOR.
	FormatCBOR Format = "cbor"
)

// ErrClosed is returned when printing a class file whose pool was released.
var ErrClosed = errors.New("printer: class file is closed")

// ParseFormat validates a --format flag value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatJSON, FormatCBOR:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want text, json or cbor)", s)
	}
}

// Options controls printing behavior.
type Options struct {
	// Format specifies output format (text, json, cbor).
	// Default: FormatText
	Format Format

	// Resolve adds the referenced text as a comment on every reference
	// constant.
	// Default: true
	Resolve bool

	// MaxTextRunes truncates long Utf8 constants. Set to 0 for no limit.
	// Default: 0
	MaxTextRunes int
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{
		Format:  FormatText,
		Resolve: true,
	}
}

// Printer writes class file summaries and constant tables.
type Printer struct {
	opts   Options
	writer io.Writer
}

// New creates a new Printer writing to w.
func New(w io.Writer, opts Options) *Printer {
	return &Printer{writer: w, opts: opts}
}

// PrintPool prints the header and every addressable constant of cf.
func (p *Printer) PrintPool(cf *types.ClassFile) error {
	doc, err := p.document(cf, true)
	if err != nil {
		return err
	}
	return p.emit(doc)
}

// PrintInfo prints the header fields, access flags and pool size of cf.
func (p *Printer) PrintInfo(cf *types.ClassFile) error {
	doc, err := p.document(cf, false)
	if err != nil {
		return err
	}
	return p.emit(doc)
}

func (p *Printer) emit(doc document) error {
	switch p.opts.Format {
	case FormatJSON:
		return p.printJSON(doc)
	case FormatCBOR:
		return p.printCBOR(doc)
	case FormatText:
		return p.printText(doc)
	default:
		return p.printText(doc)
	}
}

func (p *Printer) document(cf *types.ClassFile, withConstants bool) (document, error) {
	pool := cf.Pool()
	if pool == nil {
		return document{}, ErrClosed
	}
	doc := document{
		Name:         cf.Name,
		Signature:    cf.Signature(),
		Magic:        cf.Magic,
		MinorVersion: cf.MinorVersion,
		MajorVersion: cf.MajorVersion,
		AccessFlags:  uint16(cf.AccessFlags),
		Flags:        cf.AccessFlags.String(),
		PoolCount:    cf.ConstantPoolCount,
		ThisClass:    cf.ThisClass,
	}
	if withConstants {
		for idx, e := range pool.All() {
			doc.Constants = append(doc.Constants, p.describe(pool, idx, e))
		}
	}
	return doc, nil
}
