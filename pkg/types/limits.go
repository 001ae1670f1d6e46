package types

import "log/slog"

// Allocator accounts for the heap payload of each decoded constant. The
// decoder calls Alloc once per stored entry and Release exactly once for
// each successful Alloc, either when the ClassFile is closed or when a
// decode fails part way through.
type Allocator interface {
	// Alloc reserves size payload bytes for the entry decoded into slot.
	// A non-nil error aborts the decode with an AllocationFailure.
	Alloc(slot int, tag Tag, size int) error
	// Release returns the payload held by slot.
	Release(slot int, tag Tag)
}

const (
	// MaxConstantPoolCount is the largest count the u16 field can declare.
	MaxConstantPoolCount = 0xFFFF

	// DefaultMaxPayloadBytes bounds the payload bytes of a single class
	// file. Real class files are far below this.
	DefaultMaxPayloadBytes = 64 << 20
)

// Limits bounds the resources a single decode may claim.
type Limits struct {
	// MaxConstantPoolCount rejects pools whose declared count exceeds it.
	MaxConstantPoolCount int

	// MaxPayloadBytes caps the summed payload size of all constants.
	// Zero means unlimited.
	MaxPayloadBytes int
}

// DefaultLimits returns limits that accept every well-formed class file.
func DefaultLimits() Limits {
	return Limits{
		MaxConstantPoolCount: MaxConstantPoolCount,
		MaxPayloadBytes:      DefaultMaxPayloadBytes,
	}
}

// Options controls a single decode.
type Options struct {
	// Logger receives structured diagnostic events. Nil discards them.
	Logger *slog.Logger

	// StrictMagic fails the decode when the magic is not 0xCAFEBABE.
	// By default the magic is informational only.
	StrictMagic bool

	// Limits bounds pool size and payload bytes. Nil selects DefaultLimits.
	Limits *Limits

	// Allocator accounts for payloads. Nil selects a budgeted heap
	// allocator sized from Limits.
	Allocator Allocator
}
