// Package buf contains helpers for bounds-checked, big-endian decoding
// routines. Class files store every multi-byte quantity high byte first.
package buf

import "encoding/binary"

// U16BE reads a big-endian uint16 from b. Returns 0 when b is too short.
func U16BE(b []byte) uint16 {
	if len(b) < 2 {
		return 0
	}
	return binary.BigEndian.Uint16(b)
}

// U32BE reads a big-endian uint32 from b. Returns 0 when b is too short.
func U32BE(b []byte) uint32 {
	if len(b) < 4 {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}

// U64BE reads a big-endian uint64 from b. Returns 0 when b is too short.
func U64BE(b []byte) uint64 {
	if len(b) < 8 {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}

// I32BE reads a big-endian two's-complement int32 from b.
func I32BE(b []byte) int32 {
	return int32(U32BE(b))
}

// I64BE reads a big-endian two's-complement int64 from b.
func I64BE(b []byte) int64 {
	return int64(U64BE(b))
}
