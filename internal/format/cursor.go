package format

import (
	"fmt"

	"github.com/joshuapare/classkit/internal/buf"
	"github.com/joshuapare/classkit/pkg/types"
)

// Cursor advances through a borrowed buffer, decoding big-endian fields.
// Every read is bounds-checked; a read that would pass the end of the
// buffer fails with a TruncatedInput error and leaves the position
// unchanged, so Pos() <= len(buffer) always holds.
type Cursor struct {
	b   []byte
	pos int
}

// NewCursor returns a cursor positioned at the start of b.
func NewCursor(b []byte) *Cursor {
	return &Cursor{b: b}
}

// Pos returns the current offset.
func (c *Cursor) Pos() int { return c.pos }

// Len returns the length of the underlying buffer.
func (c *Cursor) Len() int { return len(c.b) }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.b) - c.pos }

func (c *Cursor) take(what string, n int) ([]byte, error) {
	s, ok := buf.Slice(c.b, c.pos, n)
	if !ok {
		return nil, types.TruncatedInput(what, c.pos,
			fmt.Errorf("need %d bytes, have %d: %w", n, c.Remaining(), ErrTruncated))
	}
	c.pos += n
	return s, nil
}

// ReadU8 reads one byte. what names the field for error messages.
func (c *Cursor) ReadU8(what string) (uint8, error) {
	s, err := c.take(what, U1Size)
	if err != nil {
		return 0, err
	}
	return s[0], nil
}

// ReadU16 reads a big-endian uint16.
func (c *Cursor) ReadU16(what string) (uint16, error) {
	s, err := c.take(what, U2Size)
	if err != nil {
		return 0, err
	}
	return buf.U16BE(s), nil
}

// ReadU32 reads a big-endian uint32.
func (c *Cursor) ReadU32(what string) (uint32, error) {
	s, err := c.take(what, U4Size)
	if err != nil {
		return 0, err
	}
	return buf.U32BE(s), nil
}

// ReadU64 reads a big-endian uint64.
func (c *Cursor) ReadU64(what string) (uint64, error) {
	s, err := c.take(what, U8Size)
	if err != nil {
		return 0, err
	}
	return buf.U64BE(s), nil
}

// ReadBytes returns the next n bytes. The result aliases the buffer.
func (c *Cursor) ReadBytes(what string, n int) ([]byte, error) {
	return c.take(what, n)
}
