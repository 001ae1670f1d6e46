// Package mutf8 converts the modified UTF-8 used by class-file Utf8
// constants into standard UTF-8.
//
// Modified UTF-8 differs from UTF-8 in two ways: U+0000 is written as the
// two-byte sequence C0 80, and supplementary characters are written as a
// UTF-16 surrogate pair with each half encoded as a three-byte sequence.
// Malformed input decodes to U+FFFD rather than failing.
package mutf8

import (
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

const (
	surrHighStart = 0xD800
	surrHighEnd   = 0xDBFF
	surrLowStart  = 0xDC00
	surrLowEnd    = 0xDFFF
	surrBase      = 0x10000
	surrMask      = 0x3FF
)

// Encoding is the modified UTF-8 encoding. Only decoding is provided; the
// encoder passes UTF-8 through unchanged.
var Encoding encoding.Encoding = mutf8Encoding{}

type mutf8Encoding struct{}

func (mutf8Encoding) NewDecoder() *encoding.Decoder {
	return &encoding.Decoder{Transformer: decoder{}}
}

func (mutf8Encoding) NewEncoder() *encoding.Encoder {
	return &encoding.Encoder{Transformer: transform.Nop}
}

// DecodeString converts modified UTF-8 text to UTF-8. ASCII-only input is
// returned without copying.
func DecodeString(s string) string {
	if isPlainASCII(s) {
		return s
	}
	out, _, err := transform.String(decoder{}, s)
	if err != nil {
		// The decoder never fails on complete input; keep the raw text.
		return s
	}
	return out
}

func isPlainASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c == 0 || c >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

type decoder struct{ transform.NopResetter }

// Transform implements transform.Transformer.
func (decoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		r, size := decodeRune(src[nSrc:], atEOF)
		if size == 0 {
			return nDst, nSrc, transform.ErrShortSrc
		}
		if nDst+utf8.RuneLen(r) > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += utf8.EncodeRune(dst[nDst:], r)
		nSrc += size
	}
	return nDst, nSrc, nil
}

// decodeRune decodes one modified UTF-8 character from the start of b. A
// size of 0 means b ends inside a sequence and more input may follow; at
// EOF an incomplete sequence decodes to U+FFFD instead.
func decodeRune(b []byte, atEOF bool) (rune, int) {
	incomplete := func(n int) (rune, int) {
		if atEOF {
			return utf8.RuneError, n
		}
		return 0, 0
	}
	c := b[0]
	switch {
	case c < 0x80:
		return rune(c), 1
	case c&0xE0 == 0xC0:
		if len(b) < 2 {
			return incomplete(1)
		}
		if !isCont(b[1]) {
			return utf8.RuneError, 1
		}
		return rune(c&0x1F)<<6 | rune(b[1]&0x3F), 2
	case c&0xF0 == 0xE0:
		r, ok, short := decode3(b)
		if short {
			return incomplete(len(b))
		}
		if !ok {
			return utf8.RuneError, 1
		}
		switch {
		case r >= surrHighStart && r <= surrHighEnd:
			lo, ok, short := decode3(b[3:])
			if short {
				return incomplete(3)
			}
			if !ok || lo < surrLowStart || lo > surrLowEnd {
				return utf8.RuneError, 3
			}
			return surrBase + (r&surrMask)<<10 | lo&surrMask, 6
		case r >= surrLowStart && r <= surrLowEnd:
			return utf8.RuneError, 3
		}
		return r, 3
	default:
		return utf8.RuneError, 1
	}
}

// decode3 decodes a three-byte sequence. short reports that b ends before
// the sequence does.
func decode3(b []byte) (r rune, ok, short bool) {
	if len(b) == 0 {
		return 0, false, true
	}
	if b[0]&0xF0 != 0xE0 {
		return 0, false, false
	}
	if len(b) < 3 {
		if len(b) == 2 && !isCont(b[1]) {
			return 0, false, false
		}
		return 0, false, true
	}
	if !isCont(b[1]) || !isCont(b[2]) {
		return 0, false, false
	}
	return rune(b[0]&0x0F)<<12 | rune(b[1]&0x3F)<<6 | rune(b[2]&0x3F), true, false
}

func isCont(c byte) bool { return c&0xC0 == 0x80 }
