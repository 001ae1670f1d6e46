package format

import "errors"

var (
	// ErrTruncated indicates the buffer lacked the bytes required for a field.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrSignatureMismatch indicates the magic was not 0xCAFEBABE.
	ErrSignatureMismatch = errors.New("format: signature mismatch")
	// ErrWideOverflow indicates a Long or Double in the last pool slot,
	// whose unusable second slot would fall outside the pool.
	ErrWideOverflow = errors.New("format: wide constant overflows pool")
	// ErrEmptyPool indicates a constant_pool_count of zero.
	ErrEmptyPool = errors.New("format: constant_pool_count is zero")
)
