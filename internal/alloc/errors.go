package alloc

import "errors"

var (
	// ErrNoSpace indicates the payload budget is exhausted.
	ErrNoSpace = errors.New("alloc: payload budget exhausted")

	// ErrBadSize indicates a negative payload size.
	ErrBadSize = errors.New("alloc: negative payload size")
)
