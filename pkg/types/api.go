package types

import "fmt"

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindTruncated        ErrKind = iota // a read would run past the end of the buffer
	ErrKindUnknownTag                      // constant pool tag outside the known set
	ErrKindInvalidReference                // pool index out of range or of the wrong variant
	ErrKindAllocation                      // pool or payload allocation refused
	ErrKindFormat                          // structurally invalid header or pool layout
	ErrKindIO                              // the file could not be opened or mapped
)

// String returns the taxonomy name of the kind.
func (k ErrKind) String() string {
	switch k {
	case ErrKindTruncated:
		return "TruncatedInput"
	case ErrKindUnknownTag:
		return "UnknownConstantTag"
	case ErrKindInvalidReference:
		return "InvalidConstantReference"
	case ErrKindAllocation:
		return "AllocationFailure"
	case ErrKindFormat:
		return "InvalidFormat"
	case ErrKindIO:
		return "IO"
	default:
		return fmt.Sprintf("ErrKind(%d)", int(k))
	}
}

// Error is a typed error with an optional underlying cause.
//
// Offset is the byte offset in the input where the failing read started, or
// -1. Slot is the 0-based logical constant pool slot being decoded or
// holding the bad reference, or -1 when the failure is not tied to a slot
// (for example the this_class field of the header).
type Error struct {
	Kind   ErrKind
	Msg    string
	Offset int
	Tag    uint8
	Slot   int
	Index  uint16
	Err    error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so callers can write
// errors.Is(err, types.ErrTruncated) regardless of the detail fields.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels for errors.Is.
var (
	// ErrTruncated indicates the buffer ended before a field was complete.
	ErrTruncated = &Error{Kind: ErrKindTruncated, Msg: "truncated input", Offset: -1, Slot: -1}
	// ErrUnknownTag indicates a constant pool tag outside the known set.
	ErrUnknownTag = &Error{Kind: ErrKindUnknownTag, Msg: "unknown constant tag", Offset: -1, Slot: -1}
	// ErrInvalidReference indicates a bad constant pool index.
	ErrInvalidReference = &Error{Kind: ErrKindInvalidReference, Msg: "invalid constant reference", Offset: -1, Slot: -1}
	// ErrAllocation indicates the pool or a payload could not be allocated.
	ErrAllocation = &Error{Kind: ErrKindAllocation, Msg: "allocation failure", Offset: -1, Slot: -1}
	// ErrFormat indicates a structurally invalid class file.
	ErrFormat = &Error{Kind: ErrKindFormat, Msg: "invalid class file", Offset: -1, Slot: -1}
	// ErrIO indicates the class file could not be read.
	ErrIO = &Error{Kind: ErrKindIO, Msg: "class file unreadable", Offset: -1, Slot: -1}
)

// TruncatedInput reports a read of the field named what at offset that
// would exceed the buffer.
func TruncatedInput(what string, offset int, cause error) *Error {
	return &Error{
		Kind:   ErrKindTruncated,
		Msg:    fmt.Sprintf("truncated input reading %s at offset %d", what, offset),
		Offset: offset,
		Slot:   -1,
		Err:    cause,
	}
}

// UnknownConstantTag reports an unrecognised tag byte at the given slot.
func UnknownConstantTag(tag uint8, slot, offset int) *Error {
	return &Error{
		Kind:   ErrKindUnknownTag,
		Msg:    fmt.Sprintf("unknown constant tag %d at slot %d (#%d)", tag, slot, slot+1),
		Offset: offset,
		Tag:    tag,
		Slot:   slot,
	}
}

// InvalidConstantReference reports a bad 1-based pool index found while
// resolving the entry at slot (or the header when slot is -1).
func InvalidConstantReference(index uint16, slot int, reason string) *Error {
	where := "header"
	if slot >= 0 {
		where = fmt.Sprintf("slot %d (#%d)", slot, slot+1)
	}
	return &Error{
		Kind:   ErrKindInvalidReference,
		Msg:    fmt.Sprintf("invalid constant reference #%d from %s: %s", index, where, reason),
		Offset: -1,
		Slot:   slot,
		Index:  index,
	}
}

// AllocationFailure reports that the allocator refused the payload of slot
// (or the pool itself when slot is -1).
func AllocationFailure(slot int, cause error) *Error {
	msg := "constant pool allocation failed"
	if slot >= 0 {
		msg = fmt.Sprintf("payload allocation failed at slot %d (#%d)", slot, slot+1)
	}
	return &Error{Kind: ErrKindAllocation, Msg: msg, Offset: -1, Slot: slot, Err: cause}
}

// InvalidFormat reports a structural problem that is not a bad reference.
func InvalidFormat(msg string, offset int, cause error) *Error {
	return &Error{Kind: ErrKindFormat, Msg: msg, Offset: offset, Slot: -1, Err: cause}
}
