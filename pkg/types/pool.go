package types

import (
	"fmt"
	"iter"
)

// ConstantPool is the decoded constant table of one class file.
//
// Slots are 0-based internally; the format's 1-based index i lives in slot
// i-1. The slot after a Long or Double is nil and cannot be addressed.
type ConstantPool struct {
	slots []Entry
}

// NewConstantPool takes ownership of slots. The caller must not retain or
// modify the slice afterwards.
func NewConstantPool(slots []Entry) *ConstantPool {
	return &ConstantPool{slots: slots}
}

// Len returns the logical length (declared constant_pool_count - 1).
func (p *ConstantPool) Len() int {
	if p == nil {
		return 0
	}
	return len(p.slots)
}

// Slot returns the entry stored in the 0-based slot i, or nil for an
// out-of-range or unusable slot.
func (p *ConstantPool) Slot(i int) Entry {
	if p == nil || i < 0 || i >= len(p.slots) {
		return nil
	}
	return p.slots[i]
}

// Entry returns the entry at the 1-based index.
func (p *ConstantPool) Entry(index uint16) (Entry, error) {
	return p.Lookup(index, -1)
}

// Lookup returns the entry at the 1-based index, attributing any error to
// the referring slot from (-1 for the header).
func (p *ConstantPool) Lookup(index uint16, from int) (Entry, error) {
	if index == 0 {
		return nil, InvalidConstantReference(index, from, "index 0 is reserved")
	}
	if int(index) > p.Len() {
		return nil, InvalidConstantReference(index, from,
			fmt.Sprintf("index out of range (pool has %d slots)", p.Len()))
	}
	e := p.slots[index-1]
	if e == nil {
		return nil, InvalidConstantReference(index, from, "index names the unusable slot after a Long or Double")
	}
	return e, nil
}

// Utf8At returns the text stored at the 1-based index, which must be a
// Utf8 entry.
func (p *ConstantPool) Utf8At(index uint16) (string, error) {
	e, err := p.Lookup(index, -1)
	if err != nil {
		return "", err
	}
	u, ok := e.(Utf8)
	if !ok {
		return "", InvalidConstantReference(index, -1, fmt.Sprintf("want Utf8, found %s", e.Tag()))
	}
	return u.Value, nil
}

// ClassAt returns the Class entry at the 1-based index.
func (p *ConstantPool) ClassAt(index uint16) (Class, error) {
	e, err := p.Lookup(index, -1)
	if err != nil {
		return Class{}, err
	}
	c, ok := e.(Class)
	if !ok {
		return Class{}, InvalidConstantReference(index, -1, fmt.Sprintf("want Class, found %s", e.Tag()))
	}
	return c, nil
}

// All yields every addressable entry with its 1-based index, skipping the
// unusable second slot of wide constants.
func (p *ConstantPool) All() iter.Seq2[uint16, Entry] {
	return func(yield func(uint16, Entry) bool) {
		if p == nil {
			return
		}
		for i, e := range p.slots {
			if e == nil {
				continue
			}
			if !yield(uint16(i+1), e) {
				return
			}
		}
	}
}

// Release hands every payload back to a, exactly once, and empties the
// pool. Calling Release again is a no-op.
func (p *ConstantPool) Release(a Allocator) {
	if p == nil || p.slots == nil {
		return
	}
	for i, e := range p.slots {
		if e == nil {
			continue
		}
		if a != nil {
			a.Release(i, e.Tag())
		}
		p.slots[i] = nil
	}
	p.slots = nil
}
