package alloc

import (
	"fmt"

	"github.com/joshuapare/classkit/pkg/types"
)

// Heap accepts every allocation.
type Heap struct{}

var _ types.Allocator = Heap{}

func (Heap) Alloc(_ int, _ types.Tag, size int) error {
	if size < 0 {
		return ErrBadSize
	}
	return nil
}

func (Heap) Release(int, types.Tag) {}

// Budget limits the summed payload bytes held at once.
type Budget struct {
	limit int
	used  int
	sizes map[int]int // slot -> reserved size
}

var _ types.Allocator = (*Budget)(nil)

// NewBudget returns an allocator that refuses payloads beyond limit bytes.
// A limit <= 0 disables the check.
func NewBudget(limit int) *Budget {
	return &Budget{limit: limit, sizes: make(map[int]int)}
}

// Alloc reserves size bytes for slot.
func (b *Budget) Alloc(slot int, tag types.Tag, size int) error {
	if size < 0 {
		return ErrBadSize
	}
	if b.limit > 0 && b.used+size > b.limit {
		return fmt.Errorf("%s payload of %d bytes with %d of %d in use: %w",
			tag, size, b.used, b.limit, ErrNoSpace)
	}
	b.used += size
	b.sizes[slot] = size
	return nil
}

// Release returns the bytes reserved for slot.
func (b *Budget) Release(slot int, _ types.Tag) {
	size, ok := b.sizes[slot]
	if !ok {
		return
	}
	delete(b.sizes, slot)
	b.used -= size
}

// Used returns the bytes currently reserved.
func (b *Budget) Used() int { return b.used }

// Live returns the number of slots currently holding a reservation.
func (b *Budget) Live() int { return len(b.sizes) }
