package alloc

import (
	"fmt"
	"sort"
	"sync"

	"github.com/joshuapare/classkit/pkg/types"
)

// Tracking wraps another allocator and records the lifecycle of every slot.
// It is safe for concurrent use so a single tracker can observe many
// decodes, but slots are only unique within one decode.
type Tracking struct {
	next types.Allocator

	mu       sync.Mutex
	live     map[int]types.Tag
	allocs   int
	releases int
	problems []string
}

var _ types.Allocator = (*Tracking)(nil)

// NewTracking returns a tracker delegating to next (Heap when nil).
func NewTracking(next types.Allocator) *Tracking {
	if next == nil {
		next = Heap{}
	}
	return &Tracking{next: next, live: make(map[int]types.Tag)}
}

func (t *Tracking) Alloc(slot int, tag types.Tag, size int) error {
	if err := t.next.Alloc(slot, tag, size); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if prev, ok := t.live[slot]; ok {
		t.problems = append(t.problems, fmt.Sprintf("slot %d allocated twice (%s then %s)", slot, prev, tag))
	}
	t.live[slot] = tag
	t.allocs++
	return nil
}

func (t *Tracking) Release(slot int, tag types.Tag) {
	t.mu.Lock()
	prev, ok := t.live[slot]
	switch {
	case !ok:
		t.problems = append(t.problems, fmt.Sprintf("slot %d released without a live allocation", slot))
	case prev != tag:
		t.problems = append(t.problems, fmt.Sprintf("slot %d released as %s, allocated as %s", slot, tag, prev))
	}
	delete(t.live, slot)
	t.releases++
	t.mu.Unlock()

	t.next.Release(slot, tag)
}

// Allocs returns the number of successful allocations.
func (t *Tracking) Allocs() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.allocs
}

// Releases returns the number of releases observed.
func (t *Tracking) Releases() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.releases
}

// Leaked returns the slots that were allocated and never released.
func (t *Tracking) Leaked() []int {
	t.mu.Lock()
	defer t.mu.Unlock()
	slots := make([]int, 0, len(t.live))
	for s := range t.live {
		slots = append(slots, s)
	}
	sort.Ints(slots)
	return slots
}

// Problems returns double allocations and invalid releases, in order.
func (t *Tracking) Problems() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.problems...)
}

// Balanced reports whether every allocation was released exactly once.
func (t *Tracking) Balanced() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.live) == 0 && len(t.problems) == 0 && t.allocs == t.releases
}
