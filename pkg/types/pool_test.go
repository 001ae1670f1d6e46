package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingAllocator struct {
	released map[int]int
}

func (a *countingAllocator) Alloc(int, Tag, int) error { return nil }

func (a *countingAllocator) Release(slot int, _ Tag) {
	if a.released == nil {
		a.released = make(map[int]int)
	}
	a.released[slot]++
}

func samplePool() *ConstantPool {
	return NewConstantPool([]Entry{
		Long{Value: 1},
		nil,
		Utf8{Value: "Foo"},
		Class{NameIndex: 3},
		Integer{Value: 9},
	})
}

func TestPoolLookup(t *testing.T) {
	p := samplePool()
	require.Equal(t, 5, p.Len())

	e, err := p.Entry(3)
	require.NoError(t, err)
	assert.Equal(t, Utf8{Value: "Foo"}, e)

	tests := []struct {
		name  string
		index uint16
	}{
		{"zero", 0},
		{"second half of long", 2},
		{"past end", 6},
		{"max", 0xFFFF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Lookup(tt.index, 4)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidReference))
			var te *Error
			require.ErrorAs(t, err, &te)
			assert.Equal(t, tt.index, te.Index)
			assert.Equal(t, 4, te.Slot)
		})
	}
}

func TestPoolTypedAccessors(t *testing.T) {
	p := samplePool()

	s, err := p.Utf8At(3)
	require.NoError(t, err)
	assert.Equal(t, "Foo", s)

	_, err = p.Utf8At(4)
	assert.ErrorIs(t, err, ErrInvalidReference)

	c, err := p.ClassAt(4)
	require.NoError(t, err)
	assert.Equal(t, uint16(3), c.NameIndex)

	_, err = p.ClassAt(5)
	assert.ErrorIs(t, err, ErrInvalidReference)
}

func TestPoolSlot(t *testing.T) {
	p := samplePool()
	assert.Equal(t, Long{Value: 1}, p.Slot(0))
	assert.Nil(t, p.Slot(1))
	assert.Nil(t, p.Slot(-1))
	assert.Nil(t, p.Slot(5))

	var nilPool *ConstantPool
	assert.Zero(t, nilPool.Len())
	assert.Nil(t, nilPool.Slot(0))
	_, err := nilPool.Entry(1)
	assert.ErrorIs(t, err, ErrInvalidReference)
}

func TestPoolAllSkipsUnusableSlots(t *testing.T) {
	var idx []uint16
	for i, e := range samplePool().All() {
		idx = append(idx, i)
		assert.NotNil(t, e)
	}
	assert.Equal(t, []uint16{1, 3, 4, 5}, idx)

	idx = idx[:0]
	for i := range samplePool().All() {
		idx = append(idx, i)
		if i == 3 {
			break
		}
	}
	assert.Equal(t, []uint16{1, 3}, idx)
}

func TestPoolReleaseOnce(t *testing.T) {
	p := samplePool()
	a := &countingAllocator{}

	p.Release(a)
	p.Release(a)

	assert.Equal(t, map[int]int{0: 1, 2: 1, 3: 1, 4: 1}, a.released)
	assert.Zero(t, p.Len())
}
