package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/classkit/pkg/types"
)

func TestHeapAcceptsEverything(t *testing.T) {
	var h Heap
	require.NoError(t, h.Alloc(0, types.TagUtf8, 1<<30))
	require.ErrorIs(t, h.Alloc(0, types.TagUtf8, -1), ErrBadSize)
	h.Release(0, types.TagUtf8)
}

func TestBudgetRefusesOverLimit(t *testing.T) {
	b := NewBudget(10)
	require.NoError(t, b.Alloc(0, types.TagUtf8, 6))
	require.NoError(t, b.Alloc(1, types.TagInteger, 4))
	assert.Equal(t, 10, b.Used())

	err := b.Alloc(2, types.TagClass, 2)
	require.ErrorIs(t, err, ErrNoSpace)
	assert.Contains(t, err.Error(), "Class")
	assert.Equal(t, 2, b.Live(), "refused slot must not be recorded")

	b.Release(0, types.TagUtf8)
	assert.Equal(t, 4, b.Used())
	require.NoError(t, b.Alloc(2, types.TagClass, 2))

	// Releasing an unknown slot is ignored.
	b.Release(42, types.TagUtf8)
	assert.Equal(t, 6, b.Used())
}

func TestBudgetUnlimited(t *testing.T) {
	b := NewBudget(0)
	require.NoError(t, b.Alloc(0, types.TagUtf8, 1<<40))
}

func TestTrackingBalanced(t *testing.T) {
	tr := NewTracking(nil)
	require.NoError(t, tr.Alloc(0, types.TagUtf8, 5))
	require.NoError(t, tr.Alloc(1, types.TagClass, 2))
	assert.False(t, tr.Balanced())
	assert.Equal(t, []int{0, 1}, tr.Leaked())

	tr.Release(1, types.TagClass)
	tr.Release(0, types.TagUtf8)
	assert.True(t, tr.Balanced())
	assert.Equal(t, 2, tr.Allocs())
	assert.Equal(t, 2, tr.Releases())
	assert.Empty(t, tr.Leaked())
}

func TestTrackingDetectsDoubleRelease(t *testing.T) {
	tr := NewTracking(nil)
	require.NoError(t, tr.Alloc(3, types.TagLong, 8))
	tr.Release(3, types.TagLong)
	tr.Release(3, types.TagLong)

	assert.False(t, tr.Balanced())
	require.Len(t, tr.Problems(), 1)
	assert.Contains(t, tr.Problems()[0], "slot 3 released without a live allocation")
}

func TestTrackingDetectsTagMismatchAndDoubleAlloc(t *testing.T) {
	tr := NewTracking(nil)
	require.NoError(t, tr.Alloc(0, types.TagUtf8, 1))
	require.NoError(t, tr.Alloc(0, types.TagClass, 2))
	tr.Release(0, types.TagUtf8)

	problems := tr.Problems()
	require.Len(t, problems, 2)
	assert.Contains(t, problems[0], "allocated twice")
	assert.Contains(t, problems[1], "released as Utf8, allocated as Class")
}

func TestTrackingPropagatesRefusal(t *testing.T) {
	tr := NewTracking(NewBudget(1))
	require.ErrorIs(t, tr.Alloc(0, types.TagInteger, 4), ErrNoSpace)
	assert.Zero(t, tr.Allocs())
	assert.True(t, tr.Balanced())
}
