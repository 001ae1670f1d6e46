package reader

import (
	"fmt"

	"github.com/joshuapare/classkit/internal/format"
	"github.com/joshuapare/classkit/pkg/types"
)

// assemble decodes declared-1 logical slots. The fill cursor advances by
// each entry's width, so the slot after a Long or Double is skipped and
// stays nil. On any failure the payloads stored so far are released before
// the error is returned.
func (d *decoder) assemble(c *format.Cursor, declared uint16) (*types.ConstantPool, error) {
	if declared == 0 {
		return nil, types.InvalidFormat("constant_pool_count is zero", format.PoolCountOffset, format.ErrEmptyPool)
	}
	if int(declared) > d.limits.MaxConstantPoolCount {
		return nil, types.AllocationFailure(-1,
			fmt.Errorf("constant_pool_count %d exceeds limit %d", declared, d.limits.MaxConstantPoolCount))
	}

	n := int(declared) - 1
	slots := make([]types.Entry, n)
	fail := func(err error) (*types.ConstantPool, error) {
		types.NewConstantPool(slots).Release(d.alloc)
		return nil, err
	}

	for fill := 0; fill < n; {
		start := c.Pos()
		e, width, err := format.DecodeEntry(c, fill)
		if err != nil {
			return fail(err)
		}
		if fill+width > n {
			ferr := types.InvalidFormat(
				fmt.Sprintf("%s at slot %d (#%d) needs %d slots but the pool has %d", e.Tag(), fill, fill+1, width, n),
				start, format.ErrWideOverflow)
			ferr.Slot = fill
			return fail(ferr)
		}
		if err := d.alloc.Alloc(fill, e.Tag(), format.PayloadSize(e)); err != nil {
			return fail(types.AllocationFailure(fill, err))
		}
		slots[fill] = e

		if d.debug {
			d.log.Debug("constant decoded", "slot", fill, "index", fill+1, "tag", e.Tag().String(), "offset", start)
		}
		fill += width
	}
	return types.NewConstantPool(slots), nil
}
