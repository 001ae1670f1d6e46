package format

import "github.com/joshuapare/classkit/pkg/types"

// ReadHeader decodes magic, minor/major version and constant_pool_count.
// The magic is returned as-is; callers decide whether a mismatch matters.
func ReadHeader(c *Cursor) (types.Header, error) {
	magic, err := c.ReadU32("magic")
	if err != nil {
		return types.Header{}, err
	}
	minor, err := c.ReadU16("minor_version")
	if err != nil {
		return types.Header{}, err
	}
	major, err := c.ReadU16("major_version")
	if err != nil {
		return types.Header{}, err
	}
	count, err := c.ReadU16("constant_pool_count")
	if err != nil {
		return types.Header{}, err
	}
	return types.Header{
		Magic:             magic,
		MinorVersion:      minor,
		MajorVersion:      major,
		ConstantPoolCount: count,
	}, nil
}
