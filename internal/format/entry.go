package format

import (
	"errors"
	"math"

	"github.com/joshuapare/classkit/pkg/types"
)

// DecodeEntry reads one tag byte and the payload that follows it, returning
// the decoded constant for slot and the number of logical slots it
// occupies (2 for Long and Double, 1 otherwise).
//
// Reference indices are not validated here: a constant may refer forward
// to a slot that has not been decoded yet.
func DecodeEntry(c *Cursor, slot int) (types.Entry, int, error) {
	start := c.Pos()
	raw, err := c.ReadU8("constant tag")
	if err != nil {
		return nil, 0, atSlot(err, slot)
	}

	tag := types.Tag(raw)
	var e types.Entry
	switch tag {
	case types.TagUtf8:
		e, err = decodeUtf8(c)
	case types.TagInteger:
		e, err = decodeInteger(c)
	case types.TagFloat:
		e, err = decodeFloat(c)
	case types.TagLong:
		e, err = decodeLong(c)
	case types.TagDouble:
		e, err = decodeDouble(c)
	case types.TagClass:
		e, err = decodeClass(c)
	case types.TagString:
		e, err = decodeString(c)
	case types.TagFieldref, types.TagMethodref, types.TagInterfaceMethodref:
		e, err = decodeMemberRef(c, tag)
	case types.TagNameAndType:
		e, err = decodeNameAndType(c)
	case types.TagMethodHandle:
		e, err = decodeMethodHandle(c)
	case types.TagMethodType:
		e, err = decodeMethodType(c)
	case types.TagDynamic, types.TagInvokeDynamic:
		e, err = decodeBootstrapRef(c, tag)
	case types.TagModule:
		e, err = decodeModule(c)
	case types.TagPackage:
		e, err = decodePackage(c)
	default:
		return nil, 0, types.UnknownConstantTag(raw, slot, start)
	}
	if err != nil {
		return nil, 0, atSlot(err, slot)
	}
	return e, tag.Width(), nil
}

// PayloadSize returns the number of payload bytes e occupied on the wire,
// excluding the tag byte. Allocators use it to account for the entry.
func PayloadSize(e types.Entry) int {
	switch v := e.(type) {
	case types.Utf8:
		return U2Size + len(v.Value)
	case types.Integer, types.Float:
		return NarrowNumberPayload
	case types.Long, types.Double:
		return WideNumberPayload
	case types.MethodHandle:
		return MethodHandlePayload
	case types.Class, types.String, types.MethodType, types.Module, types.Package:
		return SingleIndexPayload
	case nil:
		return 0
	default:
		return IndexPairPayload
	}
}

func atSlot(err error, slot int) error {
	var te *types.Error
	if errors.As(err, &te) && te.Slot < 0 {
		te.Slot = slot
	}
	return err
}

func decodeUtf8(c *Cursor) (types.Entry, error) {
	n, err := c.ReadU16("Utf8 length")
	if err != nil {
		return nil, err
	}
	b, err := c.ReadBytes("Utf8 bytes", int(n))
	if err != nil {
		return nil, err
	}
	// string() copies, so the entry never aliases the input buffer.
	return types.Utf8{Value: string(b)}, nil
}

func decodeInteger(c *Cursor) (types.Entry, error) {
	v, err := c.ReadU32("Integer value")
	if err != nil {
		return nil, err
	}
	return types.Integer{Value: int32(v)}, nil
}

func decodeFloat(c *Cursor) (types.Entry, error) {
	v, err := c.ReadU32("Float value")
	if err != nil {
		return nil, err
	}
	return types.Float{Value: math.Float32frombits(v)}, nil
}

func decodeLong(c *Cursor) (types.Entry, error) {
	v, err := c.ReadU64("Long value")
	if err != nil {
		return nil, err
	}
	return types.Long{Value: int64(v)}, nil
}

func decodeDouble(c *Cursor) (types.Entry, error) {
	v, err := c.ReadU64("Double value")
	if err != nil {
		return nil, err
	}
	return types.Double{Value: math.Float64frombits(v)}, nil
}

func decodeClass(c *Cursor) (types.Entry, error) {
	idx, err := c.ReadU16("Class name_index")
	if err != nil {
		return nil, err
	}
	return types.Class{NameIndex: idx}, nil
}

func decodeString(c *Cursor) (types.Entry, error) {
	idx, err := c.ReadU16("String string_index")
	if err != nil {
		return nil, err
	}
	return types.String{StringIndex: idx}, nil
}

func readIndexPair(c *Cursor, first, second string) (uint16, uint16, error) {
	a, err := c.ReadU16(first)
	if err != nil {
		return 0, 0, err
	}
	b, err := c.ReadU16(second)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func decodeMemberRef(c *Cursor, tag types.Tag) (types.Entry, error) {
	classIdx, ntIdx, err := readIndexPair(c,
		tag.String()+" class_index", tag.String()+" name_and_type_index")
	if err != nil {
		return nil, err
	}
	ref := types.MemberRef{ClassIndex: classIdx, NameAndTypeIndex: ntIdx}
	switch tag {
	case types.TagFieldref:
		return types.Fieldref(ref), nil
	case types.TagMethodref:
		return types.Methodref(ref), nil
	default:
		return types.InterfaceMethodref(ref), nil
	}
}

func decodeNameAndType(c *Cursor) (types.Entry, error) {
	name, desc, err := readIndexPair(c, "NameAndType name_index", "NameAndType descriptor_index")
	if err != nil {
		return nil, err
	}
	return types.NameAndType{NameIndex: name, DescriptorIndex: desc}, nil
}

func decodeMethodHandle(c *Cursor) (types.Entry, error) {
	kind, err := c.ReadU8("MethodHandle reference_kind")
	if err != nil {
		return nil, err
	}
	idx, err := c.ReadU16("MethodHandle reference_index")
	if err != nil {
		return nil, err
	}
	return types.MethodHandle{Kind: types.RefKind(kind), ReferenceIndex: idx}, nil
}

func decodeMethodType(c *Cursor) (types.Entry, error) {
	idx, err := c.ReadU16("MethodType descriptor_index")
	if err != nil {
		return nil, err
	}
	return types.MethodType{DescriptorIndex: idx}, nil
}

// decodeBootstrapRef reads Dynamic and InvokeDynamic. The first field is an
// index into the BootstrapMethods attribute, not into the constant pool.
func decodeBootstrapRef(c *Cursor, tag types.Tag) (types.Entry, error) {
	bsm, ntIdx, err := readIndexPair(c,
		tag.String()+" bootstrap_method_attr_index", tag.String()+" name_and_type_index")
	if err != nil {
		return nil, err
	}
	ref := types.BootstrapRef{BootstrapMethodAttrIndex: bsm, NameAndTypeIndex: ntIdx}
	if tag == types.TagDynamic {
		return types.Dynamic(ref), nil
	}
	return types.InvokeDynamic(ref), nil
}

func decodeModule(c *Cursor) (types.Entry, error) {
	idx, err := c.ReadU16("Module name_index")
	if err != nil {
		return nil, err
	}
	return types.Module{NameIndex: idx}, nil
}

func decodePackage(c *Cursor) (types.Entry, error) {
	idx, err := c.ReadU16("Package name_index")
	if err != nil {
		return nil, err
	}
	return types.Package{NameIndex: idx}, nil
}
