package format

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/classkit/pkg/types"
)

func TestDecodeEntryVariants(t *testing.T) {
	tests := []struct {
		name  string
		raw   []byte
		want  types.Entry
		width int
	}{
		{"utf8", []byte{1, 0x00, 0x03, 'F', 'o', 'o'}, types.Utf8{Value: "Foo"}, 1},
		{"utf8 empty", []byte{1, 0x00, 0x00}, types.Utf8{Value: ""}, 1},
		{"integer", []byte{3, 0xFF, 0xFF, 0xFF, 0xF9}, types.Integer{Value: -7}, 1},
		{"float", []byte{4, 0x40, 0x49, 0x0F, 0xDB}, types.Float{Value: math.Float32frombits(0x40490FDB)}, 1},
		{"long", []byte{5, 0x80, 0, 0, 0, 0, 0, 0, 1}, types.Long{Value: math.MinInt64 + 1}, 2},
		{"double", []byte{6, 0x40, 0x04, 0, 0, 0, 0, 0, 0}, types.Double{Value: 2.5}, 2},
		{"class", []byte{7, 0x00, 0x2A}, types.Class{NameIndex: 42}, 1},
		{"string", []byte{8, 0x01, 0x00}, types.String{StringIndex: 256}, 1},
		{"fieldref", []byte{9, 0, 1, 0, 2}, types.Fieldref{ClassIndex: 1, NameAndTypeIndex: 2}, 1},
		{"methodref", []byte{10, 0, 3, 0, 4}, types.Methodref{ClassIndex: 3, NameAndTypeIndex: 4}, 1},
		{"interface methodref", []byte{11, 0, 5, 0, 6}, types.InterfaceMethodref{ClassIndex: 5, NameAndTypeIndex: 6}, 1},
		{"name and type", []byte{12, 0, 7, 0, 8}, types.NameAndType{NameIndex: 7, DescriptorIndex: 8}, 1},
		{"method handle", []byte{15, 6, 0, 9}, types.MethodHandle{Kind: types.RefInvokeStatic, ReferenceIndex: 9}, 1},
		{"method type", []byte{16, 0, 10}, types.MethodType{DescriptorIndex: 10}, 1},
		{"dynamic", []byte{17, 0, 0, 0, 11}, types.Dynamic{BootstrapMethodAttrIndex: 0, NameAndTypeIndex: 11}, 1},
		{"invoke dynamic", []byte{18, 0, 2, 0, 12}, types.InvokeDynamic{BootstrapMethodAttrIndex: 2, NameAndTypeIndex: 12}, 1},
		{"module", []byte{19, 0, 13}, types.Module{NameIndex: 13}, 1},
		{"package", []byte{20, 0, 14}, types.Package{NameIndex: 14}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCursor(tt.raw)
			e, width, err := DecodeEntry(c, 0)
			require.NoError(t, err)
			require.Equal(t, tt.want, e)
			require.Equal(t, tt.width, width)
			require.Equal(t, len(tt.raw), c.Pos(), "entry must consume exactly its bytes")
			require.Equal(t, len(tt.raw)-TagSize, PayloadSize(e))
		})
	}
}

func TestDecodeEntryFloatBitExact(t *testing.T) {
	// A signalling NaN payload must survive without canonicalisation.
	c := NewCursor([]byte{4, 0x7F, 0x80, 0x00, 0x01})
	e, _, err := DecodeEntry(c, 0)
	require.NoError(t, err)
	require.Equal(t, uint32(0x7F800001), math.Float32bits(e.(types.Float).Value))

	c = NewCursor([]byte{6, 0x7F, 0xF0, 0, 0, 0, 0, 0, 1})
	e, _, err = DecodeEntry(c, 0)
	require.NoError(t, err)
	require.Equal(t, uint64(0x7FF0000000000001), math.Float64bits(e.(types.Double).Value))
}

func TestDecodeEntryUtf8IsOpaque(t *testing.T) {
	// Modified UTF-8 NUL (C0 80) and a lone 0xFF are stored untouched.
	raw := []byte{1, 0x00, 0x04, 'a', 0xC0, 0x80, 0xFF}
	e, _, err := DecodeEntry(NewCursor(raw), 0)
	require.NoError(t, err)
	require.Equal(t, "a\xC0\x80\xFF", e.(types.Utf8).Value)
}

func TestDecodeEntryUtf8DoesNotAliasInput(t *testing.T) {
	raw := []byte{1, 0x00, 0x02, 'h', 'i'}
	e, _, err := DecodeEntry(NewCursor(raw), 0)
	require.NoError(t, err)
	raw[3] = 'X'
	require.Equal(t, "hi", e.(types.Utf8).Value)
}

func TestDecodeEntryUnknownTag(t *testing.T) {
	for _, tag := range []byte{0, 2, 13, 14, 21, 99, 255} {
		c := NewCursor([]byte{0x00, tag, 0x00, 0x01})
		_, err := c.ReadU8("padding")
		require.NoError(t, err)

		_, _, err = DecodeEntry(c, 4)
		require.ErrorIs(t, err, types.ErrUnknownTag, "tag %d", tag)

		var te *types.Error
		require.ErrorAs(t, err, &te)
		require.Equal(t, tag, te.Tag)
		require.Equal(t, 4, te.Slot)
		require.Equal(t, 1, te.Offset, "offset of the tag byte")
	}
}

func TestDecodeEntryTruncatedPayload(t *testing.T) {
	tests := [][]byte{
		{},
		{1},
		{1, 0x00},
		{1, 0x00, 0x05, 'a', 'b'},
		{3, 0x00, 0x00, 0x00},
		{5, 0, 0, 0, 0, 0, 0, 0},
		{7, 0x00},
		{10, 0x00, 0x01, 0x00},
		{15, 0x01},
		{18, 0x00, 0x01},
	}
	for _, raw := range tests {
		_, _, err := DecodeEntry(NewCursor(raw), 3)
		require.ErrorIs(t, err, types.ErrTruncated, "raw %v", raw)

		var te *types.Error
		require.ErrorAs(t, err, &te)
		require.Equal(t, 3, te.Slot)
	}
}

func TestPayloadSizeNil(t *testing.T) {
	require.Zero(t, PayloadSize(nil))
}
