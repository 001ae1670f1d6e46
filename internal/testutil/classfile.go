// Package testutil builds synthetic class files for tests.
package testutil

import (
	"encoding/binary"
	"math"

	"github.com/joshuapare/classkit/pkg/types"
)

// ClassBuilder assembles a class file byte by byte. Constants are appended
// in order; Index reports the 1-based pool index the next constant will
// receive, accounting for the double width of Long and Double.
type ClassBuilder struct {
	Magic        uint32
	MinorVersion uint16
	MajorVersion uint16

	// CountOverride, when non-zero, replaces the computed constant_pool_count.
	CountOverride uint16

	pool  []byte
	slots int
}

// NewClassBuilder returns a builder for a Java 8 (major 52) class file.
func NewClassBuilder() *ClassBuilder {
	return &ClassBuilder{Magic: 0xCAFEBABE, MajorVersion: 52}
}

// Index is the 1-based index the next appended constant will occupy.
func (b *ClassBuilder) Index() uint16 { return uint16(b.slots + 1) }

func (b *ClassBuilder) add(width int, tag types.Tag, payload ...byte) uint16 {
	idx := b.Index()
	b.pool = append(b.pool, byte(tag))
	b.pool = append(b.pool, payload...)
	b.slots += width
	return idx
}

func u2(v uint16) []byte { return binary.BigEndian.AppendUint16(nil, v) }

func u4(v uint32) []byte { return binary.BigEndian.AppendUint32(nil, v) }

func u8(v uint64) []byte { return binary.BigEndian.AppendUint64(nil, v) }

func pair(a, c uint16) []byte { return append(u2(a), u2(c)...) }

// Utf8 appends raw (already modified-UTF-8) text.
func (b *ClassBuilder) Utf8(s string) uint16 {
	return b.add(1, types.TagUtf8, append(u2(uint16(len(s))), s...)...)
}

func (b *ClassBuilder) Integer(v int32) uint16 {
	return b.add(1, types.TagInteger, u4(uint32(v))...)
}

func (b *ClassBuilder) Float(v float32) uint16 {
	return b.add(1, types.TagFloat, u4(math.Float32bits(v))...)
}

func (b *ClassBuilder) Long(v int64) uint16 {
	return b.add(2, types.TagLong, u8(uint64(v))...)
}

func (b *ClassBuilder) Double(v float64) uint16 {
	return b.add(2, types.TagDouble, u8(math.Float64bits(v))...)
}

func (b *ClassBuilder) Class(nameIndex uint16) uint16 {
	return b.add(1, types.TagClass, u2(nameIndex)...)
}

func (b *ClassBuilder) StringRef(utf8Index uint16) uint16 {
	return b.add(1, types.TagString, u2(utf8Index)...)
}

func (b *ClassBuilder) Fieldref(classIndex, ntIndex uint16) uint16 {
	return b.add(1, types.TagFieldref, pair(classIndex, ntIndex)...)
}

func (b *ClassBuilder) Methodref(classIndex, ntIndex uint16) uint16 {
	return b.add(1, types.TagMethodref, pair(classIndex, ntIndex)...)
}

func (b *ClassBuilder) InterfaceMethodref(classIndex, ntIndex uint16) uint16 {
	return b.add(1, types.TagInterfaceMethodref, pair(classIndex, ntIndex)...)
}

func (b *ClassBuilder) NameAndType(nameIndex, descIndex uint16) uint16 {
	return b.add(1, types.TagNameAndType, pair(nameIndex, descIndex)...)
}

func (b *ClassBuilder) MethodHandle(kind types.RefKind, refIndex uint16) uint16 {
	return b.add(1, types.TagMethodHandle, append([]byte{byte(kind)}, u2(refIndex)...)...)
}

func (b *ClassBuilder) MethodType(descIndex uint16) uint16 {
	return b.add(1, types.TagMethodType, u2(descIndex)...)
}

func (b *ClassBuilder) InvokeDynamic(bsmIndex, ntIndex uint16) uint16 {
	return b.add(1, types.TagInvokeDynamic, pair(bsmIndex, ntIndex)...)
}

func (b *ClassBuilder) Dynamic(bsmIndex, ntIndex uint16) uint16 {
	return b.add(1, types.TagDynamic, pair(bsmIndex, ntIndex)...)
}

func (b *ClassBuilder) Module(nameIndex uint16) uint16 {
	return b.add(1, types.TagModule, u2(nameIndex)...)
}

func (b *ClassBuilder) Package(nameIndex uint16) uint16 {
	return b.add(1, types.TagPackage, u2(nameIndex)...)
}

// Raw appends an arbitrary tag and payload occupying one slot.
func (b *ClassBuilder) Raw(tag byte, payload ...byte) uint16 {
	return b.add(1, types.Tag(tag), payload...)
}

// Bytes renders the class file through this_class. Callers that need the
// trailing super_class field append it themselves.
func (b *ClassBuilder) Bytes(accessFlags, thisClass uint16) []byte {
	count := uint16(b.slots + 1)
	if b.CountOverride != 0 {
		count = b.CountOverride
	}
	out := make([]byte, 0, 10+len(b.pool)+4)
	out = binary.BigEndian.AppendUint32(out, b.Magic)
	out = binary.BigEndian.AppendUint16(out, b.MinorVersion)
	out = binary.BigEndian.AppendUint16(out, b.MajorVersion)
	out = binary.BigEndian.AppendUint16(out, count)
	out = append(out, b.pool...)
	out = binary.BigEndian.AppendUint16(out, accessFlags)
	out = binary.BigEndian.AppendUint16(out, thisClass)
	return out
}

// Minimal returns the smallest valid class file naming name: Utf8 at #1,
// Class at #2, ACC_PUBLIC|ACC_SUPER, this_class = #2.
func Minimal(name string) []byte {
	b := NewClassBuilder()
	n := b.Utf8(name)
	c := b.Class(n)
	return b.Bytes(0x0021, c)
}

// Service returns a class resembling javac output for a small service
// class with a constructor call, a string literal and a long constant.
func Service(name string) []byte {
	b := NewClassBuilder()
	objName := b.Utf8("java/lang/Object")
	objClass := b.Class(objName)
	initName := b.Utf8("<init>")
	voidDesc := b.Utf8("()V")
	initNT := b.NameAndType(initName, voidDesc)
	b.Methodref(objClass, initNT)
	greeting := b.Utf8("hello")
	b.StringRef(greeting)
	b.Long(1 << 40)
	b.Integer(-7)
	b.Double(2.5)
	thisName := b.Utf8(name)
	thisClass := b.Class(thisName)
	b.Utf8("Code")
	return b.Bytes(0x0021, thisClass)
}
