package types

import "fmt"

// Tag is the one-byte discriminant that prefixes every constant pool entry.
// The numbers align with the class-file format definition.
type Tag uint8

const (
	TagUtf8               Tag = 1
	TagInteger            Tag = 3
	TagFloat              Tag = 4
	TagLong               Tag = 5
	TagDouble             Tag = 6
	TagClass              Tag = 7
	TagString             Tag = 8
	TagFieldref           Tag = 9
	TagMethodref          Tag = 10
	TagInterfaceMethodref Tag = 11
	TagNameAndType        Tag = 12
	TagMethodHandle       Tag = 15
	TagMethodType         Tag = 16
	TagDynamic            Tag = 17
	TagInvokeDynamic      Tag = 18
	TagModule             Tag = 19
	TagPackage            Tag = 20
)

// Valid reports whether t is one of the known tags.
func (t Tag) Valid() bool {
	switch t {
	case TagUtf8, TagInteger, TagFloat, TagLong, TagDouble, TagClass, TagString,
		TagFieldref, TagMethodref, TagInterfaceMethodref, TagNameAndType,
		TagMethodHandle, TagMethodType, TagDynamic, TagInvokeDynamic,
		TagModule, TagPackage:
		return true
	default:
		return false
	}
}

// Width is the number of logical pool slots an entry with this tag
// occupies. Long and Double take two; the second slot is unusable.
func (t Tag) Width() int {
	if t == TagLong || t == TagDouble {
		return 2
	}
	return 1
}

func (t Tag) String() string {
	switch t {
	case TagUtf8:
		return "Utf8"
	case TagInteger:
		return "Integer"
	case TagFloat:
		return "Float"
	case TagLong:
		return "Long"
	case TagDouble:
		return "Double"
	case TagClass:
		return "Class"
	case TagString:
		return "String"
	case TagFieldref:
		return "Fieldref"
	case TagMethodref:
		return "Methodref"
	case TagInterfaceMethodref:
		return "InterfaceMethodref"
	case TagNameAndType:
		return "NameAndType"
	case TagMethodHandle:
		return "MethodHandle"
	case TagMethodType:
		return "MethodType"
	case TagDynamic:
		return "Dynamic"
	case TagInvokeDynamic:
		return "InvokeDynamic"
	case TagModule:
		return "Module"
	case TagPackage:
		return "Package"
	default:
		return fmt.Sprintf("Tag(%d)", uint8(t))
	}
}

// RefKind is the reference_kind byte of a MethodHandle constant.
type RefKind uint8

const (
	RefGetField         RefKind = 1
	RefGetStatic        RefKind = 2
	RefPutField         RefKind = 3
	RefPutStatic        RefKind = 4
	RefInvokeVirtual    RefKind = 5
	RefInvokeStatic     RefKind = 6
	RefInvokeSpecial    RefKind = 7
	RefNewInvokeSpecial RefKind = 8
	RefInvokeInterface  RefKind = 9
)

var refKindNames = [...]string{
	RefGetField:         "getField",
	RefGetStatic:        "getStatic",
	RefPutField:         "putField",
	RefPutStatic:        "putStatic",
	RefInvokeVirtual:    "invokeVirtual",
	RefInvokeStatic:     "invokeStatic",
	RefInvokeSpecial:    "invokeSpecial",
	RefNewInvokeSpecial: "newInvokeSpecial",
	RefInvokeInterface:  "invokeInterface",
}

func (k RefKind) String() string {
	if int(k) < len(refKindNames) && refKindNames[k] != "" {
		return refKindNames[k]
	}
	return fmt.Sprintf("RefKind(%d)", uint8(k))
}

// Entry is a single decoded constant. Implementations are the value types
// below; switch on the concrete type to read the payload.
type Entry interface {
	Tag() Tag
}

// Utf8 holds the raw modified-UTF-8 bytes of a text constant. The bytes are
// kept as-is; use internal/mutf8 to convert them to standard UTF-8.
type Utf8 struct {
	Value string
}

type Integer struct {
	Value int32
}

type Float struct {
	Value float32
}

type Long struct {
	Value int64
}

type Double struct {
	Value float64
}

// Class references the Utf8 entry holding a binary class name.
type Class struct {
	NameIndex uint16
}

// String references the Utf8 entry holding a string literal.
type String struct {
	StringIndex uint16
}

// MemberRef is the shared payload of field, method and interface method
// references.
type MemberRef struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

type (
	Fieldref           MemberRef
	Methodref          MemberRef
	InterfaceMethodref MemberRef
)

type NameAndType struct {
	NameIndex       uint16
	DescriptorIndex uint16
}

type MethodHandle struct {
	Kind           RefKind
	ReferenceIndex uint16
}

type MethodType struct {
	DescriptorIndex uint16
}

// BootstrapRef is the payload of Dynamic and InvokeDynamic constants.
// BootstrapMethodAttrIndex indexes the class's BootstrapMethods attribute,
// not the constant pool; it is never resolved against the pool.
type BootstrapRef struct {
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         uint16
}

type (
	Dynamic       BootstrapRef
	InvokeDynamic BootstrapRef
)

type Module struct {
	NameIndex uint16
}

type Package struct {
	NameIndex uint16
}

func (Utf8) Tag() Tag               { return TagUtf8 }
func (Integer) Tag() Tag            { return TagInteger }
func (Float) Tag() Tag              { return TagFloat }
func (Long) Tag() Tag               { return TagLong }
func (Double) Tag() Tag             { return TagDouble }
func (Class) Tag() Tag              { return TagClass }
func (String) Tag() Tag             { return TagString }
func (Fieldref) Tag() Tag           { return TagFieldref }
func (Methodref) Tag() Tag          { return TagMethodref }
func (InterfaceMethodref) Tag() Tag { return TagInterfaceMethodref }
func (NameAndType) Tag() Tag        { return TagNameAndType }
func (MethodHandle) Tag() Tag       { return TagMethodHandle }
func (MethodType) Tag() Tag         { return TagMethodType }
func (Dynamic) Tag() Tag            { return TagDynamic }
func (InvokeDynamic) Tag() Tag      { return TagInvokeDynamic }
func (Module) Tag() Tag             { return TagModule }
func (Package) Tag() Tag            { return TagPackage }
