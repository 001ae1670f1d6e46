package printer

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/joshuapare/classkit/internal/mutf8"
	"github.com/joshuapare/classkit/pkg/types"
)

// document is the format-neutral view shared by every output format.
type document struct {
	Name         string     `json:"name" cbor:"1,keyasint"`
	Signature    string     `json:"signature" cbor:"2,keyasint"`
	Magic        uint32     `json:"magic" cbor:"3,keyasint"`
	MinorVersion uint16     `json:"minor_version" cbor:"4,keyasint"`
	MajorVersion uint16     `json:"major_version" cbor:"5,keyasint"`
	AccessFlags  uint16     `json:"access_flags" cbor:"6,keyasint"`
	Flags        string     `json:"flags,omitempty" cbor:"7,keyasint,omitempty"`
	PoolCount    uint16     `json:"constant_pool_count" cbor:"8,keyasint"`
	ThisClass    uint16     `json:"this_class" cbor:"9,keyasint"`
	Constants    []constant `json:"constants,omitempty" cbor:"10,keyasint,omitempty"`
}

// constant is one row of the constant table.
type constant struct {
	Index   uint16 `json:"index" cbor:"1,keyasint"`
	Tag     string `json:"tag" cbor:"2,keyasint"`
	Value   string `json:"value" cbor:"3,keyasint"`
	Comment string `json:"comment,omitempty" cbor:"4,keyasint,omitempty"`
}

func ref(i uint16) string { return "#" + strconv.Itoa(int(i)) }

func (p *Printer) describe(pool *types.ConstantPool, idx uint16, e types.Entry) constant {
	c := constant{Index: idx, Tag: e.Tag().String()}
	switch v := e.(type) {
	case types.Utf8:
		c.Value = p.text(v.Value)
	case types.Integer:
		c.Value = strconv.FormatInt(int64(v.Value), 10)
	case types.Float:
		c.Value = strconv.FormatFloat(float64(v.Value), 'g', -1, 32) + "f"
	case types.Long:
		c.Value = strconv.FormatInt(v.Value, 10) + "l"
	case types.Double:
		c.Value = strconv.FormatFloat(v.Value, 'g', -1, 64) + "d"
	case types.Class:
		c.Value = ref(v.NameIndex)
		c.Comment = p.utf8(pool, v.NameIndex)
	case types.String:
		c.Value = ref(v.StringIndex)
		c.Comment = p.utf8(pool, v.StringIndex)
	case types.Fieldref:
		c.Value, c.Comment = p.member(pool, types.MemberRef(v))
	case types.Methodref:
		c.Value, c.Comment = p.member(pool, types.MemberRef(v))
	case types.InterfaceMethodref:
		c.Value, c.Comment = p.member(pool, types.MemberRef(v))
	case types.NameAndType:
		c.Value = ref(v.NameIndex) + ":" + ref(v.DescriptorIndex)
		c.Comment = p.nameAndType(pool, idx)
	case types.MethodHandle:
		c.Value = strconv.Itoa(int(v.Kind)) + ":" + ref(v.ReferenceIndex)
		c.Comment = v.Kind.String() + " " + p.memberAt(pool, v.ReferenceIndex)
	case types.MethodType:
		c.Value = ref(v.DescriptorIndex)
		c.Comment = p.utf8(pool, v.DescriptorIndex)
	case types.Dynamic:
		c.Value, c.Comment = p.bootstrap(pool, types.BootstrapRef(v))
	case types.InvokeDynamic:
		c.Value, c.Comment = p.bootstrap(pool, types.BootstrapRef(v))
	case types.Module:
		c.Value = ref(v.NameIndex)
		c.Comment = p.utf8(pool, v.NameIndex)
	case types.Package:
		c.Value = ref(v.NameIndex)
		c.Comment = p.utf8(pool, v.NameIndex)
	}
	if !p.opts.Resolve {
		c.Comment = ""
	}
	return c
}

// text converts modified UTF-8 to display text and applies MaxTextRunes.
func (p *Printer) text(raw string) string {
	s := mutf8.DecodeString(raw)
	if p.opts.MaxTextRunes > 0 && utf8.RuneCountInString(s) > p.opts.MaxTextRunes {
		r := []rune(s)
		s = string(r[:p.opts.MaxTextRunes]) + "..."
	}
	return s
}

func invalid(i uint16) string { return "<invalid " + ref(i) + ">" }

func (p *Printer) utf8(pool *types.ConstantPool, i uint16) string {
	s, err := pool.Utf8At(i)
	if err != nil {
		return invalid(i)
	}
	return p.text(s)
}

func (p *Printer) className(pool *types.ConstantPool, i uint16) string {
	c, err := pool.ClassAt(i)
	if err != nil {
		return invalid(i)
	}
	return p.utf8(pool, c.NameIndex)
}

func (p *Printer) nameAndType(pool *types.ConstantPool, i uint16) string {
	e, err := pool.Entry(i)
	if err != nil {
		return invalid(i)
	}
	nt, ok := e.(types.NameAndType)
	if !ok {
		return invalid(i)
	}
	name := p.utf8(pool, nt.NameIndex)
	if name == "<init>" || name == "<clinit>" {
		name = strconv.Quote(name)
	}
	return name + ":" + p.utf8(pool, nt.DescriptorIndex)
}

func (p *Printer) member(pool *types.ConstantPool, m types.MemberRef) (string, string) {
	return ref(m.ClassIndex) + "." + ref(m.NameAndTypeIndex),
		p.className(pool, m.ClassIndex) + "." + p.nameAndType(pool, m.NameAndTypeIndex)
}

// memberAt renders the field or method reference a MethodHandle targets.
func (p *Printer) memberAt(pool *types.ConstantPool, i uint16) string {
	e, err := pool.Entry(i)
	if err != nil {
		return invalid(i)
	}
	switch v := e.(type) {
	case types.Fieldref:
		_, s := p.member(pool, types.MemberRef(v))
		return s
	case types.Methodref:
		_, s := p.member(pool, types.MemberRef(v))
		return s
	case types.InterfaceMethodref:
		_, s := p.member(pool, types.MemberRef(v))
		return s
	default:
		return invalid(i)
	}
}

// bootstrap renders Dynamic and InvokeDynamic. The first index points into
// the BootstrapMethods attribute, so it is printed bare.
func (p *Printer) bootstrap(pool *types.ConstantPool, b types.BootstrapRef) (string, string) {
	v := fmt.Sprintf("%d:%s", b.BootstrapMethodAttrIndex, ref(b.NameAndTypeIndex))
	return v, fmt.Sprintf("#%d:%s", b.BootstrapMethodAttrIndex, p.nameAndType(pool, b.NameAndTypeIndex))
}
