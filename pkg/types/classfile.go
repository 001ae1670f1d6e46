package types

// Header holds the fixed fields that precede the constant pool.
type Header struct {
	Magic             uint32
	MinorVersion      uint16
	MajorVersion      uint16
	ConstantPoolCount uint16
}

// ClassFile is a decoded class file: its header, access flags, resolved
// class name and the constant pool it exclusively owns.
type ClassFile struct {
	Header
	AccessFlags AccessFlags
	ThisClass   uint16
	Name        string

	pool  *ConstantPool
	alloc Allocator
}

// NewClassFile assembles a ClassFile that takes ownership of pool. Every
// payload in pool is handed back to a on Close.
func NewClassFile(h Header, flags AccessFlags, thisClass uint16, name string, pool *ConstantPool, a Allocator) *ClassFile {
	return &ClassFile{
		Header:      h,
		AccessFlags: flags,
		ThisClass:   thisClass,
		Name:        name,
		pool:        pool,
		alloc:       a,
	}
}

// Pool returns the constant pool, or nil once the class file is closed.
func (c *ClassFile) Pool() *ConstantPool {
	if c == nil {
		return nil
	}
	return c.pool
}

// Signature returns the class name in the runtime's internal reference
// form, e.g. "Lcom/example/Service;".
func (c *ClassFile) Signature() string {
	return Signature(c.Name)
}

// Close releases every constant payload and the pool. It is safe to call
// more than once.
func (c *ClassFile) Close() error {
	if c == nil || c.pool == nil {
		return nil
	}
	c.pool.Release(c.alloc)
	c.pool = nil
	return nil
}

// Signature converts a binary class name to the "L<name>;" lookup key used
// by the class registry.
func Signature(name string) string {
	return "L" + name + ";"
}
