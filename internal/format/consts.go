// Package format houses the low-level decoders for the class-file format:
// a bounds-checked big-endian cursor, the fixed header and the constant
// pool entry grammar. The goal is to keep the parsing focused and
// independent from the public API so higher-level packages can orchestrate
// the data in a more ergonomic form.
package format

// Magic is the four-byte signature at the start of every class file.
const Magic uint32 = 0xCAFEBABE

// Header layout (big-endian):
//
//	Offset  Size  Description
//	------  ----  ----------------------------------------------------------
//	 0x00    4    magic (0xCAFEBABE)
//	 0x04    2    minor_version
//	 0x06    2    major_version
//	 0x08    2    constant_pool_count
//	 0x0A    ...  constant pool entries
//	  ...    2    access_flags
//	  ...    2    this_class
//	  ...    2    super_class (not consumed)
const (
	MagicOffset     = 0x00
	MinorOffset     = 0x04
	MajorOffset     = 0x06
	PoolCountOffset = 0x08
	PoolOffset      = 0x0A

	// HeaderSize covers magic through constant_pool_count.
	HeaderSize = PoolOffset
)

// Field widths in bytes.
const (
	TagSize   = 1
	IndexSize = 2
	U1Size    = 1
	U2Size    = 2
	U4Size    = 4
	U8Size    = 8
)

// Payload sizes (excluding the tag byte) of the fixed-width constants.
const (
	SingleIndexPayload  = IndexSize          // Class, String, MethodType, Module, Package
	IndexPairPayload    = 2 * IndexSize      // member refs, NameAndType, (Invoke)Dynamic
	MethodHandlePayload = U1Size + IndexSize // reference_kind + reference_index
	NarrowNumberPayload = U4Size             // Integer, Float
	WideNumberPayload   = U8Size             // Long, Double
)
