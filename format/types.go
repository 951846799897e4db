// Package format defines the GFF field type tags and their fixed
// wire-layout classification.
package format

// FieldType is the 32-bit type tag stored in every field entry. The tag
// alone decides how the entry's data-or-offset slot is interpreted; the
// classification is fixed by the format and never inferred from value size.
type FieldType uint32

const (
	TypeByte      FieldType = 0  // TypeByte is an unsigned 8-bit integer, stored inline.
	TypeChar      FieldType = 1  // TypeChar is a signed 8-bit integer, stored inline.
	TypeWord      FieldType = 2  // TypeWord is an unsigned 16-bit integer, stored inline.
	TypeShort     FieldType = 3  // TypeShort is a signed 16-bit integer, stored inline.
	TypeDWord     FieldType = 4  // TypeDWord is an unsigned 32-bit integer, stored inline.
	TypeInt       FieldType = 5  // TypeInt is a signed 32-bit integer, stored inline.
	TypeDWord64   FieldType = 6  // TypeDWord64 is an unsigned 64-bit integer, stored in the field-data arena.
	TypeInt64     FieldType = 7  // TypeInt64 is a signed 64-bit integer, stored in the field-data arena.
	TypeFloat     FieldType = 8  // TypeFloat is an IEEE-754 float32, stored inline as its bit pattern.
	TypeDouble    FieldType = 9  // TypeDouble is an IEEE-754 float64, stored in the field-data arena.
	TypeString    FieldType = 10 // TypeString is a uint32-length-prefixed byte string in the field-data arena.
	TypeResRef    FieldType = 11 // TypeResRef is a uint8-length-prefixed resource name (max 16 bytes) in the field-data arena.
	TypeLocString FieldType = 12 // TypeLocString is a localized string block in the field-data arena.
	TypeBinary    FieldType = 13 // TypeBinary is a uint32-length-prefixed opaque blob in the field-data arena.
	TypeStruct    FieldType = 14 // TypeStruct is a nested struct; the slot holds a struct-array index.
	TypeList      FieldType = 15 // TypeList is a nested list; the slot holds a list-indices arena offset.
	TypeVector4   FieldType = 16 // TypeVector4 is four float32 components (x,y,z,w quaternion) in the field-data arena.
	TypeVector3   FieldType = 17 // TypeVector3 is three float32 components in the field-data arena.

	// typeCount is the number of defined tags; anything >= typeCount is rejected.
	typeCount = 18
)

// Valid reports whether t is one of the 18 defined type tags.
func (t FieldType) Valid() bool {
	return t < typeCount
}

// StoredInline reports whether a value of type t lives entirely in the
// field entry's 4-byte slot. Everything else stores an offset or index in
// that slot: arena offsets for out-of-line payloads, a struct-array index
// for TypeStruct, and a list-indices arena offset for TypeList.
func (t FieldType) StoredInline() bool {
	switch t {
	case TypeByte, TypeChar, TypeWord, TypeShort, TypeDWord, TypeInt, TypeFloat:
		return true
	default:
		return false
	}
}

// InFieldDataArena reports whether a value of type t stores its payload in
// the field-data byte arena.
func (t FieldType) InFieldDataArena() bool {
	switch t {
	case TypeDWord64, TypeInt64, TypeDouble, TypeString, TypeResRef,
		TypeLocString, TypeBinary, TypeVector4, TypeVector3:
		return true
	default:
		return false
	}
}

func (t FieldType) String() string {
	switch t {
	case TypeByte:
		return "Byte"
	case TypeChar:
		return "Char"
	case TypeWord:
		return "Word"
	case TypeShort:
		return "Short"
	case TypeDWord:
		return "DWord"
	case TypeInt:
		return "Int"
	case TypeDWord64:
		return "DWord64"
	case TypeInt64:
		return "Int64"
	case TypeFloat:
		return "Float"
	case TypeDouble:
		return "Double"
	case TypeString:
		return "String"
	case TypeResRef:
		return "ResRef"
	case TypeLocString:
		return "LocString"
	case TypeBinary:
		return "Binary"
	case TypeStruct:
		return "Struct"
	case TypeList:
		return "List"
	case TypeVector4:
		return "Vector4"
	case TypeVector3:
		return "Vector3"
	default:
		return "Unknown"
	}
}
