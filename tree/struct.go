package tree

import (
	"github.com/andastra/gff/errs"
	"github.com/andastra/gff/format"
)

// Field is one labeled, typed value of a Struct.
type Field struct {
	Label string
	Type  format.FieldType
	Value any
}

// Struct is an insertion-ordered mapping from field label to a typed value,
// plus a kind discriminant that only the semantic layer interprets.
//
// A Struct is owned by its parent (a struct field, a list entry, or the
// document root); sharing one *Struct between two parents creates a graph
// the encoder rejects.
//
// Not safe for concurrent mutation. Concurrent readers are fine as long as
// no writer is active.
type Struct struct {
	id     uint32
	order  []string
	fields map[string]Field
}

// NewStruct creates an empty struct with the given kind discriminant.
func NewStruct(id uint32) *Struct {
	return &Struct{
		id:     id,
		fields: make(map[string]Field),
	}
}

// ID returns the struct-kind discriminant. The codec carries it opaquely.
func (s *Struct) ID() uint32 {
	return s.id
}

// SetID sets the struct-kind discriminant.
func (s *Struct) SetID(id uint32) {
	s.id = id
}

// Len returns the number of fields.
func (s *Struct) Len() int {
	return len(s.order)
}

// FieldNames returns the field labels in insertion order.
func (s *Struct) FieldNames() []string {
	names := make([]string, len(s.order))
	copy(names, s.order)

	return names
}

// Set inserts or overwrites the field with the given label. Overwriting
// keeps the label's position in the insertion order.
//
// Returns a *errs.ValidationError when the label exceeds 16 bytes, the type
// tag is unknown, or the value's Go shape does not match the tag.
func (s *Struct) Set(label string, typ format.FieldType, value any) error {
	if len(label) > 16 {
		return errs.ValidationErrorf("/"+label, errs.ErrLabelTooLong,
			"label is %d bytes, max 16", len(label))
	}
	if err := CheckValue(typ, value); err != nil {
		return err
	}

	if s.fields == nil {
		s.fields = make(map[string]Field)
	}
	if _, exists := s.fields[label]; !exists {
		s.order = append(s.order, label)
	}
	s.fields[label] = Field{Label: label, Type: typ, Value: value}

	return nil
}

// MustSet is Set for programmatically built trees where the arguments are
// known to be valid. Panics on validation failure.
func (s *Struct) MustSet(label string, typ format.FieldType, value any) *Struct {
	if err := s.Set(label, typ, value); err != nil {
		panic(err)
	}

	return s
}

// Field returns the field stored under label, reporting whether it exists.
// This is the explicit-optional lookup; the typed getters below layer the
// lenient default-fallback contract on top of it.
func (s *Struct) Field(label string) (Field, bool) {
	f, ok := s.fields[label]
	return f, ok
}

// Delete removes the field with the given label, reporting whether it existed.
func (s *Struct) Delete(label string) bool {
	if _, ok := s.fields[label]; !ok {
		return false
	}

	delete(s.fields, label)
	for i, name := range s.order {
		if name == label {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	return true
}

// get returns the value under label when it exists and carries the expected
// type tag. Absent fields and type mismatches both report false: real
// content omits optional fields, so lookups never fail hard.
func (s *Struct) get(label string, typ format.FieldType) (any, bool) {
	f, ok := s.fields[label]
	if !ok || f.Type != typ {
		return nil, false
	}

	return f.Value, true
}

// Byte returns the Byte field under label, or def when absent or mismatched.
func (s *Struct) Byte(label string, def uint8) uint8 {
	if v, ok := s.get(label, format.TypeByte); ok {
		return v.(uint8)
	}

	return def
}

// Char returns the Char field under label, or def when absent or mismatched.
func (s *Struct) Char(label string, def int8) int8 {
	if v, ok := s.get(label, format.TypeChar); ok {
		return v.(int8)
	}

	return def
}

// Word returns the Word field under label, or def when absent or mismatched.
func (s *Struct) Word(label string, def uint16) uint16 {
	if v, ok := s.get(label, format.TypeWord); ok {
		return v.(uint16)
	}

	return def
}

// Short returns the Short field under label, or def when absent or mismatched.
func (s *Struct) Short(label string, def int16) int16 {
	if v, ok := s.get(label, format.TypeShort); ok {
		return v.(int16)
	}

	return def
}

// DWord returns the DWord field under label, or def when absent or mismatched.
func (s *Struct) DWord(label string, def uint32) uint32 {
	if v, ok := s.get(label, format.TypeDWord); ok {
		return v.(uint32)
	}

	return def
}

// Int returns the Int field under label, or def when absent or mismatched.
func (s *Struct) Int(label string, def int32) int32 {
	if v, ok := s.get(label, format.TypeInt); ok {
		return v.(int32)
	}

	return def
}

// DWord64 returns the DWord64 field under label, or def when absent or mismatched.
func (s *Struct) DWord64(label string, def uint64) uint64 {
	if v, ok := s.get(label, format.TypeDWord64); ok {
		return v.(uint64)
	}

	return def
}

// Int64 returns the Int64 field under label, or def when absent or mismatched.
func (s *Struct) Int64(label string, def int64) int64 {
	if v, ok := s.get(label, format.TypeInt64); ok {
		return v.(int64)
	}

	return def
}

// Float returns the Float field under label, or def when absent or mismatched.
func (s *Struct) Float(label string, def float32) float32 {
	if v, ok := s.get(label, format.TypeFloat); ok {
		return v.(float32)
	}

	return def
}

// Double returns the Double field under label, or def when absent or mismatched.
func (s *Struct) Double(label string, def float64) float64 {
	if v, ok := s.get(label, format.TypeDouble); ok {
		return v.(float64)
	}

	return def
}

// String returns the String field under label, or def when absent or mismatched.
func (s *Struct) String(label string, def string) string {
	if v, ok := s.get(label, format.TypeString); ok {
		return v.(string)
	}

	return def
}

// ResRef returns the ResRef field under label, or def when absent or mismatched.
func (s *Struct) ResRef(label string, def ResRef) ResRef {
	if v, ok := s.get(label, format.TypeResRef); ok {
		return v.(ResRef)
	}

	return def
}

// LocString returns the LocString field under label, or the zero LocString
// when absent or mismatched.
func (s *Struct) LocString(label string) LocString {
	if v, ok := s.get(label, format.TypeLocString); ok {
		return v.(LocString)
	}

	return LocString{}
}

// Binary returns the Binary field under label, or nil when absent or mismatched.
func (s *Struct) Binary(label string) []byte {
	if v, ok := s.get(label, format.TypeBinary); ok {
		return v.([]byte)
	}

	return nil
}

// Struct returns the nested struct under label, or nil when absent or mismatched.
func (s *Struct) Struct(label string) *Struct {
	if v, ok := s.get(label, format.TypeStruct); ok {
		return v.(*Struct)
	}

	return nil
}

// List returns the list under label, or nil when absent or mismatched.
func (s *Struct) List(label string) *List {
	if v, ok := s.get(label, format.TypeList); ok {
		return v.(*List)
	}

	return nil
}

// Vector3 returns the Vector3 field under label, or def when absent or mismatched.
func (s *Struct) Vector3(label string, def Vector3) Vector3 {
	if v, ok := s.get(label, format.TypeVector3); ok {
		return v.(Vector3)
	}

	return def
}

// Vector4 returns the Vector4 field under label, or def when absent or mismatched.
func (s *Struct) Vector4(label string, def Vector4) Vector4 {
	if v, ok := s.get(label, format.TypeVector4); ok {
		return v.(Vector4)
	}

	return def
}
