package tree

import (
	"bytes"

	"github.com/andastra/gff/format"
)

// Equal reports deep structural equality of two documents. Field insertion
// order is ignored (it is a serialization artifact, like label-array and
// field-array order in the wire form); list entry order is significant.
func Equal(a, b *Document) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.ContentType != b.ContentType || a.Version != b.Version {
		return false
	}

	return a.Root.Equal(b.Root)
}

// Equal reports deep structural equality of two structs, ignoring field
// insertion order.
func (s *Struct) Equal(other *Struct) bool {
	if s == nil || other == nil {
		return s == other
	}
	if s.id != other.id || len(s.fields) != len(other.fields) {
		return false
	}

	for label, f := range s.fields {
		g, ok := other.fields[label]
		if !ok || f.Type != g.Type || !valueEqual(f.Type, f.Value, g.Value) {
			return false
		}
	}

	return true
}

// Equal reports deep equality of two lists. Order is significant.
func (l *List) Equal(other *List) bool {
	if l == nil || other == nil {
		return l == other
	}
	if len(l.elems) != len(other.elems) {
		return false
	}

	for i, s := range l.elems {
		if !s.Equal(other.elems[i]) {
			return false
		}
	}

	return true
}

// FieldEqual reports whether two fields agree on label, type and value.
func FieldEqual(a, b Field) bool {
	return a.Label == b.Label && a.Type == b.Type && valueEqual(a.Type, a.Value, b.Value)
}

func valueEqual(typ format.FieldType, a, b any) bool {
	switch typ {
	case format.TypeBinary:
		return bytes.Equal(a.([]byte), b.([]byte))
	case format.TypeLocString:
		return locStringEqual(a.(LocString), b.(LocString))
	case format.TypeStruct:
		return a.(*Struct).Equal(b.(*Struct))
	case format.TypeList:
		return a.(*List).Equal(b.(*List))
	default:
		return a == b
	}
}

func locStringEqual(a, b LocString) bool {
	switch {
	case (a.Ref == nil) != (b.Ref == nil):
		return false
	case a.Ref != nil && *a.Ref != *b.Ref:
		return false
	case len(a.Substrings) != len(b.Substrings):
		return false
	}

	for i, s := range a.Substrings {
		if s != b.Substrings[i] {
			return false
		}
	}

	return true
}
