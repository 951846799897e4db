package tree

import (
	"github.com/andastra/gff/errs"
	"github.com/andastra/gff/format"
)

// MaxResRefLength is the maximum byte length of a ResRef. The wire format
// stores the length in a single byte, but the format caps it at 16.
const MaxResRefLength = 16

// ResRef is a short textual resource identifier, at most 16 ASCII bytes.
// Matching against the resource archives is case-insensitive by convention,
// but the codec stores it byte-exact.
type ResRef string

// Valid reports whether the ResRef fits the 16-byte wire limit.
func (r ResRef) Valid() bool {
	return len(r) <= MaxResRefLength
}

// Gender selects the grammatical-gender variant of a localized substring.
type Gender uint32

const (
	GenderMasculine Gender = 0 // masculine or neutral
	GenderFeminine  Gender = 1
)

// LocSubstring is one (language, gender) text variant of a LocString.
type LocSubstring struct {
	Language uint32
	Gender   Gender
	Text     string
}

// ID returns the packed variant id stored on the wire:
// id = language*2 + gender, gender in the least significant bit.
func (s LocSubstring) ID() uint32 {
	return s.Language*2 + uint32(s.Gender)
}

// SplitLocStringID unpacks a wire variant id into language and gender.
func SplitLocStringID(id uint32) (language uint32, gender Gender) {
	return id / 2, Gender(id % 2)
}

// LocString is a localized string: an optional external string-table
// reference plus zero or more per-(language, gender) text variants.
type LocString struct {
	// Ref is the string-table reference. A nil Ref means the string carries
	// no reference; on the wire this is the 0xFFFFFFFF sentinel.
	Ref *uint32
	// Substrings holds the text variants in wire order.
	Substrings []LocSubstring
}

// StringRef returns a LocString referencing entry ref of the external table.
func StringRef(ref uint32) LocString {
	return LocString{Ref: &ref}
}

// First returns the text of the first substring, or def when the LocString
// has no substrings. Most resources store a single English variant, so this
// is the common read path.
func (ls LocString) First(def string) string {
	if len(ls.Substrings) == 0 {
		return def
	}

	return ls.Substrings[0].Text
}

// Text returns the variant for the given language and gender, or def when
// no such variant exists.
func (ls LocString) Text(language uint32, gender Gender, def string) string {
	for _, s := range ls.Substrings {
		if s.Language == language && s.Gender == gender {
			return s.Text
		}
	}

	return def
}

// SetText inserts or overwrites the variant for the given language and gender.
func (ls *LocString) SetText(language uint32, gender Gender, text string) {
	for i, s := range ls.Substrings {
		if s.Language == language && s.Gender == gender {
			ls.Substrings[i].Text = text
			return
		}
	}

	ls.Substrings = append(ls.Substrings, LocSubstring{Language: language, Gender: gender, Text: text})
}

// Vector3 is a three-component float32 vector.
type Vector3 struct {
	X, Y, Z float32
}

// Vector4 is a four-component float32 vector in x, y, z, w quaternion order.
type Vector4 struct {
	X, Y, Z, W float32
}

// CheckValue verifies that value has the Go shape required by the field
// type tag. The tag fully determines the expected shape; nothing is
// inferred from the value itself.
func CheckValue(typ format.FieldType, value any) error {
	ok := false
	switch typ {
	case format.TypeByte:
		_, ok = value.(uint8)
	case format.TypeChar:
		_, ok = value.(int8)
	case format.TypeWord:
		_, ok = value.(uint16)
	case format.TypeShort:
		_, ok = value.(int16)
	case format.TypeDWord:
		_, ok = value.(uint32)
	case format.TypeInt:
		_, ok = value.(int32)
	case format.TypeDWord64:
		_, ok = value.(uint64)
	case format.TypeInt64:
		_, ok = value.(int64)
	case format.TypeFloat:
		_, ok = value.(float32)
	case format.TypeDouble:
		_, ok = value.(float64)
	case format.TypeString:
		_, ok = value.(string)
	case format.TypeResRef:
		r, isResRef := value.(ResRef)
		if isResRef && !r.Valid() {
			return errs.ValidationErrorf("/", errs.ErrResRefTooLong,
				"resref %q is %d bytes, max %d", string(r), len(r), MaxResRefLength)
		}
		ok = isResRef
	case format.TypeLocString:
		_, ok = value.(LocString)
	case format.TypeBinary:
		_, ok = value.([]byte)
	case format.TypeStruct:
		s, isStruct := value.(*Struct)
		ok = isStruct && s != nil
	case format.TypeList:
		l, isList := value.(*List)
		ok = isList && l != nil
	case format.TypeVector4:
		_, ok = value.(Vector4)
	case format.TypeVector3:
		_, ok = value.(Vector3)
	default:
		return errs.ValidationErrorf("/", errs.ErrInvalidFieldType, "field type id %d", uint32(typ))
	}

	if !ok {
		return errs.ValidationErrorf("/", errs.ErrTypeMismatch, "value %T does not fit field type %s", value, typ)
	}

	return nil
}
