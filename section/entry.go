package section

import (
	"github.com/andastra/gff/endian"
	"github.com/andastra/gff/errs"
	"github.com/andastra/gff/format"
)

// StructEntry is one 12-byte record of the struct table.
type StructEntry struct {
	// ID is the struct-kind discriminant, meaningful only to the semantic layer.
	ID uint32
	// DataOrOffset is a direct field-array index when FieldCount is 1, a
	// byte offset into the field-indices arena when FieldCount is greater
	// than 1, and unused when FieldCount is 0.
	DataOrOffset uint32
	// FieldCount is the number of fields the struct carries.
	FieldCount uint32
}

// ParseStructEntry parses one struct table entry.
//
// Parameters:
//   - data: Byte slice containing the entry (must be at least 12 bytes)
//   - engine: Endian engine for byte order
func ParseStructEntry(data []byte, engine endian.EndianEngine) (StructEntry, error) {
	if len(data) < StructEntrySize {
		return StructEntry{}, errs.FormatErrorf(0, errs.ErrTruncatedBuffer,
			"struct entry needs %d bytes, have %d", StructEntrySize, len(data))
	}

	return StructEntry{
		ID:           engine.Uint32(data[0:4]),
		DataOrOffset: engine.Uint32(data[4:8]),
		FieldCount:   engine.Uint32(data[8:12]),
	}, nil
}

// AppendTo appends the entry's 12-byte wire form to buf.
func (e StructEntry) AppendTo(buf []byte, engine endian.EndianEngine) []byte {
	buf = engine.AppendUint32(buf, e.ID)
	buf = engine.AppendUint32(buf, e.DataOrOffset)
	buf = engine.AppendUint32(buf, e.FieldCount)

	return buf
}

// FieldEntry is one 12-byte record of the field table.
type FieldEntry struct {
	// Type is the field type tag, deciding how DataOrOffset is interpreted.
	Type format.FieldType
	// LabelIndex indexes the label array.
	LabelIndex uint32
	// DataOrOffset holds the literal value for inline types, a field-data
	// arena offset for arena types, a struct-array index for TypeStruct,
	// or a list-indices arena offset for TypeList.
	DataOrOffset uint32
}

// ParseFieldEntry parses one field table entry. The type tag is validated
// against the 18 defined values; unknown tags are rejected, never guessed.
func ParseFieldEntry(data []byte, engine endian.EndianEngine) (FieldEntry, error) {
	if len(data) < FieldEntrySize {
		return FieldEntry{}, errs.FormatErrorf(0, errs.ErrTruncatedBuffer,
			"field entry needs %d bytes, have %d", FieldEntrySize, len(data))
	}

	typ := format.FieldType(engine.Uint32(data[0:4]))
	if !typ.Valid() {
		return FieldEntry{}, errs.FormatErrorf(0, errs.ErrInvalidFieldType, "field type id %d", uint32(typ))
	}

	return FieldEntry{
		Type:         typ,
		LabelIndex:   engine.Uint32(data[4:8]),
		DataOrOffset: engine.Uint32(data[8:12]),
	}, nil
}

// AppendTo appends the entry's 12-byte wire form to buf.
func (e FieldEntry) AppendTo(buf []byte, engine endian.EndianEngine) []byte {
	buf = engine.AppendUint32(buf, uint32(e.Type))
	buf = engine.AppendUint32(buf, e.LabelIndex)
	buf = engine.AppendUint32(buf, e.DataOrOffset)

	return buf
}
