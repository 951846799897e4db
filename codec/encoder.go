package codec

import (
	"fmt"
	"math"

	"github.com/andastra/gff/encoding"
	"github.com/andastra/gff/endian"
	"github.com/andastra/gff/errs"
	"github.com/andastra/gff/format"
	"github.com/andastra/gff/internal/options"
	"github.com/andastra/gff/internal/pool"
	"github.com/andastra/gff/section"
	"github.com/andastra/gff/tree"
)

// Encoder serializes a tree.Document into the GFF wire format. The output
// decodes back to a deep-equal tree; traversal order and label insertion
// order are this encoder's own choices and carry no meaning.
//
// Note: The Encoder is NOT thread-safe. Each encoder instance should be used by a single goroutine at a time.
//
// Note: The Encoder is NOT reusable. After calling Encode, a new encoder must be created for further encoding.
type Encoder struct {
	engine   endian.EndianEngine
	maxDepth int

	labels     []string
	labelIndex map[string]uint32

	structEntries []section.StructEntry
	fieldEntries  []section.FieldEntry
	// structFields[i] holds the field-array indices of struct i, used by
	// the place pass to build the field-indices arena for structs with
	// more than one field.
	structFields [][]uint32

	fieldData   *pool.ByteBuffer
	listIndices *pool.ByteBuffer
}

// NewEncoder creates an Encoder.
func NewEncoder(opts ...EncoderOption) (*Encoder, error) {
	e := &Encoder{
		engine:     endian.GetLittleEndianEngine(),
		maxDepth:   DefaultMaxDepth,
		labelIndex: make(map[string]uint32),
	}

	if err := options.Apply(e, opts...); err != nil {
		return nil, err
	}

	return e, nil
}

// Encode serializes doc. The document is validated in full before any
// output is assembled; an invalid document yields a *errs.ValidationError
// and no bytes.
func (e *Encoder) Encode(doc *tree.Document) ([]byte, error) {
	if err := e.validate(doc); err != nil {
		return nil, err
	}

	e.fieldData = pool.GetArenaBuffer()
	e.listIndices = pool.GetArenaBuffer()
	defer func() {
		pool.PutArenaBuffer(e.fieldData)
		pool.PutArenaBuffer(e.listIndices)
	}()

	if _, err := e.flattenStruct(doc.Root); err != nil {
		return nil, err
	}

	return e.place(doc), nil
}

// validate walks the document and rejects anything the wire format cannot
// represent: cyclic struct/list graphs, over-length labels and ResRefs,
// values whose shape does not match their declared type, and nesting
// beyond the depth bound. Runs before any output is produced.
func (e *Encoder) validate(doc *tree.Document) error {
	if doc == nil || doc.Root == nil {
		return errs.NewValidationError("/", errs.ErrNilDocument, "document and root must be non-nil")
	}
	if len(doc.ContentType) > 4 {
		return errs.ValidationErrorf("/", errs.ErrInvalidSignature,
			"content-kind tag %q exceeds 4 characters", doc.ContentType)
	}
	// Only the exact current version is accepted, empty string included:
	// anything else would silently round-trip to a different document.
	if doc.Version != section.Version {
		return errs.ValidationErrorf("/", errs.ErrUnsupportedVersion,
			"version %q, this encoder writes %q", doc.Version, section.Version)
	}

	onPath := make(map[*tree.Struct]bool)

	return e.validateStruct(doc.Root, "/", 1, onPath)
}

func (e *Encoder) validateStruct(s *tree.Struct, path string, depth int, onPath map[*tree.Struct]bool) error {
	if depth > e.maxDepth {
		return errs.ValidationErrorf(path, errs.ErrMaxDepthExceeded,
			"struct nesting exceeds %d levels", e.maxDepth)
	}
	if onPath[s] {
		return errs.NewValidationError(path, errs.ErrCyclicStructure,
			"struct transitively contains itself")
	}

	onPath[s] = true
	defer delete(onPath, s)

	for _, label := range s.FieldNames() {
		f, _ := s.Field(label)
		fieldPath := path + label

		if len(label) > section.MaxLabelLength {
			return errs.ValidationErrorf(fieldPath, errs.ErrLabelTooLong,
				"label is %d bytes, max %d", len(label), section.MaxLabelLength)
		}
		if err := tree.CheckValue(f.Type, f.Value); err != nil {
			return rebaseValidationError(err, fieldPath)
		}

		switch f.Type {
		case format.TypeStruct:
			if err := e.validateStruct(f.Value.(*tree.Struct), fieldPath+"/", depth+1, onPath); err != nil {
				return err
			}
		case format.TypeList:
			for i, child := range f.Value.(*tree.List).Structs() {
				if child == nil {
					return errs.ValidationErrorf(fieldPath, errs.ErrTypeMismatch,
						"list entry %d is nil", i)
				}
				childPath := fmt.Sprintf("%s[%d]/", fieldPath, i)
				if err := e.validateStruct(child, childPath, depth+1, onPath); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// flattenStruct assigns s the next struct-array index and appends its field
// entries in insertion order, recursing into nested structs and lists as
// they are encountered. Arena payloads are appended as each field is
// visited, recording their section-relative offsets.
func (e *Encoder) flattenStruct(s *tree.Struct) (uint32, error) {
	idx := uint32(len(e.structEntries))
	e.structEntries = append(e.structEntries, section.StructEntry{ID: s.ID()})
	e.structFields = append(e.structFields, nil)

	var fieldIdxs []uint32
	for _, label := range s.FieldNames() {
		f, _ := s.Field(label)

		slot, err := e.encodeValue(f)
		if err != nil {
			return 0, err
		}

		fieldIdx := uint32(len(e.fieldEntries))
		e.fieldEntries = append(e.fieldEntries, section.FieldEntry{
			Type:         f.Type,
			LabelIndex:   e.internLabel(label),
			DataOrOffset: slot,
		})
		fieldIdxs = append(fieldIdxs, fieldIdx)
	}

	e.structFields[idx] = fieldIdxs
	e.structEntries[idx].FieldCount = uint32(len(fieldIdxs))
	if len(fieldIdxs) == 1 {
		// Single-field structs address their field directly.
		e.structEntries[idx].DataOrOffset = fieldIdxs[0]
	}
	// Structs with more than one field get a field-indices run allocated
	// by the place pass, once all runs are known.

	return idx, nil
}

// encodeValue produces the field entry's data-or-offset slot: the literal
// value for inline types, a field-data arena offset for out-of-line types,
// a struct-array index for nested structs, or a list-indices arena offset
// for lists.
func (e *Encoder) encodeValue(f tree.Field) (uint32, error) {
	switch f.Type {
	case format.TypeByte:
		return uint32(f.Value.(uint8)), nil
	case format.TypeChar:
		return uint32(uint8(f.Value.(int8))), nil
	case format.TypeWord:
		return uint32(f.Value.(uint16)), nil
	case format.TypeShort:
		return uint32(uint16(f.Value.(int16))), nil
	case format.TypeDWord:
		return f.Value.(uint32), nil
	case format.TypeInt:
		return uint32(f.Value.(int32)), nil
	case format.TypeFloat:
		return math.Float32bits(f.Value.(float32)), nil

	case format.TypeDWord64:
		off := uint32(e.fieldData.Len())
		e.fieldData.B = encoding.AppendUint64(e.fieldData.B, e.engine, f.Value.(uint64))
		return off, nil
	case format.TypeInt64:
		off := uint32(e.fieldData.Len())
		e.fieldData.B = encoding.AppendInt64(e.fieldData.B, e.engine, f.Value.(int64))
		return off, nil
	case format.TypeDouble:
		off := uint32(e.fieldData.Len())
		e.fieldData.B = encoding.AppendDouble(e.fieldData.B, e.engine, f.Value.(float64))
		return off, nil
	case format.TypeString:
		off := uint32(e.fieldData.Len())
		e.fieldData.B = encoding.AppendString(e.fieldData.B, e.engine, f.Value.(string))
		return off, nil
	case format.TypeResRef:
		off := uint32(e.fieldData.Len())
		buf, err := encoding.AppendResRef(e.fieldData.B, f.Value.(tree.ResRef))
		if err != nil {
			return 0, err
		}
		e.fieldData.B = buf
		return off, nil
	case format.TypeLocString:
		off := uint32(e.fieldData.Len())
		e.fieldData.B = encoding.AppendLocString(e.fieldData.B, e.engine, f.Value.(tree.LocString))
		return off, nil
	case format.TypeBinary:
		off := uint32(e.fieldData.Len())
		e.fieldData.B = encoding.AppendBinary(e.fieldData.B, e.engine, f.Value.([]byte))
		return off, nil
	case format.TypeVector3:
		off := uint32(e.fieldData.Len())
		e.fieldData.B = encoding.AppendVector3(e.fieldData.B, e.engine, f.Value.(tree.Vector3))
		return off, nil
	case format.TypeVector4:
		off := uint32(e.fieldData.Len())
		e.fieldData.B = encoding.AppendVector4(e.fieldData.B, e.engine, f.Value.(tree.Vector4))
		return off, nil

	case format.TypeStruct:
		return e.flattenStruct(f.Value.(*tree.Struct))

	case format.TypeList:
		l := f.Value.(*tree.List)
		childIdxs := make([]uint32, 0, l.Len())
		for _, child := range l.Structs() {
			childIdx, err := e.flattenStruct(child)
			if err != nil {
				return 0, err
			}
			childIdxs = append(childIdxs, childIdx)
		}

		off := uint32(e.listIndices.Len())
		e.listIndices.B = encoding.AppendListIndices(e.listIndices.B, e.engine, childIdxs)
		return off, nil
	}

	// Unreachable: validate already rejected unknown tags.
	return 0, errs.ValidationErrorf("/", errs.ErrInvalidFieldType, "field type id %d", uint32(f.Type))
}

// internLabel returns the label-array index for label, assigning the next
// index on first sight. Labels are deduplicated document-wide.
func (e *Encoder) internLabel(label string) uint32 {
	if idx, ok := e.labelIndex[label]; ok {
		return idx
	}

	idx := uint32(len(e.labels))
	e.labels = append(e.labels, label)
	e.labelIndex[label] = idx

	return idx
}

// place lays out the final buffer: header, label array, struct array, field
// array, field-data arena, field-indices arena, list-indices arena. Header
// offsets are file-absolute; everything stored inside entries stays
// section-relative.
func (e *Encoder) place(doc *tree.Document) []byte {
	// Allocate field-indices runs for structs with more than one field.
	var indicesElems uint32
	for i := range e.structEntries {
		if e.structEntries[i].FieldCount > 1 {
			e.structEntries[i].DataOrOffset = indicesElems * 4
			indicesElems += e.structEntries[i].FieldCount
		}
	}

	header := section.NewHeader(doc.ContentType)
	header.StructOffset = section.FileOffset(section.HeaderSize + len(e.labels)*section.LabelSize)
	header.StructCount = uint32(len(e.structEntries))
	header.FieldOffset = header.StructOffset + section.FileOffset(len(e.structEntries)*section.StructEntrySize)
	header.FieldCount = uint32(len(e.fieldEntries))
	header.LabelOffset = section.HeaderSize
	header.LabelCount = uint32(len(e.labels))
	header.FieldDataOffset = header.FieldOffset + section.FileOffset(len(e.fieldEntries)*section.FieldEntrySize)
	header.FieldDataSize = uint32(e.fieldData.Len())
	header.FieldIndicesOffset = header.FieldDataOffset + section.FileOffset(e.fieldData.Len())
	header.FieldIndicesCount = indicesElems
	header.ListIndicesOffset = header.FieldIndicesOffset + section.FileOffset(indicesElems*4)
	header.ListIndicesSize = uint32(e.listIndices.Len())

	total := int(header.ListIndicesOffset) + e.listIndices.Len()
	out := make([]byte, 0, total)

	out = append(out, header.Bytes(e.engine)...)

	for _, label := range e.labels {
		// Over-length labels were rejected by validate.
		out, _ = section.AppendLabel(out, label)
	}
	for _, entry := range e.structEntries {
		out = entry.AppendTo(out, e.engine)
	}
	for _, entry := range e.fieldEntries {
		out = entry.AppendTo(out, e.engine)
	}

	out = append(out, e.fieldData.Bytes()...)

	for i, entry := range e.structEntries {
		if entry.FieldCount > 1 {
			for _, fieldIdx := range e.structFields[i] {
				out = e.engine.AppendUint32(out, fieldIdx)
			}
		}
	}

	out = append(out, e.listIndices.Bytes()...)

	return out
}

// rebaseValidationError replaces the placeholder path tree.CheckValue
// reports with the real tree path of the offending field.
func rebaseValidationError(err error, path string) error {
	if ve, ok := err.(*errs.ValidationError); ok {
		ve.Path = path
	}

	return err
}

// Encode serializes doc into the GFF wire format. Shorthand for NewEncoder
// followed by Encode.
func Encode(doc *tree.Document, opts ...EncoderOption) ([]byte, error) {
	e, err := NewEncoder(opts...)
	if err != nil {
		return nil, err
	}

	return e.Encode(doc)
}
