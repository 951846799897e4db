// Package codec converts between the GFF wire format and the tree data
// model. Decoding and encoding are pure, synchronous transforms: any number
// of calls may run concurrently as long as each works on its own buffer
// and document.
package codec

import (
	"errors"
	"math"

	"github.com/andastra/gff/encoding"
	"github.com/andastra/gff/endian"
	"github.com/andastra/gff/errs"
	"github.com/andastra/gff/format"
	"github.com/andastra/gff/internal/options"
	"github.com/andastra/gff/section"
	"github.com/andastra/gff/tree"
)

// Decoder materializes a GFF byte buffer into a tree.Document. The buffer
// is accessed randomly by offset, so it must be complete and in memory.
//
// Note: The Decoder is NOT thread-safe. Each decoder instance should be used by a single goroutine at a time.
//
// Note: The Decoder is NOT reusable. After calling Decode, a new decoder must be created for further decoding.
type Decoder struct {
	data   []byte
	engine endian.EndianEngine
	header section.Header

	labels  []string
	structs []section.StructEntry
	fields  []section.FieldEntry

	fieldData    []byte
	fieldIndices []byte
	listIndices  []byte

	maxDepth  int
	maxNodes  int
	nodeCount int
	onPath    []bool
}

// NewDecoder creates a Decoder for the given buffer. The header is parsed
// and bounds-checked immediately; the tables and tree are materialized by
// Decode.
//
// Returns a *errs.FormatError when the header is malformed or any section
// it declares falls outside the buffer.
func NewDecoder(data []byte, opts ...DecoderOption) (*Decoder, error) {
	d := &Decoder{
		data:     data,
		engine:   endian.GetLittleEndianEngine(),
		maxDepth: DefaultMaxDepth,
		maxNodes: DefaultMaxNodes,
	}

	if err := options.Apply(d, opts...); err != nil {
		return nil, err
	}

	header, err := section.ParseHeader(data, d.engine)
	if err != nil {
		return nil, err
	}
	if err := header.CheckBounds(len(data)); err != nil {
		return nil, err
	}
	d.header = header

	return d, nil
}

// Header returns the parsed file header.
func (d *Decoder) Header() section.Header {
	return d.header
}

// Decode materializes the document tree, starting from struct-array index 0.
//
// Malformed input of any kind (out-of-range offset or index, unknown field
// type, truncated arena payload, duplicate label, cyclic struct reference,
// nesting beyond the depth bound) is rejected with a *errs.FormatError
// carrying the file-absolute byte offset; nothing is silently patched or
// defaulted.
func (d *Decoder) Decode() (*tree.Document, error) {
	if err := d.parseTables(); err != nil {
		return nil, err
	}

	if len(d.structs) == 0 {
		return nil, errs.NewFormatError(int(d.header.StructOffset), errs.ErrNoRootStruct, "struct table is empty")
	}

	d.onPath = make([]bool, len(d.structs))

	root, err := d.materializeStruct(0, 1)
	if err != nil {
		return nil, err
	}

	return &tree.Document{
		ContentType: d.header.ContentType,
		Version:     d.header.Version,
		Root:        root,
	}, nil
}

// parseTables reads the label, struct and field tables and slices out the
// three arenas. Section bounds were already verified against the buffer by
// NewDecoder.
func (d *Decoder) parseTables() error {
	h := &d.header

	d.labels = make([]string, h.LabelCount)
	for i := uint32(0); i < h.LabelCount; i++ {
		off := int(h.LabelOffset) + int(i)*section.LabelSize
		label, err := section.ParseLabel(d.data[off:])
		if err != nil {
			return shiftFormatError(err, off)
		}
		d.labels[i] = label
	}

	d.structs = make([]section.StructEntry, h.StructCount)
	for i := uint32(0); i < h.StructCount; i++ {
		off := int(h.StructOffset) + int(i)*section.StructEntrySize
		entry, err := section.ParseStructEntry(d.data[off:], d.engine)
		if err != nil {
			return shiftFormatError(err, off)
		}
		d.structs[i] = entry
	}

	d.fields = make([]section.FieldEntry, h.FieldCount)
	for i := uint32(0); i < h.FieldCount; i++ {
		off := int(h.FieldOffset) + int(i)*section.FieldEntrySize
		entry, err := section.ParseFieldEntry(d.data[off:], d.engine)
		if err != nil {
			return shiftFormatError(err, off)
		}
		d.fields[i] = entry
	}

	d.fieldData = d.data[h.FieldDataOffset : uint32(h.FieldDataOffset)+h.FieldDataSize]
	d.fieldIndices = d.data[h.FieldIndicesOffset : uint32(h.FieldIndicesOffset)+h.FieldIndicesCount*4]
	d.listIndices = d.data[h.ListIndicesOffset : uint32(h.ListIndicesOffset)+h.ListIndicesSize]

	return nil
}

// materializeStruct builds the tree.Struct for struct-array index idx.
// depth counts struct nesting levels, root at 1.
func (d *Decoder) materializeStruct(idx uint32, depth int) (*tree.Struct, error) {
	// Compared in uint64 space: on 32-bit hosts int(idx) wraps negative for
	// indices >= 1<<31 and would slip past a signed check.
	if uint64(idx) >= uint64(len(d.structs)) {
		return nil, errs.FormatErrorf(int(d.header.StructOffset), errs.ErrIndexOutOfRange,
			"struct index %d, table has %d entries", idx, len(d.structs))
	}

	entryOff := int(d.header.StructOffset) + int(idx)*section.StructEntrySize

	if depth > d.maxDepth {
		return nil, errs.FormatErrorf(entryOff, errs.ErrMaxDepthExceeded,
			"struct nesting exceeds %d levels", d.maxDepth)
	}
	if d.onPath[idx] {
		return nil, errs.FormatErrorf(entryOff, errs.ErrCyclicStructure,
			"struct %d transitively contains itself", idx)
	}

	d.nodeCount++
	if d.nodeCount > d.maxNodes {
		return nil, errs.FormatErrorf(entryOff, errs.ErrNodeLimitExceeded,
			"more than %d structs materialized", d.maxNodes)
	}

	d.onPath[idx] = true
	defer func() { d.onPath[idx] = false }()

	entry := d.structs[idx]
	s := tree.NewStruct(entry.ID)

	fieldIdxs, err := d.resolveFieldIndices(entry, entryOff)
	if err != nil {
		return nil, err
	}

	for _, fi := range fieldIdxs {
		if err := d.decodeField(s, fi, depth); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// resolveFieldIndices applies the field-count rule: no fields, a direct
// field index, or a run of indices in the field-indices arena.
func (d *Decoder) resolveFieldIndices(entry section.StructEntry, entryOff int) ([]uint32, error) {
	switch {
	case entry.FieldCount == 0:
		return nil, nil
	case entry.FieldCount == 1:
		return []uint32{entry.DataOrOffset}, nil
	}

	start := uint64(entry.DataOrOffset)
	end := start + uint64(entry.FieldCount)*4
	if end > uint64(len(d.fieldIndices)) {
		return nil, errs.FormatErrorf(entryOff, errs.ErrOffsetOutOfRange,
			"field-indices run [%d, %d) exceeds arena size %d", start, end, len(d.fieldIndices))
	}

	idxs := make([]uint32, entry.FieldCount)
	for i := range idxs {
		idxs[i] = d.engine.Uint32(d.fieldIndices[start+uint64(i)*4:])
	}

	return idxs, nil
}

// decodeField decodes field-array entry fieldIdx into a field of s.
func (d *Decoder) decodeField(s *tree.Struct, fieldIdx uint32, depth int) error {
	if uint64(fieldIdx) >= uint64(len(d.fields)) {
		return errs.FormatErrorf(int(d.header.FieldOffset), errs.ErrIndexOutOfRange,
			"field index %d, table has %d entries", fieldIdx, len(d.fields))
	}
	entryOff := int(d.header.FieldOffset) + int(fieldIdx)*section.FieldEntrySize
	entry := d.fields[fieldIdx]

	if uint64(entry.LabelIndex) >= uint64(len(d.labels)) {
		return errs.FormatErrorf(entryOff, errs.ErrIndexOutOfRange,
			"label index %d, table has %d entries", entry.LabelIndex, len(d.labels))
	}
	label := d.labels[entry.LabelIndex]

	if _, exists := s.Field(label); exists {
		return errs.FormatErrorf(entryOff, errs.ErrDuplicateLabel, "label %q", label)
	}

	value, err := d.decodeValue(entry, depth)
	if err != nil {
		return err
	}

	return s.Set(label, entry.Type, value)
}

// decodeValue interprets the entry's data-or-offset slot per the type tag's
// fixed storage discipline.
func (d *Decoder) decodeValue(entry section.FieldEntry, depth int) (any, error) {
	slot := entry.DataOrOffset
	arenaOff := section.ArenaOffset(slot)
	fieldDataBase := int(d.header.FieldDataOffset)

	switch entry.Type {
	case format.TypeByte:
		return uint8(slot), nil
	case format.TypeChar:
		return int8(uint8(slot)), nil
	case format.TypeWord:
		return uint16(slot), nil
	case format.TypeShort:
		return int16(uint16(slot)), nil
	case format.TypeDWord:
		return slot, nil
	case format.TypeInt:
		return int32(slot), nil
	case format.TypeFloat:
		return math.Float32frombits(slot), nil

	case format.TypeDWord64:
		v, err := encoding.ReadUint64(d.fieldData, arenaOff, d.engine)
		return v, shiftFormatError(err, fieldDataBase)
	case format.TypeInt64:
		v, err := encoding.ReadInt64(d.fieldData, arenaOff, d.engine)
		return v, shiftFormatError(err, fieldDataBase)
	case format.TypeDouble:
		v, err := encoding.ReadDouble(d.fieldData, arenaOff, d.engine)
		return v, shiftFormatError(err, fieldDataBase)
	case format.TypeString:
		v, err := encoding.ReadString(d.fieldData, arenaOff, d.engine)
		return v, shiftFormatError(err, fieldDataBase)
	case format.TypeResRef:
		v, err := encoding.ReadResRef(d.fieldData, arenaOff)
		return v, shiftFormatError(err, fieldDataBase)
	case format.TypeLocString:
		v, err := encoding.ReadLocString(d.fieldData, arenaOff, d.engine)
		return v, shiftFormatError(err, fieldDataBase)
	case format.TypeBinary:
		v, err := encoding.ReadBinary(d.fieldData, arenaOff, d.engine)
		return v, shiftFormatError(err, fieldDataBase)
	case format.TypeVector3:
		v, err := encoding.ReadVector3(d.fieldData, arenaOff, d.engine)
		return v, shiftFormatError(err, fieldDataBase)
	case format.TypeVector4:
		v, err := encoding.ReadVector4(d.fieldData, arenaOff, d.engine)
		return v, shiftFormatError(err, fieldDataBase)

	case format.TypeStruct:
		return d.materializeStruct(slot, depth+1)

	case format.TypeList:
		idxs, err := encoding.ReadListIndices(d.listIndices, arenaOff, d.engine)
		if err != nil {
			return nil, shiftFormatError(err, int(d.header.ListIndicesOffset))
		}

		l := tree.NewList()
		for _, childIdx := range idxs {
			child, err := d.materializeStruct(childIdx, depth+1)
			if err != nil {
				return nil, err
			}
			l.AppendStruct(child)
		}

		return l, nil
	}

	// Unreachable: ParseFieldEntry already rejected unknown tags.
	return nil, errs.FormatErrorf(0, errs.ErrInvalidFieldType, "field type id %d", uint32(entry.Type))
}

// shiftFormatError rebases an arena-relative FormatError offset to a
// file-absolute one.
func shiftFormatError(err error, base int) error {
	if err == nil {
		return nil
	}

	var fe *errs.FormatError
	if errors.As(err, &fe) {
		fe.Offset += base
	}

	return err
}

// Decode materializes data into a document. Shorthand for NewDecoder
// followed by Decode.
func Decode(data []byte, opts ...DecoderOption) (*tree.Document, error) {
	d, err := NewDecoder(data, opts...)
	if err != nil {
		return nil, err
	}

	return d.Decode()
}
