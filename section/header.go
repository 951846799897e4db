package section

import (
	"github.com/andastra/gff/endian"
	"github.com/andastra/gff/errs"
)

// Header is the fixed-size block at the start of every GFF file. It names
// the content kind, the format version, and the file-absolute location and
// size of each of the six sections that follow.
type Header struct {
	// ContentType is the 4-character content-kind tag (e.g. "ARE ", "UTC ",
	// "DLG "). Opaque to the codec; the semantic layer dispatches on it.
	ContentType string // byte offset 0-3
	// Version is the 4-character format version tag, always "V3.2".
	Version string // byte offset 4-7

	StructOffset FileOffset // byte offset 8-11
	StructCount  uint32     // byte offset 12-15
	FieldOffset  FileOffset // byte offset 16-19
	FieldCount   uint32     // byte offset 20-23
	LabelOffset  FileOffset // byte offset 24-27
	LabelCount   uint32     // byte offset 28-31
	// FieldDataOffset locates the field-data arena; FieldDataSize is its byte length.
	FieldDataOffset FileOffset // byte offset 32-35
	FieldDataSize   uint32     // byte offset 36-39
	// FieldIndicesOffset locates the field-indices arena; FieldIndicesCount
	// is its element count (each element a uint32 field-array index).
	FieldIndicesOffset FileOffset // byte offset 40-43
	FieldIndicesCount  uint32     // byte offset 44-47
	// ListIndicesOffset locates the list-indices arena; ListIndicesSize is its byte length.
	ListIndicesOffset FileOffset // byte offset 48-51
	ListIndicesSize   uint32     // byte offset 52-55
}

// NewHeader creates a header for the given content-kind tag with the
// current format version. Section offsets and counts are filled in by the
// encoder's place pass.
func NewHeader(contentType string) *Header {
	return &Header{
		ContentType: contentType,
		Version:     Version,
	}
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the header (must be exactly 56 bytes)
//   - engine: Endian engine for byte order (little-endian for GFF files)
//
// Returns:
//   - error: *errs.FormatError on short input, non-ASCII signature, or
//     unsupported version
func (h *Header) Parse(data []byte, engine endian.EndianEngine) error {
	if len(data) != HeaderSize {
		return errs.FormatErrorf(0, errs.ErrInvalidHeaderSize, "need %d bytes, have %d", HeaderSize, len(data))
	}

	h.ContentType = string(data[0:4])
	h.Version = string(data[4:8])

	if !isPrintableASCII(data[0:4]) {
		return errs.FormatErrorf(0, errs.ErrInvalidSignature, "content-kind tag %q is not printable ASCII", h.ContentType)
	}
	if h.Version != Version {
		return errs.FormatErrorf(4, errs.ErrUnsupportedVersion, "version %q, want %q", h.Version, Version)
	}

	h.StructOffset = FileOffset(engine.Uint32(data[8:12]))
	h.StructCount = engine.Uint32(data[12:16])
	h.FieldOffset = FileOffset(engine.Uint32(data[16:20]))
	h.FieldCount = engine.Uint32(data[20:24])
	h.LabelOffset = FileOffset(engine.Uint32(data[24:28]))
	h.LabelCount = engine.Uint32(data[28:32])
	h.FieldDataOffset = FileOffset(engine.Uint32(data[32:36]))
	h.FieldDataSize = engine.Uint32(data[36:40])
	h.FieldIndicesOffset = FileOffset(engine.Uint32(data[40:44]))
	h.FieldIndicesCount = engine.Uint32(data[44:48])
	h.ListIndicesOffset = FileOffset(engine.Uint32(data[48:52]))
	h.ListIndicesSize = engine.Uint32(data[52:56])

	return nil
}

// Bytes serializes the header into a 56-byte slice.
func (h *Header) Bytes(engine endian.EndianEngine) []byte {
	b := make([]byte, HeaderSize)

	copy(b[0:4], padTag(h.ContentType))
	copy(b[4:8], padTag(h.Version))

	engine.PutUint32(b[8:12], uint32(h.StructOffset))
	engine.PutUint32(b[12:16], h.StructCount)
	engine.PutUint32(b[16:20], uint32(h.FieldOffset))
	engine.PutUint32(b[20:24], h.FieldCount)
	engine.PutUint32(b[24:28], uint32(h.LabelOffset))
	engine.PutUint32(b[28:32], h.LabelCount)
	engine.PutUint32(b[32:36], uint32(h.FieldDataOffset))
	engine.PutUint32(b[36:40], h.FieldDataSize)
	engine.PutUint32(b[40:44], uint32(h.FieldIndicesOffset))
	engine.PutUint32(b[44:48], h.FieldIndicesCount)
	engine.PutUint32(b[48:52], uint32(h.ListIndicesOffset))
	engine.PutUint32(b[52:56], h.ListIndicesSize)

	return b
}

// CheckBounds verifies that every section the header declares lies entirely
// within a buffer of bufLen bytes. Returns a *errs.FormatError naming the
// first section that does not.
func (h *Header) CheckBounds(bufLen int) error {
	sections := []struct {
		name   string
		offset FileOffset
		size   uint64
	}{
		{"struct array", h.StructOffset, uint64(h.StructCount) * StructEntrySize},
		{"field array", h.FieldOffset, uint64(h.FieldCount) * FieldEntrySize},
		{"label array", h.LabelOffset, uint64(h.LabelCount) * LabelSize},
		{"field-data arena", h.FieldDataOffset, uint64(h.FieldDataSize)},
		{"field-indices arena", h.FieldIndicesOffset, uint64(h.FieldIndicesCount) * 4},
		{"list-indices arena", h.ListIndicesOffset, uint64(h.ListIndicesSize)},
	}

	for _, s := range sections {
		end := uint64(s.offset) + s.size
		if uint64(s.offset) > uint64(bufLen) || end > uint64(bufLen) {
			return errs.FormatErrorf(int(s.offset), errs.ErrOffsetOutOfRange,
				"%s spans [%d, %d) but buffer is %d bytes", s.name, s.offset, end, bufLen)
		}
	}

	return nil
}

// ParseHeader parses a Header from the start of data.
func ParseHeader(data []byte, engine endian.EndianEngine) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, errs.FormatErrorf(0, errs.ErrInvalidHeaderSize, "need %d bytes, have %d", HeaderSize, len(data))
	}

	h := Header{}
	if err := h.Parse(data[:HeaderSize], engine); err != nil {
		return Header{}, err
	}

	return h, nil
}

// padTag right-pads a tag with spaces to exactly 4 bytes.
func padTag(tag string) []byte {
	b := []byte("    ")
	copy(b, tag)

	return b
}

func isPrintableASCII(b []byte) bool {
	for _, c := range b {
		if c < 0x20 || c > 0x7E {
			return false
		}
	}

	return true
}
