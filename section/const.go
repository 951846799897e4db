package section

// FileOffset is a byte offset measured from the start of the whole file.
// Header offsets are always file-absolute.
type FileOffset uint32

// ArenaOffset is a byte offset measured from the start of one arena
// (field-data, field-indices or list-indices). Offsets stored inside field
// and struct entries are always arena-relative; the two conventions must
// never be mixed, which is why they are distinct types.
type ArenaOffset uint32

// Fixed sizes of the GFF file sections.
const (
	HeaderSize      = 56 // fixed header size in bytes: two 4-byte tags + 12 uint32 fields
	LabelSize       = 16 // fixed label block size in bytes, NUL padded
	StructEntrySize = 12 // struct table entry: kind, data-or-offset, field count
	FieldEntrySize  = 12 // field table entry: type, label index, data-or-offset

	MaxLabelLength = 16 // maximum field label length in bytes

	// Version is the GFF format version this codec reads and writes.
	Version = "V3.2"
)

// NoStringRef is the sentinel stored in a localized string block when the
// string carries no external table reference.
const NoStringRef = 0xFFFFFFFF
