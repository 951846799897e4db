package codec

import (
	"testing"

	"github.com/andastra/gff/endian"
	"github.com/andastra/gff/errs"
	"github.com/andastra/gff/format"
	"github.com/andastra/gff/section"
	"github.com/stretchr/testify/require"
)

var engine = endian.GetLittleEndianEngine()

// buildSingleFieldFile hand-assembles the smallest interesting GFF file:
// one struct with one Int field "TestField" = 42. The layout deliberately
// places the label array after the tables to prove sections are located by
// header offset, not by position.
func buildSingleFieldFile(t *testing.T) []byte {
	t.Helper()

	header := section.NewHeader("GFF ")
	header.StructOffset = 56
	header.StructCount = 1
	header.FieldOffset = 68
	header.FieldCount = 1
	header.LabelOffset = 80
	header.LabelCount = 1
	header.FieldDataOffset = 96
	header.FieldIndicesOffset = 96
	header.ListIndicesOffset = 96

	out := header.Bytes(engine)

	// Struct 0: field count 1, data-or-offset is field index 0 directly.
	out = section.StructEntry{ID: 0xFFFFFFFF, DataOrOffset: 0, FieldCount: 1}.AppendTo(out, engine)
	// Field 0: Int, label 0, literal value in the slot.
	out = section.FieldEntry{Type: format.TypeInt, LabelIndex: 0, DataOrOffset: 42}.AppendTo(out, engine)

	out, err := section.AppendLabel(out, "TestField")
	require.NoError(t, err)
	require.Len(t, out, 96)

	return out
}

func TestDecode_SingleIntField(t *testing.T) {
	data := buildSingleFieldFile(t)

	doc, err := Decode(data)
	require.NoError(t, err)

	require.Equal(t, "GFF ", doc.ContentType)
	require.Equal(t, "V3.2", doc.Version)
	require.Equal(t, []string{"TestField"}, doc.Root.FieldNames())
	require.Equal(t, int32(42), doc.Root.Int("TestField", 0))

	t.Run("Re-encode reproduces the tree", func(t *testing.T) {
		encoded, err := Encode(doc)
		require.NoError(t, err)

		again, err := Decode(encoded)
		require.NoError(t, err)
		require.Equal(t, int32(42), again.Root.Int("TestField", 0))
	})
}

func TestDecode_Rejections(t *testing.T) {
	t.Run("Truncated header", func(t *testing.T) {
		_, err := Decode(make([]byte, 10))
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
	})

	t.Run("Bad content-kind magic", func(t *testing.T) {
		data := buildSingleFieldFile(t)
		data[0] = 0x01 // non-printable

		_, err := Decode(data)
		require.ErrorIs(t, err, errs.ErrInvalidSignature)
	})

	t.Run("Unsupported version", func(t *testing.T) {
		data := buildSingleFieldFile(t)
		copy(data[4:8], "V2.0")

		_, err := Decode(data)
		require.ErrorIs(t, err, errs.ErrUnsupportedVersion)
	})

	t.Run("Field type id 255", func(t *testing.T) {
		data := buildSingleFieldFile(t)
		engine.PutUint32(data[68:72], 255)

		_, err := Decode(data)
		require.ErrorIs(t, err, errs.ErrInvalidFieldType)
	})

	t.Run("Struct offset past buffer end", func(t *testing.T) {
		data := buildSingleFieldFile(t)
		engine.PutUint32(data[8:12], 100000)

		_, err := Decode(data)
		require.ErrorIs(t, err, errs.ErrOffsetOutOfRange)
	})

	t.Run("Empty struct table", func(t *testing.T) {
		data := buildSingleFieldFile(t)
		engine.PutUint32(data[12:16], 0) // struct count

		_, err := Decode(data)
		require.ErrorIs(t, err, errs.ErrNoRootStruct)
	})

	t.Run("Label index out of range", func(t *testing.T) {
		data := buildSingleFieldFile(t)
		engine.PutUint32(data[72:76], 9) // field label index

		_, err := Decode(data)
		require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
	})

	t.Run("Field index out of range", func(t *testing.T) {
		data := buildSingleFieldFile(t)
		engine.PutUint32(data[60:64], 7) // struct data-or-offset (direct field index)

		_, err := Decode(data)
		require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
	})

	// Indices >= 1<<31 wrap negative through int on 32-bit hosts; they must
	// be rejected, not panic below the bounds check.
	t.Run("Field index beyond int32 range", func(t *testing.T) {
		data := buildSingleFieldFile(t)
		engine.PutUint32(data[60:64], 0x80000000) // struct data-or-offset (direct field index)

		_, err := Decode(data)
		require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
	})

	t.Run("Label index beyond int32 range", func(t *testing.T) {
		data := buildSingleFieldFile(t)
		engine.PutUint32(data[72:76], 0x80000000) // field label index

		_, err := Decode(data)
		require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
	})

	t.Run("Struct index beyond int32 range", func(t *testing.T) {
		data := buildSingleFieldFile(t)
		engine.PutUint32(data[68:72], uint32(format.TypeStruct))
		engine.PutUint32(data[76:80], 0x80000000) // nested struct index

		_, err := Decode(data)
		require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
	})

	t.Run("String offset past arena end", func(t *testing.T) {
		data := buildSingleFieldFile(t)
		engine.PutUint32(data[68:72], uint32(format.TypeString))
		// DataOrOffset 42 now points into an empty field-data arena.

		_, err := Decode(data)
		require.ErrorIs(t, err, errs.ErrOffsetOutOfRange)
	})
}

func TestDecode_CyclicStruct(t *testing.T) {
	// Struct 0 carries one field of type Struct whose target is struct 0.
	header := section.NewHeader("GFF ")
	header.StructOffset = 56
	header.StructCount = 1
	header.FieldOffset = 68
	header.FieldCount = 1
	header.LabelOffset = 80
	header.LabelCount = 1
	header.FieldDataOffset = 96
	header.FieldIndicesOffset = 96
	header.ListIndicesOffset = 96

	out := header.Bytes(engine)
	out = section.StructEntry{ID: 0, DataOrOffset: 0, FieldCount: 1}.AppendTo(out, engine)
	out = section.FieldEntry{Type: format.TypeStruct, LabelIndex: 0, DataOrOffset: 0}.AppendTo(out, engine)
	out, err := section.AppendLabel(out, "Self")
	require.NoError(t, err)

	_, err = Decode(out)
	require.ErrorIs(t, err, errs.ErrCyclicStructure)
}

func TestDecode_FormatErrorCarriesOffset(t *testing.T) {
	data := buildSingleFieldFile(t)
	engine.PutUint32(data[68:72], 255) // field type at file offset 68

	_, err := Decode(data)

	var fe *errs.FormatError
	require.ErrorAs(t, err, &fe)
	require.Equal(t, 68, fe.Offset)
}

func TestDecoder_Header(t *testing.T) {
	data := buildSingleFieldFile(t)

	d, err := NewDecoder(data)
	require.NoError(t, err)

	h := d.Header()
	require.Equal(t, "GFF ", h.ContentType)
	require.Equal(t, uint32(1), h.StructCount)
	require.Equal(t, uint32(1), h.FieldCount)
	require.Equal(t, uint32(1), h.LabelCount)
}
