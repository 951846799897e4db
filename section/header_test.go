package section

import (
	"testing"

	"github.com/andastra/gff/endian"
	"github.com/andastra/gff/errs"
	"github.com/stretchr/testify/require"
)

var engine = endian.GetLittleEndianEngine()

func TestNewHeader(t *testing.T) {
	header := NewHeader("ARE ")

	require.NotNil(t, header)
	require.Equal(t, "ARE ", header.ContentType)
	require.Equal(t, Version, header.Version)
	require.Equal(t, uint32(0), header.StructCount)
	require.Equal(t, uint32(0), header.FieldCount)
}

func TestHeader_Parse(t *testing.T) {
	t.Run("Valid header", func(t *testing.T) {
		original := NewHeader("UTC ")
		original.StructOffset = 56
		original.StructCount = 3
		original.FieldOffset = 92
		original.FieldCount = 7
		original.LabelOffset = 176
		original.LabelCount = 5
		original.FieldDataOffset = 256
		original.FieldDataSize = 40
		original.FieldIndicesOffset = 296
		original.FieldIndicesCount = 6
		original.ListIndicesOffset = 320
		original.ListIndicesSize = 16

		data := original.Bytes(engine)
		require.Len(t, data, HeaderSize)

		parsed := &Header{}
		err := parsed.Parse(data, engine)

		require.NoError(t, err)
		require.Equal(t, *original, *parsed)
	})

	t.Run("Short buffer", func(t *testing.T) {
		header := &Header{}
		err := header.Parse([]byte{1, 2, 3}, engine)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
	})

	t.Run("Non-ASCII signature", func(t *testing.T) {
		data := NewHeader("ARE ").Bytes(engine)
		data[0] = 0xFF

		header := &Header{}
		err := header.Parse(data, engine)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrInvalidSignature)
	})

	t.Run("Unsupported version", func(t *testing.T) {
		data := NewHeader("ARE ").Bytes(engine)
		copy(data[4:8], "V9.9")

		header := &Header{}
		err := header.Parse(data, engine)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrUnsupportedVersion)
	})
}

func TestHeader_CheckBounds(t *testing.T) {
	header := NewHeader("GIT ")
	header.StructOffset = 56
	header.StructCount = 2
	header.FieldOffset = 80
	header.FieldCount = 1
	header.LabelOffset = 92
	header.LabelCount = 1

	t.Run("Within bounds", func(t *testing.T) {
		require.NoError(t, header.CheckBounds(108))
	})

	t.Run("Struct table past end", func(t *testing.T) {
		err := header.CheckBounds(60)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrOffsetOutOfRange)
		require.Contains(t, err.Error(), "struct array")
	})

	t.Run("Huge count does not overflow", func(t *testing.T) {
		h := NewHeader("GIT ")
		h.StructOffset = 56
		h.StructCount = 0xFFFFFFFF

		err := h.CheckBounds(1024)
		require.ErrorIs(t, err, errs.ErrOffsetOutOfRange)
	})
}

func TestParseHeader(t *testing.T) {
	data := NewHeader("DLG ").Bytes(engine)

	header, err := ParseHeader(data, engine)
	require.NoError(t, err)
	require.Equal(t, "DLG ", header.ContentType)

	_, err = ParseHeader(data[:10], engine)
	require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
}

func TestHeader_BytesPadsShortTags(t *testing.T) {
	header := NewHeader("GFF")
	data := header.Bytes(engine)

	require.Equal(t, []byte("GFF "), data[0:4])
	require.Equal(t, []byte(Version), data[4:8])
}
