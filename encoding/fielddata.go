// Package encoding implements the wire codecs for GFF arena payloads: the
// out-of-line value layouts of the field-data arena and the count-prefixed
// index blocks of the list-indices arena.
//
// Append functions emit a payload at the end of buf and return the grown
// slice; the caller records len(buf) before the call as the payload's
// arena-relative offset. Read functions take the whole arena plus an
// arena-relative offset and are fully bounds-checked: malformed input
// yields a *errs.FormatError (offset relative to the arena start, shifted
// to file-absolute by the decoder), never a panic or a truncated value.
package encoding

import (
	"math"

	"github.com/andastra/gff/endian"
	"github.com/andastra/gff/errs"
	"github.com/andastra/gff/section"
	"github.com/andastra/gff/tree"
)

// checkSpan verifies that [off, off+size) lies within the arena.
func checkSpan(arena []byte, off section.ArenaOffset, size uint64, what string) error {
	if uint64(off) > uint64(len(arena)) {
		return errs.FormatErrorf(int(off), errs.ErrOffsetOutOfRange,
			"%s offset %d exceeds arena size %d", what, off, len(arena))
	}
	if uint64(off)+size > uint64(len(arena)) {
		return errs.FormatErrorf(int(off), errs.ErrTruncatedBuffer,
			"%s needs %d bytes at offset %d, arena has %d", what, size, off, len(arena))
	}

	return nil
}

// AppendUint64 appends the 8-byte cell of a DWord64 value.
func AppendUint64(buf []byte, engine endian.EndianEngine, v uint64) []byte {
	return engine.AppendUint64(buf, v)
}

// ReadUint64 reads the 8-byte cell of a DWord64 value.
func ReadUint64(arena []byte, off section.ArenaOffset, engine endian.EndianEngine) (uint64, error) {
	if err := checkSpan(arena, off, 8, "DWord64"); err != nil {
		return 0, err
	}

	return engine.Uint64(arena[off : off+8]), nil
}

// AppendInt64 appends the 8-byte cell of an Int64 value.
func AppendInt64(buf []byte, engine endian.EndianEngine, v int64) []byte {
	return engine.AppendUint64(buf, uint64(v))
}

// ReadInt64 reads the 8-byte cell of an Int64 value.
func ReadInt64(arena []byte, off section.ArenaOffset, engine endian.EndianEngine) (int64, error) {
	if err := checkSpan(arena, off, 8, "Int64"); err != nil {
		return 0, err
	}

	return int64(engine.Uint64(arena[off : off+8])), nil
}

// AppendDouble appends the 8-byte cell of a Double value.
func AppendDouble(buf []byte, engine endian.EndianEngine, v float64) []byte {
	return engine.AppendUint64(buf, math.Float64bits(v))
}

// ReadDouble reads the 8-byte cell of a Double value.
func ReadDouble(arena []byte, off section.ArenaOffset, engine endian.EndianEngine) (float64, error) {
	if err := checkSpan(arena, off, 8, "Double"); err != nil {
		return 0, err
	}

	return math.Float64frombits(engine.Uint64(arena[off : off+8])), nil
}

// AppendString appends a String payload: uint32 length + raw bytes. The
// bytes pass through unmodified; the codec imposes no charset.
func AppendString(buf []byte, engine endian.EndianEngine, s string) []byte {
	buf = engine.AppendUint32(buf, uint32(len(s)))

	return append(buf, s...)
}

// ReadString reads a String payload.
func ReadString(arena []byte, off section.ArenaOffset, engine endian.EndianEngine) (string, error) {
	if err := checkSpan(arena, off, 4, "string length"); err != nil {
		return "", err
	}

	length := engine.Uint32(arena[off : off+4])
	if err := checkSpan(arena, off+4, uint64(length), "string data"); err != nil {
		return "", err
	}

	return string(arena[off+4 : off+4+section.ArenaOffset(length)]), nil
}

// AppendResRef appends a ResRef payload: uint8 length + ASCII bytes, no
// padding. Over-length ResRefs are rejected, never truncated.
func AppendResRef(buf []byte, r tree.ResRef) ([]byte, error) {
	if !r.Valid() {
		return nil, errs.ValidationErrorf("/", errs.ErrResRefTooLong,
			"resref %q is %d bytes, max %d", string(r), len(r), tree.MaxResRefLength)
	}

	buf = append(buf, uint8(len(r)))

	return append(buf, r...), nil
}

// ReadResRef reads a ResRef payload. A stored length above 16 is malformed
// input and rejected.
func ReadResRef(arena []byte, off section.ArenaOffset) (tree.ResRef, error) {
	if err := checkSpan(arena, off, 1, "resref length"); err != nil {
		return "", err
	}

	length := uint64(arena[off])
	if length > tree.MaxResRefLength {
		return "", errs.FormatErrorf(int(off), errs.ErrResRefTooLong,
			"resref length %d, max %d", length, tree.MaxResRefLength)
	}
	if err := checkSpan(arena, off+1, length, "resref data"); err != nil {
		return "", err
	}

	return tree.ResRef(arena[off+1 : off+1+section.ArenaOffset(length)]), nil
}

// AppendBinary appends a Binary payload: uint32 length + raw bytes.
func AppendBinary(buf []byte, engine endian.EndianEngine, data []byte) []byte {
	buf = engine.AppendUint32(buf, uint32(len(data)))

	return append(buf, data...)
}

// ReadBinary reads a Binary payload. The returned slice is a copy; it does
// not alias the arena.
func ReadBinary(arena []byte, off section.ArenaOffset, engine endian.EndianEngine) ([]byte, error) {
	if err := checkSpan(arena, off, 4, "binary length"); err != nil {
		return nil, err
	}

	length := engine.Uint32(arena[off : off+4])
	if err := checkSpan(arena, off+4, uint64(length), "binary data"); err != nil {
		return nil, err
	}

	out := make([]byte, length)
	copy(out, arena[off+4:off+4+section.ArenaOffset(length)])

	return out, nil
}

// AppendVector3 appends a Vector3 payload: three literal float32 values,
// no length prefix.
func AppendVector3(buf []byte, engine endian.EndianEngine, v tree.Vector3) []byte {
	buf = engine.AppendUint32(buf, math.Float32bits(v.X))
	buf = engine.AppendUint32(buf, math.Float32bits(v.Y))

	return engine.AppendUint32(buf, math.Float32bits(v.Z))
}

// ReadVector3 reads a Vector3 payload.
func ReadVector3(arena []byte, off section.ArenaOffset, engine endian.EndianEngine) (tree.Vector3, error) {
	if err := checkSpan(arena, off, 12, "vector3"); err != nil {
		return tree.Vector3{}, err
	}

	return tree.Vector3{
		X: math.Float32frombits(engine.Uint32(arena[off : off+4])),
		Y: math.Float32frombits(engine.Uint32(arena[off+4 : off+8])),
		Z: math.Float32frombits(engine.Uint32(arena[off+8 : off+12])),
	}, nil
}

// AppendVector4 appends a Vector4 payload: four literal float32 values in
// x, y, z, w order.
func AppendVector4(buf []byte, engine endian.EndianEngine, v tree.Vector4) []byte {
	buf = engine.AppendUint32(buf, math.Float32bits(v.X))
	buf = engine.AppendUint32(buf, math.Float32bits(v.Y))
	buf = engine.AppendUint32(buf, math.Float32bits(v.Z))

	return engine.AppendUint32(buf, math.Float32bits(v.W))
}

// ReadVector4 reads a Vector4 payload.
func ReadVector4(arena []byte, off section.ArenaOffset, engine endian.EndianEngine) (tree.Vector4, error) {
	if err := checkSpan(arena, off, 16, "vector4"); err != nil {
		return tree.Vector4{}, err
	}

	return tree.Vector4{
		X: math.Float32frombits(engine.Uint32(arena[off : off+4])),
		Y: math.Float32frombits(engine.Uint32(arena[off+4 : off+8])),
		Z: math.Float32frombits(engine.Uint32(arena[off+8 : off+12])),
		W: math.Float32frombits(engine.Uint32(arena[off+12 : off+16])),
	}, nil
}
