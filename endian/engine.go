// Package endian provides the byte-order engine used by all wire-format
// code. It combines encoding/binary's ByteOrder and AppendByteOrder into a
// single interface so the same engine value can both read fixed-width
// integers out of a buffer and append them to one.
//
// The GFF wire format is strictly little-endian regardless of host
// architecture, so codec code always uses GetLittleEndianEngine:
//
//	engine := endian.GetLittleEndianEngine()
//	offset := engine.Uint32(data[8:12])
//	buf = engine.AppendUint32(buf, offset)
//
// Engines are immutable and safe for concurrent use.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine is the byte-order interface wire code is written against.
// binary.LittleEndian and binary.BigEndian both satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness reports the host's native byte order. The codec never
// depends on it; it exists so tests can assert that file byte order is
// independent of the host.
func CheckEndianness() binary.ByteOrder {
	var i uint16 = 0x0100

	// The first byte at the lowest address is the MSB on big-endian hosts.
	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// CompareNativeEndian reports whether engine matches the host byte order.
func CompareNativeEndian(engine EndianEngine) bool {
	return engine == CheckEndianness()
}

// GetLittleEndianEngine returns the little-endian engine, the byte order of
// every GFF file on disk.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine. The GFF format never
// uses it; it exists for symmetry and for byte-order tests.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
