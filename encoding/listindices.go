package encoding

import (
	"github.com/andastra/gff/endian"
	"github.com/andastra/gff/section"
)

// AppendListIndices appends a list block to the list-indices arena:
// uint32 entry count followed by that many uint32 struct-array indices.
func AppendListIndices(buf []byte, engine endian.EndianEngine, indices []uint32) []byte {
	buf = engine.AppendUint32(buf, uint32(len(indices)))
	for _, idx := range indices {
		buf = engine.AppendUint32(buf, idx)
	}

	return buf
}

// ReadListIndices reads a list block from the list-indices arena.
func ReadListIndices(arena []byte, off section.ArenaOffset, engine endian.EndianEngine) ([]uint32, error) {
	if err := checkSpan(arena, off, 4, "list count"); err != nil {
		return nil, err
	}

	count := engine.Uint32(arena[off : off+4])
	if err := checkSpan(arena, off+4, uint64(count)*4, "list indices"); err != nil {
		return nil, err
	}

	indices := make([]uint32, count)
	pos := off + 4
	for i := range indices {
		indices[i] = engine.Uint32(arena[pos : pos+4])
		pos += 4
	}

	return indices, nil
}
