package encoding

import (
	"github.com/andastra/gff/endian"
	"github.com/andastra/gff/errs"
	"github.com/andastra/gff/section"
	"github.com/andastra/gff/tree"
)

// AppendLocString appends a LocString payload:
//
//	uint32 remaining size (bytes after this field, for skip-ahead)
//	uint32 string-table reference (0xFFFFFFFF when the string has none)
//	uint32 substring count
//	per substring: uint32 packed id, uint32 length, raw text bytes
//
// The packed id convention is id = language*2 + gender with the gender in
// the least significant bit (see tree.LocSubstring.ID).
func AppendLocString(buf []byte, engine endian.EndianEngine, ls tree.LocString) []byte {
	size := uint32(8) // string ref + substring count
	for _, sub := range ls.Substrings {
		size += 8 + uint32(len(sub.Text))
	}

	buf = engine.AppendUint32(buf, size)

	ref := uint32(section.NoStringRef)
	if ls.Ref != nil {
		ref = *ls.Ref
	}
	buf = engine.AppendUint32(buf, ref)
	buf = engine.AppendUint32(buf, uint32(len(ls.Substrings)))

	for _, sub := range ls.Substrings {
		buf = engine.AppendUint32(buf, sub.ID())
		buf = engine.AppendUint32(buf, uint32(len(sub.Text)))
		buf = append(buf, sub.Text...)
	}

	return buf
}

// ReadLocString reads a LocString payload. The declared remaining size must
// match the bytes the substrings actually occupy; a mismatch is malformed
// input and rejected.
func ReadLocString(arena []byte, off section.ArenaOffset, engine endian.EndianEngine) (tree.LocString, error) {
	var ls tree.LocString

	if err := checkSpan(arena, off, 12, "locstring header"); err != nil {
		return ls, err
	}

	size := engine.Uint32(arena[off : off+4])
	if err := checkSpan(arena, off+4, uint64(size), "locstring block"); err != nil {
		return ls, err
	}

	ref := engine.Uint32(arena[off+4 : off+8])
	if ref != section.NoStringRef {
		ls.Ref = &ref
	}

	count := engine.Uint32(arena[off+8 : off+12])
	end := off + 4 + section.ArenaOffset(size)
	pos := off + 12

	for i := uint32(0); i < count; i++ {
		if err := checkSpan(arena[:end], pos, 8, "locstring substring header"); err != nil {
			return tree.LocString{}, err
		}

		id := engine.Uint32(arena[pos : pos+4])
		length := engine.Uint32(arena[pos+4 : pos+8])
		pos += 8

		if err := checkSpan(arena[:end], pos, uint64(length), "locstring substring text"); err != nil {
			return tree.LocString{}, err
		}

		lang, gender := tree.SplitLocStringID(id)
		ls.Substrings = append(ls.Substrings, tree.LocSubstring{
			Language: lang,
			Gender:   gender,
			Text:     string(arena[pos : pos+section.ArenaOffset(length)]),
		})
		pos += section.ArenaOffset(length)
	}

	if pos != end {
		return tree.LocString{}, errs.FormatErrorf(int(off), errs.ErrTruncatedBuffer,
			"locstring declares %d payload bytes but substrings occupy %d", size, uint32(pos-off)-4)
	}

	return ls, nil
}
