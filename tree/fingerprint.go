package tree

import (
	"encoding/binary"
	"math"
	"sort"

	"github.com/cespare/xxhash/v2"

	"github.com/andastra/gff/format"
)

// Fingerprint returns an xxHash64 digest of the document's canonical form.
// Fields are hashed in sorted-label order, so two documents that compare
// Equal produce the same fingerprint regardless of insertion order. Useful
// as a cheap first-pass comparison before a full deep-equal walk.
func (d *Document) Fingerprint() uint64 {
	h := xxhash.New()
	_, _ = h.WriteString(d.ContentType)
	_, _ = h.WriteString(d.Version)
	hashStruct(h, d.Root)

	return h.Sum64()
}

// Fingerprint returns an xxHash64 digest of the struct's canonical form.
func (s *Struct) Fingerprint() uint64 {
	h := xxhash.New()
	hashStruct(h, s)

	return h.Sum64()
}

func hashStruct(h *xxhash.Digest, s *Struct) {
	if s == nil {
		return
	}

	writeUint32(h, s.id)
	writeUint32(h, uint32(len(s.fields)))

	labels := make([]string, 0, len(s.fields))
	for label := range s.fields {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	for _, label := range labels {
		f := s.fields[label]
		_, _ = h.WriteString(label)
		writeUint32(h, uint32(f.Type))
		hashValue(h, f)
	}
}

func hashValue(h *xxhash.Digest, f Field) {
	switch f.Type {
	case format.TypeByte:
		writeUint64(h, uint64(f.Value.(uint8)))
	case format.TypeChar:
		writeUint64(h, uint64(uint8(f.Value.(int8))))
	case format.TypeWord:
		writeUint64(h, uint64(f.Value.(uint16)))
	case format.TypeShort:
		writeUint64(h, uint64(uint16(f.Value.(int16))))
	case format.TypeDWord:
		writeUint64(h, uint64(f.Value.(uint32)))
	case format.TypeInt:
		writeUint64(h, uint64(uint32(f.Value.(int32))))
	case format.TypeDWord64:
		writeUint64(h, f.Value.(uint64))
	case format.TypeInt64:
		writeUint64(h, uint64(f.Value.(int64)))
	case format.TypeFloat:
		writeUint64(h, uint64(math.Float32bits(f.Value.(float32))))
	case format.TypeDouble:
		writeUint64(h, math.Float64bits(f.Value.(float64)))
	case format.TypeString:
		_, _ = h.WriteString(f.Value.(string))
	case format.TypeResRef:
		_, _ = h.WriteString(string(f.Value.(ResRef)))
	case format.TypeLocString:
		ls := f.Value.(LocString)
		if ls.Ref != nil {
			writeUint32(h, *ls.Ref)
		} else {
			writeUint32(h, 0xFFFFFFFF)
		}
		for _, sub := range ls.Substrings {
			writeUint32(h, sub.ID())
			_, _ = h.WriteString(sub.Text)
		}
	case format.TypeBinary:
		_, _ = h.Write(f.Value.([]byte))
	case format.TypeStruct:
		hashStruct(h, f.Value.(*Struct))
	case format.TypeList:
		l := f.Value.(*List)
		writeUint32(h, uint32(l.Len()))
		for _, s := range l.Structs() {
			hashStruct(h, s)
		}
	case format.TypeVector3:
		v := f.Value.(Vector3)
		writeUint32(h, math.Float32bits(v.X))
		writeUint32(h, math.Float32bits(v.Y))
		writeUint32(h, math.Float32bits(v.Z))
	case format.TypeVector4:
		v := f.Value.(Vector4)
		writeUint32(h, math.Float32bits(v.X))
		writeUint32(h, math.Float32bits(v.Y))
		writeUint32(h, math.Float32bits(v.Z))
		writeUint32(h, math.Float32bits(v.W))
	}
}

func writeUint32(h *xxhash.Digest, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	_, _ = h.Write(b[:])
}

func writeUint64(h *xxhash.Digest, v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	_, _ = h.Write(b[:])
}
