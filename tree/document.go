// Package tree holds the in-memory document model of the GFF format: a
// Document owning one root Struct, structs mapping labels to typed values,
// and lists of structs. The codec package converts between this model and
// the binary wire form.
package tree

// DefaultVersion is the format version stamped on new documents.
const DefaultVersion = "V3.2"

// Document is one decoded (or to-be-encoded) GFF resource: a 4-character
// content-kind tag, a 4-character version tag, and a root struct.
//
// The content-kind tag names the semantic schema the tree follows ("ARE ",
// "UTC ", "DLG ", ...); it is opaque to the codec.
type Document struct {
	ContentType string
	Version     string
	Root        *Struct
}

// New creates an empty document with the given content-kind tag, the
// default version, and an empty root struct. Tags shorter than 4
// characters are right-padded with spaces, matching the wire form.
//
// The root's kind discriminant is 0xFFFFFFFF, the conventional value for
// top-level structs in shipped resources.
func New(contentType string) *Document {
	for len(contentType) < 4 {
		contentType += " "
	}

	return &Document{
		ContentType: contentType,
		Version:     DefaultVersion,
		Root:        NewStruct(0xFFFFFFFF),
	}
}
