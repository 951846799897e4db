// Package gff implements the Generic File Format, the self-describing
// binary tree serialization used by nearly every structured game resource:
// area descriptions, entity templates, dialogue trees, module metadata and
// instance-placement lists.
//
// A GFF file is a labeled tree of typed fields, structs and lists. Small
// fixed-size values live inline in their field entry; everything else is
// stored in shared out-of-line arenas and addressed by section-relative
// offset. This package decodes such a buffer losslessly into a
// tree.Document and re-encodes a document back to bytes.
//
// # Basic Usage
//
// Decoding a resource buffer (the archive layer that produced it is not
// this package's concern):
//
//	doc, err := gff.Decode(data)
//	if err != nil {
//	    return err
//	}
//
//	tag := doc.Root.String("Tag", "")
//	hp := doc.Root.Short("CurrentHitPoints", 0)
//	for _, item := range doc.Root.List("ItemList").Structs() {
//	    fmt.Println(item.ResRef("InventoryRes", ""))
//	}
//
// Building and encoding a document:
//
//	doc := gff.New("UTC ")
//	doc.Root.MustSet("Tag", format.TypeString, "c_bantha")
//	doc.Root.MustSet("CurrentHitPoints", format.TypeShort, int16(20))
//
//	data, err := gff.Encode(doc)
//
// Field reads follow a lenient contract: an absent or type-mismatched
// field yields the supplied default, because real content omits optional
// fields. Malformed input on decode and invalid trees on encode are
// rejected hard, with *errs.FormatError and *errs.ValidationError
// respectively.
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the codec and
// tree packages, simplifying the most common use cases. For fine-grained
// control (nesting-depth bounds, node-count bounds, header inspection),
// use the codec package directly.
package gff

import (
	"github.com/andastra/gff/codec"
	"github.com/andastra/gff/tree"
)

// New creates an empty document with the given 4-character content-kind tag.
func New(contentType string) *tree.Document {
	return tree.New(contentType)
}

// Decode materializes a GFF byte buffer into a document.
//
// Returns a *errs.FormatError carrying the offending file-absolute byte
// offset when the buffer is malformed in any way.
func Decode(data []byte) (*tree.Document, error) {
	return codec.Decode(data)
}

// Encode serializes a document into the GFF wire format.
//
// The document is validated in full before any bytes are produced; an
// invalid tree (cycle, over-length label or ResRef, type/value mismatch)
// yields a *errs.ValidationError.
func Encode(doc *tree.Document) ([]byte, error) {
	return codec.Encode(doc)
}

// Equal reports deep structural equality of two documents, ignoring
// serialization-order artifacts.
func Equal(a, b *tree.Document) bool {
	return tree.Equal(a, b)
}
