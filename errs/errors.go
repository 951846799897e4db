// Package errs defines the error taxonomy of the GFF codec.
//
// Decode failures are reported as *FormatError and encode failures as
// *ValidationError. Both wrap one of the sentinel errors below, so callers
// can branch with errors.Is while still getting positional context
// (byte offset on decode, tree path on encode) from the wrapper.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidHeaderSize indicates the buffer is shorter than the fixed GFF header.
	ErrInvalidHeaderSize = errors.New("invalid header size")

	// ErrInvalidSignature indicates the 4-byte content-kind tag is not printable ASCII.
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrUnsupportedVersion indicates the 4-byte version tag is not a supported GFF version.
	ErrUnsupportedVersion = errors.New("unsupported version")

	// ErrInvalidFieldType indicates a field type id outside the 18 defined tags.
	ErrInvalidFieldType = errors.New("invalid field type")

	// ErrOffsetOutOfRange indicates a header or field offset that points past the buffer end.
	ErrOffsetOutOfRange = errors.New("offset out of range")

	// ErrIndexOutOfRange indicates a struct, field or label index outside its table.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrTruncatedBuffer indicates a read that would run past the end of the buffer.
	ErrTruncatedBuffer = errors.New("truncated buffer")

	// ErrCyclicStructure indicates a struct that transitively contains itself.
	ErrCyclicStructure = errors.New("cyclic structure")

	// ErrMaxDepthExceeded indicates struct/list nesting beyond the configured bound.
	ErrMaxDepthExceeded = errors.New("max nesting depth exceeded")

	// ErrNoRootStruct indicates a struct table with zero entries.
	ErrNoRootStruct = errors.New("no root struct")

	// ErrDuplicateLabel indicates a struct whose field entries share a label.
	ErrDuplicateLabel = errors.New("duplicate label in struct")

	// ErrNodeLimitExceeded indicates more materialized nodes than the
	// configured bound allows. Guards against index tables that expand into
	// exponentially large trees.
	ErrNodeLimitExceeded = errors.New("node limit exceeded")

	// ErrLabelTooLong indicates a field label longer than 16 bytes.
	ErrLabelTooLong = errors.New("label too long")

	// ErrResRefTooLong indicates a ResRef longer than 16 bytes.
	ErrResRefTooLong = errors.New("resref too long")

	// ErrTypeMismatch indicates a value whose shape does not match its declared field type.
	ErrTypeMismatch = errors.New("value does not match field type")

	// ErrNilDocument indicates an encode call with a nil document or nil root.
	ErrNilDocument = errors.New("nil document")
)

// FormatError reports a malformed input buffer during decode. Offset is the
// file-absolute byte position the decoder was reading when it gave up.
type FormatError struct {
	Offset int
	Reason string
	Err    error
}

// NewFormatError wraps sentinel err with the offending byte offset and a
// human-readable reason.
func NewFormatError(offset int, err error, reason string) *FormatError {
	return &FormatError{Offset: offset, Reason: reason, Err: err}
}

// FormatErrorf is NewFormatError with a formatted reason.
func FormatErrorf(offset int, err error, format string, args ...any) *FormatError {
	return &FormatError{Offset: offset, Reason: fmt.Sprintf(format, args...), Err: err}
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("gff: %s at offset %d: %s", e.Err, e.Offset, e.Reason)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// ValidationError reports an invalid document during encode. It is raised
// before any output bytes are produced. Path identifies the offending node
// ("/" for the root, "/ItemList[2]/Tag" for a field of the third list entry).
type ValidationError struct {
	Path   string
	Reason string
	Err    error
}

// NewValidationError wraps sentinel err with the tree path of the offending
// node and a human-readable reason.
func NewValidationError(path string, err error, reason string) *ValidationError {
	return &ValidationError{Path: path, Reason: reason, Err: err}
}

// ValidationErrorf is NewValidationError with a formatted reason.
func ValidationErrorf(path string, err error, format string, args ...any) *ValidationError {
	return &ValidationError{Path: path, Reason: fmt.Sprintf(format, args...), Err: err}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("gff: %s at %s: %s", e.Err, e.Path, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
