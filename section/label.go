package section

import (
	"bytes"

	"github.com/andastra/gff/errs"
)

// ParseLabel decodes one fixed 16-byte label block, trimming the trailing
// NUL padding.
func ParseLabel(block []byte) (string, error) {
	if len(block) < LabelSize {
		return "", errs.FormatErrorf(0, errs.ErrTruncatedBuffer,
			"label block needs %d bytes, have %d", LabelSize, len(block))
	}

	return string(bytes.TrimRight(block[:LabelSize], "\x00")), nil
}

// AppendLabel appends the fixed 16-byte wire form of label to buf,
// NUL padding short labels. Labels longer than 16 bytes are rejected,
// never truncated: truncation would silently alias two distinct labels.
func AppendLabel(buf []byte, label string) ([]byte, error) {
	if len(label) > MaxLabelLength {
		return nil, errs.ValidationErrorf("/", errs.ErrLabelTooLong,
			"label %q is %d bytes, max %d", label, len(label), MaxLabelLength)
	}

	var block [LabelSize]byte
	copy(block[:], label)

	return append(buf, block[:]...), nil
}
