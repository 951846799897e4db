package codec

import (
	"fmt"

	"github.com/andastra/gff/internal/options"
)

// Resource files originate from a modding ecosystem and are not fully
// trusted, so both codec directions bound nesting depth, and the decoder
// additionally bounds the total number of materialized nodes. The defaults
// are far beyond anything shipped content reaches.
const (
	DefaultMaxDepth = 128
	DefaultMaxNodes = 1 << 20
)

// DecoderOption configures a Decoder.
type DecoderOption = options.Option[*Decoder]

// WithMaxDepth sets the maximum struct/list nesting depth the decoder
// accepts before failing with errs.ErrMaxDepthExceeded.
func WithMaxDepth(depth int) DecoderOption {
	return options.New(func(d *Decoder) error {
		if depth <= 0 {
			return fmt.Errorf("max depth must be positive, got %d", depth)
		}
		d.maxDepth = depth

		return nil
	})
}

// WithMaxNodes sets the maximum number of structs the decoder materializes
// before failing with errs.ErrNodeLimitExceeded. Struct entries may be
// referenced from several parents, so a small struct table can expand into
// a very large tree; this bounds that expansion.
func WithMaxNodes(nodes int) DecoderOption {
	return options.New(func(d *Decoder) error {
		if nodes <= 0 {
			return fmt.Errorf("max nodes must be positive, got %d", nodes)
		}
		d.maxNodes = nodes

		return nil
	})
}

// EncoderOption configures an Encoder.
type EncoderOption = options.Option[*Encoder]

// WithEncodeMaxDepth sets the maximum nesting depth the encoder accepts
// before failing validation with errs.ErrMaxDepthExceeded.
func WithEncodeMaxDepth(depth int) EncoderOption {
	return options.New(func(e *Encoder) error {
		if depth <= 0 {
			return fmt.Errorf("max depth must be positive, got %d", depth)
		}
		e.maxDepth = depth

		return nil
	})
}
