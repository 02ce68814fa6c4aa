package blob

import (
	"fmt"
	"math"

	"github.com/arloliu/lzgram/codec"
	"github.com/arloliu/lzgram/compress"
	"github.com/arloliu/lzgram/errs"
	"github.com/arloliu/lzgram/format"
	"github.com/arloliu/lzgram/grammar"
	"github.com/arloliu/lzgram/internal/hash"
	"github.com/arloliu/lzgram/internal/options"
	"github.com/arloliu/lzgram/internal/pool"
	"github.com/arloliu/lzgram/lz78"
	"github.com/arloliu/lzgram/section"
)

// Encoder turns symbol sequences into blobs.
type Encoder[S format.CodeUnit] struct {
	cfg     *EncoderConfig
	grammar *codec.Encoder[S]
	payload compress.Codec
}

// NewEncoder creates a blob encoder for code units of type S.
//
// Parameters:
//   - opts: Optional configuration (compression, symbol width, endianness, empty input policy)
//
// Returns:
//   - *Encoder[S]: Encoder ready for use
//   - error: Invalid option values
func NewEncoder[S format.CodeUnit](opts ...EncoderOption) (*Encoder[S], error) {
	cfg := NewEncoderConfig[S]()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	ge, err := codec.NewEncoder[S](codec.WithSymbolWidth(cfg.SymbolWidth()))
	if err != nil {
		return nil, err
	}

	payload, err := compress.GetCodec(cfg.Compression())
	if err != nil {
		return nil, fmt.Errorf("failed to create payload codec: %w", err)
	}

	return &Encoder[S]{cfg: cfg, grammar: ge, payload: payload}, nil
}

// Config returns the encoder configuration.
func (e *Encoder[S]) Config() *EncoderConfig {
	return e.cfg
}

// Encode parses input into LZ78 phrases, builds and serializes the grammar and
// wraps the bit string in a blob.
func (e *Encoder[S]) Encode(input []S) (Blob, error) {
	if e.cfg.requireInput && len(input) == 0 {
		return Blob{}, errs.ErrEmptyInput
	}

	g, err := grammar.Build(lz78.Parse(input))
	if err != nil {
		return Blob{}, fmt.Errorf("failed to build grammar: %w", err)
	}

	return e.encodeGrammar(g, input)
}

// EncodeGrammar wraps an existing grammar. The checksum is computed over its
// expansion, so g must expand to at most maxSymbols symbols (0 = unlimited).
func (e *Encoder[S]) EncodeGrammar(g *grammar.Grammar[S], maxSymbols uint64) (Blob, error) {
	expanded, err := g.ExpandAll(maxSymbols)
	if err != nil {
		return Blob{}, err
	}
	if e.cfg.requireInput && len(expanded) == 0 {
		return Blob{}, errs.ErrEmptyInput
	}

	return e.encodeGrammar(g, expanded)
}

func (e *Encoder[S]) encodeGrammar(g *grammar.Grammar[S], input []S) (Blob, error) {
	if uint64(g.Len()) > math.MaxUint32 {
		return Blob{}, fmt.Errorf("%w: %d rules", errs.ErrInvalidPayload, g.Len())
	}

	bits, err := e.grammar.Encode(g)
	if err != nil {
		return Blob{}, fmt.Errorf("failed to encode grammar: %w", err)
	}

	payload, err := e.payload.Compress(bits.Data)
	if err != nil {
		return Blob{}, fmt.Errorf("failed to compress payload: %w", err)
	}

	header := *e.cfg.header
	header.RuleCount = uint32(g.Len()) //nolint: gosec
	header.BitLength = bits.Len
	header.SymbolCount = uint64(len(input))
	header.Checksum = hash.Units(input)

	buf := pool.GetBlobBuffer()
	defer pool.PutBlobBuffer(buf)

	buf.Grow(section.HeaderSize + len(payload))
	buf.B = header.AppendTo(buf.B)
	_, _ = buf.Write(payload)

	return Blob{data: buf.Clone(), header: header, unitBytes: format.UnitBytes[S]()}, nil
}
