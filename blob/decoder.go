package blob

import (
	"context"
	"fmt"
	"math"

	"github.com/arloliu/lzgram/codec"
	"github.com/arloliu/lzgram/compress"
	"github.com/arloliu/lzgram/errs"
	"github.com/arloliu/lzgram/format"
	"github.com/arloliu/lzgram/grammar"
	"github.com/arloliu/lzgram/internal/hash"
	"github.com/arloliu/lzgram/internal/options"
	"github.com/arloliu/lzgram/section"
)

// Decoder reads one blob.
type Decoder[S format.CodeUnit] struct {
	data   []byte
	header section.GrammarHeader
	cfg    *DecoderConfig
}

// NewDecoder parses and validates the blob header.
//
// Parameters:
//   - data: Serialized blob (header followed by payload)
//   - opts: Optional limits (WithMaxSymbols, WithMaxRules)
//
// Returns:
//   - *Decoder[S]: Decoder ready to decode the payload
//   - error: Header size, magic or flag errors, or a header exceeding the configured limits
func NewDecoder[S format.CodeUnit](data []byte, opts ...DecoderOption) (*Decoder[S], error) {
	cfg := NewDecoderConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	d := &Decoder[S]{data: data, cfg: cfg}
	if err := d.parseHeader(); err != nil {
		return nil, err
	}

	return d, nil
}

// parseHeader parses the header section and checks it against the limits.
func (d *Decoder[S]) parseHeader() error {
	if len(d.data) < section.HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	if err := d.header.Parse(d.data[:section.HeaderSize]); err != nil {
		return err
	}

	if d.header.RuleCount == 0 {
		return fmt.Errorf("%w: blob without start rule", errs.ErrInvalidPayload)
	}

	if maxSym := d.cfg.maxSymbols; maxSym > 0 && d.header.SymbolCount > maxSym {
		return fmt.Errorf("%w: %d symbols, limit %d", errs.ErrSymbolCountTooBig, d.header.SymbolCount, maxSym)
	}

	if maxRules := d.cfg.maxRules; maxRules > 0 && uint64(d.header.RuleCount) > uint64(maxRules) {
		return fmt.Errorf("%w: %d rules, limit %d", errs.ErrRuleCountTooBig, d.header.RuleCount, maxRules)
	}

	return nil
}

// Header returns a copy of the parsed header.
func (d *Decoder[S]) Header() section.GrammarHeader {
	return d.header
}

// Stats reports the size figures declared by the header.
func (d *Decoder[S]) Stats() Stats {
	return newStats(&d.header, len(d.data), format.UnitBytes[S]())
}

// Grammar decompresses and decodes the grammar without expanding it.
func (d *Decoder[S]) Grammar() (*grammar.Grammar[S], error) {
	return d.GrammarContext(context.Background())
}

// GrammarContext is Grammar with cancellation.
func (d *Decoder[S]) GrammarContext(ctx context.Context) (*grammar.Grammar[S], error) {
	bits, err := d.payloadBits()
	if err != nil {
		return nil, err
	}

	gd, err := codec.NewDecoder[S](
		codec.WithSymbolWidth(d.header.Flag.GetSymbolWidth()),
		codec.WithMaxRules(ruleLimit(d.header.RuleCount)),
	)
	if err != nil {
		return nil, err
	}

	g, err := gd.DecodeContext(ctx, bits)
	if err != nil {
		return nil, fmt.Errorf("failed to decode grammar: %w", err)
	}

	if gd.Consumed() != d.header.BitLength {
		return nil, fmt.Errorf("%w: grammar ends at bit %d of %d", errs.ErrInvalidPayload, gd.Consumed(), d.header.BitLength)
	}

	if uint64(g.Len()) != uint64(d.header.RuleCount) {
		return nil, fmt.Errorf("%w: decoded %d rules, header declares %d", errs.ErrRuleCountMismatch, g.Len(), d.header.RuleCount)
	}

	return g, nil
}

// Decode decodes the grammar, expands it and verifies the result against
// the header symbol count and checksum.
func (d *Decoder[S]) Decode() ([]S, error) {
	return d.DecodeContext(context.Background())
}

// DecodeContext is Decode with cancellation.
func (d *Decoder[S]) DecodeContext(ctx context.Context) ([]S, error) {
	g, err := d.GrammarContext(ctx)
	if err != nil {
		return nil, err
	}

	n, err := g.ExpandedLen(grammar.StartRule)
	if err != nil {
		return nil, err
	}
	if n != d.header.SymbolCount {
		return nil, fmt.Errorf("%w: grammar expands to %d symbols, header declares %d", errs.ErrInvalidPayload, n, d.header.SymbolCount)
	}

	out, err := g.ExpandAll(d.cfg.maxSymbols)
	if err != nil {
		return nil, err
	}

	if sum := hash.Units(out); sum != d.header.Checksum {
		return nil, fmt.Errorf("%w: got %016x, header declares %016x", errs.ErrChecksumMismatch, sum, d.header.Checksum)
	}

	return out, nil
}

// payloadBits decompresses the payload into the packed bit string.
func (d *Decoder[S]) payloadBits() (codec.Bits, error) {
	size := d.header.PayloadBytes()
	if size > math.MaxInt32 {
		return codec.Bits{}, fmt.Errorf("%w: payload of %d bytes", errs.ErrInvalidPayload, size)
	}

	payloadCodec, err := compress.GetCodec(d.header.Flag.GetCompression())
	if err != nil {
		return codec.Bits{}, fmt.Errorf("failed to create payload codec: %w", err)
	}

	raw, err := payloadCodec.Decompress(d.data[section.PayloadOffset:], int(size))
	if err != nil {
		return codec.Bits{}, fmt.Errorf("failed to decompress payload: %w", err)
	}

	return codec.Bits{Data: raw, Len: d.header.BitLength}, nil
}

// ruleLimit converts the header rule count to a codec rule limit.
func ruleLimit(n uint32) int {
	if uint64(n) > math.MaxInt32 {
		return 0
	}

	return int(n)
}
