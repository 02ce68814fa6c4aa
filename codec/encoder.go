package codec

import (
	"fmt"

	"github.com/arloliu/lzgram/errs"
	"github.com/arloliu/lzgram/format"
	"github.com/arloliu/lzgram/grammar"
	"github.com/arloliu/lzgram/internal/bitstream"
)

// ruleTerminator is the two-bit pattern closing every rule body.
const ruleTerminator = 0b10

// Encoder writes grammars in the wire format. It holds only configuration and
// is safe for concurrent use.
type Encoder[S format.CodeUnit] struct {
	cfg Config
}

// NewEncoder creates an Encoder for grammars over code units of type S.
func NewEncoder[S format.CodeUnit](opts ...Option) (*Encoder[S], error) {
	cfg, err := newConfig[S](opts)
	if err != nil {
		return nil, err
	}

	return &Encoder[S]{cfg: cfg}, nil
}

// Config returns the encoder settings.
func (e *Encoder[S]) Config() Config {
	return e.cfg
}

// Encode serializes g. The grammar is validated first; encoding the same
// grammar twice yields identical bits.
func (e *Encoder[S]) Encode(g *grammar.Grammar[S]) (Bits, error) {
	if err := g.Validate(); err != nil {
		return Bits{}, err
	}

	w := bitstream.NewWriter()
	if err := e.writeGrammar(w, g); err != nil {
		_, _, _ = w.Finish()
		return Bits{}, err
	}

	data, n, err := w.Finish()
	if err != nil {
		return Bits{}, err
	}

	return Bits{Data: data, Len: n}, nil
}

func (e *Encoder[S]) writeGrammar(w *bitstream.Writer, g *grammar.Grammar[S]) error {
	if err := w.WriteUnary(uint64(g.Len())); err != nil {
		return err
	}

	width := uint8(e.cfg.width)
	for index, body := range g.Rules() {
		if err := w.WriteUnary(uint64(index)); err != nil {
			return err
		}

		for _, it := range body {
			switch it.Kind() {
			case grammar.KindTerminal:
				sym := uint64(it.Symbol())
				if !e.cfg.width.Fits(sym) {
					return fmt.Errorf("%w: rule %d: symbol 0x%x needs more than %d bits", errs.ErrSymbolOverflow, index, sym, width)
				}
				if err := w.WriteBit(false); err != nil {
					return err
				}
				if err := w.WriteBits(sym, width); err != nil {
					return err
				}
			case grammar.KindNonTerminal:
				if err := w.WriteBit(true); err != nil {
					return err
				}
				if err := w.WriteUnary(uint64(it.Index())); err != nil { //nolint: gosec
					return err
				}
			}
		}

		if err := w.WriteBits(ruleTerminator, 2); err != nil {
			return err
		}
	}

	return nil
}
