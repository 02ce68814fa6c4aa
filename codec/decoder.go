package codec

import (
	"context"
	"errors"

	"github.com/arloliu/lzgram/errs"
	"github.com/arloliu/lzgram/format"
	"github.com/arloliu/lzgram/grammar"
	"github.com/arloliu/lzgram/internal/bitstream"
)

// minRuleBits is the size of the smallest possible rule: unary(0) and a terminator.
const minRuleBits = 3

type decodeState uint8

const (
	stateRuleCount decodeState = iota
	stateRuleIndex
	stateRuleBody
	stateDone
)

// Decoder reads grammars from the wire format.
//
// Every decode either returns a grammar that passed grammar.Validate, or an
// error and no grammar. Errors from malformed bits are *FormatError, errors
// from a well-formed but invalid grammar are *grammar.ValidationError.
//
// Note: a Decoder records the bits consumed by its last call and is therefore
// not safe for concurrent use. Use one Decoder per goroutine.
type Decoder[S format.CodeUnit] struct {
	cfg      Config
	consumed uint64
}

// NewDecoder creates a Decoder producing grammars over code units of type S.
func NewDecoder[S format.CodeUnit](opts ...Option) (*Decoder[S], error) {
	cfg, err := newConfig[S](opts)
	if err != nil {
		return nil, err
	}

	return &Decoder[S]{cfg: cfg}, nil
}

// Consumed returns the number of bits read by the last successful decode.
func (d *Decoder[S]) Consumed() uint64 {
	return d.consumed
}

// Decode reads one grammar from bits.
func (d *Decoder[S]) Decode(bits Bits) (*grammar.Grammar[S], error) {
	return d.DecodeContext(context.Background(), bits)
}

// DecodeContext is Decode with cancellation, checked before every rule.
func (d *Decoder[S]) DecodeContext(ctx context.Context, bits Bits) (*grammar.Grammar[S], error) {
	d.consumed = 0

	r := bitstream.NewReader(bits.Data, bits.Len)
	g, err := d.decode(ctx, r)
	if err != nil {
		return nil, err
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	d.consumed = r.Pos()

	return g, nil
}

func (d *Decoder[S]) decode(ctx context.Context, r *bitstream.Reader) (*grammar.Grammar[S], error) {
	var (
		g        *grammar.Grammar[S]
		numRules uint64
		done     uint64
		current  = -1
		body     []grammar.Item[S]
	)

	width := uint8(d.cfg.width)
	maxSym := uint64(^S(0))

	fail := func(reason string) error {
		return &FormatError{Reason: reason, BitOffset: r.Pos(), Rule: current}
	}

	state := stateRuleCount
	for state != stateDone {
		switch state {
		case stateRuleCount:
			n, err := r.ReadUnary()
			if err != nil {
				return nil, d.readErr(err, fail(ReasonMissingRuleCount))
			}
			if d.cfg.maxRules > 0 && n > uint64(d.cfg.maxRules) {
				return nil, fail(ReasonTooManyRules)
			}
			// every rule needs at least minRuleBits, reject before allocating
			if n > r.Remaining()/minRuleBits {
				return nil, fail(ReasonRuleCountExceedsInput)
			}
			numRules = n
			g = grammar.New[S](int(n)) //nolint: gosec

			state = stateRuleIndex
			if numRules == 0 {
				state = stateDone
			}

		case stateRuleIndex:
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			index, err := r.ReadUnary()
			if err != nil {
				return nil, d.readErr(err, fail(ReasonTruncatedRule))
			}
			if index >= numRules {
				return nil, fail(ReasonIndexOutOfRange)
			}
			current = int(index) //nolint: gosec
			body = make([]grammar.Item[S], 0, 2)
			state = stateRuleBody

		case stateRuleBody:
			indicator, err := r.ReadBit()
			if err != nil {
				return nil, d.readErr(err, fail(ReasonTruncatedRule))
			}

			if !indicator {
				sym, err := r.ReadBits(width)
				if err != nil {
					return nil, d.readErr(err, fail(ReasonTruncatedRule))
				}
				if sym > maxSym {
					return nil, fail(ReasonSymbolOverflow)
				}
				body = append(body, grammar.Terminal(S(sym)))

				continue
			}

			// 10 closes the rule, 11 starts a non-terminal whose unary index
			// already had its first one-bit consumed.
			next, err := r.ReadBit()
			if err != nil {
				return nil, d.readErr(err, fail(ReasonTruncatedRule))
			}
			if next {
				rest, err := r.ReadUnary()
				if err != nil {
					return nil, d.readErr(err, fail(ReasonTruncatedRule))
				}
				body = append(body, grammar.NonTerminal[S](int(rest+1))) //nolint: gosec

				continue
			}

			if err := g.SetRule(current, body); err != nil {
				if errors.Is(err, errs.ErrDuplicateRule) {
					return nil, fail(ReasonDuplicateIndex)
				}

				return nil, err
			}
			done++
			current = -1
			state = stateRuleIndex
			if done == numRules {
				state = stateDone
			}
		}
	}

	return g, nil
}

// readErr maps short reads to the format error for the current state and
// passes other reader failures through.
func (d *Decoder[S]) readErr(err error, formatErr error) error {
	if errors.Is(err, bitstream.ErrShortRead) {
		return formatErr
	}

	return err
}
