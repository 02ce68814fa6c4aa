// Package codec serializes grammars to a compact bit string and back.
//
// # Wire format
//
// The bit string is a concatenation of four primitives, most significant bit
// first:
//
//	unary(v)       v one-bits followed by a zero-bit
//	terminal(s)    0, then s in SymbolWidth bits
//	nonterminal(i) 1, then unary(i)
//	terminator     10
//
// A grammar with n rules is written as unary(n) followed by, for each rule in
// increasing index order, unary(index), the body items, and a terminator.
//
// A reference to rule 0 would read as a terminator, so encodable grammars must
// not reference the start rule; grammar.Validate enforces that.
//
// The format has no length field or end marker beyond the last terminator.
// Bits carries the exact bit length next to the zero padded bytes.
package codec

import (
	"fmt"
	"strings"

	"github.com/arloliu/lzgram/errs"
	"github.com/arloliu/lzgram/format"
	"github.com/arloliu/lzgram/internal/options"
)

// Bits is a packed bit string. Data holds Len meaningful bits, most
// significant bit first; the rest of the final byte is zero.
type Bits struct {
	Data []byte
	Len  uint64
}

// BitsFromBytes treats every bit of data as meaningful.
func BitsFromBytes(data []byte) Bits {
	return Bits{Data: data, Len: uint64(len(data)) * 8}
}

// Truncate returns the first n bits. n larger than Len returns b unchanged.
func (b Bits) Truncate(n uint64) Bits {
	if n >= b.Len {
		return b
	}

	return Bits{Data: b.Data[:(n+7)/8], Len: n}
}

// String renders the bits as '0' and '1' characters.
func (b Bits) String() string {
	var sb strings.Builder
	sb.Grow(int(b.Len)) //nolint: gosec
	for i := range b.Len {
		if b.Data[i/8]&(0x80>>(i%8)) != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}

	return sb.String()
}

// Format error reasons.
const (
	ReasonMissingRuleCount = "missing rule count"
	ReasonIndexOutOfRange  = "index out of range"
	ReasonTruncatedRule    = "truncated rule"
	ReasonDuplicateIndex   = "duplicate rule index"
	ReasonTooManyRules     = "too many rules"
	ReasonSymbolOverflow   = "symbol overflow"

	// ReasonRuleCountExceedsInput is reported before any rule is read, when
	// the remaining bits cannot hold the declared number of rules.
	ReasonRuleCountExceedsInput = "rule count exceeds input"
)

// FormatError reports a bit string that does not follow the wire format.
type FormatError struct {
	Reason    string
	BitOffset uint64 // position of the reader when the error was detected
	Rule      int    // rule index being decoded, -1 if not known yet
}

func (e *FormatError) Error() string {
	if e.Rule < 0 {
		return fmt.Sprintf("%v: %s at bit %d", errs.ErrFormat, e.Reason, e.BitOffset)
	}

	return fmt.Sprintf("%v: %s at bit %d (rule %d)", errs.ErrFormat, e.Reason, e.BitOffset, e.Rule)
}

// Unwrap makes errors.Is(err, errs.ErrFormat) hold.
func (e *FormatError) Unwrap() error {
	return errs.ErrFormat
}

// Config holds the settings shared by Encoder and Decoder.
type Config struct {
	width    format.SymbolWidth
	maxRules int
}

// Option configures an Encoder or Decoder.
type Option = options.Option[*Config]

// WithSymbolWidth sets the number of bits per terminal symbol.
// The default is the bit size of the code unit type.
func WithSymbolWidth(width format.SymbolWidth) Option {
	return options.New(func(c *Config) error {
		if !width.Valid() {
			return fmt.Errorf("%w: %d", errs.ErrInvalidSymbolWidth, width)
		}
		c.width = width

		return nil
	})
}

// WithMaxRules caps the rule count a Decoder accepts; 0 disables the cap.
// It has no effect on encoding.
func WithMaxRules(n int) Option {
	return options.NoError(func(c *Config) {
		c.maxRules = max(n, 0)
	})
}

func newConfig[S format.CodeUnit](opts []Option) (Config, error) {
	cfg := Config{width: format.UnitWidth[S]()}
	if err := options.Apply(&cfg, opts...); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// SymbolWidth returns the configured terminal width.
func (c Config) SymbolWidth() format.SymbolWidth {
	return c.width
}
