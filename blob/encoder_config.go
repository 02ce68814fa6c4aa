package blob

import (
	"fmt"

	"github.com/arloliu/lzgram/errs"
	"github.com/arloliu/lzgram/format"
	"github.com/arloliu/lzgram/internal/options"
	"github.com/arloliu/lzgram/section"
)

// EncoderConfig holds the settings of an Encoder.
type EncoderConfig struct {
	header       *section.GrammarHeader
	requireInput bool
}

// NewEncoderConfig creates a config with little-endian byte order, no
// compression and the symbol width of S.
func NewEncoderConfig[S format.CodeUnit]() *EncoderConfig {
	header := section.NewGrammarHeader()
	header.Flag.SetSymbolWidth(format.UnitWidth[S]())

	return &EncoderConfig{header: header}
}

// setCompression sets the payload compression type.
func (c *EncoderConfig) setCompression(comp format.CompressionType) error {
	switch comp {
	case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
		c.header.Flag.SetCompression(comp)
		return nil
	default:
		return fmt.Errorf("invalid payload compression: %v", comp)
	}
}

// setSymbolWidth sets the terminal width.
func (c *EncoderConfig) setSymbolWidth(width format.SymbolWidth) error {
	if !width.Valid() {
		return fmt.Errorf("%w: %d", errs.ErrInvalidSymbolWidth, width)
	}
	c.header.Flag.SetSymbolWidth(width)

	return nil
}

// setEndianess sets the byte order of the header fields.
func (c *EncoderConfig) setEndianess(endiness endianness) {
	if endiness == bigEndianOpt {
		c.header.Flag.WithBigEndian()
	} else {
		c.header.Flag.WithLittleEndian()
	}
}

// Compression returns the configured payload compression.
func (c *EncoderConfig) Compression() format.CompressionType {
	return c.header.Flag.GetCompression()
}

// SymbolWidth returns the configured terminal width.
func (c *EncoderConfig) SymbolWidth() format.SymbolWidth {
	return c.header.Flag.GetSymbolWidth()
}

// IsBigEndian reports whether header fields are written big-endian.
func (c *EncoderConfig) IsBigEndian() bool {
	return c.header.Flag.IsBigEndian()
}

// endianness represents the byte order configuration option.
type endianness uint8

const (
	littleEndianOpt endianness = iota
	bigEndianOpt
)

// EncoderOption is a functional option for configuring an Encoder.
type EncoderOption = options.Option[*EncoderConfig]

// WithLittleEndian writes header fields little-endian. It is the default option.
func WithLittleEndian() EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.setEndianess(littleEndianOpt)
	})
}

// WithBigEndian writes header fields big-endian.
func WithBigEndian() EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.setEndianess(bigEndianOpt)
	})
}

// WithCompression sets the stage-2 compression of the payload.
func WithCompression(comp format.CompressionType) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		return c.setCompression(comp)
	})
}

// WithSymbolWidth sets the number of bits per terminal. Symbols that do not
// fit fail the encode with errs.ErrSymbolOverflow.
func WithSymbolWidth(width format.SymbolWidth) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		return c.setSymbolWidth(width)
	})
}

// WithRequireInput makes Encode fail with errs.ErrEmptyInput on empty input
// instead of producing a blob of the empty grammar.
func WithRequireInput(required bool) EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.requireInput = required
	})
}
