package section

import (
	"github.com/arloliu/lzgram/errs"
	"github.com/arloliu/lzgram/format"
)

var validCompressions = map[uint8]struct{}{
	uint8(format.CompressionNone): {},
	uint8(format.CompressionZstd): {},
	uint8(format.CompressionS2):   {},
	uint8(format.CompressionLZ4):  {},
}

// GrammarFlag is the packed flag field at the start of the grammar header.
type GrammarFlag struct {
	// Options is a packed field for various options.
	// Bit 0 is endianness flag, 0 means little-endian, 1 means big-endian.
	// Bits 1-3 are reserved for future use, must be set to 0.
	// Bits 4-15 are magic number to identify the blob format:
	//   - 0xEC10 (0b1110_1100_0001_0000): Grammar blob format v1
	Options uint16

	// SymbolWidth is the number of bits per terminal symbol in the bit string.
	SymbolWidth uint8

	// Compression indicates the codec applied to the packed bit string.
	// Valid values: CompressionNone, CompressionZstd, CompressionS2, CompressionLZ4
	Compression uint8
}

// NewGrammarFlag creates a flag with little-endian byte order, 8-bit symbols
// and no payload compression.
func NewGrammarFlag() GrammarFlag {
	return GrammarFlag{
		Options:     MagicGrammarV1Opt,
		SymbolWidth: uint8(format.ByteSymbolWidth),
		Compression: uint8(format.CompressionNone),
	}
}

// IsBigEndian returns whether multi-byte fields are big-endian.
func (f GrammarFlag) IsBigEndian() bool {
	return (f.Options & EndiannessMask) != 0
}

// IsLittleEndian returns whether multi-byte fields are little-endian.
func (f GrammarFlag) IsLittleEndian() bool {
	return !f.IsBigEndian()
}

// WithBigEndian sets big-endian byte order.
func (f *GrammarFlag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// WithLittleEndian sets little-endian byte order.
func (f *GrammarFlag) WithLittleEndian() {
	f.Options &^= EndiannessMask
}

// GetMagicNumber returns the magic number from the Options field.
func (f GrammarFlag) GetMagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// SetSymbolWidth sets the terminal width.
func (f *GrammarFlag) SetSymbolWidth(width format.SymbolWidth) {
	f.SymbolWidth = uint8(width)
}

// GetSymbolWidth returns the terminal width.
func (f GrammarFlag) GetSymbolWidth() format.SymbolWidth {
	return format.SymbolWidth(f.SymbolWidth)
}

// SetCompression sets the payload compression type.
func (f *GrammarFlag) SetCompression(c format.CompressionType) {
	f.Compression = uint8(c)
}

// GetCompression returns the payload compression type.
func (f GrammarFlag) GetCompression() format.CompressionType {
	return format.CompressionType(f.Compression)
}

// Validate checks the magic number, reserved bits, symbol width and compression.
func (f GrammarFlag) Validate() error {
	if f.GetMagicNumber() != MagicGrammarV1Opt {
		return errs.ErrInvalidMagicNumber
	}

	if (f.Options & ReservedBitsMask) != 0 {
		return errs.ErrInvalidHeaderFlags
	}

	if !f.GetSymbolWidth().Valid() {
		return errs.ErrInvalidHeaderFlags
	}

	if _, ok := validCompressions[f.Compression]; !ok {
		return errs.ErrInvalidHeaderFlags
	}

	return nil
}
