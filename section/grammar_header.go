package section

import (
	"github.com/arloliu/lzgram/endian"
	"github.com/arloliu/lzgram/errs"
)

// GrammarHeader is the fixed 32-byte header of a grammar blob.
type GrammarHeader struct {
	// Flag holds byte order, magic number, symbol width and compression.
	Flag GrammarFlag // 4 bytes, offset 0-3
	// RuleCount is the number of grammar rules, including the start rule.
	RuleCount uint32 // 4 bytes, offset 4-7
	// BitLength is the number of meaningful bits in the uncompressed payload.
	BitLength uint64 // 8 bytes, offset 8-15
	// SymbolCount is the number of code units the grammar expands to.
	SymbolCount uint64 // 8 bytes, offset 16-23
	// Checksum is the xxHash64 of the expanded code units.
	Checksum uint64 // 8 bytes, offset 24-31
}

// NewGrammarHeader creates a header with default flags.
func NewGrammarHeader() *GrammarHeader {
	return &GrammarHeader{Flag: NewGrammarFlag()}
}

// Parse parses the header from a byte slice.
// It returns an error if the data is not exactly HeaderSize bytes or if the flags are invalid.
func (h *GrammarHeader) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	// Options is always little-endian, it carries the endianness bit itself
	h.Flag.Options = uint16(data[0]) | (uint16(data[1]) << 8)
	h.Flag.SymbolWidth = data[2]
	h.Flag.Compression = data[3]

	if err := h.Flag.Validate(); err != nil {
		return err
	}

	engine := h.GetEndianEngine()
	h.RuleCount = engine.Uint32(data[4:8])
	h.BitLength = engine.Uint64(data[8:16])
	h.SymbolCount = engine.Uint64(data[16:24])
	h.Checksum = engine.Uint64(data[24:32])

	return nil
}

// Bytes serializes the header into a new HeaderSize byte slice.
func (h GrammarHeader) Bytes() []byte {
	return h.AppendTo(make([]byte, 0, HeaderSize))
}

// AppendTo appends the serialized header to dst.
func (h GrammarHeader) AppendTo(dst []byte) []byte {
	engine := h.GetEndianEngine()

	dst = append(dst, byte(h.Flag.Options), byte(h.Flag.Options>>8), h.Flag.SymbolWidth, h.Flag.Compression)
	dst = engine.AppendUint32(dst, h.RuleCount)
	dst = engine.AppendUint64(dst, h.BitLength)
	dst = engine.AppendUint64(dst, h.SymbolCount)
	dst = engine.AppendUint64(dst, h.Checksum)

	return dst
}

// PayloadBytes returns the number of bytes BitLength bits occupy when packed.
func (h GrammarHeader) PayloadBytes() uint64 {
	return (h.BitLength + 7) / 8
}

// GetEndianEngine returns the appropriate endian engine based on the header flags.
func (h GrammarHeader) GetEndianEngine() endian.EndianEngine {
	return endian.GetEngine(h.Flag.IsBigEndian())
}
