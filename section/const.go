package section

const (
	// Bit masks of the Options field
	EndiannessMask   = 0x0001 // Mask for endianness bit (bit 0), 0 little-endian, 1 big-endian
	ReservedBitsMask = 0x000E // Mask for reserved bits (bits 1-3), must be zero
	MagicNumberMask  = 0xFFF0 // Mask for magic number (bits 4-15)

	// Magic numbers (bits 4-15)
	MagicGrammarV1Opt = 0xEC10 // MagicGrammarV1Opt identifies version 1 of the grammar blob format.
)

const (
	HeaderSize    = 32         // fixed header size in bytes
	PayloadOffset = HeaderSize // byte offset where the payload starts
)
