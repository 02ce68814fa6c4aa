package format

import "math/bits"

type (
	CompressionType uint8
	SymbolWidth     uint8
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

const (
	MinSymbolWidth  SymbolWidth = 1  // MinSymbolWidth is the narrowest terminal code.
	MaxSymbolWidth  SymbolWidth = 32 // MaxSymbolWidth is the widest terminal code.
	ByteSymbolWidth SymbolWidth = 8  // ByteSymbolWidth is the canonical 8-bit terminal code.
)

// CodeUnit is the set of integer types usable as grammar terminals.
type CodeUnit interface {
	~uint8 | ~uint16 | ~uint32
}

// UnitWidth returns the bit size of the code unit type S.
func UnitWidth[S CodeUnit]() SymbolWidth {
	var zero S
	return SymbolWidth(bits.Len64(uint64(^zero))) //nolint: gosec
}

// UnitBytes returns the number of bytes needed to store one code unit of type S.
func UnitBytes[S CodeUnit]() int {
	return int(UnitWidth[S]()) / 8
}

// Fits reports whether v can be written in w bits.
func (w SymbolWidth) Fits(v uint64) bool {
	return bits.Len64(v) <= int(w)
}

// Valid reports whether the width is within [MinSymbolWidth, MaxSymbolWidth].
func (w SymbolWidth) Valid() bool {
	return w >= MinSymbolWidth && w <= MaxSymbolWidth
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompression maps a case-sensitive lower-case name to a CompressionType.
func ParseCompression(name string) (CompressionType, bool) {
	switch name {
	case "none", "":
		return CompressionNone, true
	case "zstd":
		return CompressionZstd, true
	case "s2":
		return CompressionS2, true
	case "lz4":
		return CompressionLZ4, true
	default:
		return 0, false
	}
}
