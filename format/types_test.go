package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnitWidth(t *testing.T) {
	require.Equal(t, SymbolWidth(8), UnitWidth[uint8]())
	require.Equal(t, SymbolWidth(16), UnitWidth[uint16]())
	require.Equal(t, SymbolWidth(32), UnitWidth[uint32]())

	type rune32 uint32
	require.Equal(t, SymbolWidth(32), UnitWidth[rune32]())
	require.Equal(t, 4, UnitBytes[rune32]())
	require.Equal(t, 1, UnitBytes[byte]())
}

func TestSymbolWidth(t *testing.T) {
	t.Run("Valid range", func(t *testing.T) {
		require.False(t, SymbolWidth(0).Valid())
		require.True(t, MinSymbolWidth.Valid())
		require.True(t, ByteSymbolWidth.Valid())
		require.True(t, MaxSymbolWidth.Valid())
		require.False(t, SymbolWidth(33).Valid())
	})

	t.Run("Fits", func(t *testing.T) {
		require.True(t, SymbolWidth(7).Fits(127))
		require.False(t, SymbolWidth(7).Fits(128))
		require.True(t, SymbolWidth(1).Fits(0))
		require.True(t, MaxSymbolWidth.Fits(1<<32-1))
	})
}

func TestCompressionType(t *testing.T) {
	tests := []struct {
		name string
		typ  CompressionType
		str  string
	}{
		{"none", CompressionNone, "None"},
		{"zstd", CompressionZstd, "Zstd"},
		{"s2", CompressionS2, "S2"},
		{"lz4", CompressionLZ4, "LZ4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ, ok := ParseCompression(tt.name)
			require.True(t, ok)
			require.Equal(t, tt.typ, typ)
			require.Equal(t, tt.str, typ.String())
		})
	}

	_, ok := ParseCompression("brotli")
	require.False(t, ok)
	require.Equal(t, "Unknown", CompressionType(0xF).String())
}
