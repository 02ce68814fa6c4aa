package endian

import (
	"encoding/binary"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestCheckEndianness(t *testing.T) {
	var probe uint16 = 0x0102
	first := (*[2]byte)(unsafe.Pointer(&probe))[0]

	switch first {
	case 0x01:
		require.Equal(t, binary.BigEndian, CheckEndianness())
		require.False(t, IsNativeLittleEndian())
	case 0x02:
		require.Equal(t, binary.LittleEndian, CheckEndianness())
		require.True(t, IsNativeLittleEndian())
	default:
		require.Failf(t, "unexpected byte value", "got: %v", first)
	}
}

func TestGetEngine(t *testing.T) {
	t.Run("little endian", func(t *testing.T) {
		e := GetEngine(false)
		require.Equal(t, GetLittleEndianEngine(), e)
		require.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, e.AppendUint32(nil, 0x01020304))
	})

	t.Run("big endian", func(t *testing.T) {
		e := GetEngine(true)
		require.Equal(t, GetBigEndianEngine(), e)
		require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, e.AppendUint32(nil, 0x01020304))
		require.Equal(t, uint64(0x0102030405060708), e.Uint64([]byte{1, 2, 3, 4, 5, 6, 7, 8}))
	})
}
