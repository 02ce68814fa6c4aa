package hash

import (
	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/lzgram/format"
)

// Sum computes the xxHash64 of a byte slice.
func Sum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Units computes the xxHash64 of a code unit sequence.
//
// Each unit is hashed as its little-endian byte representation at the natural
// size of S, so for byte input the result equals Sum(input).
func Units[S format.CodeUnit](units []S) uint64 {
	if u8, ok := any(units).([]byte); ok {
		return xxhash.Sum64(u8)
	}

	size := format.UnitBytes[S]()
	d := xxhash.New()

	var chunk [256]byte
	n := 0
	for _, u := range units {
		v := uint32(u)
		for i := range size {
			chunk[n+i] = byte(v >> (8 * i))
		}
		n += size
		if n+size > len(chunk) {
			_, _ = d.Write(chunk[:n])
			n = 0
		}
	}
	if n > 0 {
		_, _ = d.Write(chunk[:n])
	}

	return d.Sum64()
}
