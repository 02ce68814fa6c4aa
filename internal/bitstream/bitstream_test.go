package bitstream

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// render returns the first n bits of data as a string of '0' and '1'.
func render(data []byte, n uint64) string {
	var sb strings.Builder
	for i := range n {
		if data[i/8]&(0x80>>(i%8)) != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}

	return sb.String()
}

func TestWriter(t *testing.T) {
	t.Run("unary codes", func(t *testing.T) {
		w := NewWriter()
		require.NoError(t, w.WriteUnary(0))
		require.NoError(t, w.WriteUnary(3))
		require.NoError(t, w.WriteUnary(1))

		data, n, err := w.Finish()
		require.NoError(t, err)
		require.Equal(t, uint64(7), n)
		require.Equal(t, "0111010", render(data, n))
		require.Equal(t, []byte{0b01110100}, data, "final byte is zero padded")
	})

	t.Run("fixed width masks high bits", func(t *testing.T) {
		w := NewWriter()
		require.NoError(t, w.WriteBits(0xFF05, 4))
		require.NoError(t, w.WriteBit(true))
		require.NoError(t, w.WriteBits('a', 8))

		data, n, err := w.Finish()
		require.NoError(t, err)
		require.Equal(t, uint64(13), n)
		require.Equal(t, "0101"+"1"+"01100001", render(data, n))
	})

	t.Run("long unary spans chunks", func(t *testing.T) {
		w := NewWriter()
		require.NoError(t, w.WriteUnary(130))
		data, n, err := w.Finish()
		require.NoError(t, err)
		require.Equal(t, uint64(131), n)
		require.Equal(t, strings.Repeat("1", 130)+"0", render(data, n))
	})

	t.Run("empty stream", func(t *testing.T) {
		data, n, err := NewWriter().Finish()
		require.NoError(t, err)
		require.Zero(t, n)
		require.Empty(t, data)
	})

	t.Run("finish twice", func(t *testing.T) {
		w := NewWriter()
		_, _, err := w.Finish()
		require.NoError(t, err)
		_, _, err = w.Finish()
		require.Error(t, err)
	})
}

func TestReader(t *testing.T) {
	t.Run("reads what the writer wrote", func(t *testing.T) {
		r := rand.New(rand.NewPCG(1, 2))
		type op struct {
			unary bool
			v     uint64
			n     uint8
		}
		ops := make([]op, 500)
		w := NewWriter()
		for i := range ops {
			if r.IntN(2) == 0 {
				ops[i] = op{unary: true, v: uint64(r.IntN(70))}
				require.NoError(t, w.WriteUnary(ops[i].v))
			} else {
				n := uint8(r.IntN(32) + 1)
				ops[i] = op{v: r.Uint64() & ((1 << n) - 1), n: n}
				require.NoError(t, w.WriteBits(ops[i].v, n))
			}
		}
		data, n, err := w.Finish()
		require.NoError(t, err)

		rd := NewReader(data, n)
		for _, o := range ops {
			var got uint64
			if o.unary {
				got, err = rd.ReadUnary()
			} else {
				got, err = rd.ReadBits(o.n)
			}
			require.NoError(t, err)
			require.Equal(t, o.v, got)
		}
		require.Zero(t, rd.Remaining())
		require.Equal(t, n, rd.Pos())
	})

	t.Run("limit hides padding", func(t *testing.T) {
		rd := NewReader([]byte{0b10100000}, 3)
		b, err := rd.ReadBit()
		require.NoError(t, err)
		require.True(t, b)

		_, err = rd.ReadBits(3)
		require.ErrorIs(t, err, ErrShortRead)

		v, err := rd.ReadBits(2)
		require.NoError(t, err)
		require.Equal(t, uint64(0b01), v)

		_, err = rd.ReadBit()
		require.ErrorIs(t, err, ErrShortRead)
	})

	t.Run("limit clamped to data", func(t *testing.T) {
		rd := NewReader([]byte{0xFF}, 100)
		require.Equal(t, uint64(8), rd.Remaining())
	})

	t.Run("unterminated unary", func(t *testing.T) {
		rd := NewReader([]byte{0xFF}, 8)
		_, err := rd.ReadUnary()
		require.ErrorIs(t, err, ErrShortRead)
	})

	t.Run("zero width read", func(t *testing.T) {
		rd := NewReader(nil, 0)
		v, err := rd.ReadBits(0)
		require.NoError(t, err)
		require.Zero(t, v)
	})
}
