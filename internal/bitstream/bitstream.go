// Package bitstream provides length-aware bit writers and readers on top of
// github.com/icza/bitio.
//
// Bits are packed most significant bit first. The writer pads the final byte
// with zeros; the exact number of meaningful bits is tracked separately because
// the grammar wire format has no end marker of its own.
package bitstream

import (
	"bytes"
	"errors"
	"io"

	"github.com/icza/bitio"

	"github.com/arloliu/lzgram/internal/pool"
)

// ErrShortRead is returned when a read needs more bits than the stream holds.
var ErrShortRead = errors.New("bitstream: short read")

// Writer accumulates bits into a pooled byte buffer.
type Writer struct {
	buf *pool.ByteBuffer
	bw  *bitio.Writer
	n   uint64
}

// NewWriter creates a Writer backed by a buffer from the stream pool.
// Finish must be called to obtain the bytes and release the buffer.
func NewWriter() *Writer {
	buf := pool.GetStreamBuffer()

	return &Writer{
		buf: buf,
		bw:  bitio.NewWriter(buf),
	}
}

// Len returns the number of bits written so far.
func (w *Writer) Len() uint64 {
	return w.n
}

// WriteBit writes one bit.
func (w *Writer) WriteBit(bit bool) error {
	if err := w.bw.WriteBool(bit); err != nil {
		return err
	}
	w.n++

	return nil
}

// WriteBits writes the low n bits of v, most significant first. n is at most 64.
func (w *Writer) WriteBits(v uint64, n uint8) error {
	if n == 0 {
		return nil
	}
	// bitio requires the bits above n to be zero
	if n < 64 {
		v &= (1 << n) - 1
	}
	if err := w.bw.WriteBits(v, n); err != nil {
		return err
	}
	w.n += uint64(n)

	return nil
}

// WriteUnary writes v one-bits followed by a single zero-bit.
func (w *Writer) WriteUnary(v uint64) error {
	for v > 0 {
		chunk := uint8(64)
		if v < 64 {
			chunk = uint8(v)
		}
		if err := w.WriteBits(^uint64(0), chunk); err != nil {
			return err
		}
		v -= uint64(chunk)
	}

	return w.WriteBit(false)
}

// Finish flushes pending bits and returns a copy of the packed bytes together
// with the exact bit length. The writer must not be used afterwards.
func (w *Writer) Finish() ([]byte, uint64, error) {
	if w.buf == nil {
		return nil, 0, errors.New("bitstream: writer already finished")
	}
	defer func() {
		pool.PutStreamBuffer(w.buf)
		w.buf = nil
	}()

	if err := w.bw.Close(); err != nil {
		return nil, 0, err
	}

	return w.buf.Clone(), w.n, nil
}

// Reader reads at most a fixed number of bits from a byte slice.
type Reader struct {
	br    *bitio.Reader
	pos   uint64
	limit uint64
}

// NewReader creates a Reader over data that yields exactly bitLen bits.
// bitLen is clamped to the number of bits available in data.
func NewReader(data []byte, bitLen uint64) *Reader {
	if avail := uint64(len(data)) * 8; bitLen > avail {
		bitLen = avail
	}

	return &Reader{
		br:    bitio.NewReader(bytes.NewReader(data)),
		limit: bitLen,
	}
}

// Pos returns the number of bits consumed.
func (r *Reader) Pos() uint64 {
	return r.pos
}

// Remaining returns the number of bits left before the limit.
func (r *Reader) Remaining() uint64 {
	return r.limit - r.pos
}

// ReadBit reads one bit.
func (r *Reader) ReadBit() (bool, error) {
	if r.pos >= r.limit {
		return false, ErrShortRead
	}
	b, err := r.br.ReadBool()
	if err != nil {
		return false, shortRead(err)
	}
	r.pos++

	return b, nil
}

// ReadBits reads n bits, most significant first, into the low bits of the result.
func (r *Reader) ReadBits(n uint8) (uint64, error) {
	if n == 0 {
		return 0, nil
	}
	if r.Remaining() < uint64(n) {
		return 0, ErrShortRead
	}
	v, err := r.br.ReadBits(n)
	if err != nil {
		return 0, shortRead(err)
	}
	r.pos += uint64(n)

	return v, nil
}

// ReadUnary reads a unary coded integer: a run of one-bits closed by a zero-bit.
// The value is bounded by the number of remaining bits.
func (r *Reader) ReadUnary() (uint64, error) {
	var v uint64
	for {
		bit, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		if !bit {
			return v, nil
		}
		v++
	}
}

func shortRead(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrShortRead
	}

	return err
}
