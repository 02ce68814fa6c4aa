package blob

import (
	"github.com/arloliu/lzgram/compress"
	"github.com/arloliu/lzgram/section"
)

// Blob is an encoded grammar container. It is immutable once created.
type Blob struct {
	data      []byte
	header    section.GrammarHeader
	unitBytes int
}

// Bytes returns the serialized blob: header followed by the payload.
// The returned slice must not be modified.
func (b Blob) Bytes() []byte {
	return b.data
}

// Len returns the size of the serialized blob in bytes.
func (b Blob) Len() int {
	return len(b.data)
}

// Header returns a copy of the blob header.
func (b Blob) Header() section.GrammarHeader {
	return b.header
}

// Payload returns the stored payload, compressed if the header says so.
func (b Blob) Payload() []byte {
	return b.data[section.PayloadOffset:]
}

// Stats reports the size of the blob relative to its input.
func (b Blob) Stats() Stats {
	return newStats(&b.header, len(b.data), b.unitBytes)
}

// Stats describes one blob.
type Stats struct {
	// Payload holds the stage-2 compression figures of the packed bit string.
	Payload compress.Stats

	RuleCount   int
	SymbolCount uint64
	BitLength   uint64
	SymbolWidth int

	// InputBytes is the size of the original input at the width of its code unit.
	InputBytes int64
	// BlobBytes is the size of the serialized blob, header included.
	BlobBytes int64
}

func newStats(h *section.GrammarHeader, blobLen int, unitBytes int) Stats {
	payloadLen := blobLen - section.HeaderSize

	return Stats{
		Payload: compress.Stats{
			Algorithm:      h.Flag.GetCompression(),
			OriginalSize:   int64(h.PayloadBytes()), //nolint: gosec
			CompressedSize: int64(payloadLen),
		},
		RuleCount:   int(h.RuleCount),
		SymbolCount: h.SymbolCount,
		BitLength:   h.BitLength,
		SymbolWidth: int(h.Flag.SymbolWidth),
		InputBytes:  int64(h.SymbolCount) * int64(unitBytes), //nolint: gosec
		BlobBytes:   int64(blobLen),
	}
}

// CompressionRatio returns blob size / input size, 0 for empty input.
func (s Stats) CompressionRatio() float64 {
	if s.InputBytes == 0 {
		return 0.0
	}

	return float64(s.BlobBytes) / float64(s.InputBytes)
}

// SpaceSavings returns the space saved relative to the input, as a percentage.
func (s Stats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

// BitsPerSymbol returns the grammar bit length divided by the symbol count.
func (s Stats) BitsPerSymbol() float64 {
	if s.SymbolCount == 0 {
		return 0.0
	}

	return float64(s.BitLength) / float64(s.SymbolCount)
}
