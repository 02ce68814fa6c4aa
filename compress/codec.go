package compress

import (
	"fmt"

	"github.com/arloliu/lzgram/errs"
	"github.com/arloliu/lzgram/format"
)

// Compressor compresses a packed grammar bit string.
//
// The returned slice may share memory with data (see NoOpCompressor); callers
// must not modify data while the result is in use.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a payload produced by the matching Compressor.
//
// size is the exact length of the original payload, as recorded by the
// container header. Implementations must refuse to produce more than size
// bytes and must report a mismatch as errs.ErrInvalidPayload, so a forged
// header or payload can not make the decoder allocate without bound.
type Decompressor interface {
	Decompress(data []byte, size int) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// Stats describes the effect of stage-2 compression on one payload.
type Stats struct {
	// Algorithm identifies the compression algorithm used
	Algorithm format.CompressionType

	// OriginalSize is the size of the packed bit string
	OriginalSize int64

	// CompressedSize is the size of the stored payload
	CompressedSize int64
}

// CompressionRatio returns compressed size / original size.
//
// Values less than 1.0 indicate successful compression.
// Returns 0 if the original size is zero.
func (s Stats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space savings as a percentage.
func (s Stats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

// CreateCodec creates a new Codec for the specified compression type.
func CreateCodec(compressionType format.CompressionType) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("invalid payload compression: %s", compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves the shared built-in Codec for the specified compression type.
// Built-in codecs are safe for concurrent use.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}

func sizeMismatch(algo string, got, want int) error {
	return fmt.Errorf("%w: %s payload decompressed to %d bytes, want %d", errs.ErrInvalidPayload, algo, got, want)
}
