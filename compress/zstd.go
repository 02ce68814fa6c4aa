package compress

import (
	"fmt"
	"sync"

	"github.com/arloliu/lzgram/errs"
	"github.com/klauspost/compress/zstd"
)

// ZstdCompressor provides Zstandard compression of grammar payloads.
//
// The pure Go implementation from klauspost/compress is used by default.
// Building with cgo and the gozstd tag switches to the libzstd binding.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// zstdLevel is the compression level used by both implementations.
const zstdLevel = 3

// maxZstdRatio bounds the expansion of a zstd frame: the smallest block, a
// 3-byte header plus one RLE byte, expands to at most 128 KiB.
const maxZstdRatio = 1 << 15

// zstdDecoderPool pools zstd decoders; a warmed up decoder decodes without allocations.
// DecodeAll is capped at the capacity of the destination slice.
var zstdDecoderPool = sync.Pool{
	New: func() any {
		decoder, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderLowmem(false),
			zstd.WithDecodeAllCapLimit(true),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create zstd decoder for pool: %v", err))
		}

		return decoder
	},
}

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}

// checkZstdFrame parses the frame header and reports whether it declares a
// content size. A declared size other than size, or a size data can not
// expand to, is an error. Encoders omit the content size for small inputs.
func checkZstdFrame(data []byte, size int) (bool, error) {
	if size < 0 || uint64(size) > uint64(len(data))*maxZstdRatio {
		return false, fmt.Errorf("%w: zstd payload of %d bytes can not expand to %d", errs.ErrInvalidPayload, len(data), size)
	}

	var header zstd.Header
	if err := header.Decode(data); err != nil {
		return false, fmt.Errorf("%w: zstd: %w", errs.ErrInvalidPayload, err)
	}
	if !header.HasFCS {
		return false, nil
	}
	if header.FrameContentSize != uint64(size) { //nolint: gosec
		return true, fmt.Errorf("%w: zstd frame declares %d bytes, want %d",
			errs.ErrInvalidPayload, header.FrameContentSize, size)
	}

	return true, nil
}

// decodeAllCapped decodes data with a pooled decoder into a buffer of
// capacity size. Output beyond size fails instead of growing the buffer.
func decodeAllCapped(data []byte, size int) ([]byte, error) {
	decoder := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(decoder)

	out, err := decoder.DecodeAll(data, make([]byte, 0, size))
	if err != nil {
		return nil, fmt.Errorf("%w: zstd: %w", errs.ErrInvalidPayload, err)
	}
	if len(out) != size {
		return nil, sizeMismatch("zstd", len(out), size)
	}

	return out, nil
}
