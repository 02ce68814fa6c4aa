package compress

import (
	"fmt"
	"sync"

	"github.com/arloliu/lzgram/errs"
	"github.com/pierrec/lz4/v4"
)

// maxLZ4Ratio bounds the expansion of one LZ4 block.
const maxLZ4Ratio = 255

// lz4CompressorPool pools lz4.Compressor instances for reuse.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 block compressor.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses the input data as a single LZ4 block.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, err
	}

	// incompressible input, CompressBlock signals it with n == 0
	if n == 0 {
		return nil, fmt.Errorf("lz4: incompressible payload of %d bytes", len(data))
	}

	return dst[:n], nil
}

// Decompress decodes one LZ4 block into a buffer of exactly size bytes.
//
// LZ4 blocks do not record their decoded length, so size is first checked
// against the maximum expansion ratio of the format.
func (c LZ4Compressor) Decompress(data []byte, size int) ([]byte, error) {
	if len(data) == 0 {
		if size != 0 {
			return nil, sizeMismatch("lz4", 0, size)
		}

		return nil, nil
	}

	if size < 0 || size > len(data)*maxLZ4Ratio {
		return nil, fmt.Errorf("%w: lz4 payload of %d bytes can not expand to %d", errs.ErrInvalidPayload, len(data), size)
	}

	buf := make([]byte, size)
	n, err := lz4.UncompressBlock(data, buf)
	if err != nil {
		return nil, fmt.Errorf("%w: lz4: %w", errs.ErrInvalidPayload, err)
	}
	if n != size {
		return nil, sizeMismatch("lz4", n, size)
	}

	return buf, nil
}
