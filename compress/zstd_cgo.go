//go:build cgo && gozstd

package compress

import (
	"fmt"

	"github.com/arloliu/lzgram/errs"
	"github.com/valyala/gozstd"
)

// Compress compresses the input data using libzstd.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.CompressLevel(nil, data, zstdLevel), nil
}

// Decompress decompresses Zstd-compressed data into a buffer sized for the
// expected payload.
func (c ZstdCompressor) Decompress(data []byte, size int) ([]byte, error) {
	if len(data) == 0 {
		if size != 0 {
			return nil, sizeMismatch("zstd", 0, size)
		}

		return nil, nil
	}

	hasSize, err := checkZstdFrame(data, size)
	if err != nil {
		return nil, err
	}
	// libzstd grows the output of frames without a content size
	if !hasSize {
		return decodeAllCapped(data, size)
	}

	out, err := gozstd.Decompress(make([]byte, 0, size), data)
	if err != nil {
		return nil, fmt.Errorf("%w: zstd: %w", errs.ErrInvalidPayload, err)
	}
	if len(out) != size {
		return nil, sizeMismatch("zstd", len(out), size)
	}

	return out, nil
}
