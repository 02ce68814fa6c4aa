// Package compress provides the optional second-stage codecs applied to the
// packed grammar bit string inside a blob.
//
// The grammar codec already removes repetition at the symbol level. Its output
// is dominated by unary-coded rule indices, which general purpose byte codecs
// shrink further, so a blob may store the bit string compressed with one of:
//   - None: stored as is
//   - Zstd: best ratio, klauspost/compress by default, libzstd with the gozstd build tag
//   - S2: fast, good ratio
//   - LZ4: fastest decompression
//
// # Interfaces
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte, size int) ([]byte, error)
//	}
//
// Decompress takes the exact payload size recorded in the blob header. Every
// codec checks the size against what the compressed data itself declares
// before allocating, and fails with errs.ErrInvalidPayload on a mismatch.
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionS2)
//	if err != nil {
//	    return err
//	}
//	packed, _ := codec.Compress(bits.Data)
//	restored, err := codec.Decompress(packed, len(bits.Data))
//
// # Thread Safety
//
// All codecs are stateless values backed by sync.Pool and are safe for
// concurrent use.
package compress
