package compress

// NoOpCompressor stores the payload as is.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a new no-operation compressor.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns data without copying.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data without copying after checking its length.
func (c NoOpCompressor) Decompress(data []byte, size int) ([]byte, error) {
	if len(data) != size {
		return nil, sizeMismatch("raw", len(data), size)
	}

	return data, nil
}
