// Package blob wraps grammar bit strings in a self-describing binary container.
//
// A grammar bit string has no length field of its own, so the host has to
// keep its exact bit length next to the bytes. A blob carries that length in
// a fixed 32-byte header together with everything needed to decode and verify
// the payload: symbol width, rule count, expanded symbol count, an xxHash64
// checksum of the original input and the optional stage-2 compression.
//
// # Encoding
//
//	encoder, err := blob.NewEncoder[byte](
//	    blob.WithCompression(format.CompressionZstd),
//	)
//	if err != nil {
//	    return err
//	}
//	b, err := encoder.Encode(input)
//	if err != nil {
//	    return err
//	}
//	store(b.Bytes())
//
// # Decoding
//
//	decoder, err := blob.NewDecoder[byte](data, blob.WithMaxSymbols(1<<20))
//	if err != nil {
//	    return err // header errors: size, magic, flags, limits
//	}
//	output, err := decoder.Decode()
//
// Decode rejects a payload whose decoded bit count, rule count, symbol count
// or checksum disagrees with the header. WithMaxSymbols bounds the output
// before anything is expanded.
//
// # Thread Safety
//
// Encoder is safe for concurrent use. A Decoder serves a single blob and is
// not safe for concurrent use.
package blob
