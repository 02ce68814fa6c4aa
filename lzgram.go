// Package lzgram compresses symbol sequences into straight-line grammars
// derived from an LZ78 parse, and serializes those grammars to a compact bit
// string.
//
// The pipeline is strict and runs in one direction each way:
//
//	symbols -> lz78.Parse -> phrases -> grammar.Build -> grammar -> codec.Encoder -> bits
//	bits -> codec.Decoder -> grammar -> Grammar.ExpandAll -> symbols
//
// Every phrase i of the parse becomes rule i of the grammar: a single terminal
// for one-symbol phrases, otherwise a reference to the rule of its prefix
// followed by its last symbol. Rule 0 lists the phrase rules in order.
//
// # Basic Usage
//
//	packed, err := lzgram.Compress(data)
//	if err != nil {
//	    return err
//	}
//	restored, err := lzgram.Decompress(packed)
//
// Compress wraps the bit string in a blob (see package blob) that records the
// exact bit length, the symbol count and a checksum. Options of package blob
// select the stage-2 compression and byte order:
//
//	packed, err := lzgram.Compress(data, blob.WithCompression(format.CompressionZstd))
//
// # Package Structure
//
// This package provides convenience wrappers for byte input. Other code unit
// types (uint16, uint32) and direct access to phrases, grammars and bit
// strings are available from the lz78, grammar, codec and blob packages.
package lzgram

import (
	"github.com/arloliu/lzgram/blob"
	"github.com/arloliu/lzgram/codec"
	"github.com/arloliu/lzgram/grammar"
	"github.com/arloliu/lzgram/lz78"
)

// Compress encodes data into a blob.
//
// Parameters:
//   - data: Input bytes, may be empty
//   - opts: Blob encoder options (compression, symbol width, endianness)
//
// Returns:
//   - []byte: Serialized blob
//   - error: Invalid options, or errs.ErrEmptyInput with blob.WithRequireInput
func Compress(data []byte, opts ...blob.EncoderOption) ([]byte, error) {
	encoder, err := blob.NewEncoder[byte](opts...)
	if err != nil {
		return nil, err
	}

	b, err := encoder.Encode(data)
	if err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

// Decompress decodes a blob produced by Compress and verifies it against the
// header. The output is limited to blob.DefaultMaxSymbols bytes unless
// blob.WithMaxSymbols says otherwise.
func Decompress(data []byte, opts ...blob.DecoderOption) ([]byte, error) {
	decoder, err := blob.NewDecoder[byte](data, opts...)
	if err != nil {
		return nil, err
	}

	return decoder.Decode()
}

// Phrases returns the LZ78 parse of data. The phrases share memory with data.
func Phrases(data []byte) []lz78.Phrase[byte] {
	return lz78.Parse(data)
}

// Build returns the grammar of data.
func Build(data []byte) (*grammar.Grammar[byte], error) {
	return grammar.BuildFrom(data)
}

// Encode serializes the grammar of data to a bare bit string without a blob
// header. The caller must keep Bits.Len to decode it.
func Encode(data []byte, opts ...codec.Option) (codec.Bits, error) {
	g, err := grammar.BuildFrom(data)
	if err != nil {
		return codec.Bits{}, err
	}

	encoder, err := codec.NewEncoder[byte](opts...)
	if err != nil {
		return codec.Bits{}, err
	}

	return encoder.Encode(g)
}

// Decode reads a bare bit string produced by Encode and expands it, producing
// at most maxSymbols bytes (0 = unlimited).
func Decode(bits codec.Bits, maxSymbols uint64, opts ...codec.Option) ([]byte, error) {
	decoder, err := codec.NewDecoder[byte](opts...)
	if err != nil {
		return nil, err
	}

	g, err := decoder.Decode(bits)
	if err != nil {
		return nil, err
	}

	return g.ExpandAll(maxSymbols)
}
