package main

import (
	"fmt"
	"time"

	"github.com/arloliu/lzgram/blob"
	"github.com/arloliu/lzgram/format"
	"github.com/spf13/cobra"
)

var compressFlags = struct {
	output      *string
	compression *string
	bigEndian   *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "compress [file]",
		Short:   "Compress a file into a grammar blob",
		Example: `  lzgram compress -c zstd input.txt -o input.lzg`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runCompress,
	}
	compressFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	compressFlags.compression = cmd.Flags().StringP("compression", "c", "none", "payload compression: none, zstd, s2 or lz4")
	compressFlags.bigEndian = cmd.Flags().Bool("big-endian", false, "write header fields big-endian")
	rootCmd.AddCommand(cmd)
}

func runCompress(cmd *cobra.Command, args []string) error {
	comp, ok := format.ParseCompression(*compressFlags.compression)
	if !ok {
		return fmt.Errorf("unknown compression %q", *compressFlags.compression)
	}

	input, err := readInput(cmd, inputArg(args))
	if err != nil {
		return err
	}

	opts := []blob.EncoderOption{blob.WithCompression(comp)}
	if *compressFlags.bigEndian {
		opts = append(opts, blob.WithBigEndian())
	}

	encoder, err := blob.NewEncoder[byte](opts...)
	if err != nil {
		return err
	}

	start := time.Now()
	b, err := encoder.Encode(input)
	if err != nil {
		return err
	}

	stats := b.Stats()
	logger.Debug().
		Int("input_bytes", len(input)).
		Int("blob_bytes", b.Len()).
		Int("rules", stats.RuleCount).
		Uint64("bits", stats.BitLength).
		Stringer("compression", comp).
		Float64("ratio", stats.CompressionRatio()).
		Dur("elapsed", time.Since(start)).
		Msg("compressed")

	return writeOutput(cmd, *compressFlags.output, b.Bytes())
}
