package main

import (
	"time"

	"github.com/arloliu/lzgram/blob"
	"github.com/spf13/cobra"
)

var decompressFlags = struct {
	output     *string
	maxSymbols *uint64
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "decompress [file]",
		Short:   "Restore the original data from a grammar blob",
		Example: `  lzgram decompress input.lzg -o input.txt`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runDecompress,
	}
	decompressFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	decompressFlags.maxSymbols = cmd.Flags().Uint64("max-symbols", blob.DefaultMaxSymbols, "refuse blobs expanding to more bytes (0 = unlimited)")
	rootCmd.AddCommand(cmd)
}

func runDecompress(cmd *cobra.Command, args []string) error {
	data, err := readInput(cmd, inputArg(args))
	if err != nil {
		return err
	}

	decoder, err := blob.NewDecoder[byte](data, blob.WithMaxSymbols(*decompressFlags.maxSymbols))
	if err != nil {
		return err
	}

	start := time.Now()
	output, err := decoder.DecodeContext(cmd.Context())
	if err != nil {
		return err
	}

	header := decoder.Header()
	logger.Debug().
		Int("blob_bytes", len(data)).
		Int("output_bytes", len(output)).
		Uint32("rules", header.RuleCount).
		Stringer("compression", header.Flag.GetCompression()).
		Dur("elapsed", time.Since(start)).
		Msg("decompressed")

	return writeOutput(cmd, *decompressFlags.output, output)
}
