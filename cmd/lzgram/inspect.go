package main

import (
	"fmt"

	"github.com/arloliu/lzgram/blob"
	"github.com/arloliu/lzgram/grammar"
	"github.com/spf13/cobra"
)

var inspectFlags = struct {
	rules *int
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "inspect [file]",
		Short:   "Print the header and rules of a grammar blob",
		Example: `  lzgram inspect --rules 20 input.lzg`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runInspect,
	}
	inspectFlags.rules = cmd.Flags().IntP("rules", "r", 0, "print the first n rules (-1 for all)")
	rootCmd.AddCommand(cmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	data, err := readInput(cmd, inputArg(args))
	if err != nil {
		return err
	}

	decoder, err := blob.NewDecoder[byte](data, blob.WithMaxSymbols(0))
	if err != nil {
		return err
	}

	h := decoder.Header()
	s := decoder.Stats()
	byteOrder := "little"
	if h.Flag.IsBigEndian() {
		byteOrder = "big"
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "magic:        %#04x\n", h.Flag.GetMagicNumber())
	fmt.Fprintf(w, "byte order:   %s-endian\n", byteOrder)
	fmt.Fprintf(w, "symbol width: %d bits\n", h.Flag.SymbolWidth)
	fmt.Fprintf(w, "compression:  %s\n", h.Flag.GetCompression())
	fmt.Fprintf(w, "rules:        %d\n", h.RuleCount)
	fmt.Fprintf(w, "bit length:   %d (%d bytes)\n", h.BitLength, h.PayloadBytes())
	fmt.Fprintf(w, "symbols:      %d\n", h.SymbolCount)
	fmt.Fprintf(w, "checksum:     %016x\n", h.Checksum)
	fmt.Fprintf(w, "payload:      %d bytes (%.1f%% saved by %s)\n",
		s.Payload.CompressedSize, s.Payload.SpaceSavings(), s.Payload.Algorithm)
	fmt.Fprintf(w, "blob:         %d bytes, %.3f bits/symbol, ratio %.3f\n",
		s.BlobBytes, s.BitsPerSymbol(), s.CompressionRatio())

	limit := *inspectFlags.rules
	if limit == 0 {
		return nil
	}

	g, err := decoder.GrammarContext(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintln(w)
	for i, body := range g.Rules() {
		if limit > 0 && i >= limit {
			fmt.Fprintf(w, "... %d more rules\n", g.Len()-limit)
			break
		}
		fmt.Fprintln(w, grammar.Rule[byte]{Index: i, Body: body})
	}

	return nil
}
