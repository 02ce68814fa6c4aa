package main

import (
	"fmt"

	"github.com/arloliu/lzgram/lz78"
	"github.com/spf13/cobra"
)

var phrasesFlags = struct {
	limit *int
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "phrases [file]",
		Short:   "Print the LZ78 phrases of a file",
		Example: `  echo -n abaabaaaaaab | lzgram phrases`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runPhrases,
	}
	phrasesFlags.limit = cmd.Flags().IntP("limit", "n", -1, "print at most n phrases (-1 for all)")
	rootCmd.AddCommand(cmd)
}

func runPhrases(cmd *cobra.Command, args []string) error {
	input, err := readInput(cmd, inputArg(args))
	if err != nil {
		return err
	}

	phrases := lz78.Parse(input)
	logger.Debug().Int("input_bytes", len(input)).Int("phrases", len(phrases)).Msg("parsed")

	w := cmd.OutOrStdout()
	for i, p := range phrases {
		if *phrasesFlags.limit >= 0 && i >= *phrasesFlags.limit {
			break
		}
		fmt.Fprintf(w, "%d\t%q\n", i+1, []byte(p))
	}

	return nil
}
