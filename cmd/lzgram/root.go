package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var rootFlags = struct {
	verbose *bool
}{}

// logger writes diagnostics to stderr; it is configured before every command.
var logger = zerolog.Nop()

var rootCmd = &cobra.Command{
	Use:   "lzgram",
	Short: "Compress data into LZ78 grammars",
	Long: `lzgram parses its input into LZ78 phrases, turns the phrases into a
straight-line grammar and stores the grammar as a compact bit string
inside a checksummed blob.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		level := zerolog.InfoLevel
		if *rootFlags.verbose {
			level = zerolog.DebugLevel
		}
		logger = newLogger(cmd.ErrOrStderr(), level)
	},
}

func init() {
	rootFlags.verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
}

func newLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}

	return nil
}

// readInput reads the named file, or stdin when path is empty or "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("cannot read stdin: %w", err)
		}

		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	return data, nil
}

// writeOutput writes data to the named file, or stdout when path is empty or "-".
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint: gosec
		return fmt.Errorf("cannot write %s: %w", path, err)
	}

	return nil
}

func inputArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}

	return ""
}
