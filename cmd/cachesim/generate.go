package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sarchlab/cachesim/trace"
)

var generateCmd = &cobra.Command{
	Use:   "generate <out-file>",
	Short: "Generate a synthetic memory trace",
	Args:  cobra.ExactArgs(1),
	RunE:  generateTrace,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().Int("count", 100000,
		"number of accesses to generate")
	generateCmd.Flags().Uint64("max-address", 1<<26,
		"addresses are drawn uniformly from [0, max-address)")
	generateCmd.Flags().Float64("write-fraction", 0.3,
		"fraction of accesses that are writes")
	generateCmd.Flags().Int64("seed", 1,
		"random seed, the same seed reproduces the same trace")
}

func generateTrace(cmd *cobra.Command, args []string) error {
	count, _ := cmd.Flags().GetInt("count")
	maxAddress, _ := cmd.Flags().GetUint64("max-address")
	writeFraction, _ := cmd.Flags().GetFloat64("write-fraction")
	seed, _ := cmd.Flags().GetInt64("seed")

	out, err := os.Create(args[0])
	if err != nil {
		return err
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	src := trace.NewRandomSource(count, maxAddress, writeFraction, seed)

	for {
		access, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		if _, err := fmt.Fprintln(w, trace.FormatLine(access)); err != nil {
			return err
		}
	}

	return w.Flush()
}
