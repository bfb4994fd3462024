package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/go-succinct/wavelet"
	"github.com/go-succinct/wavelet/catalog"
)

var (
	buildFamily  string
	buildBackend string
	buildWidth   int
	buildText    string
	buildOut     string
)

var buildCmd = &cobra.Command{
	Use:   "build [input-file]",
	Short: "Build a structure from a binary file or inline text and snapshot it",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var vals []uint64
		var err error
		switch {
		case buildText != "":
			vals, err = wavelet.TextValues(buildText)
		case len(args) == 1:
			var raw []byte
			raw, err = os.ReadFile(args[0])
			if err == nil {
				vals, err = wavelet.DecodeWidth(raw, buildWidth)
			}
		default:
			return fmt.Errorf("either an input file or --text is required")
		}
		if err != nil {
			return err
		}
		entry, err := catalog.Default.Lookup(buildFamily, buildBackend)
		if err != nil {
			return err
		}
		seq, err := entry.Build(vals)
		if err != nil {
			return err
		}
		out, err := os.Create(buildOut)
		if err != nil {
			return err
		}
		defer out.Close()
		if err := catalog.WriteSnapshot(out, entry.Family, entry.Backend, seq); err != nil {
			return err
		}
		color.Green("built %s/%s: n=%d sigma=%d -> %s",
			entry.Family, entry.Backend, seq.Size(), seq.Sigma(), buildOut)
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVarP(&buildFamily, "family", "f", "matrix", "variant family")
	buildCmd.Flags().StringVarP(&buildBackend, "backend", "b", "rsdic", "bit-vector backend")
	buildCmd.Flags().IntVarP(&buildWidth, "width", "w", 8, "symbol width in bytes for binary input (1, 2, 4 or 8)")
	buildCmd.Flags().StringVarP(&buildText, "text", "t", "", "space-separated decimal symbols instead of a file")
	buildCmd.Flags().StringVarP(&buildOut, "out", "o", "sequence.wv", "snapshot output path")
}
