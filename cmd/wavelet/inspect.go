package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/go-succinct/wavelet/catalog"
)

var familiesCmd = &cobra.Command{
	Use:   "families",
	Short: "List the variant families and their capabilities",
	RunE: func(cmd *cobra.Command, args []string) error {
		bold := color.New(color.Bold)
		for _, e := range catalog.Default.Entries() {
			bold.Printf("%-10s", e.Family)
			fmt.Printf(" backend=%-8s", e.Backend)
			fmt.Printf(" ordered=%-5v traversable=%-5v point-indexable=%v\n",
				e.Tags.Ordered, e.Tags.Traversable, e.Tags.PointIndexable)
		}
		return nil
	},
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <snapshot>",
	Short: "Show the identity and shape of a snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		seq, entry, err := catalog.ReadSnapshot(f, catalog.Default)
		if err != nil {
			return err
		}
		color.Cyan("%s/%s", entry.Family, entry.Backend)
		fmt.Printf("size:            %d\n", seq.Size())
		fmt.Printf("sigma:           %d\n", seq.Sigma())
		fmt.Printf("ordered:         %v\n", entry.Tags.Ordered)
		fmt.Printf("traversable:     %v\n", entry.Tags.Traversable)
		fmt.Printf("point-indexable: %v\n", entry.Tags.PointIndexable)
		return nil
	},
}
