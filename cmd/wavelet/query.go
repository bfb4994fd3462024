package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/go-succinct/wavelet"
	"github.com/go-succinct/wavelet/catalog"
)

var queryCmd = &cobra.Command{
	Use:   "query <snapshot> <op> [args...]",
	Short: "Run a query against a snapshot",
	Long: `Run a query against a snapshot.

Facade ops (every family):
  access <i>          value at position i
  rank <i> <c>        occurrences of c in [0, i)
  select <k> <c>      position of the k-th occurrence of c (1-indexed)
  inverse <i>         (rank, value) at position i

Ordered families additionally:
  quantile <lb> <rb> <q>   q-th smallest value in [lb, rb] with frequency
  lexcount <i> <j> <c>     (rank, smaller, greater) over [i, j)
  lte <c> / gte <c>        nearest occurring symbol

Traversable families additionally:
  symbols <i> <j>          distinct symbols of [i, j) with ranks

Point-indexable families additionally:
  search2d <lb> <rb> <vlb> <vrb>   points in the position x value box`,
	Args: cobra.MinimumNArgs(2),
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
		op := args[1]
		nums, err := parseArgs(args[2:])
		if err != nil {
			return err
		}
		return runQuery(seq, entry, op, nums)
	},
}

func parseArgs(args []string) ([]uint64, error) {
	nums := make([]uint64, len(args))
	for i, a := range args {
		v, err := strconv.ParseUint(a, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("argument %q is not an unsigned integer", a)
		}
		nums[i] = v
	}
	return nums, nil
}

func need(nums []uint64, n int, op string) error {
	if len(nums) != n {
		return fmt.Errorf("%s takes %d arguments, got %d", op, n, len(nums))
	}
	return nil
}

func capabilityError(entry catalog.Entry, group string) error {
	return fmt.Errorf("family %q does not carry the %s extension", entry.Family, group)
}

func runQuery(seq wavelet.Sequence, entry catalog.Entry, op string, nums []uint64) error {
	switch op {
	case "access":
		if err := need(nums, 1, op); err != nil {
			return err
		}
		v, err := seq.Access(nums[0])
		if err != nil {
			return err
		}
		color.Green("%d", v)
	case "rank":
		if err := need(nums, 2, op); err != nil {
			return err
		}
		v, err := seq.Rank(nums[0], nums[1])
		if err != nil {
			return err
		}
		color.Green("%d", v)
	case "select":
		if err := need(nums, 2, op); err != nil {
			return err
		}
		v, err := seq.Select(nums[0], nums[1])
		if err != nil {
			return err
		}
		color.Green("%d", v)
	case "inverse":
		if err := need(nums, 1, op); err != nil {
			return err
		}
		rank, val, err := seq.InverseSelect(nums[0])
		if err != nil {
			return err
		}
		color.Green("rank=%d value=%d", rank, val)
	case "quantile":
		ord, ok := seq.(wavelet.Ordered)
		if !ok {
			return capabilityError(entry, "lexicographic")
		}
		if err := need(nums, 3, op); err != nil {
			return err
		}
		val, freq, err := ord.QuantileFreq(nums[0], nums[1], nums[2])
		if err != nil {
			return err
		}
		color.Green("value=%d freq=%d", val, freq)
	case "lexcount":
		ord, ok := seq.(wavelet.Ordered)
		if !ok {
			return capabilityError(entry, "lexicographic")
		}
		if err := need(nums, 3, op); err != nil {
			return err
		}
		lc, err := ord.LexCount(nums[0], nums[1], nums[2])
		if err != nil {
			return err
		}
		color.Green("rank=%d smaller=%d greater=%d", lc.Rank, lc.Smaller, lc.Greater)
	case "lte", "gte":
		ord, ok := seq.(wavelet.Ordered)
		if !ok {
			return capabilityError(entry, "lexicographic")
		}
		if err := need(nums, 1, op); err != nil {
			return err
		}
		var v uint64
		var err error
		if op == "lte" {
			v, err = ord.SymbolLTE(nums[0])
		} else {
			v, err = ord.SymbolGTE(nums[0])
		}
		if err != nil {
			return err
		}
		color.Green("%d", v)
	case "symbols":
		trav, ok := seq.(wavelet.Traversable)
		if !ok {
			return capabilityError(entry, "traversal")
		}
		if err := need(nums, 2, op); err != nil {
			return err
		}
		res, err := trav.IntervalSymbols(nums[0], nums[1])
		if err != nil {
			return err
		}
		color.Green("k=%d", res.K)
		for i, sym := range res.Symbols {
			fmt.Printf("  %d: rank_i=%d rank_j=%d\n", sym, res.RankLower[i], res.RankUpper[i])
		}
	case "search2d":
		pt, ok := seq.(wavelet.PointIndexable)
		if !ok {
			return capabilityError(entry, "point range search")
		}
		if err := need(nums, 4, op); err != nil {
			return err
		}
		cnt, pts, err := pt.RangeSearch2D(nums[0], nums[1], nums[2], nums[3], true)
		if err != nil {
			return err
		}
		color.Green("count=%d", cnt)
		for _, p := range pts {
			fmt.Printf("  (%d, %d)\n", p.Pos, p.Value)
		}
	default:
		return fmt.Errorf("unknown op %q", op)
	}
	return nil
}
