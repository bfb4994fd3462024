package wavelet

import (
	"math"

	"github.com/go-succinct/wavelet/bitvec"
)

// buildMatrix constructs the level bit planes by stably partitioning
// the values, most significant bit first. Construction is one-shot:
// any failure yields no structure.
func buildMatrix(vals []uint64, kind bitvec.Kind) (wm, error) {
	if kind == bitvec.Roaring && uint64(len(vals)) > math.MaxUint32 {
		return wm{}, invalidArg("roaring backend is limited to 2^32 positions, got %d", len(vals))
	}
	dim := getDim(vals)
	blen := uint64(0)
	if dim > 0 {
		blen = getBinaryLen(dim - 1)
	}
	zeros := append([]uint64(nil), vals...)
	ones := make([]uint64, 0)
	levels := make([]bitvec.Vector, blen)
	zeroCounts := make([]uint64, blen)
	for depth := uint64(0); depth < blen; depth++ {
		b, err := bitvec.NewBuilder(kind)
		if err != nil {
			return wm{}, err
		}
		nextZeros := make([]uint64, 0, len(zeros))
		nextOnes := make([]uint64, 0, len(ones))
		filter(zeros, blen-depth-1, &nextZeros, &nextOnes, b)
		filter(ones, blen-depth-1, &nextZeros, &nextOnes, b)
		zeros = nextZeros
		ones = nextOnes
		levels[depth] = b.Finish()
		zeroCounts[depth] = levels[depth].Count(false)
	}
	return wm{
		levels: levels,
		zeros:  zeroCounts,
		kind:   kind,
		dim:    dim,
		num:    uint64(len(vals)),
		sigma:  countDistinct(vals),
		blen:   blen,
	}, nil
}

func filter(vals []uint64, depth uint64, nextZeros *[]uint64, nextOnes *[]uint64, b bitvec.Builder) {
	for _, val := range vals {
		bit := ((val >> depth) & 1) == 1
		b.PushBack(bit)
		if bit {
			*nextOnes = append(*nextOnes, val)
		} else {
			*nextZeros = append(*nextZeros, val)
		}
	}
}

func getDim(vals []uint64) uint64 {
	dim := uint64(0)
	for _, val := range vals {
		if val >= dim {
			dim = val + 1
		}
	}
	return dim
}

func getBinaryLen(val uint64) uint64 {
	blen := uint64(0)
	for val > 0 {
		val >>= 1
		blen++
	}
	return blen
}

func countDistinct(vals []uint64) uint64 {
	seen := make(map[uint64]struct{}, 64)
	for _, val := range vals {
		seen[val] = struct{}{}
	}
	return uint64(len(seen))
}
