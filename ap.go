package wavelet

import (
	"fmt"
	"sort"

	"github.com/ugorji/go/codec"

	"github.com/go-succinct/wavelet/bitvec"
)

// AlphabetPartitioned is the frequency-partitioned family: symbols
// are renamed by decreasing frequency before entering the matrix
// engine, so frequent symbols occupy the shallow bit planes. The
// renaming destroys the symbol order and the meaning of the level
// decomposition, so only the query facade applies.
type AlphabetPartitioned struct {
	inner    wm
	toRank   map[uint64]uint64
	fromRank []uint64
}

// NewAlphabetPartitioned builds the frequency-renamed structure over
// vals using the given bit-vector backend.
func NewAlphabetPartitioned(vals []uint64, kind bitvec.Kind) (*AlphabetPartitioned, error) {
	syms, freq := symbolFreqs(vals)
	// Decreasing frequency, symbol value breaking ties.
	sort.SliceStable(syms, func(i, j int) bool {
		if freq[syms[i]] != freq[syms[j]] {
			return freq[syms[i]] > freq[syms[j]]
		}
		return syms[i] < syms[j]
	})
	a := &AlphabetPartitioned{
		toRank:   make(map[uint64]uint64, len(syms)),
		fromRank: syms,
	}
	for id, sym := range syms {
		a.toRank[sym] = uint64(id)
	}
	renamed := make([]uint64, len(vals))
	for i, val := range vals {
		renamed[i] = a.toRank[val]
	}
	inner, err := buildMatrix(renamed, kind)
	if err != nil {
		return nil, err
	}
	a.inner = inner
	return a, nil
}

func (a *AlphabetPartitioned) Size() uint64 {
	return a.inner.num
}

func (a *AlphabetPartitioned) Sigma() uint64 {
	return uint64(len(a.fromRank))
}

func (a *AlphabetPartitioned) Access(i uint64) (uint64, error) {
	if err := checkPosition(i, a.inner.num); err != nil {
		return 0, err
	}
	return a.fromRank[a.inner.access(i)], nil
}

func (a *AlphabetPartitioned) Rank(i uint64, c uint64) (uint64, error) {
	if err := checkPrefix(i, a.inner.num); err != nil {
		return 0, err
	}
	id, ok := a.toRank[c]
	if !ok {
		return 0, nil
	}
	return a.inner.rank(i, id), nil
}

func (a *AlphabetPartitioned) Select(k uint64, c uint64) (uint64, error) {
	if k < 1 || k >= a.inner.num {
		return 0, outOfRange("select rank %d outside [1, %d)", k, a.inner.num)
	}
	id, ok := a.toRank[c]
	if !ok {
		return 0, invalidArg("select rank %d exceeds occurrence count of %d", k, c)
	}
	if total := a.inner.rank(a.inner.num, id); k > total {
		return 0, invalidArg("select rank %d exceeds rank(%d, %d) = %d", k, a.inner.num, c, total)
	}
	return a.inner.selectPos(k-1, id), nil
}

func (a *AlphabetPartitioned) InverseSelect(i uint64) (uint64, uint64, error) {
	if err := checkPosition(i, a.inner.num); err != nil {
		return 0, 0, err
	}
	rank, id := a.inner.inverseSelect(i)
	return rank, a.fromRank[id], nil
}

func (a *AlphabetPartitioned) MarshalBinary() (out []byte, err error) {
	var bh codec.MsgpackHandle
	enc := codec.NewEncoderBytes(&out, &bh)
	if err = enc.Encode(a.fromRank); err != nil {
		return
	}
	var payload []byte
	payload, err = a.inner.marshal()
	if err != nil {
		return
	}
	err = enc.Encode(payload)
	return
}

func (a *AlphabetPartitioned) UnmarshalBinary(data []byte) error {
	var bh codec.MsgpackHandle
	dec := codec.NewDecoderBytes(data, &bh)
	next := AlphabetPartitioned{}
	if err := dec.Decode(&next.fromRank); err != nil {
		return corrupt("ap symbol table: %v", err)
	}
	var payload []byte
	if err := dec.Decode(&payload); err != nil {
		return corrupt("ap payload: %v", err)
	}
	if err := next.inner.unmarshal(payload); err != nil {
		return err
	}
	next.toRank = make(map[uint64]uint64, len(next.fromRank))
	for id, sym := range next.fromRank {
		next.toRank[sym] = uint64(id)
	}
	*a = next
	return nil
}

func (a *AlphabetPartitioned) String() string {
	return fmt.Sprintf("wavelet(n=%d sigma=%d partitioned backend=%s)",
		a.inner.num, len(a.fromRank), a.inner.kind)
}
