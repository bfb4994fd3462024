package bitvec

import (
	"github.com/hillbig/rsdic"
)

// rsdicVector wraps an RSDic succinct dictionary. Rank and select are
// constant time on a structure close to the information-theoretic
// minimum size.
type rsdicVector struct {
	rsd *rsdic.RSDic
}

type rsdicBuilder struct {
	rsd *rsdic.RSDic
}

func newRSDicBuilder() *rsdicBuilder {
	return &rsdicBuilder{rsd: rsdic.New()}
}

func (b *rsdicBuilder) PushBack(bit bool) {
	b.rsd.PushBack(bit)
}

func (b *rsdicBuilder) Finish() Vector {
	return &rsdicVector{rsd: b.rsd}
}

func (v *rsdicVector) Len() uint64 {
	return v.rsd.Num()
}

func (v *rsdicVector) Count(bit bool) uint64 {
	if bit {
		return v.rsd.OneNum()
	}
	return v.rsd.ZeroNum()
}

func (v *rsdicVector) Bit(pos uint64) bool {
	return v.rsd.Bit(pos)
}

func (v *rsdicVector) Rank(pos uint64, bit bool) uint64 {
	return v.rsd.Rank(pos, bit)
}

func (v *rsdicVector) Select(k uint64, bit bool) uint64 {
	return v.rsd.Select(k, bit)
}

func (v *rsdicVector) MarshalBinary() ([]byte, error) {
	return v.rsd.MarshalBinary()
}

func unmarshalRSDic(data []byte) (Vector, error) {
	rsd := rsdic.New()
	if err := rsd.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return &rsdicVector{rsd: rsd}, nil
}
