package bitvec

import (
	"github.com/RoaringBitmap/roaring/v2"
	"github.com/ugorji/go/codec"
)

// roaringVector stores the set bits in a Roaring bitmap. Dense or
// clustered bit patterns compress well; select over clear bits is
// answered by a binary search on rank.
type roaringVector struct {
	bm  *roaring.Bitmap
	num uint64
}

type roaringBuilder struct {
	bm  *roaring.Bitmap
	num uint64
}

func newRoaringBuilder() *roaringBuilder {
	return &roaringBuilder{bm: roaring.New()}
}

func (b *roaringBuilder) PushBack(bit bool) {
	if bit {
		b.bm.Add(uint32(b.num))
	}
	b.num++
}

func (b *roaringBuilder) Finish() Vector {
	b.bm.RunOptimize()
	return &roaringVector{bm: b.bm, num: b.num}
}

func (v *roaringVector) Len() uint64 {
	return v.num
}

func (v *roaringVector) Count(bit bool) uint64 {
	ones := v.bm.GetCardinality()
	if bit {
		return ones
	}
	return v.num - ones
}

func (v *roaringVector) Bit(pos uint64) bool {
	return v.bm.Contains(uint32(pos))
}

func (v *roaringVector) Rank(pos uint64, bit bool) uint64 {
	if pos == 0 {
		return 0
	}
	ones := v.bm.Rank(uint32(pos - 1))
	if bit {
		return ones
	}
	return pos - ones
}

func (v *roaringVector) Select(k uint64, bit bool) uint64 {
	if bit {
		pos, err := v.bm.Select(uint32(k))
		if err != nil {
			return v.num
		}
		return uint64(pos)
	}
	// Smallest pos with k+1 clear bits in [0, pos+1).
	lo, hi := uint64(0), v.num
	for lo < hi {
		mid := (lo + hi) / 2
		if v.Rank(mid+1, false) >= k+1 {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}

func (v *roaringVector) MarshalBinary() (out []byte, err error) {
	payload, err := v.bm.MarshalBinary()
	if err != nil {
		return nil, err
	}
	var bh codec.MsgpackHandle
	enc := codec.NewEncoderBytes(&out, &bh)
	if err = enc.Encode(v.num); err != nil {
		return nil, err
	}
	if err = enc.Encode(payload); err != nil {
		return nil, err
	}
	return out, nil
}

func unmarshalRoaring(data []byte) (Vector, error) {
	var bh codec.MsgpackHandle
	dec := codec.NewDecoderBytes(data, &bh)
	v := &roaringVector{bm: roaring.New()}
	if err := dec.Decode(&v.num); err != nil {
		return nil, err
	}
	var payload []byte
	if err := dec.Decode(&payload); err != nil {
		return nil, err
	}
	if err := v.bm.UnmarshalBinary(payload); err != nil {
		return nil, err
	}
	return v, nil
}
