package wavelet

import (
	"fmt"
	"math"
	"sort"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/ugorji/go/codec"
)

// GMR is the Golynski-Munro-Rao-style family: one compressed position
// set per occurring symbol, next to a bit-packed value array. Select
// and rank go straight to the symbol's position set, access reads the
// packed array; the tradeoff is more space on large alphabets with
// scattered symbols. Sequences are limited to 2^32 positions. Only
// the query facade applies: the representation carries neither a
// total order nor a navigable decomposition.
type GMR struct {
	bitmaps map[uint64]*roaring.Bitmap
	packed  packedArray
	num     uint64
	sigma   uint64
	runEnc  bool
}

// NewGMR builds the per-symbol representation over vals. When runEnc
// is set the position sets use run-length encoded containers, the
// analog of an encoded-backend GMR.
func NewGMR(vals []uint64, runEnc bool) (*GMR, error) {
	if uint64(len(vals)) > math.MaxUint32 {
		return nil, invalidArg("gmr is limited to 2^32 positions, got %d", len(vals))
	}
	g := &GMR{
		bitmaps: make(map[uint64]*roaring.Bitmap, 64),
		packed:  newPackedArray(getBinaryLen(getDim(vals)), uint64(len(vals))),
		num:     uint64(len(vals)),
		runEnc:  runEnc,
	}
	for i, val := range vals {
		bm, ok := g.bitmaps[val]
		if !ok {
			bm = roaring.New()
			g.bitmaps[val] = bm
		}
		bm.Add(uint32(i))
		g.packed.set(uint64(i), val)
	}
	if runEnc {
		for _, bm := range g.bitmaps {
			bm.RunOptimize()
		}
	}
	g.sigma = uint64(len(g.bitmaps))
	return g, nil
}

func (g *GMR) Size() uint64 {
	return g.num
}

func (g *GMR) Sigma() uint64 {
	return g.sigma
}

func (g *GMR) Access(i uint64) (uint64, error) {
	if err := checkPosition(i, g.num); err != nil {
		return 0, err
	}
	return g.packed.get(i), nil
}

func (g *GMR) Rank(i uint64, c uint64) (uint64, error) {
	if err := checkPrefix(i, g.num); err != nil {
		return 0, err
	}
	return g.rank(i, c), nil
}

func (g *GMR) rank(i uint64, c uint64) uint64 {
	bm, ok := g.bitmaps[c]
	if !ok || i == 0 {
		return 0
	}
	return bm.Rank(uint32(i - 1))
}

func (g *GMR) Select(k uint64, c uint64) (uint64, error) {
	if k < 1 || k >= g.num {
		return 0, outOfRange("select rank %d outside [1, %d)", k, g.num)
	}
	bm, ok := g.bitmaps[c]
	if !ok || k > bm.GetCardinality() {
		return 0, invalidArg("select rank %d exceeds occurrence count of %d", k, c)
	}
	pos, err := bm.Select(uint32(k - 1))
	if err != nil {
		return 0, invalidArg("select rank %d exceeds occurrence count of %d", k, c)
	}
	return uint64(pos), nil
}

func (g *GMR) InverseSelect(i uint64) (uint64, uint64, error) {
	if err := checkPosition(i, g.num); err != nil {
		return 0, 0, err
	}
	val := g.packed.get(i)
	return g.rank(i, val), val, nil
}

func (g *GMR) MarshalBinary() (out []byte, err error) {
	var bh codec.MsgpackHandle
	enc := codec.NewEncoderBytes(&out, &bh)
	if err = enc.Encode(g.num); err != nil {
		return
	}
	if err = enc.Encode(g.runEnc); err != nil {
		return
	}
	if err = enc.Encode(g.packed.width); err != nil {
		return
	}
	if err = enc.Encode(g.packed.words); err != nil {
		return
	}
	syms := make([]uint64, 0, len(g.bitmaps))
	for sym := range g.bitmaps {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
	if err = enc.Encode(syms); err != nil {
		return
	}
	for _, sym := range syms {
		var payload []byte
		payload, err = g.bitmaps[sym].MarshalBinary()
		if err != nil {
			return
		}
		if err = enc.Encode(payload); err != nil {
			return
		}
	}
	return
}

func (g *GMR) UnmarshalBinary(data []byte) error {
	var bh codec.MsgpackHandle
	dec := codec.NewDecoderBytes(data, &bh)
	next := GMR{bitmaps: make(map[uint64]*roaring.Bitmap)}
	if err := dec.Decode(&next.num); err != nil {
		return corrupt("gmr size: %v", err)
	}
	if err := dec.Decode(&next.runEnc); err != nil {
		return corrupt("gmr encoding flag: %v", err)
	}
	if err := dec.Decode(&next.packed.width); err != nil {
		return corrupt("gmr value width: %v", err)
	}
	if err := dec.Decode(&next.packed.words); err != nil {
		return corrupt("gmr values: %v", err)
	}
	next.packed.n = next.num
	var syms []uint64
	if err := dec.Decode(&syms); err != nil {
		return corrupt("gmr symbols: %v", err)
	}
	for _, sym := range syms {
		var payload []byte
		if err := dec.Decode(&payload); err != nil {
			return corrupt("gmr positions of %d: %v", sym, err)
		}
		bm := roaring.New()
		if err := bm.UnmarshalBinary(payload); err != nil {
			return corrupt("gmr positions of %d: %v", sym, err)
		}
		next.bitmaps[sym] = bm
	}
	next.sigma = uint64(len(next.bitmaps))
	*g = next
	return nil
}

func (g *GMR) String() string {
	enc := "plain"
	if g.runEnc {
		enc = "run-encoded"
	}
	return fmt.Sprintf("wavelet(n=%d sigma=%d gmr %s)", g.num, g.sigma, enc)
}

// packedArray is a fixed-width bit-packed integer array backing O(1)
// access in the GMR family.
type packedArray struct {
	words []uint64
	width uint64
	n     uint64
}

func newPackedArray(width uint64, n uint64) packedArray {
	if width == 0 {
		return packedArray{width: 0, n: n}
	}
	return packedArray{
		words: make([]uint64, (n*width+63)/64),
		width: width,
		n:     n,
	}
}

func (p *packedArray) mask() uint64 {
	if p.width >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << p.width) - 1
}

func (p *packedArray) set(i uint64, v uint64) {
	if p.width == 0 {
		return
	}
	bit := i * p.width
	word, off := bit/64, bit%64
	p.words[word] |= v << off
	if off+p.width > 64 {
		p.words[word+1] |= v >> (64 - off)
	}
}

func (p *packedArray) get(i uint64) uint64 {
	if p.width == 0 {
		return 0
	}
	bit := i * p.width
	word, off := bit/64, bit%64
	v := p.words[word] >> off
	if off+p.width > 64 {
		v |= p.words[word+1] << (64 - off)
	}
	return v & p.mask()
}
