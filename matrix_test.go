package wavelet

import (
	"errors"
	"math/rand"
	"sort"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/go-succinct/wavelet/bitvec"
)

func genValues(rng *rand.Rand, num, dim uint64) []uint64 {
	vals := make([]uint64, num)
	for i := range vals {
		vals[i] = uint64(rng.Int63n(int64(dim)))
	}
	return vals
}

func generateRange(rng *rand.Rand, num uint64) Range {
	bpos := uint64(rng.Intn(int(num)))
	epos := bpos + uint64(rng.Intn(int(num-bpos)))
	return Range{bpos, epos}
}

func origRank(orig []uint64, i, c uint64) uint64 {
	cnt := uint64(0)
	for _, v := range orig[:i] {
		if v == c {
			cnt++
		}
	}
	return cnt
}

func origRankLess(orig []uint64, i, c uint64) uint64 {
	cnt := uint64(0)
	for _, v := range orig[:i] {
		if v < c {
			cnt++
		}
	}
	return cnt
}

// origSelect returns the position of the k-th (1-indexed) c.
func origSelect(orig []uint64, k, c uint64) uint64 {
	seen := uint64(0)
	for i, v := range orig {
		if v == c {
			seen++
			if seen == k {
				return uint64(i)
			}
		}
	}
	return uint64(len(orig))
}

// origQuantile returns the q-th (0-indexed) smallest value of the
// closed range [lb, rb] and its frequency there.
func origQuantile(orig []uint64, lb, rb, q uint64) (uint64, uint64) {
	window := append([]uint64(nil), orig[lb:rb+1]...)
	sort.Slice(window, func(i, j int) bool { return window[i] < window[j] })
	val := window[q]
	freq := uint64(0)
	for _, v := range window {
		if v == val {
			freq++
		}
	}
	return val, freq
}

func origIntersect(orig []uint64, ranges []Range, t int) []ValueFreq {
	occurs := make(map[uint64]int)
	freqs := make(map[uint64]uint64)
	for _, ranze := range ranges {
		counts := make(map[uint64]uint64)
		for i := ranze.Bpos; i < ranze.Epos; i++ {
			counts[orig[i]]++
		}
		for v, cnt := range counts {
			occurs[v]++
			freqs[v] += cnt
		}
	}
	out := []ValueFreq{}
	for v, cnt := range occurs {
		if cnt >= t {
			out = append(out, ValueFreq{Value: v, Freq: freqs[v]})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}

func origIntervalSymbols(orig []uint64, i, j uint64) SymbolRanks {
	seen := make(map[uint64]struct{})
	for _, v := range orig[i:j] {
		seen[v] = struct{}{}
	}
	syms := make([]uint64, 0, len(seen))
	for v := range seen {
		syms = append(syms, v)
	}
	sort.Slice(syms, func(a, b int) bool { return syms[a] < syms[b] })
	res := SymbolRanks{Symbols: []uint64{}, RankLower: []uint64{}, RankUpper: []uint64{}}
	for _, sym := range syms {
		res.K++
		res.Symbols = append(res.Symbols, sym)
		res.RankLower = append(res.RankLower, origRank(orig, i, sym))
		res.RankUpper = append(res.RankUpper, origRank(orig, j, sym))
	}
	return res
}

// origSearch2D reports the qualifying points value-ascending,
// positions ascending within a value.
func origSearch2D(orig []uint64, lb, rb, vlb, vrb uint64) []Point {
	pts := []Point{}
	for p := lb; p <= rb; p++ {
		if orig[p] >= vlb && orig[p] <= vrb {
			pts = append(pts, Point{Pos: p, Value: orig[p]})
		}
	}
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].Value != pts[j].Value {
			return pts[i].Value < pts[j].Value
		}
		return pts[i].Pos < pts[j].Pos
	})
	return pts
}

func origUnique(orig []uint64, xi, xj, yi, yj uint64) []uint64 {
	seen := make(map[uint64]struct{})
	for p := xi; p <= xj; p++ {
		if orig[p] >= yi && orig[p] <= yj {
			seen[orig[p]] = struct{}{}
		}
	}
	out := make([]uint64, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func origSymbolLTE(orig []uint64, c uint64) (uint64, bool) {
	best, ok := uint64(0), false
	for _, v := range orig {
		if v <= c && (!ok || v > best) {
			best, ok = v, true
		}
	}
	return best, ok
}

func origSymbolGTE(orig []uint64, c uint64) (uint64, bool) {
	best, ok := uint64(0), false
	for _, v := range orig {
		if v >= c && (!ok || v < best) {
			best, ok = v, true
		}
	}
	return best, ok
}

// testFacade drives the facade of any family against the original
// slice.
func testFacade(seq Sequence, orig []uint64, rng *rand.Rand, testNum int) {
	num := uint64(len(orig))
	So(seq.Size(), ShouldEqual, num)
	for i := 0; i < testNum; i++ {
		ind := uint64(rng.Intn(int(num)))
		c := orig[uint64(rng.Intn(int(num)))]

		v, err := seq.Access(ind)
		So(err, ShouldBeNil)
		So(v, ShouldEqual, orig[ind])

		r, err := seq.Rank(ind, c)
		So(err, ShouldBeNil)
		So(r, ShouldEqual, origRank(orig, ind, c))

		rank, val, err := seq.InverseSelect(ind)
		So(err, ShouldBeNil)
		So(val, ShouldEqual, orig[ind])
		So(rank, ShouldEqual, origRank(orig, ind, orig[ind]))

		total := origRank(orig, num, c)
		if total > 0 {
			k := 1 + uint64(rng.Int63n(int64(total)))
			if k < num {
				pos, err := seq.Select(k, c)
				So(err, ShouldBeNil)
				So(pos, ShouldEqual, origSelect(orig, k, c))
			}
		}
	}
}

// testLex drives the lexicographic extension against the original
// slice.
func testLex(seq Ordered, orig []uint64, dim uint64, rng *rand.Rand, testNum int) {
	num := uint64(len(orig))
	for i := 0; i < testNum; i++ {
		ranze := generateRange(rng, num)
		c := uint64(rng.Int63n(int64(dim + 2)))

		if ranze.Epos > ranze.Bpos {
			lb, rb := ranze.Bpos, ranze.Epos-1
			q := uint64(rng.Int63n(int64(rb - lb + 1)))
			val, freq, err := seq.QuantileFreq(lb, rb, q)
			So(err, ShouldBeNil)
			wantVal, wantFreq := origQuantile(orig, lb, rb, q)
			So(val, ShouldEqual, wantVal)
			So(freq, ShouldEqual, wantFreq)

			lc, err := seq.LexCount(ranze.Bpos, ranze.Epos, c)
			So(err, ShouldBeNil)
			So(lc.Rank, ShouldEqual, origRank(orig, ranze.Bpos, c))
			So(lc.Smaller, ShouldEqual,
				origRankLess(orig, ranze.Epos, c)-origRankLess(orig, ranze.Bpos, c))
			So(lc.Greater, ShouldEqual,
				(ranze.Epos-ranze.Bpos)-lc.Smaller-
					(origRank(orig, ranze.Epos, c)-origRank(orig, ranze.Bpos, c)))

			vals, err := seq.RestrictedUniqueRangeValues(lb, rb, 0, c)
			So(err, ShouldBeNil)
			So(vals, ShouldResemble, origUnique(orig, lb, rb, 0, c))
		}

		ind := uint64(rng.Intn(int(num)))
		r, smaller, err := seq.LexSmallerCount(ind, c)
		So(err, ShouldBeNil)
		So(r, ShouldEqual, origRank(orig, ind, c))
		So(smaller, ShouldEqual, origRankLess(orig, ind, c))

		if want, ok := origSymbolLTE(orig, c); ok {
			got, err := seq.SymbolLTE(c)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, want)
		} else {
			_, err := seq.SymbolLTE(c)
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
		}
		if want, ok := origSymbolGTE(orig, c); ok {
			got, err := seq.SymbolGTE(c)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, want)
		} else {
			_, err := seq.SymbolGTE(c)
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
		}
	}
}

func TestMatrixAgainstOracle(t *testing.T) {
	for _, kind := range bitvec.Kinds() {
		kind := kind
		Convey("When a random sequence is indexed as a matrix over "+string(kind), t, func() {
			rng := rand.New(rand.NewSource(42))
			num, dim := uint64(500), uint64(30)
			orig := genValues(rng, num, dim)
			m, err := NewMatrix(orig, kind)
			So(err, ShouldBeNil)
			So(m.Sigma(), ShouldBeLessThanOrEqualTo, dim)

			Convey("The facade answers match brute force", func() {
				testFacade(m, orig, rng, 50)
			})
			Convey("The lexicographic answers match brute force", func() {
				testLex(m, orig, dim, rng, 50)
			})
		})
	}
}

func TestIntAgainstOracle(t *testing.T) {
	for _, kind := range bitvec.Kinds() {
		kind := kind
		Convey("When a random sequence is indexed as int over "+string(kind), t, func() {
			rng := rand.New(rand.NewSource(7))
			num, dim := uint64(500), uint64(30)
			orig := genValues(rng, num, dim)
			w, err := NewInt(orig, kind)
			So(err, ShouldBeNil)

			Convey("The facade and lexicographic answers match brute force", func() {
				testFacade(w, orig, rng, 30)
				testLex(w, orig, dim, rng, 30)
			})

			Convey("Intersect matches brute force", func() {
				for i := 0; i < 20; i++ {
					ranges := make([]Range, 0, 4)
					for j := 0; j < 4; j++ {
						ranges = append(ranges, generateRange(rng, num))
					}
					for _, threshold := range []int{2, 4} {
						got, err := w.Intersect(ranges, threshold)
						So(err, ShouldBeNil)
						So(got, ShouldResemble, origIntersect(orig, ranges, threshold))
					}
				}
			})

			Convey("IntervalSymbols matches brute force", func() {
				for i := 0; i < 20; i++ {
					ranze := generateRange(rng, num)
					got, err := w.IntervalSymbols(ranze.Bpos, ranze.Epos)
					So(err, ShouldBeNil)
					So(got, ShouldResemble, origIntervalSymbols(orig, ranze.Bpos, ranze.Epos))
				}
			})

			Convey("RangeSearch2D matches brute force", func() {
				for i := 0; i < 20; i++ {
					ranze := generateRange(rng, num)
					if ranze.Epos == ranze.Bpos {
						continue
					}
					lb, rb := ranze.Bpos, ranze.Epos-1
					vlb := uint64(rng.Int63n(int64(dim)))
					vrb := vlb + uint64(rng.Int63n(int64(dim-vlb)))
					want := origSearch2D(orig, lb, rb, vlb, vrb)
					cnt, pts, err := w.RangeSearch2D(lb, rb, vlb, vrb, true)
					So(err, ShouldBeNil)
					So(cnt, ShouldEqual, uint64(len(want)))
					So(pts, ShouldResemble, want)

					cntOnly, _, err := w.RangeSearch2D(lb, rb, vlb, vrb, false)
					So(err, ShouldBeNil)
					So(cntOnly, ShouldEqual, cnt)
				}
			})
		})
	}
}

func TestMatrixConcrete(t *testing.T) {
	Convey("Given the sequence 2 1 2 3 2 1", t, func() {
		orig := []uint64{2, 1, 2, 3, 2, 1}
		w, err := NewInt(orig, bitvec.RSDic)
		So(err, ShouldBeNil)

		Convey("The counting answers are exact", func() {
			r, err := w.Rank(6, 2)
			So(err, ShouldBeNil)
			So(r, ShouldEqual, 3)

			pos, err := w.Select(2, 2)
			So(err, ShouldBeNil)
			So(pos, ShouldEqual, 2)

			rank, val, err := w.InverseSelect(2)
			So(err, ShouldBeNil)
			So(rank, ShouldEqual, 1)
			So(val, ShouldEqual, 2)

			lc, err := w.LexCount(0, 6, 2)
			So(err, ShouldBeNil)
			So(lc, ShouldResemble, LexCounts{Rank: 0, Smaller: 2, Greater: 1})

			val, freq, err := w.QuantileFreq(0, 5, 0)
			So(err, ShouldBeNil)
			So(val, ShouldEqual, 1)
			So(freq, ShouldEqual, 2)

			val, freq, err = w.QuantileFreq(0, 5, 3)
			So(err, ShouldBeNil)
			So(val, ShouldEqual, 2)
			So(freq, ShouldEqual, 3)
		})

		Convey("The interval symbol enumeration is exact", func() {
			res, err := w.IntervalSymbols(0, 6)
			So(err, ShouldBeNil)
			So(res, ShouldResemble, SymbolRanks{
				K:         3,
				Symbols:   []uint64{1, 2, 3},
				RankLower: []uint64{0, 0, 0},
				RankUpper: []uint64{2, 3, 1},
			})
		})

		Convey("An empty interval enumerates no symbols, unlike an empty count", func() {
			res, err := w.IntervalSymbols(3, 3)
			So(err, ShouldBeNil)
			So(res.K, ShouldEqual, 0)

			_, err = w.LexCount(3, 3, 2)
			So(errors.Is(err, ErrInvalidArgument), ShouldBeTrue)
		})
	})
}

func TestIntTraversal(t *testing.T) {
	Convey("Given the sequence 2 1 2 3 2 1", t, func() {
		orig := []uint64{2, 1, 2, 3, 2, 1}
		w, err := NewInt(orig, bitvec.RSDic)
		So(err, ShouldBeNil)
		So(w.MaxLevel(), ShouldEqual, 2)

		root := w.Root()
		So(w.IsLeaf(root), ShouldBeFalse)
		So(w.NodeSize(root), ShouldEqual, 6)
		So(w.NodeEmpty(root), ShouldBeFalse)

		Convey("The root reconstructs the sequence", func() {
			seq, err := w.NodeSeq(root)
			So(err, ShouldBeNil)
			So(seq, ShouldResemble, orig)

			bits, err := w.NodeBitVec(root)
			So(err, ShouldBeNil)
			So(bits, ShouldResemble, []bool{true, false, true, true, true, false})

			So(w.TreeBitVec(), ShouldResemble, []bool{
				true, false, true, true, true, false,
				true, true, false, false, true, false,
			})
		})

		Convey("Expanding splits by the leading bit", func() {
			kids, err := w.Expand(root)
			So(err, ShouldBeNil)
			So(len(kids), ShouldEqual, 2)
			So(w.NodeSize(kids[0]), ShouldEqual, 2)
			So(w.NodeSize(kids[1]), ShouldEqual, 4)

			left, err := w.NodeSeq(kids[0])
			So(err, ShouldBeNil)
			So(left, ShouldResemble, []uint64{1, 1})
			right, err := w.NodeSeq(kids[1])
			So(err, ShouldBeNil)
			So(right, ShouldResemble, []uint64{2, 2, 3, 2})
		})

		Convey("Descending to a leaf resolves its symbol", func() {
			node := root
			for !w.IsLeaf(node) {
				kids, err := w.Expand(node)
				So(err, ShouldBeNil)
				node = kids[1]
			}
			sym, err := w.NodeSym(node)
			So(err, ShouldBeNil)
			So(sym, ShouldEqual, 3)
		})

		Convey("ExpandRanges projects node-relative ranges onto both children", func() {
			proj, err := w.ExpandRanges(root, []Range{{0, 6}, {1, 3}})
			So(err, ShouldBeNil)
			So(proj[0], ShouldResemble, []Range{{0, 2}, {0, 1}})
			So(proj[1], ShouldResemble, []Range{{0, 4}, {1, 2}})

			_, err = w.ExpandRanges(root, []Range{{4, 2}})
			So(errors.Is(err, ErrInvalidArgument), ShouldBeTrue)
		})

		Convey("Leaves collect exactly the occurring symbols", func() {
			syms := []uint64{}
			stack := []Node{root}
			for len(stack) > 0 {
				node := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if w.NodeEmpty(node) {
					continue
				}
				if w.IsLeaf(node) {
					sym, err := w.NodeSym(node)
					So(err, ShouldBeNil)
					syms = append(syms, sym)
					continue
				}
				kids, err := w.Expand(node)
				So(err, ShouldBeNil)
				stack = append(stack, kids[1], kids[0])
			}
			sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
			So(syms, ShouldResemble, []uint64{1, 2, 3})
		})
	})
}

func TestIntPlaneCount(t *testing.T) {
	Convey("The plane count tracks the largest value, not the alphabet bound", t, func() {
		w, err := NewInt([]uint64{0, 1, 2, 3, 4, 5, 6, 7}, bitvec.RSDic)
		So(err, ShouldBeNil)
		So(w.MaxLevel(), ShouldEqual, 3)
		So(len(w.TreeBitVec()), ShouldEqual, 24)

		w, err = NewInt([]uint64{8, 0}, bitvec.RSDic)
		So(err, ShouldBeNil)
		So(w.MaxLevel(), ShouldEqual, 4)

		Convey("A single-valued sequence needs no planes at all", func() {
			w, err := NewInt([]uint64{0, 0, 0}, bitvec.RSDic)
			So(err, ShouldBeNil)
			So(w.MaxLevel(), ShouldEqual, 0)
			So(w.IsLeaf(w.Root()), ShouldBeTrue)

			v, err := w.Access(1)
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 0)

			r, err := w.Rank(3, 0)
			So(err, ShouldBeNil)
			So(r, ShouldEqual, 3)

			pos, err := w.Select(2, 0)
			So(err, ShouldBeNil)
			So(pos, ShouldEqual, 1)
		})
	})
}

func TestIntersectDegenerate(t *testing.T) {
	Convey("Given a sequence covering a full power-of-two alphabet", t, func() {
		orig := []uint64{0, 1, 2, 3, 4, 5, 6, 7}
		w, err := NewInt(orig, bitvec.RSDic)
		So(err, ShouldBeNil)

		Convey("An empty range list intersects to nothing", func() {
			got, err := w.Intersect(nil, 0)
			So(err, ShouldBeNil)
			So(got, ShouldResemble, []ValueFreq{})

			got, err = w.Intersect([]Range{}, 1)
			So(err, ShouldBeNil)
			So(got, ShouldResemble, []ValueFreq{})
		})

		Convey("No qualifying value yields an empty, non-nil result", func() {
			got, err := w.Intersect([]Range{{0, 1}, {1, 2}}, 2)
			So(err, ShouldBeNil)
			So(got, ShouldResemble, []ValueFreq{})
		})

		Convey("Only occurring values are ever reported", func() {
			sparse, err := NewInt([]uint64{1, 5}, bitvec.RSDic)
			So(err, ShouldBeNil)
			got, err := sparse.Intersect([]Range{{0, 2}}, 0)
			So(err, ShouldBeNil)
			So(got, ShouldResemble, []ValueFreq{{Value: 1, Freq: 1}, {Value: 5, Freq: 1}})
		})
	})
}

func TestMatrixEmpty(t *testing.T) {
	Convey("When an empty sequence is indexed", t, func() {
		m, err := NewMatrix(nil, bitvec.RSDic)
		So(err, ShouldBeNil)
		So(m.Size(), ShouldEqual, 0)
		So(m.Sigma(), ShouldEqual, 0)

		r, err := m.Rank(0, 5)
		So(err, ShouldBeNil)
		So(r, ShouldEqual, 0)

		_, err = m.Access(0)
		So(errors.Is(err, ErrOutOfRange), ShouldBeTrue)
		_, err = m.Select(1, 0)
		So(errors.Is(err, ErrOutOfRange), ShouldBeTrue)
		_, _, err = m.QuantileFreq(0, 0, 0)
		So(errors.Is(err, ErrOutOfRange), ShouldBeTrue)
		_, err = m.SymbolLTE(3)
		So(errors.Is(err, ErrNotFound), ShouldBeTrue)

		Convey("Intersect over an empty int structure yields nothing", func() {
			w, err := NewInt(nil, bitvec.RSDic)
			So(err, ShouldBeNil)
			got, err := w.Intersect([]Range{{0, 0}}, 0)
			So(err, ShouldBeNil)
			So(got, ShouldResemble, []ValueFreq{})
		})
	})
}

func TestMatrixErrors(t *testing.T) {
	Convey("Given a small sequence", t, func() {
		orig := []uint64{4, 0, 4, 1}
		w, err := NewInt(orig, bitvec.Roaring)
		So(err, ShouldBeNil)

		Convey("Index arguments beyond the size bound are out of range", func() {
			_, err := w.Access(4)
			So(errors.Is(err, ErrOutOfRange), ShouldBeTrue)
			_, err = w.Rank(5, 4)
			So(errors.Is(err, ErrOutOfRange), ShouldBeTrue)
			_, _, err = w.RangeSearch2D(0, 4, 0, 4, true)
			So(errors.Is(err, ErrOutOfRange), ShouldBeTrue)
		})

		Convey("A rank prefix of exactly n is fine", func() {
			r, err := w.Rank(4, 4)
			So(err, ShouldBeNil)
			So(r, ShouldEqual, 2)
		})

		Convey("Inconsistent arguments are invalid, not out of range", func() {
			_, err := w.Select(1, 9)
			So(errors.Is(err, ErrInvalidArgument), ShouldBeTrue)
			_, _, err = w.QuantileFreq(2, 1, 0)
			So(errors.Is(err, ErrInvalidArgument), ShouldBeTrue)
			_, _, err = w.QuantileFreq(1, 2, 3)
			So(errors.Is(err, ErrInvalidArgument), ShouldBeTrue)
			_, err = w.LexCount(3, 2, 0)
			So(errors.Is(err, ErrInvalidArgument), ShouldBeTrue)
			_, err = w.Intersect([]Range{{0, 2}}, -1)
			So(errors.Is(err, ErrInvalidArgument), ShouldBeTrue)
			_, _, err = w.RangeSearch2D(0, 3, 4, 1, false)
			So(errors.Is(err, ErrInvalidArgument), ShouldBeTrue)
		})

		Convey("A symbol absent from the sequence still counts as zero", func() {
			r, err := w.Rank(4, 3)
			So(err, ShouldBeNil)
			So(r, ShouldEqual, 0)

			lc, err := w.LexCount(0, 4, 9)
			So(err, ShouldBeNil)
			So(lc, ShouldResemble, LexCounts{Rank: 0, Smaller: 4, Greater: 0})
		})
	})
}

func TestMatrixRoundTrip(t *testing.T) {
	for _, kind := range bitvec.Kinds() {
		kind := kind
		Convey("When a matrix over "+string(kind)+" is round-tripped", t, func() {
			rng := rand.New(rand.NewSource(3))
			orig := genValues(rng, 300, 20)
			w, err := NewInt(orig, kind)
			So(err, ShouldBeNil)

			data, err := w.MarshalBinary()
			So(err, ShouldBeNil)

			back := &Int{}
			So(back.UnmarshalBinary(data), ShouldBeNil)
			So(back.Size(), ShouldEqual, w.Size())
			So(back.Sigma(), ShouldEqual, w.Sigma())
			testFacade(back, orig, rng, 30)
			testLex(back, orig, 20, rng, 10)
		})
	}
	Convey("When the payload is mangled", t, func() {
		back := &Int{}
		err := back.UnmarshalBinary([]byte{0x00, 0x01, 0x02})
		So(errors.Is(err, ErrCorrupt), ShouldBeTrue)
	})
}
