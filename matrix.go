package wavelet

import (
	"fmt"

	"github.com/ugorji/go/codec"

	"github.com/go-succinct/wavelet/bitvec"
)

const (
	opEqual = iota
	opLessThan
	opMoreThan
)

// wm is the wavelet matrix engine shared by the plain and integer
// families. Each level holds one bit plane of the values, most
// significant first; positions are stably partitioned between levels
// with all zero-branch positions before the one-branch positions.
// Methods assume arguments already validated by the exported layer.
type wm struct {
	levels []bitvec.Vector
	zeros  []uint64 // clear-bit count per level
	kind   bitvec.Kind
	dim    uint64 // max value + 1
	num    uint64
	sigma  uint64
	blen   uint64 // = len(levels)
}

func (m *wm) access(pos uint64) uint64 {
	val := uint64(0)
	for depth := uint64(0); depth < m.blen; depth++ {
		v := m.levels[depth]
		val <<= 1
		if !v.Bit(pos) {
			pos = v.Rank(pos, false)
		} else {
			val |= 1
			pos = m.zeros[depth] + v.Rank(pos, true)
		}
	}
	return val
}

func (m *wm) rank(pos uint64, val uint64) uint64 {
	return m.rangedRankOp(Range{0, pos}, val, opEqual)
}

func (m *wm) rankLessThan(pos uint64, val uint64) uint64 {
	return m.rangedRankOp(Range{0, pos}, val, opLessThan)
}

// rangedRankOp counts the positions of [ranze.Bpos, ranze.Epos) whose
// value compares to val according to op.
func (m *wm) rangedRankOp(ranze Range, val uint64, op int) uint64 {
	if val >= m.dim {
		if op == opLessThan {
			return ranze.Epos - ranze.Bpos
		}
		return 0
	}
	rankLessThan := uint64(0)
	rankMoreThan := uint64(0)
	for depth := uint64(0); depth < m.blen; depth++ {
		bit := getMSB(val, depth, m.blen)
		v := m.levels[depth]
		if bit {
			if op == opLessThan {
				rankLessThan += v.Rank(ranze.Epos, false) - v.Rank(ranze.Bpos, false)
			}
			ranze.Bpos = m.zeros[depth] + v.Rank(ranze.Bpos, true)
			ranze.Epos = m.zeros[depth] + v.Rank(ranze.Epos, true)
		} else {
			if op == opMoreThan {
				rankMoreThan += v.Rank(ranze.Epos, true) - v.Rank(ranze.Bpos, true)
			}
			ranze.Bpos = v.Rank(ranze.Bpos, false)
			ranze.Epos = v.Rank(ranze.Epos, false)
		}
	}
	switch op {
	case opEqual:
		return ranze.Epos - ranze.Bpos
	case opLessThan:
		return rankLessThan
	default:
		return rankMoreThan
	}
}

// lexCount descends the bit planes of c once, mapping the images of
// 0, i and j simultaneously. Returns rank(i, c) and the number of
// positions in [i, j) holding values smaller respectively greater
// than c.
func (m *wm) lexCount(i, j, c uint64) (rank, smaller, greater uint64) {
	if c >= m.dim {
		return 0, j - i, 0
	}
	p0, pi, pj := uint64(0), i, j
	for depth := uint64(0); depth < m.blen; depth++ {
		bit := getMSB(c, depth, m.blen)
		v := m.levels[depth]
		if bit {
			smaller += v.Rank(pj, false) - v.Rank(pi, false)
			z := m.zeros[depth]
			p0 = z + v.Rank(p0, true)
			pi = z + v.Rank(pi, true)
			pj = z + v.Rank(pj, true)
		} else {
			greater += v.Rank(pj, true) - v.Rank(pi, true)
			p0 = v.Rank(p0, false)
			pi = v.Rank(pi, false)
			pj = v.Rank(pj, false)
		}
	}
	return pi - p0, smaller, greater
}

// selectPos returns the position of the (k+1)-th val, k 0-indexed.
// Returns num when there is no such occurrence.
func (m *wm) selectPos(k uint64, val uint64) uint64 {
	if val >= m.dim {
		return m.num
	}
	return m.selectHelper(k, val, 0, 0)
}

func (m *wm) selectHelper(rank uint64, val uint64, pos uint64, depth uint64) uint64 {
	if depth == m.blen {
		return pos + rank
	}
	bit := getMSB(val, depth, m.blen)
	v := m.levels[depth]
	if !bit {
		pos = v.Rank(pos, false)
		rank = m.selectHelper(rank, val, pos, depth+1)
	} else {
		pos = m.zeros[depth] + v.Rank(pos, true)
		rank = m.selectHelper(rank, val, pos, depth+1) - m.zeros[depth]
	}
	return v.Select(rank, bit)
}

// inverseSelect returns (rank(pos, T[pos]), T[pos]) in one descent.
func (m *wm) inverseSelect(pos uint64) (uint64, uint64) {
	val := uint64(0)
	bpos := uint64(0)
	epos := pos
	for depth := uint64(0); depth < m.blen; depth++ {
		v := m.levels[depth]
		bit := v.Bit(epos)
		bpos = v.Rank(bpos, bit)
		epos = v.Rank(epos, bit)
		val <<= 1
		if bit {
			bpos += m.zeros[depth]
			epos += m.zeros[depth]
			val |= 1
		}
	}
	return epos - bpos, val
}

// quantile returns the (q+1)-th smallest value of T[bpos, epos)
// together with its frequency in the range.
func (m *wm) quantile(bpos, epos, q uint64) (uint64, uint64) {
	val := uint64(0)
	for depth := uint64(0); depth < m.blen; depth++ {
		v := m.levels[depth]
		val <<= 1
		nzBpos := v.Rank(bpos, false)
		nzEpos := v.Rank(epos, false)
		nz := nzEpos - nzBpos
		if q < nz {
			bpos = nzBpos
			epos = nzEpos
		} else {
			q -= nz
			val |= 1
			bpos = m.zeros[depth] + (bpos - nzBpos)
			epos = m.zeros[depth] + (epos - nzEpos)
		}
	}
	return val, epos - bpos
}

func (m *wm) symbolLTE(c uint64) (uint64, bool) {
	if m.num == 0 {
		return 0, false
	}
	var cnt uint64
	if c >= m.dim-1 {
		cnt = m.num
	} else {
		cnt = m.rankLessThan(m.num, c+1)
	}
	if cnt == 0 {
		return 0, false
	}
	val, _ := m.quantile(0, m.num, cnt-1)
	return val, true
}

func (m *wm) symbolGTE(c uint64) (uint64, bool) {
	if m.num == 0 {
		return 0, false
	}
	var below uint64
	if c == 0 {
		below = 0
	} else {
		below = m.rankLessThan(m.num, c)
	}
	if below == m.num {
		return 0, false
	}
	val, _ := m.quantile(0, m.num, below)
	return val, true
}

// valueInterval returns the closed value interval covered by the
// decomposition node (depth, prefix).
func (m *wm) valueInterval(depth, prefix uint64) (uint64, uint64) {
	rem := m.blen - depth
	lo := prefix << rem
	return lo, lo | ((uint64(1) << rem) - 1)
}

func (m *wm) uniqueRangeValues(bpos, epos, ylo, yhi, depth, prefix uint64, out *[]uint64) {
	if bpos >= epos {
		return
	}
	lo, hi := m.valueInterval(depth, prefix)
	if hi < ylo || lo > yhi {
		return
	}
	if depth == m.blen {
		*out = append(*out, prefix)
		return
	}
	v := m.levels[depth]
	nzBpos := v.Rank(bpos, false)
	nzEpos := v.Rank(epos, false)
	m.uniqueRangeValues(nzBpos, nzEpos, ylo, yhi, depth+1, prefix<<1, out)
	z := m.zeros[depth]
	m.uniqueRangeValues(z+(bpos-nzBpos), z+(epos-nzEpos), ylo, yhi, depth+1, prefix<<1|1, out)
}

// intersect reports the values present in at least t of the given
// ranges, value-ascending, with frequencies accumulated over the
// surviving ranges.
func (m *wm) intersect(ranges []Range, t int) []ValueFreq {
	return m.intersectHelper(ranges, t, 0, 0, []ValueFreq{})
}

func (m *wm) intersectHelper(ranges []Range, t int, depth uint64, prefix uint64, acc []ValueFreq) []ValueFreq {
	if depth == m.blen {
		freq := uint64(0)
		for _, ranze := range ranges {
			freq += ranze.Epos - ranze.Bpos
		}
		return append(acc, ValueFreq{Value: prefix, Freq: freq})
	}
	v := m.levels[depth]
	zeroRanges := make([]Range, 0, len(ranges))
	oneRanges := make([]Range, 0, len(ranges))
	for _, ranze := range ranges {
		nzBpos := v.Rank(ranze.Bpos, false)
		nzEpos := v.Rank(ranze.Epos, false)
		noBpos := m.zeros[depth] + (ranze.Bpos - nzBpos)
		noEpos := m.zeros[depth] + (ranze.Epos - nzEpos)
		if nzEpos > nzBpos {
			zeroRanges = append(zeroRanges, Range{nzBpos, nzEpos})
		}
		if noEpos > noBpos {
			oneRanges = append(oneRanges, Range{noBpos, noEpos})
		}
	}
	if len(zeroRanges) >= t {
		acc = m.intersectHelper(zeroRanges, t, depth+1, prefix<<1, acc)
	}
	if len(oneRanges) >= t {
		acc = m.intersectHelper(oneRanges, t, depth+1, prefix<<1|1, acc)
	}
	return acc
}

// unmap ascends a position from the given level back to its original
// index in the sequence.
func (m *wm) unmap(pos uint64, level uint64) uint64 {
	for depth := level; depth > 0; depth-- {
		v := m.levels[depth-1]
		if pos >= m.zeros[depth-1] {
			pos = v.Select(pos-m.zeros[depth-1], true)
		} else {
			pos = v.Select(pos, false)
		}
	}
	return pos
}

// accessFrom resolves the value of a position expressed in the
// coordinates of an intermediate level.
func (m *wm) accessFrom(pos uint64, depth uint64, prefix uint64) uint64 {
	val := prefix
	for d := depth; d < m.blen; d++ {
		v := m.levels[d]
		val <<= 1
		if !v.Bit(pos) {
			pos = v.Rank(pos, false)
		} else {
			val |= 1
			pos = m.zeros[d] + v.Rank(pos, true)
		}
	}
	return val
}

func (m *wm) search2d(bpos, epos, ylo, yhi, depth, prefix uint64, report bool, pts *[]Point) uint64 {
	if bpos >= epos {
		return 0
	}
	lo, hi := m.valueInterval(depth, prefix)
	if hi < ylo || lo > yhi {
		return 0
	}
	if lo >= ylo && hi <= yhi && !report {
		return epos - bpos
	}
	if depth == m.blen {
		if report {
			for p := bpos; p < epos; p++ {
				*pts = append(*pts, Point{Pos: m.unmap(p, depth), Value: prefix})
			}
		}
		return epos - bpos
	}
	v := m.levels[depth]
	nzBpos := v.Rank(bpos, false)
	nzEpos := v.Rank(epos, false)
	cnt := m.search2d(nzBpos, nzEpos, ylo, yhi, depth+1, prefix<<1, report, pts)
	z := m.zeros[depth]
	cnt += m.search2d(z+(bpos-nzBpos), z+(epos-nzEpos), ylo, yhi, depth+1, prefix<<1|1, report, pts)
	return cnt
}

// intervalSymbols walks the decomposition under [i, j), emitting every
// distinct symbol with its rank at both bounds. base, bpos and epos
// are the images of 0, i and j at the current node.
func (m *wm) intervalSymbols(base, bpos, epos, depth, prefix uint64, res *SymbolRanks) {
	if bpos >= epos {
		return
	}
	if depth == m.blen {
		res.K++
		res.Symbols = append(res.Symbols, prefix)
		res.RankLower = append(res.RankLower, bpos-base)
		res.RankUpper = append(res.RankUpper, epos-base)
		return
	}
	v := m.levels[depth]
	m.intervalSymbols(v.Rank(base, false), v.Rank(bpos, false), v.Rank(epos, false),
		depth+1, prefix<<1, res)
	z := m.zeros[depth]
	m.intervalSymbols(z+v.Rank(base, true), z+v.Rank(bpos, true), z+v.Rank(epos, true),
		depth+1, prefix<<1|1, res)
}

func (m *wm) marshal() (out []byte, err error) {
	var bh codec.MsgpackHandle
	enc := codec.NewEncoderBytes(&out, &bh)
	if err = enc.Encode(string(m.kind)); err != nil {
		return
	}
	if err = enc.Encode(m.blen); err != nil {
		return
	}
	for i := uint64(0); i < m.blen; i++ {
		var payload []byte
		payload, err = m.levels[i].MarshalBinary()
		if err != nil {
			return
		}
		if err = enc.Encode(payload); err != nil {
			return
		}
	}
	if err = enc.Encode(m.dim); err != nil {
		return
	}
	if err = enc.Encode(m.num); err != nil {
		return
	}
	err = enc.Encode(m.sigma)
	return
}

func (m *wm) unmarshal(in []byte) error {
	var bh codec.MsgpackHandle
	dec := codec.NewDecoderBytes(in, &bh)
	var kind string
	if err := dec.Decode(&kind); err != nil {
		return corrupt("matrix header: %v", err)
	}
	var blen uint64
	if err := dec.Decode(&blen); err != nil {
		return corrupt("matrix level count: %v", err)
	}
	levels := make([]bitvec.Vector, blen)
	zeros := make([]uint64, blen)
	for i := uint64(0); i < blen; i++ {
		var payload []byte
		if err := dec.Decode(&payload); err != nil {
			return corrupt("matrix level %d: %v", i, err)
		}
		v, err := bitvec.Unmarshal(bitvec.Kind(kind), payload)
		if err != nil {
			return corrupt("matrix level %d: %v", i, err)
		}
		levels[i] = v
		zeros[i] = v.Count(false)
	}
	next := wm{levels: levels, zeros: zeros, kind: bitvec.Kind(kind), blen: blen}
	if err := dec.Decode(&next.dim); err != nil {
		return corrupt("matrix dim: %v", err)
	}
	if err := dec.Decode(&next.num); err != nil {
		return corrupt("matrix num: %v", err)
	}
	if err := dec.Decode(&next.sigma); err != nil {
		return corrupt("matrix sigma: %v", err)
	}
	*m = next
	return nil
}

func getMSB(x uint64, pos uint64, blen uint64) bool {
	return ((x >> (blen - pos - 1)) & 1) == 1
}

// wmSeq installs the query facade over the matrix engine.
type wmSeq struct {
	e wm
}

func (s *wmSeq) Size() uint64 {
	return s.e.num
}

func (s *wmSeq) Sigma() uint64 {
	return s.e.sigma
}

func (s *wmSeq) Access(i uint64) (uint64, error) {
	if err := checkPosition(i, s.e.num); err != nil {
		return 0, err
	}
	return s.e.access(i), nil
}

func (s *wmSeq) Rank(i uint64, c uint64) (uint64, error) {
	if err := checkPrefix(i, s.e.num); err != nil {
		return 0, err
	}
	return s.e.rank(i, c), nil
}

func (s *wmSeq) Select(k uint64, c uint64) (uint64, error) {
	if k < 1 || k >= s.e.num {
		return 0, outOfRange("select rank %d outside [1, %d)", k, s.e.num)
	}
	if total := s.e.rank(s.e.num, c); k > total {
		return 0, invalidArg("select rank %d exceeds rank(%d, %d) = %d", k, s.e.num, c, total)
	}
	return s.e.selectPos(k-1, c), nil
}

func (s *wmSeq) InverseSelect(i uint64) (uint64, uint64, error) {
	if err := checkPosition(i, s.e.num); err != nil {
		return 0, 0, err
	}
	rank, val := s.e.inverseSelect(i)
	return rank, val, nil
}

func (s *wmSeq) MarshalBinary() ([]byte, error) {
	return s.e.marshal()
}

func (s *wmSeq) UnmarshalBinary(data []byte) error {
	return s.e.unmarshal(data)
}

func (s *wmSeq) String() string {
	return fmt.Sprintf("wavelet(n=%d sigma=%d levels=%d backend=%s)",
		s.e.num, s.e.sigma, s.e.blen, s.e.kind)
}

// wmLex installs the lexicographic extension over the facade.
type wmLex struct {
	wmSeq
}

func (s *wmLex) QuantileFreq(lb, rb, q uint64) (uint64, uint64, error) {
	if err := checkPosition(rb, s.e.num); err != nil {
		return 0, 0, err
	}
	if lb > rb {
		return 0, 0, invalidArg("quantile bounds [%d, %d] inverted", lb, rb)
	}
	if q > rb-lb {
		return 0, 0, invalidArg("quantile index %d outside range of %d positions", q, rb-lb+1)
	}
	val, freq := s.e.quantile(lb, rb+1, q)
	return val, freq, nil
}

func (s *wmLex) LexCount(i, j, c uint64) (LexCounts, error) {
	if j > s.e.num {
		return LexCounts{}, invalidArg("interval end %d exceeds size %d", j, s.e.num)
	}
	if i >= j {
		return LexCounts{}, invalidArg("interval [%d, %d) is empty or inverted", i, j)
	}
	rank, smaller, greater := s.e.lexCount(i, j, c)
	return LexCounts{Rank: rank, Smaller: smaller, Greater: greater}, nil
}

func (s *wmLex) LexSmallerCount(i, c uint64) (uint64, uint64, error) {
	if err := checkPosition(i, s.e.num); err != nil {
		return 0, 0, err
	}
	return s.e.rank(i, c), s.e.rangedRankOp(Range{0, i}, c, opLessThan), nil
}

func (s *wmLex) SymbolLTE(c uint64) (uint64, error) {
	val, ok := s.e.symbolLTE(c)
	if !ok {
		return 0, fmt.Errorf("%w: no occurring symbol <= %d", ErrNotFound, c)
	}
	return val, nil
}

func (s *wmLex) SymbolGTE(c uint64) (uint64, error) {
	val, ok := s.e.symbolGTE(c)
	if !ok {
		return 0, fmt.Errorf("%w: no occurring symbol >= %d", ErrNotFound, c)
	}
	return val, nil
}

func (s *wmLex) RestrictedUniqueRangeValues(xi, xj, yi, yj uint64) ([]uint64, error) {
	if err := checkPosition(xj, s.e.num); err != nil {
		return nil, err
	}
	if xi > xj {
		return nil, invalidArg("position bounds [%d, %d] inverted", xi, xj)
	}
	if yi > yj {
		return nil, invalidArg("value bounds [%d, %d] inverted", yi, yj)
	}
	out := make([]uint64, 0)
	s.e.uniqueRangeValues(xi, xj+1, yi, yj, 0, 0, &out)
	return out, nil
}

// Matrix is the plain wavelet matrix family: the query facade plus
// the lexicographic extension over the natural integer order.
type Matrix struct {
	wmLex
}

// NewMatrix builds a plain wavelet matrix over vals using the given
// bit-vector backend.
func NewMatrix(vals []uint64, kind bitvec.Kind) (*Matrix, error) {
	e, err := buildMatrix(vals, kind)
	if err != nil {
		return nil, err
	}
	m := &Matrix{}
	m.e = e
	return m, nil
}

// Int is the integer-sequence family. On top of the facade and the
// lexicographic extension it exposes the level decomposition for
// traversal and supports 2-D range search over (position, value)
// points.
type Int struct {
	wmLex
}

// NewInt builds an integer wavelet structure over vals using the
// given bit-vector backend.
func NewInt(vals []uint64, kind bitvec.Kind) (*Int, error) {
	e, err := buildMatrix(vals, kind)
	if err != nil {
		return nil, err
	}
	t := &Int{}
	t.e = e
	return t, nil
}

// MaxLevel returns the number of bit planes of the decomposition.
func (t *Int) MaxLevel() uint64 {
	return t.e.blen
}

// TreeBitVec returns the backing bit planes concatenated most
// significant first, the whole-structure counterpart of NodeBitVec.
func (t *Int) TreeBitVec() []bool {
	out := make([]bool, 0, t.e.blen*t.e.num)
	for _, v := range t.e.levels {
		for p := uint64(0); p < v.Len(); p++ {
			out = append(out, v.Bit(p))
		}
	}
	return out
}

// Root returns the node covering the whole sequence.
func (t *Int) Root() Node {
	return Node{lo: 0, hi: t.e.num, level: 0, path: 0}
}

// IsLeaf reports whether the node is at the deepest level and thus
// resolves a single value.
func (t *Int) IsLeaf(v Node) bool {
	return v.level == t.e.blen
}

func (t *Int) NodeSize(v Node) uint64 {
	return v.hi - v.lo
}

func (t *Int) NodeEmpty(v Node) bool {
	return v.hi == v.lo
}

func (t *Int) NodeSym(v Node) (uint64, error) {
	if !t.IsLeaf(v) {
		return 0, invalidArg("sym is only defined at leaves")
	}
	return v.path, nil
}

// Expand returns the zero-branch and one-branch children of the node,
// or no children for a leaf.
func (t *Int) Expand(v Node) ([]Node, error) {
	if t.IsLeaf(v) {
		return nil, nil
	}
	bv := t.e.levels[v.level]
	nzBpos := bv.Rank(v.lo, false)
	nzEpos := bv.Rank(v.hi, false)
	z := t.e.zeros[v.level]
	return []Node{
		{lo: nzBpos, hi: nzEpos, level: v.level + 1, path: v.path << 1},
		{lo: z + (v.lo - nzBpos), hi: z + (v.hi - nzEpos), level: v.level + 1, path: v.path<<1 | 1},
	}, nil
}

// ExpandRanges projects node-relative ranges onto both children,
// preserving positional alignment with the input slice.
func (t *Int) ExpandRanges(v Node, ranges []Range) ([][]Range, error) {
	if t.IsLeaf(v) {
		return nil, invalidArg("cannot expand ranges below a leaf")
	}
	if err := checkRanges(ranges, v.hi-v.lo); err != nil {
		return nil, err
	}
	bv := t.e.levels[v.level]
	zeroBase := bv.Rank(v.lo, false)
	oneBase := bv.Rank(v.lo, true)
	zero := make([]Range, len(ranges))
	one := make([]Range, len(ranges))
	for i, r := range ranges {
		zero[i] = Range{
			Bpos: bv.Rank(v.lo+r.Bpos, false) - zeroBase,
			Epos: bv.Rank(v.lo+r.Epos, false) - zeroBase,
		}
		one[i] = Range{
			Bpos: bv.Rank(v.lo+r.Bpos, true) - oneBase,
			Epos: bv.Rank(v.lo+r.Epos, true) - oneBase,
		}
	}
	return [][]Range{zero, one}, nil
}

// NodeBitVec returns the discriminating bits of the node's interval;
// leaves have none.
func (t *Int) NodeBitVec(v Node) ([]bool, error) {
	if t.IsLeaf(v) {
		return nil, nil
	}
	bv := t.e.levels[v.level]
	out := make([]bool, 0, v.hi-v.lo)
	for p := v.lo; p < v.hi; p++ {
		out = append(out, bv.Bit(p))
	}
	return out, nil
}

// NodeSeq reconstructs the values under the node in node order.
func (t *Int) NodeSeq(v Node) ([]uint64, error) {
	out := make([]uint64, 0, v.hi-v.lo)
	for p := v.lo; p < v.hi; p++ {
		out = append(out, t.e.accessFrom(p, v.level, v.path))
	}
	return out, nil
}

// Intersect reports the values present in at least t of the given
// ranges, value-ascending. threshold == 0 means all ranges.
func (t *Int) Intersect(ranges []Range, threshold int) ([]ValueFreq, error) {
	if err := checkRanges(ranges, t.e.num); err != nil {
		return nil, err
	}
	if threshold < 0 {
		return nil, invalidArg("negative threshold %d", threshold)
	}
	if threshold == 0 {
		threshold = len(ranges)
	}
	if len(ranges) == 0 || t.e.num == 0 {
		return []ValueFreq{}, nil
	}
	return t.e.intersect(ranges, threshold), nil
}

// IntervalSymbols enumerates the distinct symbols of [i, j) with
// their ranks at both interval bounds.
func (t *Int) IntervalSymbols(i, j uint64) (SymbolRanks, error) {
	if j > t.e.num {
		return SymbolRanks{}, invalidArg("interval end %d exceeds size %d", j, t.e.num)
	}
	if i > j {
		return SymbolRanks{}, invalidArg("interval [%d, %d) inverted", i, j)
	}
	res := SymbolRanks{Symbols: []uint64{}, RankLower: []uint64{}, RankUpper: []uint64{}}
	t.e.intervalSymbols(0, i, j, 0, 0, &res)
	return res, nil
}

// RangeSearch2D counts the (position, value) points with position in
// [lb, rb] and value in [vlb, vrb]; when report is set the points are
// returned value-ascending, positions ascending within a value.
func (t *Int) RangeSearch2D(lb, rb, vlb, vrb uint64, report bool) (uint64, []Point, error) {
	if err := checkPosition(rb, t.e.num); err != nil {
		return 0, nil, err
	}
	if lb > rb {
		return 0, nil, invalidArg("position bounds [%d, %d] inverted", lb, rb)
	}
	if vlb > vrb {
		return 0, nil, invalidArg("value bounds [%d, %d] inverted", vlb, vrb)
	}
	pts := make([]Point, 0)
	cnt := t.e.search2d(lb, rb+1, vlb, vrb, 0, 0, report, &pts)
	return cnt, pts, nil
}
