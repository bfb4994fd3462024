package wavelet

import (
	"fmt"
	"math"

	"github.com/ugorji/go/codec"

	"github.com/go-succinct/wavelet/bitvec"
)

// ptree is the pointer-shaped wavelet tree engine shared by the
// balanced, Hu-Tucker and Huffman families. Each internal node owns
// the bit vector discriminating between its two children; the shape
// of the tree is fixed at construction by a shape strategy. Methods
// assume arguments already validated by the exported layer.
type ptree struct {
	nodes []pnode // arena, nodes[0] is the root
	codes map[uint64][]bool
	kind  bitvec.Kind
	num   uint64
	sigma uint64
}

type pnode struct {
	bv     bitvec.Vector // nil at a leaf
	left   int32         // -1 at a leaf
	right  int32
	sym    uint64 // meaningful at a leaf only
	size   uint64
	minSym uint64 // symbol interval under the node
	maxSym uint64
}

func (n *pnode) leaf() bool {
	return n.left < 0
}

func buildTree(vals []uint64, kind bitvec.Kind, shaper shapeFunc) (ptree, error) {
	if kind == bitvec.Roaring && uint64(len(vals)) > math.MaxUint32 {
		return ptree{}, invalidArg("roaring backend is limited to 2^32 positions, got %d", len(vals))
	}
	syms, freq := symbolFreqs(vals)
	t := ptree{
		codes: make(map[uint64][]bool, len(syms)),
		kind:  kind,
		num:   uint64(len(vals)),
		sigma: uint64(len(syms)),
	}
	if len(syms) == 0 {
		t.nodes = []pnode{{left: -1, right: -1}}
		return t, nil
	}
	shape := shaper(syms, freq)
	collectCodes(shape, nil, t.codes)
	if _, err := t.construct(shape, vals, 0); err != nil {
		return ptree{}, err
	}
	return t, nil
}

func collectCodes(sn *shapeNode, prefix []bool, codes map[uint64][]bool) {
	if sn.isLeaf {
		codes[sn.sym] = append([]bool(nil), prefix...)
		return
	}
	collectCodes(sn.left, append(prefix, false), codes)
	collectCodes(sn.right, append(prefix, true), codes)
}

func (t *ptree) construct(sn *shapeNode, vals []uint64, depth int) (int32, error) {
	idx := int32(len(t.nodes))
	t.nodes = append(t.nodes, pnode{left: -1, right: -1, size: uint64(len(vals))})
	if sn.isLeaf {
		t.nodes[idx].sym = sn.sym
		t.nodes[idx].minSym = sn.sym
		t.nodes[idx].maxSym = sn.sym
		return idx, nil
	}
	b, err := bitvec.NewBuilder(t.kind)
	if err != nil {
		return 0, err
	}
	leftVals := make([]uint64, 0, len(vals))
	rightVals := make([]uint64, 0, len(vals))
	for _, val := range vals {
		bit := t.codes[val][depth]
		b.PushBack(bit)
		if bit {
			rightVals = append(rightVals, val)
		} else {
			leftVals = append(leftVals, val)
		}
	}
	t.nodes[idx].bv = b.Finish()
	left, err := t.construct(sn.left, leftVals, depth+1)
	if err != nil {
		return 0, err
	}
	right, err := t.construct(sn.right, rightVals, depth+1)
	if err != nil {
		return 0, err
	}
	t.nodes[idx].left = left
	t.nodes[idx].right = right
	t.nodes[idx].minSym = minU64(t.nodes[left].minSym, t.nodes[right].minSym)
	t.nodes[idx].maxSym = maxU64(t.nodes[left].maxSym, t.nodes[right].maxSym)
	return idx, nil
}

func (t *ptree) child(nd int32, bit bool) int32 {
	if bit {
		return t.nodes[nd].right
	}
	return t.nodes[nd].left
}

func (t *ptree) access(pos uint64) uint64 {
	nd := int32(0)
	for !t.nodes[nd].leaf() {
		bv := t.nodes[nd].bv
		bit := bv.Bit(pos)
		pos = bv.Rank(pos, bit)
		nd = t.child(nd, bit)
	}
	return t.nodes[nd].sym
}

func (t *ptree) rank(pos uint64, val uint64) uint64 {
	code, ok := t.codes[val]
	if !ok {
		return 0
	}
	nd := int32(0)
	for _, bit := range code {
		pos = t.nodes[nd].bv.Rank(pos, bit)
		nd = t.child(nd, bit)
	}
	return pos
}

// selectPos returns the position of the (k+1)-th val, k 0-indexed.
// val must occur and k must be below its occurrence count.
func (t *ptree) selectPos(k uint64, val uint64) uint64 {
	code := t.codes[val]
	nd := int32(0)
	path := make([]int32, 0, len(code))
	for _, bit := range code {
		path = append(path, nd)
		nd = t.child(nd, bit)
	}
	pos := k
	for d := len(code) - 1; d >= 0; d-- {
		pos = t.nodes[path[d]].bv.Select(pos, code[d])
	}
	return pos
}

func (t *ptree) inverseSelect(pos uint64) (uint64, uint64) {
	nd := int32(0)
	for !t.nodes[nd].leaf() {
		bv := t.nodes[nd].bv
		bit := bv.Bit(pos)
		pos = bv.Rank(pos, bit)
		nd = t.child(nd, bit)
	}
	return pos, t.nodes[nd].sym
}

// quantile returns the (q+1)-th smallest value of T[bpos, epos) and
// its frequency. Meaningful for order-preserving shapes only.
func (t *ptree) quantile(bpos, epos, q uint64) (uint64, uint64) {
	nd := int32(0)
	for !t.nodes[nd].leaf() {
		bv := t.nodes[nd].bv
		nzBpos := bv.Rank(bpos, false)
		nzEpos := bv.Rank(epos, false)
		nz := nzEpos - nzBpos
		if q < nz {
			bpos, epos = nzBpos, nzEpos
			nd = t.nodes[nd].left
		} else {
			q -= nz
			bpos, epos = bpos-nzBpos, epos-nzEpos
			nd = t.nodes[nd].right
		}
	}
	return t.nodes[nd].sym, epos - bpos
}

// lexCount descends by symbol interval, so c does not need to occur.
// Meaningful for order-preserving shapes only.
func (t *ptree) lexCount(i, j, c uint64) (rank, smaller, greater uint64) {
	if t.num == 0 {
		return 0, 0, 0
	}
	nd := int32(0)
	pi, pj := i, j
	for !t.nodes[nd].leaf() {
		bv := t.nodes[nd].bv
		left := t.nodes[nd].left
		if c <= t.nodes[left].maxSym {
			greater += bv.Rank(pj, true) - bv.Rank(pi, true)
			pi = bv.Rank(pi, false)
			pj = bv.Rank(pj, false)
			nd = left
		} else {
			smaller += bv.Rank(pj, false) - bv.Rank(pi, false)
			pi = bv.Rank(pi, true)
			pj = bv.Rank(pj, true)
			nd = t.nodes[nd].right
		}
	}
	switch sym := t.nodes[nd].sym; {
	case sym == c:
		rank = pi
	case sym < c:
		smaller += pj - pi
	default:
		greater += pj - pi
	}
	return rank, smaller, greater
}

// lexSmaller counts values < c in [0, pos).
func (t *ptree) lexSmaller(pos uint64, c uint64) uint64 {
	_, smaller, _ := t.lexCount(0, pos, c)
	return smaller
}

func (t *ptree) minSym() uint64 { return t.nodes[0].minSym }
func (t *ptree) maxSym() uint64 { return t.nodes[0].maxSym }

func (t *ptree) symbolLTE(c uint64) (uint64, bool) {
	if t.num == 0 {
		return 0, false
	}
	if c >= t.maxSym() {
		return t.maxSym(), true
	}
	if c < t.minSym() {
		return 0, false
	}
	cnt := t.lexSmaller(t.num, c+1)
	if cnt == 0 {
		return 0, false
	}
	val, _ := t.quantile(0, t.num, cnt-1)
	return val, true
}

func (t *ptree) symbolGTE(c uint64) (uint64, bool) {
	if t.num == 0 {
		return 0, false
	}
	if c <= t.minSym() {
		return t.minSym(), true
	}
	if c > t.maxSym() {
		return 0, false
	}
	below := t.lexSmaller(t.num, c)
	if below == t.num {
		return 0, false
	}
	val, _ := t.quantile(0, t.num, below)
	return val, true
}

func (t *ptree) uniqueRangeValues(nd int32, bpos, epos, ylo, yhi uint64, out *[]uint64) {
	if bpos >= epos {
		return
	}
	n := &t.nodes[nd]
	if n.maxSym < ylo || n.minSym > yhi {
		return
	}
	if n.leaf() {
		*out = append(*out, n.sym)
		return
	}
	t.uniqueRangeValues(n.left, n.bv.Rank(bpos, false), n.bv.Rank(epos, false), ylo, yhi, out)
	t.uniqueRangeValues(n.right, n.bv.Rank(bpos, true), n.bv.Rank(epos, true), ylo, yhi, out)
}

func (t *ptree) intersect(nd int32, ranges []Range, threshold int, acc []ValueFreq) []ValueFreq {
	n := &t.nodes[nd]
	if n.leaf() {
		freq := uint64(0)
		for _, ranze := range ranges {
			freq += ranze.Epos - ranze.Bpos
		}
		return append(acc, ValueFreq{Value: n.sym, Freq: freq})
	}
	leftRanges := make([]Range, 0, len(ranges))
	rightRanges := make([]Range, 0, len(ranges))
	for _, ranze := range ranges {
		lb := Range{n.bv.Rank(ranze.Bpos, false), n.bv.Rank(ranze.Epos, false)}
		rb := Range{n.bv.Rank(ranze.Bpos, true), n.bv.Rank(ranze.Epos, true)}
		if lb.Epos > lb.Bpos {
			leftRanges = append(leftRanges, lb)
		}
		if rb.Epos > rb.Bpos {
			rightRanges = append(rightRanges, rb)
		}
	}
	if len(leftRanges) >= threshold {
		acc = t.intersect(n.left, leftRanges, threshold, acc)
	}
	if len(rightRanges) >= threshold {
		acc = t.intersect(n.right, rightRanges, threshold, acc)
	}
	return acc
}

func (t *ptree) intervalSymbols(nd int32, bpos, epos uint64, res *SymbolRanks) {
	if bpos >= epos {
		return
	}
	n := &t.nodes[nd]
	if n.leaf() {
		res.K++
		res.Symbols = append(res.Symbols, n.sym)
		res.RankLower = append(res.RankLower, bpos)
		res.RankUpper = append(res.RankUpper, epos)
		return
	}
	t.intervalSymbols(n.left, n.bv.Rank(bpos, false), n.bv.Rank(epos, false), res)
	t.intervalSymbols(n.right, n.bv.Rank(bpos, true), n.bv.Rank(epos, true), res)
}

// accessUnder resolves the value of a node-relative position by
// descending from nd.
func (t *ptree) accessUnder(nd int32, pos uint64) uint64 {
	for !t.nodes[nd].leaf() {
		bv := t.nodes[nd].bv
		bit := bv.Bit(pos)
		pos = bv.Rank(pos, bit)
		nd = t.child(nd, bit)
	}
	return t.nodes[nd].sym
}

func (t *ptree) marshal() (out []byte, err error) {
	var bh codec.MsgpackHandle
	enc := codec.NewEncoderBytes(&out, &bh)
	if err = enc.Encode(string(t.kind)); err != nil {
		return
	}
	if err = enc.Encode(t.num); err != nil {
		return
	}
	if err = enc.Encode(t.sigma); err != nil {
		return
	}
	if err = enc.Encode(len(t.nodes)); err != nil {
		return
	}
	for i := range t.nodes {
		n := &t.nodes[i]
		if err = enc.Encode(n.left); err != nil {
			return
		}
		if err = enc.Encode(n.right); err != nil {
			return
		}
		if err = enc.Encode(n.sym); err != nil {
			return
		}
		if err = enc.Encode(n.size); err != nil {
			return
		}
		if err = enc.Encode(n.minSym); err != nil {
			return
		}
		if err = enc.Encode(n.maxSym); err != nil {
			return
		}
		var payload []byte
		if n.bv != nil {
			payload, err = n.bv.MarshalBinary()
			if err != nil {
				return
			}
		}
		if err = enc.Encode(payload); err != nil {
			return
		}
	}
	return
}

func (t *ptree) unmarshal(in []byte) error {
	var bh codec.MsgpackHandle
	dec := codec.NewDecoderBytes(in, &bh)
	var kind string
	if err := dec.Decode(&kind); err != nil {
		return corrupt("tree header: %v", err)
	}
	next := ptree{kind: bitvec.Kind(kind), codes: make(map[uint64][]bool)}
	if err := dec.Decode(&next.num); err != nil {
		return corrupt("tree size: %v", err)
	}
	if err := dec.Decode(&next.sigma); err != nil {
		return corrupt("tree sigma: %v", err)
	}
	var count int
	if err := dec.Decode(&count); err != nil {
		return corrupt("tree node count: %v", err)
	}
	if count < 1 {
		return corrupt("tree without a root")
	}
	next.nodes = make([]pnode, count)
	for i := 0; i < count; i++ {
		n := &next.nodes[i]
		if err := dec.Decode(&n.left); err != nil {
			return corrupt("tree node %d: %v", i, err)
		}
		if err := dec.Decode(&n.right); err != nil {
			return corrupt("tree node %d: %v", i, err)
		}
		if err := dec.Decode(&n.sym); err != nil {
			return corrupt("tree node %d: %v", i, err)
		}
		if err := dec.Decode(&n.size); err != nil {
			return corrupt("tree node %d: %v", i, err)
		}
		if err := dec.Decode(&n.minSym); err != nil {
			return corrupt("tree node %d: %v", i, err)
		}
		if err := dec.Decode(&n.maxSym); err != nil {
			return corrupt("tree node %d: %v", i, err)
		}
		var payload []byte
		if err := dec.Decode(&payload); err != nil {
			return corrupt("tree node %d: %v", i, err)
		}
		if len(payload) > 0 {
			v, err := bitvec.Unmarshal(next.kind, payload)
			if err != nil {
				return corrupt("tree node %d: %v", i, err)
			}
			n.bv = v
		}
		// The arena is written preorder: children always follow their
		// parent, which also rules out cycles.
		if n.leaf() {
			if n.right >= 0 {
				return corrupt("tree node %d is half a leaf", i)
			}
		} else if int(n.left) >= count || int(n.right) >= count ||
			n.left <= int32(i) || n.right <= int32(i) {
			return corrupt("tree node %d has dangling children", i)
		}
	}
	if next.num > 0 {
		next.rebuildCodes(0, nil)
	}
	*t = next
	return nil
}

func (t *ptree) rebuildCodes(nd int32, prefix []bool) {
	n := &t.nodes[nd]
	if n.leaf() {
		if n.size > 0 {
			t.codes[n.sym] = append([]bool(nil), prefix...)
		}
		return
	}
	t.rebuildCodes(n.left, append(prefix, false))
	t.rebuildCodes(n.right, append(prefix, true))
}

func minU64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}

func maxU64(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}

// ptSeq installs the query facade over the tree engine.
type ptSeq struct {
	e ptree
}

func (s *ptSeq) Size() uint64 {
	return s.e.num
}

func (s *ptSeq) Sigma() uint64 {
	return s.e.sigma
}

func (s *ptSeq) Access(i uint64) (uint64, error) {
	if err := checkPosition(i, s.e.num); err != nil {
		return 0, err
	}
	return s.e.access(i), nil
}

func (s *ptSeq) Rank(i uint64, c uint64) (uint64, error) {
	if err := checkPrefix(i, s.e.num); err != nil {
		return 0, err
	}
	return s.e.rank(i, c), nil
}

func (s *ptSeq) Select(k uint64, c uint64) (uint64, error) {
	if k < 1 || k >= s.e.num {
		return 0, outOfRange("select rank %d outside [1, %d)", k, s.e.num)
	}
	if total := s.e.rank(s.e.num, c); k > total {
		return 0, invalidArg("select rank %d exceeds rank(%d, %d) = %d", k, s.e.num, c, total)
	}
	return s.e.selectPos(k-1, c), nil
}

func (s *ptSeq) InverseSelect(i uint64) (uint64, uint64, error) {
	if err := checkPosition(i, s.e.num); err != nil {
		return 0, 0, err
	}
	rank, val := s.e.inverseSelect(i)
	return rank, val, nil
}

func (s *ptSeq) MarshalBinary() ([]byte, error) {
	return s.e.marshal()
}

func (s *ptSeq) UnmarshalBinary(data []byte) error {
	return s.e.unmarshal(data)
}

func (s *ptSeq) String() string {
	return fmt.Sprintf("wavelet(n=%d sigma=%d nodes=%d backend=%s)",
		s.e.num, s.e.sigma, len(s.e.nodes), s.e.kind)
}

// ptTrav installs the traversal extension over the facade.
type ptTrav struct {
	ptSeq
}

func (s *ptTrav) Root() Node {
	return Node{lo: 0, hi: s.e.num, path: 0}
}

func (s *ptTrav) IsLeaf(v Node) bool {
	return s.e.nodes[v.path].leaf()
}

func (s *ptTrav) NodeSize(v Node) uint64 {
	return v.hi - v.lo
}

func (s *ptTrav) NodeEmpty(v Node) bool {
	return v.hi == v.lo
}

func (s *ptTrav) NodeSym(v Node) (uint64, error) {
	if !s.IsLeaf(v) {
		return 0, invalidArg("sym is only defined at leaves")
	}
	return s.e.nodes[v.path].sym, nil
}

func (s *ptTrav) Expand(v Node) ([]Node, error) {
	n := &s.e.nodes[v.path]
	if n.leaf() {
		return nil, nil
	}
	return []Node{
		{hi: s.e.nodes[n.left].size, path: uint64(n.left), level: v.level + 1},
		{hi: s.e.nodes[n.right].size, path: uint64(n.right), level: v.level + 1},
	}, nil
}

func (s *ptTrav) ExpandRanges(v Node, ranges []Range) ([][]Range, error) {
	n := &s.e.nodes[v.path]
	if n.leaf() {
		return nil, invalidArg("cannot expand ranges below a leaf")
	}
	if err := checkRanges(ranges, n.size); err != nil {
		return nil, err
	}
	zero := make([]Range, len(ranges))
	one := make([]Range, len(ranges))
	for i, r := range ranges {
		zero[i] = Range{n.bv.Rank(r.Bpos, false), n.bv.Rank(r.Epos, false)}
		one[i] = Range{n.bv.Rank(r.Bpos, true), n.bv.Rank(r.Epos, true)}
	}
	return [][]Range{zero, one}, nil
}

func (s *ptTrav) NodeBitVec(v Node) ([]bool, error) {
	n := &s.e.nodes[v.path]
	if n.leaf() {
		return nil, nil
	}
	out := make([]bool, 0, n.size)
	for p := uint64(0); p < n.size; p++ {
		out = append(out, n.bv.Bit(p))
	}
	return out, nil
}

func (s *ptTrav) NodeSeq(v Node) ([]uint64, error) {
	n := &s.e.nodes[v.path]
	out := make([]uint64, 0, n.size)
	for p := uint64(0); p < n.size; p++ {
		out = append(out, s.e.accessUnder(int32(v.path), p))
	}
	return out, nil
}

func (s *ptTrav) Intersect(ranges []Range, threshold int) ([]ValueFreq, error) {
	if err := checkRanges(ranges, s.e.num); err != nil {
		return nil, err
	}
	if threshold < 0 {
		return nil, invalidArg("negative threshold %d", threshold)
	}
	if threshold == 0 {
		threshold = len(ranges)
	}
	if len(ranges) == 0 || s.e.num == 0 {
		return []ValueFreq{}, nil
	}
	live := make([]Range, 0, len(ranges))
	for _, r := range ranges {
		if r.Epos > r.Bpos {
			live = append(live, r)
		}
	}
	if len(live) < threshold {
		return []ValueFreq{}, nil
	}
	return s.e.intersect(0, live, threshold, []ValueFreq{}), nil
}

func (s *ptTrav) IntervalSymbols(i, j uint64) (SymbolRanks, error) {
	if j > s.e.num {
		return SymbolRanks{}, invalidArg("interval end %d exceeds size %d", j, s.e.num)
	}
	if i > j {
		return SymbolRanks{}, invalidArg("interval [%d, %d) inverted", i, j)
	}
	res := SymbolRanks{Symbols: []uint64{}, RankLower: []uint64{}, RankUpper: []uint64{}}
	if s.e.num > 0 {
		s.e.intervalSymbols(0, i, j, &res)
	}
	return res, nil
}

// ptLex installs the lexicographic extension; only wrapped by the
// order-preserving shapes.
type ptLex struct {
	ptTrav
}

func (s *ptLex) QuantileFreq(lb, rb, q uint64) (uint64, uint64, error) {
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

func (s *ptLex) LexCount(i, j, c uint64) (LexCounts, error) {
	if j > s.e.num {
		return LexCounts{}, invalidArg("interval end %d exceeds size %d", j, s.e.num)
	}
	if i >= j {
		return LexCounts{}, invalidArg("interval [%d, %d) is empty or inverted", i, j)
	}
	rank, smaller, greater := s.e.lexCount(i, j, c)
	return LexCounts{Rank: rank, Smaller: smaller, Greater: greater}, nil
}

func (s *ptLex) LexSmallerCount(i, c uint64) (uint64, uint64, error) {
	if err := checkPosition(i, s.e.num); err != nil {
		return 0, 0, err
	}
	return s.e.rank(i, c), s.e.lexSmaller(i, c), nil
}

func (s *ptLex) SymbolLTE(c uint64) (uint64, error) {
	val, ok := s.e.symbolLTE(c)
	if !ok {
		return 0, fmt.Errorf("%w: no occurring symbol <= %d", ErrNotFound, c)
	}
	return val, nil
}

func (s *ptLex) SymbolGTE(c uint64) (uint64, error) {
	val, ok := s.e.symbolGTE(c)
	if !ok {
		return 0, fmt.Errorf("%w: no occurring symbol >= %d", ErrNotFound, c)
	}
	return val, nil
}

func (s *ptLex) RestrictedUniqueRangeValues(xi, xj, yi, yj uint64) ([]uint64, error) {
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
	s.e.uniqueRangeValues(0, xi, xj+1, yi, yj, &out)
	return out, nil
}

// Balanced is the balanced-shape wavelet tree family: every occurring
// symbol sits at depth ceil(log2 sigma), and the shape preserves
// symbol order, so both the lexicographic and traversal extensions
// apply.
type Balanced struct {
	ptLex
}

// NewBalanced builds a balanced wavelet tree over vals.
func NewBalanced(vals []uint64, kind bitvec.Kind) (*Balanced, error) {
	e, err := buildTree(vals, kind, balancedShape)
	if err != nil {
		return nil, err
	}
	t := &Balanced{}
	t.e = e
	return t, nil
}

// HuTucker is the order-preserving frequency-shaped family. The shape
// is chosen by weight-balanced alphabetic splits, an approximation of
// the optimal Hu-Tucker shape with identical query contracts.
type HuTucker struct {
	ptLex
}

// NewHuTucker builds a weight-balanced alphabetic wavelet tree over
// vals.
func NewHuTucker(vals []uint64, kind bitvec.Kind) (*HuTucker, error) {
	e, err := buildTree(vals, kind, alphabeticShape)
	if err != nil {
		return nil, err
	}
	t := &HuTucker{}
	t.e = e
	return t, nil
}

// Huffman is the Huffman-shaped family. Frequent symbols sit near the
// root, which minimizes the expected query depth, but the shape does
// not preserve symbol order, so only the facade and the traversal
// extension apply.
type Huffman struct {
	ptTrav
}

// NewHuffman builds a Huffman-shaped wavelet tree over vals.
func NewHuffman(vals []uint64, kind bitvec.Kind) (*Huffman, error) {
	e, err := buildTree(vals, kind, huffmanShape)
	if err != nil {
		return nil, err
	}
	t := &Huffman{}
	t.e = e
	return t, nil
}
