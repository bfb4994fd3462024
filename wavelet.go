// Package wavelet provides a family of succinct rank/select structures
// over integer sequences, including wavelet matrices, shaped wavelet
// trees and permutation-based representations, behind one query surface.
//
// Every family answers rank, select, access and inverse-select. Families
// whose symbols carry a usable total order additionally answer quantile,
// lexicographic counting and symbol neighbor queries; families exposing a
// navigable decomposition additionally answer node traversal, multi-range
// intersection and interval symbol enumeration. Which operations a family
// carries is a property of its Go type: a structure without a capability
// simply has no method for it, so misuse is a compile error.
package wavelet

// Range represents a half-open position interval [Bpos, Epos),
// only valid for Bpos <= Epos.
type Range struct {
	Bpos uint64
	Epos uint64
}

// Point is a (position, value) pair reported by 2-D range search.
type Point struct {
	Pos   uint64
	Value uint64
}

// ValueFreq pairs a value with an accumulated occurrence count.
type ValueFreq struct {
	Value uint64
	Freq  uint64
}

// LexCounts is the result of a lexicographic count over [i, j):
// the rank of c at i, and how many positions hold values smaller
// respectively greater than c.
type LexCounts struct {
	Rank    uint64
	Smaller uint64
	Greater uint64
}

// SymbolRanks describes the distinct symbols of an interval [i, j).
// K is the number of distinct symbols; Symbols lists them; RankLower
// and RankUpper hold rank(i, c) and rank(j, c) for each.
type SymbolRanks struct {
	K         uint64
	Symbols   []uint64
	RankLower []uint64
	RankUpper []uint64
}

// Node is an opaque handle into a structure's hierarchical
// decomposition. A Node is only meaningful for the exact structure
// that produced it; interpreting it against any other structure
// yields garbage. The zero Node is not valid.
type Node struct {
	lo, hi uint64 // position interval in the owning level/node
	level  uint64
	path   uint64 // matrix: value bit prefix; tree: arena index
}

// Sequence is the query facade carried by every family: size and
// effective alphabet queries, rank/select/access/inverse-select, and
// binary round-tripping.
type Sequence interface {
	// Size returns n, the number of positions.
	Size() uint64
	// Sigma returns the effective alphabet size, the count of
	// distinct symbols actually occurring.
	Sigma() uint64
	// Access returns the value at position i, 0 <= i < n.
	Access(i uint64) (uint64, error)
	// Rank counts occurrences of c in [0, i), 0 <= i <= n.
	Rank(i uint64, c uint64) (uint64, error)
	// Select returns the position of the k-th (1-indexed) occurrence
	// of c; requires 1 <= k < n and k <= rank(n, c).
	Select(k uint64, c uint64) (uint64, error)
	// InverseSelect returns (rank(i, seq[i]), seq[i]) for 0 <= i < n.
	InverseSelect(i uint64) (uint64, uint64, error)

	MarshalBinary() ([]byte, error)
	UnmarshalBinary(data []byte) error
}

// Ordered extends Sequence with operations that need a total order
// over symbols.
type Ordered interface {
	Sequence
	// QuantileFreq returns the q-th smallest value (0-indexed) in the
	// closed position range [lb, rb] together with its frequency there.
	QuantileFreq(lb, rb, q uint64) (uint64, uint64, error)
	// LexCount counts, over [i, j) with i < j <= n, the occurrences
	// smaller and greater than c, alongside rank(i, c).
	LexCount(i, j, c uint64) (LexCounts, error)
	// LexSmallerCount returns (rank(i, c), number of values < c in
	// [0, i)) for i < n.
	LexSmallerCount(i, c uint64) (uint64, uint64, error)
	// SymbolLTE returns the largest occurring symbol <= c.
	SymbolLTE(c uint64) (uint64, error)
	// SymbolGTE returns the smallest occurring symbol >= c.
	SymbolGTE(c uint64) (uint64, error)
	// RestrictedUniqueRangeValues returns, ascending and without
	// multiplicity, the distinct values at positions [xi, xj] whose
	// value lies in [yi, yj].
	RestrictedUniqueRangeValues(xi, xj, yi, yj uint64) ([]uint64, error)
}

// Traversable extends Sequence with access to the hierarchical
// decomposition.
type Traversable interface {
	Sequence
	// Root returns the node representing the whole sequence.
	Root() Node
	// IsLeaf reports whether the node resolves a single symbol.
	IsLeaf(v Node) bool
	// NodeSize returns the number of positions the node represents.
	NodeSize(v Node) uint64
	// NodeEmpty reports whether the node represents no positions.
	NodeEmpty(v Node) bool
	// NodeSym returns the symbol of a leaf node.
	NodeSym(v Node) (uint64, error)
	// Expand returns the node's children, none for a leaf.
	Expand(v Node) ([]Node, error)
	// ExpandRanges projects node-relative position ranges onto each
	// child, returned child-by-child in Expand order.
	ExpandRanges(v Node, ranges []Range) ([][]Range, error)
	// NodeBitVec returns the discriminating bit sequence at the node.
	NodeBitVec(v Node) ([]bool, error)
	// NodeSeq reconstructs the symbol sub-sequence under the node.
	NodeSeq(v Node) ([]uint64, error)
	// Intersect returns the values occurring in at least t of the
	// given ranges with their accumulated frequencies; t == 0 means
	// all ranges.
	Intersect(ranges []Range, t int) ([]ValueFreq, error)
	// IntervalSymbols enumerates the distinct symbols of [i, j) with
	// their ranks at both bounds; i <= j <= n.
	IntervalSymbols(i, j uint64) (SymbolRanks, error)
}

// PointIndexable extends Sequence with 2-D range search over
// (position, value) points.
type PointIndexable interface {
	Sequence
	// RangeSearch2D counts the points with position in [lb, rb] and
	// value in [vlb, vrb]; when report is true the points themselves
	// are returned as well.
	RangeSearch2D(lb, rb, vlb, vrb uint64, report bool) (uint64, []Point, error)
}
