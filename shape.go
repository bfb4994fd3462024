package wavelet

import (
	"container/heap"
	"sort"
)

// shapeNode is a node of the prefix-code tree a shape strategy hands
// to the builder.
type shapeNode struct {
	left, right *shapeNode
	sym         uint64
	isLeaf      bool
}

// shapeFunc derives the tree shape from the occurring symbols
// (ascending) and their frequencies. The returned tree has one leaf
// per occurring symbol.
type shapeFunc func(syms []uint64, freq map[uint64]uint64) *shapeNode

func symbolFreqs(vals []uint64) ([]uint64, map[uint64]uint64) {
	freq := make(map[uint64]uint64, 64)
	for _, val := range vals {
		freq[val]++
	}
	syms := make([]uint64, 0, len(freq))
	for sym := range freq {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
	return syms, freq
}

// balancedShape halves the occurring alphabet at every node, giving
// each symbol depth ceil(log2 sigma). Order-preserving.
func balancedShape(syms []uint64, _ map[uint64]uint64) *shapeNode {
	if len(syms) == 1 {
		return &shapeNode{sym: syms[0], isLeaf: true}
	}
	mid := (len(syms) + 1) / 2
	return &shapeNode{
		left:  balancedShape(syms[:mid], nil),
		right: balancedShape(syms[mid:], nil),
	}
}

// alphabeticShape splits where the cumulative weight is closest to
// half, keeping symbol order while pushing frequent symbols towards
// the root. Order-preserving.
func alphabeticShape(syms []uint64, freq map[uint64]uint64) *shapeNode {
	if len(syms) == 1 {
		return &shapeNode{sym: syms[0], isLeaf: true}
	}
	total := uint64(0)
	for _, sym := range syms {
		total += freq[sym]
	}
	best, bestDiff := 1, total
	acc := uint64(0)
	for i := 0; i < len(syms)-1; i++ {
		acc += freq[syms[i]]
		var diff uint64
		if 2*acc > total {
			diff = 2*acc - total
		} else {
			diff = total - 2*acc
		}
		if diff < bestDiff {
			best, bestDiff = i+1, diff
		}
	}
	return &shapeNode{
		left:  alphabeticShape(syms[:best], freq),
		right: alphabeticShape(syms[best:], freq),
	}
}

type huffItem struct {
	node   *shapeNode
	weight uint64
	order  int // insertion order, the deterministic tie-break
}

type huffHeap []huffItem

func (h huffHeap) Len() int { return len(h) }
func (h huffHeap) Less(i, j int) bool {
	if h[i].weight != h[j].weight {
		return h[i].weight < h[j].weight
	}
	return h[i].order < h[j].order
}
func (h huffHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *huffHeap) Push(x interface{}) { *h = append(*h, x.(huffItem)) }
func (h *huffHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// huffmanShape merges the two lightest subtrees until one remains.
// Frequent symbols end up near the root; symbol order is not
// preserved.
func huffmanShape(syms []uint64, freq map[uint64]uint64) *shapeNode {
	h := make(huffHeap, 0, len(syms))
	order := 0
	for _, sym := range syms {
		h = append(h, huffItem{
			node:   &shapeNode{sym: sym, isLeaf: true},
			weight: freq[sym],
			order:  order,
		})
		order++
	}
	heap.Init(&h)
	for h.Len() > 1 {
		a := heap.Pop(&h).(huffItem)
		b := heap.Pop(&h).(huffItem)
		heap.Push(&h, huffItem{
			node:   &shapeNode{left: a.node, right: b.node},
			weight: a.weight + b.weight,
			order:  order,
		})
		order++
	}
	return h[0].node
}
