// Package catalog enumerates every variant family × bit-vector
// backend combination as an immutable registry, so callers can pick a
// structure by name without knowing the concrete types. The registry
// also carries the capability tags of each entry for discovery; the
// tags mirror the Go interfaces the concrete types satisfy.
package catalog

import (
	"fmt"
	"sort"

	"github.com/go-succinct/wavelet"
	"github.com/go-succinct/wavelet/bitvec"
)

// Tags are the static capabilities of a variant: whether symbols
// admit a usable total order, whether the decomposition is navigable,
// and whether 2-D range search applies.
type Tags struct {
	Ordered        bool
	Traversable    bool
	PointIndexable bool
}

// Entry binds one (family, backend) pair to its construction and
// restore paths.
type Entry struct {
	Family  string
	Backend string
	Tags    Tags
	Build   func(vals []uint64) (wavelet.Sequence, error)
	Restore func(data []byte) (wavelet.Sequence, error)
}

// Registry is the immutable variant catalog. Build one with New (or
// use Default) and pass it by reference; there is no way to mutate it
// afterwards.
type Registry struct {
	entries map[string]Entry
}

// Default is the registry over the sealed family set, built once at
// package initialization.
var Default = New()

func key(family, backend string) string {
	return family + "/" + backend
}

func restore(seq wavelet.Sequence) func([]byte) (wavelet.Sequence, error) {
	return func(data []byte) (wavelet.Sequence, error) {
		if err := seq.UnmarshalBinary(data); err != nil {
			return nil, err
		}
		return seq, nil
	}
}

// New builds the registry over the sealed set of families crossed
// with the available bit-vector backends. The GMR families carry
// their own fixed representation and appear under the roaring
// backend only.
func New() *Registry {
	r := &Registry{entries: make(map[string]Entry)}
	for _, kind := range bitvec.Kinds() {
		kind := kind
		backend := string(kind)
		r.add(Entry{
			Family: "matrix", Backend: backend,
			Tags: Tags{Ordered: true},
			Build: func(vals []uint64) (wavelet.Sequence, error) {
				return wavelet.NewMatrix(vals, kind)
			},
			Restore: func(data []byte) (wavelet.Sequence, error) {
				return restore(&wavelet.Matrix{})(data)
			},
		})
		r.add(Entry{
			Family: "int", Backend: backend,
			Tags: Tags{Ordered: true, Traversable: true, PointIndexable: true},
			Build: func(vals []uint64) (wavelet.Sequence, error) {
				return wavelet.NewInt(vals, kind)
			},
			Restore: func(data []byte) (wavelet.Sequence, error) {
				return restore(&wavelet.Int{})(data)
			},
		})
		r.add(Entry{
			Family: "balanced", Backend: backend,
			Tags: Tags{Ordered: true, Traversable: true},
			Build: func(vals []uint64) (wavelet.Sequence, error) {
				return wavelet.NewBalanced(vals, kind)
			},
			Restore: func(data []byte) (wavelet.Sequence, error) {
				return restore(&wavelet.Balanced{})(data)
			},
		})
		r.add(Entry{
			Family: "hutucker", Backend: backend,
			Tags: Tags{Ordered: true, Traversable: true},
			Build: func(vals []uint64) (wavelet.Sequence, error) {
				return wavelet.NewHuTucker(vals, kind)
			},
			Restore: func(data []byte) (wavelet.Sequence, error) {
				return restore(&wavelet.HuTucker{})(data)
			},
		})
		r.add(Entry{
			Family: "huffman", Backend: backend,
			Tags: Tags{Traversable: true},
			Build: func(vals []uint64) (wavelet.Sequence, error) {
				return wavelet.NewHuffman(vals, kind)
			},
			Restore: func(data []byte) (wavelet.Sequence, error) {
				return restore(&wavelet.Huffman{})(data)
			},
		})
		r.add(Entry{
			Family: "ap", Backend: backend,
			Tags: Tags{},
			Build: func(vals []uint64) (wavelet.Sequence, error) {
				return wavelet.NewAlphabetPartitioned(vals, kind)
			},
			Restore: func(data []byte) (wavelet.Sequence, error) {
				return restore(&wavelet.AlphabetPartitioned{})(data)
			},
		})
	}
	r.add(Entry{
		Family: "gmr", Backend: string(bitvec.Roaring),
		Tags: Tags{},
		Build: func(vals []uint64) (wavelet.Sequence, error) {
			return wavelet.NewGMR(vals, false)
		},
		Restore: func(data []byte) (wavelet.Sequence, error) {
			return restore(&wavelet.GMR{})(data)
		},
	})
	r.add(Entry{
		Family: "gmr-enc", Backend: string(bitvec.Roaring),
		Tags: Tags{},
		Build: func(vals []uint64) (wavelet.Sequence, error) {
			return wavelet.NewGMR(vals, true)
		},
		Restore: func(data []byte) (wavelet.Sequence, error) {
			return restore(&wavelet.GMR{})(data)
		},
	})
	return r
}

func (r *Registry) add(e Entry) {
	r.entries[key(e.Family, e.Backend)] = e
}

// Lookup finds the entry for a (family, backend) pair.
func (r *Registry) Lookup(family, backend string) (Entry, error) {
	e, ok := r.entries[key(family, backend)]
	if !ok {
		return Entry{}, fmt.Errorf("catalog: no variant %q over backend %q", family, backend)
	}
	return e, nil
}

// Entries lists every entry, ordered by family then backend.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Family != out[j].Family {
			return out[i].Family < out[j].Family
		}
		return out[i].Backend < out[j].Backend
	})
	return out
}

// Families lists the distinct family names.
func (r *Registry) Families() []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, 8)
	for _, e := range r.entries {
		if _, ok := seen[e.Family]; !ok {
			seen[e.Family] = struct{}{}
			out = append(out, e.Family)
		}
	}
	sort.Strings(out)
	return out
}
