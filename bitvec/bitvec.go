// Package bitvec abstracts the low-level rank/select bit vectors the
// wavelet structures are layered on. Two interchangeable backends are
// provided: an RSDic succinct dictionary and a compressed Roaring
// bitmap.
package bitvec

import (
	"errors"
	"fmt"
)

// Kind names a bit-vector backend.
type Kind string

const (
	// RSDic is the succinct rank/select dictionary backend.
	RSDic Kind = "rsdic"
	// Roaring is the compressed bitmap backend. Vectors are limited
	// to 2^32 positions.
	Roaring Kind = "roaring"
)

// ErrUnknownKind reports a backend name outside the sealed Kind set.
var ErrUnknownKind = errors.New("bitvec: unknown backend kind")

// Vector is an immutable bit sequence with rank and select.
type Vector interface {
	// Len returns the number of bits.
	Len() uint64
	// Count returns the number of set (or clear) bits.
	Count(bit bool) uint64
	// Bit returns the bit at pos, 0 <= pos < Len().
	Bit(pos uint64) bool
	// Rank counts occurrences of bit in [0, pos), 0 <= pos <= Len().
	Rank(pos uint64, bit bool) uint64
	// Select returns the position of the (k+1)-th occurrence of bit,
	// k 0-indexed; k must be below Count(bit).
	Select(k uint64, bit bool) uint64

	MarshalBinary() ([]byte, error)
}

// Builder accumulates bits back-to-front and freezes them into a
// Vector. A Builder is single-use.
type Builder interface {
	PushBack(bit bool)
	Finish() Vector
}

// NewBuilder returns a fresh builder for the given backend.
func NewBuilder(kind Kind) (Builder, error) {
	switch kind {
	case RSDic:
		return newRSDicBuilder(), nil
	case Roaring:
		return newRoaringBuilder(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// Unmarshal decodes a Vector previously produced by MarshalBinary on
// a vector of the same kind.
func Unmarshal(kind Kind, data []byte) (Vector, error) {
	switch kind {
	case RSDic:
		return unmarshalRSDic(data)
	case Roaring:
		return unmarshalRoaring(data)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// Kinds lists the available backends.
func Kinds() []Kind {
	return []Kind{RSDic, Roaring}
}
