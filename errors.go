package wavelet

import (
	"errors"
	"fmt"
)

// Failure kinds surfaced by queries and construction. Every operation
// validates its arguments eagerly, before any partial computation, and
// wraps one of these sentinels so callers can inspect the kind with
// errors.Is.
var (
	// ErrOutOfRange reports an index argument exceeding the sequence's
	// size bound.
	ErrOutOfRange = errors.New("wavelet: index out of range")
	// ErrInvalidArgument reports a well-typed but logically
	// inconsistent argument, such as an inverted interval or a select
	// rank above the symbol's occurrence count.
	ErrInvalidArgument = errors.New("wavelet: invalid argument")
	// ErrNotFound reports a symbol neighbor query with no qualifying
	// symbol.
	ErrNotFound = errors.New("wavelet: symbol not found")
	// ErrCorrupt reports a malformed construction or serialization
	// input; no structure results.
	ErrCorrupt = errors.New("wavelet: corrupt input")
)

func outOfRange(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrOutOfRange, fmt.Sprintf(format, args...))
}

func invalidArg(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func corrupt(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCorrupt, fmt.Sprintf(format, args...))
}

// checkPrefix validates a rank-style prefix bound 0 <= i <= n.
func checkPrefix(i, n uint64) error {
	if i > n {
		return outOfRange("position %d exceeds size %d", i, n)
	}
	return nil
}

// checkPosition validates a position 0 <= i < n.
func checkPosition(i, n uint64) error {
	if i >= n {
		return outOfRange("position %d not below size %d", i, n)
	}
	return nil
}

// checkRanges validates that every range is ordered and within [0, n].
func checkRanges(ranges []Range, n uint64) error {
	for _, r := range ranges {
		if r.Bpos > r.Epos {
			return invalidArg("range [%d, %d) is inverted", r.Bpos, r.Epos)
		}
		if r.Epos > n {
			return invalidArg("range [%d, %d) exceeds size %d", r.Bpos, r.Epos, n)
		}
	}
	return nil
}
