package wavelet

import (
	"encoding/binary"
	"os"
	"strconv"
	"strings"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// BytesValues reads a flat little-endian buffer of fixed-width
// symbols, the width inferred from the target value type. A buffer
// whose length is not a multiple of the width is corrupt and yields
// nothing.
func BytesValues[T constraints.Unsigned](raw []byte) ([]uint64, error) {
	width := int(unsafe.Sizeof(T(0)))
	return decodeWidth(raw, width)
}

// FileValues reads the same flat byte layout from a file in one
// bounded read.
func FileValues[T constraints.Unsigned](path string) ([]uint64, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return BytesValues[T](raw)
}

// DecodeWidth is the runtime-width twin of BytesValues, used where
// the value type is not known statically (catalog, CLI). width must
// be 1, 2, 4 or 8 bytes.
func DecodeWidth(raw []byte, width int) ([]uint64, error) {
	return decodeWidth(raw, width)
}

func decodeWidth(raw []byte, width int) ([]uint64, error) {
	switch width {
	case 1, 2, 4, 8:
	default:
		return nil, invalidArg("unsupported symbol width %d", width)
	}
	if len(raw)%width != 0 {
		return nil, corrupt("buffer of %d bytes is not a multiple of width %d", len(raw), width)
	}
	vals := make([]uint64, len(raw)/width)
	for i := range vals {
		chunk := raw[i*width:]
		switch width {
		case 1:
			vals[i] = uint64(chunk[0])
		case 2:
			vals[i] = uint64(binary.LittleEndian.Uint16(chunk))
		case 4:
			vals[i] = uint64(binary.LittleEndian.Uint32(chunk))
		case 8:
			vals[i] = binary.LittleEndian.Uint64(chunk)
		}
	}
	return vals, nil
}

// TextValues parses a whitespace-separated sequence of unsigned
// decimal symbols, the human-authored construction form.
func TextValues(s string) ([]uint64, error) {
	fields := strings.Fields(s)
	vals := make([]uint64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			return nil, corrupt("symbol %q at index %d: %v", f, i, err)
		}
		vals[i] = v
	}
	return vals, nil
}
