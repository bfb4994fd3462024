package bitvec

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func naiveRank(bits []bool, pos uint64, bit bool) uint64 {
	cnt := uint64(0)
	for _, b := range bits[:pos] {
		if b == bit {
			cnt++
		}
	}
	return cnt
}

func naiveSelect(bits []bool, k uint64, bit bool) uint64 {
	seen := uint64(0)
	for i, b := range bits {
		if b == bit {
			if seen == k {
				return uint64(i)
			}
			seen++
		}
	}
	return uint64(len(bits))
}

func buildVector(t *testing.T, kind Kind, bits []bool) Vector {
	t.Helper()
	b, err := NewBuilder(kind)
	require.NoError(t, err)
	for _, bit := range bits {
		b.PushBack(bit)
	}
	return b.Finish()
}

func TestBackendConformance(t *testing.T) {
	for _, kind := range Kinds() {
		kind := kind
		t.Run(string(kind), func(t *testing.T) {
			rng := rand.New(rand.NewSource(99))
			bits := make([]bool, 2000)
			ones := uint64(0)
			for i := range bits {
				bits[i] = rng.Intn(3) == 0
				if bits[i] {
					ones++
				}
			}
			v := buildVector(t, kind, bits)

			assert.Equal(t, uint64(len(bits)), v.Len())
			assert.Equal(t, ones, v.Count(true))
			assert.Equal(t, uint64(len(bits))-ones, v.Count(false))

			for i := 0; i < 200; i++ {
				pos := uint64(rng.Intn(len(bits)))
				assert.Equal(t, bits[pos], v.Bit(pos))
				assert.Equal(t, naiveRank(bits, pos, true), v.Rank(pos, true))
				assert.Equal(t, naiveRank(bits, pos, false), v.Rank(pos, false))
			}
			assert.Equal(t, ones, v.Rank(v.Len(), true))

			for i := 0; i < 200; i++ {
				k := uint64(rng.Int63n(int64(ones)))
				assert.Equal(t, naiveSelect(bits, k, true), v.Select(k, true))
				k = uint64(rng.Int63n(int64(uint64(len(bits)) - ones)))
				assert.Equal(t, naiveSelect(bits, k, false), v.Select(k, false))
			}
		})
	}
}

func TestBackendRoundTrip(t *testing.T) {
	for _, kind := range Kinds() {
		kind := kind
		t.Run(string(kind), func(t *testing.T) {
			rng := rand.New(rand.NewSource(4))
			bits := make([]bool, 500)
			for i := range bits {
				bits[i] = rng.Intn(2) == 0
			}
			v := buildVector(t, kind, bits)

			data, err := v.MarshalBinary()
			require.NoError(t, err)

			back, err := Unmarshal(kind, data)
			require.NoError(t, err)
			assert.Equal(t, v.Len(), back.Len())
			assert.Equal(t, v.Count(true), back.Count(true))
			for pos := uint64(0); pos < back.Len(); pos++ {
				assert.Equal(t, bits[pos], back.Bit(pos))
			}
		})
	}
}

func TestBackendEmpty(t *testing.T) {
	for _, kind := range Kinds() {
		kind := kind
		t.Run(string(kind), func(t *testing.T) {
			v := buildVector(t, kind, nil)
			assert.Equal(t, uint64(0), v.Len())
			assert.Equal(t, uint64(0), v.Count(true))
			assert.Equal(t, uint64(0), v.Rank(0, true))

			data, err := v.MarshalBinary()
			require.NoError(t, err)
			back, err := Unmarshal(kind, data)
			require.NoError(t, err)
			assert.Equal(t, uint64(0), back.Len())
		})
	}
}

func TestUnknownKind(t *testing.T) {
	_, err := NewBuilder(Kind("mystery"))
	assert.True(t, errors.Is(err, ErrUnknownKind))

	_, err = Unmarshal(Kind("mystery"), nil)
	assert.True(t, errors.Is(err, ErrUnknownKind))
}
