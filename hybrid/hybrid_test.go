package hybrid

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sot-tech/splitrand"
	"github.com/sot-tech/splitrand/gentest"
	"github.com/sot-tech/splitrand/pkg/conf"
	"github.com/sot-tech/splitrand/siprng"
	"github.com/sot-tech/splitrand/xorshift"
)

func newRand(seed [4]uint64) splitrand.SplitSource {
	return New(siprng.New(seed[0], seed[1]), XorshiftSeed)
}

func TestConformance(t *testing.T) { gentest.RunConformance(t, newRand) }

func BenchmarkRand(b *testing.B) { gentest.RunBenchmarks(b, newRand) }

// descend follows the same split path on any splittable generator.
func descend(src splitrand.SplitSource, path ...uint64) splitrand.SplitSource {
	for _, i := range path {
		src = src.Split().Call(i)
	}
	return src
}

func TestReseedEquivalence(t *testing.T) {
	// two instances from the same outer seed, split along the same
	// path, must produce identical bulk output from their inner
	// generators
	a := descend(newRand([4]uint64{42, 43, 0, 0}), 3, 1, 4)
	b := descend(newRand([4]uint64{42, 43, 0, 0}), 3, 1, 4)

	pa, pb := make([]byte, 4096), make([]byte, 4096)
	a.Fill(pa)
	b.Fill(pb)
	require.Equal(t, pa, pb)
}

func TestSequentialDelegation(t *testing.T) {
	// bulk output must be exactly the inner generator seeded with two
	// words of outer output
	outer := siprng.New(7, 11)
	h := New(siprng.New(7, 11), XorshiftSeed)

	inner := xorshift.New(outer.Uint64(), outer.Uint64())
	for i := 0; i < 100; i++ {
		require.Equal(t, inner.Uint64(), h.Uint64())
	}
}

func TestBulkConsumptionKeepsSplitsAligned(t *testing.T) {
	// drawing bulk output never consults the outer generator, so two
	// instances differing only in consumed volume split identically
	fresh := newRand([4]uint64{5, 6, 0, 0})
	drained := newRand([4]uint64{5, 6, 0, 0})
	buf := make([]byte, 8192)
	drained.Fill(buf)

	a := words(fresh.Split().Call(0), 32)
	b := words(drained.Split().Call(0), 32)
	require.Equal(t, a, b)
}

func words(src splitrand.Source, n int) []uint64 {
	out := make([]uint64, n)
	for i := range out {
		out[i] = src.Uint64()
	}
	return out
}

func TestDriver(t *testing.T) {
	src, err := splitrand.NewSource(Name, conf.MapConfig{
		"splitter": map[string]any{
			"name":   siprng.Name,
			"config": map[string]any{"key0": 7, "key1": 11},
		},
	})
	require.NoError(t, err)
	require.IsType(t, &Rand{}, src)
	require.Equal(t, New(siprng.New(7, 11), XorshiftSeed).Uint64(), src.Uint64())

	_, err = splitrand.NewSource(Name, conf.MapConfig{
		"splitter": map[string]any{"name": xorshift.Name, "config": map[string]any{}},
	})
	require.ErrorIs(t, err, splitrand.ErrNotSplittable)

	_, err = splitrand.NewSource(Name, conf.MapConfig{
		"splitter": map[string]any{"name": "no such generator", "config": map[string]any{}},
	})
	require.ErrorIs(t, err, splitrand.ErrDriverDoesNotExist)
}
