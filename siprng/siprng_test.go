package siprng

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sot-tech/splitrand"
	"github.com/sot-tech/splitrand/gentest"
	"github.com/sot-tech/splitrand/pkg/conf"
)

func newRand(seed [4]uint64) splitrand.SplitSource {
	return New(seed[0], seed[1])
}

func TestConformance(t *testing.T) { gentest.RunConformance(t, newRand) }

func BenchmarkRand(b *testing.B) { gentest.RunBenchmarks(b, newRand) }

func TestSeedReset(t *testing.T) {
	r := New(7, 11)
	for i := 0; i < 100; i++ {
		_ = r.Uint64()
	}
	_ = r.Split()

	r.Seed(7, 11)
	require.Equal(t, New(7, 11).Uint64(), r.Uint64())
}

func TestKeySensitivity(t *testing.T) {
	// flipping a single seed bit must change the stream
	a, b := New(0, 0), New(1, 0)
	require.NotEqual(t, a.Uint64(), b.Uint64())

	c, d := New(0, 0), New(0, 1<<63)
	require.NotEqual(t, c.Uint64(), d.Uint64())
}

func TestDriver(t *testing.T) {
	src, err := splitrand.NewSource(Name, conf.MapConfig{"key0": 21, "key1": 42})
	require.NoError(t, err)
	require.IsType(t, &Rand{}, src)
	require.Equal(t, New(21, 42).Uint64(), src.Uint64())

	// empty config keys with (0, 0)
	src, err = splitrand.NewSource(Name, conf.MapConfig{})
	require.NoError(t, err)
	require.Equal(t, New(0, 0).Uint64(), src.Uint64())
}
