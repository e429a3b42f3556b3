package xorshift

import (
	"encoding/binary"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sot-tech/splitrand"
	"github.com/sot-tech/splitrand/pkg/conf"
)

var _ splitrand.Source = (*Rand)(nil)

func TestSequentialOnly(t *testing.T) {
	// capability opt-out: this backend must not pretend to be splittable
	_, ok := any(New(1, 2)).(splitrand.SplitSource)
	require.False(t, ok)
}

func TestDeterminism(t *testing.T) {
	a, b := New(7, 11), New(7, 11)
	for i := 0; i < 1000; i++ {
		require.Equal(t, a.Uint64(), b.Uint64())
	}
}

func TestZeroSeedGuard(t *testing.T) {
	r := New(0, 0)
	require.NotZero(t, r.s0|r.s1)

	// the displaced state must still be deterministic
	require.Equal(t, New(0, 0).Uint64(), New(0, 0).Uint64())
}

func TestSeedWordsScrambled(t *testing.T) {
	w0, _ := XorShift64S(3)
	w1, _ := XorShift64S(5)

	r := New(3, 5)
	require.Equal(t, w0, r.s0)
	require.Equal(t, w1, r.s1)
}

func TestFillMatchesUint64(t *testing.T) {
	a, b := New(3, 5), New(3, 5)
	buf := make([]byte, 64)
	a.Fill(buf)
	for i := 0; i < len(buf); i += 8 {
		require.Equal(t, b.Uint64(), binary.LittleEndian.Uint64(buf[i:]))
	}
}

func TestKernelAdvancesState(t *testing.T) {
	_, s0, s1 := XoRoShiRo128SS(1, 2)
	require.NotEqual(t, [2]uint64{1, 2}, [2]uint64{s0, s1})

	v, s := XorShift64S(1)
	require.NotZero(t, v)
	require.NotEqual(t, uint64(1), s)
}

func TestDriver(t *testing.T) {
	src, err := splitrand.NewSource(Name, conf.MapConfig{"seed0": 3, "seed1": 5})
	require.NoError(t, err)
	require.IsType(t, &Rand{}, src)
	require.Equal(t, New(3, 5).Uint64(), src.Uint64())
}

func BenchmarkRandUint64(b *testing.B) {
	// nolint:gosec
	r := New(rand.Uint64(), rand.Uint64())
	var v uint64
	for i := 0; i < b.N; i++ {
		v = r.Uint64()
	}
	_ = v
}

func BenchmarkXoRoShiRo128SS(b *testing.B) {
	// nolint:gosec
	v, s0, s1 := uint64(0), rand.Uint64(), rand.Uint64()
	for i := 0; i < b.N; i++ {
		v, s0, s1 = XoRoShiRo128SS(s0, s1)
	}
	_, _, _ = v, s0, s1
}

func BenchmarkXorShift64Star(b *testing.B) {
	// nolint:gosec
	v, s := uint64(0), rand.Uint64()
	for i := 0; i < b.N; i++ {
		v, s = XorShift64S(s)
	}
	_, _ = v, s
}
