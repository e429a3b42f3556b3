// Package gentest contains conformance tests for splittable generators.
// Not used in production.
package gentest

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sot-tech/splitrand"
)

// Constructor builds a freshly seeded generator. Calling it twice
// with the same seed must yield two independent instances in
// identical state; backends fold the four words into their own seed
// shape.
type Constructor func(seed [4]uint64) splitrand.SplitSource

var testSeeds = [][4]uint64{
	{0, 0, 0, 0},
	{1, 0, 0, 0},
	{0, 0, 0, 1},
	{0xdeadbeefdeadbeef, 0xcafebabecafebabe, 0x0123456789abcdef, 0xfedcba9876543210},
	{math.MaxUint64, math.MaxUint64, math.MaxUint64, math.MaxUint64},
}

type testHolder struct {
	ctor Constructor
}

func words(src splitrand.Source, n int) []uint64 {
	out := make([]uint64, n)
	for i := range out {
		out[i] = src.Uint64()
	}
	return out
}

// Determinism checks that equal seeds produce equal word and byte
// streams under an identical sequence of operations.
func (th testHolder) Determinism(t *testing.T) {
	for _, seed := range testSeeds {
		a, b := th.ctor(seed), th.ctor(seed)
		require.Equal(t, words(a, 64), words(b, 64), "word streams diverged, seed %x", seed)
		require.Equal(t, a.Uint32(), b.Uint32(), "32-bit output diverged, seed %x", seed)

		// odd length exercises the partial tail block
		pa, pb := make([]byte, 257), make([]byte, 257)
		a.Fill(pa)
		b.Fill(pb)
		require.Equal(t, pa, pb, "byte streams diverged, seed %x", seed)
	}
}

// PrfTransparency checks that a factory is referentially transparent:
// the same index yields bit-identical children no matter how often or
// when it is called.
func (th testHolder) PrfTransparency(t *testing.T) {
	for _, seed := range testSeeds {
		g := th.ctor(seed)
		prf := g.Split()

		first := words(prf.Call(7), 32)

		// consume unrelated children in between
		_ = words(prf.Call(1), 100)
		_ = words(prf.Call(7), 5)

		require.Equal(t, first, words(prf.Call(7), 32), "factory is not pure, seed %x", seed)
	}
}

// SplitIndependence checks the central reproducibility guarantee: a
// child's stream depends only on the pre-split state and its index,
// never on the order or volume of sibling consumption.
func (th testHolder) SplitIndependence(t *testing.T) {
	for _, seed := range testSeeds {
		// run 1: read child 0 first, barely touch child 1
		prf := th.ctor(seed).Split()
		c0 := words(prf.Call(0), 32)
		_ = words(prf.Call(1), 1)

		// run 2: drain child 1 heavily before touching child 0
		prf = th.ctor(seed).Split()
		_ = words(prf.Call(1), 1000)
		require.Equal(t, c0, words(prf.Call(0), 32), "sibling consumption shifted child stream, seed %x", seed)
	}
}

// ValueIndependence checks the composite-value rule directly: in a
// pair, the value generated at one position is unaffected by the type
// generated at the other.
func (th testHolder) ValueIndependence(t *testing.T) {
	t0 := splitrand.ArrayOf(16, splitrand.Uint64Value)
	t1 := splitrand.ArrayOf(32, splitrand.Uint64Value)

	for _, seed := range testSeeds {
		narrow := splitrand.PairOf(t0, t0)(th.ctor(seed))
		wide := splitrand.PairOf(t0, t1)(th.ctor(seed))
		require.Equal(t, narrow.First, wide.First,
			"position 0 value changed with position 1 type, seed %x", seed)
	}
}

// CrossCombination seeds four generators identically and generates
// pairs in all four combinations of a 16-word and a 32-word element
// type, repeatedly on the same live generators. Values at a position
// must agree across the generators sharing that position's type, and
// the four generators must stay in matching states throughout.
func (th testHolder) CrossCombination(t *testing.T) {
	t0 := splitrand.ArrayOf(16, splitrand.Uint64Value)
	t1 := splitrand.ArrayOf(32, splitrand.Uint64Value)

	for _, seed := range testSeeds {
		gens := [4]splitrand.SplitSource{
			th.ctor(seed), th.ctor(seed), th.ctor(seed), th.ctor(seed),
		}

		for it := 0; it < 100; it++ {
			p00 := splitrand.PairOf(t0, t0)(gens[0])
			p01 := splitrand.PairOf(t0, t1)(gens[1])
			p10 := splitrand.PairOf(t1, t0)(gens[2])
			p11 := splitrand.PairOf(t1, t1)(gens[3])

			require.Equal(t, p00.First, p01.First, "iteration %d, seed %x", it, seed)
			require.Equal(t, p10.First, p11.First, "iteration %d, seed %x", it, seed)
			require.Equal(t, p00.Second, p10.Second, "iteration %d, seed %x", it, seed)
			require.Equal(t, p01.Second, p11.Second, "iteration %d, seed %x", it, seed)
		}

		// after the matched iterations the four must be indistinguishable
		w := gens[0].Uint64()
		for _, g := range gens[1:] {
			require.Equal(t, w, g.Uint64(), "generator states diverged, seed %x", seed)
		}
	}
}

// FactoryFreshness checks that consecutive Split calls never hand
// out the same factory: the parent's own state advances on Split.
func (th testHolder) FactoryFreshness(t *testing.T) {
	for _, seed := range testSeeds {
		g := th.ctor(seed)
		first := g.Split()
		second := g.Split()
		require.NotEqual(t, words(first.Call(0), 16), words(second.Call(0), 16),
			"consecutive splits reuse a factory key, seed %x", seed)
	}
}

// BoundaryIndices checks that index 0 and the maximum index both
// yield well-formed children, distinct from each other, from the
// parent and from the pre-split stream.
func (th testHolder) BoundaryIndices(t *testing.T) {
	for _, seed := range testSeeds {
		preSplit := words(th.ctor(seed), 8)

		g := th.ctor(seed)
		prf := g.Split()
		lo := words(prf.Call(0), 8)
		hi := words(prf.Call(math.MaxUint64), 8)
		parent := words(g, 8)

		require.NotEqual(t, lo, hi, "boundary children coincide, seed %x", seed)
		require.NotEqual(t, lo, parent, "child 0 tracks parent, seed %x", seed)
		require.NotEqual(t, hi, parent, "max child tracks parent, seed %x", seed)
		require.NotEqual(t, lo, preSplit, "child 0 tracks pre-split stream, seed %x", seed)
		require.NotEqual(t, hi, preSplit, "max child tracks pre-split stream, seed %x", seed)

		degenerate := make([]uint64, 8)
		require.NotEqual(t, degenerate, lo, "child 0 output degenerate, seed %x", seed)
		require.NotEqual(t, degenerate, hi, "max child output degenerate, seed %x", seed)
	}
}

// RunConformance tests a SplitSource implementation against the
// capability contracts.
func RunConformance(t *testing.T, ctor Constructor) {
	th := testHolder{ctor: ctor}

	t.Run("Determinism", th.Determinism)
	t.Run("PrfTransparency", th.PrfTransparency)
	t.Run("SplitIndependence", th.SplitIndependence)
	t.Run("FactoryFreshness", th.FactoryFreshness)
	t.Run("ValueIndependence", th.ValueIndependence)
	t.Run("CrossCombination", th.CrossCombination)
	t.Run("BoundaryIndices", th.BoundaryIndices)
}
