package splitrand

import "github.com/cespare/xxhash/v2"

// Gen produces one value of type T, drawing all of its randomness
// from the supplied generator.
//
// Composite Gens built with PairOf and ArrayOf give every component
// its own child stream at a fixed, position-derived split index, so
// the bits behind component k depend only on the generator's state,
// the position k and the component's own Gen, never on what the
// other components are or how much they consume. Atomic Gens such as
// Uint64Value draw sequentially instead; that is a declared opt-out
// for types too small to benefit from splitting.
type Gen[T any] func(src SplitSource) T

// Uint64Value draws one word sequentially. Atomic.
func Uint64Value(src SplitSource) uint64 { return src.Uint64() }

// Uint32Value draws one 32-bit word sequentially. Atomic.
func Uint32Value(src SplitSource) uint32 { return src.Uint32() }

// BoolValue draws one bit sequentially. Atomic.
func BoolValue(src SplitSource) bool { return src.Uint64()&1 == 1 }

// Float64Value draws one float in [0, 1) sequentially. Atomic.
func Float64Value(src SplitSource) float64 {
	return float64(src.Uint64()>>11) / (1 << 53)
}

// BytesValue returns a Gen for a fixed-size byte block, drawn
// sequentially. Atomic.
func BytesValue(n int) Gen[[]byte] {
	return func(src SplitSource) []byte {
		p := make([]byte, n)
		src.Fill(p)
		return p
	}
}

// Tuple is a two-component composite value.
type Tuple[A, B any] struct {
	First  A
	Second B
}

// Pair generates two components directly off src, the first from
// split index 0 and the second from split index 1.
func Pair[A, B any](src SplitSource, first Gen[A], second Gen[B]) (A, B) {
	prf := src.Split()
	return first(prf.Call(0)), second(prf.Call(1))
}

// PairOf returns a Gen that builds a Tuple, generating the first
// component from split index 0 and the second from split index 1.
func PairOf[A, B any](first Gen[A], second Gen[B]) Gen[Tuple[A, B]] {
	return func(src SplitSource) Tuple[A, B] {
		a, b := Pair(src, first, second)
		return Tuple[A, B]{First: a, Second: b}
	}
}

// ArrayOf returns a Gen that builds a slice of n elements, generating
// element i from split index i.
func ArrayOf[T any](n int, element Gen[T]) Gen[[]T] {
	return func(src SplitSource) []T {
		prf := src.Split()
		out := make([]T, n)
		for i := range out {
			out[i] = element(prf.Call(uint64(i)))
		}
		return out
	}
}

// FuncOf derives a deterministic pseudorandom function off the
// generator: every distinct argument is folded to a split index with
// xxHash and mapped to its own child stream. The returned function is
// pure: equal arguments always yield equal results, for the lifetime
// of the captured factory.
func FuncOf[T any](src SplitSource, result Gen[T]) func(arg []byte) T {
	prf := src.Split()
	return func(arg []byte) T {
		return result(prf.Call(xxhash.Sum64(arg)))
	}
}
