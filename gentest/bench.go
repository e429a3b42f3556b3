package gentest

import (
	"testing"

	"github.com/sot-tech/splitrand"
)

type benchHolder struct {
	ctor Constructor
}

var benchSeed = [4]uint64{0x0123456789abcdef, 0x89abcdef01234567, 1, 2}

func (bh benchHolder) Uint64(b *testing.B) {
	src := bh.ctor(benchSeed)
	var v uint64
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		v = src.Uint64()
	}
	_ = v
}

func (bh benchHolder) Fill1k(b *testing.B) {
	src := bh.ctor(benchSeed)
	buf := make([]byte, 1024)
	b.SetBytes(int64(len(buf)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		src.Fill(buf)
	}
}

func (bh benchHolder) Split(b *testing.B) {
	src := bh.ctor(benchSeed)
	var child splitrand.SplitSource
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		child = src.Split().Call(uint64(i))
	}
	_ = child
}

// RunBenchmarks measures sequential and splitting throughput of a
// SplitSource implementation.
func RunBenchmarks(b *testing.B, ctor Constructor) {
	bh := benchHolder{ctor: ctor}
	b.Run("Uint64", bh.Uint64)
	b.Run("Fill1k", bh.Fill1k)
	b.Run("Split", bh.Split)
}
