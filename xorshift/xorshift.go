// Package xorshift contains fast sequential generators from the
// XOR/rotate/shift family. They are sequential-only: the package
// satisfies the Source capability but not the splittable one, and is
// meant as the bulk-output half of a hybrid construction or as a
// plain predictable pseudorandom stream.
// See https://prng.di.unimi.it .
package xorshift

import (
	"encoding/binary"
	"math/bits"

	"github.com/sot-tech/splitrand"
	"github.com/sot-tech/splitrand/pkg/conf"
)

// Name is the name by which this generator is registered.
const Name = "xorshift"

func init() {
	// Register the generator driver.
	splitrand.RegisterDriver(Name, driver{})
}

type driver struct{}

func (driver) NewSource(icfg conf.MapConfig) (splitrand.Source, error) {
	var cfg Config
	if err := icfg.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return New(cfg.Seed0, cfg.Seed1), nil
}

// Config holds the 128-bit seed of a Rand.
type Config struct {
	Seed0 uint64 `cfg:"seed0"`
	Seed1 uint64 `cfg:"seed1"`
}

// XoRoShiRo128SS calculates predictable pseudorandom number
// with XOR/rotate/shift/rotate 128** (xoroshiro128starstar) algorithm.
// see https://prng.di.unimi.it/xoroshiro128starstar.c
func XoRoShiRo128SS(s0, s1 uint64) (uint64, uint64, uint64) {
	r := bits.RotateLeft64(s0*5, 7) * 9
	s1 ^= s0
	s0 = bits.RotateLeft64(s0, 24) ^ s1 ^ (s1 << 16)
	s1 = bits.RotateLeft64(s1, 37)
	return r, s0, s1
}

// XorShift64S calculates predictable pseudorandom number
// with XOR/Shift 64* (xorshift64*) algorithm.
// see https://vigna.di.unimi.it/ftp/papers/xorshift.pdf
func XorShift64S(s uint64) (uint64, uint64) {
	s ^= s >> 12
	s ^= s << 25
	s ^= s >> 27
	return s * 0x2545F4914F6CDD1D, s
}

// Rand is a sequential generator running xoroshiro128**.
// Not safe for concurrent use.
type Rand struct {
	s0, s1 uint64
}

// New creates a Rand from two seed words. The all-zero seed is a
// fixed point of the scrambler, so it is displaced to a nonzero one
// first; the scrambling itself is a bijection per word, no entropy
// discarded.
func New(s0, s1 uint64) *Rand {
	r := new(Rand)
	r.Seed(s0, s1)
	return r
}

// Seed resets the generator to the state derived from the seed pair.
// Each word is scrambled through xorshift64* so that close seeds do
// not start xoroshiro from correlated states.
func (r *Rand) Seed(s0, s1 uint64) {
	if s0|s1 == 0 {
		s1 = 0x9e3779b97f4a7c15
	}
	r.s0, _ = XorShift64S(s0)
	r.s1, _ = XorShift64S(s1)
}

// Uint64 returns the next 64 pseudorandom bits.
func (r *Rand) Uint64() (v uint64) {
	v, r.s0, r.s1 = XoRoShiRo128SS(r.s0, r.s1)
	return
}

// Uint32 returns the next 32 pseudorandom bits.
func (r *Rand) Uint32() uint32 {
	return uint32(r.Uint64() >> 32)
}

// Fill overwrites p with pseudorandom bytes, fixed little-endian.
func (r *Rand) Fill(p []byte) {
	for len(p) >= 8 {
		binary.LittleEndian.PutUint64(p, r.Uint64())
		p = p[8:]
	}
	if len(p) > 0 {
		var tail [8]byte
		binary.LittleEndian.PutUint64(tail[:], r.Uint64())
		copy(p, tail[:])
	}
}
