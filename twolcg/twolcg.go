// Package twolcg implements a splittable generator based on Guy
// Steele's TwoLCG construction: two 64-bit linear congruential states
// with per-instance additive parameters, mixed on output. Splitting
// captures an odd multiplier and derives child parameters from it, so
// every child runs a differently-parameterized pair of LCGs.
//
// This backend trades the avalanche quality of the keyed-permutation
// backends for raw speed; sibling independence rests on the
// distinctness of derived parameters, not on a hash assumption.
//
// See "Fast Splittable Pseudorandom Number Generators",
// http://on-demand.gputechconf.com/gtc/2016/presentation/s6665-guy-steele-fast-splittable.pdf .
package twolcg

import (
	"encoding/binary"
	"math/bits"

	"github.com/sot-tech/splitrand"
	"github.com/sot-tech/splitrand/pkg/conf"
)

// Name is the name by which this generator is registered.
const Name = "twolcg"

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
	var s [4]uint64
	copy(s[:], cfg.Seed)
	return New(s[0], s[1], s[2], s[3]), nil
}

// Config holds the seed of a Rand as up to four 64-bit words
// (two states, two parameters); missing words are zero.
type Config struct {
	Seed []uint64 `cfg:"seed"`
}

const (
	m0 = 2685821657736338717
	m1 = 3202034522624059733
	m2 = 3935559000370003845
)

// Rand is a splittable generator over a pair of 64-bit LCGs.
// Not safe for concurrent use; split before sharing.
type Rand struct {
	// mutable states
	s1, s2 uint64
	// immutable per-instance parameters, forced odd
	g1, g2 uint64
}

// New creates a Rand from two states and two parameters. The least
// significant bit of both g1 and g2 is forced to one.
func New(s1, s2, g1, g2 uint64) *Rand {
	return &Rand{s1: s1, s2: s2, g1: g1 | 1, g2: g2 | 1}
}

// Seed resets the generator to the state defined by the four words.
func (r *Rand) Seed(s1, s2, g1, g2 uint64) {
	*r = Rand{s1: s1, s2: s2, g1: g1 | 1, g2: g2 | 1}
}

// Uint64 returns the next 64 pseudorandom bits.
func (r *Rand) Uint64() uint64 {
	v := bits.RotateLeft64(r.s1, 32) ^ r.s2
	v = bits.RotateLeft64(v, int(r.s1>>58)) * m0
	r.s1 = r.s1*m1 + r.g1
	r.s2 = r.s2*m2 + r.g2
	return v ^ (v >> 32)
}

// Uint32 returns the next 32 pseudorandom bits.
func (r *Rand) Uint32() uint32 {
	return uint32(r.Uint64())
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

// Split derives a Prf off the generator, consuming one output word as
// the factory's multiplier, so consecutive Split calls never hand out
// the same factory.
func (r *Rand) Split() splitrand.Prf {
	return Prf{m: r.Uint64() | 1}
}

// Prf is an immutable factory of child generators taken off a Rand.
// It captures a single odd multiplier; child parameters are the
// multiplier scaled by index-derived even factors, the construction
// Steele recommends for creating many generators upfront.
type Prf struct {
	m uint64
}

// Call returns the child generator at the given index.
func (p Prf) Call(index uint64) splitrand.SplitSource {
	k0 := index
	k1 := index + 1
	k2 := index + 2
	k3 := index + 3
	return New(4*k0*p.m, 4*k2*p.m, 4*k1*p.m, 4*k3*p.m)
}
