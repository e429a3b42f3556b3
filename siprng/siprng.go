// Package siprng implements the reference splittable generator,
// built on the SipHash keyed permutation. The permutation supplies
// the avalanche behavior that keeps child streams derived at nearby
// indices uncorrelated; it does NOT make this generator
// cryptographically secure, and no such claim is made.
//
// Sequential output runs the permutation in counter mode over the
// current lane state. Splitting descends the four-lane state with a
// domain-separation tag, so a factory key and the parent's own
// post-split state can never coincide.
//
// See https://eprint.iacr.org/2012/351 for the SipHash permutation
// and https://publications.lib.chalmers.se/records/fulltext/183348/local_183348.pdf
// for the hash-based splitting construction.
package siprng

import (
	"encoding/binary"
	"math/bits"

	"github.com/sot-tech/splitrand"
	"github.com/sot-tech/splitrand/pkg/conf"
)

// Name is the name by which this generator is registered.
const Name = "siprng"

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
	return New(cfg.Key0, cfg.Key1), nil
}

// Config holds the 128-bit seed of a Rand.
type Config struct {
	Key0 uint64 `cfg:"key0"`
	Key1 uint64 `cfg:"key1"`
}

// Lane initialization constants from the SipHash reference
// ("somepseudorandomlygeneratedbytes").
const (
	c0 = 0x736f6d6570736575
	c1 = 0x646f72616e646f6d
	c2 = 0x6c7967656e657261
	c3 = 0x7465646279746573
)

// Rand is a splittable generator over four 64-bit SipHash lanes.
// The zero value is a valid generator seeded with (0, 0); New and
// Seed derive lanes from an explicit key pair.
//
// Rand is a plain value: copying it forks the stream. Not safe for
// concurrent use; split before sharing.
type Rand struct {
	v0, v1, v2, v3 uint64
	ctr            uint64
	depth          uint64
}

// New creates a Rand seeded with the two given key words.
func New(k0, k1 uint64) *Rand {
	r := new(Rand)
	r.Seed(k0, k1)
	return r
}

// Seed resets the generator to the state defined by the key pair.
// Identical keys always produce identical generators.
func (r *Rand) Seed(k0, k1 uint64) {
	*r = Rand{
		v0:    k0 ^ c0,
		v1:    k1 ^ c1,
		v2:    k0 ^ c2,
		v3:    k1 ^ c3,
		depth: 1,
	}
}

func sipRound(v0, v1, v2, v3 uint64) (uint64, uint64, uint64, uint64) {
	v0 += v1
	v1 = bits.RotateLeft64(v1, 13) ^ v0
	v0 = bits.RotateLeft64(v0, 32)
	v2 += v3
	v3 = bits.RotateLeft64(v3, 16) ^ v2

	v2 += v1
	v1 = bits.RotateLeft64(v1, 17) ^ v2
	v2 = bits.RotateLeft64(v2, 32)
	v0 += v3
	v3 = bits.RotateLeft64(v3, 21) ^ v0
	return v0, v1, v2, v3
}

// advance absorbs the current counter position into the lanes.
func (r *Rand) advance() {
	r.v3 ^= r.ctr
	r.v0, r.v1, r.v2, r.v3 = sipRound(r.v0, r.v1, r.v2, r.v3)
	r.v0 ^= r.ctr
	r.ctr++
	if r.ctr == 0 {
		// counter exhausted, move to a fresh subtree
		r.descend(0)
	}
}

// descend derives the state of child i, one level deeper in the
// split tree.
func (r *Rand) descend(i uint64) {
	r.v3 ^= i
	r.v0, r.v1, r.v2, r.v3 = sipRound(r.v0, r.v1, r.v2, r.v3)
	r.v0 ^= i
	r.depth++
	r.ctr = 0
}

// Uint64 returns the next 64 pseudorandom bits: a finalization of the
// advanced lane state, with the tree depth folded in so a node and
// its descendants never share an output schedule.
func (r *Rand) Uint64() uint64 {
	r.advance()
	v0, v1, v2, v3 := r.v0, r.v1, r.v2, r.v3

	d := r.depth << 56
	v3 ^= d
	v0, v1, v2, v3 = sipRound(v0, v1, v2, v3)
	v0 ^= d

	v2 ^= 0xff
	v0, v1, v2, v3 = sipRound(v0, v1, v2, v3)
	v0, v1, v2, v3 = sipRound(v0, v1, v2, v3)
	v0, v1, v2, v3 = sipRound(v0, v1, v2, v3)
	return v0 ^ v1 ^ v2 ^ v3
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

// Split derives a Prf off the generator. The receiver descends with
// tag 0 and the factory base with tag 1, so the factory key depends
// on the pre-split state but never equals any state the parent can
// reach afterwards.
func (r *Rand) Split() splitrand.Prf {
	base := *r
	r.descend(0)
	base.descend(1)
	return Prf{base}
}

// Prf is an immutable factory of child generators taken off a Rand.
type Prf struct {
	base Rand
}

// Call returns the child generator at the given index. Pure: the
// result depends only on the factory and the index.
func (p Prf) Call(index uint64) splitrand.SplitSource {
	child := p.base
	child.descend(index)
	return &child
}
