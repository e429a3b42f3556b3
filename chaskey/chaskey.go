// Package chaskey implements a splittable generator built on the
// Chaskey MAC permutation, a 32-bit-word counterpart of the siprng
// reference backend. It satisfies the same contracts with a different
// underlying primitive and, like the rest of this module, makes no
// cryptographic-security claim.
//
// See https://eprint.iacr.org/2014/386.pdf .
package chaskey

import (
	"encoding/binary"
	"math/bits"

	"github.com/sot-tech/splitrand"
	"github.com/sot-tech/splitrand/pkg/conf"
)

// Name is the name by which this generator is registered.
const Name = "chaskey"

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
	var k [4]uint32
	copy(k[:], cfg.Key)
	return New(k), nil
}

// Config holds the 128-bit key of a Rand as up to four 32-bit words;
// missing words are zero.
type Config struct {
	Key []uint32 `cfg:"key"`
}

// Rand is a splittable generator over four 32-bit Chaskey state words.
// Not safe for concurrent use; split before sharing.
type Rand struct {
	v   [4]uint32
	k1  [4]uint32
	ctr uint64
}

// New creates a Rand keyed with the given four words.
func New(k [4]uint32) *Rand {
	r := new(Rand)
	r.Seed(k)
	return r
}

// Seed resets the generator to the state defined by the key.
func (r *Rand) Seed(k [4]uint32) {
	*r = Rand{v: k, k1: timesTwo(k)}
}

// timesTwo is the Chaskey subkey schedule: doubling in GF(2^128).
func timesTwo(k [4]uint32) [4]uint32 {
	var c uint32
	if k[3]&0x8000_0000 != 0 {
		c = 0x87
	}
	return [4]uint32{
		k[0]<<1 ^ c,
		k[1]<<1 | k[0]>>31,
		k[2]<<1 | k[1]>>31,
		k[3]<<1 | k[2]>>31,
	}
}

func round(v *[4]uint32) {
	v[0] += v[1]
	v[1] = bits.RotateLeft32(v[1], 5) ^ v[0]
	v[0] = bits.RotateLeft32(v[0], 16)
	v[2] += v[3]
	v[3] = bits.RotateLeft32(v[3], 8) ^ v[2]

	v[2] += v[1]
	v[1] = bits.RotateLeft32(v[1], 7) ^ v[2]
	v[2] = bits.RotateLeft32(v[2], 16)
	v[0] += v[3]
	v[3] = bits.RotateLeft32(v[3], 13) ^ v[0]
}

func permute(v *[4]uint32) {
	for i := 0; i < 8; i++ {
		round(v)
	}
}

// advance produces the next 128-bit output block in counter mode.
func (r *Rand) advance() [4]uint32 {
	blk := [4]uint32{
		r.v[0] ^ r.k1[0],
		r.v[1] ^ r.k1[1],
		r.v[2] ^ r.k1[2] ^ uint32(r.ctr),
		r.v[3] ^ r.k1[3] ^ uint32(r.ctr>>32),
	}
	permute(&blk)
	blk[0] ^= r.k1[0]
	blk[1] ^= r.k1[1]
	blk[2] ^= r.k1[2]
	blk[3] ^= r.k1[3]
	r.ctr++
	return blk
}

// descend derives the state of child i. The index is spread over two
// lanes so the whole uint64 index domain stays addressable.
func (r *Rand) descend(i uint64) {
	r.v[0] ^= 0xffff_ffff
	r.v[1] ^= uint32(i)
	r.v[2] ^= uint32(i>>32) ^ uint32(r.ctr)
	r.v[3] ^= uint32(r.ctr >> 32)
	permute(&r.v)
	r.ctr = 0
}

// Uint64 returns the next 64 pseudorandom bits.
func (r *Rand) Uint64() uint64 {
	blk := r.advance()
	return uint64(blk[0])<<32 | uint64(blk[1])
}

// Uint32 returns the next 32 pseudorandom bits.
func (r *Rand) Uint32() uint32 {
	return r.advance()[0]
}

// Fill overwrites p with pseudorandom bytes, fixed little-endian.
func (r *Rand) Fill(p []byte) {
	for len(p) > 0 {
		blk := r.advance()
		var buf [16]byte
		for i, w := range blk {
			binary.LittleEndian.PutUint32(buf[i*4:], w)
		}
		n := copy(p, buf[:])
		p = p[n:]
	}
}

// Split derives a Prf off the generator, descending the receiver with
// tag 0 and the factory base with tag 1.
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

// Call returns the child generator at the given index.
func (p Prf) Call(index uint64) splitrand.SplitSource {
	child := p.base
	child.descend(index)
	return &child
}
