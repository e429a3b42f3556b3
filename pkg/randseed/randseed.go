// Package randseed provides seed material for deterministic generators.
package randseed

import (
	cr "crypto/rand"
	"encoding/binary"
	"time"
)

// Uint64 returns 64 bits of seed material from the crypto/rand source
// or from the current time, if crypto random error occurred
func Uint64() (seed uint64) {
	var r [8]byte
	if _, err := cr.Read(r[:]); err == nil {
		seed = binary.LittleEndian.Uint64(r[:])
	} else {
		seed = uint64(time.Now().UnixNano())
	}
	return
}

// Expand deterministically stretches one seed word into len(words)
// words with the splitmix64 generator, so a short seed can key a
// wider generator state.
// See https://prng.di.unimi.it/splitmix64.c .
func Expand(seed uint64, words []uint64) {
	for i := range words {
		seed += 0x9e3779b97f4a7c15
		z := seed
		z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
		z = (z ^ (z >> 27)) * 0x94d049bb133111eb
		words[i] = z ^ (z >> 31)
	}
}
