// Package splitrand defines capability contracts for splittable
// pseudorandom generation: deriving many independent deterministic
// streams from a single seed, such that the output of any one stream
// is unaffected by how much randomness its siblings consume.
//
// A generator here is a plain value with fixed-size state. Splitting a
// generator yields a Prf, a pure factory that maps an index to a fresh
// child generator. Children share no state with each other or with the
// parent after derivation, so they can be handed to concurrent or
// deferred consumers without any synchronization. The documented
// discipline for concurrent use is "split before sharing": a single
// generator instance used from several goroutines at once is a data
// race, not a supported mode.
//
// None of the generators in this module is cryptographically secure,
// even those built on cryptographic primitives. The primitives are
// used only for their avalanche behavior, which keeps sibling streams
// statistically uncorrelated.
package splitrand

import (
	"errors"
	"sync"

	"github.com/sot-tech/splitrand/pkg/conf"
)

// Source is the sequential generator capability: produce the next
// block of pseudorandom bits, advancing the receiver's state as a
// side effect local to this instance.
//
// Two Sources of the same concrete type with equal state produce
// identical future output. All output is defined over a fixed
// little-endian bit layout, so sequences are reproducible across
// platforms and endianness.
type Source interface {
	// Uint64 returns the next 64 pseudorandom bits.
	Uint64() uint64

	// Uint32 returns the next 32 pseudorandom bits.
	Uint32() uint32

	// Fill overwrites p with pseudorandom bytes.
	Fill(p []byte)
}

// SplitSource extends Source with the splitting capability.
type SplitSource interface {
	Source

	// Split derives a Prf from the generator's current state.
	// The receiver's own state advances, so two consecutive Split
	// calls never hand out the same factory, but every child obtained
	// through the returned Prf is a pure function of the pre-split
	// state and the index alone.
	Split() Prf
}

// Prf is a pseudorandom function taken off a SplitSource: a pure,
// immutable factory of child generators. Call is referentially
// transparent for the lifetime of the factory; the same index always
// yields a child in bit-identical state. Distinct indices yield
// children whose streams are statistically independent, within the
// limits of the backing primitive.
//
// The index domain is the full uint64 range. The term "pseudorandom
// function" has a technical meaning in cryptography; no security
// claim is implied here.
type Prf interface {
	Call(index uint64) SplitSource
}

var (
	driversM sync.RWMutex
	drivers  = make(map[string]Driver)
)

// Driver is the interface used to initialize a new type of Source
// from its configuration.
type Driver interface {
	NewSource(cfg conf.MapConfig) (Source, error)
}

// ErrDriverDoesNotExist is the error returned by NewSource when a
// generator driver with that name does not exist.
var ErrDriverDoesNotExist = errors.New("generator driver with that name does not exist")

// ErrNotSplittable is the error returned when a composition requires
// the splittable capability from a sequential-only generator.
var ErrNotSplittable = errors.New("generator is not splittable")

// RegisterDriver makes a Driver available by the provided name.
//
// If called twice with the same name, the name is blank, or if the
// provided Driver is nil, this function panics.
func RegisterDriver(name string, d Driver) {
	if name == "" {
		panic("splitrand: could not register a Driver with an empty name")
	}
	if d == nil {
		panic("splitrand: could not register a nil Driver")
	}

	driversM.Lock()
	defer driversM.Unlock()

	if _, dup := drivers[name]; dup {
		panic("splitrand: RegisterDriver called twice for " + name)
	}

	drivers[name] = d
}

// NewSource attempts to initialize a new Source instance from the
// list of registered Drivers.
//
// If a driver does not exist, returns ErrDriverDoesNotExist.
func NewSource(name string, cfg conf.MapConfig) (Source, error) {
	driversM.RLock()
	defer driversM.RUnlock()

	d, ok := drivers[name]
	if !ok {
		return nil, ErrDriverDoesNotExist
	}

	return d.NewSource(cfg)
}

// NewSplitSource initializes a new Source the same way NewSource does
// and requires the result to be splittable.
//
// Returns ErrNotSplittable if the named driver built a sequential-only
// generator.
func NewSplitSource(name string, cfg conf.MapConfig) (SplitSource, error) {
	src, err := NewSource(name, cfg)
	if err != nil {
		return nil, err
	}
	ss, ok := src.(SplitSource)
	if !ok {
		return nil, ErrNotSplittable
	}
	return ss, nil
}
