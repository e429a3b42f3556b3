// Package hybrid composes a splittable "outer" generator with a fast
// sequential "inner" one: splitting delegates to the outer, which is
// consulted only to seed a fresh inner per tree leaf, while all bulk
// output comes from the inner. Splitting cost is paid once per tree
// edge; throughput is the inner generator's.
//
// No claim is made that the composition inherits any quality of its
// parts beyond determinism. In particular, composing two secure
// generators does not yield a secure one.
package hybrid

import (
	"github.com/sot-tech/splitrand"
	"github.com/sot-tech/splitrand/pkg/conf"
	"github.com/sot-tech/splitrand/xorshift"
)

// Name is the name by which this generator is registered.
const Name = "hybrid"

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
	splitter, err := splitrand.NewSplitSource(cfg.Splitter.Name, cfg.Splitter.Config)
	if err != nil {
		return nil, err
	}
	return New(splitter, XorshiftSeed), nil
}

// Config holds the named configuration of the outer splittable
// generator. The named driver must build a splittable source,
// otherwise construction fails with splitrand.ErrNotSplittable.
type Config struct {
	Splitter conf.NamedMapConfig `cfg:"splitter"`
}

// SeedFunc builds a freshly seeded sequential generator from seeder
// output. It must be deterministic and must not discard seeder
// entropy, so distinct outer leaves keep distinct inner seeds.
type SeedFunc func(seeder splitrand.Source) splitrand.Source

// XorshiftSeed seeds a xoroshiro128** generator from two words of
// seeder output.
func XorshiftSeed(seeder splitrand.Source) splitrand.Source {
	return xorshift.New(seeder.Uint64(), seeder.Uint64())
}

// Rand pairs an exclusively owned outer SplitSource with the inner
// sequential generator seeded from it. Not safe for concurrent use;
// split before sharing.
type Rand struct {
	splitter splitrand.SplitSource
	seq      splitrand.Source
	reseed   SeedFunc
}

// New wraps the given splittable generator, drawing the first inner
// seed from it immediately. The wrapped generator must not be used
// directly afterwards.
func New(splitter splitrand.SplitSource, reseed SeedFunc) *Rand {
	return &Rand{
		splitter: splitter,
		seq:      reseed(splitter),
		reseed:   reseed,
	}
}

// Uint64 returns the next 64 pseudorandom bits from the inner
// generator.
func (r *Rand) Uint64() uint64 { return r.seq.Uint64() }

// Uint32 returns the next 32 pseudorandom bits from the inner
// generator.
func (r *Rand) Uint32() uint32 { return r.seq.Uint32() }

// Fill overwrites p with pseudorandom bytes from the inner generator.
func (r *Rand) Fill(p []byte) { r.seq.Fill(p) }

// Split derives a Prf off the outer generator. The inner generator
// plays no part: children depend only on the outer pre-split state
// and the index, however much bulk output this leaf has produced.
func (r *Rand) Split() splitrand.Prf {
	return prf{base: r.splitter.Split(), reseed: r.reseed}
}

type prf struct {
	base   splitrand.Prf
	reseed SeedFunc
}

func (p prf) Call(index uint64) splitrand.SplitSource {
	splitter := p.base.Call(index)
	return &Rand{
		splitter: splitter,
		seq:      p.reseed(splitter),
		reseed:   p.reseed,
	}
}
