package main

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sot-tech/splitrand/pkg/conf"
	"github.com/sot-tech/splitrand/pkg/randseed"

	// Imports to register generator drivers.
	"github.com/sot-tech/splitrand/chaskey"
	"github.com/sot-tech/splitrand/hybrid"
	"github.com/sot-tech/splitrand/siprng"
	"github.com/sot-tech/splitrand/twolcg"
	"github.com/sot-tech/splitrand/xorshift"
)

const (
	defaultGenerator = siprng.Name
	knownGenerators  = siprng.Name + ", " + chaskey.Name + ", " + twolcg.Name + ", " +
		xorshift.Name + ", " + hybrid.Name + " (over " + siprng.Name + ")"
)

// Config represents the configuration used for tester start.
type Config struct {
	MetricsAddr string              `yaml:"metrics_addr"`
	Generator   conf.NamedMapConfig `yaml:"generator"`
}

// DefaultConfig builds a configuration for the named generator with
// every state word deterministically stretched from a single seed, so
// short command lines still key wide generator states.
func DefaultConfig(name string, seed uint64) *Config {
	var w [4]uint64
	randseed.Expand(seed, w[:])

	var gcfg conf.MapConfig
	switch name {
	case siprng.Name:
		gcfg = conf.MapConfig{"key0": w[0], "key1": w[1]}
	case chaskey.Name:
		gcfg = conf.MapConfig{"key": []uint32{
			uint32(w[0]), uint32(w[0] >> 32),
			uint32(w[1]), uint32(w[1] >> 32),
		}}
	case twolcg.Name:
		gcfg = conf.MapConfig{"seed": w[:]}
	case xorshift.Name:
		gcfg = conf.MapConfig{"seed0": w[0], "seed1": w[1]}
	case hybrid.Name:
		gcfg = conf.MapConfig{"splitter": map[string]any{
			"name":   siprng.Name,
			"config": map[string]any{"key0": w[0], "key1": w[1]},
		}}
	default:
		// let the driver registry report the unknown name
		gcfg = conf.MapConfig{}
	}

	return &Config{Generator: conf.NamedMapConfig{Name: name, Config: gcfg}}
}

// ParseConfigFile returns a new Config given the path to a YAML
// configuration file.
//
// It supports relative and absolute paths and environment variables.
func ParseConfigFile(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("no config path specified")
	}

	f, err := os.Open(os.ExpandEnv(path))
	if err == nil {
		defer f.Close()
		cfgFile := new(Config)
		err = yaml.NewDecoder(f).Decode(cfgFile)
		return cfgFile, err
	}
	return nil, err
}
