// Package main contains entry point logic of the splitrand byte
// tester: it drains the raw output of a configured generator to
// stdout, where external statistical test suites (dieharder,
// PractRand etc.) can consume it.
package main

import (
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/sot-tech/splitrand"
	l "github.com/sot-tech/splitrand/pkg/log"
	"github.com/sot-tech/splitrand/pkg/metrics"
	"github.com/sot-tech/splitrand/pkg/randseed"
)

const (
	logOutArg    = "logOut"
	logLevelArg  = "logLevel"
	logPrettyArg = "logPretty"
	logColorsArg = "logColored"
	configArg    = "config"
	generatorArg = "generator"
	seedArg      = "seed"
	countArg     = "count"

	chunkLen = 64 * 1024
)

var promBytesEmitted = prometheus.NewCounter(prometheus.CounterOpts{
	Name: "splitrand_tester_bytes_total",
	Help: "The number of raw generator bytes written to the output",
})

func init() {
	// Register the metrics.
	prometheus.MustRegister(promBytesEmitted)
}

func main() {
	var err error

	logOut := flag.String(logOutArg, "stderr", "output for logging, might be 'stderr', 'stdout' or file path")
	logLevel := flag.String(logLevelArg, "warn", "logging level: trace, debug, info, warn, error, fatal, panic")
	logPretty := flag.Bool(logPrettyArg, false, "enable log pretty print. used only if 'logOut' set to 'stdout' or 'stderr'. if not set, log outputs json")
	logColored := flag.Bool(logColorsArg, runtime.GOOS == "windows", "enable log coloring. used only if set 'logPretty'")
	configPath := flag.String(configArg, "", "location of configuration file. if not set, flags below configure the generator")
	generator := flag.String(generatorArg, defaultGenerator, "name of the generator to drain: "+knownGenerators)
	seed := flag.Uint64(seedArg, 0, "seed the generator state is stretched from. 0 - draw one from the OS entropy source")
	count := flag.Uint64(countArg, 0, "number of bytes to emit. 0 - unbounded")
	flag.Parse()

	if err = l.ConfigureLogger(*logOut, *logLevel, *logPretty, *logColored); err != nil {
		log.Fatal("unable to configure logger: ", err)
	}
	defer l.Close()

	var cfg *Config
	if *configPath != "" {
		if cfg, err = ParseConfigFile(*configPath); err != nil {
			log.Fatal("unable to read config file: ", err)
		}
	} else {
		s := *seed
		if s == 0 {
			s = randseed.Uint64()
		}
		l.Info().Uint64("seed", s).Str("generator", *generator).Msg("configured from flags")
		cfg = DefaultConfig(*generator, s)
	}

	src, err := splitrand.NewSource(cfg.Generator.Name, cfg.Generator.Config)
	if err != nil {
		log.Fatal("unable to construct generator: ", err)
	}

	if cfg.MetricsAddr != "" {
		ms := metrics.NewServer(cfg.MetricsAddr)
		defer func() { _ = ms.Stop() }()
	}

	// without this a consumer closing stdout kills the process with
	// SIGPIPE before pump can observe the EPIPE
	signal.Ignore(syscall.SIGPIPE)

	stop := make(chan os.Signal, 2)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	if err = pump(os.Stdout, src, *count, stop); err != nil {
		if errors.Is(err, syscall.EPIPE) {
			// the consuming test suite closed its end, normal shutdown
			l.Info().Msg("output closed by consumer")
			return
		}
		log.Fatal("unable to write generator output: ", err)
	}
}

// pump copies the generator's raw byte stream to w in fixed chunks
// until the byte limit is reached, a stop signal arrives or the
// writer fails.
func pump(w io.Writer, src splitrand.Source, limit uint64, stop <-chan os.Signal) error {
	buf := make([]byte, chunkLen)
	var written uint64
	for {
		select {
		case <-stop:
			l.Info().Uint64("written", written).Msg("interrupted")
			return nil
		default:
		}

		chunk := buf
		if limit > 0 {
			if written >= limit {
				return nil
			}
			if rest := limit - written; rest < uint64(len(chunk)) {
				chunk = chunk[:rest]
			}
		}

		src.Fill(chunk)
		n, err := w.Write(chunk)
		written += uint64(n)
		if metrics.Enabled() {
			promBytesEmitted.Add(float64(n))
		}
		if err != nil {
			return err
		}
	}
}
