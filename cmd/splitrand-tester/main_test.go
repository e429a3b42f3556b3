package main

import (
	"bytes"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sot-tech/splitrand"
	"github.com/sot-tech/splitrand/chaskey"
	"github.com/sot-tech/splitrand/hybrid"
	"github.com/sot-tech/splitrand/siprng"
	"github.com/sot-tech/splitrand/twolcg"
	"github.com/sot-tech/splitrand/xorshift"
)

func TestDefaultConfigBuildsEveryGenerator(t *testing.T) {
	for _, name := range []string{siprng.Name, chaskey.Name, twolcg.Name, xorshift.Name, hybrid.Name} {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig(name, 42)
			src, err := splitrand.NewSource(cfg.Generator.Name, cfg.Generator.Config)
			require.NoError(t, err)
			require.NotNil(t, src)
		})
	}
}

func TestDefaultConfigUnknownGenerator(t *testing.T) {
	cfg := DefaultConfig("no such generator", 42)
	_, err := splitrand.NewSource(cfg.Generator.Name, cfg.Generator.Config)
	require.ErrorIs(t, err, splitrand.ErrDriverDoesNotExist)
}

func TestDefaultConfigDeterministic(t *testing.T) {
	a, _ := splitrand.NewSource(siprng.Name, DefaultConfig(siprng.Name, 7).Generator.Config)
	b, _ := splitrand.NewSource(siprng.Name, DefaultConfig(siprng.Name, 7).Generator.Config)
	require.Equal(t, a.Uint64(), b.Uint64())
}

func TestPumpHonorsLimit(t *testing.T) {
	var out bytes.Buffer
	err := pump(&out, siprng.New(1, 2), chunkLen+100, nil)
	require.NoError(t, err)
	require.Equal(t, chunkLen+100, out.Len())

	want := make([]byte, chunkLen+100)
	siprng.New(1, 2).Fill(want)
	require.Equal(t, want, out.Bytes())
}

func TestPumpSurfacesClosedConsumer(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	require.NoError(t, r.Close())
	defer w.Close()

	// writing into a pipe with no reader must come back as EPIPE,
	// the normal end of run under head or a bounded test suite
	err = pump(w, siprng.New(1, 2), 0, nil)
	require.ErrorIs(t, err, syscall.EPIPE)
}

func TestPumpStopsOnSignal(t *testing.T) {
	stop := make(chan os.Signal, 1)
	stop <- syscall.SIGTERM

	var out bytes.Buffer
	// unbounded pump must return as soon as the signal is seen
	err := pump(&out, siprng.New(1, 2), 0, stop)
	require.NoError(t, err)
	require.Zero(t, out.Len())
}
