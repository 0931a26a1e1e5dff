package testsignal

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvdesolve/mlrpt/consts"
	"github.com/dvdesolve/mlrpt/filter"
)

func newTestRRC() *filter.RRCFilter {
	return filter.NewRRCFilter(72_000, 0.6, 8, 4)
}

func TestEncodeVCDUProducesHardFrameLength(t *testing.T) {
	gen := NewGenerator(newTestRRC())
	vcdu := make([]byte, consts.VCDULen)
	for i := range vcdu {
		vcdu[i] = byte(i)
	}

	frame := gen.EncodeVCDU(vcdu)
	assert.Equal(t, consts.HardFrameBytes, len(frame))
}

func TestEncodeVCDUPanicsOnWrongLength(t *testing.T) {
	gen := NewGenerator(newTestRRC())
	assert.Panics(t, func() {
		gen.EncodeVCDU(make([]byte, 10))
	})
}

func TestModulateProducesSamples(t *testing.T) {
	gen := NewGenerator(newTestRRC())
	hard := make([]byte, consts.HardFrameBytes)
	samples := gen.Modulate(hard)
	require.NotEmpty(t, samples)
}

// TestModulateProducesOneSymbolPerBit guards against re-pairing
// EncodeBits' already-combined 2-bit code symbols: it must produce
// exactly one QPSK sample per input bit (the RRC filter is 1:1), none
// of them the zero-value stand-in for a map lookup miss.
func TestModulateProducesOneSymbolPerBit(t *testing.T) {
	gen := NewGenerator(newTestRRC())
	hard := make([]byte, consts.HardFrameBytes)
	for i := range hard {
		hard[i] = byte(i)
	}
	samples := gen.Modulate(hard)
	require.Len(t, samples, len(hard)*8)

	var energy float64
	for _, s := range samples {
		energy += float64(real(s))*float64(real(s)) + float64(imag(s))*float64(imag(s))
	}
	assert.Greater(t, energy, 0.0)
}

func TestAddNoiseChangesSamples(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	samples := make([]complex64, 100)
	for i := range samples {
		samples[i] = complex(1, 0)
	}
	noisy := AddNoise(samples, 0.1, rng)
	require.Len(t, noisy, len(samples))

	differs := false
	for i := range samples {
		if noisy[i] != samples[i] {
			differs = true
			break
		}
	}
	assert.True(t, differs)
}
