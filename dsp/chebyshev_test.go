package dsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestChebyshevLPFPreservesLength(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 2000).Draw(t, "n")
		f := NewChebyshevLPF(50000, 1000000)

		in := make([]float64, n)
		for i := range in {
			in[i] = float64(i%11) - 5
		}
		out := f.Process(in)
		assert.Len(t, out, n)
	})
}

func TestChebyshevLPFZeroLengthNoPanic(t *testing.T) {
	f := NewChebyshevLPF(50000, 1000000)
	out := f.Process(nil)
	assert.Empty(t, out)
}

func TestDecimationFactorPicksPowerOfTwo(t *testing.T) {
	assert.Equal(t, 1, DecimationFactor(100000, 72000))
	assert.Equal(t, 4, DecimationFactor(1200000, 72000))
}
