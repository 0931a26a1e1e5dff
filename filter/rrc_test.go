package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestRRCProcessLengthInvariant(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		interp := rapid.IntRange(1, 8).Draw(t, "interp")
		n := rapid.IntRange(0, 500).Draw(t, "n")

		f := NewRRCFilter(72000, 0.35, 6, interp)
		in := make([]complex64, n)
		for i := range in {
			in[i] = complex64(complex(float64(i%7)-3, float64(i%5)-2))
		}
		out := f.Process(in)
		assert.Len(t, out, n)
	})
}

func TestRRCDegeneratesAtInterpFactorOne(t *testing.T) {
	f := NewRRCFilter(72000, 0.35, 6, 1)
	// order = 2*halfOrder*interp+1 == 2*6*1+1 == 13 taps, a plain FIR
	// with one tap per symbol period.
	assert.Len(t, f.taps, 13)
}
