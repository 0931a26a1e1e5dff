package costas

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoopLocksOnCleanQPSKCarrier(t *testing.T) {
	l := NewLoop(0.01, 0.05, false)
	var sample complex128
	for n := 0; n < 4000; n++ {
		sample = complex(1/math.Sqrt2, 1/math.Sqrt2)
		l.Step(sample)
	}
	assert.True(t, l.Locked())
}

func TestLoopDerotatesConstantPhaseOffset(t *testing.T) {
	l := NewLoop(0.02, 0.05, false)
	offset := complex(math.Cos(0.4), math.Sin(0.4))
	var out complex128
	for n := 0; n < 5000; n++ {
		out = l.Step(complex(1/math.Sqrt2, 1/math.Sqrt2) * offset)
	}
	assert.InDelta(t, 1/math.Sqrt2, real(out), 0.2)
	assert.InDelta(t, 1/math.Sqrt2, imag(out), 0.2)
}

func TestSoftSymbolsClamp(t *testing.T) {
	i, q := SoftSymbols(complex(10, -10), 1.0)
	assert.Equal(t, int8(127), i)
	assert.Equal(t, int8(-128), q)
}
