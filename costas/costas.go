// Package costas implements the second-order Costas phase-locked loop
// and soft-symbol recovery: QPSK and OQPSK phase detectors, lock-state
// hysteresis, and signed 8-bit soft-symbol output.
package costas

import (
	"math"

	"github.com/dvdesolve/mlrpt/consts"
)

// Loop is a second-order Costas loop with damping zeta=0.7 fixed;
// only the natural bandwidth is configurable.
type Loop struct {
	alpha, beta float64

	freq  float64 // current estimated carrier frequency offset, radians/sample
	phase float64 // current estimated carrier phase, radians

	pllLocked, pllUnlocked float64
	smoothedErr            float64
	locked                 bool

	oqpsk     bool
	halfDelay complex128 // held half-symbol sample for OQPSK's offset detector
}

// NewLoop builds a loop with natural bandwidth wn (radians/symbol) and
// the lock threshold from config; pllUnlocked is derived as
// pllLocked * consts.PLLUnlockedFactor, so callers only need to supply
// pllLocked.
func NewLoop(wn, pllLocked float64, oqpsk bool) *Loop {
	zeta := consts.CostasDamping
	denom := 1 + 2*zeta*wn + wn*wn
	return &Loop{
		alpha:       4 * zeta * wn / denom,
		beta:        4 * wn * wn / denom,
		pllLocked:   pllLocked,
		pllUnlocked: pllLocked * consts.PLLUnlockedFactor,
		smoothedErr: pllLocked * consts.PLLUnlockedFactor, // start unlocked
		oqpsk:       oqpsk,
	}
}

func sign(v float32) float64 {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}

// phaseError computes the QPSK Costas phase detector:
// err = sign(Re(z))*Im(z) - sign(Im(z))*Re(z).
func phaseError(z complex128) float64 {
	re, im := real(z), imag(z)
	return sign(float32(re))*im - sign(float32(im))*re
}

// Step derotates one complex symbol by the loop's current phase
// estimate, runs the phase detector, updates loop state (including
// lock hysteresis), and returns the corrected symbol. For OQPSK the
// same detector is applied to the symbol paired with the previous
// half-symbol sample.
func (l *Loop) Step(sample complex128) complex128 {
	derotated := sample * complex(math.Cos(-l.phase), math.Sin(-l.phase))

	var err float64
	if l.oqpsk {
		paired := complex(real(derotated), imag(l.halfDelay))
		err = phaseError(paired)
		l.halfDelay = derotated
	} else {
		err = phaseError(derotated)
	}

	l.freq += l.beta * err
	l.phase += l.freq + l.alpha*err
	for l.phase > math.Pi {
		l.phase -= 2 * math.Pi
	}
	for l.phase < -math.Pi {
		l.phase += 2 * math.Pi
	}

	const smoothing = 0.01
	absErr := math.Abs(err)
	l.smoothedErr += smoothing * (absErr - l.smoothedErr)

	// Lock transitions never reset phase.
	if !l.locked && l.smoothedErr < l.pllLocked {
		l.locked = true
	} else if l.locked && l.smoothedErr > l.pllUnlocked {
		l.locked = false
	}

	return derotated
}

func (l *Loop) Locked() bool { return l.locked }

// SoftSymbols quantizes a derotated QPSK symbol's I and Q components to
// signed 8-bit soft values, clamped to [-128,127], in I-then-Q order.
func SoftSymbols(z complex128, scale float64) (i, q int8) {
	return quantize(real(z) * scale), quantize(imag(z) * scale)
}

func quantize(v float64) int8 {
	scaled := v * 127
	if scaled > consts.SoftSymbolMax {
		scaled = consts.SoftSymbolMax
	}
	if scaled < consts.SoftSymbolMin {
		scaled = consts.SoftSymbolMin
	}
	return int8(scaled)
}
