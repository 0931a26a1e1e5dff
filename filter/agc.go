package filter

import "math"

// AGC is a complex-domain automatic gain control: an exponentially
// averaged magnitude estimate and a complex DC bias estimate drive a
// clamped gain that pushes the average magnitude toward target
// AGC output = (input - bias) * gain.
type AGC struct {
	target    float32
	avgAlpha  float32
	biasAlpha float32
	minGain   float32
	maxGain   float32

	avgMag float32
	bias   complex64
	gain   float32
}

func NewAGC(target float32) *AGC {
	return &AGC{
		target:    target,
		avgAlpha:  0.01,
		biasAlpha: 0.001,
		minGain:   1e-3,
		maxGain:   1e3,
		avgMag:    target,
		gain:      1,
	}
}

func cabs32(c complex64) float32 {
	r, i := float64(real(c)), float64(imag(c))
	return float32(math.Sqrt(r*r + i*i))
}

// Process applies bias removal and gain to one complex sample and
// updates the running estimates.
func (a *AGC) Process(in complex64) complex64 {
	a.bias += complex(a.biasAlpha, 0) * (in - a.bias)

	corrected := in - a.bias
	mag := cabs32(corrected)
	a.avgMag = a.avgMag + a.avgAlpha*(mag-a.avgMag)

	if a.avgMag > 1e-9 {
		a.gain = a.target / a.avgMag
	}
	if a.gain < a.minGain {
		a.gain = a.minGain
	}
	if a.gain > a.maxGain {
		a.gain = a.maxGain
	}

	return complex64(complex(real(corrected)*a.gain, imag(corrected)*a.gain))
}

// Gain reports the current clamped gain, surfaced to the UI per the
// source's Agc_Gain.
func (a *AGC) Gain() float32 { return a.gain }
