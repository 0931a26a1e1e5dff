// Package filter implements the matched (root-raised-cosine) filter
// and the complex-domain AGC.
//
// RRCFilter keeps a classic tap-generation formula and ring-buffer
// convolution style, but drops
// its upsampling behavior: that file pulse-shapes a TRANSMIT stream
// (one input symbol in, UpsampleFactor output samples out). A receive
// matched filter instead runs at a single, already-oversampled rate --
// one sample in, one filtered sample out -- and leaves subsampling to
// the Costas loop's timing phase accumulator. interp
// still shapes the filter (order = 2*N*interp+1 taps), it
// just no longer drives a rate conversion inside this type.
package filter

import "math"

type RRCFilter struct {
	taps  []float32
	state []complex64 // ring buffer of the last len(taps) input samples
	pos   int
}

// NewRRCFilter builds an RRC filter of order 2*halfOrder*interp+1 taps
// for the given symbol rate, alpha roll-off, and interpolation factor
// (samples per symbol the filter operates at). interp=1 degenerates to
// a single-sample-per-symbol FIR.
func NewRRCFilter(symbolRate, alpha float64, halfOrder, interp int) *RRCFilter {
	if interp < 1 {
		interp = 1
	}
	numTaps := 2*halfOrder*interp + 1
	sampleRate := symbolRate * float64(interp)

	taps := make([]float32, numTaps)
	Ts := 1.0 / symbolRate

	var gain float64
	for i := 0; i < numTaps; i++ {
		t := float64(i) - float64(numTaps-1)/2.0
		t /= sampleRate

		var tapVal float64
		switch {
		case t == 0:
			tapVal = (1.0 / Ts) * (1.0 - alpha + 4.0*alpha/math.Pi)
		case math.Abs(math.Abs(4.0*alpha*t/Ts)-1.0) < 1e-9:
			tapVal = (alpha / (Ts * math.Sqrt2)) * ((1+2/math.Pi)*math.Sin(math.Pi/(4.0*alpha)) + (1-2/math.Pi)*math.Cos(math.Pi/(4.0*alpha)))
		default:
			num := (1.0 / Ts) * (math.Sin(math.Pi*t/Ts*(1-alpha)) + 4*alpha*t/Ts*math.Cos(math.Pi*t/Ts*(1+alpha)))
			den := math.Pi * t / Ts * (1 - (4*alpha*t/Ts)*(4*alpha*t/Ts))
			tapVal = num / den
		}
		taps[i] = float32(tapVal)
		if i%interp == 0 {
			gain += tapVal
		}
	}
	for i := range taps {
		taps[i] /= float32(gain)
	}

	return &RRCFilter{
		taps:  taps,
		state: make([]complex64, numTaps),
	}
}

// Process filters in-place-equivalent: exactly len(in) outputs for
// len(in) inputs, one filtered sample per input sample.
func (f *RRCFilter) Process(in []complex64) []complex64 {
	out := make([]complex64, len(in))
	n := len(f.taps)

	for idx, sample := range in {
		f.state[f.pos] = sample

		var accR, accI float32
		for k := 0; k < n; k++ {
			tap := f.taps[k]
			s := f.state[(f.pos-k+n*2)%n]
			accR += real(s) * tap
			accI += imag(s) * tap
		}
		out[idx] = complex(accR, accI)

		f.pos = (f.pos + 1) % n
	}
	return out
}
