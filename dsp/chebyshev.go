// Package dsp implements the decimation and Chebyshev low-pass roofing
// stage of the DSP front end: one filter instance per I and Q rail,
// coefficients derived once per session from
// {cutoff = filter_bw/sample_rate, 5% passband ripple, 6 poles}, a ring
// buffer of past inputs/outputs, one output produced per input sample.
package dsp

import "math"

const (
	chebyshevPoles     = 6
	chebyshevRippleDB  = 0.445 // ~5% passband amplitude ripple expressed in dB
)

// ChebyshevLPF is a 6-pole Chebyshev Type I IIR low-pass, built from the
// bilinear transform of the analog Chebyshev prototype. Coefficient
// arrays (b = feedforward, a = feedback) and a ring buffer of the last
// len(b)-1 inputs and len(a)-1 outputs are the whole of its state: fixed
// coefficients, ring buffers, a lifetime of one session.
type ChebyshevLPF struct {
	b []float64 // feedforward (numerator) coefficients, b[0] applies to x[n]
	a []float64 // feedback (denominator) coefficients, a[0] == 1

	xHist []float64 // x[n-1], x[n-2], ...
	yHist []float64 // y[n-1], y[n-2], ...
}

// NewChebyshevLPF builds a 6-pole, 5%-ripple Chebyshev low-pass for the
// given cutoff (Hz) at sampleRate (Hz).
func NewChebyshevLPF(cutoffHz, sampleRateHz float64) *ChebyshevLPF {
	b, a := chebyshevCoeffs(chebyshevPoles, chebyshevRippleDB, cutoffHz, sampleRateHz)
	return &ChebyshevLPF{
		b:     b,
		a:     a,
		xHist: make([]float64, len(b)-1),
		yHist: make([]float64, len(a)-1),
	}
}

// Process filters in, producing exactly len(in) outputs: each output
// depends only on past inputs/outputs and the current input.
func (f *ChebyshevLPF) Process(in []float64) []float64 {
	out := make([]float64, len(in))
	for n, x := range in {
		y := f.b[0] * x
		for k := 1; k < len(f.b); k++ {
			if k-1 < len(f.xHist) {
				y += f.b[k] * f.xHist[k-1]
			}
		}
		for k := 1; k < len(f.a); k++ {
			if k-1 < len(f.yHist) {
				y -= f.a[k] * f.yHist[k-1]
			}
		}

		for k := len(f.xHist) - 1; k > 0; k-- {
			f.xHist[k] = f.xHist[k-1]
		}
		if len(f.xHist) > 0 {
			f.xHist[0] = x
		}
		for k := len(f.yHist) - 1; k > 0; k-- {
			f.yHist[k] = f.yHist[k-1]
		}
		if len(f.yHist) > 0 {
			f.yHist[0] = y
		}

		out[n] = y
	}
	return out
}

// chebyshevCoeffs derives digital filter coefficients via the bilinear
// transform of an analog Chebyshev Type I lowpass prototype with
// `poles` poles and the given passband ripple (dB).
func chebyshevCoeffs(poles int, rippleDB, cutoffHz, sampleRateHz float64) (b, a []float64) {
	epsilon := math.Sqrt(math.Pow(10, rippleDB/10) - 1)
	asinhTerm := math.Asinh(1/epsilon) / float64(poles)
	sinhA := math.Sinh(asinhTerm)
	coshA := math.Cosh(asinhTerm)

	wc := 2 * math.Pi * cutoffHz
	// Pre-warp for the bilinear transform.
	wcWarped := 2 * sampleRateHz * math.Tan(wc/(2*sampleRateHz))

	zPoles := make([]complex128, poles)
	for k := 0; k < poles; k++ {
		theta := math.Pi / 2 * float64(2*k+1) / float64(poles)
		pole := complex(-sinhA*math.Sin(theta), coshA*math.Cos(theta)) * complex(wcWarped, 0)

		fs2 := 2 * sampleRateHz
		zPoles[k] = (complex(fs2, 0) + pole) / (complex(fs2, 0) - pole)
	}

	// Denominator: product (z - zPoles[k]).
	denom := []complex128{1}
	for _, p := range zPoles {
		denom = polyMulComplex(denom, []complex128{1, -p})
	}

	// Numerator: gain * (z + 1)^poles (all zeros at Nyquist under the
	// bilinear transform of an all-pole analog prototype).
	numer := []complex128{1}
	for i := 0; i < poles; i++ {
		numer = polyMulComplex(numer, []complex128{1, 1})
	}

	bReal := make([]float64, len(numer))
	for i, c := range numer {
		bReal[i] = real(c)
	}
	aReal := make([]float64, len(denom))
	for i, c := range denom {
		aReal[i] = real(c)
	}

	// Normalize so DC gain (z=1) is 1.
	var numAtOne, denAtOne float64
	for _, c := range bReal {
		numAtOne += c
	}
	for _, c := range aReal {
		denAtOne += c
	}
	gain := denAtOne / numAtOne
	for i := range bReal {
		bReal[i] *= gain
	}

	// Coefficients are in descending powers of z from the polynomial
	// multiply above; dividing through by z^poles turns index k into the
	// z^-k term, so they are already in the ascending lag order the
	// difference equation uses (b[0] on x[n], b[1] on x[n-1], ...).

	// Normalize a[0] to 1.
	a0 := aReal[0]
	for i := range aReal {
		aReal[i] /= a0
	}
	for i := range bReal {
		bReal[i] /= a0
	}

	return bReal, aReal
}

func polyMulComplex(a, b []complex128) []complex128 {
	out := make([]complex128, len(a)+len(b)-1)
	for i, av := range a {
		for j, bv := range b {
			out[i+j] += av * bv
		}
	}
	return out
}

func reverseFloat64(s []float64) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
