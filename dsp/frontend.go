package dsp

// FrontEnd is the DSP front end: a Chebyshev low-pass roofing filter on
// each of the I and Q rails, then decimation.
type FrontEnd struct {
	decimation int
	lpfI, lpfQ *ChebyshevLPF
}

func NewFrontEnd(decimation int, filterBwHz, sampleRateHz float64) *FrontEnd {
	if decimation < 1 {
		decimation = 1
	}
	return &FrontEnd{
		decimation: decimation,
		lpfI:       NewChebyshevLPF(filterBwHz, sampleRateHz),
		lpfQ:       NewChebyshevLPF(filterBwHz, sampleRateHz),
	}
}

// Process low-pass filters then decimates one burst of complex samples.
// Decimation picks every Nth sample (after filtering, so the roofing
// filter still sees the full input rate and correctly band-limits
// ahead of the rate reduction).
func (f *FrontEnd) Process(in []complex64) []complex64 {
	ins := make([]float64, len(in))
	inq := make([]float64, len(in))
	for i, s := range in {
		ins[i] = float64(real(s))
		inq[i] = float64(imag(s))
	}

	outI := f.lpfI.Process(ins)
	outQ := f.lpfQ.Process(inq)

	out := make([]complex64, 0, (len(in)+f.decimation-1)/f.decimation)
	for i := 0; i < len(in); i += f.decimation {
		out = append(out, complex64(complex(outI[i], outQ[i])))
	}
	return out
}

// DecimationFactor picks the nearest power of two in [1,32] such that
// sampleRate/factor is as close as possible to, but not below, the
// effective rate the symbol rate needs: used only when
// sampleRate > 4*symbolRate.
func DecimationFactor(sampleRateHz, symbolRateHz float64) int {
	if sampleRateHz <= 4*symbolRateHz {
		return 1
	}
	best := 1
	for factor := 1; factor <= 32; factor *= 2 {
		if sampleRateHz/float64(factor) >= 4*symbolRateHz {
			best = factor
		}
	}
	return best
}
