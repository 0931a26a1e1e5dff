package sdr

import (
	"context"

	"github.com/dvdesolve/mlrpt/dsp"
)

// Adapter drives a Device, converting each raw interleaved-int8-IQ
// buffer into a complex64 burst on Samples. Samples is a capacity-1
// rendezvous channel: the RX callback runs on the device's own thread
// and must never block it, so a burst that the DSP stage hasn't yet
// drained is dropped rather than queued.
type Adapter struct {
	dev        Device
	Samples    chan []complex64
	Decimation int
}

// NewAdapter picks a decimation factor from sampleRateHz/symbolRateHz
// via dsp.DecimationFactor and wraps dev for streaming.
func NewAdapter(dev Device, sampleRateHz, symbolRateHz float64) *Adapter {
	return &Adapter{
		dev:        dev,
		Samples:    make(chan []complex64, 1),
		Decimation: dsp.DecimationFactor(sampleRateHz, symbolRateHz),
	}
}

// Run configures the device and streams until ctx is cancelled or the
// device's source is exhausted, closing Samples on return.
func (a *Adapter) Run(ctx context.Context, freqHz uint64, sampleRateHz float64, gain int) error {
	defer close(a.Samples)

	if err := a.dev.SetFreq(freqHz); err != nil {
		return err
	}
	if err := a.dev.SetSampleRate(sampleRateHz); err != nil {
		return err
	}
	if err := a.dev.SetGain(gain); err != nil {
		return err
	}

	return a.dev.StartRX(ctx, func(buf []byte) error {
		n := len(buf) / 2
		samples := make([]complex64, n)
		for i := 0; i < n; i++ {
			i8 := int8(buf[i*2])
			q8 := int8(buf[i*2+1])
			samples[i] = complex(float32(i8)/128, float32(q8)/128)
		}
		select {
		case a.Samples <- samples:
		case <-ctx.Done():
			return ctx.Err()
		default:
			// Consumer hasn't drained the last burst yet; drop this one
			// rather than block the RX callback thread.
		}
		return nil
	})
}
