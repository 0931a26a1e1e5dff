// Package sdr adapts a physical or file-backed IQ source into the
// complex64 sample stream the DSP front end consumes, mirroring the
// hackrf callback-driven capture shape used for transmit in
// github.com/samuel/go-hackrf.
package sdr

import "context"

// Device is anything that can stream raw interleaved signed-8-bit IQ
// bytes into a callback until the context is cancelled or the source
// is exhausted.
type Device interface {
	// SetFreq tunes the center frequency in Hz.
	SetFreq(hz uint64) error
	// SetSampleRate sets the IQ sample rate in Hz.
	SetSampleRate(hz float64) error
	// SetGain sets the receive gain; 0 requests automatic gain.
	SetGain(gain int) error
	// StartRX streams raw interleaved I/Q bytes (two signed bytes per
	// sample) to cb until ctx is cancelled, the source runs out, or cb
	// returns an error.
	StartRX(ctx context.Context, cb func(buf []byte) error) error
	// Close releases the device.
	Close() error
}
