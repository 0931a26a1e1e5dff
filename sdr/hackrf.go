package sdr

import (
	"context"
	"errors"
	"fmt"

	"github.com/samuel/go-hackrf/hackrf"
)

var errCancelled = errors.New("sdr: rx cancelled")

// HackRFDevice backs Device with a real HackRF One: hackrf.Init,
// hackrf.Open, then per-device setters, driving StartRX instead of
// the transmit-side StartTX.
type HackRFDevice struct {
	dev *hackrf.Device
}

// OpenHackRF initializes the hackrf library and opens the first
// attached device.
func OpenHackRF() (*HackRFDevice, error) {
	if err := hackrf.Init(); err != nil {
		return nil, fmt.Errorf("sdr: hackrf.Init: %w", err)
	}
	dev, err := hackrf.Open()
	if err != nil {
		hackrf.Exit()
		return nil, fmt.Errorf("sdr: hackrf.Open: %w", err)
	}
	return &HackRFDevice{dev: dev}, nil
}

func (h *HackRFDevice) SetFreq(hz uint64) error {
	return h.dev.SetFreq(hz)
}

func (h *HackRFDevice) SetSampleRate(hz float64) error {
	return h.dev.SetSampleRate(hz)
}

func (h *HackRFDevice) SetGain(gain int) error {
	if gain == 0 {
		return h.dev.SetAmpEnable(false)
	}
	if err := h.dev.SetLNAGain(gain); err != nil {
		return err
	}
	return h.dev.SetVGAGain(gain)
}

func (h *HackRFDevice) StartRX(ctx context.Context, cb func(buf []byte) error) error {
	err := h.dev.StartRX(func(buf []byte) error {
		select {
		case <-ctx.Done():
			return errCancelled
		default:
		}
		return cb(buf)
	})
	if err != nil && !errors.Is(err, errCancelled) {
		return fmt.Errorf("sdr: StartRX: %w", err)
	}
	<-ctx.Done()
	return h.dev.StopRX()
}

func (h *HackRFDevice) Close() error {
	err := h.dev.Close()
	hackrf.Exit()
	return err
}
