// Package session drives one receive session end to end: SDR capture
// -> DSP front end -> Costas/OQPSK symbol recovery -> correlator ->
// Viterbi -> Reed-Solomon -> VCDU/CP_PDU reassembly -> Meteor-JPEG
// image building -> post-processing -> file output. It generalizes a
// single-goroutine producer/consumer shape into the two-stage
// DSP/decoder pipeline the downlink's framing requires.
package session

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dvdesolve/mlrpt/config"
	"github.com/dvdesolve/mlrpt/consts"
	"github.com/dvdesolve/mlrpt/correlator"
	"github.com/dvdesolve/mlrpt/costas"
	"github.com/dvdesolve/mlrpt/dsp"
	"github.com/dvdesolve/mlrpt/filter"
	"github.com/dvdesolve/mlrpt/imagewriter"
	"github.com/dvdesolve/mlrpt/meteorjpeg"
	"github.com/dvdesolve/mlrpt/oqpsk"
	"github.com/dvdesolve/mlrpt/postprocess"
	"github.com/dvdesolve/mlrpt/reedsolomon"
	"github.com/dvdesolve/mlrpt/sdr"
	"github.com/dvdesolve/mlrpt/vcdu"
	"github.com/dvdesolve/mlrpt/viterbi"
)

// errLog is the dedicated stderr logger for ERROR lines; INFO lines go
// through the standard log package (log.Printf).
var errLog = log.New(logWriter{}, "ERROR ", log.LstdFlags)

// Stats summarizes one session's decode quality for the shutdown
// report.
type Stats struct {
	FramesTotal  int
	FramesOK     int
	PacketsTotal int
	SyncLosses   int
	PacketGaps   int // in-progress CP_PDUs discarded by a sequence break (dropped image data)
}

// SignalQualityPercent is 100*FramesOK/FramesTotal, 0 when no frames
// were attempted.
func (s Stats) SignalQualityPercent() float64 {
	if s.FramesTotal == 0 {
		return 0
	}
	return 100 * float64(s.FramesOK) / float64(s.FramesTotal)
}

// Result is everything a session produced: one channel image per
// configured APID (in config.Channels order) and the run's stats.
type Result struct {
	Channels []*meteorjpeg.ChannelImage
	Stats    Stats
}

// Session wires one receive chain from a device to completed channel
// images, per cfg. framesTotal/framesOK mirror the same counters
// runDecode accumulates locally, so SignalQuality and FrameCounts can
// be polled from another goroutine while Run is still in progress.
type Session struct {
	cfg *config.Config
	dev sdr.Device

	framesTotal atomic.Int64
	framesOK    atomic.Int64
	closeOnce   sync.Once
	closeErr    error
}

func New(cfg *config.Config, dev sdr.Device) *Session {
	return &Session{cfg: cfg, dev: dev}
}

// SignalQuality is 100*FramesOK/FramesTotal as seen so far (a 0-100
// percentage), safe to call from another goroutine while Run is still
// executing.
func (s *Session) SignalQuality() float64 {
	total := s.framesTotal.Load()
	if total == 0 {
		return 0
	}
	return 100 * float64(s.framesOK.Load()) / float64(total)
}

// FrameCounts reports the running ok/total frame counts, safe to call
// while Run is still executing.
func (s *Session) FrameCounts() (total, ok int64) {
	return s.framesTotal.Load(), s.framesOK.Load()
}

// Close releases the session's device. It is idempotent: later calls
// return the same error the first call observed.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.dev.Close()
	})
	return s.closeErr
}

// Run executes the idle->arming->receiving->decoding->stopping->
// finishing state machine once: it starts capture, demodulates and
// decodes until ctx is cancelled or the configured operation time
// elapses, then joins every stage before post-processing runs.
func (s *Session) Run(ctx context.Context) (*Result, error) {
	runCtx := ctx
	var cancel context.CancelFunc
	if s.cfg.OperationTimeSec > 0 {
		runCtx, cancel = context.WithTimeout(ctx, time.Duration(s.cfg.OperationTimeSec)*time.Second)
		defer cancel()
	}

	adapter := sdr.NewAdapter(s.dev, float64(s.cfg.SampleRateHz), s.cfg.SymbolRateHz)

	dspDone := make(chan error, 1)
	softSymbols := make(chan []int8, 256)
	go func() {
		dspDone <- s.runDSP(runCtx, adapter, softSymbols)
	}()

	decodeDone := make(chan decodeResult, 1)
	go func() {
		decodeDone <- s.runDecode(runCtx, softSymbols)
	}()

	adapterErr := adapter.Run(runCtx, s.cfg.CenterFreqHz, float64(s.cfg.SampleRateHz), s.cfg.TunerGain)

	if err := <-dspDone; err != nil && !s.cfg.Quiet {
		errLog.Printf("dsp stage: %v", err)
	}
	decRes := <-decodeDone

	if adapterErr != nil {
		return nil, fmt.Errorf("session: device: %w", adapterErr)
	}

	// Preserve cfg.Channels' order (red/green/blue) explicitly: ranging
	// over decRes.channels directly would hand Finish a randomly-ordered
	// slice, since Go map iteration order is unspecified.
	result := &Result{Stats: decRes.stats}
	for _, ch := range s.cfg.Channels {
		result.Channels = append(result.Channels, decRes.channels[ch.APID])
	}
	return result, nil
}

// runDSP is the DSP/demodulator stage: Chebyshev roofing filter, RRC
// matched filter, AGC, Costas carrier recovery, and (for OQPSK modes)
// convolutional de-interleave and de-differential decode, appending
// soft symbol pairs to the bounded ring softSymbols feeds.
func (s *Session) runDSP(ctx context.Context, adapter *sdr.Adapter, out chan<- []int8) error {
	defer close(out)

	frontend := dsp.NewFrontEnd(adapter.Decimation, float64(s.cfg.FilterBWHz), float64(s.cfg.SampleRateHz))
	rrc := filter.NewRRCFilter(s.cfg.SymbolRateHz, s.cfg.RRCAlpha, s.cfg.RRCOrder, s.cfg.InterpFactor)
	agc := filter.NewAGC(1.0)
	loop := costas.NewLoop(s.cfg.CostasBandwidth, s.cfg.PLLLockedThresh, s.cfg.PSKModeValue().IsOQPSK())

	var diff oqpsk.Differential
	isOQPSK := s.cfg.PSKModeValue().IsOQPSK()

	for {
		select {
		case <-ctx.Done():
			return nil
		case burst, ok := <-adapter.Samples:
			if !ok {
				return nil
			}

			filtered := frontend.Process(burst)
			shaped := rrc.Process(filtered)

			soft := make([]int8, 0, len(shaped)*2)
			for _, sample := range shaped {
				agcOut := agc.Process(sample)
				derot := loop.Step(complex128(agcOut))
				i, q := costas.SoftSymbols(derot, 127)
				soft = append(soft, i, q)
			}

			if isOQPSK {
				deinterleaved := oqpsk.Deinterleave(int8sToBytes(soft))
				soft = bytesToInt8s(deinterleaved)
				diff.Decode(soft)
			}

			select {
			case out <- soft:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

// int8sToBytes and bytesToInt8s reinterpret a signed soft symbol slice
// as raw bytes (and back) for oqpsk.Deinterleave, which operates on
// the wire byte representation before any sign interpretation; the
// round trip is lossless since both are just two's-complement views
// of the same 8 bits.
func int8sToBytes(soft []int8) []byte {
	out := make([]byte, len(soft))
	for i, v := range soft {
		out[i] = byte(v)
	}
	return out
}

func bytesToInt8s(raw []byte) []int8 {
	out := make([]int8, len(raw))
	for i, v := range raw {
		out[i] = int8(v)
	}
	return out
}

type decodeResult struct {
	channels map[byte]*meteorjpeg.ChannelImage
	stats    Stats
}

// runDecode is the correlator -> Viterbi -> Reed-Solomon ->
// VCDU/CP_PDU -> Meteor-JPEG chain: the single reader of the
// soft-symbol ring, and the single writer of the channel images.
func (s *Session) runDecode(ctx context.Context, in <-chan []int8) decodeResult {
	corr := correlator.New(viterbi.NewEncoder().EncodeBit)
	dec := viterbi.NewDecoder()
	rsCodec := reedsolomon.NewCodec()
	parser := vcdu.NewParser([]byte{0, 1, 2, 3})

	builders := make(map[uint16]*meteorjpeg.Builder)
	channels := make(map[byte]*meteorjpeg.ChannelImage)
	for _, ch := range s.cfg.Channels {
		builders[uint16(ch.APID)] = meteorjpeg.NewBuilder()
	}

	var stats Stats
	var window []int8
	oriented := false
	orientation := 0

	flushFrame := func() {
		if len(window) < consts.SoftFrameSymbols {
			return
		}
		frame := window[:consts.SoftFrameSymbols]
		window = window[consts.SoftFrameSymbols:]

		stats.FramesTotal++
		s.framesTotal.Add(1)
		hard := dec.DecodeFrame(frame)
		msg, err := reedsolomon.DecodeFrame(rsCodec, hard[consts.SyncFieldBytes:])
		if err != nil {
			if !s.cfg.Quiet {
				errLog.Printf("uncorrectable frame, dropping: %v", err)
			}
			return
		}
		stats.FramesOK++
		s.framesOK.Add(1)

		packets, err := parser.ProcessVCDU(msg)
		if err != nil {
			return
		}
		stats.PacketGaps = parser.Gaps
		for _, pkt := range packets {
			stats.PacketsTotal++
			b, ok := builders[pkt.APID]
			if !ok {
				continue
			}
			if err := b.DecodePacket(pkt.Data); err != nil && !s.cfg.Quiet {
				errLog.Printf("channel apid %d: %v", pkt.APID, err)
			}
		}
	}

	for {
		select {
		case <-ctx.Done():
			goto finished
		case soft, ok := <-in:
			if !ok {
				goto finished
			}

			hardBits := make([]byte, len(soft))
			for i, v := range soft {
				hardBits[i] = correlator.HardBit(v)
			}

			if !oriented {
				if hit, found := corr.Search(hardBits); found {
					oriented = true
					orientation = hit.Orientation
				} else {
					stats.SyncLosses++
					continue
				}
			}

			reoriented := correlator.DerotateSoft(orientation, soft)
			window = append(window, reoriented...)
			for len(window) >= consts.SoftFrameSymbols {
				flushFrame()
			}
		}
	}

finished:
	for _, ch := range s.cfg.Channels {
		if b, ok := builders[uint16(ch.APID)]; ok {
			channels[ch.APID] = b.Image()
		}
	}
	return decodeResult{channels: channels, stats: stats}
}

// Finish runs post-processing (Normalize -> CLAHE -> Rectify -> Flip)
// on each channel and writes the per-channel and composite images to
// dir, timestamped at t.
func (s *Session) Finish(res *Result, dir string, t time.Time, format imagewriter.Format, quality int) ([]string, error) {
	writer, err := imagewriter.NewWriter(dir, t, format, quality)
	if err != nil {
		return nil, err
	}

	var written []string
	maxHeight := 0
	for _, ch := range res.Channels {
		if ch.Height() > maxHeight {
			maxHeight = ch.Height()
		}
	}

	processed := make([][]byte, len(res.Channels))
	for idx, ch := range res.Channels {
		cfgCh := s.cfg.Channels[idx]
		pixels := growChannel(ch, maxHeight)
		opt := postprocess.Options{
			RangeLow:       cfgCh.Black,
			RangeHigh:      cfgCh.White,
			CLAHEClipLimit: 3.0,
			Rectify:        s.cfg.RectifyFunctionValue(),
			Flip:           s.cfg.FlipImages,
		}
		processed[idx] = postprocess.ProcessChannel(pixels, ch.Width, maxHeight, opt)

		if maxHeight > 0 {
			path, err := writer.WriteChannel(cfgCh.APID, processed[idx], ch.Width, maxHeight)
			if err != nil {
				errLog.Printf("writing channel %d: %v", cfgCh.APID, err)
				continue
			}
			written = append(written, path)
		}
	}

	if len(processed) == 3 && maxHeight > 0 {
		ranges := [3]postprocess.ChannelRange{}
		for i, ch := range s.cfg.Channels {
			ranges[i] = postprocess.ChannelRange{Black: ch.Black, White: ch.White}
		}
		combo := postprocess.Composite(processed[0], processed[1], processed[2], ranges, postprocess.ColorizeOptions{
			Enabled:         s.cfg.ColorizeEnabled,
			BlueMin:         s.cfg.ColorizeBlueMin,
			BlueMax:         s.cfg.ColorizeBlueMax,
			CloudsThreshold: s.cfg.CloudsThreshold,
		})
		path, err := writer.WriteCombo(combo, res.Channels[0].Width, maxHeight)
		if err != nil {
			errLog.Printf("writing combo: %v", err)
		} else {
			written = append(written, path)
		}
	}

	return written, nil
}

func growChannel(ch *meteorjpeg.ChannelImage, height int) []byte {
	pixels := ch.Pixels()
	want := height * ch.Width
	if len(pixels) >= want {
		return append([]byte(nil), pixels[:want]...)
	}
	out := make([]byte, want)
	copy(out, pixels)
	for i := len(pixels); i < want; i++ {
		out[i] = consts.MaxWhite
	}
	return out
}

type logWriter struct{}

func (logWriter) Write(p []byte) (int, error) {
	return os.Stderr.Write(p)
}
