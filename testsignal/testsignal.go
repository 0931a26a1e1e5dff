// Package testsignal synthesizes LRPT IQ streams for exercising the
// receive pipeline without a real capture, mirroring the shape of the
// teacher's own encode-then-modulate pipeline (dvbs.StreamToIQ):
// encode a payload down through RS -> convolutional -> QPSK symbols,
// then pulse-shape into complex baseband samples.
package testsignal

import (
	"math/rand"

	"github.com/dvdesolve/mlrpt/consts"
	"github.com/dvdesolve/mlrpt/filter"
	"github.com/dvdesolve/mlrpt/reedsolomon"
	"github.com/dvdesolve/mlrpt/viterbi"
)

// Generator builds synthetic LRPT baseband streams for tests.
type Generator struct {
	rs  *reedsolomon.Encoder
	cc  *viterbi.Encoder
	rrc *filter.RRCFilter
}

func NewGenerator(rrc *filter.RRCFilter) *Generator {
	return &Generator{
		rs:  reedsolomon.NewEncoder(),
		cc:  viterbi.NewEncoder(),
		rrc: rrc,
	}
}

// EncodeVCDU RS-encodes (4-way interleaved, dual-basis) an 892-byte
// VCDU, prepends a 4-byte sync marker and the convolutional code's
// flush bits are implicit in the continuous encoder state, and returns
// the resulting 1024-byte hard frame bit-stream ready for convolutional
// encoding via Modulate.
func (g *Generator) EncodeVCDU(vcdu []byte) []byte {
	if len(vcdu) != consts.VCDULen {
		panic("testsignal: EncodeVCDU requires a VCDULen-byte VCDU")
	}

	out := make([]byte, 0, consts.HardFrameBytes)
	asm := make([]byte, consts.SyncFieldBytes)
	asm[0] = byte(consts.ASM >> 24)
	asm[1] = byte(consts.ASM >> 16 & 0xFF)
	asm[2] = byte(consts.ASM >> 8 & 0xFF)
	asm[3] = byte(consts.ASM & 0xFF)
	out = append(out, asm...)

	// Byte-stride interleave: VCDU bytes s, s+4, s+8, ... form message
	// s, and codeword s's bytes land at the same stride in the frame.
	frame := make([]byte, consts.RSInterleaveDepth*consts.RSBlockLen)
	for s := 0; s < consts.RSInterleaveDepth; s++ {
		msg := make([]byte, consts.RSMessageLen)
		for i := range msg {
			msg[i] = vcdu[i*consts.RSInterleaveDepth+s]
		}
		for i, b := range g.rs.EncodeDual(msg) {
			frame[i*consts.RSInterleaveDepth+s] = b
		}
	}
	return append(out, frame...)
}

// Modulate convolutionally encodes a bit-packed hard frame into soft
// (here, ideal hard-valued) symbols and pulse-shapes them through rrc
// into complex baseband samples.
func (g *Generator) Modulate(hardFrame []byte) []complex64 {
	bits := make([]byte, len(hardFrame)*8)
	for i, b := range hardFrame {
		for j := 0; j < 8; j++ {
			bits[i*8+j] = (b >> uint(7-j)) & 1
		}
	}

	codeSyms := g.cc.EncodeBits(bits)
	qpsk := make([]complex64, len(codeSyms))
	for i, sym := range codeSyms {
		qpsk[i] = complex64(consts.QPSKSymbolMap[sym])
	}

	return g.rrc.Process(qpsk)
}

// AddNoise adds complex Gaussian noise at the given standard deviation
// per rail, for testing lock/sync margins.
func AddNoise(samples []complex64, stddev float64, rng *rand.Rand) []complex64 {
	out := make([]complex64, len(samples))
	for i, s := range samples {
		ni := float32(rng.NormFloat64() * stddev)
		nq := float32(rng.NormFloat64() * stddev)
		out[i] = s + complex(ni, nq)
	}
	return out
}
