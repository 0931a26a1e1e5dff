// Package oqpsk undoes the transmitter-side Offset QPSK conditioning
// applied only in OQPSK and its derivative downlink mode: frame
// re-synchronization, a depth-36 convolutional de-interleave, and
// differential decoding of the soft symbol stream.
package oqpsk

import (
	"math"

	"github.com/dvdesolve/mlrpt/consts"
)

var sgnSqrtTable [consts.DeDiffTableSize]byte

func init() {
	for i := range sgnSqrtTable {
		sgnSqrtTable[i] = byte(math.Sqrt(float64(i)))
	}
}

func signedSqrt(a int) int8 {
	if a >= 0 {
		return int8(sgnSqrtTable[a])
	}
	return -int8(sgnSqrtTable[-a])
}

// Differential reverses the transmitter's differential encoding of
// OQPSK soft symbols. State (the previous call's trailing I/Q samples)
// persists across calls so a stream split into chunks decodes
// identically to one decoded whole.
type Differential struct {
	prevI, prevQ int
}

// Decode differentially-decodes buf in place: buf holds signed soft
// symbols as interleaved (I,Q) pairs.
func (d *Differential) Decode(buf []int8) {
	if len(buf) < 2 {
		return
	}

	tmp1 := int(buf[0])
	tmp2 := int(buf[1])
	buf[0] = signedSqrt(tmp1 * d.prevI)
	buf[1] = signedSqrt(-tmp2 * d.prevQ)

	for idx := 2; idx+1 < len(buf); idx += 2 {
		x := int(buf[idx])
		y := int(buf[idx+1])
		buf[idx] = signedSqrt(x * tmp1)
		buf[idx+1] = signedSqrt(-y * tmp2)
		tmp1, tmp2 = x, y
	}

	d.prevI, d.prevQ = tmp1, tmp2
}
