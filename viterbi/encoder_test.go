package viterbi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/dvdesolve/mlrpt/consts"
)

func TestEncodeThenDecodeRecoversBits(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		nBits := consts.SoftFrameSymbols / 2
		bits := make([]byte, nBits)
		for i := range bits {
			bits[i] = byte(rapid.IntRange(0, 1).Draw(rt, "bit"))
		}

		enc := NewEncoder()
		syms := enc.EncodeBits(bits)
		require.Len(t, syms, nBits)

		soft := make([]int8, consts.SoftFrameSymbols)
		for i, sym := range syms {
			iVal, qVal := idealPoint(sym)
			soft[2*i] = iVal
			soft[2*i+1] = qVal
		}

		dec := NewDecoder()
		hard := dec.DecodeFrame(soft)

		decodedBits := make([]byte, 0, nBits)
		for _, b := range hard {
			for j := 0; j < 8; j++ {
				decodedBits = append(decodedBits, (b>>uint(7-j))&1)
			}
		}

		// Traceback delay means only bits up to TracebackLength-1 from
		// the end of this call are guaranteed settled; compare the
		// stable prefix.
		stable := nBits - consts.TracebackLength
		if stable < 0 {
			stable = 0
		}
		assert.Equal(t, bits[:stable], decodedBits[:stable])
	})
}
