package reedsolomon

import "github.com/dvdesolve/mlrpt/consts"

// Encoder produces systematic RS(255,223) codewords in conventional
// basis, for test fixtures and for the synthetic signal generator. The
// generator-polynomial roots match Codec.syndromes (fcr=1), built with
// a feedback shift register over the parity coefficients.
type Encoder struct {
	generator []byte // coefficients g_1..g_{2t}
}

func NewEncoder() *Encoder {
	t2 := consts.RSParityLen
	g := make([]byte, t2+1)
	g[0] = 1
	for i := 0; i < t2; i++ {
		root := gfPow(2, 1+i)
		for j := i + 1; j > 0; j-- {
			g[j] ^= gfMul(g[j-1], root)
		}
	}
	return &Encoder{generator: g[1:]}
}

// Encode takes a 223-byte message (conventional basis) and returns a
// 255-byte systematic codeword (conventional basis); wrap with
// convToDual per symbol before transmission to match what Codec.Decode
// expects on the wire.
func (e *Encoder) Encode(data []byte) []byte {
	if len(data) != consts.RSMessageLen {
		panic("reedsolomon: encoder expects a 223-byte message")
	}

	out := make([]byte, consts.RSBlockLen)
	copy(out, data)

	parity := make([]byte, consts.RSParityLen)
	for _, d := range data {
		feedback := d ^ parity[0]
		copy(parity, parity[1:])
		parity[len(parity)-1] = 0
		if feedback != 0 {
			for j := range parity {
				parity[j] ^= gfMul(e.generator[j], feedback)
			}
		}
	}
	copy(out[consts.RSMessageLen:], parity)
	return out
}

// EncodeDual is Encode followed by a per-symbol conventional-to-dual
// basis conversion, i.e. what actually goes out over the air.
func (e *Encoder) EncodeDual(data []byte) []byte {
	cw := e.Encode(data)
	for i, b := range cw {
		cw[i] = convToDual(b)
	}
	return cw
}
