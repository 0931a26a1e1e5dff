package viterbi

// Encoder is the rate-1/2 K=7 convolutional encoder, used only to
// build synthetic test streams; it shares outputSym's bit-reversed
// shift-register convention with Decoder so an Encoder/Decoder pair
// round-trips.
type Encoder struct {
	outputSym [numStates]byte
	state     int
}

func NewEncoder() *Encoder {
	e := &Encoder{}
	for s := 0; s < numStates; s++ {
		e.outputSym[s] = byte(parity(uint32(s)&g1))<<1 | byte(parity(uint32(s)&g2))
	}
	return e
}

// EncodeBits shifts each input bit (0 or 1) into the register and
// emits the resulting 2-bit code symbol (0-3, matching
// consts.QPSKSymbolMap's keys) for every bit, in order.
func (e *Encoder) EncodeBits(bits []byte) []byte {
	out := make([]byte, len(bits))
	for i, b := range bits {
		out[i] = e.advance(b)
	}
	return out
}

// EncodeBit shifts one message bit through the encoder and returns the
// 2-bit output symbol split into its G1/G2 tap bits, the shape
// correlator.New's preamble-encoding callback expects.
func (e *Encoder) EncodeBit(bit byte) (b1, b2 byte) {
	sym := e.advance(bit)
	return (sym >> 1) & 1, sym & 1
}

// EncodeBytes encodes a whole message, MSB-first within each byte, and
// returns the coded bit pairs flattened as (b1,b2,b1,b2,...).
func (e *Encoder) EncodeBytes(data []byte) []byte {
	out := make([]byte, 0, len(data)*8*2)
	for _, by := range data {
		for bi := 7; bi >= 0; bi-- {
			b1, b2 := e.EncodeBit((by >> uint(bi)) & 1)
			out = append(out, b1, b2)
		}
	}
	return out
}

func (e *Encoder) advance(bit byte) byte {
	e.state = ((e.state << 1) | int(bit&1)) & (numStates - 1)
	return e.outputSym[e.state]
}
