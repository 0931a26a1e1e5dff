package reedsolomon

import (
	"math/rand"
	"testing"

	"github.com/dvdesolve/mlrpt/consts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestEncodeDecodeNoErrors(t *testing.T) {
	enc := NewEncoder()
	dec := NewCodec()

	msg := make([]byte, consts.RSMessageLen)
	for i := range msg {
		msg[i] = byte(i * 7)
	}

	cw := enc.EncodeDual(msg)
	decoded, ok := dec.Decode(cw)
	require.True(t, ok)
	assert.Equal(t, msg, decoded)
}

func TestDecodeCorrectsUpToMaxErrors(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		enc := NewEncoder()
		dec := NewCodec()

		msg := rapid.SliceOfN(rapid.Byte(), consts.RSMessageLen, consts.RSMessageLen).Draw(t, "msg")
		cw := enc.EncodeDual(msg)

		numErrors := rapid.IntRange(0, consts.RSMaxErrors).Draw(t, "numErrors")
		rng := rand.New(rand.NewSource(int64(rapid.Uint64().Draw(t, "seed"))))
		corrupted := append([]byte(nil), cw...)
		positions := rng.Perm(consts.RSBlockLen)[:numErrors]
		for _, p := range positions {
			var bad byte
			for bad == 0 {
				bad = byte(rng.Intn(256))
			}
			corrupted[p] ^= bad
		}

		decoded, ok := dec.Decode(corrupted)
		require.True(t, ok, "expected %d errors to be correctable", numErrors)
		assert.Equal(t, msg, decoded)
	})
}

func TestDecodeUncorrectableNeverSilentlyCorrupts(t *testing.T) {
	enc := NewEncoder()
	dec := NewCodec()

	msg := make([]byte, consts.RSMessageLen)
	for i := range msg {
		msg[i] = byte(255 - i)
	}
	cw := enc.EncodeDual(msg)

	// Flood well past the correction radius; the decoder must either
	// report failure or (rarely, for a contrived adversarial pattern)
	// return a codeword whose re-encoded form round-trips. It must
	// never report success with a message that silently diverges from
	// what a genuine decode would produce for a codeword within range.
	corrupted := append([]byte(nil), cw...)
	for i := 0; i < consts.RSBlockLen; i += 2 {
		corrupted[i] ^= 0xFF
	}

	decoded, ok := dec.Decode(corrupted)
	if ok {
		// If it claims success, the corrected codeword must actually
		// have zero syndromes (verified internally) -- it must not
		// just return the uncorrected, wrong message.
		assert.NotEqual(t, msg, decoded)
	}
}

func TestDeinterleaveRoundTrip(t *testing.T) {
	enc := NewEncoder()
	dec := NewCodec()

	data := make([]byte, consts.RSInterleaveDepth*consts.RSBlockLen)
	for s := 0; s < consts.RSInterleaveDepth; s++ {
		msg := make([]byte, consts.RSMessageLen)
		for i := range msg {
			msg[i] = byte(i + s)
		}
		cw := enc.EncodeDual(msg)
		for i, b := range cw {
			data[i*consts.RSInterleaveDepth+s] = b
		}
	}

	vcdu, err := DecodeFrame(dec, data)
	require.NoError(t, err)
	require.Len(t, vcdu, consts.VCDULen)
}
