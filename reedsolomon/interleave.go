package reedsolomon

import (
	"errors"

	"github.com/dvdesolve/mlrpt/consts"
)

// ErrUncorrectable is returned by DecodeFrame when one or more
// subframes exceed RSMaxErrors; the caller discards the whole frame
// rather than pass on a partially-corrected result.
var ErrUncorrectable = errors.New("reedsolomon: uncorrectable subframe")

// DecodeFrame splits a Viterbi hard frame's 1020 post-sync bytes
// (HardFrameBytes - SyncFieldBytes) into RSInterleaveDepth subframes by
// byte-stride deinterleave (bytes at i, i+depth, i+2*depth, ... form
// subframe i), decodes each subframe independently, and re-interleaves
// the corrected data bytes back into a single 892-byte VCDU.
func DecodeFrame(codec *Codec, data []byte) ([]byte, error) {
	if len(data) != consts.RSInterleaveDepth*consts.RSBlockLen {
		return nil, errors.New("reedsolomon: unexpected frame length")
	}

	subframes := make([][]byte, consts.RSInterleaveDepth)
	for s := 0; s < consts.RSInterleaveDepth; s++ {
		subframes[s] = make([]byte, consts.RSBlockLen)
		for i := 0; i < consts.RSBlockLen; i++ {
			subframes[s][i] = data[i*consts.RSInterleaveDepth+s]
		}
	}

	vcdu := make([]byte, consts.VCDULen)
	for s, sub := range subframes {
		msg, ok := codec.Decode(sub)
		if !ok {
			return nil, ErrUncorrectable
		}
		for i, b := range msg {
			vcdu[i*consts.RSInterleaveDepth+s] = b
		}
	}
	return vcdu, nil
}
