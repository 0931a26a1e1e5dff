package consts

import "math"

// QPSKSymbolMap is the Gray-coded, unit-energy QPSK constellation used
// both to build synthetic LRPT streams and by the correlator's
// bit-pair fix-up.
var QPSKSymbolMap = map[byte]complex128{
	0: complex(1/math.Sqrt2, 1/math.Sqrt2),
	1: complex(1/math.Sqrt2, -1/math.Sqrt2),
	2: complex(-1/math.Sqrt2, 1/math.Sqrt2),
	3: complex(-1/math.Sqrt2, -1/math.Sqrt2),
}

// PSKMode is the demodulator variant.
type PSKMode int

const (
	QPSK PSKMode = iota
	DOQPSK
	IDOQPSK
)

func (m PSKMode) String() string {
	switch m {
	case QPSK:
		return "QPSK"
	case DOQPSK:
		return "DOQPSK"
	case IDOQPSK:
		return "IDOQPSK"
	default:
		return "unknown"
	}
}

// IsOQPSK reports whether m requires the OQPSK re-sync, de-interleave,
// and de-differential stages.
func (m PSKMode) IsOQPSK() bool {
	return m == DOQPSK || m == IDOQPSK
}

// RectifyFunction selects the geometric correction applied during
// post-processing. Invalid values are rejected at config load, never
// silently clamped.
type RectifyFunction int

const (
	RectifyNone RectifyFunction = iota
	RectifyW2RG
	Rectify5B4AZ
)

func (f RectifyFunction) Valid() bool {
	return f >= RectifyNone && f <= Rectify5B4AZ
}
