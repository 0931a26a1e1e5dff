package postprocess

import (
	"math"

	"github.com/dvdesolve/mlrpt/consts"
)

// Rectify corrects the cross-track stretching caused by the
// satellite's scan geometry: pixels far from nadir cover more ground
// per sample than pixels near nadir, so a straight re-sample of the
// raw MCU grid looks stretched at the swath edges. Neither named
// correction curve (W2RG, 5B4AZ) is available in any reference
// material for this downlink; both are reproduced here as a single
// parameterized curve (a blend of a linear and a power-law term) with
// parameters chosen to match each name's typical correction strength,
// not transcribed from a published coefficient table. See DESIGN.md.
func Rectify(image []byte, width, height int, fn consts.RectifyFunction) []byte {
	if !fn.Valid() || fn == consts.RectifyNone || width <= 0 || height <= 0 {
		return image
	}

	var lut []int
	switch fn {
	case consts.RectifyW2RG:
		lut = rectifyCurve(width, 0.35, 1.6)
	case consts.Rectify5B4AZ:
		lut = rectifyCurve(width, 0.22, 1.3)
	default:
		return image
	}

	out := make([]byte, len(image))
	for y := 0; y < height; y++ {
		row := y * width
		for x := 0; x < width; x++ {
			out[row+x] = image[row+lut[x]]
		}
	}
	return out
}

// rectifyCurve builds a nearest-neighbour source-column lookup: column
// x maps to a source column offset from center by a blend of x's
// linear and power-law distance from center, weighted by strength.
// strength 0 is the identity mapping; larger strength and power pull
// swath-edge columns further toward center.
func rectifyCurve(width int, strength, power float64) []int {
	lut := make([]int, width)
	half := float64(width) / 2
	for x := 0; x < width; x++ {
		d := (float64(x) - half) / half // [-1,1]
		sign := 1.0
		if d < 0 {
			sign = -1.0
		}
		mag := math.Pow(math.Abs(d), power)
		linear := d * half
		curved := sign * mag * half
		src := half + linear*(1-strength) + curved*strength
		lut[x] = clampInt(int(math.Round(src)), 0, width-1)
	}
	return lut
}
