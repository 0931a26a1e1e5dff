package meteorjpeg

import "math"

// idctCos[x][u] = cos((2x+1)*u*pi/16), the separable 1-D IDCT basis
// shared by rows and columns.
var idctCos [8][8]float64
var idctC [8]float64

func init() {
	for x := 0; x < 8; x++ {
		for u := 0; u < 8; u++ {
			idctCos[x][u] = math.Cos(float64(2*x+1) * float64(u) * math.Pi / 16)
		}
	}
	idctC[0] = 1 / math.Sqrt2
	for i := 1; i < 8; i++ {
		idctC[i] = 1
	}
}

// idct8x8 dequantizes coeffs (natural order) against quant and performs
// the floating-point inverse DCT, in the spirit of the AAN
// factorization but expressed here as a direct separable sum for
// clarity over raw throughput.
func idct8x8(coeffs [64]int32, quant [64]int) [64]float64 {
	var block [8][8]float64
	for i := 0; i < 64; i++ {
		block[i/8][i%8] = float64(coeffs[i]) * float64(quant[i])
	}

	var out [64]float64
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			var sum float64
			for u := 0; u < 8; u++ {
				for v := 0; v < 8; v++ {
					sum += idctC[u] * idctC[v] * block[u][v] * idctCos[x][u] * idctCos[y][v]
				}
			}
			out[x*8+y] = sum / 4
		}
	}
	return out
}

// toPixels level-shifts an IDCT output block by +128 and clamps to
// [0,255].
func toPixels(f [64]float64) [64]byte {
	var out [64]byte
	for i, v := range f {
		p := int(math.Round(v)) + 128
		if p < 0 {
			p = 0
		}
		if p > 255 {
			p = 255
		}
		out[i] = byte(p)
	}
	return out
}
