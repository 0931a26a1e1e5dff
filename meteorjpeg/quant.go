package meteorjpeg

// baseLumaQuant is the standard JPEG luminance quantization table, in
// natural (row-major) order.
var baseLumaQuant = [64]int{
	16, 11, 10, 16, 24, 40, 51, 61,
	12, 12, 14, 19, 26, 58, 60, 55,
	14, 13, 16, 24, 40, 57, 69, 56,
	14, 17, 22, 29, 51, 87, 80, 62,
	18, 22, 37, 56, 68, 109, 103, 77,
	24, 35, 55, 64, 81, 104, 113, 92,
	49, 64, 78, 87, 103, 121, 120, 101,
	72, 92, 95, 98, 112, 100, 103, 99,
}

// scaledQuantTable scales the base luminance table by a quality factor
// clamped to [1,100]: scale = 5000/q for q<50, else 200-2q, applied as
// percent.
func scaledQuantTable(q int) [64]int {
	if q < 1 {
		q = 1
	}
	if q > 100 {
		q = 100
	}
	var scale int
	if q < 50 {
		scale = 5000 / q
	} else {
		scale = 200 - 2*q
	}

	var out [64]int
	for i, b := range baseLumaQuant {
		v := (b*scale + 50) / 100
		if v < 1 {
			v = 1
		}
		if v > 255 {
			v = 255
		}
		out[i] = v
	}
	return out
}
