package postprocess

import (
	"math"

	"github.com/dvdesolve/mlrpt/consts"
)

// CLAHE is not present in any reference material for this downlink;
// this is a standard contrast-limited adaptive histogram equalization
// implementation from general domain knowledge, not a ported
// algorithm. It partitions image (width x height, row-major grayscale)
// into a CLAHEGridSize x CLAHEGridSize grid, builds a clipped
// CLAHEBins-bin histogram equalization mapping per region, and blends
// the four nearest regions' mappings bilinearly per pixel so region
// boundaries don't produce visible seams. clipLimit is the per-bin
// cap as a multiple of the region's uniform bin count (values around
// 2-4 are typical; <=0 disables clipping).
func CLAHE(image []byte, width, height int, clipLimit float64) {
	if width <= 0 || height <= 0 || len(image) != width*height {
		return
	}

	const bins = consts.CLAHEBins
	gridX, gridY := consts.CLAHEGridSize, consts.CLAHEGridSize
	regionW := (width + gridX - 1) / gridX
	regionH := (height + gridY - 1) / gridY

	mappings := make([][bins]byte, gridX*gridY)
	for gy := 0; gy < gridY; gy++ {
		for gx := 0; gx < gridX; gx++ {
			x0 := gx * regionW
			y0 := gy * regionH
			w := regionW
			if x0+w > width {
				w = width - x0
			}
			h := regionH
			if y0+h > height {
				h = height - y0
			}
			mappings[gy*gridX+gx] = regionMapping(image, width, x0, y0, w, h, clipLimit)
		}
	}

	out := make([]byte, len(image))
	for y := 0; y < height; y++ {
		gy0, ty := interpCoord(y, regionH, gridY)
		gy1 := clampInt(gy0+1, 0, gridY-1)

		for x := 0; x < width; x++ {
			gx0, tx := interpCoord(x, regionW, gridX)
			gx1 := clampInt(gx0+1, 0, gridX-1)

			bin := int(image[y*width+x]) * bins / 256
			if bin >= bins {
				bin = bins - 1
			}

			v00 := float64(mappings[gy0*gridX+gx0][bin])
			v01 := float64(mappings[gy0*gridX+gx1][bin])
			v10 := float64(mappings[gy1*gridX+gx0][bin])
			v11 := float64(mappings[gy1*gridX+gx1][bin])

			top := v00*(1-tx) + v01*tx
			bottom := v10*(1-tx) + v11*tx
			v := top*(1-ty) + bottom*ty

			out[y*width+x] = byte(clampInt(int(v+0.5), 0, consts.MaxWhite))
		}
	}
	copy(image, out)
}

// interpCoord maps a pixel coordinate onto its region grid index and
// the fractional offset ([0,1)) toward the next region, for bilinear
// blending between adjacent region mappings.
func interpCoord(pixel, regionSize, gridN int) (int, float64) {
	f := float64(pixel)/float64(regionSize) - 0.5
	g0 := int(math.Floor(f))
	if g0 < 0 {
		// Before the first region's center: use that region alone.
		return 0, 0
	}
	t := f - float64(g0)
	return clampInt(g0, 0, gridN-1), t
}

func regionMapping(image []byte, width, x0, y0, w, h int, clipLimit float64) [consts.CLAHEBins]byte {
	const bins = consts.CLAHEBins
	var hist [bins]int
	count := 0
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			bin := int(image[y*width+x]) * bins / 256
			if bin >= bins {
				bin = bins - 1
			}
			hist[bin]++
			count++
		}
	}

	var mapping [bins]byte
	if count == 0 {
		for i := range mapping {
			mapping[i] = byte(i * 256 / bins)
		}
		return mapping
	}

	if clipLimit > 0 {
		clip := int(clipLimit * float64(count) / float64(bins))
		if clip < 1 {
			clip = 1
		}
		excess := 0
		for i, c := range hist {
			if c > clip {
				excess += c - clip
				hist[i] = clip
			}
		}
		redistribute := excess / bins
		for i := range hist {
			hist[i] += redistribute
		}
	}

	sum := 0
	for i, c := range hist {
		sum += c
		mapping[i] = byte(clampInt(sum*consts.MaxWhite/count, 0, consts.MaxWhite))
	}
	return mapping
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
