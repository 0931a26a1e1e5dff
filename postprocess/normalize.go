// Package postprocess implements the fixed Normalize -> CLAHE ->
// Rectify -> Flip -> Pseudocolor pipeline applied once, after a
// session's image channels are fully assembled.
package postprocess

import "github.com/dvdesolve/mlrpt/consts"

// Normalize rescales image linearly from its observed intensity range
// to [rangeLow, rangeHigh]. The black and white cutoffs trim the
// bottom/top BlackCutOff/WhiteCutOff fraction of pixels; intensities
// below MinBlack are ignored when searching for the black cutoff,
// since Meteor-M2 occasionally sends solid black stripes that would
// otherwise skew it low. Reports false (leaving image untouched) if
// the image is empty or has zero observed intensity range.
func Normalize(image []byte, rangeLow, rangeHigh byte) bool {
	if len(image) == 0 {
		return false
	}

	var hist [consts.MaxWhite + 1]int
	for _, p := range image {
		hist[p]++
	}

	blackCutoff := int(float64(len(image)) * consts.BlackCutOff)
	whiteCutoff := int(float64(len(image)) * consts.WhiteCutOff)

	blackMinIn := consts.MinBlack
	pixelCnt := 0
	for ; blackMinIn != consts.MaxWhite; blackMinIn++ {
		pixelCnt += hist[blackMinIn]
		if pixelCnt >= blackCutoff {
			break
		}
	}

	whiteMaxIn := consts.MaxWhite
	pixelCnt = 0
	for ; whiteMaxIn != 0; whiteMaxIn-- {
		pixelCnt += hist[whiteMaxIn]
		if pixelCnt >= whiteCutoff {
			break
		}
	}

	if whiteMaxIn <= blackMinIn {
		return false
	}
	valRangeIn := whiteMaxIn - blackMinIn
	valRangeOut := int(rangeHigh) - int(rangeLow)

	for i, p := range image {
		v := int(p)
		if v < blackMinIn {
			v = blackMinIn
		}
		if v > whiteMaxIn {
			v = whiteMaxIn
		}
		v -= blackMinIn
		image[i] = byte(int(rangeLow) + v*valRangeOut/valRangeIn)
	}
	return true
}

// Flip rotates image 180 degrees: pixel i swaps with pixel
// (len(image)-1-i).
func Flip(image []byte) {
	for i, j := 0, len(image)-1; i < j; i, j = i+1, j-1 {
		image[i], image[j] = image[j], image[i]
	}
}
