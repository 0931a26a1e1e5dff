package postprocess

import "github.com/dvdesolve/mlrpt/consts"

// Options bundles the per-run knobs for the fixed Normalize -> CLAHE ->
// Rectify -> Flip pipeline applied to each channel image before
// composition.
type Options struct {
	RangeLow, RangeHigh byte
	CLAHEClipLimit      float64 // <=0 disables CLAHE entirely
	Rectify             consts.RectifyFunction
	Flip                bool
}

// ProcessChannel applies Normalize, optional CLAHE, optional Rectify,
// and optional Flip to one channel's image in that fixed order,
// returning the (possibly reallocated, by Rectify) pixel buffer.
func ProcessChannel(pixels []byte, width, height int, opt Options) []byte {
	Normalize(pixels, opt.RangeLow, opt.RangeHigh)

	if opt.CLAHEClipLimit > 0 {
		CLAHE(pixels, width, height, opt.CLAHEClipLimit)
	}

	if opt.Rectify.Valid() && opt.Rectify != consts.RectifyNone {
		pixels = Rectify(pixels, width, height, opt.Rectify)
	}

	if opt.Flip {
		Flip(pixels)
	}

	return pixels
}
