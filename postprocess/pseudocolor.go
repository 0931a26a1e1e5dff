package postprocess

import "github.com/dvdesolve/mlrpt/consts"

// ChannelRange carries one channel's configured output black/white
// levels (the same range Normalize stretches that channel into), so
// Composite can rescale without re-scanning the histogram.
type ChannelRange struct {
	Black, White byte
}

// ColorizeOptions enables the blue-channel ocean/land enhancement and
// cloud whiteout applied when building a visually pleasing combo
// image rather than a plain three-channel stack.
type ColorizeOptions struct {
	Enabled         bool
	BlueMin         byte
	BlueMax         byte
	CloudsThreshold byte
}

// Composite builds an interleaved RGB image from three equal-length
// channel buffers. With colorize disabled each channel is independently
// rescaled into its ChannelRange. With colorize enabled, pixels whose
// blue value exceeds CloudsThreshold are rendered as flat white-to-grey
// (clouds), and the blue channel below BlueMin is lifted to separate
// water from land before the red channel is rescaled.
func Composite(red, green, blue []byte, ranges [3]ChannelRange, colorize ColorizeOptions) []byte {
	n := len(red)
	out := make([]byte, n*3)

	if !colorize.Enabled {
		rangeR := int(ranges[0].White) - int(ranges[0].Black)
		rangeG := int(ranges[1].White) - int(ranges[1].Black)
		rangeB := int(ranges[2].White) - int(ranges[2].Black)
		for i := 0; i < n; i++ {
			out[i*3+0] = rescale(red[i], ranges[0].Black, rangeR)
			out[i*3+1] = rescale(green[i], ranges[1].Black, rangeG)
			out[i*3+2] = rescale(blue[i], ranges[2].Black, rangeB)
		}
		return out
	}

	rangeRed := int(ranges[0].White) - int(ranges[0].Black)
	rangeBlue := int(colorize.BlueMax) - int(colorize.BlueMin)
	for i := 0; i < n; i++ {
		b := blue[i]
		if b > colorize.CloudsThreshold {
			out[i*3+0], out[i*3+1], out[i*3+2] = b, b, b
			continue
		}
		if b < colorize.BlueMin && rangeBlue > 0 {
			b = colorize.BlueMin + byte(int(b)*rangeBlue/int(consts.MaxWhite))
		}
		out[i*3+0] = rescale(red[i], ranges[0].Black, rangeRed)
		out[i*3+1] = green[i]
		out[i*3+2] = b
	}
	return out
}

func rescale(v, black byte, span int) byte {
	if span <= 0 {
		return v
	}
	val := int(black) + int(v)*span/int(consts.MaxWhite)
	if val < 0 {
		val = 0
	}
	if val > consts.MaxWhite {
		val = consts.MaxWhite
	}
	return byte(val)
}
