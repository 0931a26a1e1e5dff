// Package meteorjpeg decodes Meteor-M2's JPEG-variant MCU packets into
// per-APID grayscale channel images.
package meteorjpeg

import "github.com/dvdesolve/mlrpt/consts"

// ChannelImage is one APID's grayscale image. It grows downward in
// 8-row MCU bands as packets arrive; rows not yet written read as
// MaxWhite so a channel missing late rows still composites cleanly
// against its siblings.
type ChannelImage struct {
	Width  int
	pixels []byte
	height int
}

func NewChannelImage() *ChannelImage {
	return &ChannelImage{Width: consts.MeteorImageWidth}
}

func (c *ChannelImage) Height() int    { return c.height }
func (c *ChannelImage) Pixels() []byte { return c.pixels }

func (c *ChannelImage) ensureRows(n int) {
	if n <= c.height {
		return
	}
	grown := make([]byte, n*c.Width)
	for i := c.height * c.Width; i < len(grown); i++ {
		grown[i] = consts.MaxWhite
	}
	copy(grown, c.pixels)
	c.pixels = grown
	c.height = n
}

// WriteBlock writes one decoded 8x8 pixel block at MCU column mcuID,
// MCU row band row (both 0-based in MCU units), growing the image if
// this band extends past the current height.
func (c *ChannelImage) WriteBlock(mcuID, row int, block [64]byte) {
	if mcuID < 0 || mcuID >= consts.MCUsPerRow || row < 0 {
		return
	}
	c.ensureRows((row + 1) * consts.MCUSize)

	baseRow := row * consts.MCUSize
	baseCol := mcuID * consts.MCUSize
	for by := 0; by < consts.MCUSize; by++ {
		dst := (baseRow+by)*c.Width + baseCol
		copy(c.pixels[dst:dst+consts.MCUSize], block[by*consts.MCUSize:(by+1)*consts.MCUSize])
	}
}
