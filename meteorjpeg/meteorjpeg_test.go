package meteorjpeg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvdesolve/mlrpt/consts"
)

func TestScaledQuantTableClampsQuality(t *testing.T) {
	low := scaledQuantTable(0)
	high := scaledQuantTable(200)
	for _, v := range low {
		assert.GreaterOrEqual(t, v, 1)
		assert.LessOrEqual(t, v, 255)
	}
	for _, v := range high {
		assert.GreaterOrEqual(t, v, 1)
		assert.LessOrEqual(t, v, 255)
	}
}

func TestIdctZeroCoefficientsGivesMidGray(t *testing.T) {
	var coeffs [64]int32
	quant := scaledQuantTable(80)
	pixels := toPixels(idct8x8(coeffs, quant))
	for _, p := range pixels {
		assert.Equal(t, byte(128), p)
	}
}

func TestChannelImageGrowsWithWhiteDefault(t *testing.T) {
	img := NewChannelImage()
	var block [64]byte
	for i := range block {
		block[i] = 10
	}
	img.WriteBlock(5, 2, block)

	require.Equal(t, 24, img.Height())
	assert.Equal(t, consts.MeteorImageWidth, img.Width)

	// A pixel from an untouched MCU in a written band stays MaxWhite.
	idx := 16*img.Width + 0
	assert.Equal(t, byte(consts.MaxWhite), img.Pixels()[idx])

	// The written block lands at (row=2*8, col=5*8).
	idx = 16*img.Width + 40
	assert.Equal(t, byte(10), img.Pixels()[idx])
}

func TestHuffmanDecodeShortestDCCode(t *testing.T) {
	// The DC luminance table's only length-2 code (00) decodes to
	// symbol 0 (category 0, i.e. a zero DC delta).
	br := newBitReader([]byte{0x00})
	sym, err := stdDCLuminance.decode(br)
	require.NoError(t, err)
	assert.Equal(t, byte(0), sym)
}

func TestBuilderDecodePacketShortBodyError(t *testing.T) {
	b := NewBuilder()
	err := b.DecodePacket([]byte{1, 2})
	assert.Error(t, err)
}

func TestBuilderDecodePacketStopsOnExhaustedBits(t *testing.T) {
	b := NewBuilder()
	// Header only, no coefficient bits at all: decoding should stop
	// immediately without panicking, writing no blocks.
	err := b.DecodePacket([]byte{0, 80, 0, 3})
	require.NoError(t, err)
	assert.Equal(t, 0, b.Image().Height())
}
