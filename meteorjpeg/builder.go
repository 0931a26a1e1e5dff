package meteorjpeg

import "github.com/dvdesolve/mlrpt/consts"

// Builder incrementally decodes one APID's MCU-row CP_PDU bodies into
// its channel image.
type Builder struct {
	image   *ChannelImage
	predDC  int
	dcTable *huffTable
	acTable *huffTable
}

func NewBuilder() *Builder {
	return &Builder{
		image:   NewChannelImage(),
		dcTable: stdDCLuminance,
		acTable: stdACLuminance,
	}
}

func (b *Builder) Image() *ChannelImage { return b.image }

// DecodePacket decodes one CP_PDU body: a 4-byte MCU-row header
// (starting MCU id, quality 1-100, 2-byte big-endian row number)
// followed by Huffman-coded blocks, one per MCU column from the
// header's starting id through the end of the row. A short or
// corrupt bitstream simply stops decoding early, leaving the
// remainder of the row at MaxWhite.
func (b *Builder) DecodePacket(body []byte) error {
	if len(body) < 4 {
		return errShortPacket
	}
	mcuStart := int(body[0])
	quality := int(body[1])
	row := int(body[2])<<8 | int(body[3])

	quant := scaledQuantTable(quality)
	br := newBitReader(body[4:])
	b.predDC = 0

	for mcu := mcuStart; mcu < consts.MCUsPerRow; mcu++ {
		coeffs, err := decodeBlock(br, b.dcTable, b.acTable, &b.predDC)
		if err != nil {
			break
		}
		pixels := toPixels(idct8x8(coeffs, quant))
		b.image.WriteBlock(mcu, row, pixels)
	}
	return nil
}
