package meteorjpeg

// decodeBlock Huffman-decodes one 8x8 block's DC and AC coefficients
// into natural (zigzag-inverted) order. predDC carries the running DC
// predictor across blocks in the same channel, per JPEG's differential
// DC coding.
func decodeBlock(br *bitReader, dcTable, acTable *huffTable, predDC *int) ([64]int32, error) {
	var coeffs [64]int32

	s, err := dcTable.decode(br)
	if err != nil {
		return coeffs, err
	}
	diff := 0
	if s > 0 {
		bits, err := br.readBits(int(s))
		if err != nil {
			return coeffs, err
		}
		diff = receiveExtend(bits, int(s))
	}
	*predDC += diff
	coeffs[0] = int32(*predDC)

	for k := 1; k < 64; {
		rs, err := acTable.decode(br)
		if err != nil {
			return coeffs, err
		}
		run := int(rs >> 4)
		size := int(rs & 0x0F)

		if size == 0 {
			if run == 15 {
				k += 16 // ZRL: 16 zero coefficients
				continue
			}
			break // EOB: remaining coefficients are zero
		}

		k += run
		if k >= 64 {
			break
		}
		bits, err := br.readBits(size)
		if err != nil {
			return coeffs, err
		}
		coeffs[zigzag[k]] = int32(receiveExtend(bits, size))
		k++
	}

	return coeffs, nil
}
