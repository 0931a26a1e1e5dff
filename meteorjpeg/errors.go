package meteorjpeg

import "errors"

var (
	errHuffman     = errors.New("meteorjpeg: invalid huffman code")
	errShortPacket = errors.New("meteorjpeg: packet too short for mcu-row header")
)
