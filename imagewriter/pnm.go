// Package imagewriter renders finished channel and composite images
// to disk, naming each file with the session's UTC timestamp the way
// the original mlrpt tooling did.
package imagewriter

import (
	"bufio"
	"fmt"
	"io"
)

// WritePGM writes an 8-bit grayscale image in binary PGM ("P5") format.
func WritePGM(w io.Writer, pixels []byte, width, height int) error {
	if len(pixels) != width*height {
		return fmt.Errorf("imagewriter: PGM pixel count %d does not match %dx%d", len(pixels), width, height)
	}
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P5\n%d %d\n255\n", width, height); err != nil {
		return err
	}
	if _, err := bw.Write(pixels); err != nil {
		return err
	}
	return bw.Flush()
}

// WritePPM writes an interleaved 24-bit RGB image in binary PPM
// ("P6") format.
func WritePPM(w io.Writer, rgb []byte, width, height int) error {
	if len(rgb) != width*height*3 {
		return fmt.Errorf("imagewriter: PPM pixel count %d does not match %dx%d*3", len(rgb), width, height)
	}
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", width, height); err != nil {
		return err
	}
	if _, err := bw.Write(rgb); err != nil {
		return err
	}
	return bw.Flush()
}
