package imagewriter

import (
	"fmt"
	"image"
	"image/jpeg"
	"io"
)

// WriteGrayJPEG encodes an 8-bit grayscale image as baseline JPEG at
// the given quality (1-100).
func WriteGrayJPEG(w io.Writer, pixels []byte, width, height int, quality int) error {
	if len(pixels) != width*height {
		return fmt.Errorf("imagewriter: JPEG pixel count %d does not match %dx%d", len(pixels), width, height)
	}
	img := image.NewGray(image.Rect(0, 0, width, height))
	copy(img.Pix, pixels)
	return jpeg.Encode(w, img, &jpeg.Options{Quality: clampQuality(quality)})
}

// WriteRGBJPEG encodes an interleaved 24-bit RGB image as baseline
// JPEG at the given quality.
func WriteRGBJPEG(w io.Writer, rgb []byte, width, height int, quality int) error {
	if len(rgb) != width*height*3 {
		return fmt.Errorf("imagewriter: JPEG pixel count %d does not match %dx%d*3", len(rgb), width, height)
	}
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < width*height; i++ {
		img.Pix[i*4+0] = rgb[i*3+0]
		img.Pix[i*4+1] = rgb[i*3+1]
		img.Pix[i*4+2] = rgb[i*3+2]
		img.Pix[i*4+3] = 255
	}
	return jpeg.Encode(w, img, &jpeg.Options{Quality: clampQuality(quality)})
}

func clampQuality(q int) int {
	if q < 1 {
		return 1
	}
	if q > 100 {
		return 100
	}
	return q
}
