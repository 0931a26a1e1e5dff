package imagewriter

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Format selects the on-disk encoding for a session's output images.
type Format int

const (
	FormatJPEG Format = iota
	FormatPNM         // PGM for channels, PPM for the composite
)

// Writer writes a session's channel and composite images into dir,
// under one shared UTC timestamp.
type Writer struct {
	dir       string
	timestamp string
	format    Format
	quality   int
}

// NewWriter ensures dir exists, creating it (and any parents) owner-only
// if absent, and fixes the session timestamp at t.
func NewWriter(dir string, t time.Time, format Format, quality int) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("imagewriter: creating %s: %w", dir, err)
	}
	return &Writer{
		dir:       dir,
		timestamp: Timestamp(t),
		format:    format,
		quality:   quality,
	}, nil
}

// WriteChannel writes one APID channel's grayscale image, choosing
// the file extension from the writer's format.
func (w *Writer) WriteChannel(apid byte, pixels []byte, width, height int) (string, error) {
	ext := "jpg"
	if w.format == FormatPNM {
		ext = "pgm"
	}
	path := filepath.Join(w.dir, ChannelFilename(w.timestamp, apid, ext))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("imagewriter: creating %s: %w", path, err)
	}
	defer f.Close()

	if w.format == FormatPNM {
		err = WritePGM(f, pixels, width, height)
	} else {
		err = WriteGrayJPEG(f, pixels, width, height, w.quality)
	}
	if err != nil {
		return "", fmt.Errorf("imagewriter: encoding %s: %w", path, err)
	}
	return path, nil
}

// WriteCombo writes the three-channel composite image.
func (w *Writer) WriteCombo(rgb []byte, width, height int) (string, error) {
	ext := "jpg"
	if w.format == FormatPNM {
		ext = "ppm"
	}
	path := filepath.Join(w.dir, ComboFilename(w.timestamp, ext))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("imagewriter: creating %s: %w", path, err)
	}
	defer f.Close()

	var err2 error
	if w.format == FormatPNM {
		err2 = WritePPM(f, rgb, width, height)
	} else {
		err2 = WriteRGBJPEG(f, rgb, width, height, w.quality)
	}
	if err2 != nil {
		return "", fmt.Errorf("imagewriter: encoding %s: %w", path, err2)
	}
	return path, nil
}
