package imagewriter

import (
	"bytes"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampFormat(t *testing.T) {
	ts := Timestamp(time.Date(2026, time.March, 5, 14, 30, 0, 0, time.UTC))
	assert.Equal(t, "05Mar2026-1430", ts)
}

func TestChannelAndComboFilenames(t *testing.T) {
	assert.Equal(t, "05Mar2026-1430-Ch64.jpg", ChannelFilename("05Mar2026-1430", 64, "jpg"))
	assert.Equal(t, "05Mar2026-1430-Combo.ppm", ComboFilename("05Mar2026-1430", "ppm"))
}

func TestWritePGMRoundTripHeader(t *testing.T) {
	var buf bytes.Buffer
	pixels := make([]byte, 4*3)
	require.NoError(t, WritePGM(&buf, pixels, 4, 3))
	assert.Contains(t, buf.String(), "P5\n4 3\n255\n")
}

func TestWritePPMRejectsMismatchedLength(t *testing.T) {
	var buf bytes.Buffer
	err := WritePPM(&buf, make([]byte, 5), 4, 3)
	assert.Error(t, err)
}

func TestWriteGrayJPEGProducesValidJPEG(t *testing.T) {
	var buf bytes.Buffer
	pixels := make([]byte, 16*16)
	require.NoError(t, WriteGrayJPEG(&buf, pixels, 16, 16, 85))

	img, err := jpeg.Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dx())
}

func TestWriterWriteChannelCreatesFile(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir, time.Date(2026, time.March, 5, 14, 30, 0, 0, time.UTC), FormatPNM, 85)
	require.NoError(t, err)

	path, err := w.WriteChannel(64, make([]byte, 4*3), 4, 3)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "05Mar2026-1430-Ch64.pgm"), path)

	_, statErr := os.Stat(path)
	assert.NoError(t, statErr)
}

func TestWriterWriteComboJPEG(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir, time.Date(2026, time.March, 5, 14, 30, 0, 0, time.UTC), FormatJPEG, 90)
	require.NoError(t, err)

	path, err := w.WriteCombo(make([]byte, 4*3*3), 4, 3)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "05Mar2026-1430-Combo.jpg"), path)
}
