package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsValidate(t *testing.T) {
	cfg := Defaults()
	assert.NoError(t, cfg.Validate())
}

func TestValidateRejectsLowBandwidth(t *testing.T) {
	cfg := Defaults()
	cfg.FilterBWHz = 1000
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsBadRectify(t *testing.T) {
	cfg := Defaults()
	cfg.RectifyFunction = "BOGUS"
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsInvertedChannelRange(t *testing.T) {
	cfg := Defaults()
	cfg.Channels[0].Black = 200
	cfg.Channels[0].White = 100
	assert.Error(t, cfg.Validate())
}

func TestLoadFlatKeyValueFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mlrptrc")
	content := "# comment\ncenter_freq_hz=137500000\nrrc_alpha=0.35\nquiet=true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(137_500_000), cfg.CenterFreqHz)
	assert.InDelta(t, 0.35, cfg.RRCAlpha, 1e-9)
	assert.True(t, cfg.Quiet)
}

func TestLoadFlatFileIgnoresUnknownKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mlrptrc")
	require.NoError(t, os.WriteFile(path, []byte("bogus_key=1\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.NotNil(t, cfg)
}

func TestLoadYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mlrpt.yaml")
	content := "---\ncenter_freq_hz: 137100000\nrectify_function: W2RG\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(137_100_000), cfg.CenterFreqHz)
	assert.Equal(t, "W2RG", cfg.RectifyFunction)
}

func TestPSKModeValueDefaultsToQPSK(t *testing.T) {
	cfg := Defaults()
	cfg.PSKMode = "nonsense"
	assert.Equal(t, 0, int(cfg.PSKModeValue()))
}

func TestRectifyFunctionValueParsesKnownNames(t *testing.T) {
	cfg := Defaults()
	cfg.RectifyFunction = "w2rg"
	assert.Equal(t, 1, int(cfg.RectifyFunctionValue()))
}

func TestParseFlagsAndApply(t *testing.T) {
	flags, err := ParseFlags([]string{"-f", "137200", "-q", "-r", "W2RG"})
	require.NoError(t, err)

	cfg := Defaults()
	flags.Apply(cfg)
	assert.Equal(t, uint64(137_200_000), cfg.CenterFreqHz)
	assert.True(t, cfg.Quiet)
	assert.Equal(t, "W2RG", cfg.RectifyFunction)
}
